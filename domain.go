// Package msgcat resolves message keys to localized strings through a
// cached chain of per-locale translation sources, in the manner of GNU
// gettext.
package msgcat

import (
	"sync"

	"golang.org/x/text/language"
)

// Domain holds the translation sources of one resource (one catalog
// domain) across all locales your app supports. The zero value needs at
// least Name and Loaders; use NewDomain for the common directory layout.
type Domain struct {
	// Name is the base resource name bundles are looked up under.
	Name string
	// Loaders are consulted in order until one yields a Source for a
	// locale.
	Loaders []Loader

	mu     sync.RWMutex
	chains map[string][]Source
}

// NewDomain returns a Domain reading bundles from the conventional
// directory layout <dir>/<locale>/<name>.messages.mo, with compiled-in
// bundles from DefaultRegistry as fallback.
func NewDomain(name, dir string) *Domain {
	return &Domain{
		Name:    name,
		Loaders: []Loader{DirLoader{Root: dir}, DefaultRegistry},
	}
}

// Preload builds the chains for a list of locales. Useful to confine
// bundle I/O to a specific time in your app, for example startup.
func (d *Domain) Preload(locales ...string) {
	for _, locale := range locales {
		d.chainFor(parseLocale(locale))
	}
}

// Locale returns the lookup chain for a locale, building and caching it on
// first use. Locale never fails: locales without bundles resolve through
// their ancestors, and in the worst case lookups echo their keys back.
func (d *Domain) Locale(locale string) *Chain {
	return &Chain{sources: d.chainFor(parseLocale(locale))}
}

// UserLocale returns the lookup chain for the user's environment locale.
func (d *Domain) UserLocale() *Chain {
	return &Chain{sources: d.chainFor(userLocale())}
}

// chainFor returns the ordered sources for tag, most specific locale
// first. Each locale's chain is built at most once per Domain and shared
// with the chains of its descendants.
func (d *Domain) chainFor(tag language.Tag) []Source {
	names := ancestry(tag)
	if len(names) == 0 {
		// root locale: empty chain
		return nil
	}

	d.mu.RLock()
	chain, ok := d.chains[names[0]]
	d.mu.RUnlock()
	if ok {
		return chain
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if chain, ok := d.chains[names[0]]; ok {
		return chain
	}
	if d.chains == nil {
		d.chains = make(map[string][]Source)
	}

	// Build ancestors root-ward first, so each level's chain is the
	// parent chain plus at most its own source. Discovery runs under the
	// lock, which is what makes "at most one attempt per locale" hold
	// under contention.
	var parent []Source
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if cached, ok := d.chains[name]; ok {
			parent = cached
			continue
		}
		chain := parent
		if src := d.discover(name); src != nil {
			chain = append([]Source{src}, parent...)
		}
		d.chains[name] = chain
		parent = chain
	}
	return parent
}

// discover asks each loader in turn for a bundle of one exact locale.
// Failures mean "no translations of their own for this locale" and are
// never propagated.
func (d *Domain) discover(locale string) Source {
	for _, loader := range d.Loaders {
		src, err := loader.Load(d.Name, locale)
		if err != nil {
			Logger.Debug().Err(err).
				Str("resource", d.Name).
				Str("locale", locale).
				Msg("cannot load bundle")
			continue
		}
		if src != nil {
			Logger.Debug().
				Str("resource", d.Name).
				Str("locale", locale).
				Msg("loaded bundle")
			return src
		}
	}
	return nil
}

// GetString resolves key in the user's environment locale. See
// Chain.GetString.
func (d *Domain) GetString(key string) string {
	return d.UserLocale().GetString(key)
}

// GetPluralString resolves a singular/plural pair in the user's
// environment locale. See Chain.GetPluralString.
func (d *Domain) GetPluralString(key, keyPlural string, n uint32) string {
	return d.UserLocale().GetPluralString(key, keyPlural, n)
}

// GetParticularString resolves a context-qualified key in the user's
// environment locale. See Chain.GetParticularString.
func (d *Domain) GetParticularString(context, key string) string {
	return d.UserLocale().GetParticularString(context, key)
}

// GetParticularPluralString resolves a context-qualified singular/plural
// pair in the user's environment locale. See
// Chain.GetParticularPluralString.
func (d *Domain) GetParticularPluralString(context, key, keyPlural string, n uint32) string {
	return d.UserLocale().GetParticularPluralString(context, key, keyPlural, n)
}
