package msgcat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-l10n/msgcat/internal/ident"
)

// Source is a compiled key→value store holding the translations of one
// exact locale. Lookups report ok only for non-empty translations, so a
// chain can fall through empty slots to less specific locales.
type Source interface {
	// Lookup resolves msgid to its translation.
	Lookup(msgid string) (string, bool)
	// LookupPlural resolves msgid to the plural form selected by n.
	LookupPlural(msgid string, n uint32) (string, bool)
}

// Loader locates and instantiates the Source of one exact locale. Returning
// an error, or (nil, nil), means the locale has no bundle here; the engine
// absorbs either and falls back to the parent locale.
type Loader interface {
	Load(resource, locale string) (Source, error)
}

// localeSpellings returns the spellings a bundle for locale may be stored
// under: as given, hyphenated, and underscored.
func localeSpellings(locale string) []string {
	spellings := []string{locale}
	if s := strings.ReplaceAll(locale, "_", "-"); s != locale {
		spellings = append(spellings, s)
	}
	if s := strings.ReplaceAll(locale, "-", "_"); s != locale {
		spellings = append(spellings, s)
	}
	return spellings
}

// BundleExt is the file extension of compiled bundles.
const BundleExt = "mo"

// bundleName is the file name of resource's compiled bundle inside a locale
// directory.
func bundleName(resource string) string {
	return fmt.Sprintf("%s.messages.%s", resource, BundleExt)
}

// DirLoader finds compiled bundles below a root directory, laid out as
// <root>/<locale>/<resource>.messages.mo. Both hyphen and underscore locale
// directory spellings are probed.
type DirLoader struct {
	Root string
}

func (l DirLoader) Load(resource, locale string) (Source, error) {
	var firstErr error
	for _, spelling := range localeSpellings(locale) {
		path := filepath.Join(l.Root, spelling, bundleName(resource))
		data, err := os.ReadFile(path)
		if err != nil {
			if firstErr == nil && !errors.Is(err, fs.ErrNotExist) {
				firstErr = err
			}
			continue
		}
		return parseMO(data)
	}
	return nil, firstErr
}

// FSLoader is DirLoader over an fs.FS, typically an embedded bundle tree.
type FSLoader struct {
	FS   fs.FS
	Root string
}

func (l FSLoader) Load(resource, locale string) (Source, error) {
	var firstErr error
	for _, spelling := range localeSpellings(locale) {
		name := bundleName(resource)
		if l.Root != "" {
			name = l.Root + "/" + spelling + "/" + name
		} else {
			name = spelling + "/" + name
		}
		data, err := fs.ReadFile(l.FS, name)
		if err != nil {
			if firstErr == nil && !errors.Is(err, fs.ErrNotExist) {
				firstErr = err
			}
			continue
		}
		return parseMO(data)
	}
	return nil, firstErr
}

// Factory produces the Source of one compiled-in locale bundle.
type Factory func() (Source, error)

// Registry holds factories for compiled-in bundles, keyed by resource and
// locale. It replaces runtime type-name synthesis: a bundle announces
// itself by registering a factory, and the engine looks it up by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// registryKey derives the lookup key for (resource, locale): the sanitized
// resource name joined to the underscored locale name.
func registryKey(resource, locale string) string {
	return ident.Sanitize(resource) + "_" + strings.ReplaceAll(locale, "-", "_")
}

// Register installs the factory for (resource, locale), replacing any
// earlier registration.
func (r *Registry) Register(resource, locale string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[registryKey(resource, locale)] = factory
}

func (r *Registry) Load(resource, locale string) (Source, error) {
	r.mu.RLock()
	factory, ok := r.factories[registryKey(resource, locale)]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return factory()
}

// DefaultRegistry is where compiled-in bundles register themselves from
// init functions.
var DefaultRegistry = NewRegistry()
