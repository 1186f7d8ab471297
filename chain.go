package msgcat

import "fmt"

// ContextSeparator joins a context and a key into the composite form
// context-qualified messages are stored under.
const ContextSeparator = "\x04"

// Chain is the ordered list of translation sources for one locale, most
// specific locale first. Lookup operations never fail: a miss resolves to
// the key itself (or, for plural lookups, the two-form fallback).
type Chain struct {
	sources []Source
}

// GetString returns the first non-empty translation of key in the chain,
// or key itself when no source has one.
func (c *Chain) GetString(key string) string {
	for _, src := range c.sources {
		if msgstr, ok := src.Lookup(key); ok {
			return msgstr
		}
	}
	return key
}

// GetPluralString returns the plural form selected by n of the first
// source translating key. Without a translation the Germanic fallback
// applies: key when n is 1, keyPlural otherwise.
func (c *Chain) GetPluralString(key, keyPlural string, n uint32) string {
	for _, src := range c.sources {
		if msgstr, ok := src.LookupPlural(key, n); ok {
			return msgstr
		}
	}
	if n == 1 {
		return key
	}
	return keyPlural
}

// GetParticularString resolves a context-qualified key. Each source is
// probed for the composite key first and for the plain key second, before
// the next source is consulted, so a source lacking the context-qualified
// variant still wins with its plain translation.
func (c *Chain) GetParticularString(context, key string) string {
	composite := context + ContextSeparator + key
	for _, src := range c.sources {
		if msgstr, ok := src.Lookup(composite); ok {
			return msgstr
		}
		if msgstr, ok := src.Lookup(key); ok {
			return msgstr
		}
	}
	return key
}

// GetParticularPluralString combines the per-source two-tier probing of
// GetParticularString with plural-form selection.
func (c *Chain) GetParticularPluralString(context, key, keyPlural string, n uint32) string {
	composite := context + ContextSeparator + key
	for _, src := range c.sources {
		if msgstr, ok := src.LookupPlural(composite, n); ok {
			return msgstr
		}
		if msgstr, ok := src.LookupPlural(key, n); ok {
			return msgstr
		}
	}
	if n == 1 {
		return key
	}
	return keyPlural
}

// GetStringf resolves key and applies positional formatting to the result.
func (c *Chain) GetStringf(key string, args ...interface{}) string {
	return fmt.Sprintf(c.GetString(key), args...)
}

// GetPluralStringf is the formatted variant of GetPluralString.
func (c *Chain) GetPluralStringf(key, keyPlural string, n uint32, args ...interface{}) string {
	return fmt.Sprintf(c.GetPluralString(key, keyPlural, n), args...)
}

// GetParticularStringf is the formatted variant of GetParticularString.
func (c *Chain) GetParticularStringf(context, key string, args ...interface{}) string {
	return fmt.Sprintf(c.GetParticularString(context, key), args...)
}

// GetParticularPluralStringf is the formatted variant of
// GetParticularPluralString.
func (c *Chain) GetParticularPluralStringf(context, key, keyPlural string, n uint32, args ...interface{}) string {
	return fmt.Sprintf(c.GetParticularPluralString(context, key, keyPlural, n), args...)
}
