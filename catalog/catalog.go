package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Catalog is the editable collection of entries of one domain/locale
// pair. Entries are kept in insertion order and indexed by their unique
// key. Mutating an owned entry marks the catalog dirty.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	entries []*Entry
	index   map[string]*Entry

	pluralForms int
	dirty       bool

	// header holds the msgstr of the header pseudo-entry (msgid "").
	header string
}

// New returns an empty catalog with the default plural-form count.
func New() *Catalog {
	return &Catalog{
		index:       make(map[string]*Entry),
		pluralForms: DefaultPluralForms,
	}
}

// MarkDirty implements Owner.
func (c *Catalog) MarkDirty() { c.dirty = true }

// Dirty reports whether the catalog changed since the last ClearDirty.
func (c *Catalog) Dirty() bool { return c.dirty }

// ClearDirty resets the dirty flag, typically after a save.
func (c *Catalog) ClearDirty() { c.dirty = false }

// PluralForms implements Owner: the number of plural-form slots a plural
// entry must fill to count as translated.
func (c *Catalog) PluralForms() int { return c.pluralForms }

// SetPluralForms sets the catalog-wide plural-form count.
func (c *Catalog) SetPluralForms(n int) {
	if n < 1 {
		n = 1
	}
	c.pluralForms = n
	c.dirty = true
}

// Add adopts an entry into the catalog. It fails when the entry's key
// cannot be composed or is already taken. The adopted entry reports its
// mutations to the catalog from then on.
func (c *Catalog) Add(e *Entry) error {
	key, err := e.Key()
	if err != nil {
		return err
	}
	if _, exists := c.index[key]; exists {
		return fmt.Errorf("catalog: duplicate key %q", key)
	}
	e.owner = c
	c.entries = append(c.entries, e)
	c.index[key] = e
	c.dirty = true
	return nil
}

// Lookup returns the entry stored under key, or nil.
func (c *Catalog) Lookup(key string) *Entry {
	return c.index[key]
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the entries in insertion order. The slice is a copy, the
// entries are not.
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Header returns the raw header text (the msgstr of the msgid "" block).
func (c *Catalog) Header() string { return c.header }

// SetHeader replaces the header text and re-derives the plural-form count
// from its Plural-Forms field, when present.
func (c *Catalog) SetHeader(header string) {
	c.header = header
	c.dirty = true
	if n, ok := headerPluralForms(header); ok {
		c.pluralForms = n
	}
}

// HeaderField returns the value of a header field by its canonical name,
// matched case-insensitively.
func (c *Catalog) HeaderField(name string) string {
	name = strings.ToLower(name)
	for _, line := range strings.Split(c.header, "\n") {
		k, v, found := strings.Cut(line, ":")
		if found && strings.ToLower(strings.TrimSpace(k)) == name {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// headerPluralForms extracts nplurals from a header's Plural-Forms field.
func headerPluralForms(header string) (int, bool) {
	for _, line := range strings.Split(header, "\n") {
		k, v, found := strings.Cut(line, ":")
		if !found || strings.ToLower(strings.TrimSpace(k)) != "plural-forms" {
			continue
		}
		_, rest, found := strings.Cut(v, "nplurals=")
		if !found {
			return 0, false
		}
		end := 0
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		n, err := strconv.Atoi(rest[:end])
		if err != nil || n < 1 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
