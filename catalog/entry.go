// Package catalog models editable gettext-style message catalogs: one
// Entry per translatable message, collected in a Catalog that enforces key
// uniqueness and tracks the plural-form count and a dirty flag.
package catalog

import (
	"errors"
	"strings"
)

// ErrEmptyOriginal is returned when a key is composed from an entry whose
// original text is empty.
var ErrEmptyOriginal = errors.New("catalog: empty original text")

// KeySeparator joins a context and an original into a catalog key.
const KeySeparator = "|"

// DefaultPluralForms is the plural-form count assumed when an entry is not
// owned by a catalog.
const DefaultPluralForms = 2

// Validity is the outcome of external validation of an entry. It drops
// back to ValidityUnknown whenever the original or a translation changes.
type Validity int

const (
	ValidityUnknown Validity = iota
	ValidityInvalid
	ValidityValid
)

// Owner is the collection an entry reports its mutations to.
type Owner interface {
	// MarkDirty records that an entry changed.
	MarkDirty()
	// PluralForms returns the number of plural-form slots entries must
	// fill to count as translated.
	PluralForms() int
}

// Entry is one message record: original text, optional plural, the
// translations keyed by plural-form slot, and the metadata the text form
// carries (context, comments, references, flags).
//
// An Entry is not safe for concurrent mutation.
type Entry struct {
	original     string
	plural       string
	translations []string
	context      string
	references   []string
	autoComments []string
	comment      string
	fuzzy        bool
	moreFlags    []string
	modified     bool
	automatic    bool
	validity     Validity

	owner Owner
}

// NewEntry creates an entry for an original text and an optional plural
// (empty string for none).
func NewEntry(original, plural string) *Entry {
	return &Entry{original: original, plural: plural}
}

// MakeKey composes the unique catalog key for a context/original pair. An
// empty original is an error regardless of context.
func MakeKey(context, original string) (string, error) {
	if original == "" {
		return "", ErrEmptyOriginal
	}
	if context == "" {
		return original, nil
	}
	return context + KeySeparator + original, nil
}

// Key returns the entry's unique catalog key.
func (e *Entry) Key() (string, error) {
	return MakeKey(e.context, e.original)
}

func (e *Entry) markDirty() {
	if e.owner != nil {
		e.owner.MarkDirty()
	}
}

// resetValidity is called for any change to the message text itself.
func (e *Entry) resetValidity() {
	e.validity = ValidityUnknown
}

// Original returns the original (source language) text.
func (e *Entry) Original() string { return e.original }

// SetOriginal replaces the original text.
func (e *Entry) SetOriginal(original string) {
	e.original = original
	e.resetValidity()
	e.markDirty()
}

// Plural returns the plural original, or "" when the entry has none.
func (e *Entry) Plural() string { return e.plural }

// HasPlural reports whether the entry carries a plural original.
func (e *Entry) HasPlural() bool { return e.plural != "" }

// SetPlural replaces the plural original; empty clears it.
func (e *Entry) SetPlural(plural string) {
	e.plural = plural
	e.resetValidity()
	e.markDirty()
}

// Context returns the disambiguation context, or "" for none.
func (e *Entry) Context() string { return e.context }

// SetContext sets the disambiguation context. Surrounding whitespace is
// trimmed; a blank context means none.
func (e *Entry) SetContext(context string) {
	e.context = strings.TrimSpace(context)
	e.markDirty()
}

// Translation returns the translation in plural-form slot i, or "" when
// the slot is unset.
func (e *Entry) Translation(i int) string {
	if i < 0 || i >= len(e.translations) {
		return ""
	}
	return e.translations[i]
}

// Translations returns a copy of the translation slots.
func (e *Entry) Translations() []string {
	out := make([]string, len(e.translations))
	copy(out, e.translations)
	return out
}

// SetTranslation stores a translation in plural-form slot i, growing the
// slot list with empty strings as needed. A negative slot panics.
func (e *Entry) SetTranslation(i int, translation string) {
	if i < 0 {
		panic("catalog: negative plural-form slot")
	}
	for len(e.translations) <= i {
		e.translations = append(e.translations, "")
	}
	e.translations[i] = translation
	e.resetValidity()
	e.markDirty()
}

// pluralForms returns the plural-form count the entry is measured
// against.
func (e *Entry) pluralForms() int {
	if e.owner != nil {
		return e.owner.PluralForms()
	}
	return DefaultPluralForms
}

// IsTranslated reports whether the entry is fully translated: slot 0 for a
// plain entry, all of slots 0..PluralForms-1 for a plural entry.
func (e *Entry) IsTranslated() bool {
	if !e.HasPlural() {
		return e.Translation(0) != ""
	}
	for i := 0; i < e.pluralForms(); i++ {
		if e.Translation(i) == "" {
			return false
		}
	}
	return true
}

// AddReference records a source location, suppressing duplicates.
func (e *Entry) AddReference(ref string) {
	for _, existing := range e.references {
		if existing == ref {
			return
		}
	}
	e.references = append(e.references, ref)
	e.markDirty()
}

// References returns a copy of the recorded source locations.
func (e *Entry) References() []string {
	out := make([]string, len(e.references))
	copy(out, e.references)
	return out
}

// ClearReferences drops all recorded source locations.
func (e *Entry) ClearReferences() {
	e.references = nil
	e.markDirty()
}

// AddAutoComment appends a generated comment. With unique set, a comment
// already present is not appended again.
func (e *Entry) AddAutoComment(comment string, unique bool) {
	if unique {
		for _, existing := range e.autoComments {
			if existing == comment {
				return
			}
		}
	}
	e.autoComments = append(e.autoComments, comment)
	e.markDirty()
}

// AutoComments returns a copy of the generated comments, in insertion
// order.
func (e *Entry) AutoComments() []string {
	out := make([]string, len(e.autoComments))
	copy(out, e.autoComments)
	return out
}

// Comment returns the free-text translator comment.
func (e *Entry) Comment() string { return e.comment }

// SetComment replaces the translator comment.
func (e *Entry) SetComment(comment string) {
	e.comment = comment
	e.markDirty()
}

// Fuzzy reports whether the translation is marked as unreviewed.
func (e *Entry) Fuzzy() bool { return e.fuzzy }

// SetFuzzy sets or clears the fuzzy flag.
func (e *Entry) SetFuzzy(fuzzy bool) {
	e.fuzzy = fuzzy
	e.markDirty()
}

// MoreFlags returns a copy of the flags besides fuzzy.
func (e *Entry) MoreFlags() []string {
	out := make([]string, len(e.moreFlags))
	copy(out, e.moreFlags)
	return out
}

// IsInFormat reports whether the entry carries a "<name>-format" flag.
func (e *Entry) IsInFormat(name string) bool {
	want := name + "-format"
	for _, flag := range e.moreFlags {
		if flag == want {
			return true
		}
	}
	return false
}

// SetFlagsLine replaces fuzzy and the extra flags from a flags line, with
// or without the "#," prefix. An empty line clears all flags.
func (e *Entry) SetFlagsLine(line string) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#,"))
	e.fuzzy = false
	e.moreFlags = nil
	for _, flag := range strings.Split(line, ",") {
		flag = strings.TrimSpace(flag)
		switch flag {
		case "":
		case "fuzzy":
			e.fuzzy = true
		default:
			e.moreFlags = append(e.moreFlags, flag)
		}
	}
	e.markDirty()
}

// FlagsLine renders the "#," flags line, or "" when no flag is set.
func (e *Entry) FlagsLine() string {
	var flags []string
	if e.fuzzy {
		flags = append(flags, "fuzzy")
	}
	flags = append(flags, e.moreFlags...)
	if len(flags) == 0 {
		return ""
	}
	return "#, " + strings.Join(flags, ", ")
}

// Modified reports the modified state flag.
func (e *Entry) Modified() bool { return e.modified }

// SetModified stores the modified state flag. Pure storage, no owner
// notification.
func (e *Entry) SetModified(modified bool) { e.modified = modified }

// Automatic reports whether the entry was produced by extraction.
func (e *Entry) Automatic() bool { return e.automatic }

// SetAutomatic stores the automatic state flag. Pure storage, no owner
// notification.
func (e *Entry) SetAutomatic(automatic bool) { e.automatic = automatic }

// Validity returns the entry's validation state.
func (e *Entry) Validity() Validity { return e.validity }

// SetValidity records the outcome of external validation.
func (e *Entry) SetValidity(v Validity) {
	e.validity = v
}

// Clone returns an independent deep copy of the entry, detached from any
// owner.
func (e *Entry) Clone() *Entry {
	clone := *e
	clone.owner = nil
	clone.translations = append([]string(nil), e.translations...)
	clone.references = append([]string(nil), e.references...)
	clone.autoComments = append([]string(nil), e.autoComments...)
	clone.moreFlags = append([]string(nil), e.moreFlags...)
	return &clone
}
