package msgcat

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// osGetenv is swapped out by tests.
var osGetenv = os.Getenv

// stripVariants drops the codeset and modifier suffixes a POSIX locale name
// may carry, e.g. "en_AU.UTF-8@colloquial" becomes "en_AU".
func stripVariants(locale string) string {
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	return locale
}

// parseLocale canonicalizes a locale name in either POSIX ("pt_BR") or
// BCP 47 ("pt-BR") spelling. The root locale is returned for the empty
// string, "C", "POSIX", and anything unparseable.
func parseLocale(locale string) language.Tag {
	locale = stripVariants(strings.TrimSpace(locale))
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// ancestry returns the locale itself followed by its ancestor locales, most
// specific first, excluding the root. The result is empty for the root
// locale.
func ancestry(tag language.Tag) []string {
	var names []string
	for t := tag; t != language.Und; t = t.Parent() {
		names = append(names, t.String())
	}
	return names
}

// UserLanguages returns the user's preferred locales from the environment.
// LANGUAGE takes priority and may hold a colon-separated list; otherwise the
// usual LC_ALL, LC_MESSAGES, LANG precedence applies.
func UserLanguages() []string {
	if list := osGetenv("LANGUAGE"); list != "" {
		return strings.Split(list, ":")
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if locale := osGetenv(name); locale != "" {
			return []string{locale}
		}
	}
	return nil
}

// userLocale picks the first usable entry from UserLanguages, or the root
// locale when unset.
func userLocale() language.Tag {
	for _, locale := range UserLanguages() {
		if tag := parseLocale(locale); tag != language.Und {
			return tag
		}
	}
	return language.Und
}
