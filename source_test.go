package msgcat

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func writeTestBundle(t *testing.T, root, locale string) {
	t.Helper()
	dir := filepath.Join(root, locale)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "messages.messages.mo"), testBundle(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirLoader(t *testing.T) {
	root := t.TempDir()
	writeTestBundle(t, root, "pl")

	d := NewDomain("messages", root)
	assertEqual(t, "cześć", d.Locale("pl").GetString("greeting"))
	assertEqual(t, "%d plików", d.Locale("pl_PL").GetPluralString("%d file", "%d files", 5))
	assertEqual(t, "łuk", d.Locale("pl").GetParticularString("weapon", "bow"))
}

func TestDirLoaderUnderscoredDirectory(t *testing.T) {
	root := t.TempDir()
	writeTestBundle(t, root, "pt_BR")

	d := NewDomain("messages", root)
	// the engine canonicalizes to pt-BR; the underscored directory is
	// still found
	assertEqual(t, "cześć", d.Locale("pt-BR").GetString("greeting"))
}

func TestDirLoaderMissing(t *testing.T) {
	loader := DirLoader{Root: t.TempDir()}
	src, err := loader.Load("messages", "de")
	if err != nil {
		t.Fatal(err)
	}
	if src != nil {
		t.Fatalf("expected no source, got %v", src)
	}
}

func TestDirLoaderCorruptBundle(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "de")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "messages.messages.mo"), []byte("not a bundle"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := DirLoader{Root: root}
	if _, err := loader.Load("messages", "de"); err == nil {
		t.Fatal("expected error for corrupt bundle")
	}

	// the engine absorbs the failure
	d := NewDomain("messages", root)
	assertEqual(t, "greeting", d.Locale("de").GetString("greeting"))
}

func TestFSLoader(t *testing.T) {
	bundles := fstest.MapFS{
		"locale/pl/messages.messages.mo": &fstest.MapFile{Data: testBundle()},
	}
	d := &Domain{
		Name:    "messages",
		Loaders: []Loader{FSLoader{FS: bundles, Root: "locale"}},
	}
	assertEqual(t, "cześć", d.Locale("pl").GetString("greeting"))
	assertEqual(t, "greeting", d.Locale("de").GetString("greeting"))
}

func TestFSLoaderNoRoot(t *testing.T) {
	bundles := fstest.MapFS{
		"pl/messages.messages.mo": &fstest.MapFile{Data: testBundle()},
	}
	loader := FSLoader{FS: bundles}
	src, err := loader.Load("messages", "pl")
	if err != nil {
		t.Fatal(err)
	}
	if src == nil {
		t.Fatal("expected a source")
	}
	msgstr, ok := src.Lookup("greeting")
	assertEqual(t, true, ok)
	assertEqual(t, "cześć", msgstr)
}
