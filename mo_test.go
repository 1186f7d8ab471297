package msgcat

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"
)

type moEntry struct {
	msgid  string
	msgstr string
}

// buildMO assembles a little-endian compiled bundle from msgid/msgstr
// pairs. Plural forms and context prefixes are expressed with the usual
// NUL and EOT bytes inside the strings.
func buildMO(entries ...moEntry) []byte {
	sort.Slice(entries, func(i, j int) bool { return entries[i].msgid < entries[j].msgid })

	n := len(entries)
	headerSize := 28
	origTab := headerSize
	transTab := origTab + 8*n
	dataStart := transTab + 8*n

	var data bytes.Buffer
	var orig, trans []uint32 // len, offset pairs
	for _, e := range entries {
		orig = append(orig, uint32(len(e.msgid)), uint32(dataStart+data.Len()))
		data.WriteString(e.msgid)
		data.WriteByte(0)
	}
	for _, e := range entries {
		trans = append(trans, uint32(len(e.msgstr)), uint32(dataStart+data.Len()))
		data.WriteString(e.msgstr)
		data.WriteByte(0)
	}

	var out bytes.Buffer
	le := binary.LittleEndian
	for _, v := range []uint32{leMagic, 0, uint32(n), uint32(origTab), uint32(transTab), 0, 0} {
		binary.Write(&out, le, v)
	}
	for _, v := range orig {
		binary.Write(&out, le, v)
	}
	for _, v := range trans {
		binary.Write(&out, le, v)
	}
	out.Write(data.Bytes())
	return out.Bytes()
}

const polishHeader = "Content-Type: text/plain; charset=UTF-8\n" +
	"Plural-Forms: nplurals=3; plural=n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2;\n"

func testBundle() []byte {
	return buildMO(
		moEntry{"", polishHeader},
		moEntry{"greeting", "cześć"},
		moEntry{"%d file\x00%d files", "%d plik\x00%d pliki\x00%d plików"},
		moEntry{"weapon\x04bow", "łuk"},
		moEntry{"untranslated", ""},
	)
}

func TestParseMOLookup(t *testing.T) {
	src, err := parseMO(testBundle())
	if err != nil {
		t.Fatal(err)
	}

	msgstr, ok := src.Lookup("greeting")
	assertEqual(t, true, ok)
	assertEqual(t, "cześć", msgstr)

	_, ok = src.Lookup("missing")
	assertEqual(t, false, ok)

	// empty translations are misses, so chains can fall through
	_, ok = src.Lookup("untranslated")
	assertEqual(t, false, ok)

	msgstr, ok = src.Lookup("weapon\x04bow")
	assertEqual(t, true, ok)
	assertEqual(t, "łuk", msgstr)

	assertEqual(t, "UTF-8", src.Info()["content-type"][len("text/plain; charset="):])
}

func TestParseMOPlural(t *testing.T) {
	src, err := parseMO(testBundle())
	if err != nil {
		t.Fatal(err)
	}
	for n, expected := range map[uint32]string{
		1:  "%d plik",
		2:  "%d pliki",
		5:  "%d plików",
		22: "%d pliki",
	} {
		msgstr, ok := src.LookupPlural("%d file", n)
		assertEqual(t, true, ok)
		assertEqual(t, expected, msgstr)
	}

	_, ok := src.LookupPlural("missing", 1)
	assertEqual(t, false, ok)
}

func TestParseMOGermanicFallback(t *testing.T) {
	// no header at all: the Germanic rule applies
	src, err := parseMO(buildMO(
		moEntry{"%d beer\x00%d beers", "%d Bier\x00%d Biere"},
	))
	if err != nil {
		t.Fatal(err)
	}
	one, _ := src.LookupPlural("%d beer", 1)
	many, _ := src.LookupPlural("%d beer", 3)
	assertEqual(t, "%d Bier", one)
	assertEqual(t, "%d Biere", many)
}

func TestParseMOBadPluralFormsNotFatal(t *testing.T) {
	src, err := parseMO(buildMO(
		moEntry{"", "Plural-Forms: nplurals=2; plural=((broken;\n"},
		moEntry{"%d beer\x00%d beers", "%d Bier\x00%d Biere"},
	))
	if err != nil {
		t.Fatal(err)
	}
	many, ok := src.LookupPlural("%d beer", 3)
	assertEqual(t, true, ok)
	assertEqual(t, "%d Biere", many)
}

func TestParseMOBigEndian(t *testing.T) {
	data := buildMO(moEntry{"greeting", "hello"})
	// byte-swap every uint32 of the header and the tables
	swapped := append([]byte(nil), data...)
	for i := 0; i < 28+2*8; i += 4 {
		swapped[i], swapped[i+1], swapped[i+2], swapped[i+3] =
			data[i+3], data[i+2], data[i+1], data[i]
	}
	src, err := parseMO(swapped)
	if err != nil {
		t.Fatal(err)
	}
	msgstr, ok := src.Lookup("greeting")
	assertEqual(t, true, ok)
	assertEqual(t, "hello", msgstr)
}

func TestParseMOCorrupt(t *testing.T) {
	valid := buildMO(moEntry{"greeting", "hello"})

	for name, data := range map[string][]byte{
		"empty":     nil,
		"too short": valid[:10],
		"bad magic": append([]byte{1, 2, 3, 4}, valid[4:]...),
		"bad version": func() []byte {
			d := append([]byte(nil), valid...)
			binary.LittleEndian.PutUint32(d[4:], 2<<16)
			return d
		}(),
		"table out of bounds": func() []byte {
			d := append([]byte(nil), valid...)
			binary.LittleEndian.PutUint32(d[12:], 1<<30) // orig table offset
			return d
		}(),
		"string out of bounds": func() []byte {
			d := append([]byte(nil), valid...)
			binary.LittleEndian.PutUint32(d[28+4:], 1<<30) // first msgid offset
			return d
		}(),
	} {
		if _, err := parseMO(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
