package msgcat

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-l10n/msgcat/pluralforms"
)

const (
	leMagic = 0x950412de
	beMagic = 0xde120495
)

// moSource is a Source backed by a compiled catalog in the classic mo
// layout. The whole bundle is decoded up front; lookups are map hits.
type moSource struct {
	messages map[string][]string
	info     map[string]string
	plural   pluralforms.Expression
}

func (m *moSource) Lookup(msgid string) (string, bool) {
	forms, ok := m.messages[msgid]
	if !ok || forms[0] == "" {
		return "", false
	}
	return forms[0], true
}

func (m *moSource) LookupPlural(msgid string, n uint32) (string, bool) {
	forms, ok := m.messages[msgid]
	if !ok {
		return "", false
	}
	var idx int
	if m.plural != nil {
		idx = m.plural.Eval(n)
	} else if n != 1 {
		// no usable Plural-Forms header: Germanic rule
		idx = 1
	}
	if idx < 0 || idx >= len(forms) || forms[idx] == "" {
		return "", false
	}
	return forms[idx], true
}

// Info returns the header fields of the bundle, lower-cased keys.
func (m *moSource) Info() map[string]string {
	return m.info
}

type moHeader struct {
	Magic          uint32
	Version        uint32
	NumStrings     uint32
	OrigTabOffset  uint32
	TransTabOffset uint32
	HashTabSize    uint32
	HashTabOffset  uint32
}

func (h moHeader) majorVersion() uint32 { return h.Version >> 16 }

// tableString extracts string i from a length/offset table.
func tableString(data, table []byte, i int, order binary.ByteOrder) ([]byte, error) {
	strLen := order.Uint32(table[8*i:])
	strOffset := order.Uint32(table[8*i+4:])
	end := uint64(strLen) + uint64(strOffset)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("string %d data (len=%x, offset=%x) is out of bounds", i, strLen, strOffset)
	}
	return data[strOffset : strOffset+strLen], nil
}

// parseMO decodes a compiled bundle into a Source.
func parseMO(data []byte) (*moSource, error) {
	var header moHeader
	headerSize := binary.Size(&header)
	if len(data) < headerSize {
		return nil, fmt.Errorf("message catalog is too short")
	}

	var order binary.ByteOrder = binary.LittleEndian
	switch order.Uint32(data) {
	case leMagic:
		// nothing
	case beMagic:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("wrong magic: %d", order.Uint32(data))
	}
	if err := binary.Read(bytes.NewReader(data[:headerSize]), order, &header); err != nil {
		return nil, err
	}
	if header.majorVersion() > 1 {
		return nil, fmt.Errorf("unsupported version: %d", header.majorVersion())
	}

	numStrings := int(header.NumStrings)
	tabLen := uint64(8) * uint64(numStrings)
	if uint64(header.OrigTabOffset)+tabLen > uint64(len(data)) {
		return nil, fmt.Errorf("original strings table out of bounds")
	}
	if uint64(header.TransTabOffset)+tabLen > uint64(len(data)) {
		return nil, fmt.Errorf("translated strings table out of bounds")
	}
	origTab := data[header.OrigTabOffset:][:tabLen]
	transTab := data[header.TransTabOffset:][:tabLen]

	src := &moSource{messages: make(map[string][]string, numStrings)}
	for i := 0; i < numStrings; i++ {
		msgid, err := tableString(data, origTab, i, order)
		if err != nil {
			return nil, err
		}
		msgstr, err := tableString(data, transTab, i, order)
		if err != nil {
			return nil, err
		}

		// msgid may carry a NUL-joined plural; lookups key on the
		// singular alone (with any context prefix intact).
		key := string(msgid)
		if zero := bytes.IndexByte(msgid, 0); zero >= 0 {
			key = string(msgid[:zero])
		}

		forms := strings.Split(string(msgstr), "\x00")
		src.messages[key] = forms

		if key == "" {
			src.readInfo(forms[0])
		}
	}
	return src, nil
}

// readInfo parses the header pseudo-entry. A bad Plural-Forms expression is
// not fatal; the source falls back to the Germanic rule.
func (m *moSource) readInfo(info string) {
	m.info = make(map[string]string)
	lastk := ""
	for _, line := range strings.Split(info, "\n") {
		item := strings.TrimSpace(line)
		if item == "" {
			continue
		}
		k, v, found := strings.Cut(item, ":")
		if !found {
			if lastk != "" {
				m.info[lastk] += "\n" + item
			}
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		m.info[k] = v
		lastk = k
	}

	if pf, ok := m.info["plural-forms"]; ok {
		if _, expr, found := strings.Cut(pf, "plural="); found {
			compiled, err := pluralforms.Compile(expr)
			if err != nil {
				Logger.Debug().Err(err).Str("plural-forms", pf).
					Msg("cannot compile plural expression, using Germanic rule")
				return
			}
			m.plural = compiled
		}
	}
}
