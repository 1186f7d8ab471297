package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-l10n/msgcat/escape"
)

// parseState accumulates one entry block while scanning.
type parseState struct {
	comment      []string
	autoComments []string
	references   []string
	flagsLine    string

	context     string
	msgid       string
	msgidPlural string
	msgstrs     []string

	sawMsgid bool
	// last points at the field continuation lines append to.
	last *string
}

func (s *parseState) reset() {
	*s = parseState{}
}

// Parse reads a catalog from its text form. The header pseudo-entry
// (msgid "") populates the catalog header and its plural-form count;
// obsolete entries ("#~") are skipped.
func Parse(r io.Reader) (*Catalog, error) {
	c := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var state parseState
	lineno := 0

	flush := func() error {
		if !state.sawMsgid {
			state.reset()
			return nil
		}
		err := c.addParsed(&state)
		state.reset()
		return err
	}

	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			if err := flush(); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			continue
		case strings.HasPrefix(line, "#~"):
			// obsolete entry
			continue
		case strings.HasPrefix(line, "#,"):
			state.flagsLine = line
			continue
		case strings.HasPrefix(line, "#."):
			state.autoComments = append(state.autoComments, strings.TrimSpace(line[2:]))
			continue
		case strings.HasPrefix(line, "#:"):
			state.references = append(state.references, strings.Fields(line[2:])...)
			continue
		case strings.HasPrefix(line, "#|"):
			// previous-msgid annotations are not modeled
			continue
		case strings.HasPrefix(line, "#"):
			state.comment = append(state.comment, strings.TrimSpace(strings.TrimPrefix(line[1:], " ")))
			continue
		}

		// a new message starting without a separating blank line ends
		// the previous block
		if state.sawMsgid && (strings.HasPrefix(line, "msgctxt ") || strings.HasPrefix(line, "msgid ")) {
			if err := flush(); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
		}

		if err := parseMessageLine(&state, line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineno, err)
	}
	return c, nil
}

func parseMessageLine(state *parseState, line string) error {
	// bare continuation line
	if strings.HasPrefix(line, "\"") {
		if state.last == nil {
			return fmt.Errorf("stray continuation line")
		}
		text, err := unquote(line)
		if err != nil {
			return err
		}
		*state.last += text
		return nil
	}

	keyword, rest, found := strings.Cut(line, " ")
	if !found {
		return fmt.Errorf("malformed line %q", line)
	}
	text, err := unquote(strings.TrimSpace(rest))
	if err != nil {
		return err
	}

	switch {
	case keyword == "msgctxt":
		state.context = text
		state.last = &state.context
	case keyword == "msgid":
		state.msgid = text
		state.sawMsgid = true
		state.last = &state.msgid
	case keyword == "msgid_plural":
		state.msgidPlural = text
		state.last = &state.msgidPlural
	case keyword == "msgstr":
		state.msgstrs = append(state.msgstrs, text)
		state.last = &state.msgstrs[len(state.msgstrs)-1]
	case strings.HasPrefix(keyword, "msgstr["):
		idx := 0
		if _, err := fmt.Sscanf(keyword, "msgstr[%d]", &idx); err != nil || idx < 0 {
			return fmt.Errorf("malformed plural slot %q", keyword)
		}
		for len(state.msgstrs) <= idx {
			state.msgstrs = append(state.msgstrs, "")
		}
		state.msgstrs[idx] = text
		state.last = &state.msgstrs[idx]
	default:
		return fmt.Errorf("unknown keyword %q", keyword)
	}
	return nil
}

// unquote strips the surrounding quotes of a wire-format chunk and decodes
// the escapes inside.
func unquote(chunk string) (string, error) {
	if len(chunk) < 2 || chunk[0] != '"' || chunk[len(chunk)-1] != '"' {
		return "", fmt.Errorf("malformed string %q", chunk)
	}
	return escape.Decode(chunk[1 : len(chunk)-1])
}

// addParsed converts a finished block into an Entry, or into the header.
func (c *Catalog) addParsed(state *parseState) error {
	if state.msgid == "" && state.context == "" {
		if len(state.msgstrs) > 0 {
			c.SetHeader(state.msgstrs[0])
		}
		return nil
	}

	e := NewEntry(state.msgid, state.msgidPlural)
	e.SetContext(state.context)
	for i, msgstr := range state.msgstrs {
		e.SetTranslation(i, msgstr)
	}
	if len(state.comment) > 0 {
		e.SetComment(strings.Join(state.comment, "\n"))
	}
	for _, comment := range state.autoComments {
		e.AddAutoComment(comment, false)
	}
	for _, ref := range state.references {
		e.AddReference(ref)
	}
	if state.flagsLine != "" {
		e.SetFlagsLine(state.flagsLine)
	}
	return c.Add(e)
}
