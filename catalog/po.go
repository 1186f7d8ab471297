package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-l10n/msgcat/escape"
)

// WriteTo renders the catalog in the gettext text form. Entries appear in
// insertion order; an encoding failure in any entry aborts the write.
func (c *Catalog) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	if err := c.writeHeader(bw); err != nil {
		return cw.n, err
	}
	for _, e := range c.entries {
		if err := bw.WriteByte('\n'); err != nil {
			return cw.n, err
		}
		if err := c.writeEntry(bw, e); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}

// String renders the catalog in the gettext text form, ignoring encoding
// failures. Meant for debugging; persist with WriteTo.
func (c *Catalog) String() string {
	var b strings.Builder
	c.WriteTo(&b) //nolint:errcheck
	return b.String()
}

func (c *Catalog) writeHeader(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, "msgid \"\"\n"); err != nil {
		return err
	}
	if err := writeQuoted(w, "msgstr", c.header); err != nil {
		return err
	}
	return nil
}

func (c *Catalog) writeEntry(w *bufio.Writer, e *Entry) error {
	for _, line := range commentLines(e.Comment(), "# ") {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	for _, comment := range e.autoComments {
		for _, line := range commentLines(comment, "#. ") {
			if _, err := w.WriteString(line + "\n"); err != nil {
				return err
			}
		}
	}
	if err := writeReferences(w, e.references); err != nil {
		return err
	}
	if flags := e.FlagsLine(); flags != "" {
		if _, err := w.WriteString(flags + "\n"); err != nil {
			return err
		}
	}

	if e.Context() != "" {
		if err := writeQuoted(w, "msgctxt", e.Context()); err != nil {
			return err
		}
	}
	if err := writeQuoted(w, "msgid", e.Original()); err != nil {
		return err
	}

	if !e.HasPlural() {
		return writeQuoted(w, "msgstr", e.Translation(0))
	}

	if err := writeQuoted(w, "msgid_plural", e.Plural()); err != nil {
		return err
	}
	forms := c.pluralForms
	if len(e.translations) > forms {
		forms = len(e.translations)
	}
	for i := 0; i < forms; i++ {
		if err := writeQuoted(w, fmt.Sprintf("msgstr[%d]", i), e.Translation(i)); err != nil {
			return err
		}
	}
	return nil
}

// writeQuoted writes `keyword "<escaped text>"`.
func writeQuoted(w *bufio.Writer, keyword, text string) error {
	encoded, err := escape.Encode(text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s \"%s\"\n", keyword, encoded)
	return err
}

// writeReferences renders "#:" lines, packing locations up to the
// customary width.
func writeReferences(w *bufio.Writer, refs []string) error {
	var line string
	for _, ref := range refs {
		if line != "" && len(line)+1+len(ref) > 75 {
			if _, err := w.WriteString("#:" + line + "\n"); err != nil {
				return err
			}
			line = ""
		}
		line += " " + ref
	}
	if line != "" {
		if _, err := w.WriteString("#:" + line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func commentLines(text, prefix string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRight(prefix+line, " ")
	}
	return out
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
