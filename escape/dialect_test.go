package escape

import (
	"errors"

	. "gopkg.in/check.v1"
)

var _ = Suite(dialectSuite{})

type dialectSuite struct{}

func (dialectSuite) TestModeNone(c *C) {
	got, err := Unescape(`anything \n goes "here" &amp;`, ModeNone)
	c.Assert(err, IsNil)
	c.Check(got, Equals, `anything \n goes "here" &amp;`)
}

func (dialectSuite) TestModeEscaped(c *C) {
	for _, test := range []struct {
		in, expected string
	}{
		{`it\'s`, "it's"},
		{`say \"hi\"`, `say "hi"`},
		{`C:\\temp`, `C:\temp`},
		{`\a\b\f\n\r\t\v`, "\a\b\f\n\r\t\v"},
		{"no escapes", "no escapes"},
	} {
		got, err := Unescape(test.in, ModeEscaped)
		c.Assert(err, IsNil, Commentf("input: %q", test.in))
		c.Check(got, Equals, test.expected)
	}
}

func (dialectSuite) TestModeEscapedFailures(c *C) {
	for _, in := range []string{
		`\q`,
		`\x41`,
		`\u0041`,
		`\U00000041`,
		`\101`,
		`broken\`,
	} {
		_, err := Unescape(in, ModeEscaped)
		c.Assert(err, NotNil, Commentf("input: %q", in))
		var synErr *SyntaxError
		c.Assert(errors.As(err, &synErr), Equals, true)
		c.Check(synErr.Mode, Equals, ModeEscaped)
	}
}

func (dialectSuite) TestModeVerbatim(c *C) {
	for _, test := range []struct {
		in, expected string
	}{
		{`say ""hi""`, `say "hi"`},
		{`""""`, `""`},
		{`C:\temp\`, `C:\temp\`},
		{"plain", "plain"},
	} {
		got, err := Unescape(test.in, ModeVerbatim)
		c.Assert(err, IsNil, Commentf("input: %q", test.in))
		c.Check(got, Equals, test.expected)
	}

	for _, in := range []string{`lone " quote`, `trailing"`, `"`} {
		_, err := Unescape(in, ModeVerbatim)
		c.Assert(err, NotNil, Commentf("input: %q", in))
		var synErr *SyntaxError
		c.Assert(errors.As(err, &synErr), Equals, true)
		c.Check(synErr.Mode, Equals, ModeVerbatim)
	}
}

func (dialectSuite) TestModeMarkup(c *C) {
	got, err := Unescape("&lt;a href=&quot;x&quot;&gt; &amp; &apos;quoted&apos;", ModeMarkup)
	c.Assert(err, IsNil)
	c.Check(got, Equals, `<a href="x"> & 'quoted'`)

	_, err = Unescape("broken &amp", ModeMarkup)
	c.Check(errors.Is(err, ErrUnterminatedEntity), Equals, true)

	_, err = Unescape("&nbsp; is not predefined", ModeMarkup)
	c.Check(errors.Is(err, ErrUnknownEntity), Equals, true)
}

func (dialectSuite) TestBadMode(c *C) {
	_, err := Unescape("text", Mode(42))
	c.Check(errors.Is(err, ErrBadMode), Equals, true)
}
