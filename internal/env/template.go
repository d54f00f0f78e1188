package env

import (
	"fmt"
	"strings"
)

type part struct {
	text  string
	isVar bool
}

// Template is a parsed evaluated string: literal text interleaved with
// $name and ${name} references.
type Template struct {
	raw   string
	parts []part
}

// Literal returns a Template with no references.
func Literal(s string) *Template {
	if s == "" {
		return &Template{}
	}
	return &Template{raw: s, parts: []part{{text: s}}}
}

// ParseTemplate parses s. Supported escapes are $$, "$ ", $: and a $ at the
// end of a line, which joins it with the next line minus its indentation.
func ParseTemplate(s string) (*Template, error) {
	t := &Template{raw: s}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' {
			lit.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			return nil, fmt.Errorf("template %q: trailing '$'", s)
		}
		switch c = s[i]; {
		case c == '$' || c == ' ' || c == ':':
			lit.WriteByte(c)
		case c == '\n' || (c == '\r' && i+1 < len(s) && s[i+1] == '\n'):
			if c == '\r' {
				i++
			}
			for i+1 < len(s) && s[i+1] == ' ' {
				i++
			}
		case c == '{':
			end := i + 1
			for end < len(s) && isVarChar(s[end], true) {
				end++
			}
			if end == len(s) || s[end] != '}' || end == i+1 {
				return nil, fmt.Errorf("template %q: bad ${...} reference at offset %d", s, i-1)
			}
			flush()
			t.parts = append(t.parts, part{text: s[i+1 : end], isVar: true})
			i = end
		case isVarChar(c, false):
			end := i
			for end < len(s) && isVarChar(s[end], false) {
				end++
			}
			flush()
			t.parts = append(t.parts, part{text: s[i:end], isVar: true})
			i = end - 1
		default:
			return nil, fmt.Errorf("template %q: bad $-escape at offset %d", s, i-1)
		}
	}
	flush()
	return t, nil
}

// MustParseTemplate is ParseTemplate that panics on error. For tests and
// package-level literals.
func MustParseTemplate(s string) *Template {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func isVarChar(c byte, braced bool) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	case c == '.':
		return braced
	}
	return false
}

// Raw returns the unparsed source.
func (t *Template) Raw() string { return t.raw }

// Vars returns the referenced variable names in order of appearance.
func (t *Template) Vars() []string {
	var names []string
	for _, p := range t.parts {
		if p.isVar {
			names = append(names, p.text)
		}
	}
	return names
}

// Eval expands the template, resolving references through lookup.
func (t *Template) Eval(lookup func(name string) string) string {
	switch len(t.parts) {
	case 0:
		return ""
	case 1:
		if !t.parts[0].isVar {
			return t.parts[0].text
		}
	}
	var b strings.Builder
	for _, p := range t.parts {
		if p.isVar {
			b.WriteString(lookup(p.text))
		} else {
			b.WriteString(p.text)
		}
	}
	return b.String()
}

// EvalIn expands the template against a scope.
func (t *Template) EvalIn(e *Env) string {
	return t.Eval(e.Get)
}
