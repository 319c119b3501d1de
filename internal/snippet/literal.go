package snippet

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// parseObjectLiteral reads a restricted object literal: string, number and
// boolean scalars, null, nested plain objects and arrays. Keys may be quoted
// or bare identifiers; single-quoted strings and trailing commas are
// accepted because hand-written snippets use both.
func parseObjectLiteral(src string) (map[string]interface{}, error) {
	p := &literalParser{src: src}
	p.skipSpace()
	obj, err := p.parseObject()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing data after object")
	}
	return obj, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *literalParser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *literalParser) expect(c byte) error {
	got, ok := p.peek()
	if !ok || got != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *literalParser) parseObject() (map[string]interface{}, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	obj := make(map[string]interface{})
	for {
		p.skipSpace()
		if c, ok := p.peek(); ok && c == '}' {
			p.pos++
			return obj, nil
		}

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return nil, err
		}

		p.skipSpace()
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = value

		p.skipSpace()
		c, ok := p.peek()
		switch {
		case !ok:
			return nil, p.errorf("unterminated object")
		case c == ',':
			p.pos++
		case c == '}':
			// closed on next loop iteration
		default:
			return nil, p.errorf("expected ',' or '}'")
		}
	}
}

func (p *literalParser) parseArray() ([]interface{}, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}

	var arr []interface{}
	for {
		p.skipSpace()
		if c, ok := p.peek(); ok && c == ']' {
			p.pos++
			return arr, nil
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)

		p.skipSpace()
		c, ok := p.peek()
		switch {
		case !ok:
			return nil, p.errorf("unterminated array")
		case c == ',':
			p.pos++
		case c == ']':
		default:
			return nil, p.errorf("expected ',' or ']'")
		}
	}
}

func (p *literalParser) parseKey() (string, error) {
	c, ok := p.peek()
	if !ok {
		return "", p.errorf("expected key")
	}
	if c == '"' || c == '\'' {
		return p.parseString()
	}

	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected key")
	}
	return p.src[start:p.pos], nil
}

func (p *literalParser) parseValue() (interface{}, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errorf("expected value")
	}

	switch {
	case c == '"' || c == '\'':
		return p.parseString()
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseWord()
	}
}

func (p *literalParser) parseString() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated escape")
			}
			switch esc := p.src[p.pos]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'u':
				if p.pos+4 >= len(p.src) {
					return "", p.errorf("short unicode escape")
				}
				code, err := strconv.ParseUint(p.src[p.pos+1:p.pos+5], 16, 32)
				if err != nil {
					return "", p.errorf("bad unicode escape")
				}
				b.WriteRune(rune(code))
				p.pos += 4
			default:
				b.WriteByte(esc)
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *literalParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		break
	}
	value, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("invalid number %q", p.src[start:p.pos])
	}
	return value, nil
}

// parseWord handles the bare literals true, false and null.
func (p *literalParser) parseWord() (interface{}, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	switch p.src[start:p.pos] {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	default:
		p.pos = start
		return nil, p.errorf("unexpected value")
	}
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
