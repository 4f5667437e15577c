package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/benoitkugler/gridlayout/utils"
)

// Tokenize splits css into component values: blocks and functions hold
// their nested tokens, and blocks left open at the end of the input are
// closed. Comments are dropped.
func Tokenize(css string) []Token {
	s := scanner{src: css, line: 1, col: 1}
	return s.list(0)
}

// scanner walks the source, tracking the position of src[off].
type scanner struct {
	src       string
	off       int
	line, col int
}

func (s *scanner) mark() at { return at{pos: Pos{s.line, s.col}, off: s.off} }

func (s *scanner) eof() bool { return s.off >= len(s.src) }

// peek returns the byte at off+k, or 0 past the end.
func (s *scanner) peek(k int) byte {
	if s.off+k < len(s.src) {
		return s.src[s.off+k]
	}
	return 0
}

func (s *scanner) hasPrefix(prefix string) bool { return strings.HasPrefix(s.src[s.off:], prefix) }

// advance consumes n bytes.
func (s *scanner) advance(n int) {
	for _, c := range []byte(s.src[s.off : s.off+n]) {
		if c == '\n' {
			s.line++
			s.col = 1
		} else if utf8.RuneStart(c) {
			s.col++
		}
	}
	s.off += n
}

// nextRune consumes and returns the next rune.
func (s *scanner) nextRune() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.off:])
	s.advance(size)
	return r
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isNameStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c >= utf8.RuneSelf
}

func isNameChar(c byte) bool { return isNameStart(c) || isDigit(c) || c == '-' }

// isEscape returns true for a backslash starting a valid escape at off+k.
func (s *scanner) isEscape(k int) bool {
	return s.peek(k) == '\\' && s.peek(k+1) != '\n' && s.off+k+1 < len(s.src)
}

// startsIdent returns true if an identifier starts at off+k.
func (s *scanner) startsIdent(k int) bool {
	c := s.peek(k)
	if c == '-' {
		c = s.peek(k + 1)
		return isNameStart(c) || c == '-' || s.isEscape(k+1)
	}
	return isNameStart(c) || s.isEscape(k)
}

// startsNumber returns true if a number starts at off.
func (s *scanner) startsNumber() bool {
	c := s.peek(0)
	if c == '+' || c == '-' {
		c = s.peek(1)
		return isDigit(c) || (c == '.' && isDigit(s.peek(2)))
	}
	return isDigit(c) || (c == '.' && isDigit(s.peek(1)))
}

// list consumes tokens up to the closing byte end, which is consumed,
// or to the end of the input. end is 0 at the top level.
func (s *scanner) list(end byte) []Token {
	var out []Token
	for {
		s.skipComments()
		if s.eof() {
			return out
		}
		c := s.peek(0)
		if c == ')' || c == ']' || c == '}' {
			start := s.mark()
			s.advance(1)
			if c == end {
				return out
			}
			out = append(out, ParseError{at: start, Message: "Unmatched " + string(c)})
			continue
		}
		out = append(out, s.token())
	}
}

func (s *scanner) skipComments() {
	for s.hasPrefix("/*") {
		end := strings.Index(s.src[s.off+2:], "*/")
		if end == -1 {
			s.advance(len(s.src) - s.off)
			return
		}
		s.advance(end + 4)
	}
}

// token consumes one token, which is not a closing bracket.
func (s *scanner) token() Token {
	start := s.mark()
	c := s.peek(0)
	switch {
	case isSpace(c):
		for isSpace(s.peek(0)) || s.hasPrefix("/*") {
			if s.hasPrefix("/*") {
				s.skipComments()
			} else {
				s.advance(1)
			}
		}
		return Whitespace{start}
	case c == '"' || c == '\'':
		return s.string(start)
	case s.startsNumber():
		return s.number(start)
	case s.startsIdent(0):
		name := s.name()
		if s.peek(0) == '(' {
			s.advance(1)
			return FunctionBlock{at: start, Name: name, Arguments: s.list(')')}
		}
		return Ident{at: start, Value: name}
	case c == '@' && s.startsIdent(1):
		s.advance(1)
		return AtKeyword{at: start, Value: s.name()}
	case c == '#' && (isNameChar(s.peek(1)) || s.isEscape(1)):
		s.advance(1)
		return Hash{at: start, Value: s.name()}
	case c == '(':
		s.advance(1)
		return ParenthesesBlock{at: start, Arguments: s.list(')')}
	case c == '[':
		s.advance(1)
		return SquareBracketsBlock{at: start, Arguments: s.list(']')}
	case c == '{':
		s.advance(1)
		return CurlyBracketsBlock{at: start, Arguments: s.list('}')}
	default:
		return Literal{at: start, Value: string(s.nextRune())}
	}
}

// name consumes a sequence of name characters and escapes.
func (s *scanner) name() string {
	var b strings.Builder
	for !s.eof() {
		switch c := s.peek(0); {
		case isNameChar(c) && c < utf8.RuneSelf:
			b.WriteByte(c)
			s.advance(1)
		case c >= utf8.RuneSelf:
			b.WriteRune(s.nextRune())
		case s.isEscape(0):
			b.WriteRune(s.escape())
		default:
			return b.String()
		}
	}
	return b.String()
}

// escape consumes a backslash and the escaped code point.
func (s *scanner) escape() rune {
	s.advance(1)
	n := 0
	for n < 6 && isHex(s.peek(n)) {
		n++
	}
	if n == 0 {
		return s.nextRune()
	}
	v, _ := strconv.ParseUint(s.src[s.off:s.off+n], 16, 32)
	s.advance(n)
	if isSpace(s.peek(0)) {
		s.advance(1)
	}
	if v == 0 || v > utf8.MaxRune || (0xD800 <= v && v <= 0xDFFF) {
		return utf8.RuneError
	}
	return rune(v)
}

// string consumes a quoted string. An unescaped newline makes it invalid;
// the end of the input closes it.
func (s *scanner) string(start at) Token {
	quote := s.peek(0)
	s.advance(1)
	var b strings.Builder
	for !s.eof() {
		switch c := s.peek(0); c {
		case quote:
			s.advance(1)
			return String{at: start, Value: b.String()}
		case '\n':
			return ParseError{at: start, Message: "Bad string"}
		case '\\':
			if s.peek(1) == '\n' {
				s.advance(2) // line continuation
			} else if s.off+1 < len(s.src) {
				b.WriteRune(s.escape())
			} else {
				s.advance(1)
			}
		default:
			b.WriteRune(s.nextRune())
		}
	}
	return String{at: start, Value: b.String()}
}

// number consumes a number, a percentage or a dimension.
func (s *scanner) number(start at) Token {
	begin := s.off
	integer := true
	if c := s.peek(0); c == '+' || c == '-' {
		s.advance(1)
	}
	for isDigit(s.peek(0)) {
		s.advance(1)
	}
	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		integer = false
		s.advance(1)
		for isDigit(s.peek(0)) {
			s.advance(1)
		}
	}
	if c := s.peek(0); c == 'e' || c == 'E' {
		k := 1
		if sign := s.peek(1); sign == '+' || sign == '-' {
			k = 2
		}
		if isDigit(s.peek(k)) {
			integer = false
			s.advance(k)
			for isDigit(s.peek(0)) {
				s.advance(1)
			}
		}
	}
	value, _ := strconv.ParseFloat(s.src[begin:s.off], 64)
	n := numeric{at: start, Value: utils.Fl(value), integer: integer}

	switch {
	case s.peek(0) == '%':
		s.advance(1)
		return Percentage{n}
	case s.startsIdent(0):
		return Dimension{numeric: n, Unit: s.name()}
	default:
		return Number{n}
	}
}
