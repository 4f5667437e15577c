package parser

import (
	"fmt"
	"math"

	"github.com/benoitkugler/gridlayout/utils"
)

// Pos is the position of a token in the source, starting at 1:1.
// Columns count runes.
type Pos struct {
	Line, Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Kind identifies the concrete type of a Token.
type Kind uint8

const (
	KWhitespace Kind = iota
	KLiteral
	KIdent
	KAtKeyword
	KHash
	KString
	KNumber
	KPercentage
	KDimension
	KParenthesesBlock
	KSquareBracketsBlock
	KCurlyBracketsBlock
	KFunctionBlock
	KParseError
)

var kindNames = [...]string{
	KWhitespace:          "whitespace",
	KLiteral:             "literal",
	KIdent:               "ident",
	KAtKeyword:           "at-keyword",
	KHash:                "hash",
	KString:              "string",
	KNumber:              "number",
	KPercentage:          "percentage",
	KDimension:           "dimension",
	KParenthesesBlock:    "() block",
	KSquareBracketsBlock: "[] block",
	KCurlyBracketsBlock:  "{} block",
	KFunctionBlock:       "function",
	KParseError:          "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("<kind %d>", k)
}

// Token is a CSS component value. Comments are dropped by the tokenizer.
type Token interface {
	Pos() Pos
	Kind() Kind
	// offset is the byte offset of the token start in the source.
	offset() int
}

// at locates a token in the source.
type at struct {
	pos Pos
	off int
}

func (a at) Pos() Pos    { return a.pos }
func (a at) offset() int { return a.off }

type (
	// Whitespace is a run of white space, and of the comments it contains.
	Whitespace struct{ at }
	// Literal is a delimiter, like ':', ';', ',' or '/'.
	Literal struct {
		at
		Value string
	}
	Ident struct {
		at
		Value string
	}
	AtKeyword struct {
		at
		Value string
	}
	Hash struct {
		at
		Value string
	}
	String struct {
		at
		Value string
	}

	numeric struct {
		at
		Value   utils.Fl
		integer bool
	}
	Number     struct{ numeric }
	Percentage struct{ numeric }
	Dimension  struct {
		numeric
		Unit string
	}

	ParenthesesBlock struct {
		at
		Arguments []Token
	}
	SquareBracketsBlock struct {
		at
		Arguments []Token
	}
	CurlyBracketsBlock struct {
		at
		Arguments []Token
	}
	FunctionBlock struct {
		at
		Name      string
		Arguments []Token
	}

	// ParseError is emitted in place of an invalid token or declaration.
	ParseError struct {
		at
		Message string
	}
)

func (Whitespace) Kind() Kind          { return KWhitespace }
func (Literal) Kind() Kind             { return KLiteral }
func (Ident) Kind() Kind               { return KIdent }
func (AtKeyword) Kind() Kind           { return KAtKeyword }
func (Hash) Kind() Kind                { return KHash }
func (String) Kind() Kind              { return KString }
func (Number) Kind() Kind              { return KNumber }
func (Percentage) Kind() Kind          { return KPercentage }
func (Dimension) Kind() Kind           { return KDimension }
func (ParenthesesBlock) Kind() Kind    { return KParenthesesBlock }
func (SquareBracketsBlock) Kind() Kind { return KSquareBracketsBlock }
func (CurlyBracketsBlock) Kind() Kind  { return KCurlyBracketsBlock }
func (FunctionBlock) Kind() Kind       { return KFunctionBlock }
func (ParseError) Kind() Kind          { return KParseError }

// IsInt returns true if the number was written as an integer.
func (t numeric) IsInt() bool { return t.integer }

// Int returns the integer value, only valid if IsInt returns true.
func (t numeric) Int() int { return int(math.Round(t.Value)) }

// IsLiteral returns true if token is the delimiter s.
func IsLiteral(token Token, s string) bool {
	lit, ok := token.(Literal)
	return ok && lit.Value == s
}

// RemoveWhitespace removes the top-level whitespace.
func RemoveWhitespace(tokens []Token) []Token {
	var out []Token
	for _, token := range tokens {
		if token.Kind() != KWhitespace {
			out = append(out, token)
		}
	}
	return out
}

// ParseFunction returns the lower-case name and the arguments of a
// function token. Arguments are separated by commas or whitespace.
// It returns an empty name if token is not a function, or if a comma
// is misplaced.
func ParseFunction(token Token) (string, []Token) {
	fn, ok := token.(FunctionBlock)
	if !ok {
		return "", nil
	}
	var args []Token
	expectArg := true // at the start, or after a comma
	for _, arg := range RemoveWhitespace(fn.Arguments) {
		if IsLiteral(arg, ",") {
			if expectArg {
				return "", nil
			}
			expectArg = true
			continue
		}
		expectArg = false
		args = append(args, arg)
	}
	if expectArg && len(args) != 0 {
		return "", nil
	}
	return utils.AsciiLower(fn.Name), args
}
