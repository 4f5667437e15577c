package parser

import (
	"fmt"

	"github.com/benoitkugler/gridlayout/utils"
)

// Compound is a top-level item of a declaration list:
// a Declaration or a ParseError.
type Compound interface {
	Pos() Pos
	isCompound()
}

// Declaration is a property declaration, like "grid-template-columns: 1fr 2fr".
type Declaration struct {
	Name  string
	Value []Token
	// Source is the value as written, without the !important flag.
	Source    string
	Important bool
	pos       Pos
}

func (Declaration) isCompound() {}
func (ParseError) isCompound()  {}

func (d Declaration) Pos() Pos { return d.pos }

// ParseDeclarations parses a declaration list, as found in the style
// attribute of an HTML element. Declarations are separated by ';'.
// At-rules and malformed declarations are reported as [ParseError].
func ParseDeclarations(css string) []Compound {
	tokens := Tokenize(css)
	var out []Compound
	for i := 0; i < len(tokens); {
		token := tokens[i]
		if token.Kind() == KWhitespace || IsLiteral(token, ";") {
			i++
			continue
		}

		if kw, ok := token.(AtKeyword); ok {
			// the rule ends after its block, or at the next ';'
			for i++; i < len(tokens); i++ {
				if IsLiteral(tokens[i], ";") {
					break
				}
				if tokens[i].Kind() == KCurlyBracketsBlock {
					i++
					break
				}
			}
			out = append(out, ParseError{
				at:      kw.at,
				Message: fmt.Sprintf("Unsupported at-rule @%s in a declaration list.", kw.Value),
			})
			continue
		}

		j, end := i, len(css)
		for ; j < len(tokens); j++ {
			if IsLiteral(tokens[j], ";") {
				end = tokens[j].offset()
				break
			}
		}
		out = append(out, parseDeclaration(css, tokens[i:j], end))
		i = j
	}
	return out
}

// parseDeclaration parses the tokens of one declaration, which ends at
// byte offset end in css. tokens starts with a significant token.
func parseDeclaration(css string, tokens []Token, end int) Compound {
	name, ok := tokens[0].(Ident)
	if !ok {
		return ParseError{
			at:      at{pos: tokens[0].Pos(), off: tokens[0].offset()},
			Message: fmt.Sprintf("Expected <ident> for declaration name, got %s.", tokens[0].Kind()),
		}
	}

	colon := 1
	for colon < len(tokens) && tokens[colon].Kind() == KWhitespace {
		colon++
	}
	if colon == len(tokens) {
		return ParseError{at: name.at, Message: "Expected ':' after declaration name, got EOF."}
	}
	if !IsLiteral(tokens[colon], ":") {
		return ParseError{
			at:      at{pos: tokens[colon].Pos(), off: tokens[colon].offset()},
			Message: fmt.Sprintf("Expected ':' after declaration name, got %s.", tokens[colon].Kind()),
		}
	}

	value := tokens[colon+1:]
	important := false
	if bang := importantFlag(value); bang != -1 {
		important = true
		end = value[bang].offset()
		value = value[:bang]
	}
	return Declaration{
		Name:      name.Value,
		Value:     value,
		Source:    css[tokens[colon].offset()+1 : end],
		Important: important,
		pos:       name.pos,
	}
}

// importantFlag returns the index of the '!' of a trailing
// "! important", or -1.
func importantFlag(value []Token) int {
	last := len(value) - 1
	for last >= 0 && value[last].Kind() == KWhitespace {
		last--
	}
	if last < 0 {
		return -1
	}
	if ident, ok := value[last].(Ident); !ok || utils.AsciiLower(ident.Value) != "important" {
		return -1
	}
	bang := last - 1
	for bang >= 0 && value[bang].Kind() == KWhitespace {
		bang--
	}
	if bang < 0 || !IsLiteral(value[bang], "!") {
		return -1
	}
	return bang
}
