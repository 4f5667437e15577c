package parser

import (
	"testing"

	tu "github.com/benoitkugler/gridlayout/utils/testutils"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind()
	}
	return out
}

func TestTokenizeNumbers(t *testing.T) {
	tokens := Tokenize("1fr 20.5px 50% -3 +.5 1e2")
	tu.AssertEqual(t, kinds(tokens), []Kind{
		KDimension, KWhitespace, KDimension, KWhitespace, KPercentage, KWhitespace,
		KNumber, KWhitespace, KNumber, KWhitespace, KNumber,
	})

	fr := tokens[0].(Dimension)
	tu.AssertEqual(t, fr.Value, 1.)
	tu.AssertEqual(t, fr.Unit, "fr")
	tu.AssertEqual(t, fr.IsInt(), true)

	px := tokens[2].(Dimension)
	tu.AssertEqual(t, px.Value, 20.5)
	tu.AssertEqual(t, px.IsInt(), false)

	tu.AssertEqual(t, tokens[4].(Percentage).Value, 50.)
	tu.AssertEqual(t, tokens[6].(Number).Int(), -3)
	tu.AssertEqual(t, tokens[6].Pos(), Pos{Line: 1, Column: 16})
	tu.AssertEqual(t, tokens[8].(Number).Value, 0.5)
	tu.AssertEqual(t, tokens[10].(Number).Value, 100.)
	tu.AssertEqual(t, tokens[10].(Number).IsInt(), false)
}

func TestTokenizePositions(t *testing.T) {
	tokens := RemoveWhitespace(Tokenize("é: a\n  #b 'c'"))
	tu.AssertEqual(t, kinds(tokens), []Kind{KIdent, KLiteral, KIdent, KHash, KString})
	tu.AssertEqual(t, tokens[1].Pos(), Pos{Line: 1, Column: 2}) // columns count runes
	tu.AssertEqual(t, tokens[2].Pos(), Pos{Line: 1, Column: 4})
	tu.AssertEqual(t, tokens[3].Pos(), Pos{Line: 2, Column: 3})
	tu.AssertEqual(t, tokens[3].(Hash).Value, "b")
	tu.AssertEqual(t, tokens[4].(String).Value, "c")
}

func TestTokenizeIdents(t *testing.T) {
	tokens := RemoveWhitespace(Tokenize(`-webkit-box --x \31 a @media a\:b`))
	tu.AssertEqual(t, kinds(tokens), []Kind{KIdent, KIdent, KIdent, KAtKeyword, KIdent})
	tu.AssertEqual(t, tokens[0].(Ident).Value, "-webkit-box")
	tu.AssertEqual(t, tokens[1].(Ident).Value, "--x")
	tu.AssertEqual(t, tokens[2].(Ident).Value, "1a")
	tu.AssertEqual(t, tokens[3].(AtKeyword).Value, "media")
	tu.AssertEqual(t, tokens[4].(Ident).Value, "a:b")

	// a lone minus is a delimiter
	tu.AssertEqual(t, kinds(Tokenize("- 1")), []Kind{KLiteral, KWhitespace, KNumber})
}

func TestTokenizeFunctions(t *testing.T) {
	tokens := Tokenize("minmax(10px, calc(50% + 5px))")
	tu.AssertEqual(t, len(tokens), 1)
	fn := tokens[0].(FunctionBlock)
	tu.AssertEqual(t, fn.Name, "minmax")
	tu.AssertEqual(t, kinds(fn.Arguments), []Kind{KDimension, KLiteral, KWhitespace, KFunctionBlock})
	calc := fn.Arguments[3].(FunctionBlock)
	tu.AssertEqual(t, kinds(calc.Arguments), []Kind{KPercentage, KWhitespace, KLiteral, KWhitespace, KDimension})

	name, args := ParseFunction(fn)
	tu.AssertEqual(t, name, "minmax")
	tu.AssertEqual(t, kinds(args), []Kind{KDimension, KFunctionBlock})

	// unclosed blocks are closed at the end of the input
	tokens = Tokenize("REPEAT(2, [a 1fr")
	name, args = ParseFunction(tokens[0])
	tu.AssertEqual(t, name, "repeat")
	tu.AssertEqual(t, kinds(args), []Kind{KNumber, KSquareBracketsBlock})
	tu.AssertEqual(t, kinds(args[1].(SquareBracketsBlock).Arguments), []Kind{KIdent, KWhitespace, KDimension})
}

func TestParseFunctionInvalid(t *testing.T) {
	for _, input := range []string{"f(a,,b)", "f(, a)", "f(a,)", "a", "(a)"} {
		name, _ := ParseFunction(Tokenize(input)[0])
		tu.AssertEqual(t, name, "")
	}
	name, args := ParseFunction(Tokenize("f( )")[0])
	tu.AssertEqual(t, name, "f")
	tu.AssertEqual(t, len(args), 0)
}

func TestTokenizeErrors(t *testing.T) {
	tokens := Tokenize(") (]) \"abc\n'd")
	tu.AssertEqual(t, kinds(tokens), []Kind{KParseError, KWhitespace, KParenthesesBlock, KWhitespace, KParseError, KWhitespace, KString})
	tu.AssertEqual(t, tokens[0].(ParseError).Message, "Unmatched )")
	tu.AssertEqual(t, kinds(tokens[2].(ParenthesesBlock).Arguments), []Kind{KParseError})
	tu.AssertEqual(t, tokens[4].(ParseError).Message, "Bad string")
	// the end of the input closes the string
	tu.AssertEqual(t, tokens[6].(String).Value, "d")
}

func TestTokenizeComments(t *testing.T) {
	tu.AssertEqual(t, kinds(Tokenize("a /* b */ c")), []Kind{KIdent, KWhitespace, KIdent})
	tu.AssertEqual(t, kinds(Tokenize("/* a */b/**/c /* unclosed")), []Kind{KIdent, KIdent, KWhitespace})
	tu.AssertEqual(t, len(Tokenize("/* only */")), 0)
}

func TestDeclarationList(t *testing.T) {
	css := "display: grid; grid-template-columns: 1fr 2fr ! IMPORTANT;; 12: x; color red; @media print { a: b } width: 10px"
	res := ParseDeclarations(css)
	tu.AssertEqual(t, len(res), 6)

	display := res[0].(Declaration)
	tu.AssertEqual(t, display.Name, "display")
	tu.AssertEqual(t, display.Source, " grid")
	tu.AssertEqual(t, kinds(display.Value), []Kind{KWhitespace, KIdent})
	tu.AssertEqual(t, display.Pos(), Pos{Line: 1, Column: 1})
	tu.AssertEqual(t, display.Important, false)

	columns := res[1].(Declaration)
	tu.AssertEqual(t, columns.Source, " 1fr 2fr ")
	tu.AssertEqual(t, kinds(RemoveWhitespace(columns.Value)), []Kind{KDimension, KDimension})
	tu.AssertEqual(t, columns.Important, true)

	tu.AssertEqual(t, res[2].(ParseError).Message, "Expected <ident> for declaration name, got number.")
	tu.AssertEqual(t, res[2].Pos(), Pos{Line: 1, Column: 61})
	tu.AssertEqual(t, res[3].(ParseError).Message, "Expected ':' after declaration name, got ident.")
	tu.AssertEqual(t, res[3].Pos(), Pos{Line: 1, Column: 74})
	tu.AssertEqual(t, res[4].(ParseError).Message, "Unsupported at-rule @media in a declaration list.")

	// the declaration following the at-rule block is kept
	width := res[5].(Declaration)
	tu.AssertEqual(t, width.Name, "width")
	tu.AssertEqual(t, width.Source, " 10px")
}

func TestDeclarationSource(t *testing.T) {
	res := ParseDeclarations("  gap : 5px /* c */ ;x:important; y")
	tu.AssertEqual(t, len(res), 3)

	gap := res[0].(Declaration)
	tu.AssertEqual(t, gap.Name, "gap")
	tu.AssertEqual(t, gap.Pos(), Pos{Line: 1, Column: 3})
	tu.AssertEqual(t, gap.Source, " 5px /* c */ ")
	tu.AssertEqual(t, kinds(RemoveWhitespace(gap.Value)), []Kind{KDimension})

	// a lone "important" is a value, not a flag
	x := res[1].(Declaration)
	tu.AssertEqual(t, x.Important, false)
	tu.AssertEqual(t, x.Source, "important")

	tu.AssertEqual(t, res[2].(ParseError).Message, "Expected ':' after declaration name, got EOF.")
	tu.AssertEqual(t, res[2].Pos(), Pos{Line: 1, Column: 35})
}
