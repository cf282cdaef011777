package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizerBasicSequence(t *testing.T) {
	tz, err := New(`class A { field int x; }`)
	require.NoError(t, err)

	var got []Token
	for {
		tok, ok := tz.Advance()
		if !ok {
			break
		}
		got = append(got, tok)
	}

	want := []Token{
		{Kind: Keyword, Text: "class"},
		{Kind: Identifier, Text: "A"},
		{Kind: Symbol, Text: "{"},
		{Kind: Keyword, Text: "field"},
		{Kind: Keyword, Text: "int"},
		{Kind: Identifier, Text: "x"},
		{Kind: Symbol, Text: ";"},
		{Kind: Symbol, Text: "}"},
	}
	require.Equal(t, want, got)
}

func TestTokenizerStripsComments(t *testing.T) {
	src := `
// a line comment
/** a doc comment */
class /* inline */ A {}
`
	tz, err := New(src)
	require.NoError(t, err)

	tok, ok := tz.Advance()
	require.True(t, ok)
	require.Equal(t, Token{Kind: Keyword, Text: "class"}, tok)

	tok, ok = tz.Advance()
	require.True(t, ok)
	require.Equal(t, Token{Kind: Identifier, Text: "A"}, tok)
}

func TestTokenizerCommentInsideStringIsNotStripped(t *testing.T) {
	tz, err := New(`"// not a comment"`)
	require.NoError(t, err)

	tok, ok := tz.Advance()
	require.True(t, ok)
	require.Equal(t, Token{Kind: StringConst, Text: "// not a comment"}, tok)
}

func TestTokenizerIntegerConstant(t *testing.T) {
	tz, err := New(`32767`)
	require.NoError(t, err)

	tok, ok := tz.Advance()
	require.True(t, ok)
	require.Equal(t, uint16(32767), tok.IntValue)
}

func TestTokenizerIntegerConstantOutOfRange(t *testing.T) {
	_, err := New(`32768`)
	require.Error(t, err)
}

func TestTokenizerUnterminatedString(t *testing.T) {
	_, err := New("\"abc\ndef\"")
	require.Error(t, err)
}

func TestTokenizerUnknownFragment(t *testing.T) {
	_, err := New("@")
	require.Error(t, err)
}

func TestTokenizerPeekDoesNotConsume(t *testing.T) {
	tz, err := New(`let`)
	require.NoError(t, err)

	first, ok := tz.Peek()
	require.True(t, ok)
	second, ok := tz.Peek()
	require.True(t, ok)
	require.Equal(t, first, second)

	_, ok = tz.Advance()
	require.True(t, ok)
	_, ok = tz.Peek()
	require.False(t, ok)
}
