package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lalang-run/lalang/internal/lexer"
)

func tokens(t *testing.T, src string) []lexer.Token {
	t.Helper()
	lx := lexer.New([]byte(src))
	var out []lexer.Token
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestWhitespaceAndCommentsAreSeparators(t *testing.T) {
	toks := tokens(t, "2  3\n+ # trailing comment\n")
	require.Len(t, toks, 3)
	require.Equal(t, "2", toks[0].Text)
	require.Equal(t, "3", toks[1].Text)
	require.Equal(t, "+", toks[2].Text)
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := tokens(t, `"a\nb\"c"`)
	require.Len(t, toks, 1)
	require.True(t, toks[0].IsString)
	require.Equal(t, "a\nb\"c", toks[0].Text)
	require.False(t, toks[0].Unterminated)
}

func TestUnterminatedStringAtNewline(t *testing.T) {
	toks := tokens(t, "\"abc\nxyz")
	require.Len(t, toks, 2)
	require.True(t, toks[0].Unterminated)
	require.Equal(t, "xyz", toks[1].Text)
}

func TestRowColTracking(t *testing.T) {
	toks := tokens(t, "2\n3")
	require.Equal(t, 1, toks[0].Row)
	require.Equal(t, 2, toks[1].Row)
}
