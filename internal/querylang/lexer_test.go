package querylang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			return tokens
		}
	}
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenKind
	}{
		{"", []TokenKind{TokEOF}},
		{"type:error", []TokenKind{TokWord, TokEOF}},
		{"a AND b", []TokenKind{TokWord, TokAnd, TokWord, TokEOF}},
		{"a && b || c", []TokenKind{TokWord, TokAnd, TokWord, TokOr, TokWord, TokEOF}},
		{"a and b", []TokenKind{TokWord, TokWord, TokWord, TokEOF}},
		{"NOT a", []TokenKind{TokNot, TokWord, TokEOF}},
		{"!a", []TokenKind{TokNot, TokWord, TokEOF}},
		{"- (a)", []TokenKind{TokMinus, TokLParen, TokWord, TokRParen, TokEOF}},
		{"+(a)", []TokenKind{TokPlus, TokLParen, TokWord, TokRParen, TokEOF}},
		{"-a", []TokenKind{TokWord, TokEOF}},
		{"n:[1 TO 5}", []TokenKind{TokWord, TokLBracket, TokWord, TokWord, TokWord, TokRBrace, TokEOF}},
		{"n:{1 TO 5]", []TokenKind{TokWord, TokLBrace, TokWord, TokWord, TokWord, TokRBracket, TokEOF}},
		{`name:"a b"`, []TokenKind{TokWord, TokQuoted, TokEOF}},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.want, kinds(lexAll(t, tc.input)))
		})
	}
}

func TestLexer_Literals(t *testing.T) {
	tokens := lexAll(t, `path:a\ b msg:"say \"hi\" \\ \*"`)
	require.Equal(t, `path:a\ b`, tokens[0].Lit)
	require.Equal(t, "msg:", tokens[1].Lit)
	require.Equal(t, TokQuoted, tokens[2].Kind)
	require.Equal(t, `say "hi" \ \*`, tokens[2].Lit)
}

func TestLexer_Positions(t *testing.T) {
	tokens := lexAll(t, "  a  (b)")
	require.Equal(t, 2, tokens[0].Pos)
	require.Equal(t, 5, tokens[1].Pos)
	require.Equal(t, 6, tokens[2].Pos)
	require.Equal(t, 7, tokens[3].Pos)
	require.Equal(t, 8, tokens[4].Pos)
}

func TestLexer_UnterminatedString(t *testing.T) {
	for _, input := range []string{`"open`, `"escape at end\`} {
		t.Run(input, func(t *testing.T) {
			l := NewLexer(input)
			_, err := l.Next()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrUnterminatedString))

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
		})
	}
}

func TestTokenKind_String(t *testing.T) {
	require.Equal(t, "UNKNOWN", TokenKind(99).String())
	require.NotEqual(t, "UNKNOWN", TokWord.String())
}
