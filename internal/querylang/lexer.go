package querylang

import "strings"

// TokenKind identifies the type of lexical token.
type TokenKind int

const (
	TokEOF      TokenKind = iota
	TokWord               // bareword, escapes kept verbatim
	TokQuoted             // quoted phrase (quotes stripped, escapes processed)
	TokAnd                // AND or &&
	TokOr                 // OR or ||
	TokNot                // NOT or !
	TokMinus              // standalone - prefix
	TokPlus               // standalone + prefix
	TokLParen             // (
	TokRParen             // )
	TokLBracket           // [ inclusive range start
	TokRBracket           // ] inclusive range end
	TokLBrace             // { exclusive range start
	TokRBrace             // } exclusive range end
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokWord:
		return "WORD"
	case TokQuoted:
		return "QUOTED"
	case TokAnd:
		return "AND"
	case TokOr:
		return "OR"
	case TokNot:
		return "NOT"
	case TokMinus:
		return "-"
	case TokPlus:
		return "+"
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	case TokLBracket:
		return "["
	case TokRBracket:
		return "]"
	case TokLBrace:
		return "{"
	case TokRBrace:
		return "}"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Kind TokenKind
	Lit  string
	Pos  int // byte offset in input for error reporting
}

// Lexer tokenizes a query string.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Lit: "(", Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Lit: ")", Pos: start}, nil
	case '[':
		l.pos++
		return Token{Kind: TokLBracket, Lit: "[", Pos: start}, nil
	case ']':
		l.pos++
		return Token{Kind: TokRBracket, Lit: "]", Pos: start}, nil
	case '{':
		l.pos++
		return Token{Kind: TokLBrace, Lit: "{", Pos: start}, nil
	case '}':
		l.pos++
		return Token{Kind: TokRBrace, Lit: "}", Pos: start}, nil
	case '"':
		return l.scanQuoted()
	case '!':
		l.pos++
		return Token{Kind: TokNot, Lit: "!", Pos: start}, nil
	case '-', '+':
		// A sign glued to a word stays part of the word; the parser decides
		// whether it is a prefix or part of a value such as a negative bound.
		if l.pos+1 >= len(l.input) || isDelimiter(l.input[l.pos+1]) {
			l.pos++
			if ch == '-' {
				return Token{Kind: TokMinus, Lit: "-", Pos: start}, nil
			}
			return Token{Kind: TokPlus, Lit: "+", Pos: start}, nil
		}
	}

	return l.scanWord(), nil
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

// scanQuoted scans a double-quoted phrase. \" and \\ are unescaped; any
// other escape is kept verbatim so wildcard escapes survive.
func (l *Lexer) scanQuoted() (Token, error) {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		if ch == '"' {
			l.pos++
			return Token{Kind: TokQuoted, Lit: sb.String(), Pos: start}, nil
		}

		if ch == '\\' {
			if l.pos+1 >= len(l.input) {
				return Token{}, newParseError(l.pos, ErrUnterminatedString, "unterminated string: escape at end of input")
			}
			next := l.input[l.pos+1]
			if next != '"' && next != '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(next)
			l.pos += 2
			continue
		}

		sb.WriteByte(ch)
		l.pos++
	}

	return Token{}, newParseError(start, ErrUnterminatedString, "unterminated string starting at position %d", start)
}

// scanWord scans a bareword and classifies keywords. Keywords are
// case-sensitive so lowercase "and" stays a search term.
func (l *Lexer) scanWord() Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.pos += 2
			continue
		}
		if isDelimiter(ch) {
			break
		}
		l.pos++
	}

	lit := l.input[start:l.pos]
	switch lit {
	case "AND", "&&":
		return Token{Kind: TokAnd, Lit: lit, Pos: start}
	case "OR", "||":
		return Token{Kind: TokOr, Lit: lit, Pos: start}
	case "NOT":
		return Token{Kind: TokNot, Lit: lit, Pos: start}
	}
	return Token{Kind: TokWord, Lit: lit, Pos: start}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDelimiter(ch byte) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}', '"':
		return true
	}
	return isSpace(ch)
}
