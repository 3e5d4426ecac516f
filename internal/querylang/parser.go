package querylang

import "strings"

// Grammar (EBNF):
//
//	query    = or_expr EOF
//	or_expr  = and_expr ( ( "OR" | "||" ) and_expr )*
//	and_expr = unary ( [ "AND" | "&&" ] unary )*
//	unary    = ( "NOT" | "!" ) unary | [ "-" | "+" ] primary
//	primary  = "(" or_expr ")" | field_expr | range | QUOTED | WORD
//	field_expr = FIELD ":" ( "(" or_expr ")" | range | QUOTED | WORD | cmp WORD )
//	           | "_exists_:" FIELD | "_missing_:" FIELD
//	range    = ( "[" | "{" ) WORD "TO" WORD ( "]" | "}" )
//	cmp      = ">" | ">=" | "<" | "<="
//
// Precedence (highest to lowest):
//  1. Parentheses
//  2. NOT and -/+ prefixes
//  3. AND (implicit or explicit)
//  4. OR
//
// Binary chains are left-associative and become nested GroupNodes.
type parser struct {
	lex *Lexer
	cur Token
}

// Parse parses a query string. The root is always a GroupNode without
// parentheses so callers can walk every query the same way.
func Parse(input string) (*GroupNode, error) {
	p := &parser{lex: NewLexer(input)}

	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind == TokEOF {
		return nil, newParseError(0, ErrEmptyQuery, "empty query")
	}

	n, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case TokEOF:
	case TokRParen:
		return nil, newParseError(p.cur.Pos, ErrUnmatchedParen, "unmatched closing parenthesis")
	default:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedToken, "unexpected token: %s", p.cur.Lit)
	}

	if g, ok := n.(*GroupNode); ok && isBareGroup(g) {
		return g, nil
	}
	return &GroupNode{Left: n}, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) parseOrExpr() (Node, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}

	for p.cur.Kind == TokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = &GroupNode{Left: left, Right: right, Operator: OpOr}
	}

	return left, nil
}

func (p *parser) parseAndExpr() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.isAndStart() {
		op := OpDefault
		if p.cur.Kind == TokAnd {
			op = OpAnd
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &GroupNode{Left: left, Right: right, Operator: op}
	}

	return left, nil
}

// isAndStart reports whether the current token continues an AND chain.
func (p *parser) isAndStart() bool {
	switch p.cur.Kind {
	case TokAnd, TokNot, TokMinus, TokPlus, TokLParen, TokLBracket, TokLBrace, TokWord, TokQuoted:
		return true
	default:
		return false
	}
}

func (p *parser) parseUnary() (Node, error) {
	var prefix string
	switch p.cur.Kind {
	case TokNot:
		prefix = PrefixNegation
	case TokMinus:
		prefix = PrefixMustNot
	case TokPlus:
		prefix = PrefixMust
	default:
		return p.parsePrimary()
	}

	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case TokEOF:
		return nil, newParseError(pos, ErrUnexpectedEOF, "expected expression after %s", prefix)
	case TokOr, TokAnd, TokRParen:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedToken, "expected expression after %s, got %s", prefix, p.cur.Kind)
	}

	var (
		n   Node
		err error
	)
	if prefix == PrefixNegation {
		n, err = p.parseUnary()
	} else {
		n, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	return applyPrefix(n, prefix), nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.cur.Kind {
	case TokEOF:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedEOF, "unexpected end of query")
	case TokOr, TokAnd:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedToken, "unexpected keyword %s", p.cur.Lit)
	case TokRParen:
		return nil, newParseError(p.cur.Pos, ErrUnmatchedParen, "unmatched closing parenthesis")
	case TokRBracket, TokRBrace:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedToken, "unexpected %s", p.cur.Kind)
	case TokLParen:
		return p.parseParens("")
	case TokLBracket, TokLBrace:
		return p.parseRange("")
	case TokQuoted:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &TermNode{Term: tok.Lit, IsQuoted: true}, nil
	}

	return p.parseWord()
}

// parseWord handles a bareword: a plain term, a field:value pair or the
// field: lead-in of a group, range or phrase.
func (p *parser) parseWord() (Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}

	lit := tok.Lit
	prefix := PrefixNone
	if len(lit) > 1 && (lit[0] == '-' || lit[0] == '+') {
		prefix = lit[:1]
		lit = lit[1:]
	}

	idx := fieldSeparator(lit)
	if idx < 0 {
		return applyPrefix(valueNode("", lit), prefix), nil
	}
	if idx == 0 {
		return nil, newParseError(tok.Pos, ErrUnexpectedToken, "missing field name before ':'")
	}

	field, value := lit[:idx], lit[idx+1:]
	if value != "" {
		n, err := fieldValue(tok.Pos, field, value)
		if err != nil {
			return nil, err
		}
		return applyPrefix(n, prefix), nil
	}

	// field: followed by a separate token
	var (
		n   Node
		err error
	)
	switch p.cur.Kind {
	case TokLParen:
		n, err = p.parseParens(field)
	case TokLBracket, TokLBrace:
		n, err = p.parseRange(field)
	case TokQuoted:
		n = &TermNode{Field: field, Term: p.cur.Lit, IsQuoted: true}
		err = p.advance()
	case TokWord:
		n, err = fieldValue(p.cur.Pos, field, p.cur.Lit)
		if err == nil {
			err = p.advance()
		}
	case TokEOF:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedEOF, "expected value after %s:", field)
	default:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedToken, "expected value after %s:, got %s", field, p.cur.Kind)
	}
	if err != nil {
		return nil, err
	}
	return applyPrefix(n, prefix), nil
}

// fieldValue builds the node for field:value where value is a bareword.
func fieldValue(pos int, field, value string) (Node, error) {
	switch field {
	case ExistsField:
		return &ExistsNode{Field: value}, nil
	case MissingField:
		return &MissingNode{Field: value}, nil
	}
	if strings.ContainsRune(value, ':') && fieldSeparator(value) == 0 {
		return nil, newParseError(pos, ErrUnexpectedToken, "unexpected ':' after %s:", field)
	}
	return valueNode(field, value), nil
}

// valueNode returns a comparison range for >, >=, < and <= values and a
// plain term otherwise.
func valueNode(field, value string) Node {
	for _, op := range []string{CmpGreaterOrEqual, CmpLessOrEqual, CmpGreater, CmpLess} {
		if !strings.HasPrefix(value, op) || len(value) == len(op) {
			continue
		}
		bound := value[len(op):]
		switch op {
		case CmpGreater:
			return &TermRangeNode{Field: field, Operator: op, Min: bound}
		case CmpGreaterOrEqual:
			return &TermRangeNode{Field: field, Operator: op, Min: bound, MinInclusive: true}
		case CmpLess:
			return &TermRangeNode{Field: field, Operator: op, Max: bound}
		case CmpLessOrEqual:
			return &TermRangeNode{Field: field, Operator: op, Max: bound, MaxInclusive: true}
		}
	}
	return &TermNode{Field: field, Term: value}
}

// parseParens parses "(" or_expr ")" at the current token.
func (p *parser) parseParens(field string) (Node, error) {
	open := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind == TokRParen {
		return nil, newParseError(open, ErrEmptyQuery, "empty parentheses")
	}

	inner, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokRParen {
		return nil, newParseError(open, ErrUnmatchedParen, "unmatched opening parenthesis")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if g, ok := inner.(*GroupNode); ok && isBareGroup(g) {
		g.HasParens = true
		g.Field = field
		return g, nil
	}
	return &GroupNode{Field: field, Left: inner, HasParens: true}, nil
}

// parseRange parses "[" or "{" min "TO" max "]" or "}" at the current token.
func (p *parser) parseRange(field string) (Node, error) {
	open := p.cur
	r := &TermRangeNode{Field: field, MinInclusive: open.Kind == TokLBracket}
	if err := p.advance(); err != nil {
		return nil, err
	}

	bound := func() (string, error) {
		if p.cur.Kind == TokEOF {
			return "", newParseError(open.Pos, ErrUnterminatedRange, "unterminated range starting at position %d", open.Pos)
		}
		if p.cur.Kind != TokWord {
			return "", newParseError(p.cur.Pos, ErrUnexpectedToken, "expected range bound, got %s", p.cur.Kind)
		}
		lit := p.cur.Lit
		return lit, p.advance()
	}

	var err error
	if r.Min, err = bound(); err != nil {
		return nil, err
	}
	if p.cur.Kind != TokWord || p.cur.Lit != "TO" {
		if p.cur.Kind == TokEOF {
			return nil, newParseError(open.Pos, ErrUnterminatedRange, "unterminated range starting at position %d", open.Pos)
		}
		return nil, newParseError(p.cur.Pos, ErrUnexpectedToken, "expected TO in range, got %s", p.cur.Lit)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if r.Max, err = bound(); err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case TokRBracket:
		r.MaxInclusive = true
	case TokRBrace:
	case TokEOF:
		return nil, newParseError(open.Pos, ErrUnterminatedRange, "unterminated range starting at position %d", open.Pos)
	default:
		return nil, newParseError(p.cur.Pos, ErrUnexpectedToken, "expected ] or } to close range, got %s", p.cur.Kind)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return r, nil
}

// applyPrefix sets prefix on n, wrapping n in a group when it already has one.
func applyPrefix(n Node, prefix string) Node {
	if prefix == PrefixNone {
		return n
	}
	switch v := n.(type) {
	case *GroupNode:
		if v.Prefix == PrefixNone && v.HasParens {
			v.Prefix = prefix
			return v
		}
	case *TermNode:
		if v.Prefix == PrefixNone {
			v.Prefix = prefix
			return v
		}
	case *TermRangeNode:
		if v.Prefix == PrefixNone {
			v.Prefix = prefix
			return v
		}
	case *ExistsNode:
		if v.Prefix == PrefixNone {
			v.Prefix = prefix
			return v
		}
	case *MissingNode:
		if v.Prefix == PrefixNone {
			v.Prefix = prefix
			return v
		}
	}
	return &GroupNode{Left: n, Prefix: prefix}
}

// isBareGroup reports whether g is an operator chain with no decoration.
func isBareGroup(g *GroupNode) bool {
	return !g.HasParens && g.Field == "" && g.Prefix == PrefixNone
}

// fieldSeparator returns the index of the first unescaped ':' in s, or -1.
func fieldSeparator(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case ':':
			return i
		}
	}
	return -1
}
