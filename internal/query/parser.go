package query

import "github.com/go-librarian/librarian/pkg/status"

// Parser is a one-token-lookahead recursive-descent parser implementing the
// grammar:
//
//	query    = or_expr End
//	or_expr  = and_expr { "OR" and_expr }
//	and_expr = unary { "AND" unary }
//	unary    = Term | "NOT" unary | "(" or_expr ")"
type Parser struct {
	lex *Lexer
	cur Token
}

// Parse parses text and returns the resulting AST, or a *status.Status of
// kind Syntax formatted as "Syntax error at (<line>, <column>)" on failure.
func Parse(text string) (*Node, *status.Status) {
	p := &Parser{lex: NewLexer(text)}
	p.advance()

	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEnd {
		return nil, status.SyntaxAt(p.cur.Line, p.cur.Column)
	}
	return node, nil
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
}

func (p *Parser) parseOr() (*Node, *status.Status) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	children := []*Node{first}
	for p.cur.Type == TokenBinaryOp && p.cur.Value == "OR" {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return newOrNode(children), nil
}

func (p *Parser) parseAnd() (*Node, *status.Status) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	children := []*Node{first}
	for p.cur.Type == TokenBinaryOp && p.cur.Value == "AND" {
		p.advance()
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return newAndNode(children), nil
}

func (p *Parser) parseUnary() (*Node, *status.Status) {
	switch {
	case p.cur.Type == TokenTerm:
		node := newTermNode(p.cur.Value)
		p.advance()
		return node, nil

	case p.cur.Type == TokenUnaryOp:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return newNotNode(child), nil

	case p.cur.Type == TokenSymbol && p.cur.Value == "(":
		p.advance()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TokenSymbol || p.cur.Value != ")" {
			return nil, status.SyntaxAt(p.cur.Line, p.cur.Column)
		}
		p.advance()
		return node, nil

	default:
		return nil, status.SyntaxAt(p.cur.Line, p.cur.Column)
	}
}
