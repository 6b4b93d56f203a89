package parser

import (
	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/token"
)

// parseExpression parses a full expression, including the comma
// operator; used wherever a single top-level expression is expected
// (expression statements, if-test).
func (p *Parser) parseExpression() ast.Expression {
	first := p.parseAssignment()

	if p.peek.Type != token.COMMA {
		return first
	}

	seq := &ast.SequenceExpression{Token: p.cur, Expressions: []ast.Expression{first}}
	for p.peek.Type == token.COMMA {
		p.next()
		p.next()
		seq.Expressions = append(seq.Expressions, p.parseAssignment())
	}
	return seq
}

// parseAssignment parses everything above the comma operator,
// including the right-associative `=` and the ternary conditional.
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseConditional()

	if p.peek.Type == token.ASSIGN {
		tok := p.peek
		p.next()
		p.next()
		right := p.parseAssignment()
		return &ast.BinaryExpression{Token: tok, Operator: "=", Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseConditional() ast.Expression {
	test := p.parseBinary(precLogicalOr)

	if p.peek.Type != token.QUESTION {
		return test
	}

	tok := p.peek
	p.next()
	p.next()
	consequent := p.parseAssignment()

	if !p.expect(token.COLON) {
		return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: consequent}
	}
	p.next()
	alternate := p.parseAssignment()

	return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: consequent, Alternate: alternate}
}

// precedence levels for parseBinary, lowest to highest.
const (
	precLogicalOr = iota
	precLogicalAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

func binaryOperator(t token.Type) (string, int, bool) {
	switch t {
	case token.OR, token.NULLISH:
		return t.String(), precLogicalOr, true
	case token.AND:
		return t.String(), precLogicalAnd, true
	case token.EQ, token.NOT_EQ, token.LOOSE_EQ, token.LOOSE_NE:
		return t.String(), precEquality, true
	case token.LT, token.GT, token.LTE, token.GTE:
		return t.String(), precRelational, true
	case token.PLUS, token.MINUS:
		return t.String(), precAdditive, true
	case token.STAR, token.SLASH, token.PERCENT:
		return t.String(), precMultiplicative, true
	default:
		return "", 0, false
	}
}

// parseBinary implements precedence climbing for every non-assignment
// binary operator, surfacing "+", "===" and "!==" as the AST operators
// the traversal turns into Addition/Equality events; the rest parse
// into the same BinaryExpression node but are never surfaced as events.
func (p *Parser) parseBinary(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		op, prec, ok := binaryOperator(p.peek.Type)
		if !ok || prec < minPrec {
			return left
		}

		tok := p.peek
		p.next()
		p.next()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case token.BANG, token.MINUS, token.PLUS, token.TYPEOF:
		tok := p.cur
		op := tok.Type.String()
		if tok.Type == token.TYPEOF {
			op = "typeof"
		}
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Token: tok, Operator: op, Operand: operand, Prefix: true}
	case token.INC, token.DEC:
		tok := p.cur
		op := tok.Type.String()
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Token: tok, Operator: op, Operand: operand, Prefix: true}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseCallOrMember()

	if p.peek.Type == token.INC || p.peek.Type == token.DEC {
		tok := p.peek
		p.next()
		return &ast.UnaryExpression{Token: tok, Operator: tok.Type.String(), Operand: expr, Prefix: false}
	}

	return expr
}

func (p *Parser) parseCallOrMember() ast.Expression {
	expr := p.parsePrimary()

	for {
		switch p.peek.Type {
		case token.DOT:
			tok := p.peek
			p.next()
			if !p.expect(token.IDENT) {
				return expr
			}
			prop := &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop}
		case token.LBRACKET:
			tok := p.peek
			p.next()
			p.next()
			prop := p.parseExpression()
			if !p.expect(token.RBRACKET) {
				return expr
			}
			expr = &ast.ComputedMemberExpression{Token: tok, Object: expr, Property: prop}
		case token.LPAREN:
			tok := p.peek
			p.next()
			args := p.parseArguments()
			expr = &ast.CallExpression{Token: tok, Callee: expr, Arguments: args}
		case token.BACKTICK, token.TEMPLATE:
			if p.peek.Type != token.TEMPLATE {
				return expr
			}
			p.next()
			quasi := &ast.TemplateLiteral{Token: p.cur, Raw: p.cur.Literal}
			expr = &ast.TaggedTemplateExpression{Token: p.cur, Tag: expr, Quasi: quasi}
		default:
			return expr
		}
	}
}

// parseArguments parses a parenthesized, comma-separated argument
// list; p.cur is the opening LPAREN when this is called.
func (p *Parser) parseArguments() []ast.Expression {
	var args []ast.Expression

	if p.peek.Type == token.RPAREN {
		p.next()
		return args
	}

	p.next()
	args = append(args, p.parseArgument())

	for p.peek.Type == token.COMMA {
		p.next()
		p.next()
		args = append(args, p.parseArgument())
	}

	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseArgument() ast.Expression {
	if p.cur.Type == token.ELLIPSIS {
		tok := p.cur
		p.next()
		return &ast.SpreadElement{Token: tok, Argument: p.parseAssignment()}
	}
	return p.parseAssignment()
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case token.NUMBER:
		return &ast.Literal{Token: p.cur, Kind: ast.NumberLiteral, Value: p.cur.Literal}
	case token.STRING:
		return &ast.Literal{Token: p.cur, Kind: ast.StringLiteral, Value: p.cur.Literal}
	case token.TRUE, token.FALSE:
		return &ast.Literal{Token: p.cur, Kind: ast.BooleanLiteral, Value: p.cur.Lexeme}
	case token.NULL:
		return &ast.Literal{Token: p.cur, Kind: ast.NullLiteral, Value: "null"}
	case token.UNDEFINED:
		return &ast.Literal{Token: p.cur, Kind: ast.UndefinedLiteral, Value: "undefined"}
	case token.REGEXP:
		return &ast.Literal{Token: p.cur, Kind: ast.RegExpLiteral, Value: p.cur.Literal}
	case token.TEMPLATE:
		return &ast.TemplateLiteral{Token: p.cur, Raw: p.cur.Literal}
	case token.THIS:
		return &ast.ThisExpression{Token: p.cur}
	case token.IDENT:
		if p.peek.Type == token.ARROW {
			return p.parseArrowFunctionSingleParam()
		}
		return &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
	case token.LPAREN:
		return p.parseParenOrArrow()
	case token.LBRACKET:
		return p.parseArrayExpression()
	case token.LBRACE:
		return p.parseObjectExpression()
	case token.FUNCTION:
		return p.parseFunctionExpression()
	case token.CLASS:
		return p.parseClassExpression()
	case token.ELLIPSIS:
		tok := p.cur
		p.next()
		return &ast.SpreadElement{Token: tok, Argument: p.parseAssignment()}
	default:
		p.errorf("unexpected token %s in expression position", p.cur.Type)
		return &ast.Literal{Token: p.cur, Kind: ast.UndefinedLiteral, Value: "undefined"}
	}
}

// parseArrowFunctionSingleParam handles `x => ...` (no parens around
// the single parameter).
func (p *Parser) parseArrowFunctionSingleParam() *ast.ArrowFunctionExpression {
	tok := p.cur
	param := &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
	p.next() // consume identifier, cur is now '=>'
	p.next() // consume '=>', cur is the body's first token
	return p.finishArrow(tok, []*ast.Identifier{param})
}

// parseParenOrArrow disambiguates `(expr)` from `(params) => body`.
// The lookahead needed to tell them apart runs past the parser's
// normal one-token peek, so it uses p.lookahead (buffered, never
// discards a token) rather than speculatively consuming and trying to
// back out.
func (p *Parser) parseParenOrArrow() ast.Expression {
	tok := p.cur

	if p.arrowHeaderFollows() {
		if p.peek.Type == token.RPAREN {
			p.next() // cur = ')'
			p.next() // cur = '=>'
			p.next() // cur = first body token
			return p.finishArrow(tok, nil)
		}
		params := p.parseParamList() // cur is still '(' here
		if !p.expect(token.ARROW) {
			return &ast.ArrowFunctionExpression{Token: tok, Params: params}
		}
		p.next()
		return p.finishArrow(tok, params)
	}

	if p.peek.Type == token.RPAREN {
		p.next()
		return &ast.Literal{Token: tok, Kind: ast.UndefinedLiteral, Value: "undefined"}
	}

	p.next()
	expr := p.parseExpression()
	p.expect(token.RPAREN)
	return expr
}

// arrowHeaderFollows reports whether, from the current '(' token,
// the upcoming tokens form `)` or `ident, ident, ...)` followed by
// '=>'. p.cur and p.peek are left untouched either way.
func (p *Parser) arrowHeaderFollows() bool {
	if p.peek.Type == token.RPAREN {
		return p.lookahead(1).Type == token.ARROW
	}
	if p.peek.Type != token.IDENT {
		return false
	}

	k := 1
	for {
		switch p.lookahead(k).Type {
		case token.RPAREN:
			return p.lookahead(k+1).Type == token.ARROW
		case token.COMMA:
			if p.lookahead(k+1).Type != token.IDENT {
				return false
			}
			k += 2
		default:
			return false
		}
	}
}

func (p *Parser) finishArrow(tok token.Token, params []*ast.Identifier) *ast.ArrowFunctionExpression {
	if p.cur.Type == token.LBRACE {
		body := p.parseBlockStatement()
		return &ast.ArrowFunctionExpression{Token: tok, Params: params, Body: body}
	}
	body := p.parseAssignment()
	return &ast.ArrowFunctionExpression{Token: tok, Params: params, Body: body, ExpressionBody: true}
}

func (p *Parser) parseArrayExpression() *ast.ArrayExpression {
	arr := &ast.ArrayExpression{Token: p.cur}

	if p.peek.Type == token.RBRACKET {
		p.next()
		return arr
	}

	p.next()
	for {
		if p.cur.Type == token.COMMA {
			arr.Elements = append(arr.Elements, nil) // elision
			p.next()
			continue
		}
		if p.cur.Type == token.RBRACKET {
			break
		}
		arr.Elements = append(arr.Elements, p.parseArgument())
		if p.peek.Type == token.COMMA {
			p.next()
			p.next()
			continue
		}
		p.next()
		break
	}

	return arr
}

func (p *Parser) parseObjectExpression() *ast.ObjectExpression {
	obj := &ast.ObjectExpression{Token: p.cur}

	if p.peek.Type == token.RBRACE {
		p.next()
		return obj
	}

	p.next()
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		obj.Properties = append(obj.Properties, p.parseProperty())
		if p.peek.Type == token.COMMA {
			p.next()
			p.next()
			continue
		}
		p.next()
		break
	}

	return obj
}

func (p *Parser) parseProperty() *ast.Property {
	if p.cur.Type == token.ELLIPSIS {
		tok := p.cur
		p.next()
		return &ast.Property{Token: tok, Kind: ast.PropertySpread, Value: p.parseAssignment()}
	}

	tok := p.cur
	var key ast.Expression
	computed := false
	if p.cur.Type == token.LBRACKET {
		computed = true
		p.next()
		key = p.parseAssignment()
		p.expect(token.RBRACKET)
	} else if p.cur.Type == token.STRING {
		key = &ast.Literal{Token: p.cur, Kind: ast.StringLiteral, Value: p.cur.Literal}
	} else {
		key = &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
	}

	if p.peek.Type == token.LPAREN {
		p.next()
		fn := p.parseMethodBody(tok)
		return &ast.Property{Token: tok, Kind: ast.PropertyMethod, Key: key, Value: fn, Computed: computed}
	}

	if p.peek.Type == token.COLON {
		p.next()
		p.next()
		value := p.parseAssignment()
		return &ast.Property{Token: tok, Kind: ast.PropertyLiteral, Key: key, Value: value, Computed: computed}
	}

	return &ast.Property{Token: tok, Kind: ast.PropertyShorthand, Key: key, Value: key, Computed: false}
}

// parseMethodBody parses `(params) { ... }` for an object-literal or
// class method; p.cur is the opening LPAREN when this is called.
func (p *Parser) parseMethodBody(tok token.Token) *ast.FunctionExpression {
	params := p.parseParamList()
	if !p.expect(token.LBRACE) {
		return &ast.FunctionExpression{Token: tok, Params: params}
	}
	body := p.parseBlockStatement()
	return &ast.FunctionExpression{Token: tok, Params: params, Body: body}
}

func (p *Parser) parseParamList() []*ast.Identifier {
	var params []*ast.Identifier

	if p.peek.Type == token.RPAREN {
		p.next()
		return params
	}

	p.next()
	for {
		if p.cur.Type == token.IDENT {
			params = append(params, &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme})
		}
		if p.peek.Type == token.COMMA {
			p.next()
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFunctionExpression() *ast.FunctionExpression {
	tok := p.cur
	if p.peek.Type == token.IDENT {
		p.next() // named function expressions: the name is not tracked separately from Token
	}
	if !p.expect(token.LPAREN) {
		return &ast.FunctionExpression{Token: tok}
	}
	params := p.parseParamList()
	if !p.expect(token.LBRACE) {
		return &ast.FunctionExpression{Token: tok, Params: params}
	}
	body := p.parseBlockStatement()
	return &ast.FunctionExpression{Token: tok, Params: params, Body: body}
}

func (p *Parser) parseClassExpression() *ast.ClassExpression {
	tok := p.cur
	class := &ast.ClassExpression{Token: tok}

	if p.peek.Type == token.IDENT {
		p.next()
		class.Name = &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
	}

	if p.peek.Type == token.EXTENDS {
		p.next()
		p.next()
		class.Super = p.parseCallOrMember()
	}

	if !p.expect(token.LBRACE) {
		return class
	}
	p.next()

	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if p.cur.Type == token.IDENT {
			methodTok := p.cur
			key := &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
			if p.expect(token.LPAREN) {
				fn := p.parseMethodBody(methodTok)
				class.Methods = append(class.Methods, &ast.MethodDefinition{Token: methodTok, Key: key, Value: fn})
			}
		}
		p.next()
	}

	return class
}
