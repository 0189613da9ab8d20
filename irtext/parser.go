package irtext

import (
	"strconv"

	"github.com/wippyai/dataflow/errors"
	"github.com/wippyai/dataflow/ir"
)

// Parse builds a program named "main" from its textual form, resolving
// operation names through the registry.
func Parse(reg *ir.Registry, src string) (*ir.Program, error) {
	return ParseNamed(reg, "main", src)
}

// ParseNamed is Parse with an explicit program name.
func ParseNamed(reg *ir.Registry, name, src string) (*ir.Program, error) {
	p := &parser{lex: newLexer(src), b: ir.NewBuilder(reg, name)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	// A leading parenthesized value list declares the top-level region's
	// arguments.
	if p.tok.kind == tokLParen {
		if err := p.parseRegionArgs(); err != nil {
			return nil, err
		}
	}

	for p.tok.kind != tokEOF {
		if err := p.parseStmt(); err != nil {
			return nil, err
		}
	}
	return p.b.Program(), nil
}

type parser struct {
	lex *lexer
	tok token
	b   *ir.Builder
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) fail(detail string) error {
	return errors.ParseFailed(p.tok.line, detail, nil)
}

// wrap attaches the current line to builder errors.
func (p *parser) wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.ParseFailed(p.tok.line, "invalid statement", err)
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.tok.kind != kind {
		return p.fail("expected " + what + ", got " + p.tok.text)
	}
	return p.advance()
}

// parseValueNames parses "%a, %b, ..." and returns the bare names.
func (p *parser) parseValueNames() ([]string, error) {
	var names []string
	for {
		if p.tok.kind != tokValue {
			return nil, p.fail("expected value name")
		}
		names = append(names, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokComma {
			return names, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseRegionArgs parses "(%a, %b)" and declares each as an argument of
// the builder's current region.
func (p *parser) parseRegionArgs() error {
	if err := p.expect(tokLParen, "("); err != nil {
		return err
	}
	if p.tok.kind != tokRParen {
		names, err := p.parseValueNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			if _, err := p.b.Arg(name); err != nil {
				return p.wrap(err)
			}
		}
	}
	return p.expect(tokRParen, ")")
}

// parseStmt parses one operation statement:
//
//	[%res, ... =] dialect.op [%operand, ...] [[k = v, ...]] [regions...]
func (p *parser) parseStmt() error {
	var resultNames []string
	if p.tok.kind == tokValue {
		names, err := p.parseValueNames()
		if err != nil {
			return err
		}
		resultNames = names
		if err := p.expect(tokEqual, "="); err != nil {
			return err
		}
	}

	if p.tok.kind != tokIdent {
		return p.fail("expected operation name")
	}
	opName := p.tok.text
	opLine := p.tok.line
	if err := p.advance(); err != nil {
		return err
	}

	var operands []*ir.Value
	if p.tok.kind == tokValue {
		names, err := p.parseValueNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			v, err := p.b.Value(name)
			if err != nil {
				return errors.ParseFailed(opLine, "in "+opName, err)
			}
			operands = append(operands, v)
		}
	}

	var attrs map[string]ir.Attribute
	if p.tok.kind == tokLBracket {
		parsed, err := p.parseAttrs()
		if err != nil {
			return err
		}
		attrs = parsed
	}

	op, err := p.b.Op(opName, operands, attrs, resultNames...)
	if err != nil {
		return errors.ParseFailed(opLine, "in "+opName, err)
	}

	for p.tok.kind == tokLParen || p.tok.kind == tokLBrace {
		if err := p.parseRegion(op); err != nil {
			return err
		}
	}
	return nil
}

// parseRegion parses "(args)? { stmts }" as a nested region of op.
func (p *parser) parseRegion(op *ir.Operation) error {
	p.b.EnterRegion(op)

	if p.tok.kind == tokLParen {
		if err := p.parseRegionArgs(); err != nil {
			return err
		}
	}
	if err := p.expect(tokLBrace, "{"); err != nil {
		return err
	}
	for p.tok.kind != tokRBrace {
		if p.tok.kind == tokEOF {
			return p.fail("unterminated region")
		}
		if err := p.parseStmt(); err != nil {
			return err
		}
	}
	if err := p.advance(); err != nil { // consume }
		return err
	}
	return p.wrap(p.b.ExitRegion())
}

// parseAttrs parses "[key = literal, ...]".
func (p *parser) parseAttrs() (map[string]ir.Attribute, error) {
	if err := p.advance(); err != nil { // consume [
		return nil, err
	}
	attrs := make(map[string]ir.Attribute)
	for p.tok.kind != tokRBracket {
		if p.tok.kind != tokIdent {
			return nil, p.fail("expected attribute name")
		}
		key := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokEqual, "="); err != nil {
			return nil, err
		}
		attr, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		attrs[key] = attr
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return attrs, p.advance() // consume ]
}

func (p *parser) parseLiteral() (ir.Attribute, error) {
	switch p.tok.kind {
	case tokInt:
		v, err := strconv.ParseInt(p.tok.text, 10, 64)
		if err != nil {
			return nil, p.fail("invalid integer literal " + p.tok.text)
		}
		return ir.IntAttr(v), p.advance()
	case tokFloat:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, p.fail("invalid float literal " + p.tok.text)
		}
		return ir.FloatAttr(v), p.advance()
	case tokString:
		attr := ir.StringAttr(p.tok.text)
		return attr, p.advance()
	case tokIdent:
		switch p.tok.text {
		case "true":
			return ir.BoolAttr(true), p.advance()
		case "false":
			return ir.BoolAttr(false), p.advance()
		}
	}
	return nil, p.fail("expected attribute literal, got " + p.tok.text)
}
