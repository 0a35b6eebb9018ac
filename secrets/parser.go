// Copyright 2026 Packsmith Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package secrets

import "fmt"

// Node is implemented by every declaration node the parser produces. The
// set is closed: classes, accessors, return statements, and object literals
// are the only shapes the secret scan inspects.
type Node interface {
	Pos() Position
	node()
}

// SourceFile holds every class declaration found in one file.
type SourceFile struct {
	Path    string
	Classes []*ClassDecl
}

// ClassDecl is a class or abstract class declaration.
type ClassDecl struct {
	Name      string // empty for anonymous class expressions
	Accessors []*AccessorDecl
	pos       Position
}

func (d *ClassDecl) Pos() Position { return d.pos }
func (*ClassDecl) node()           {}

// AccessorDecl is a zero-argument get accessor in a class body.
type AccessorDecl struct {
	Name   string
	Return *ReturnStmt // nil when the body has no top-level return
	pos    Position
}

func (d *AccessorDecl) Pos() Position { return d.pos }
func (*AccessorDecl) node()           {}

// ReturnStmt is the first top-level return statement of an accessor body.
type ReturnStmt struct {
	Object *ObjectLiteral // nil when a non-literal is returned
	pos    Position
}

func (r *ReturnStmt) Pos() Position { return r.pos }
func (*ReturnStmt) node()           {}

// ObjectLiteral is a returned object literal, reduced to its literal keys.
type ObjectLiteral struct {
	Keys []PropertyKey
	pos  Position
}

func (o *ObjectLiteral) Pos() Position { return o.pos }
func (*ObjectLiteral) node()           {}

// PropertyKey is one literal key of an object literal.
type PropertyKey struct {
	Text   string
	Quoted bool
	Pos    Position
}

type parser struct {
	s       *scanner
	pending []token
}

func (p *parser) next() token {
	if n := len(p.pending); n > 0 {
		tok := p.pending[n-1]
		p.pending = p.pending[:n-1]
		return tok
	}
	return p.s.nextNonTrivia()
}

// unread pushes tokens back so they replay in the order given.
func (p *parser) unread(toks ...token) {
	for i := len(toks) - 1; i >= 0; i-- {
		p.pending = append(p.pending, toks[i])
	}
}

// ParseFile scans source for class declarations and the get accessors on
// them. Everything outside those shapes is skipped by token, so the parser
// tolerates source it does not model.
func ParseFile(path, source string) (*SourceFile, error) {
	p := &parser{s: newScanner(path, source)}
	file := &SourceFile{Path: path}

	var prev token
	for {
		tok := p.next()
		if tok.kind == tokEOF {
			return file, nil
		}
		if tok.kind == tokIdent && tok.text == "class" && !isMemberAccess(prev) {
			class, err := p.parseClass(tok)
			if err != nil {
				return nil, err
			}
			file.Classes = append(file.Classes, class)
		}
		prev = tok
	}
}

// isMemberAccess guards against property accesses like obj.class being
// mistaken for a declaration.
func isMemberAccess(prev token) bool {
	return prev.kind == tokOther && prev.text == "."
}

func (p *parser) parseClass(kw token) (*ClassDecl, error) {
	class := &ClassDecl{pos: p.s.position(kw.pos)}

	// anonymous class expressions can go straight to a heritage clause
	tok := p.next()
	if tok.kind == tokIdent && tok.text != "extends" && tok.text != "implements" {
		class.Name = tok.text
		tok = p.next()
	}

	// skip heritage clauses up to the body
	for tok.kind != tokLBrace {
		if tok.kind == tokEOF {
			return nil, p.classErr(kw)
		}
		tok = p.next()
	}

	if err := p.parseClassBody(kw, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (p *parser) classErr(kw token) error {
	pos := p.s.position(kw.pos)
	return fmt.Errorf("%s:%d:%d: %w", p.s.path, pos.Line, pos.Col, ErrUnterminatedClass)
}

func (p *parser) parseClassBody(kw token, class *ClassDecl) error {
	for {
		tok := p.next()
		switch tok.kind {
		case tokEOF:
			return p.classErr(kw)
		case tokRBrace:
			return nil
		case tokLBrace:
			if err := p.skipBalanced(tokLBrace, tokRBrace); err != nil {
				return err
			}
		case tokLParen:
			if err := p.skipBalanced(tokLParen, tokRParen); err != nil {
				return err
			}
		case tokLBracket:
			if err := p.skipBalanced(tokLBracket, tokRBracket); err != nil {
				return err
			}
		case tokIdent:
			if tok.text == "get" {
				acc, err := p.parseAccessor()
				if err != nil {
					return err
				}
				if acc != nil {
					class.Accessors = append(class.Accessors, acc)
				}
			}
		}
	}
}

func (p *parser) skipBalanced(open, close tokenKind) error {
	depth := 1
	for depth > 0 {
		tok := p.next()
		switch tok.kind {
		case tokEOF:
			return p.s.errAt(tok, "unexpected end of file")
		case open:
			depth++
		case close:
			depth--
		}
	}
	return nil
}

// parseAccessor probes the tokens after a get keyword. When they do not
// form a zero-argument accessor, everything consumed is pushed back so the
// class body scan stays aligned.
func (p *parser) parseAccessor() (*AccessorDecl, error) {
	name := p.next()
	if name.kind != tokIdent {
		p.unread(name)
		return nil, nil
	}
	lparen := p.next()
	if lparen.kind != tokLParen {
		p.unread(name, lparen)
		return nil, nil
	}
	rparen := p.next()
	if rparen.kind != tokRParen {
		p.unread(name, lparen, rparen)
		return nil, nil
	}

	acc := &AccessorDecl{Name: name.text, pos: p.s.position(name.pos)}

	tok := p.next()
	if tok.kind == tokColon {
		var err error
		tok, err = p.skipTypeAnnotation()
		if err != nil {
			return nil, err
		}
	}
	if tok.kind != tokLBrace {
		// declaration-only accessor, as in .d.ts files or abstract members
		p.unread(tok)
		return acc, nil
	}

	if err := p.parseAccessorBody(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// skipTypeAnnotation consumes a return-type annotation and returns the
// first token after it, normally the brace opening the accessor body.
// A brace in type position is an object type literal and is consumed as a
// balanced group; a brace after a completed type starts the body.
func (p *parser) skipTypeAnnotation() (token, error) {
	expectsType := true
	for {
		tok := p.next()
		switch tok.kind {
		case tokEOF, tokSemicolon:
			return tok, nil
		case tokLBrace:
			if !expectsType {
				return tok, nil
			}
			if err := p.skipBalanced(tokLBrace, tokRBrace); err != nil {
				return token{}, err
			}
			expectsType = false
		case tokLParen:
			if err := p.skipBalanced(tokLParen, tokRParen); err != nil {
				return token{}, err
			}
			expectsType = false
		case tokLBracket:
			if err := p.skipBalanced(tokLBracket, tokRBracket); err != nil {
				return token{}, err
			}
			expectsType = false
		case tokIdent, tokString, tokTemplate:
			expectsType = false
		case tokColon, tokComma:
			expectsType = true
		default:
			switch tok.text {
			case ">", ")", "]":
				expectsType = false
			default:
				expectsType = true
			}
		}
	}
}

func (p *parser) parseAccessorBody(acc *AccessorDecl) error {
	depth := 1
	for {
		tok := p.next()
		switch tok.kind {
		case tokEOF:
			return p.s.errAt(tok, "unterminated accessor body")
		case tokLBrace:
			depth++
		case tokRBrace:
			depth--
			if depth == 0 {
				return nil
			}
		case tokIdent:
			if tok.text == "return" && depth == 1 && acc.Return == nil {
				ret, err := p.parseReturn(tok)
				if err != nil {
					return err
				}
				acc.Return = ret
			}
		}
	}
}

func (p *parser) parseReturn(kw token) (*ReturnStmt, error) {
	ret := &ReturnStmt{pos: p.s.position(kw.pos)}

	tok := p.next()
	if tok.kind == tokLParen {
		// parenthesized literal: return ({ ... })
		inner := p.next()
		if inner.kind != tokLBrace {
			p.unread(tok, inner)
			return ret, nil
		}
		tok = inner
	}
	if tok.kind != tokLBrace {
		p.unread(tok)
		return ret, nil
	}

	obj, err := p.parseObjectLiteral(tok)
	if err != nil {
		return nil, err
	}
	ret.Object = obj
	return ret, nil
}

// parseObjectLiteral collects the literal property keys of an object
// literal: identifier keys, string keys, shorthand properties, and method
// names. Computed keys and spreads contribute nothing.
func (p *parser) parseObjectLiteral(open token) (*ObjectLiteral, error) {
	obj := &ObjectLiteral{pos: p.s.position(open.pos)}
	for {
		tok := p.next()
		switch tok.kind {
		case tokEOF:
			return nil, p.s.errAt(tok, "unterminated object literal")
		case tokRBrace:
			return obj, nil
		case tokIdent, tokString:
			key := PropertyKey{
				Text:   keyText(tok),
				Quoted: tok.kind == tokString,
				Pos:    p.s.position(tok.pos),
			}
			next := p.next()
			switch next.kind {
			case tokColon:
				obj.Keys = append(obj.Keys, key)
			case tokComma:
				obj.Keys = append(obj.Keys, key)
				continue
			case tokRBrace:
				obj.Keys = append(obj.Keys, key)
				return obj, nil
			case tokLParen:
				obj.Keys = append(obj.Keys, key)
				p.unread(next)
			default:
				p.unread(next)
			}
			done, err := p.skipPropertyValue()
			if err != nil {
				return nil, err
			}
			if done {
				return obj, nil
			}
		default:
			p.unread(tok)
			done, err := p.skipPropertyValue()
			if err != nil {
				return nil, err
			}
			if done {
				return obj, nil
			}
		}
	}
}

// skipPropertyValue consumes tokens up to the comma ending the current
// property or the brace closing the object, reporting whether the object
// ended.
func (p *parser) skipPropertyValue() (bool, error) {
	depth := 0
	for {
		tok := p.next()
		switch tok.kind {
		case tokEOF:
			return false, p.s.errAt(tok, "unterminated object literal")
		case tokLBrace, tokLParen, tokLBracket:
			depth++
		case tokRBrace:
			if depth == 0 {
				return true, nil
			}
			depth--
		case tokRParen, tokRBracket:
			if depth > 0 {
				depth--
			}
		case tokComma:
			if depth == 0 {
				return false, nil
			}
		}
	}
}

func keyText(tok token) string {
	if tok.kind != tokString {
		return tok.text
	}
	text := tok.text
	if len(text) >= 2 && text[len(text)-1] == text[0] {
		return text[1 : len(text)-1]
	}
	if len(text) >= 1 {
		return text[1:]
	}
	return text
}
