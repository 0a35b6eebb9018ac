package secrets

import (
	"fmt"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWhitespace
	tokComment
	tokIdent
	tokString
	tokTemplate
	tokRegex
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokSemicolon
	tokOther
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// scanner splits TypeScript source into the coarse tokens the parser
// needs. It gets strings, template literals, comments, and regex literals
// right so brace counting stays sound; everything else it does not care
// about comes out as tokOther.
type scanner struct {
	path  string
	input string
	i     int
	prev  token // last non-trivia token, for regex disambiguation
}

func newScanner(path, input string) *scanner {
	return &scanner{path: path, input: input}
}

func (s *scanner) nextNonTrivia() token {
	for {
		tok := s.next()
		if tok.kind == tokWhitespace || tok.kind == tokComment {
			continue
		}
		s.prev = tok
		return tok
	}
}

func (s *scanner) next() token {
	if s.i >= len(s.input) {
		return token{kind: tokEOF, text: "", pos: s.i}
	}
	ch := s.input[s.i]

	if isSpace(ch) {
		start := s.i
		for s.i < len(s.input) && isSpace(s.input[s.i]) {
			s.i++
		}
		return token{kind: tokWhitespace, text: s.input[start:s.i], pos: start}
	}

	// comments
	if ch == '/' && s.i+1 < len(s.input) && s.input[s.i+1] == '/' {
		start := s.i
		s.i += 2
		for s.i < len(s.input) && s.input[s.i] != '\n' {
			s.i++
		}
		return token{kind: tokComment, text: s.input[start:s.i], pos: start}
	}
	if ch == '/' && s.i+1 < len(s.input) && s.input[s.i+1] == '*' {
		start := s.i
		s.i += 2
		for s.i+1 < len(s.input) && (s.input[s.i] != '*' || s.input[s.i+1] != '/') {
			s.i++
		}
		if s.i+1 < len(s.input) {
			s.i += 2
		} else {
			s.i = len(s.input)
		}
		return token{kind: tokComment, text: s.input[start:s.i], pos: start}
	}

	// regex literals, when the previous token permits one
	if ch == '/' && s.regexAllowed() {
		return s.scanRegex()
	}

	// strings
	if ch == '\'' || ch == '"' {
		return s.scanString(ch)
	}
	if ch == '`' {
		return s.scanTemplate()
	}

	switch ch {
	case '{':
		return s.punct(tokLBrace)
	case '}':
		return s.punct(tokRBrace)
	case '(':
		return s.punct(tokLParen)
	case ')':
		return s.punct(tokRParen)
	case '[':
		return s.punct(tokLBracket)
	case ']':
		return s.punct(tokRBracket)
	case ':':
		return s.punct(tokColon)
	case ',':
		return s.punct(tokComma)
	case ';':
		return s.punct(tokSemicolon)
	}

	if isIdentStart(rune(ch)) {
		start := s.i
		s.i++
		for s.i < len(s.input) && isIdentPart(rune(s.input[s.i])) {
			s.i++
		}
		return token{kind: tokIdent, text: s.input[start:s.i], pos: start}
	}

	s.i++
	return token{kind: tokOther, text: s.input[s.i-1 : s.i], pos: s.i - 1}
}

func (s *scanner) punct(kind tokenKind) token {
	tok := token{kind: kind, text: s.input[s.i : s.i+1], pos: s.i}
	s.i++
	return tok
}

// scanString consumes a single- or double-quoted string. Plain strings do
// not span lines, so an unterminated one stops at the newline.
func (s *scanner) scanString(quote byte) token {
	start := s.i
	s.i++
	for s.i < len(s.input) {
		c := s.input[s.i]
		if c == '\\' {
			s.i += 2
			continue
		}
		if c == '\n' {
			break
		}
		s.i++
		if c == quote {
			break
		}
	}
	if s.i > len(s.input) {
		s.i = len(s.input)
	}
	return token{kind: tokString, text: s.input[start:s.i], pos: start}
}

// scanTemplate consumes a template literal, tracking ${...} substitution
// depth so embedded braces do not end it early.
func (s *scanner) scanTemplate() token {
	start := s.i
	s.i++
	depth := 0
	for s.i < len(s.input) {
		c := s.input[s.i]
		switch {
		case c == '\\':
			s.i += 2
			continue
		case c == '$' && s.i+1 < len(s.input) && s.input[s.i+1] == '{':
			depth++
			s.i += 2
			continue
		case c == '}' && depth > 0:
			depth--
		case c == '`' && depth == 0:
			s.i++
			return token{kind: tokTemplate, text: s.input[start:s.i], pos: start}
		}
		s.i++
	}
	return token{kind: tokTemplate, text: s.input[start:], pos: start}
}

// regexAllowed reports whether a '/' at the current position starts a regex
// literal rather than a division. A regex cannot follow an operand.
func (s *scanner) regexAllowed() bool {
	switch s.prev.kind {
	case tokIdent, tokString, tokTemplate, tokRegex, tokRParen, tokRBracket:
		return false
	case tokOther:
		return s.prev.text != "."
	default:
		return true
	}
}

func (s *scanner) scanRegex() token {
	start := s.i
	s.i++
	inClass := false
	for s.i < len(s.input) {
		c := s.input[s.i]
		if c == '\\' {
			s.i += 2
			continue
		}
		if c == '\n' {
			break
		}
		switch c {
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				s.i++
				// flags
				for s.i < len(s.input) && isIdentPart(rune(s.input[s.i])) {
					s.i++
				}
				return token{kind: tokRegex, text: s.input[start:s.i], pos: start}
			}
		}
		s.i++
	}
	return token{kind: tokRegex, text: s.input[start:s.i], pos: start}
}

// Position is a line and column location in a source file.
type Position struct {
	Line int
	Col  int
}

func (s *scanner) position(pos int) Position {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.input) {
		pos = len(s.input)
	}
	line := 1
	lastNL := -1
	for i := 0; i < pos; i++ {
		if s.input[i] == '\n' {
			line++
			lastNL = i
		}
	}
	return Position{Line: line, Col: pos - lastNL}
}

func (s *scanner) errAt(tok token, msg string) error {
	pos := s.position(tok.pos)
	return fmt.Errorf("%s:%d:%d: %s", s.path, pos.Line, pos.Col, msg)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
