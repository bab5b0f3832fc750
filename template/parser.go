package template

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var (
	ErrUnterminatedPush       = errors.New("Unterminated Push")
	ErrUnterminatedEvaluation = errors.New("Unterminated Evaluation")
	ErrUnterminatedString     = errors.New("Unterminated String")
	ErrUnterminatedComment    = errors.New("Unterminated Block Comment")
	ErrUnexpectedCharacter    = errors.New("Unexpected Character")
)

// ParseError is a BTL syntax error with the source range at which it occurred.
type ParseError struct {
	Range   Range
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parse converts BTL source text into a ranged segment tree, reading the rune stream of the
// source item by item with a recursive-descent parser.
func Parse(source string) ([]Segment, error) {
	p := &parser{src: []rune(source), line: 1, column: 1}
	segments, err := p.parseSegments(false, false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, &ParseError{Range: p.here(), Message: "Unexpected closing delimiter."}
	}
	return segments, nil
}

type parser struct {
	src    []rune
	pos    int
	line   int
	column int
}

func (p *parser) here() Range {
	return Range{StartLine: p.line, StartColumn: p.column, EndLine: p.line, EndColumn: p.column}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) rune {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
	return r
}

func (p *parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

// parseSegments reads segments until EOF or, when inPush/inEvaluation, the matching closing
// delimiter (exclusive: the closing delimiter is not consumed here).
func (p *parser) parseSegments(inPush, inEvaluation bool) ([]Segment, error) {
	var segments []Segment

	for {
		p.skipWhitespace()
		if p.eof() {
			break
		}
		if inPush && p.peek() == '>' {
			break
		}
		if inEvaluation && p.peek() == ')' {
			break
		}

		segment, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}

	return segments, nil
}

func (p *parser) parseSegment() (Segment, error) {
	start := Range{StartLine: p.line, StartColumn: p.column}

	switch {
	case p.peek() == '<':
		return p.parsePush(start)
	case p.peek() == '$' && p.peekAt(1) == '(':
		return p.parseEvaluation(start)
	case p.peek() == '/' && p.peekAt(1) == '/':
		return p.parseLineComment(start)
	case p.peek() == '/' && p.peekAt(1) == '*':
		return p.parseBlockComment(start)
	case p.peek() == '"' || p.peek() == '\'':
		return p.parseString(start)
	case strings.HasPrefix(string(p.src[p.pos:min(p.pos+2, len(p.src))]), "0x"):
		return p.parseHex(start)
	case isIdentifierStart(p.peek()):
		return p.parseIdentifier(start)
	case isDigit(p.peek()) || (p.peek() == '-' && isDigit(p.peekAt(1))):
		return p.parseNumber(start)
	default:
		return Segment{}, &ParseError{
			Range:   p.here(),
			Message: "Unexpected character '" + string(p.peek()) + "'.",
		}
	}
}

func (p *parser) parsePush(start Range) (Segment, error) {
	p.advance() // '<'
	children, err := p.parseSegments(true, false)
	if err != nil {
		return Segment{}, err
	}
	if p.eof() || p.peek() != '>' {
		return Segment{}, &ParseError{Range: start, Message: "Unterminated push (missing '>')."}
	}
	p.advance() // '>'

	children = emptyToComment(children, mergeWith(start, p))
	return Segment{Kind: SegmentKindPush, Range: mergeWith(start, p), Children: children}, nil
}

func (p *parser) parseEvaluation(start Range) (Segment, error) {
	p.advance() // '$'
	p.advance() // '('
	children, err := p.parseSegments(false, true)
	if err != nil {
		return Segment{}, err
	}
	if p.eof() || p.peek() != ')' {
		return Segment{}, &ParseError{Range: start, Message: "Unterminated evaluation (missing ')')."}
	}
	p.advance() // ')'

	children = emptyToComment(children, mergeWith(start, p))
	return Segment{Kind: SegmentKindEvaluation, Range: mergeWith(start, p), Children: children}, nil
}

func (p *parser) parseLineComment(start Range) (Segment, error) {
	p.advance()
	p.advance()
	var b strings.Builder
	for !p.eof() && p.peek() != '\n' {
		b.WriteRune(p.advance())
	}
	return Segment{Kind: SegmentKindComment, Range: mergeWith(start, p), Comment: b.String()}, nil
}

func (p *parser) parseBlockComment(start Range) (Segment, error) {
	p.advance()
	p.advance()
	var b strings.Builder
	for {
		if p.eof() {
			return Segment{}, &ParseError{Range: start, Message: "Unterminated block comment."}
		}
		if p.peek() == '*' && p.peekAt(1) == '/' {
			p.advance()
			p.advance()
			break
		}
		b.WriteRune(p.advance())
	}
	return Segment{Kind: SegmentKindComment, Range: mergeWith(start, p), Comment: b.String()}, nil
}

func (p *parser) parseString(start Range) (Segment, error) {
	quote := p.advance()
	var b strings.Builder
	for {
		if p.eof() {
			return Segment{}, &ParseError{Range: start, Message: "Unterminated string literal."}
		}
		if p.peek() == quote {
			p.advance()
			break
		}
		b.WriteRune(p.advance())
	}
	return Segment{Kind: SegmentKindUTF8Literal, Range: mergeWith(start, p), UTF8: b.String()}, nil
}

func (p *parser) parseHex(start Range) (Segment, error) {
	p.advance() // '0'
	p.advance() // 'x'
	var b strings.Builder
	for !p.eof() && isHexDigit(p.peek()) {
		b.WriteRune(p.advance())
	}
	return Segment{Kind: SegmentKindHexLiteral, Range: mergeWith(start, p), Hex: b.String()}, nil
}

func (p *parser) parseIdentifier(start Range) (Segment, error) {
	var b strings.Builder
	for !p.eof() && isIdentifierChar(p.peek()) {
		b.WriteRune(p.advance())
	}
	return Segment{Kind: SegmentKindIdentifier, Range: mergeWith(start, p), Identifier: b.String()}, nil
}

func (p *parser) parseNumber(start Range) (Segment, error) {
	var b strings.Builder
	if p.peek() == '-' {
		b.WriteRune(p.advance())
	}
	for !p.eof() && isDigit(p.peek()) {
		b.WriteRune(p.advance())
	}
	return Segment{Kind: SegmentKindBigIntLiteral, Range: mergeWith(start, p), BigInt: b.String()}, nil
}

func mergeWith(start Range, p *parser) Range {
	return Range{
		StartLine:   start.StartLine,
		StartColumn: start.StartColumn,
		EndLine:     p.line,
		EndColumn:   p.column,
	}
}

// emptyToComment implements the builder rule that an empty child list resolves to one
// Comment("") node spanning the parent's range, applied here at parse time for Push and
// Evaluation bodies (build.go applies the same rule again for the resolved tree).
func emptyToComment(children []Segment, parentRange Range) []Segment {
	if len(children) > 0 {
		return children
	}
	return []Segment{{Kind: SegmentKindComment, Range: parentRange, Comment: ""}}
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierChar(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
