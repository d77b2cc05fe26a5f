package pdfpage

import (
	"errors"
	"strconv"
)

type tokKind int

const (
	tokOperand tokKind = iota
	tokOperator
)

type token struct {
	kind tokKind
	val  any
}

var errEndOfContent = errors.New("end of content")

// streamLexer tokenizes a decoded content stream. It only understands the
// subset of syntax that appears between operators: numbers, names, strings,
// hex strings and arrays. Inline dictionaries (marked content, inline image
// headers) are skipped as opaque operands.
type streamLexer struct {
	data []byte
	pos  int
}

func newStreamLexer(data []byte) *streamLexer {
	return &streamLexer{data: data}
}

func (l *streamLexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, errEndOfContent
	}
	ch := l.data[l.pos]
	switch {
	case ch == '(':
		return l.readString()
	case ch == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.skipDict()
			return token{kind: tokOperand}, nil
		}
		return l.readHexString()
	case ch == '[':
		return l.readArray()
	case ch == ']':
		l.pos++
		return token{kind: tokOperand}, nil
	case ch == '/':
		return l.readName()
	case ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9'):
		return l.readNumber()
	default:
		return l.readOperator()
	}
}

// skipInlineImage advances past the binary payload of a BI..EI inline image.
func (l *streamLexer) skipInlineImage() {
	for i := l.pos; i+1 < len(l.data); i++ {
		if l.data[i] != 'E' || l.data[i+1] != 'I' {
			continue
		}
		if i > 0 && !isSpace(l.data[i-1]) {
			continue
		}
		if i+2 < len(l.data) && !isSpace(l.data[i+2]) {
			continue
		}
		l.pos = i + 2
		return
	}
	l.pos = len(l.data)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == 0
}

func isDelim(ch byte) bool {
	switch ch {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *streamLexer) skipSpace() {
	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if isSpace(ch) {
			l.pos++
			continue
		}
		if ch == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		break
	}
}

func (l *streamLexer) skipDict() {
	depth := 0
	for l.pos+1 < len(l.data) {
		if l.data[l.pos] == '<' && l.data[l.pos+1] == '<' {
			depth++
			l.pos += 2
			continue
		}
		if l.data[l.pos] == '>' && l.data[l.pos+1] == '>' {
			depth--
			l.pos += 2
			if depth == 0 {
				return
			}
			continue
		}
		l.pos++
	}
	l.pos = len(l.data)
}

func (l *streamLexer) readString() (token, error) {
	l.pos++ // opening paren
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		switch ch {
		case '\\':
			l.pos++
			if l.pos < len(l.data) {
				out = append(out, l.data[l.pos])
				l.pos++
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				return token{kind: tokOperand, val: out}, nil
			}
		}
		out = append(out, ch)
		l.pos++
	}
	return token{}, errors.New("unterminated string")
}

func (l *streamLexer) readHexString() (token, error) {
	l.pos++ // opening angle
	digits := 0
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		ch := l.data[l.pos]
		if (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') {
			digits++
		}
		l.pos++
	}
	if l.pos < len(l.data) {
		l.pos++ // closing angle
	}
	return token{kind: tokOperand, val: make([]byte, (digits+1)/2)}, nil
}

func (l *streamLexer) readArray() (token, error) {
	l.pos++ // opening bracket
	var arr []any
	for l.pos < len(l.data) {
		l.skipSpace()
		if l.pos >= len(l.data) {
			break
		}
		ch := l.data[l.pos]
		if ch == ']' {
			l.pos++
			break
		}
		switch {
		case ch == '(':
			tk, err := l.readString()
			if err != nil {
				return token{}, err
			}
			arr = append(arr, tk.val)
		case ch == '<':
			tk, err := l.readHexString()
			if err != nil {
				return token{}, err
			}
			arr = append(arr, tk.val)
		case ch == '/':
			tk, _ := l.readName()
			arr = append(arr, tk.val)
		case ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9'):
			tk, _ := l.readNumber()
			arr = append(arr, tk.val)
		default:
			l.pos++
		}
	}
	return token{kind: tokOperand, val: arr}, nil
}

func (l *streamLexer) readName() (token, error) {
	l.pos++ // slash
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return token{kind: tokOperand, val: string(l.data[start:l.pos])}, nil
}

func (l *streamLexer) readNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if ch == '.' || (ch >= '0' && ch <= '9') || ((ch == '+' || ch == '-') && l.pos == start) {
			l.pos++
			continue
		}
		break
	}
	v, _ := strconv.ParseFloat(string(l.data[start:l.pos]), 64)
	return token{kind: tokOperand, val: v}, nil
}

func (l *streamLexer) readOperator() (token, error) {
	start := l.pos
	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if isSpace(ch) || isDelim(ch) || ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9') {
			break
		}
		l.pos++
	}
	if l.pos == start {
		l.pos++ // stray delimiter, swallow it
		return token{kind: tokOperand}, nil
	}
	return token{kind: tokOperator, val: string(l.data[start:l.pos])}, nil
}
