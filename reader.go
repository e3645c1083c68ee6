package golisp

import (
	"strconv"
	"strings"
)

const eof = -1

// Reader is a recursive-descent parser from source text to the
// heap-allocated value graph (§4.5). It holds a byte cursor into an
// input buffer; nothing about it is itself GC-managed, matching the
// teacher's BaseParser shape (a small cursor-owning struct with Peek/
// Any-style helpers) generalized to this grammar's much simpler
// dispatch-by-first-byte structure instead of PEG backtracking.
type Reader struct {
	rt    *Runtime
	input []byte
	pos   int

	lines *lineIndex
}

// NewReader constructs a Reader over input, ready to parse starting
// at byte offset 0.
func NewReader(rt *Runtime, input []byte) *Reader {
	return &Reader{rt: rt, input: input}
}

// Pos reports the current byte offset, i.e. "next index" in §6's
// parse_value signature.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) peek() int {
	if r.pos >= len(r.input) {
		return eof
	}
	return int(r.input[r.pos])
}

func (r *Reader) peekAt(offset int) int {
	if r.pos+offset >= len(r.input) {
		return eof
	}
	return int(r.input[r.pos+offset])
}

func (r *Reader) advance() byte {
	c := r.input[r.pos]
	r.pos++
	return c
}

// line returns the one-based source line containing the current
// cursor, building the lazy line index on first use.
func (r *Reader) line() int {
	if r.lines == nil {
		r.lines = newLineIndex(r.input)
	}
	return r.lines.lineAt(r.pos)
}

func (r *Reader) syntaxErrorf(format string, args ...any) error {
	return newErrorf(ErrSyntax, format, args...).withLine(r.line())
}

// skipWhitespaceAndComments consumes any run of ASCII whitespace and
// any `;`-to-end-of-line comment, per §4.5.
func (r *Reader) skipWhitespaceAndComments() {
	for {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			r.advance()
		case c == ';':
			for r.peek() != eof && r.peek() != '\n' {
				r.advance()
			}
		default:
			return
		}
	}
}

func isSymbolTerminator(c int) bool {
	switch c {
	case eof, ' ', '\t', '\n', '\r', '\v', '\f', ')', '(', '\'', ';', '"':
		return true
	default:
		return false
	}
}

// ReadValue parses a single value starting at the reader's current
// position and returns it, the byte offset just past it, and any
// error. A clean end of input with nothing left to read returns a nil
// value, the current position, and a nil error; that combination (as
// opposed to a non-nil error) is how ParseProgn recognizes EOF.
func (r *Reader) ReadValue() (*Value, int, error) {
	r.skipWhitespaceAndComments()

	c := r.peek()
	switch {
	case c == eof:
		return nil, r.pos, nil

	case c == '"':
		v, err := r.readString()
		return v, r.pos, err

	case c == '(':
		v, err := r.readList()
		return v, r.pos, err

	case c == ')':
		// Defensive: an unexpected close paren at the top level
		// yields nil, per §4.5; the enclosing list parser is what
		// actually validates balance.
		r.advance()
		return r.rt.heap.Nil(), r.pos, nil

	case c == '\'':
		v, err := r.readReaderMacro("quote")
		return v, r.pos, err

	case c == '`':
		v, err := r.readReaderMacro("quasiquote")
		return v, r.pos, err

	case c == ',':
		v, err := r.readReaderMacro("unquote")
		return v, r.pos, err

	case c >= '0' && c <= '9':
		v, err := r.readInteger()
		return v, r.pos, err

	case c == '-' && r.peekAt(1) >= '0' && r.peekAt(1) <= '9':
		v, err := r.readInteger()
		return v, r.pos, err

	default:
		v, err := r.readSymbolOrDotted()
		return v, r.pos, err
	}
}

func (r *Reader) readString() (*Value, error) {
	r.advance() // opening quote
	var b strings.Builder
	for {
		c := r.peek()
		if c == eof {
			return nil, r.syntaxErrorf("unterminated string literal")
		}
		if c == '"' {
			r.advance()
			return r.rt.NewString(b.String()), nil
		}
		if c == '\\' {
			r.advance()
			e := r.peek()
			if e == eof {
				return nil, r.syntaxErrorf("unterminated string literal")
			}
			r.advance()
			b.WriteByte(unescape(byte(e)))
			continue
		}
		b.WriteByte(r.advance())
	}
}

// unescape maps the escape set `\a \b \f \n \r \t \v` to their
// C-equivalent bytes; any other escaped byte passes through literally
// (§4.5, §6).
func unescape(c byte) byte {
	switch c {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	default:
		return c
	}
}

func (r *Reader) readInteger() (*Value, error) {
	start := r.pos
	if r.peek() == '-' {
		r.advance()
	}
	for {
		c := r.peek()
		if c < '0' || c > '9' {
			break
		}
		r.advance()
	}
	text := string(r.input[start:r.pos])
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, r.syntaxErrorf("malformed integer literal %q", text)
	}
	return r.rt.NewInt(n), nil
}

// readList parses `(` elements `)`, including the `.` dotted-tail
// sugar `(a b . c)` (§4.5).
func (r *Reader) readList() (*Value, error) {
	r.advance() // '('
	r.skipWhitespaceAndComments()

	if r.peek() == ')' {
		r.advance()
		return r.rt.heap.Nil(), nil
	}

	var items []*Value
	tail := r.rt.heap.Nil()

	for {
		r.skipWhitespaceAndComments()

		if r.peek() == eof {
			return nil, r.syntaxErrorf("unterminated list")
		}

		if r.peek() == '.' && isSymbolTerminator(r.peekAt(1)) {
			r.advance()
			r.skipWhitespaceAndComments()
			v, _, err := r.ReadValue()
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, r.syntaxErrorf("missing value after '.' in dotted list")
			}
			tail = v
			r.skipWhitespaceAndComments()
			if r.peek() != ')' {
				return nil, r.syntaxErrorf("dotted list must close immediately after its tail")
			}
			r.advance()
			break
		}

		if r.peek() == ')' {
			r.advance()
			break
		}

		v, _, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, r.syntaxErrorf("unterminated list")
		}
		items = append(items, v)
	}

	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = r.rt.Cons(items[i], result)
	}
	return result, nil
}

// readReaderMacro handles `'`, `` ` `` and `,`: each parses the
// following value v and wraps it as (quote v), (quasiquote v) or
// (unquote v), using the shared interned symbol for name.
func (r *Reader) readReaderMacro(name string) (*Value, error) {
	r.advance()
	v, _, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, r.syntaxErrorf("missing value after reader macro '%s'", name)
	}
	return r.rt.List(r.rt.Intern(name), v), nil
}

// readSymbolOrDotted reads the maximal run of bytes that are not
// whitespace, `(`, `)`, `'`, `;` or `"`. If the run contains an internal
// `.`, it is rewritten into nested getattr forms per §4.5.
func (r *Reader) readSymbolOrDotted() (*Value, error) {
	start := r.pos
	for !isSymbolTerminator(r.peek()) {
		r.advance()
	}
	text := string(r.input[start:r.pos])
	if text == "" {
		return nil, r.syntaxErrorf("unexpected character %q", string(rune(r.peek())))
	}

	if !strings.Contains(text, ".") {
		return r.rt.Intern(text), nil
	}
	return r.rewriteDottedSymbol(text)
}

// rewriteDottedSymbol splits a symbol containing `.` into
// s0.s1...sn and rewrites it into
//
//	(getattr (getattr ... (getattr s0 's1) ...) 'sn)
//
// per §4.5. A leading or trailing `.` is a syntax error.
func (r *Reader) rewriteDottedSymbol(text string) (*Value, error) {
	if text[0] == '.' || text[len(text)-1] == '.' {
		return nil, r.syntaxErrorf("malformed dotted symbol %q", text)
	}
	parts := strings.Split(text, ".")
	getattr := r.rt.Intern("getattr")
	quote := r.rt.Intern("quote")

	result := r.rt.Intern(parts[0])
	for _, attr := range parts[1:] {
		quoted := r.rt.List(quote, r.rt.Intern(attr))
		result = r.rt.List(getattr, result, quoted)
	}
	return result, nil
}

// ReadProgn repeatedly parses values and threads them into
// (progn v1 v2 ... vN), terminating cleanly on EOF (§4.5's
// parse_progn).
func (r *Reader) ReadProgn() (*Value, error) {
	progn := r.rt.Intern("progn")
	var items []*Value
	for {
		v, _, err := r.ReadValue()
		if err != nil {
			return nil, err
		}
		if v == nil {
			break
		}
		items = append(items, v)
	}
	return r.rt.Cons(progn, r.rt.List(items...)), nil
}
