package newick

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shinji-kodama/seqtree/internal/model"
	"github.com/shinji-kodama/seqtree/internal/tree"
)

// Read parses exactly one tree from r.
func Read(r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree: %w", err)
	}
	return Parse(data)
}

// Parse parses exactly one tree from data. Structural problems are
// returned as *model.MalformedInputError carrying the byte offset.
func Parse(data []byte) (*tree.Tree, error) {
	p := &parser{src: data, t: tree.New()}

	if err := p.skip(); err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, p.errorf("empty input")
	}
	if err := p.clade(p.t.Root()); err != nil {
		return nil, err
	}
	if err := p.skip(); err != nil {
		return nil, err
	}
	if !p.eof() && p.peek() == ';' {
		p.pos++
	}
	if err := p.skip(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q after end of tree (only one tree per file is supported)", p.peek())
	}
	return p.t, nil
}

type parser struct {
	src []byte
	pos int
	t   *tree.Tree
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errorf(format string, args ...any) error {
	return &model.MalformedInputError{
		Format: model.FormatTree,
		Offset: p.pos,
		Reason: fmt.Sprintf(format, args...),
	}
}

// skip advances past whitespace and bracketed comments.
func (p *parser) skip() error {
	for !p.eof() {
		switch c := p.peek(); {
		case isSpace(c):
			p.pos++
		case c == '[':
			end := bytes.IndexByte(p.src[p.pos:], ']')
			if end < 0 {
				return p.errorf("unterminated comment")
			}
			p.pos += end + 1
		default:
			return nil
		}
	}
	return nil
}

// clade parses one clade into id: an optional parenthesised child list,
// an optional label and an optional ":length".
func (p *parser) clade(id tree.NodeID) error {
	if err := p.skip(); err != nil {
		return err
	}

	if p.peek() == '(' {
		p.pos++
		for closed := false; !closed; {
			child := p.t.AddChild(id, tree.Unnamed())
			if err := p.clade(child); err != nil {
				return err
			}
			if err := p.skip(); err != nil {
				return err
			}
			switch p.peek() {
			case ',':
				p.pos++
			case ')':
				p.pos++
				closed = true
			default:
				if p.eof() || p.peek() == ';' {
					return p.errorf("unbalanced parentheses: missing ')'")
				}
				return p.errorf("expected ',' or ')' but found %q", p.peek())
			}
		}
	}

	if err := p.skip(); err != nil {
		return err
	}
	label, quoted, ok, err := p.label()
	if err != nil {
		return err
	}
	if ok {
		if conf, isSupport := parseSupport(label); isSupport && !quoted && !p.t.IsTerminal(id) {
			p.t.SetConfidence(id, conf)
		} else {
			p.t.SetLabel(id, tree.Named(label))
		}
	}

	if err := p.skip(); err != nil {
		return err
	}
	if p.peek() == ':' {
		p.pos++
		if err := p.skip(); err != nil {
			return err
		}
		length, err := p.number()
		if err != nil {
			return err
		}
		p.t.SetLength(id, length)
	}
	return nil
}

// label reads a quoted or unquoted label. ok is false when no label is
// present at the current position.
func (p *parser) label() (text string, quoted, ok bool, err error) {
	if p.peek() == '\'' {
		start := p.pos
		p.pos++
		var b strings.Builder
		for {
			if p.eof() {
				p.pos = start
				return "", true, false, p.errorf("unterminated quoted label")
			}
			c := p.src[p.pos]
			p.pos++
			if c != '\'' {
				b.WriteByte(c)
				continue
			}
			if p.peek() == '\'' {
				b.WriteByte('\'')
				p.pos++
				continue
			}
			return b.String(), true, true, nil
		}
	}

	start := p.pos
	for !p.eof() && !isDelimiter(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return "", false, false, nil
	}
	return string(p.src[start:p.pos]), false, true, nil
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for !p.eof() && strings.IndexByte("+-0123456789.eE", p.peek()) >= 0 {
		p.pos++
	}
	text := string(p.src[start:p.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("invalid branch length %q", text)
	}
	return v, nil
}

// parseSupport reports whether an internal label is a plain decimal
// support value such as "95" or "0.87".
func parseSupport(s string) (float64, bool) {
	if s == "" || strings.IndexByte("+-.0123456789", s[0]) < 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || strings.IndexByte("()[]':;,", c) >= 0
}

// Write serializes t to w as a single Newick line.
func Write(w io.Writer, t *tree.Tree) error {
	var b strings.Builder
	writeClade(&b, t, t.Root())
	b.WriteString(";\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write tree: %w", err)
	}
	return nil
}

// String returns the Newick text of t without the trailing newline.
func String(t *tree.Tree) string {
	var b strings.Builder
	writeClade(&b, t, t.Root())
	b.WriteByte(';')
	return b.String()
}

func writeClade(b *strings.Builder, t *tree.Tree, id tree.NodeID) {
	children := t.Children(id)
	if len(children) > 0 {
		b.WriteByte('(')
		for i, child := range children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeClade(b, t, child)
		}
		b.WriteByte(')')
	}

	if label := t.Label(id); label.Named {
		if _, numeric := parseSupport(label.Name); numeric && len(children) > 0 {
			b.WriteString("'" + label.Name + "'")
		} else {
			b.WriteString(quote(label.Name))
		}
	} else if conf, ok := t.Confidence(id); ok && len(children) > 0 {
		b.WriteString(formatFloat(conf))
	}

	if length, ok := t.Length(id); ok {
		b.WriteByte(':')
		b.WriteString(formatFloat(length))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quote wraps a label in single quotes when it contains characters that
// would otherwise end it.
func quote(name string) string {
	if name == "" {
		return "''"
	}
	needs := false
	for i := 0; i < len(name); i++ {
		if isDelimiter(name[i]) {
			needs = true
			break
		}
	}
	if !needs {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
