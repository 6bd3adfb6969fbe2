// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ErrDuplicate is returned when two nodes of a tree
// have the same name.
var ErrDuplicate = errors.New("duplicated node name")

// Read reads the first tree of a Newick or NEXUS file.
//
// Comments
// (text between square brackets,
// for example BEAST annotations),
// are ignored.
// In a NEXUS file,
// the first tree of the trees block is read,
// and the translation table,
// if any,
// is applied to terminal names.
func Read(r io.Reader) (*Tree, error) {
	l := newLexer(r)
	tk, err := l.peek()
	if err != nil {
		return nil, err
	}
	if tk.kind == word && strings.EqualFold(tk.val, "#nexus") {
		l.next()
		return readNexus(l)
	}

	t := &Tree{}
	t.Root, err = parseNode(l, nil)
	if err != nil {
		return nil, err
	}
	if err := l.expect(';'); err != nil {
		return nil, err
	}
	if err := t.uniqueNames(); err != nil {
		return nil, fmt.Errorf("newick: %w", err)
	}
	return t, nil
}

func readNexus(l *lexer) (*Tree, error) {
	inTrees := false
	translate := make(map[string]string)
	for {
		tk, err := l.next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("nexus: %w: no tree found", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, err
		}
		if tk.kind != word {
			continue
		}

		switch strings.ToLower(tk.val) {
		case "begin":
			b, err := l.next()
			if err != nil {
				return nil, err
			}
			inTrees = strings.EqualFold(b.val, "trees")
		case "end", "endblock":
			inTrees = false
		case "translate":
			if !inTrees {
				continue
			}
			if err := readTranslate(l, translate); err != nil {
				return nil, err
			}
		case "tree", "utree":
			if !inTrees {
				continue
			}
			return readNexusTree(l, translate)
		}
	}
}

func readTranslate(l *lexer, tr map[string]string) error {
	for {
		k, err := l.next()
		if err != nil {
			return fmt.Errorf("nexus: translate: %v", err)
		}
		if k.kind == ';' {
			return nil
		}
		if k.kind == ',' {
			continue
		}
		v, err := l.next()
		if err != nil {
			return fmt.Errorf("nexus: translate: %v", err)
		}
		if v.kind != word {
			return fmt.Errorf("nexus: translate: line %d: expecting name for %q", v.line, k.val)
		}
		tr[k.val] = v.val
	}
}

func readNexusTree(l *lexer, tr map[string]string) (*Tree, error) {
	name, err := l.next()
	if err != nil {
		return nil, fmt.Errorf("nexus: tree: %v", err)
	}
	if name.kind == '*' {
		if name, err = l.next(); err != nil {
			return nil, fmt.Errorf("nexus: tree: %v", err)
		}
	}
	if err := l.expect('='); err != nil {
		return nil, fmt.Errorf("nexus: tree %q: %v", name.val, err)
	}

	root, err := parseNode(l, nil)
	if err != nil {
		return nil, fmt.Errorf("nexus: tree %q: %v", name.val, err)
	}
	if err := l.expect(';'); err != nil {
		return nil, fmt.Errorf("nexus: tree %q: %v", name.val, err)
	}

	t := &Tree{
		Name: name.val,
		Root: root,
	}
	for _, n := range t.Preorder() {
		if !n.IsTerm() {
			continue
		}
		if v, ok := tr[n.Name]; ok {
			n.Name = v
		}
	}
	if err := t.uniqueNames(); err != nil {
		return nil, fmt.Errorf("nexus: tree %q: %w", name.val, err)
	}
	return t, nil
}

// uniqueNames checks that no two named nodes
// share the same name.
// Unnamed nodes are ignored.
func (t *Tree) uniqueNames() error {
	names := make(map[string]bool)
	for _, n := range t.Preorder() {
		if n.Name == "" {
			continue
		}
		if names[n.Name] {
			return fmt.Errorf("node %q: %w", n.Name, ErrDuplicate)
		}
		names[n.Name] = true
	}
	return nil
}

func parseNode(l *lexer, parent *Node) (*Node, error) {
	n := &Node{Parent: parent}

	tk, err := l.peek()
	if err != nil {
		return nil, fmt.Errorf("newick: %v", unexpected(err))
	}
	if tk.kind == '(' {
		l.next()
		for {
			c, err := parseNode(l, n)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)

			tk, err := l.next()
			if err != nil {
				return nil, fmt.Errorf("newick: %v", unexpected(err))
			}
			if tk.kind == ')' {
				break
			}
			if tk.kind != ',' {
				return nil, fmt.Errorf("newick: line %d: unexpected %q", tk.line, tk.val)
			}
		}
	}

	if tk, err = l.peek(); err != nil {
		return nil, fmt.Errorf("newick: %v", unexpected(err))
	}
	if tk.kind == word {
		l.next()
		n.Name = tk.val
	}

	if tk, err = l.peek(); err != nil {
		return nil, fmt.Errorf("newick: %v", unexpected(err))
	}
	if tk.kind == ':' {
		l.next()
		v, err := l.next()
		if err != nil {
			return nil, fmt.Errorf("newick: %v", unexpected(err))
		}
		if v.kind != word {
			return nil, fmt.Errorf("newick: line %d: expecting branch length", v.line)
		}
		n.Length, err = strconv.ParseFloat(v.val, 64)
		if err != nil {
			return nil, fmt.Errorf("newick: line %d: branch length of %q: %v", v.line, n.Name, err)
		}
	}
	return n, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Token kinds other than punctuation.
const (
	word = 'w'
)

type token struct {
	kind rune
	val  string
	line int
}

// A lexer splits a tree file into tokens,
// removing comments.
type lexer struct {
	r    *bufio.Reader
	line int
	tk   *token
}

func newLexer(r io.Reader) *lexer {
	return &lexer{
		r:    bufio.NewReader(r),
		line: 1,
	}
}

func (l *lexer) peek() (token, error) {
	if l.tk != nil {
		return *l.tk, nil
	}
	tk, err := l.scan()
	if err != nil {
		return token{}, err
	}
	l.tk = &tk
	return tk, nil
}

func (l *lexer) next() (token, error) {
	if l.tk != nil {
		tk := *l.tk
		l.tk = nil
		return tk, nil
	}
	return l.scan()
}

func (l *lexer) expect(kind rune) error {
	tk, err := l.next()
	if err != nil {
		return fmt.Errorf("expecting %q: %v", kind, unexpected(err))
	}
	if tk.kind != kind {
		return fmt.Errorf("line %d: expecting %q, found %q", tk.line, kind, tk.val)
	}
	return nil
}

func (l *lexer) readRune() (rune, error) {
	r, _, err := l.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		l.line++
	}
	return r, nil
}

func (l *lexer) scan() (token, error) {
	for {
		r, err := l.readRune()
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(r) {
			continue
		}

		switch r {
		case '[':
			if err := l.skipComment(); err != nil {
				return token{}, err
			}
			continue
		case '(', ')', ',', ':', ';', '=', '*':
			return token{kind: r, val: string(r), line: l.line}, nil
		case '\'', '"':
			return l.quoted(r)
		}
		l.r.UnreadRune()
		return l.word()
	}
}

func (l *lexer) skipComment() error {
	depth := 1
	for depth > 0 {
		r, err := l.readRune()
		if err != nil {
			return fmt.Errorf("line %d: unclosed comment: %v", l.line, unexpected(err))
		}
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		}
	}
	return nil
}

func (l *lexer) quoted(q rune) (token, error) {
	ln := l.line
	var b strings.Builder
	for {
		r, err := l.readRune()
		if err != nil {
			return token{}, fmt.Errorf("line %d: unclosed quote: %v", ln, unexpected(err))
		}
		if r == q {
			nr, _, err := l.r.ReadRune()
			if err == nil && nr == q {
				b.WriteRune(q)
				continue
			}
			if err == nil {
				l.r.UnreadRune()
			}
			return token{kind: word, val: b.String(), line: ln}, nil
		}
		b.WriteRune(r)
	}
}

func (l *lexer) word() (token, error) {
	ln := l.line
	var b strings.Builder
	for {
		r, err := l.readRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(r) || strings.ContainsRune("()[],:;=", r) {
			if r == '\n' {
				l.line--
			}
			l.r.UnreadRune()
			break
		}
		b.WriteRune(r)
	}
	return token{kind: word, val: b.String(), line: ln}, nil
}
