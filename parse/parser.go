package parse

import (
	"encoding/binary"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/incr/memo"
)

// Kind identifies the combinator that built a [Parser].
type Kind uint8

const (
	KindStr      Kind = iota + 1 // str
	KindPattern                  // pattern
	KindSequence                 // sequence
	KindChoice                   // choice
)

// String returns the combinator name of k.
func (k Kind) String() string {
	switch k {
	case KindStr:
		return "str"
	case KindPattern:
		return "pattern"
	case KindSequence:
		return "sequence"
	case KindChoice:
		return "choice"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Parser is an immutable description of a matching strategy.
//
// Parsers are created only through a [Registry], which guarantees that two
// parsers built from the same combinator and deeply-equal arguments are the
// same *Parser. Each parser owns a task table keyed by input, so
// [Parser.Task] returns the same *Task for the same input.
type Parser struct {
	registry *Registry
	tasks    *memo.Table[string, *Task]
	re       *regexp.Regexp
	children []*Parser
	text     string
	name     string
	id       uint64
	kind     Kind
}

// Task returns the task matching p against input, creating it on first use.
func (p *Parser) Task(input string) *Task {
	return p.tasks.Get(input, func() *Task {
		return p.registry.newTask(p, input)
	})
}

// ID returns p's registry-unique identifier. IDs are assigned in construction
// order starting from 1.
func (p *Parser) ID() uint64 { return p.id }

// Kind returns the combinator that built p.
func (p *Parser) Kind() Kind { return p.kind }

// Text returns the literal of a str parser or the expression of a pattern
// parser, and the empty string for composites.
func (p *Parser) Text() string { return p.text }

// Children returns an iterator over the operands of a composite parser.
func (p *Parser) Children() iter.Seq[*Parser] {
	return func(yield func(*Parser) bool) {
		for _, c := range p.children {
			if !yield(c) {
				return
			}
		}
	}
}

// Len returns the number of operands of a composite parser.
func (p *Parser) Len() int { return len(p.children) }

// Registry returns the registry that built p.
func (p *Parser) Registry() *Registry { return p.registry }

// Tasks returns the number of distinct inputs p has been asked to match.
func (p *Parser) Tasks() int { return p.tasks.Len() }

// String returns p's canonical description, for example
// sequence(str("1"), pattern("[0-9]+")).
func (p *Parser) String() string { return p.name }

// key is the canonical construction key of a parser. Operands contribute
// their IDs, which are canonical because operands are themselves shared.
type key struct {
	Text     string
	Children []uint64
	Kind     Kind
}

func makeKey(kind Kind, text string, children []*Parser) key {
	ids := make([]uint64, len(children))
	for i, c := range children {
		ids[i] = c.id
	}

	return key{Kind: kind, Text: text, Children: ids}
}

// hashKey encodes k without reflection; parsers are constructed often enough
// that the reflective default is measurable.
func hashKey(k key) uint64 {
	buf := make([]byte, 0, 1+binary.MaxVarintLen64+len(k.Text)+8*len(k.Children))
	buf = append(buf, byte(k.Kind))
	buf = binary.AppendUvarint(buf, uint64(len(k.Text)))
	buf = append(buf, k.Text...)

	for _, id := range k.Children {
		buf = binary.LittleEndian.AppendUint64(buf, id)
	}

	return xxh3.Hash(buf)
}

func equalKey(a, b key) bool {
	if a.Kind != b.Kind || a.Text != b.Text || len(a.Children) != len(b.Children) {
		return false
	}

	for i := range a.Children {
		if a.Children[i] != b.Children[i] {
			return false
		}
	}

	return true
}

func formatName(kind Kind, text string, children []*Parser) string {
	var sb strings.Builder

	sb.WriteString(kind.String())
	sb.WriteByte('(')

	switch kind {
	case KindStr, KindPattern:
		sb.WriteString(strconv.Quote(text))

	default:
		for i, c := range children {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(c.name)
		}
	}

	sb.WriteByte(')')

	return sb.String()
}
