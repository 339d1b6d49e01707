package meta

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tells how a constant's value is built.
type Kind int

const (
	// KindLiteral is a four-character constructor call.
	KindLiteral Kind = iota
	// KindAlias is a reference to another constant of the same bundle.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var (
	ErrDanglingAlias = errors.New("alias target is not defined")
	ErrAliasCycle    = errors.New("alias cycle")
)

// Entry is one extracted codec constant.
type Entry struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Kind Kind   `json:"kind" yaml:"kind" toml:"kind"`
	// Args is the parenthesized constructor argument list, kept verbatim,
	// e.g. "('4','X','M',' ')". Set for KindLiteral only.
	Args string `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	// Target is the referenced constant name. Set for KindAlias only.
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	// Line is the 1-based line in the expanded file.
	Line int `json:"line" yaml:"line" toml:"line"`
}

// Bundle holds all scanned constants in first-occurrence order.
// Shared between the pipeline and the language emitters.
type Bundle struct {
	Source  string  `json:"source" yaml:"source" toml:"source"`
	Entries []Entry `json:"entries" yaml:"entries" toml:"entries"`

	index map[string]int
}

func NewBundle(source string) *Bundle {
	return &Bundle{Source: source, Entries: []Entry{}, index: make(map[string]int)}
}

// Add appends e. It reports false, leaving the bundle unchanged, when the
// name is already taken.
func (b *Bundle) Add(e Entry) bool {
	if b.index == nil {
		b.reindex()
	}
	if _, dup := b.index[e.Name]; dup {
		return false
	}
	b.index[e.Name] = len(b.Entries)
	b.Entries = append(b.Entries, e)
	return true
}

func (b *Bundle) reindex() {
	b.index = make(map[string]int, len(b.Entries))
	for i, e := range b.Entries {
		b.index[e.Name] = i
	}
}

func (b *Bundle) Len() int { return len(b.Entries) }

func (b *Bundle) Lookup(name string) (Entry, bool) {
	if b.index == nil {
		b.reindex()
	}
	i, ok := b.index[name]
	if !ok {
		return Entry{}, false
	}
	return b.Entries[i], true
}

func (b *Bundle) Literals() int { return b.count(KindLiteral) }

func (b *Bundle) Aliases() int { return b.count(KindAlias) }

func (b *Bundle) count(k Kind) int {
	n := 0
	for _, e := range b.Entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Resolve follows the alias chain starting at name and returns the literal
// it ends in.
func (b *Bundle) Resolve(name string) (Entry, error) {
	seen := make(map[string]bool)
	var chain []string
	for {
		e, ok := b.Lookup(name)
		if !ok {
			if len(chain) == 0 {
				return Entry{}, fmt.Errorf("%w: %s", ErrDanglingAlias, name)
			}
			return Entry{}, fmt.Errorf("%w: %s -> %s", ErrDanglingAlias, strings.Join(chain, " -> "), name)
		}
		if seen[name] {
			return Entry{}, fmt.Errorf("%w: %s -> %s", ErrAliasCycle, strings.Join(chain, " -> "), name)
		}
		seen[name] = true
		chain = append(chain, name)
		if e.Kind == KindLiteral {
			return e, nil
		}
		name = e.Target
	}
}

// Validate checks that every alias resolves to a literal of this bundle.
func (b *Bundle) Validate() error {
	var errs []error
	for _, e := range b.Entries {
		if e.Kind != KindAlias {
			continue
		}
		if _, err := b.Resolve(e.Name); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", e.Line, err))
		}
	}
	return errors.Join(errs...)
}
