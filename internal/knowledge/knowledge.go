// Package knowledge holds the fixed symptom keyword table that maps
// keywords to candidate conditions. The table is built once at startup
// and never mutated, so it is safe to share across goroutines without
// locking.
package knowledge

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Candidate is one possible condition for a matched keyword.
type Candidate struct {
	Name    string `yaml:"name" json:"name"`
	Summary string `yaml:"summary" json:"summary"`
}

// Entry maps a single keyword to its candidate conditions.
// Candidate order is authoring order and feeds ranking tie-breaks.
type Entry struct {
	Keyword    string      `yaml:"keyword"`
	Candidates []Candidate `yaml:"candidates"`
}

// Base is an immutable keyword lookup table.
type Base struct {
	entries []Entry
	byKey   map[string][]Candidate
	rank    map[string]int // condition name -> ordinal of first appearance
}

// New builds a Base from entries. Keywords are normalized to lowercase.
// Duplicate keywords and entries without candidates are rejected.
func New(entries []Entry) (*Base, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("knowledge: no entries")
	}

	b := &Base{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string][]Candidate, len(entries)),
		rank:    make(map[string]int),
	}

	for i, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Keyword))
		if key == "" {
			return nil, fmt.Errorf("knowledge: entry %d has empty keyword", i)
		}
		if _, dup := b.byKey[key]; dup {
			return nil, fmt.Errorf("knowledge: duplicate keyword %q", key)
		}
		if len(e.Candidates) == 0 {
			return nil, fmt.Errorf("knowledge: keyword %q has no candidates", key)
		}

		cands := make([]Candidate, len(e.Candidates))
		copy(cands, e.Candidates)
		for j, c := range cands {
			if c.Name == "" {
				return nil, fmt.Errorf("knowledge: keyword %q candidate %d has empty name", key, j)
			}
			if _, seen := b.rank[c.Name]; !seen {
				b.rank[c.Name] = len(b.rank)
			}
		}

		b.entries = append(b.entries, Entry{Keyword: key, Candidates: cands})
		b.byKey[key] = cands
	}

	return b, nil
}

// FromFile loads a Base from a YAML file. The file is a list of entries:
//
//	- keyword: fever
//	  candidates:
//	    - name: Influenza
//	      summary: Common viral infection causing fever and body aches.
func FromFile(path string) (*Base, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from trusted config, not user input
	if err != nil {
		return nil, fmt.Errorf("knowledge: read %s: %w", path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("knowledge: parse %s: %w", path, err)
	}

	b, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("knowledge: %s: %w", path, err)
	}
	return b, nil
}

// CandidatesFor returns the candidates for a keyword in authoring order.
// An unknown keyword yields nil; that is not an error.
func (b *Base) CandidatesFor(keyword string) []Candidate {
	cands, ok := b.byKey[strings.ToLower(keyword)]
	if !ok {
		return nil
	}
	cp := make([]Candidate, len(cands))
	copy(cp, cands)
	return cp
}

// Keywords returns all keywords in authoring order.
func (b *Base) Keywords() []string {
	keys := make([]string, len(b.entries))
	for i, e := range b.entries {
		keys[i] = e.Keyword
	}
	return keys
}

// Rank returns the authoring ordinal for a condition name, used to break
// score ties deterministically. Unknown conditions sort after known ones.
func (b *Base) Rank(condition string) int {
	if r, ok := b.rank[condition]; ok {
		return r
	}
	return len(b.rank)
}

// Len returns the number of keywords in the table.
func (b *Base) Len() int {
	return len(b.entries)
}
