// Package search ranks player names against a free-text query.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is a ranked hit.
type Match struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// names implements fuzzy.Source over lower-cased names.
type names []string

func (n names) String(i int) string { return n[i] }
func (n names) Len() int            { return len(n) }

// Index holds one dataset's player names. It is immutable and safe for
// concurrent use.
type Index struct {
	display []string
	folded  names
}

// NewIndex builds an Index. Names keep their input order for ties.
func NewIndex(players []string) *Index {
	idx := &Index{
		display: append([]string(nil), players...),
		folded:  make(names, len(players)),
	}
	for i, p := range players {
		idx.folded[i] = fold(p)
	}
	return idx
}

// Len returns the number of indexed names.
func (i *Index) Len() int { return len(i.display) }

// Find returns up to limit names matching query, best first. Names that
// contain the query as a substring rank ahead of scattered matches. An
// empty query returns the first limit names in index order.
func (i *Index) Find(query string, limit int) []Match {
	q := fold(query)
	if limit <= 0 {
		return nil
	}
	if q == "" {
		n := min(limit, len(i.display))
		out := make([]Match, n)
		for k := 0; k < n; k++ {
			out[k] = Match{Name: i.display[k]}
		}
		return out
	}

	found := fuzzy.FindFrom(q, i.folded)
	sort.SliceStable(found, func(a, b int) bool {
		ca := strings.Contains(found[a].Str, q)
		cb := strings.Contains(found[b].Str, q)
		if ca != cb {
			return ca
		}
		return found[a].Score > found[b].Score
	})

	n := min(limit, len(found))
	out := make([]Match, n)
	for k := 0; k < n; k++ {
		out[k] = Match{Name: i.display[found[k].Index], Score: found[k].Score}
	}
	return out
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
