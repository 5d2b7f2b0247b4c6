// Package matcher ranks candidates against a query with fuzzy subsequence
// matching and reports the matched rune positions for highlighting.
//
// All matcher state sits behind one mutex. Callers enter it through With,
// once per search pass on the worker and once per frame on the render loop.
package matcher

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/sahilm/fuzzy"
)

// Result is the score of one (query, candidate) pair.
type Result struct {
	Rank int
	// Indices are rune offsets into the candidate, ascending.
	Indices []int
}

type pair struct {
	query     string
	candidate string
}

type outcome struct {
	result  Result
	matched bool
}

// Matcher scores candidates. The zero value works without a cache.
type Matcher struct {
	mu    sync.Mutex
	cache *simplelru.LRU[pair, outcome]
}

// New creates a matcher caching up to size results. size <= 0 disables the cache.
func New(size int) *Matcher {
	m := &Matcher{}
	if size > 0 {
		if cache, err := simplelru.NewLRU[pair, outcome](size, nil); err == nil {
			m.cache = cache
		}
	}
	return m
}

// With runs fn while holding the matcher lock. The Scope must not outlive fn.
func (m *Matcher) With(fn func(s *Scope)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(&Scope{m: m})
}

// Scope gives access to the matcher while its lock is held.
type Scope struct {
	m *Matcher
}

// Score matches query against candidate. ok is false when the query is not
// a subsequence of the candidate. An empty query matches with rank 0.
func (s *Scope) Score(query, candidate string) (Result, bool) {
	if query == "" {
		return Result{}, true
	}

	key := pair{query: query, candidate: candidate}
	if s.m.cache != nil {
		if hit, ok := s.m.cache.Get(key); ok {
			return hit.result, hit.matched
		}
	}

	result, matched := score(query, candidate)
	if s.m.cache != nil {
		s.m.cache.Add(key, outcome{result: result, matched: matched})
	}
	return result, matched
}

// Highlight returns the matched rune offsets without touching cache recency,
// so the render loop can call it without mutating matcher state.
func (s *Scope) Highlight(query, candidate string) []int {
	if query == "" {
		return nil
	}

	if s.m.cache != nil {
		if hit, ok := s.m.cache.Peek(pair{query: query, candidate: candidate}); ok {
			return hit.result.Indices
		}
	}

	result, _ := score(query, candidate)
	return result.Indices
}

// Len reports the number of cached pairs.
func (s *Scope) Len() int {
	if s.m.cache == nil {
		return 0
	}
	return s.m.cache.Len()
}

func score(query, candidate string) (Result, bool) {
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return Result{}, false
	}

	match := matches[0]
	return Result{
		Rank:    match.Score,
		Indices: runeOffsets(candidate, match.MatchedIndexes),
	}, true
}

// runeOffsets converts ascending byte offsets into rune offsets.
func runeOffsets(s string, byteOffsets []int) []int {
	out := make([]int, 0, len(byteOffsets))
	k, r := 0, 0
	for b := range s {
		for k < len(byteOffsets) && byteOffsets[k] == b {
			out = append(out, r)
			k++
		}
		r++
	}
	return out
}
