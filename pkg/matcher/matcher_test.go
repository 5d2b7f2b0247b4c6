package matcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreOnce(m *Matcher, query, candidate string) (r Result, ok bool) {
	m.With(func(s *Scope) {
		r, ok = s.Score(query, candidate)
	})
	return r, ok
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	m := New(16)

	for _, c := range []string{"firefox", "", "zzz"} {
		r, ok := scoreOnce(m, "", c)
		require.True(t, ok)
		assert.Equal(t, 0, r.Rank)
		assert.Empty(t, r.Indices)
	}
}

func TestNonSubsequenceIsFiltered(t *testing.T) {
	m := New(16)

	_, ok := scoreOnce(m, "zzz", "format")
	assert.False(t, ok)

	_, ok = scoreOnce(m, "foo", "found")
	assert.False(t, ok, "only one o in found")
}

func TestShorterCandidateRanksHigher(t *testing.T) {
	m := New(16)

	found, ok := scoreOnce(m, "fo", "found")
	require.True(t, ok)
	format, ok := scoreOnce(m, "fo", "format")
	require.True(t, ok)

	assert.GreaterOrEqual(t, found.Rank, format.Rank)
	assert.Equal(t, []int{0, 1}, found.Indices)
	assert.Equal(t, []int{0, 1}, format.Indices)
}

func TestCaseInsensitive(t *testing.T) {
	m := New(0)

	r, ok := scoreOnce(m, "ff", "FireFox")
	require.True(t, ok)
	assert.Equal(t, []int{0, 4}, r.Indices)
}

func TestIndicesAreRuneOffsets(t *testing.T) {
	m := New(0)

	r, ok := scoreOnce(m, "ab", "ééab")
	require.True(t, ok)
	assert.Equal(t, []int{2, 3}, r.Indices)
}

func TestCacheDoesNotChangeResult(t *testing.T) {
	cached := New(8)
	plain := New(0)

	for i := 0; i < 3; i++ {
		a, okA := scoreOnce(cached, "fx", "firefox")
		b, okB := scoreOnce(plain, "fx", "firefox")
		assert.Equal(t, okA, okB)
		assert.Equal(t, b, a)
	}

	cached.With(func(s *Scope) {
		assert.Equal(t, 1, s.Len())
	})
}

func TestHighlightPeeksCache(t *testing.T) {
	m := New(2)

	scoreOnce(m, "a", "abc")
	m.With(func(s *Scope) {
		assert.Equal(t, []int{0}, s.Highlight("a", "abc"))
		assert.Equal(t, []int{1}, s.Highlight("b", "abc"))
		assert.Nil(t, s.Highlight("", "abc"))
		assert.Equal(t, 1, s.Len(), "highlight must not populate the cache")
	})
}

func TestConcurrentScopes(t *testing.T) {
	m := New(64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.With(func(s *Scope) {
					s.Score("fx", "firefox")
					s.Highlight("fx", "firefox")
				})
			}
		}()
	}
	wg.Wait()
}
