package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReduced_ArgumentsAreAlwaysReduced(t *testing.T) {
	s := Semantic{Argument("people", 0), Argument("repos", 0)}
	assert.True(t, IsReduced(s))
}

func TestIsReduced_UnfilledFunctionIsNotReduced(t *testing.T) {
	s := Semantic{Function("repos-liked-by", 1, 0)}
	assert.False(t, IsReduced(s))
}

func TestIsReduced_FilledFunctionIsReduced(t *testing.T) {
	s := Semantic{Function("repos-liked-by", 1, 0, Argument("me", 0))}
	assert.True(t, IsReduced(s))
}

func TestSumCosts_IncludesChildren(t *testing.T) {
	s := Semantic{Function("f", 1, 1, Argument("a", 2))}
	assert.Equal(t, 3.0, SumCosts(s))
}

func TestCompare_ShorterListsSortFirst(t *testing.T) {
	short := Semantic{Argument("a", 0)}
	long := Semantic{Argument("a", 0), Argument("b", 0)}
	assert.Negative(t, Compare(short, long))
	assert.Positive(t, Compare(long, short))
}

func TestCompare_Deterministic(t *testing.T) {
	a := Semantic{Function("f", 1, 0, Argument("x", 1))}
	b := Semantic{Function("f", 1, 0, Argument("x", 1))}
	assert.Equal(t, 0, Compare(a, b))
}

func TestSortSemantics_StableTotalOrder(t *testing.T) {
	list := []Semantic{
		{Argument("z", 0)},
		{Argument("a", 0)},
		{Argument("a", 0), Argument("b", 0)},
	}
	SortSemantics(list)
	assert.Equal(t, "a", list[0][0].Name)
	assert.Equal(t, "z", list[1][0].Name)
	assert.Len(t, list[2], 2)
}
