package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"JS", "Node"}, SplitList("JS, Node"))
	assert.Equal(t, []string{"go"}, SplitList("go"))
	assert.Equal(t, []string{"a", "b", "c"}, SplitList(" a ,b,  c "))
	assert.Equal(t, []string{"a", "b"}, SplitList("a,,b,"))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList("   "))
}

func TestNormalizeList(t *testing.T) {
	// single comma-joined value, the shape HTML forms send
	assert.Equal(t, []string{"JS", "Node"}, NormalizeList([]string{"JS, Node"}))

	// repeated values stay as-is, trimmed
	assert.Equal(t, []string{"JS", "Node"}, NormalizeList([]string{" JS ", "Node"}))

	assert.Empty(t, NormalizeList(nil))
	assert.Empty(t, NormalizeList([]string{""}))
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(10)
	b := GenerateRandomString(10)
	assert.Len(t, a, 10)
	assert.NotEqual(t, a, b)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"Pending", "Accepted"}, "Pending"))
	assert.False(t, Contains([]string{"Pending"}, "pending"))
	assert.False(t, Contains(nil, "x"))
}

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/jobs", nil)
	opts := ParseQueryOptions(r)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Empty(t, opts.Search)
}

func TestParseQueryOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/jobs?page=3&limit=25&search=welder&type=Full-time&location=Tokyo", nil)
	opts := ParseQueryOptions(r)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, "welder", opts.Search)
	assert.Equal(t, "Full-time", opts.Type)
	assert.Equal(t, "Tokyo", opts.Location)
}

func TestParseQueryOptionsBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/jobs?page=-4&limit=abc", nil)
	opts := ParseQueryOptions(r)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
}
