package params

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, DefaultLimit, 0},
		{"page=2&limit=2", 2, 2, 2},
		{"page=3", 3, DefaultLimit, 20},
		{"page=0&limit=0", 1, DefaultLimit, 0},
		{"page=-4&limit=-1", 1, DefaultLimit, 0},
		{"page=abc&limit=xyz", 1, DefaultLimit, 0},
		{"limit=500", 1, MaxLimit, 0},
		{"page= 2 &limit= 5 ", 2, 5, 5},
		{"page=9223372036854775807&limit=10", MaxPage, 10, (MaxPage - 1) * 10},
		{"page=99999999999999999999", 1, DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			p := ParsePagination(q)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := New(1, 2)
	p.ComputeMeta(3)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = New(2, 2)
	p.ComputeMeta(3)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = New(1, 10)
	p.ComputeMeta(0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)

	// out of range page keeps the real total
	p = New(9, 10)
	p.ComputeMeta(25)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 25, p.Total)
	assert.False(t, p.HasNext)

	p = New(math.MaxInt, MaxLimit)
	p.ComputeMeta(25)
	assert.Positive(t, p.Offset)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
