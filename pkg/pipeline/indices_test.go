package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndices(t *testing.T) {
	tbl := []struct {
		in   string
		want []int
	}{
		{in: "1, 3, 7, 12, 15", want: []int{1, 3, 7, 12, 15}},
		{in: "no numbers here", want: []int{}},
		{in: "Articles: 2,2,99", want: []int{2, 2, 99}},
		{in: "", want: []int{}},
		{in: "5", want: []int{5}},
		{in: "[4, 8, 1]", want: []int{4, 8, 1}},
		{in: "#1,#2,#3.", want: []int{1, 2, 3}},
		{in: "1 2, 3", want: []int{3}},
		{in: ",,, 7 ,,", want: []int{7}},
		{in: "1,\n2,\n3", want: []int{1, 2, 3}},
		{in: "99999999999999999999999, 4", want: []int{4}},
		{in: "０, 1", want: []int{1}}, // full-width digits are not ascii digits
	}

	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIndices(tt.in))
		})
	}
}

func TestFilterIndices(t *testing.T) {
	assert.Equal(t, []int{2, 2}, FilterIndices(ParseIndices("Articles: 2,2,99"), 5))
	assert.Equal(t, []int{1, 5}, FilterIndices([]int{0, 1, 5, 6, -1}, 5))
	assert.Empty(t, FilterIndices([]int{1, 2}, 0))
	assert.Empty(t, FilterIndices(nil, 10))
}

func FuzzParseIndices(f *testing.F) {
	for _, seed := range []string{"1, 3, 7, 12, 15", "no numbers here", "Articles: 2,2,99", "", ",,,", "1 2 3",
		"01, 002", "18446744073709551616"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		res := ParseIndices(s)
		if res == nil {
			t.Fatalf("nil result for %q", s)
		}
		if len(res) > strings.Count(s, ",")+1 {
			t.Fatalf("more indices than comma separated parts for %q: %v", s, res)
		}
		for _, n := range res {
			if n < 0 {
				t.Fatalf("negative index %d for %q", n, s)
			}
		}

		const size = 10
		for _, n := range FilterIndices(res, size) {
			if n < 1 || n > size {
				t.Fatalf("index %d out of range after filter", n)
			}
		}
	})
}
