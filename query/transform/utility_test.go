package transform_test

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/transform"
)

type node struct {
	Name     string
	Children []*node
}

func kids(n *node) iter.Seq[*node] {
	if n.Children == nil {
		return nil
	}
	return slices.Values(n.Children)
}

func tree() []*node {
	return []*node{
		{Name: "a", Children: []*node{
			{Name: "a1"},
			{Name: "a2", Children: []*node{{Name: "a2x"}}},
		}},
		{Name: "b"},
		{Name: "c", Children: []*node{{Name: "c1"}}},
	}
}

func nodeNames(seq iter.Seq[*node]) []string {
	var out []string
	for n := range seq {
		out = append(out, n.Name)
	}
	return out
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		keep func(*node) bool
		want []string
	}{
		{
			name: "depth first pre-order",
			want: []string{"a", "a1", "a2", "a2x", "b", "c", "c1"},
		},
		{
			name: "filter prunes subtrees",
			keep: func(n *node) bool { return n.Name != "a2" && n.Name != "c" },
			want: []string{"a", "a1", "b"},
		},
		{
			name: "filter rejecting roots yields nothing",
			keep: func(*node) bool { return false },
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nodeNames(transform.Flatten(slices.Values(tree()), tt.keep, kids))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlattenNilSource(t *testing.T) {
	got := slices.Collect(transform.Flatten[int](nil, nil, nil))
	if len(got) != 0 {
		t.Errorf("nil source yielded %v", got)
	}
}

func TestFlattenNestedSlices(t *testing.T) {
	input := []any{1, []any{2, []any{3}}, 4}

	var leaves []int
	for v := range transform.Flatten(slices.Values(input), nil, nil) {
		if n, ok := v.(int); ok {
			leaves = append(leaves, n)
		}
	}
	if want := []int{1, 2, 3, 4}; !slices.Equal(leaves, want) {
		t.Errorf("got %v, want %v", leaves, want)
	}
}

func TestFlattenEarlyBreak(t *testing.T) {
	var got []string
	for n := range transform.Flatten(slices.Values(tree()), nil, kids) {
		got = append(got, n.Name)
		if n.Name == "a2" {
			break
		}
	}
	if want := []string{"a", "a1", "a2"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestForEach(t *testing.T) {
	var seen []int
	seq, err := transform.ForEach(slices.Values([]int{1, 2, 3}), func(n int) { seen = append(seen, n) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 0 {
		t.Fatalf("action ran before enumeration: %v", seen)
	}

	got := slices.Collect(seq)
	if want := []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !slices.Equal(seen, got) {
		t.Errorf("action saw %v, want %v", seen, got)
	}
}

func TestForEachIndexed(t *testing.T) {
	var indexes []int
	seq, err := transform.ForEachIndexed(slices.Values([]string{"x", "y", "z"}), func(_ string, i int) {
		indexes = append(indexes, i)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range seq {
	}
	for range seq {
	}
	if want := []int{0, 1, 2, 0, 1, 2}; !slices.Equal(indexes, want) {
		t.Errorf("indexes = %v, want %v", indexes, want)
	}
}

func TestForEachRejectsNilArguments(t *testing.T) {
	src := slices.Values([]int{1})

	if _, err := transform.ForEach(nil, func(int) {}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil source: got %v", err)
	}
	if _, err := transform.ForEach(src, nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil action: got %v", err)
	}
	if _, err := transform.ForEachIndexed(nil, func(int, int) {}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil source: got %v", err)
	}
	if _, err := transform.ForEachIndexed(src, nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil action: got %v", err)
	}
}
