package query_test

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/lguimbarda/min-query/query"
)

type product struct {
	SKU   string `json:"sku"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

var products = []product{
	{"c-1", 300, 0},
	{"a-1", 100, 5},
	{"b-1", 200, 2},
	{"a-2", 100, 9},
}

func skus(items []product) string {
	var out []string
	for _, p := range items {
		out = append(out, p.SKU)
	}
	return strings.Join(out, ",")
}

func TestOrderAndPage(t *testing.T) {
	o, err := query.OrderByDescending(query.FromSlice(products), "Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, err = query.ThenBy(o, "SKU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, err := query.Page(o, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := skus(slices.Collect(seq)); got != "a-1,a-2" {
		t.Errorf("got %s, want a-1,a-2", got)
	}
}

func TestSortBy(t *testing.T) {
	o, err := query.SortBy(query.FromSlice(products), "price,-sku", query.WithFieldTag("json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := skus(slices.Collect(o.All())); got != "a-2,a-1,b-1,c-1" {
		t.Errorf("got %s", got)
	}

	_, err = query.SortBy(query.FromSlice(products), "weight")
	if !errors.Is(err, query.ErrPropertyNotFound) || !errors.Is(err, query.ErrInvalidArgument) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPipe(t *testing.T) {
	inStock := func(p product) bool { return p.Stock > 0 }

	tests := []struct {
		name     string
		onlyOpen bool
		limit    bool
		want     string
	}{
		{"no stages active", false, false, "c-1,a-1,b-1,a-2"},
		{"filter", true, false, "a-1,b-1,a-2"},
		{"filter and limit", true, true, "a-1,b-1"},
		{"limit", false, true, "c-1,a-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := query.Pipe(query.FromSlice(products),
				query.Filtered(tt.onlyOpen, inStock),
				query.Limited[product](tt.limit, 2),
				nil,
			)
			if got := skus(slices.Collect(seq)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	seq := query.Pipe(query.FromSlice(products), query.Skipped[product](true, 3))
	if got := skus(slices.Collect(seq)); got != "a-2" {
		t.Errorf("Skipped: got %s", got)
	}
}

func TestOrderByOrDefault(t *testing.T) {
	o, err := query.OrderByOrDefault(query.FromSlice(products), "Weight", func(p product) int { return p.Stock })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := skus(slices.Collect(o.All())); got != "c-1,b-1,a-1,a-2" {
		t.Errorf("got %s", got)
	}

	d, err := query.ParseSort[product]("-Stock")
	if err != nil {
		t.Fatal(err)
	}
	o, err = query.Sort(query.FromSlice(products), d)
	if err != nil {
		t.Fatal(err)
	}
	if keys := o.Keys(); len(keys) != 1 || keys[0].Direction != query.Descending {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestFromPull(t *testing.T) {
	next, stop := iter.Pull(query.FromSlice(products))
	defer stop()

	o, err := query.OrderBy(query.FromPull(next), "Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := skus(slices.Collect(o.All())); got != "a-1,a-2,b-1,c-1" {
		t.Errorf("got %s", got)
	}
	// The source is drained; enumerating again yields nothing.
	if got := slices.Collect(o.All()); len(got) != 0 {
		t.Errorf("second enumeration yielded %v", got)
	}

	i := 0
	counter := func() (int, bool) {
		i++
		return i, i <= 5
	}
	if got := slices.Collect(query.TakeIf(query.FromPull(counter), true, 3)); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("TakeIf over FromPull = %v", got)
	}
	if got := slices.Collect(query.FromPull[int](nil)); got != nil {
		t.Errorf("nil next yielded %v", got)
	}
}
