package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Listing kinds used in messages and error reports.
const (
	KindNetwork    = "networks"
	KindHub        = "hubs"
	KindSubnet     = "subnets"
	KindRouteTable = "route tables"
)

// Listing is an ordered snapshot of a single inventory read.
// Index positions are what operators select from, so a Listing is never
// re-ordered or filtered in place: Exclude returns a new Listing with its
// own index space.
type Listing[T any] struct {
	kind  string
	items []T
}

// NewListing returns a Listing holding a copy of items in the given order.
func NewListing[T any](kind string, items []T) *Listing[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return &Listing[T]{kind: kind, items: cp}
}

// Kind returns the resource kind of the listing.
func (l *Listing[T]) Kind() string { return l.kind }

// Len returns the number of entries.
func (l *Listing[T]) Len() int { return len(l.items) }

// Items returns a copy of the entries in listing order.
func (l *Listing[T]) Items() []T {
	cp := make([]T, len(l.items))
	copy(cp, l.items)
	return cp
}

// Resolve returns the entry at index i unchanged.
func (l *Listing[T]) Resolve(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, &SelectionOutOfRange{Kind: l.kind, Index: i, Len: len(l.items)}
	}
	return l.items[i], nil
}

// ResolveMany resolves every index independently. Duplicates resolve to the
// same entry again and are kept.
func (l *Listing[T]) ResolveMany(indices []int) ([]T, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no index given for %s", ErrSelectionInvalid, l.kind)
	}
	out := make([]T, 0, len(indices))
	for _, i := range indices {
		v, err := l.Resolve(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Exclude returns a new Listing without the entries for which drop returns true.
func (l *Listing[T]) Exclude(drop func(T) bool) *Listing[T] {
	kept := make([]T, 0, len(l.items))
	for _, v := range l.items {
		if !drop(v) {
			kept = append(kept, v)
		}
	}
	return &Listing[T]{kind: l.kind, items: kept}
}

// ParseIndices parses operator input such as "0, 2,2" into indices.
// Range checks are left to Resolve.
func ParseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrSelectionInvalid)
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an index", ErrSelectionInvalid, p)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseIndex parses operator input holding exactly one index.
func ParseIndex(s string) (int, error) {
	indices, err := ParseIndices(s)
	if err != nil {
		return 0, err
	}
	if len(indices) != 1 {
		return 0, fmt.Errorf("%w: expected a single index, got %d", ErrSelectionInvalid, len(indices))
	}
	return indices[0], nil
}
