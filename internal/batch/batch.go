// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch splits an ordered persona list into fixed-size pages.
package batch

import (
	"fmt"

	"github.com/pdiddy/persona-pages/pkg/types"
)

// Group is a contiguous slice of the input. Start is the 0-based position
// of the first member in the input sequence.
type Group struct {
	Start  int
	Size   int // nominal batch size, not len(People)
	People []types.EnrichedPersona
}

// FirstOrdinal is the 1-based position of the group's first slot.
func (g Group) FirstOrdinal() int { return g.Start + 1 }

// LastOrdinal is the 1-based position of the group's last slot. A short
// final group keeps its nominal range so names stay stable as rows are added.
func (g Group) LastOrdinal() int { return g.Start + g.Size }

// Names returns the member names in order.
func (g Group) Names() []string {
	names := make([]string, len(g.People))
	for i, p := range g.People {
		names[i] = p.Name
	}
	return names
}

// Split partitions people into groups of size, preserving order. Only the
// last group may be shorter. An empty input yields no groups.
func Split(people []types.EnrichedPersona, size int) ([]Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", size)
	}

	groups := make([]Group, 0, (len(people)+size-1)/size)
	for start := 0; start < len(people); start += size {
		end := min(start+size, len(people))
		groups = append(groups, Group{
			Start:  start,
			Size:   size,
			People: people[start:end:end],
		})
	}
	return groups, nil
}
