//
// stats.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sim

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/markkurossi/tabulate"
)

// Stats counts backend primitive invocations by operation name.
type Stats struct {
	mu     sync.Mutex
	counts map[string]int
}

func newStats() *Stats {
	return &Stats{
		counts: make(map[string]int),
	}
}

func (s *Stats) count(op string) {
	s.mu.Lock()
	s.counts[op]++
	s.mu.Unlock()
}

// Count returns the number of invocations of the operation op.
func (s *Stats) Count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[op]
}

// Total returns the total number of primitive invocations.
func (s *Stats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int
	for _, c := range s.counts {
		total += c
	}
	return total
}

// Reset clears all counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.counts = make(map[string]int)
	s.mu.Unlock()
}

// Report prints an operation count report to w.
func (s *Stats) Report(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.counts) == 0 {
		return
	}

	ops := make([]string, 0, len(s.counts))
	var total int
	for op, c := range s.counts {
		ops = append(ops, op)
		total += c
	}
	sort.Slice(ops, func(i, j int) bool {
		if s.counts[ops[i]] != s.counts[ops[j]] {
			return s.counts[ops[i]] > s.counts[ops[j]]
		}
		return ops[i] < ops[j]
	})

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	for _, op := range ops {
		row := tab.Row()
		row.Column(op)
		row.Column(fmt.Sprintf("%d", s.counts[op]))
		row.Column(fmt.Sprintf("%.2f%%",
			float64(s.counts[op])/float64(total)*100))
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", total)).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)

	tab.Print(w)
}
