package chardiff

import "github.com/AlwaysLuckyMa/numberscroll/internal/uni"

// Op is a single-cluster operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpInsert Op = iota
	OpRemove
)

// Edit inserts or removes one grapheme cluster.
//
// For OpInsert, Cluster becomes the Offset-th cluster of the sequence after
// all prior edits in the script have been applied. For OpRemove, the cluster
// currently at Offset is removed; Cluster records the removed value for
// verification and animation direction, it does not locate the target.
type Edit struct {
	Op      Op
	Offset  int    // grapheme cluster offset at apply time
	Cluster string // the inserted cluster, or the removed value
}

// Strategy computes an edit script from oldText to newText.
//
// Implementations must be pure: no side effects, deterministic, total over
// any two finite strings.
type Strategy interface {
	Diff(oldText, newText string) []Edit
}

// StrategyFunc adapts a plain function to a Strategy.
type StrategyFunc func(oldText, newText string) []Edit

// Diff calls f.
func (f StrategyFunc) Diff(oldText, newText string) []Edit { return f(oldText, newText) }

// Positional returns the greedy positional strategy.
//
// It walks both strings cluster by cluster from the start. From the first
// index where they differ (or where newText outruns oldText), every remaining
// old cluster is removed and every remaining new cluster inserted; a pure
// length truncation shows up as trailing removes. Output ordering: all
// removes in descending offset order, then all inserts ascending. Removing
// highest-offset-first keeps lower offsets valid while the script replays
// against the original sequence.
func Positional() Strategy { return verified(positionalDiff) }

// Grouped returns the grouped strategy: a single scan finds the first index
// where the strings diverge, then the whole old tail becomes one contiguous
// remove block (descending) and the whole new tail one contiguous insert
// block (ascending). Same edit set as Positional; the point is the block
// construction.
func Grouped() Strategy { return verified(groupedDiff) }

func positionalDiff(oldText, newText string) []Edit {
	o := uni.Clusters(oldText)
	n := uni.Clusters(newText)

	var removes, inserts []Edit
	diverged := false
	for i := 0; i < len(n); i++ {
		if !diverged && i < len(o) && o[i] == n[i] {
			continue
		}
		diverged = true
		if i < len(o) {
			removes = append(removes, Edit{Op: OpRemove, Offset: i, Cluster: o[i]})
		}
		inserts = append(inserts, Edit{Op: OpInsert, Offset: i, Cluster: n[i]})
	}
	// Truncation tail: old clusters past the end of new.
	for i := len(n); i < len(o); i++ {
		removes = append(removes, Edit{Op: OpRemove, Offset: i, Cluster: o[i]})
	}

	edits := make([]Edit, 0, len(removes)+len(inserts))
	for i := len(removes) - 1; i >= 0; i-- {
		edits = append(edits, removes[i])
	}
	edits = append(edits, inserts...)
	if len(edits) == 0 {
		return nil
	}
	return edits
}

func groupedDiff(oldText, newText string) []Edit {
	o := uni.Clusters(oldText)
	n := uni.Clusters(newText)

	pivot := 0
	for pivot < len(o) && pivot < len(n) && o[pivot] == n[pivot] {
		pivot++
	}
	if pivot == len(o) && pivot == len(n) {
		return nil
	}

	edits := make([]Edit, 0, (len(o)-pivot)+(len(n)-pivot))
	for i := len(o) - 1; i >= pivot; i-- {
		edits = append(edits, Edit{Op: OpRemove, Offset: i, Cluster: o[i]})
	}
	for i := pivot; i < len(n); i++ {
		edits = append(edits, Edit{Op: OpInsert, Offset: i, Cluster: n[i]})
	}
	return edits
}
