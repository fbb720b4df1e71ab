package chardiff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AlwaysLuckyMa/numberscroll/internal/uni"
)

// Apply replays edits against oldText using ordinary insert/remove-at-index
// sequence semantics and returns the resulting string.
//
// It returns an error if an offset is out of bounds or a remove's recorded
// cluster does not match the cluster actually at that offset.
func Apply(oldText string, edits []Edit) (string, error) {
	seq := uni.Clusters(oldText)
	for i, e := range edits {
		switch e.Op {
		case OpRemove:
			if e.Offset < 0 || e.Offset >= len(seq) {
				return "", fmt.Errorf("edit[%d]: remove offset %d out of bounds (len %d)", i, e.Offset, len(seq))
			}
			if seq[e.Offset] != e.Cluster {
				return "", fmt.Errorf("edit[%d]: remove at %d recorded %q, sequence has %q", i, e.Offset, e.Cluster, seq[e.Offset])
			}
			seq = slices.Delete(seq, e.Offset, e.Offset+1)
		case OpInsert:
			if e.Offset < 0 || e.Offset > len(seq) {
				return "", fmt.Errorf("edit[%d]: insert offset %d out of bounds (len %d)", i, e.Offset, len(seq))
			}
			seq = slices.Insert(seq, e.Offset, e.Cluster)
		default:
			return "", fmt.Errorf("edit[%d]: unknown op %d", i, e.Op)
		}
	}
	return strings.Join(seq, ""), nil
}

// Verified wraps s so every script it produces is replayed against its
// inputs before being returned. A script that fails to reconstruct newText is
// a bug in the strategy, not a recoverable condition, so it panics with the
// replay diagnostic. The built-in strategies are already verified; wrap
// caller-supplied strategies before handing their scripts to anything that
// applies them blindly.
func Verified(s Strategy) Strategy {
	return StrategyFunc(func(oldText, newText string) []Edit {
		edits := s.Diff(oldText, newText)
		got, err := Apply(oldText, edits)
		if err != nil {
			panic(fmt.Errorf("chardiff: invalid edit script for %q -> %q: %v", oldText, newText, err))
		}
		if got != newText {
			panic(fmt.Errorf("chardiff: edit script for %q -> %q reconstructs %q", oldText, newText, got))
		}
		return edits
	})
}

func verified(f func(oldText, newText string) []Edit) Strategy {
	return Verified(StrategyFunc(f))
}
