package chardiff

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/AlwaysLuckyMa/numberscroll/internal/uni"
)

// Minimal returns the minimum-edit-count strategy, built on a general
// LCS-based diff. A character that "moves" may be reported as a paired
// remove+insert rather than a positional replace.
func Minimal() Strategy { return verified(minimalDiff) }

func minimalDiff(oldText, newText string) []Edit {
	if oldText == newText {
		return nil
	}

	// diffmatchpatch diffs runes, which would split grapheme clusters. Encode
	// each distinct cluster as one stand-in rune, diff the rune strings, and
	// decode, so clusters stay atomic. (Same technique as DiffLinesToRunes,
	// keyed to clusters instead of lines.)
	var table []string
	index := make(map[string]rune)
	next := rune(1)
	encode := func(clusters []string) []rune {
		rs := make([]rune, len(clusters))
		for i, c := range clusters {
			r, ok := index[c]
			if !ok {
				r = next
				next++
				// The surrogate range does not survive the string round-trips
				// inside diffmatchpatch.
				if next == 0xD800 {
					next = 0xE000
				}
				index[c] = r
				table = append(table, c)
			}
			rs[i] = r
		}
		return rs
	}
	decode := func(r rune) string {
		if r >= 0xE000 {
			r -= 0xE000 - 0xD800
		}
		return table[r-1]
	}

	rOld := encode(uni.Clusters(oldText))
	rNew := encode(uni.Clusters(newText))

	dmp := diffmatchpatch.New()
	segs := dmp.DiffMainRunes(rOld, rNew, false)
	segs = dmp.DiffCleanupMerge(segs)

	// Walk the segments keeping a cursor into the evolving sequence. Removing
	// k clusters means k removes at the same offset; each apply shifts the
	// next cluster into place.
	var edits []Edit
	offset := 0
	for _, seg := range segs {
		switch seg.Type {
		case diffmatchpatch.DiffEqual:
			offset += len([]rune(seg.Text))
		case diffmatchpatch.DiffDelete:
			for _, r := range seg.Text {
				edits = append(edits, Edit{Op: OpRemove, Offset: offset, Cluster: decode(r)})
			}
		case diffmatchpatch.DiffInsert:
			for _, r := range seg.Text {
				edits = append(edits, Edit{Op: OpInsert, Offset: offset, Cluster: decode(r)})
				offset++
			}
		}
	}
	return edits
}
