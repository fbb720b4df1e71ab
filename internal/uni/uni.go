// Package uni splits strings into grapheme clusters and measures their
// terminal cell widths. A grapheme cluster is one user-perceived character,
// possibly several code points (combining marks, ZWJ emoji, flags); it is the
// indexing unit everywhere in this module.
package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// cond measures cell widths for monospace terminal fonts. The locale is
// assumed to be non-East Asian.
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}()

// Cluster is one grapheme cluster and its width in terminal cells.
type Cluster struct {
	Text  string
	Width int
}

// Clusters splits s into grapheme clusters. Clusters("") returns nil.
//
// Invariant: concat(Clusters(s)) == s.
func Clusters(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	iter := graphemes.FromString(s)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// Split is Clusters plus a cell width per cluster.
func Split(s string) []Cluster {
	if s == "" {
		return nil
	}
	var out []Cluster
	iter := graphemes.FromString(s)
	for iter.Next() {
		v := iter.Value()
		out = append(out, Cluster{Text: v, Width: cond.StringWidth(v)})
	}
	return out
}

// TextWidth returns the terminal cell width of s.
func TextWidth(s string) int {
	return cond.StringWidth(s)
}
