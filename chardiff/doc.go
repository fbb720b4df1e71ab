// Package chardiff computes character-level edit scripts between an "old" and
// a "new" string.
//
// Representation: an edit script is an ordered []Edit. Each Edit inserts or
// removes exactly one grapheme cluster at an Offset. Offsets count grapheme
// clusters (user-perceived characters), never bytes or runes, so combining
// marks, ZWJ emoji, and flags move as single units.
//
// Applying a script to the old string in order, with ordinary
// insert/remove-at-index sequence semantics, yields exactly the new string.
// That is the correctness contract of every Strategy; Apply replays a script
// and reports the first violation.
//
// Strategies: Diff behavior is a policy value, not a subclass. Three built-in
// strategies are provided, plus StrategyFunc for caller-supplied ones:
//   - Minimal: a minimum-edit-count script (LCS-based). Highest quality,
//     most expensive; a moved character may appear as a paired remove+insert.
//   - Positional: greedy. From the first mismatching index, every remaining
//     old cluster is removed and every remaining new cluster inserted.
//     Removes come first, in descending offset order, then inserts ascending.
//     Intentionally non-minimal: later coincidental matches are still
//     replaced. Simple and visually uniform; the common choice for counters.
//   - Grouped: like Positional, but constructed as one contiguous remove
//     block followed by one contiguous insert block, for callers that want a
//     single "replace tail" animation.
//
// All strategies are total: any pair of finite strings produces a valid
// script, including empty strings. diff(a, a) is always empty.
package chardiff
