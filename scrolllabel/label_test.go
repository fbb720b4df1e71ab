package scrolllabel

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlwaysLuckyMa/numberscroll/chardiff"
)

func newTestLabel(t *testing.T) *Label {
	t.Helper()
	l, err := New(Config{})
	require.NoError(t, err)
	return l
}

// drain pumps the label's own frame messages until the animation settles.
func drain(t *testing.T, l *Label) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if !l.Animating() {
			return
		}
		l.Update(FrameMsg{id: l.id, tag: l.tag})
	}
	t.Fatal("label did not settle")
}

func liveClusters(l *Label) []string {
	out := make([]string, 0, len(l.slots))
	for _, s := range l.slots {
		out = append(out, s.cluster)
	}
	return out
}

func TestSetTextSequence(t *testing.T) {
	l := newTestLabel(t)

	l.SetText("1", false)
	l.SetText("12", false)
	l.SetText("123", false)

	require.Equal(t, "123", l.Text())
	require.Equal(t, []string{"1", "2", "3"}, liveClusters(l))

	// Strictly increasing horizontal offsets, left to right.
	for i := 1; i < len(l.slots); i++ {
		require.Greater(t, l.slots[i].x, l.slots[i-1].x)
	}
	require.Equal(t, 3, l.ContentWidth())
}

func TestSetTextNoOp(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("100", false)

	tag := l.tag
	ids := []int{l.slots[0].id, l.slots[1].id, l.slots[2].id}

	require.Nil(t, l.SetText("100", true))
	require.Equal(t, tag, l.tag)
	require.Equal(t, ids, []int{l.slots[0].id, l.slots[1].id, l.slots[2].id})
}

func TestDirectionInference(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("100", false)

	cmd := l.SetText("101", true)
	require.NotNil(t, cmd)
	require.Equal(t, Increment, l.slots[2].dir)
	drain(t, l)

	l.SetText("099", true)
	require.Equal(t, Decrement, l.slots[0].dir)
}

func TestExplicitDirectionWins(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("$9.00", false)

	// Lexicographically "$13.00" < "$9.00", but the caller knows better.
	l.SetTextDirection("$13.00", true, Increment)
	for _, s := range l.slots {
		if s.phase == phaseInserting {
			require.Equal(t, Increment, s.dir)
		}
	}
}

func TestAnimatedTransitionSettles(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("100", false)

	cmd := l.SetTextDirection("1500", true, Increment)
	require.NotNil(t, cmd)

	// Sequence mutation is synchronous: the slots already read "1500" while
	// the removed zeros are still animating out.
	require.Equal(t, "1500", l.Text())
	require.Equal(t, []string{"1", "5", "0", "0"}, liveClusters(l))
	require.Len(t, l.exiting, 2)

	drain(t, l)

	require.Empty(t, l.exiting)
	for _, s := range l.slots {
		require.Equal(t, phaseSteady, s.phase)
		require.Equal(t, float64(s.x), s.renderX)
	}
}

func TestOverlappingTransitions(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("100", false)

	l.SetTextDirection("150", true, Increment)
	firstExits := len(l.exiting)
	require.Greater(t, firstExits, 0)

	// Second transition lands before any frame of the first has run.
	l.SetTextDirection("1500", true, Increment)

	require.Equal(t, "1500", l.Text())
	require.Equal(t, []string{"1", "5", "0", "0"}, liveClusters(l))

	// No slot instance appears twice across live and exiting.
	seen := map[int]bool{}
	for _, s := range append(append([]*slot{}, l.slots...), l.exiting...) {
		require.False(t, seen[s.id], "slot %d appears twice", s.id)
		seen[s.id] = true
	}

	// Superseded exits still settle and detach.
	drain(t, l)
	require.Empty(t, l.exiting)
}

func TestStaleFrameMsgIgnored(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("1", false)
	l.SetText("12", true)

	require.Nil(t, l.Update(FrameMsg{id: l.id, tag: l.tag - 1}))
	require.Nil(t, l.Update(FrameMsg{id: l.id + 1, tag: l.tag}))
	require.Nil(t, l.Update(struct{}{}))

	require.NotNil(t, l.Update(FrameMsg{id: l.id, tag: l.tag}))
}

func TestNonAnimatedFlushesExits(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("123", false)
	l.SetTextDirection("1", true, Decrement)
	require.NotEmpty(t, l.exiting)

	l.SetText("19", false)
	require.Empty(t, l.exiting)
	require.Equal(t, "19", l.Text())
	for _, s := range l.slots {
		require.Equal(t, phaseSteady, s.phase)
	}
}

func TestContentWidthWide(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("a世b", false)

	require.Equal(t, 4, l.ContentWidth())
	require.Equal(t, []int{0, 1, 3}, []int{l.slots[0].x, l.slots[1].x, l.slots[2].x})
}

func TestCustomStrategy(t *testing.T) {
	calls := 0
	l, err := New(Config{
		Strategy: chardiff.StrategyFunc(func(oldText, newText string) []chardiff.Edit {
			calls++
			return chardiff.Minimal().Diff(oldText, newText)
		}),
	})
	require.NoError(t, err)

	l.SetText("abcdef", false)
	l.SetText("abXdef", false)
	require.Equal(t, 2, calls)
	require.Equal(t, "abXdef", l.Text())
}

func TestSurvivorsSlideToNewPositions(t *testing.T) {
	l, err := New(Config{Strategy: chardiff.Minimal()})
	require.NoError(t, err)
	l.SetText("10", false)

	survivor := l.slots[1] // "0"
	l.SetTextDirection("110", true, Increment)

	// A minimal script keeps the old "0"; the inserted "1" shifts it right.
	// It starts rendering where it was and springs to the new x.
	require.Contains(t, l.slots, survivor)
	require.Greater(t, survivor.x, int(survivor.renderX))

	drain(t, l)
	require.Equal(t, float64(survivor.x), survivor.renderX)
}

func TestBrokenCustomStrategyPanicsDiagnosably(t *testing.T) {
	l, err := New(Config{
		Strategy: chardiff.StrategyFunc(func(oldText, newText string) []chardiff.Edit {
			return []chardiff.Edit{{Op: chardiff.OpRemove, Offset: 42, Cluster: "x"}}
		}),
	})
	require.NoError(t, err)

	// The replay validator fires before any slot mutation, so a bad script
	// panics with the chardiff diagnostic rather than a bare index error.
	require.PanicsWithError(t,
		`chardiff: invalid edit script for "" -> "7": edit[0]: remove offset 42 out of bounds (len 0)`,
		func() { l.SetText("7", false) })
}

func TestNewRejectsBadColor(t *testing.T) {
	_, err := New(Config{TextColor: "notahexcolor"})
	require.Error(t, err)
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestViewSteady(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("123", false)

	rows := strings.Split(l.View(), "\n")
	require.Len(t, rows, l.Rows())

	require.Equal(t, "   ", ansiRe.ReplaceAllString(rows[0], ""))
	require.Equal(t, "123", ansiRe.ReplaceAllString(rows[1], ""))
	require.Equal(t, "   ", ansiRe.ReplaceAllString(rows[2], ""))
}

func TestViewKeepsSlidingSurvivors(t *testing.T) {
	l, err := New(Config{Strategy: chardiff.Minimal()})
	require.NoError(t, err)
	l.SetText("ab", false)

	l.SetTextDirection("b", true, Decrement)

	// Removing the leading cluster leaves the surviving "b" rendering at its
	// old column, right of the new content width, while it slides left. The
	// first frame must still show it, not clip it at the canvas edge.
	plain := ansiRe.ReplaceAllString(l.View(), "")
	require.Contains(t, plain, "b")
	require.Contains(t, plain, "a") // the exiting glyph is there too

	drain(t, l)
	rows := strings.Split(l.View(), "\n")
	require.Equal(t, "b", ansiRe.ReplaceAllString(rows[1], ""))
}

func TestViewEnteringGlyphStartsOffBaseline(t *testing.T) {
	l := newTestLabel(t)
	l.SetText("1", false)
	l.SetTextDirection("12", true, Increment)

	// At progress ~0 an incrementing insert occupies the row above the
	// baseline.
	rows := strings.Split(l.View(), "\n")
	require.Contains(t, ansiRe.ReplaceAllString(rows[0], ""), "2")
	require.NotContains(t, ansiRe.ReplaceAllString(rows[1], ""), "2")

	drain(t, l)
	rows = strings.Split(l.View(), "\n")
	require.Equal(t, "12", ansiRe.ReplaceAllString(rows[1], ""))
}
