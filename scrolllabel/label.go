// Package scrolllabel renders a single-line text label that animates
// transitions between values, price-counter style. A grapheme-level diff
// decides which glyphs are inserted and removed; inserted glyphs drop in with
// a directional color cue, removed glyphs fall away, and surviving glyphs
// slide to their new positions.
//
// The label is a bubbletea component: SetText returns a tea.Cmd that drives
// the animation, Update consumes the resulting frame messages, and View
// renders the current frame.
package scrolllabel

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/AlwaysLuckyMa/numberscroll/chardiff"
	"github.com/AlwaysLuckyMa/numberscroll/internal/simplelogger"
	"github.com/AlwaysLuckyMa/numberscroll/internal/uni"
)

// Direction classifies a transition as an increment or a decrement. It picks
// the highlight color and the vertical bias of entering/exiting glyphs.
type Direction int

const (
	Increment Direction = iota
	Decrement
)

func (d Direction) String() string {
	if d == Decrement {
		return "decrement"
	}
	return "increment"
}

// Defaults for zero-valued Config fields.
const (
	DefaultTextColor       = "#ffffff"
	DefaultIncrementColor  = "#04b575"
	DefaultDecrementColor  = "#ff5f87"
	DefaultBackgroundColor = "#000000"
	DefaultDuration        = 300 * time.Millisecond
	DefaultFPS             = 60

	defaultSpringFrequency = 18.0
	defaultSpringDamping   = 1.0
)

// Config configures a Label at construction time. The zero value of every
// field has a usable default.
type Config struct {
	// Colors are hex strings ("#rrggbb"). The background color is what faded
	// glyphs blend toward; set it to the terminal background the label sits
	// on, or fades will look like flashes.
	TextColor       string
	IncrementColor  string
	DecrementColor  string
	BackgroundColor string

	Duration time.Duration // enter/exit animation duration
	FPS      int

	// Easing shapes enter/exit progress (fade and vertical bias). It maps
	// linear time 0..1 to progress 0..1. Defaults to ease-out cubic.
	Easing func(t float64) float64

	// SpringFrequency and SpringDamping shape the slide of surviving glyphs
	// to their new positions. The spring retargets cleanly when a new
	// transition lands mid-flight.
	SpringFrequency float64
	SpringDamping   float64

	// Strategy computes the edit script between the old and new text.
	// Defaults to chardiff.Positional. Any chardiff.Strategy works, including
	// a caller-supplied chardiff.StrategyFunc.
	Strategy chardiff.Strategy
}

type slotPhase int

const (
	phaseSteady slotPhase = iota
	phaseInserting
	phaseRemoving
)

// slot is the render-time representation of one displayed grapheme cluster.
//
// Invariants:
//   - id is unique for the slot's lifetime and never reused for a different
//     displayed cluster. Animation state is keyed to the instance, never to a
//     sequence position.
//   - x is derived: recomputed by every layout pass, never authoritative.
type slot struct {
	id      int
	cluster string
	width   int // terminal cells

	x int // steady-state left edge

	phase   slotPhase
	dir     Direction
	elapsed time.Duration

	renderX float64 // animated position, spring-settled toward x
	velX    float64
	placed  bool // renderX has been initialized by a layout pass
}

// Label is an animated text label.
//
// Label is not safe for concurrent use; like any bubbletea component it
// expects to live on a single event loop. Overlapping transitions are fine:
// the slot sequence mutates synchronously inside SetText, before any
// animation runs, and exiting glyphs settle independently.
type Label struct {
	id  int
	cfg Config

	strategy chardiff.Strategy
	spring   harmonica.Spring
	frame    time.Duration

	textColor colorful.Color
	incColor  colorful.Color
	decColor  colorful.Color
	bgColor   colorful.Color

	text       string
	slots      []*slot // ordered; clusters in slot order == displayed text
	exiting    []*slot // detached from the sequence, still animating out
	nextSlotID int
	tag        int // transition generation; stale frame messages are dropped
}

var lastLabelID int64

// New returns an empty Label. It returns an error only for an unparseable
// color in cfg.
func New(cfg Config) (*Label, error) {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Easing == nil {
		cfg.Easing = easeOutCubic
	}
	if cfg.SpringFrequency <= 0 {
		cfg.SpringFrequency = defaultSpringFrequency
	}
	if cfg.SpringDamping <= 0 {
		cfg.SpringDamping = defaultSpringDamping
	}
	if cfg.Strategy == nil {
		cfg.Strategy = chardiff.Positional()
	}

	l := &Label{
		id:  int(atomic.AddInt64(&lastLabelID, 1)),
		cfg: cfg,
		// Slot mutation trusts the script's offsets, so a caller-supplied
		// strategy goes through the replay validator: a broken script panics
		// with the chardiff diagnostic instead of a bare index error here.
		strategy: chardiff.Verified(cfg.Strategy),
		spring:   harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.SpringFrequency, cfg.SpringDamping),
		frame:    time.Second / time.Duration(cfg.FPS),
	}

	var err error
	if l.textColor, err = parseColor(cfg.TextColor, DefaultTextColor); err != nil {
		return nil, fmt.Errorf("text color: %w", err)
	}
	if l.incColor, err = parseColor(cfg.IncrementColor, DefaultIncrementColor); err != nil {
		return nil, fmt.Errorf("increment color: %w", err)
	}
	if l.decColor, err = parseColor(cfg.DecrementColor, DefaultDecrementColor); err != nil {
		return nil, fmt.Errorf("decrement color: %w", err)
	}
	if l.bgColor, err = parseColor(cfg.BackgroundColor, DefaultBackgroundColor); err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}

	return l, nil
}

func parseColor(hex, fallback string) (colorful.Color, error) {
	if hex == "" {
		hex = fallback
	}
	return colorful.Hex(hex)
}

// Text returns the full current string. It always mirrors the displayed
// slot sequence, mid-animation included, and is what a screen reader should
// be given.
func (l *Label) Text() string { return l.text }

// ContentWidth returns the steady-state width of the label in terminal
// cells: the sum of all live slot widths.
func (l *Label) ContentWidth() int {
	w := 0
	for _, s := range l.slots {
		w += s.width
	}
	return w
}

// SetText transitions the label to text, inferring the direction: a new
// value that sorts >= the current one animates as an increment.
//
// The inference is lexicographic and can misjudge strings that aren't
// formatted consistently (e.g. "$9" vs "$13"); callers that know the real
// direction should use SetTextDirection.
func (l *Label) SetText(text string, animate bool) tea.Cmd {
	dir := Increment
	if text < l.text {
		dir = Decrement
	}
	return l.SetTextDirection(text, animate, dir)
}

// SetTextDirection transitions the label to text with an explicit direction.
//
// If text equals the current text this is a no-op and returns nil. Otherwise
// the edit script is computed against the old text, the slot sequence is
// mutated synchronously before any animation starts, and every slot's
// steady-state position is recomputed. With animate, the returned command
// drives the transition and must be run; without it, the final state applies
// immediately (flushing any in-flight exits) and the return is nil.
func (l *Label) SetTextDirection(text string, animate bool, dir Direction) tea.Cmd {
	if text == l.text {
		return nil
	}

	edits := l.strategy.Diff(l.text, text)
	if simplelogger.Enabled() {
		simplelogger.Log("scrolllabel[%d]: %q -> %q: %d edits, %s, animate=%v", l.id, l.text, text, len(edits), dir, animate)
	}

	l.tag++
	for _, e := range edits {
		switch e.Op {
		case chardiff.OpRemove:
			l.removeAt(e.Offset, animate, dir)
		case chardiff.OpInsert:
			l.insertAt(e.Offset, e.Cluster, animate, dir)
		}
	}
	l.text = text
	l.layout()

	if !animate {
		l.settle()
		return nil
	}
	return l.frameCmd()
}

// removeAt detaches the slot at offset from the live sequence. Offsets refer
// to the sequence's own positions; strategies emit removes in descending
// order, so earlier removes never invalidate later ones.
func (l *Label) removeAt(offset int, animate bool, dir Direction) {
	s := l.slots[offset]
	l.slots = slices.Delete(l.slots, offset, offset+1)
	if !animate {
		return
	}
	s.phase = phaseRemoving
	s.dir = dir
	s.elapsed = 0
	l.exiting = append(l.exiting, s)
}

func (l *Label) insertAt(offset int, cluster string, animate bool, dir Direction) {
	s := &slot{
		id:      l.nextSlotID,
		cluster: cluster,
		width:   uni.TextWidth(cluster),
		phase:   phaseSteady,
		dir:     dir,
	}
	l.nextSlotID++
	if animate {
		s.phase = phaseInserting
	}
	l.slots = slices.Insert(l.slots, offset, s)
}

// layout recomputes every slot's steady-state x as the cumulative width of
// the slots before it. Pure function of slot order and widths; runs after
// every content change. New slots enter in place at their final x; surviving
// slots keep their animated position and spring toward the new target.
func (l *Label) layout() {
	x := 0
	for _, s := range l.slots {
		s.x = x
		if !s.placed {
			s.renderX = float64(x)
			s.velX = 0
			s.placed = true
		}
		x += s.width
	}
}

// settle snaps every live slot to its final visual state and flushes exits.
func (l *Label) settle() {
	for _, s := range l.slots {
		s.phase = phaseSteady
		s.elapsed = 0
		s.renderX = float64(s.x)
		s.velX = 0
	}
	l.exiting = nil
}
