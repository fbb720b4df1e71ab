package scrolllabel

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg advances a Label's animation. Labels schedule their own FrameMsgs
// via the commands returned from SetText and Update; it carries the label's
// identity and the transition generation so a message from a superseded
// transition (or another label) is dropped.
type FrameMsg struct {
	id  int
	tag int
}

// settledEps is the spring threshold, in cells, under which a slot snaps to
// its target.
const settledEps = 0.05

func (l *Label) frameCmd() tea.Cmd {
	id, tag := l.id, l.tag
	return tea.Tick(l.frame, func(time.Time) tea.Msg {
		return FrameMsg{id: id, tag: tag}
	})
}

// Update advances the animation by one frame. It returns a non-nil command
// while the label is still animating; run it like any other tea.Cmd.
// Messages that aren't this label's current FrameMsg are ignored.
func (l *Label) Update(msg tea.Msg) tea.Cmd {
	fm, ok := msg.(FrameMsg)
	if !ok || fm.id != l.id || fm.tag != l.tag {
		return nil
	}
	l.step(l.frame)
	if l.Animating() {
		return l.frameCmd()
	}
	return nil
}

// Animating reports whether any slot is still in a transient state.
func (l *Label) Animating() bool {
	if len(l.exiting) > 0 {
		return true
	}
	for _, s := range l.slots {
		if s.phase == phaseInserting {
			return true
		}
		if s.renderX != float64(s.x) || s.velX != 0 {
			return true
		}
	}
	return false
}

func (l *Label) step(dt time.Duration) {
	for _, s := range l.slots {
		if s.phase == phaseInserting {
			s.elapsed += dt
			if s.elapsed >= l.cfg.Duration {
				// Entering glyphs land on the baseline in the steady text
				// color; the highlight does not linger.
				s.phase = phaseSteady
				s.elapsed = 0
			}
		}

		s.renderX, s.velX = l.spring.Update(s.renderX, s.velX, float64(s.x))
		if math.Abs(s.renderX-float64(s.x)) < settledEps && math.Abs(s.velX) < settledEps {
			s.renderX = float64(s.x)
			s.velX = 0
		}
	}

	// Exits detach exactly once, keyed to the slot instance. A newer
	// transition never reaches in here by position, so a slot mid-removal
	// can't be removed twice however the calls overlap.
	kept := l.exiting[:0]
	for _, s := range l.exiting {
		s.elapsed += dt
		if s.elapsed < l.cfg.Duration {
			kept = append(kept, s)
		}
	}
	l.exiting = kept
}

// progress returns the eased enter/exit progress of s in [0, 1].
func (l *Label) progress(s *slot) float64 {
	f := float64(s.elapsed) / float64(l.cfg.Duration)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return l.cfg.Easing(f)
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
