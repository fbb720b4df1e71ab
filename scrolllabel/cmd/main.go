// Command cmd is an interactive demo: a price ticker rendered with a
// scrolllabel. Arrow keys nudge the price, "r" jumps it somewhere random, and
// the label animates each change with directional motion and color.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AlwaysLuckyMa/numberscroll/scrolllabel"
)

type keymap struct {
	Up     key.Binding
	Down   key.Binding
	Random key.Binding
	Quit   key.Binding
}

func newKeymap() keymap {
	return keymap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "+"), key.WithHelp("↑/+", "raise")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "-"), key.WithHelp("↓/-", "lower")),
		Random: key.NewBinding(key.WithKeys("r", " "), key.WithHelp("r", "random")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type model struct {
	price   float64
	label   *scrolllabel.Label
	keys    keymap
	printer *message.Printer
}

func (m model) formatted() string {
	return m.printer.Sprintf("$%.2f", m.price)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.price += 1 + 100*rand.Float64()
			return m, m.label.SetTextDirection(m.formatted(), true, scrolllabel.Increment)
		case key.Matches(msg, m.keys.Down):
			m.price -= 1 + 100*rand.Float64()
			if m.price < 0 {
				m.price = 0
			}
			return m, m.label.SetTextDirection(m.formatted(), true, scrolllabel.Decrement)
		case key.Matches(msg, m.keys.Random):
			// Direction left to the label's lexicographic inference, to show
			// both call forms (and the heuristic's limits).
			m.price = 100000 * rand.Float64()
			return m, m.label.SetText(m.formatted(), true)
		}
		return m, nil
	default:
		return m, m.label.Update(msg)
	}
}

var (
	boxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(1)
)

func (m model) View() string {
	return "\n" + boxStyle.Render(m.label.View()) + "\n" + helpStyle.Render("↑/+ raise   ↓/- lower   r random   q quit") + "\n"
}

func main() {
	label, err := scrolllabel.New(scrolllabel.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrolllabel demo: %v\n", err)
		os.Exit(1)
	}

	m := model{
		price:   1234.56,
		label:   label,
		keys:    newKeymap(),
		printer: message.NewPrinter(language.English),
	}
	label.SetText(m.formatted(), false)

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "scrolllabel demo: %v\n", err)
		os.Exit(1)
	}
}
