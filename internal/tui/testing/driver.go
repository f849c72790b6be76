// Package testing provides test utilities for TUI components.
package testing

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMaxSteps bounds how many messages one Send may process.
const DefaultMaxSteps = 200

// Driver runs a Bubble Tea model without a terminal. Commands returned by
// Update are executed synchronously and their messages fed back until the
// model goes quiet.
type Driver struct {
	Model tea.Model
	// Skip drops messages before they reach the model. By default cursor
	// blinks and spinner ticks are skipped so animations cannot loop.
	Skip     func(tea.Msg) bool
	Messages []tea.Msg
	MaxSteps int
	Quit     bool
}

// NewDriver creates a driver for model.
func NewDriver(model tea.Model) *Driver {
	return &Driver{
		Model:    model,
		Skip:     SkipAnimations,
		MaxSteps: DefaultMaxSteps,
	}
}

// SkipAnimations reports whether msg is an animation frame.
func SkipAnimations(msg tea.Msg) bool {
	name := fmt.Sprintf("%T", msg)
	return strings.HasPrefix(name, "cursor.") || name == "spinner.TickMsg"
}

// Init runs the model's Init command.
func (d *Driver) Init() *Driver {
	d.settle(d.Model.Init())
	return d
}

// Send delivers msgs one at a time, settling after each.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	for _, msg := range msgs {
		if d.Quit {
			return d
		}
		d.deliver(msg)
	}
	return d
}

// View returns the current view without ANSI codes.
func (d *Driver) View() string {
	return StripANSI(d.Model.View())
}

func (d *Driver) deliver(msg tea.Msg) {
	d.Messages = append(d.Messages, msg)
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.settle(cmd)
}

func (d *Driver) settle(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < d.MaxSteps && !d.Quit; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg:
			d.Quit = true
			continue
		}
		if d.Skip != nil && d.Skip(msg) {
			continue
		}

		d.Messages = append(d.Messages, msg)
		var out tea.Cmd
		d.Model, out = d.Model.Update(msg)
		queue = append(queue, out)
	}
}
