// Package dialog asks the user a yes/no question through whichever dialog
// backend is available: kdialog (KDE), zenity (GNOME), or an interactive
// terminal prompt.
package dialog

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Decision is the user's answer, or Unavailable when no backend exists.
type Decision int

const (
	Continue Decision = iota
	Stop
	Unavailable
)

func (d Decision) String() string {
	switch d {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unavailable"
	}
}

// Question is a binary prompt. The affirmative action always means
// "continue", so a dismissed or closed dialog can never keep the loop
// running unattended.
type Question struct {
	Title   string
	Message string
}

const (
	affirmativeLabel = "Yes, run another pass"
	negativeLabel    = "No, I'm done"
)

// Prompter asks one question and returns the user's decision.
type Prompter interface {
	Ask(ctx context.Context, q Question) Decision
}

type backend struct {
	name      string
	available func() bool
	ask       func(ctx context.Context, q Question) (Decision, error)
}

// ChainPrompter tries each backend in order. Availability is probed on
// every call so a backend appearing or disappearing between passes is
// tolerated.
type ChainPrompter struct {
	backends []backend
}

// NewPrompter returns the production chain: kdialog, then zenity, then a
// terminal confirm when stdin is a TTY.
func NewPrompter() *ChainPrompter {
	return &ChainPrompter{
		backends: []backend{
			{name: "kdialog", available: commandAvailable("kdialog"), ask: askKDialog},
			{name: "zenity", available: commandAvailable("zenity"), ask: askZenity},
			{name: "terminal", available: stdinIsTerminal, ask: askTerminal},
		},
	}
}

func (p *ChainPrompter) Ask(ctx context.Context, q Question) Decision {
	for _, b := range p.backends {
		if !b.available() {
			continue
		}
		decision, err := b.ask(ctx, q)
		if err != nil {
			// Backend vanished or misbehaved between probe and use.
			continue
		}
		return decision
	}
	return Unavailable
}

func commandAvailable(name string) func() bool {
	return func() bool {
		_, err := exec.LookPath(name)
		return err == nil
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func askKDialog(ctx context.Context, q Question) (Decision, error) {
	return runDialog(ctx, "kdialog",
		"--yesno", q.Message,
		"--title", q.Title,
		"--yes-label", affirmativeLabel,
		"--no-label", negativeLabel,
	)
}

func askZenity(ctx context.Context, q Question) (Decision, error) {
	return runDialog(ctx, "zenity",
		"--question",
		"--text", q.Message,
		"--title", q.Title,
		"--ok-label", affirmativeLabel,
		"--cancel-label", negativeLabel,
	)
}

// runDialog maps the dialog tool's exit status to a decision: zero is the
// affirmative button, any other exit (negative button, Esc, window close)
// stops. An unstartable command is reported as an error so the chain can
// fall through.
func runDialog(ctx context.Context, name string, args ...string) (Decision, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	err := cmd.Run()
	if err == nil {
		return Continue, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Stop, nil
	}
	return Stop, err
}

func askTerminal(_ context.Context, q Question) (Decision, error) {
	again := false
	confirm := huh.NewConfirm().
		Title(q.Title).
		Description(q.Message).
		Affirmative(affirmativeLabel).
		Negative(negativeLabel).
		Value(&again)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Stop, nil
		}
		return Stop, err
	}

	if again {
		return Continue, nil
	}
	return Stop, nil
}
