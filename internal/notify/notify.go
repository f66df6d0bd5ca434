// Package notify posts desktop notifications about finished jobs, falling
// back from kdialog to notify-send to stderr.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

type Notifier struct {
	run    func(ctx context.Context, name string, args ...string) error
	stderr io.Writer
}

func New() *Notifier {
	return &Notifier{
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
		stderr: os.Stderr,
	}
}

// Send posts one notification. Every backend failing is not an error;
// the message is printed to stderr instead.
func (n *Notifier) Send(ctx context.Context, title, message string, success bool) {
	icon := "dialog-ok"
	if !success {
		icon = "dialog-error"
	}

	if err := n.run(ctx, "kdialog", "--passivepopup", message, "5", "--title", title, "--icon", icon); err == nil {
		return
	}

	if err := n.run(ctx, "notify-send", "-i", icon, title, message); err == nil {
		return
	}

	fmt.Fprintf(n.stderr, "%s: %s\n", title, message)
}

// NewForTests builds a notifier with an injected command runner and stderr.
func NewForTests(run func(ctx context.Context, name string, args ...string) error, stderr io.Writer) *Notifier {
	return &Notifier{run: run, stderr: stderr}
}
