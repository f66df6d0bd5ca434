package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

func recordingRunner(fail map[string]bool) (*[]recordedCall, func(ctx context.Context, name string, args ...string) error) {
	calls := &[]recordedCall{}
	return calls, func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCall{name: name, args: args})
		if fail[name] {
			return errors.New(name + " failed")
		}
		return nil
	}
}

func TestSendUsesKDialogFirst(t *testing.T) {
	calls, run := recordingRunner(nil)
	var stderr bytes.Buffer
	n := NewForTests(run, &stderr)

	n.Send(context.Background(), "Quick RMBG", "Background removed.", true)

	require.Len(t, *calls, 1)
	assert.Equal(t, "kdialog", (*calls)[0].name)
	assert.Contains(t, (*calls)[0].args, "--passivepopup")
	assert.Contains(t, (*calls)[0].args, "dialog-ok")
	assert.Empty(t, stderr.String())
}

func TestSendFallsBackToNotifySend(t *testing.T) {
	calls, run := recordingRunner(map[string]bool{"kdialog": true})
	var stderr bytes.Buffer
	n := NewForTests(run, &stderr)

	n.Send(context.Background(), "Quick RMBG", "rembg failed: boom", false)

	require.Len(t, *calls, 2)
	assert.Equal(t, "notify-send", (*calls)[1].name)
	assert.Contains(t, (*calls)[1].args, "dialog-error")
	assert.Empty(t, stderr.String())
}

func TestSendLastResortStderr(t *testing.T) {
	calls, run := recordingRunner(map[string]bool{"kdialog": true, "notify-send": true})
	var stderr bytes.Buffer
	n := NewForTests(run, &stderr)

	n.Send(context.Background(), "Quick RMBG", "Background removed.", true)

	require.Len(t, *calls, 2)
	assert.Equal(t, "Quick RMBG: Background removed.\n", stderr.String())
}
