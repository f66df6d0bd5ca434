package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(d Decision) func(context.Context, Question) (Decision, error) {
	return func(context.Context, Question) (Decision, error) { return d, nil }
}

func available(v bool) func() bool {
	return func() bool { return v }
}

func TestChainUsesFirstAvailableBackend(t *testing.T) {
	asked := ""
	p := &ChainPrompter{backends: []backend{
		{name: "first", available: available(false), ask: fixed(Continue)},
		{name: "second", available: available(true), ask: func(context.Context, Question) (Decision, error) {
			asked = "second"
			return Stop, nil
		}},
		{name: "third", available: available(true), ask: fixed(Continue)},
	}}

	got := p.Ask(context.Background(), Question{Title: "t", Message: "m"})

	assert.Equal(t, Stop, got)
	assert.Equal(t, "second", asked)
}

func TestChainFallsThroughOnBackendError(t *testing.T) {
	p := &ChainPrompter{backends: []backend{
		{name: "flaky", available: available(true), ask: func(context.Context, Question) (Decision, error) {
			return Stop, errors.New("exec: not found")
		}},
		{name: "working", available: available(true), ask: fixed(Continue)},
	}}

	got := p.Ask(context.Background(), Question{})

	assert.Equal(t, Continue, got)
}

func TestChainUnavailableWhenNoBackends(t *testing.T) {
	p := &ChainPrompter{backends: []backend{
		{name: "a", available: available(false), ask: fixed(Continue)},
		{name: "b", available: available(false), ask: fixed(Continue)},
	}}

	got := p.Ask(context.Background(), Question{})

	assert.Equal(t, Unavailable, got)
}

func TestChainProbesEveryCall(t *testing.T) {
	probes := 0
	present := false
	p := &ChainPrompter{backends: []backend{
		{
			name: "toggling",
			available: func() bool {
				probes++
				return present
			},
			ask: fixed(Continue),
		},
	}}

	assert.Equal(t, Unavailable, p.Ask(context.Background(), Question{}))

	// The backend appearing between calls is picked up by the next probe.
	present = true
	assert.Equal(t, Continue, p.Ask(context.Background(), Question{}))
	assert.Equal(t, 2, probes)
}

// runDialog maps exit statuses: only the affirmative button (exit 0)
// continues, every other exit stops.
func TestRunDialogExitZeroContinues(t *testing.T) {
	got, err := runDialog(context.Background(), "sh", "-c", "exit 0")

	require.NoError(t, err)
	assert.Equal(t, Continue, got)
}

func TestRunDialogNonZeroExitStops(t *testing.T) {
	for _, script := range []string{"exit 1", "exit 2", "exit 254"} {
		got, err := runDialog(context.Background(), "sh", "-c", script)

		require.NoError(t, err)
		assert.Equal(t, Stop, got)
	}
}

func TestRunDialogUnstartableCommandErrors(t *testing.T) {
	got, err := runDialog(context.Background(), "/nonexistent/dialog-tool")

	require.Error(t, err)
	assert.Equal(t, Stop, got)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "unavailable", Unavailable.String())
}

func TestNewPrompterBackendOrder(t *testing.T) {
	p := NewPrompter()

	require.Len(t, p.backends, 3)
	assert.Equal(t, "kdialog", p.backends[0].name)
	assert.Equal(t, "zenity", p.backends[1].name)
	assert.Equal(t, "terminal", p.backends[2].name)
}
