package notify

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quickrmbg/quick-rmbg/internal/models"
)

// Title returns the notification title for a mode.
func Title(mode models.Mode) string {
	switch mode {
	case models.ModeTwoPass:
		return "Quick RMBG (Two-Pass)"
	case models.ModeInfiniteHop:
		return "Quick RMBG (Infinite Hop)"
	default:
		return "Quick RMBG"
	}
}

// Summary renders the user-facing completion message for an outcome.
func Summary(mode models.Mode, out models.Outcome) string {
	if !out.OK {
		return failureSummary(mode, out)
	}

	switch mode {
	case models.ModeTwoPass:
		return fmt.Sprintf(
			"Two-pass background removal complete.\nFirst pass: %s\nFinal: %s",
			filepath.Base(out.Passes[0].OutputPath),
			filepath.Base(out.FinalPath),
		)
	case models.ModeInfiniteHop:
		return infiniteHopSummary(out)
	default:
		return "Background removed.\nSaved to: " + filepath.Base(out.FinalPath)
	}
}

func infiniteHopSummary(out models.Outcome) string {
	var b strings.Builder
	n := out.TotalPasses()
	if n == 1 {
		b.WriteString("Infinite Hop complete after 1 pass.")
	} else {
		fmt.Fprintf(&b, "Infinite Hop complete after %d passes.", n)
		for _, p := range out.Passes {
			fmt.Fprintf(&b, "\n  Pass %d: %s", p.Index, filepath.Base(p.OutputPath))
		}
	}
	fmt.Fprintf(&b, "\nFinal: %s", filepath.Base(out.FinalPath))

	switch out.Reason {
	case models.ReasonDialogUnavailable:
		b.WriteString("\nNo dialog tool available; stopped after the last pass.")
	case models.ReasonMaxPasses:
		b.WriteString("\nStopped at the configured pass limit.")
	}

	return b.String()
}

func failureSummary(mode models.Mode, out models.Outcome) string {
	last := out.Passes[len(out.Passes)-1]

	switch mode {
	case models.ModeTwoPass:
		label := "First"
		if last.Index == 2 {
			label = "Second"
		}
		return fmt.Sprintf("%s pass failed: %s", label, last.Error)
	case models.ModeInfiniteHop:
		return fmt.Sprintf("Pass %d failed: %s", last.Index, last.Error)
	default:
		return "rembg failed: " + last.Error
	}
}
