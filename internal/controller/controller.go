// Package controller drives the multi-pass processing loop: it runs rembg
// passes, chains each pass's output into the next pass's input, and in
// infinite-hop mode asks the user after every pass whether to keep going.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/quickrmbg/quick-rmbg/internal/dialog"
	"github.com/quickrmbg/quick-rmbg/internal/models"
	"github.com/quickrmbg/quick-rmbg/internal/naming"
	"github.com/quickrmbg/quick-rmbg/internal/rembg"
)

// Recorder persists job history. Recording is advisory: failures are
// logged and never affect the job outcome.
type Recorder interface {
	CreateJob(job models.Job) (int64, error)
	RecordPass(jobID int64, pass models.PassResult) error
	FinishJob(jobID int64, out models.Outcome) error
}

// NopRecorder discards all history.
type NopRecorder struct{}

func (NopRecorder) CreateJob(models.Job) (int64, error)       { return 0, nil }
func (NopRecorder) RecordPass(int64, models.PassResult) error { return nil }
func (NopRecorder) FinishJob(int64, models.Outcome) error     { return nil }

type Controller struct {
	runner   rembg.Runner
	prompter dialog.Prompter
	recorder Recorder
}

func New(runner rembg.Runner, prompter dialog.Prompter, recorder Recorder) *Controller {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Controller{
		runner:   runner,
		prompter: prompter,
		recorder: recorder,
	}
}

// Run executes one job to its terminal state and returns the outcome.
// Passes run strictly one at a time; pass k+1 never starts before pass k's
// subprocess has exited and its output has been verified.
func (c *Controller) Run(ctx context.Context, job models.Job) models.Outcome {
	jobID, err := c.recorder.CreateJob(job)
	if err != nil {
		slog.Debug("history: create job failed", "error", err)
	}

	var out models.Outcome
	switch job.Mode {
	case models.ModeTwoPass:
		out = c.runTwoPass(ctx, jobID, job)
	case models.ModeInfiniteHop:
		out = c.runInfiniteHop(ctx, jobID, job)
	default:
		out = c.runSingle(ctx, jobID, job)
	}

	if err := c.recorder.FinishJob(jobID, out); err != nil {
		slog.Debug("history: finish job failed", "error", err)
	}
	return out
}

func (c *Controller) runSingle(ctx context.Context, jobID int64, job models.Job) models.Outcome {
	outputPath := job.OutputPath
	if outputPath == "" {
		outputPath = naming.SinglePass(job.InputPath, job.OutputSuffix)
	}

	pass := c.runPass(ctx, jobID, 1, job.InputPath, outputPath)
	if !pass.OK {
		return failed(pass)
	}

	return models.Outcome{
		OK:        true,
		Reason:    models.ReasonCompleted,
		FinalPath: outputPath,
		Passes:    []models.PassResult{pass},
	}
}

func (c *Controller) runTwoPass(ctx context.Context, jobID int64, job models.Job) models.Outcome {
	first := c.runPass(ctx, jobID, 1, job.InputPath, naming.TwoPass(job.InputPath, job.OutputSuffix, 1))
	if !first.OK {
		return failed(first)
	}

	// The second pass consumes the first pass's output, not the original.
	second := c.runPass(ctx, jobID, 2, first.OutputPath, naming.TwoPass(job.InputPath, job.OutputSuffix, 2))
	if !second.OK {
		return failed(first, second)
	}

	return models.Outcome{
		OK:        true,
		Reason:    models.ReasonCompleted,
		FinalPath: second.OutputPath,
		Passes:    []models.PassResult{first, second},
	}
}

func (c *Controller) runInfiniteHop(ctx context.Context, jobID int64, job models.Job) models.Outcome {
	var passes []models.PassResult
	inputPath := job.InputPath

	for k := 1; ; k++ {
		pass := c.runPass(ctx, jobID, k, inputPath, naming.InfiniteHop(job.InputPath, job.OutputSuffix, k))
		passes = append(passes, pass)
		if !pass.OK {
			return failed(passes...)
		}

		if job.MaxPasses > 0 && k >= job.MaxPasses {
			return models.Outcome{
				OK:        true,
				Reason:    models.ReasonMaxPasses,
				FinalPath: pass.OutputPath,
				Passes:    passes,
			}
		}

		decision := c.prompter.Ask(ctx, dialog.Question{
			Title: "Quick RMBG - Infinite Hop Mode",
			Message: fmt.Sprintf(
				"Pass %d complete!\n\nResult saved to:\n%s\n\nRun another pass?",
				k, filepath.Base(pass.OutputPath),
			),
		})

		switch decision {
		case dialog.Continue:
			inputPath = pass.OutputPath
		case dialog.Unavailable:
			slog.Debug("no dialog backend available, stopping after this pass")
			return models.Outcome{
				OK:        true,
				Reason:    models.ReasonDialogUnavailable,
				FinalPath: pass.OutputPath,
				Passes:    passes,
			}
		default:
			return models.Outcome{
				OK:        true,
				Reason:    models.ReasonUserSatisfied,
				FinalPath: pass.OutputPath,
				Passes:    passes,
			}
		}
	}
}

func (c *Controller) runPass(ctx context.Context, jobID int64, index int, inputPath, outputPath string) models.PassResult {
	slog.Debug("running pass", "pass", index, "input", inputPath, "output", outputPath)

	res := c.runner.Run(ctx, inputPath, outputPath)
	pass := models.PassResult{
		Index:      index,
		InputPath:  inputPath,
		OutputPath: outputPath,
		OK:         res.OK,
		Error:      res.Error,
		Duration:   res.Duration,
	}

	if err := c.recorder.RecordPass(jobID, pass); err != nil {
		slog.Debug("history: record pass failed", "pass", index, "error", err)
	}
	return pass
}

// failed builds a failure outcome. Earlier successful passes stay in the
// result so their files can be reported as preserved.
func failed(passes ...models.PassResult) models.Outcome {
	return models.Outcome{
		Reason: models.ReasonToolFailure,
		Passes: passes,
	}
}
