// Package rembg invokes the external rembg CLI for single background
// removal passes.
package rembg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result is the outcome of one rembg invocation. Failures are reported
// here, never as panics or returned errors.
type Result struct {
	OK       bool
	Error    string
	Duration time.Duration
}

// Runner runs rembg once per call, blocking until the subprocess exits.
type Runner interface {
	Run(ctx context.Context, inputPath, outputPath string) Result
}

// ExecRunner invokes the real rembg binary via os/exec.
type ExecRunner struct {
	Binary  string
	Model   string
	RocmGfx string // sets HSA_OVERRIDE_GFX_VERSION when non-empty
	Timeout time.Duration
}

func NewExecRunner(binary, model, rocmGfx string, timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		Binary:  binary,
		Model:   model,
		RocmGfx: rocmGfx,
		Timeout: timeout,
	}
}

// Run executes `rembg i <input> <output> -m <model>` and reports success
// only when the process exits zero and the output file exists afterward.
func (r *ExecRunner) Run(ctx context.Context, inputPath, outputPath string) Result {
	start := time.Now()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Binary, "i", inputPath, outputPath, "-m", r.Model)
	cmd.Env = os.Environ()
	if r.RocmGfx != "" {
		cmd.Env = append(cmd.Env, "HSA_OVERRIDE_GFX_VERSION="+r.RocmGfx)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Error:    fmt.Sprintf("operation timed out (>%s)", r.Timeout),
			Duration: elapsed,
		}
	}
	if err != nil {
		return Result{
			Error:    diagnostic(stderr.String(), stdout.String(), err),
			Duration: elapsed,
		}
	}

	if _, err := os.Stat(outputPath); err != nil {
		return Result{
			Error:    "rembg completed but output file is missing: " + outputPath,
			Duration: elapsed,
		}
	}

	return Result{OK: true, Duration: elapsed}
}

// diagnostic picks the most useful failure text, preferring stderr.
func diagnostic(stderr, stdout string, err error) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(stdout); s != "" {
		return s
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}
