package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/quickrmbg/quick-rmbg/internal/config"
	"github.com/quickrmbg/quick-rmbg/internal/controller"
	"github.com/quickrmbg/quick-rmbg/internal/dialog"
	"github.com/quickrmbg/quick-rmbg/internal/models"
	"github.com/quickrmbg/quick-rmbg/internal/notify"
	"github.com/quickrmbg/quick-rmbg/internal/rembg"
	"github.com/quickrmbg/quick-rmbg/internal/storage"
	"github.com/spf13/cobra"
)

var errJobFailed = errors.New("background removal failed")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts jobOptions

	rootCmd := &cobra.Command{
		Use:   "quick-rmbg <image>",
		Short: "Quick background removal for images",
		Long: `Quick RMBG removes the background from an image by calling the external
rembg tool. It supports a single pass, a fixed two-pass chain, and an
interactive "infinite hop" mode that keeps running passes until you are
happy with the result.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, args[0], opts)
		},
	}

	debugLogging := rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (single-pass only, default: input_noBG.png)")
	rootCmd.Flags().StringVarP(&opts.model, "model", "m", "", "Override the configured rembg model for this run")
	rootCmd.Flags().BoolVar(&opts.twoPass, "two-pass", false, "Run background removal twice for better results")
	rootCmd.Flags().BoolVar(&opts.infiniteHop, "infinite-hop", false, "Run background removal repeatedly until you're happy with the result")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress all output and notifications")
	rootCmd.Flags().BoolVar(&opts.noNotify, "no-notify", false, "Print the result to stdout instead of a desktop notification")

	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

type jobOptions struct {
	output      string
	model       string
	twoPass     bool
	infiniteHop bool
	quiet       bool
	noNotify    bool
}

func (o jobOptions) mode() models.Mode {
	switch {
	case o.twoPass:
		return models.ModeTwoPass
	case o.infiniteHop:
		return models.ModeInfiniteHop
	default:
		return models.ModeSingle
	}
}

func runJob(cmd *cobra.Command, inputArg string, opts jobOptions) error {
	if opts.twoPass && opts.infiniteHop {
		return fmt.Errorf("cannot use --two-pass and --infinite-hop together")
	}
	if opts.output != "" && (opts.twoPass || opts.infiniteHop) {
		return fmt.Errorf("-o only applies to single-pass mode")
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using defaults\n", err)
	}

	inputPath, err := filepath.Abs(inputArg)
	if err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("file not found: %s", inputArg)
	}
	if !rembg.SupportedFormat(inputPath) {
		return fmt.Errorf("unsupported format: %s", filepath.Ext(inputPath))
	}

	binary, err := rembg.Resolve(settings.RembgBinary)
	if err != nil {
		return err
	}
	slog.Debug("resolved rembg", "binary", binary)

	model := settings.Model
	if opts.model != "" {
		model = opts.model
	}

	job := models.Job{
		InputPath:    inputPath,
		Mode:         opts.mode(),
		Model:        model,
		OutputSuffix: settings.OutputSuffix,
		OutputPath:   opts.output,
		Quiet:        opts.quiet,
		Notify:       !opts.noNotify,
		MaxPasses:    settings.MaxPasses,
	}

	var recorder controller.Recorder = controller.NopRecorder{}
	if err := cfg.EnsureDirs(); err == nil {
		if store, err := storage.New(cfg.DBPath); err == nil {
			defer store.Close()
			recorder = store
		} else {
			slog.Debug("history unavailable", "error", err)
		}
	} else {
		slog.Debug("history unavailable", "error", err)
	}

	runner := rembg.NewExecRunner(binary, model, settings.RocmGfx(), time.Duration(settings.TimeoutSeconds)*time.Second)
	ctrl := controller.New(runner, dialog.NewPrompter(), recorder)

	out := ctrl.Run(cmd.Context(), job)

	report(cmd, job, out)

	if !out.OK {
		return errJobFailed
	}
	return nil
}

// report delivers the final outcome: desktop notification by default,
// stdout with --no-notify, nothing at all with --quiet.
func report(cmd *cobra.Command, job models.Job, out models.Outcome) {
	if job.Quiet {
		return
	}

	message := notify.Summary(job.Mode, out)
	if !job.Notify {
		fmt.Println(message)
		return
	}

	notify.New().Send(cmd.Context(), notify.Title(job.Mode), message, out.OK)
}
