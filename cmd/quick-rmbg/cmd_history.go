package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quickrmbg/quick-rmbg/internal/config"
	"github.com/quickrmbg/quick-rmbg/internal/storage"
	"github.com/quickrmbg/quick-rmbg/internal/tui"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var plain bool
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past background removal jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			if plain {
				return printJobList(store, limit)
			}

			app := tui.NewApp(store, limit)
			p := tea.NewProgram(app, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print a plain text listing instead of the interactive browser")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of jobs to show")

	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryDeleteCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one job and its passes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job ID: %w", err)
			}

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(jobID)
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			fmt.Printf("Job #%d: %s\n", job.ID, job.InputPath)
			fmt.Printf("Mode: %s\n", job.Mode)
			fmt.Printf("Model: %s\n", job.Model)
			fmt.Printf("Status: %s\n", job.Status)
			if job.Reason != "" {
				fmt.Printf("Reason: %s\n", job.Reason)
			}
			if job.FinalPath != "" {
				fmt.Printf("Final: %s\n", job.FinalPath)
			}
			if job.Error != "" {
				fmt.Printf("Error: %s\n", job.Error)
			}

			passes, err := store.GetPassesForJob(jobID)
			if err != nil {
				return err
			}

			if len(passes) > 0 {
				fmt.Println("\nPasses:")
				for _, pass := range passes {
					status := "ok"
					if !pass.OK {
						status = "failed: " + pass.Error
					}
					duration := time.Duration(pass.DurationMS) * time.Millisecond
					fmt.Printf("  %d. %s [%s, %s]\n", pass.PassNum, filepath.Base(pass.OutputPath), status, duration)
				}
			}

			return nil
		},
	}
}

func newHistoryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job ID: %w", err)
			}

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteJob(jobID); err != nil {
				return fmt.Errorf("failed to delete job: %w", err)
			}

			fmt.Printf("Deleted job #%d\n", jobID)
			return nil
		},
	}
}

func openStorage() (*storage.Storage, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return store, nil
}

func printJobList(store *storage.Storage, limit int) error {
	jobs, err := store.ListJobs(limit)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}

	for _, job := range jobs {
		fmt.Printf("#%d %s [%s] %s %s\n",
			job.ID, filepath.Base(job.InputPath), job.Status, job.Mode,
			storage.FormatTimeAgo(job.CreatedAt))
	}

	return nil
}
