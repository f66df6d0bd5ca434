package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/quickrmbg/quick-rmbg/internal/models"
	"github.com/quickrmbg/quick-rmbg/internal/storage"
)

type View int

const (
	ViewJobList View = iota
	ViewJobDetail
)

type App struct {
	store *storage.Storage
	limit int

	view            View
	jobs            []*models.JobRecord
	selectedIdx     int
	selectedJob     *models.JobRecord
	passes          []*models.PassRecord
	selectedPassIdx int

	width  int
	height int
	err    error
}

func NewApp(store *storage.Storage, limit int) *App {
	if limit <= 0 {
		limit = 20
	}
	return &App{
		store: store,
		limit: limit,
		view:  ViewJobList,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadJobs
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case jobsLoadedMsg:
		a.jobs = msg.jobs
		a.err = msg.err
		return a, nil

	case jobDetailMsg:
		a.selectedJob = msg.job
		a.passes = msg.passes
		a.err = msg.err
		if a.err == nil {
			a.view = ViewJobDetail
		}
		return a, nil

	case jobDeletedMsg:
		a.err = msg.err
		if a.selectedIdx >= len(a.jobs)-1 && a.selectedIdx > 0 {
			a.selectedIdx--
		}
		return a, a.loadJobs
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewJobList:
		return a.handleJobListKey(msg)
	case ViewJobDetail:
		return a.handleJobDetailKey(msg)
	}
	return a, nil
}

func (a *App) handleJobListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.selectedIdx > 0 {
			a.selectedIdx--
		}

	case "down", "j":
		if a.selectedIdx < len(a.jobs)-1 {
			a.selectedIdx++
		}

	case "enter":
		if len(a.jobs) > 0 && a.selectedIdx < len(a.jobs) {
			return a, a.loadJobDetail(a.jobs[a.selectedIdx].ID)
		}

	case "r":
		return a, a.loadJobs

	case "d":
		if len(a.jobs) > 0 && a.selectedIdx < len(a.jobs) {
			return a, a.deleteJob(a.jobs[a.selectedIdx].ID)
		}
	}

	return a, nil
}

func (a *App) handleJobDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.view = ViewJobList
		a.selectedJob = nil
		a.passes = nil
		a.selectedPassIdx = 0

	case "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.selectedPassIdx > 0 {
			a.selectedPassIdx--
		}

	case "down", "j":
		if a.selectedPassIdx < len(a.passes)-1 {
			a.selectedPassIdx++
		}
	}

	return a, nil
}

func (a *App) View() string {
	switch a.view {
	case ViewJobList:
		return a.viewJobList()
	case ViewJobDetail:
		return a.viewJobDetail()
	}
	return ""
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	statusComplete = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusRunning  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func (a *App) viewJobList() string {
	s := titleStyle.Render("Quick RMBG History") + "\n\n"

	if a.err != nil {
		s += fmt.Sprintf("Error: %v\n", a.err)
	}

	if len(a.jobs) == 0 {
		s += "No jobs recorded yet.\n"
	} else {
		s += "Recent Jobs\n"
		s += "───────────\n"

		for i, job := range a.jobs {
			line := a.formatJobLine(job)
			if i == a.selectedIdx {
				line = selectedStyle.Render("▶ " + line)
			} else if job.Status != models.JobStatusRunning {
				line = "  " + dimStyle.Render(line)
			} else {
				line = "  " + line
			}
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("[enter] view  [d] delete  [r] refresh  [q] quit")

	return s
}

func (a *App) formatJobLine(job *models.JobRecord) string {
	status := a.formatStatus(job.Status)
	age := a.formatAge(job.CreatedAt)
	name := truncate(filepath.Base(job.InputPath), 30)
	return fmt.Sprintf("#%-3d %-30s %-13s %s  %-6s", job.ID, name, string(job.Mode), status, age)
}

func (a *App) formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		days := int(d.Hours() / 24)
		return fmt.Sprintf("%dd", days)
	}
}

func (a *App) formatStatus(status models.JobStatus) string {
	switch status {
	case models.JobStatusComplete:
		return statusComplete.Render("✓ complete")
	case models.JobStatusFailed:
		return statusFailed.Render("✗ failed")
	case models.JobStatusRunning:
		return statusRunning.Render("● running")
	default:
		return string(status)
	}
}

func (a *App) viewJobDetail() string {
	if a.selectedJob == nil {
		return "No job selected"
	}

	job := a.selectedJob

	header := fmt.Sprintf("Job #%d: %s", job.ID, filepath.Base(job.InputPath))
	s := titleStyle.Render(header) + "  " + a.formatStatus(job.Status) + "\n\n"

	s += labelStyle.Render("Input:  ") + job.InputPath + "\n"
	s += labelStyle.Render("Mode:   ") + string(job.Mode) + "  " + labelStyle.Render("Model: ") + job.Model + "\n"
	if job.Reason != "" {
		s += labelStyle.Render("Reason: ") + string(job.Reason) + "\n"
	}
	if job.FinalPath != "" {
		s += labelStyle.Render("Final:  ") + job.FinalPath + "\n"
	}
	if job.Error != "" {
		s += labelStyle.Render("Error:  ") + statusFailed.Render(job.Error) + "\n"
	}
	s += "\n"

	s += "Passes\n"
	s += "──────\n"

	if len(a.passes) == 0 {
		s += "(no passes recorded)\n"
	} else {
		for i, pass := range a.passes {
			status := statusComplete.Render("✓")
			if !pass.OK {
				status = statusFailed.Render("✗")
			}

			duration := dimStyle.Render(formatDuration(time.Duration(pass.DurationMS) * time.Millisecond))

			line := fmt.Sprintf("%d. %s  %6s  %s", pass.PassNum, status, duration, filepath.Base(pass.OutputPath))
			if !pass.OK && pass.Error != "" {
				line += "  " + statusFailed.Render(truncate(pass.Error, 40))
			}

			if i == a.selectedPassIdx {
				line = selectedStyle.Render("▶ " + line)
			} else {
				line = "  " + line
			}
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("[↑/↓] select  [esc] back  [q] quit")

	return s
}

// Messages

type jobsLoadedMsg struct {
	jobs []*models.JobRecord
	err  error
}

type jobDetailMsg struct {
	job    *models.JobRecord
	passes []*models.PassRecord
	err    error
}

type jobDeletedMsg struct {
	jobID int64
	err   error
}

// Commands

func (a *App) loadJobs() tea.Msg {
	jobs, err := a.store.ListJobs(a.limit)
	return jobsLoadedMsg{jobs: jobs, err: err}
}

func (a *App) loadJobDetail(id int64) tea.Cmd {
	return func() tea.Msg {
		job, err := a.store.GetJob(id)
		if err != nil {
			return jobDetailMsg{err: err}
		}

		passes, err := a.store.GetPassesForJob(id)
		return jobDetailMsg{job: job, passes: passes, err: err}
	}
}

func (a *App) deleteJob(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.DeleteJob(id); err != nil {
			return jobDeletedMsg{err: err}
		}
		return jobDeletedMsg{jobID: id}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
