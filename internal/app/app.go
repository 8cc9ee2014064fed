package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-combobox/internal/backend"
	"github.com/atomicstack/popup-combobox/internal/combobox"
	"github.com/atomicstack/popup-combobox/internal/page"
	"github.com/atomicstack/popup-combobox/internal/ui"
)

// ErrCancelled is returned when the user leaves without submitting.
var ErrCancelled = errors.New("cancelled")

// Config describes user-provided application options.
type Config struct {
	PagePath     string
	ValuesPath   string
	PollInterval time.Duration
	Width        int
	Height       int
	MaxRows      int
	ShowFooter   bool
	Verbose      bool
	Placeholder  string
	Output       string
}

// Run loads the page, runs the Bubble Tea program on stderr and writes the
// submitted values to out.
func Run(cfg Config, out io.Writer) error {
	def, err := page.Load(cfg.PagePath)
	if err != nil {
		return err
	}
	p, err := page.New(def, combobox.Options{Placeholder: cfg.Placeholder})
	if err != nil {
		return fmt.Errorf("build page: %w", err)
	}
	defer p.Close()

	var watcher *backend.Watcher
	if cfg.ValuesPath != "" {
		watcher = backend.NewWatcher(cfg.ValuesPath, cfg.PollInterval)
		defer watcher.Stop()
	}

	model := ui.NewModel(p, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		MaxRows:    cfg.MaxRows,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Watcher:    watcher,
	})
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	res := model.Result()
	if !res.Submitted {
		return ErrCancelled
	}
	return WriteResult(out, cfg.Output, res.Values)
}
