package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/ytget/hfs-uploader/internal/model"
	"github.com/ytget/hfs-uploader/internal/upload"
)

// DefaultBarWidth is the progress bar width in cells
const DefaultBarWidth = 30

// IndeterminateLabel is shown instead of a percentage when the total is unknown
const IndeterminateLabel = "N/A"

// Option configures a Terminal
type Option func(*Terminal)

// WithStyles overrides the default color styles
func WithStyles(styles *Styles) Option {
	return func(t *Terminal) {
		t.styles = styles
	}
}

// WithInteractive controls carriage return redraws. Non-interactive output
// only prints one line per state change, which suits log files and pipes.
func WithInteractive(interactive bool) Option {
	return func(t *Terminal) {
		t.interactive = interactive
	}
}

// Summary counts task outcomes seen by a Terminal
type Summary struct {
	Selected  int
	Succeeded int
	Failed    int
	Completed bool
}

// Terminal is an upload.Observer that writes human readable progress
type Terminal struct {
	mu          sync.Mutex
	out         io.Writer
	styles      *Styles
	bar         progress.Model
	interactive bool

	lineOpen    bool
	lastPercent map[string]int
	summary     Summary
}

var (
	_ upload.Observer      = (*Terminal)(nil)
	_ upload.StartObserver = (*Terminal)(nil)
)

// NewTerminal creates a terminal observer writing to out
func NewTerminal(out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		out:         out,
		styles:      NewStyles(),
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(DefaultBarWidth), progress.WithoutPercentage()),
		interactive: true,
		lastPercent: make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Summary returns the outcome counters
func (t *Terminal) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// OnFilesAdded lists the files accepted by the registry
func (t *Terminal) OnFilesAdded(added []model.SelectedFile) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.Selected += len(added)
	t.closeLine()
	if len(added) == 0 {
		t.println(t.styles.Dim.Render("No new files selected"))
		return
	}
	t.println(t.styles.Title.Render(fmt.Sprintf("Selected %d file(s)", len(added))))
	for _, f := range added {
		size := model.FormatFileSize(f.Size)
		if !f.SizeKnown() {
			size = IndeterminateLabel
		}
		t.println(fmt.Sprintf("  %s %s", t.styles.Name.Render(f.Name), t.styles.Dim.Render(size)))
	}
}

// OnTaskStarted prints the task header
func (t *Terminal) OnTaskStarted(task model.UploadTask) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closeLine()
	t.lastPercent[task.ID] = -1
	label := fmt.Sprintf("Uploading %s (%s)", t.styles.Name.Render(task.GetDisplayName()), task.GetSizeString())
	if task.Attempt > 1 {
		label += t.styles.Dim.Render(fmt.Sprintf(" attempt %d", task.Attempt))
	}
	t.println(label)
}

// OnProgress redraws the progress line of the active task
func (t *Terminal) OnProgress(task model.UploadTask, p model.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.interactive {
		return
	}

	percent, ok := p.Percent()
	if !ok {
		percent = -1
	}
	// redraw on percent change only; indeterminate lines always redraw
	if last, seen := t.lastPercent[task.ID]; seen && ok && last == percent {
		return
	}
	t.lastPercent[task.ID] = percent

	fmt.Fprintf(t.out, "\r  %s", t.renderProgress(p))
	t.lineOpen = true
}

// OnTaskSucceeded prints a success line
func (t *Terminal) OnTaskSucceeded(task model.UploadTask, isLast bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.Succeeded++
	delete(t.lastPercent, task.ID)
	t.closeLine()
	t.println(t.styles.Success.Render("✓ " + task.GetDisplayName() + " uploaded"))
}

// OnTaskFailed prints a failure line
func (t *Terminal) OnTaskFailed(task model.UploadTask, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.Failed++
	delete(t.lastPercent, task.ID)
	t.closeLine()
	t.println(t.styles.Error.Render(fmt.Sprintf("✗ %s: %v", task.GetDisplayName(), err)))
}

// OnBatchComplete prints the final summary line
func (t *Terminal) OnBatchComplete() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.Completed = true
	t.closeLine()
	msg := fmt.Sprintf("All uploads finished: %d succeeded", t.summary.Succeeded)
	if t.summary.Failed > 0 {
		t.println(t.styles.Warning.Render(fmt.Sprintf("%s, %d failed", msg, t.summary.Failed)))
		return
	}
	t.println(t.styles.Success.Render(msg))
}

// Halted prints the failed task and how to continue
func (t *Terminal) Halted(task model.UploadTask) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closeLine()
	t.println(t.styles.Warning.Render(fmt.Sprintf("Queue halted at %s; remaining files were not uploaded", task.GetDisplayName())))
}

func (t *Terminal) renderProgress(p model.Progress) string {
	sent := model.FormatFileSize(p.Sent)
	frac, ok := p.Fraction()
	if !ok {
		return fmt.Sprintf("%s %s", IndeterminateLabel, t.styles.Dim.Render(sent+" sent"))
	}
	percent, _ := p.Percent()
	return fmt.Sprintf("%s %3d%% %s", t.bar.ViewAs(frac), percent,
		t.styles.Dim.Render(sent+" / "+model.FormatFileSize(p.Total)))
}

func (t *Terminal) closeLine() {
	if t.lineOpen {
		fmt.Fprintln(t.out)
		t.lineOpen = false
	}
}

func (t *Terminal) println(line string) {
	fmt.Fprintln(t.out, strings.TrimRight(line, " "))
}
