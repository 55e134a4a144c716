package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hfs-uploader/internal/model"
)

// TaskRow renders one selected file and the state of its upload
type TaskRow struct {
	widget.BaseWidget

	task         model.UploadTask
	localization *Localization

	titleLabel   *widget.Label
	sizeLabel    *widget.Label
	statusLabel  *widget.Label
	percentLabel *widget.Label
	bar          *widget.ProgressBar
	spinner      *widget.ProgressBarInfinite
	deleteBtn    *widget.Button

	onDelete func(name string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(localization *Localization) *TaskRow {
	tr := &TaskRow{localization: localization}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	return tr
}

// SetOnDelete sets the callback invoked with the remote file name
func (tr *TaskRow) SetOnDelete(onDelete func(name string)) {
	tr.onDelete = onDelete
}

// Task returns the task currently shown
func (tr *TaskRow) Task() model.UploadTask {
	return tr.task
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task model.UploadTask) {
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.sizeLabel = widget.NewLabel("")
	tr.sizeLabel.Alignment = fyne.TextAlignTrailing
	tr.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing

	tr.percentLabel = widget.NewLabel("")
	tr.percentLabel.Alignment = fyne.TextAlignTrailing

	tr.bar = widget.NewProgressBar()
	tr.bar.TextFormatter = func() string { return "" }
	tr.spinner = widget.NewProgressBarInfinite()
	tr.spinner.Hide()

	tr.deleteBtn = widget.NewButton(tr.localization.GetText(KeyDelete), func() {
		if tr.onDelete != nil && tr.task.Status == model.TaskStatusSucceeded {
			tr.onDelete(tr.task.File.Name)
		}
	})
	tr.deleteBtn.Importance = widget.DangerImportance
	tr.deleteBtn.Hide()
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	title := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(tr.task.GetDisplayName())
	tr.titleLabel.SetText(strings.TrimSpace(title))
	tr.sizeLabel.SetText(tr.task.GetSizeString())
	tr.deleteBtn.SetText(tr.localization.GetText(KeyDelete))

	switch tr.task.Status {
	case model.TaskStatusFailed:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + tr.localization.GetText(KeyStatusFailed))
	case model.TaskStatusSucceeded:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(IconDone + " " + tr.localization.GetText(KeyStatusSucceeded))
	case model.TaskStatusInProgress:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconUpload + " " + tr.localization.GetText(KeyStatusInProgress))
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconPending + " " + tr.localization.GetText(KeyStatusPending))
	}

	tr.updateProgress()

	if tr.task.Status == model.TaskStatusSucceeded {
		tr.deleteBtn.Show()
	} else {
		tr.deleteBtn.Hide()
	}
}

// updateProgress switches between the determinate bar and the spinner.
// Only an in-flight task with an unknown total gets the spinner.
func (tr *TaskRow) updateProgress() {
	p := tr.task.Progress()
	if tr.task.Status == model.TaskStatusSucceeded {
		p = model.Progress{Sent: 1, Total: 1}
	}

	if tr.task.Status == model.TaskStatusInProgress && p.Indeterminate() {
		tr.bar.Hide()
		tr.spinner.Show()
		tr.spinner.Start()
		tr.percentLabel.SetText(DashPlaceholder)
		return
	}

	tr.spinner.Stop()
	tr.spinner.Hide()
	tr.bar.Show()

	frac, ok := p.Fraction()
	if !ok || tr.task.Status == model.TaskStatusPending {
		tr.bar.SetValue(0)
		tr.percentLabel.SetText("")
		return
	}
	tr.bar.SetValue(frac)
	percent, _ := p.Percent()
	tr.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	// fixed widths keep the columns aligned between rows
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	progress := fixedWidth(ProgressBarWidth, container.NewStack(tr.bar, tr.spinner))
	info := container.NewHBox(
		fixedWidth(SizeLabelWidth, tr.sizeLabel),
		progress,
		fixedWidth(PercentLabelWidth, tr.percentLabel),
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		tr.deleteBtn,
	)
	row := container.NewBorder(nil, widget.NewSeparator(), nil, info, tr.titleLabel)
	return widget.NewSimpleRenderer(row)
}

// MinSize keeps rows usable on narrow windows
func (tr *TaskRow) MinSize() fyne.Size {
	size := tr.BaseWidget.MinSize()
	return fyne.NewSize(max(size.Width, RowMinWidth), max(size.Height, RowMinHeight))
}
