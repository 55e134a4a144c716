package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hfs-uploader/internal/config"
	"github.com/ytget/hfs-uploader/internal/model"
	"github.com/ytget/hfs-uploader/internal/platform"
	"github.com/ytget/hfs-uploader/internal/transport"
	"github.com/ytget/hfs-uploader/internal/upload"
)

// TransportFactory builds the transport used for one upload request
type TransportFactory func(target string, strict bool) (upload.Transport, error)

// NewHTTPTransportFactory returns a factory producing HTTP transports
func NewHTTPTransportFactory(logger *slog.Logger) TransportFactory {
	return func(target string, strict bool) (upload.Transport, error) {
		return transport.NewHTTPTransport(target,
			transport.WithStrictStatus(strict),
			transport.WithLogger(logger),
		)
	}
}

// RootOption configures a RootUI
type RootOption func(*RootUI)

// WithTransportFactory replaces the HTTP transport factory
func WithTransportFactory(factory TransportFactory) RootOption {
	return func(ui *RootUI) {
		ui.newTransport = factory
	}
}

// RootUI represents the main UI structure. It is the observer of the
// current upload queue and starts a fresh queue once a batch completes.
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	newTransport TransportFactory

	ctx    context.Context
	cancel context.CancelFunc

	// selectMu orders selections against queue swaps
	selectMu sync.Mutex

	mu           sync.Mutex
	queue        *upload.Queue
	advance      bool
	rows         []model.UploadTask
	rowIndex     map[string]int
	finished     bool
	halted       bool
	message      string
	lastUIUpdate time.Time

	// widgets
	addFileBtn   *widget.Button
	addFolderBtn *widget.Button
	uploadBtn    *widget.Button
	retryBtn     *widget.Button
	skipBtn      *widget.Button
	targetLabel  *widget.Label
	messageLabel *widget.Label
	taskList     *widget.List
}

var (
	_ upload.Observer      = (*RootUI)(nil)
	_ upload.StartObserver = (*RootUI)(nil)
)

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, opts ...RootOption) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		newTransport: NewHTTPTransportFactory(slog.Default()),
		ctx:          ctx,
		cancel:       cancel,
		rowIndex:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(ui)
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetOnDropped(ui.onDropped)
	window.SetOnClosed(ui.cancel)

	ui.resetQueue(false)
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.addFileBtn = widget.NewButton(IconFile+" "+ui.localization.GetText(KeySelectFiles), ui.onAddFileClick)
	ui.addFolderBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeySelectFolder), ui.onAddFolderClick)
	ui.uploadBtn = widget.NewButton(IconUpload+" "+ui.localization.GetText(KeyUpload), ui.onUploadClick)
	ui.uploadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.retryBtn = widget.NewButton(ui.localization.GetText(KeyRetry), ui.onRetryClick)
	ui.skipBtn = widget.NewButton(ui.localization.GetText(KeySkip), ui.onSkipClick)
	ui.retryBtn.Hide()
	ui.skipBtn.Hide()

	ui.targetLabel = widget.NewLabel(ui.settings.GetTargetURL())
	ui.targetLabel.Truncation = fyne.TextTruncateEllipsis

	ui.messageLabel = widget.NewLabel(ui.localization.GetText(KeyDropHint))
	ui.messageLabel.Wrapping = fyne.TextWrapWord

	topPanel := container.NewBorder(nil, nil,
		container.NewHBox(settingsBtn, ui.addFileBtn, ui.addFolderBtn),
		ui.uploadBtn,
		ui.targetLabel,
	)
	bottomPanel := container.NewBorder(nil, nil, nil,
		container.NewHBox(ui.retryBtn, ui.skipBtn),
		ui.messageLabel,
	)

	ui.taskList = widget.NewList(
		ui.rowCount,
		func() fyne.CanvasObject {
			row := NewTaskRow(ui.localization)
			row.SetOnDelete(ui.onDeleteFile)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if task, ok := ui.rowAt(id); ok {
				obj.(*TaskRow).UpdateTask(task)
			}
		},
	)

	content := container.NewBorder(topPanel, bottomPanel, nil, nil, ui.taskList)
	ui.window.SetContent(content)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.addFileBtn.SetText(IconFile + " " + ui.localization.GetText(KeySelectFiles))
	ui.addFolderBtn.SetText(IconFolder + " " + ui.localization.GetText(KeySelectFolder))
	ui.uploadBtn.SetText(IconUpload + " " + ui.localization.GetText(KeyUpload))
	ui.retryBtn.SetText(ui.localization.GetText(KeyRetry))
	ui.skipBtn.SetText(ui.localization.GetText(KeySkip))
	ui.taskList.Refresh()
}

// resetQueue starts a new selection session with the current settings.
// Files selected after the previous batch started move to the new queue.
// batchDone marks the rows finished unless such files were carried over.
func (ui *RootUI) resetQueue(batchDone bool) {
	ui.selectMu.Lock()
	defer ui.selectMu.Unlock()

	var carried []model.SelectedFile
	if old := ui.currentQueue(); old != nil {
		carried = old.Pending()
	}

	advance := ui.settings.GetAdvanceOnFailure()
	queue := upload.NewQueue(&settingsTransport{ui: ui}, ui, upload.WithAdvanceOnFailure(advance))

	ui.mu.Lock()
	ui.queue = queue
	ui.advance = advance
	ui.halted = false
	if batchDone {
		ui.finished = len(carried) == 0
	}
	ui.mu.Unlock()

	if len(carried) > 0 {
		log.Printf("Carrying %d pending file(s) to the next queue", len(carried))
		queue.Select(carried...)
	}
}

// AddFiles registers files with the current queue. A selection made after a
// completed batch clears the finished rows first.
func (ui *RootUI) AddFiles(files ...model.SelectedFile) {
	ui.selectMu.Lock()
	defer ui.selectMu.Unlock()

	ui.mu.Lock()
	if ui.finished {
		ui.rows = nil
		ui.rowIndex = make(map[string]int)
		ui.finished = false
	}
	queue := ui.queue
	ui.mu.Unlock()

	queue.Select(files...)
}

// Rows returns a snapshot of the rows shown in the list
func (ui *RootUI) Rows() []model.UploadTask {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return append([]model.UploadTask(nil), ui.rows...)
}

// Message returns the current status message
func (ui *RootUI) Message() string {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.message
}

// IsHalted reports whether a failed upload is holding the queue
func (ui *RootUI) IsHalted() bool {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.halted
}

func (ui *RootUI) currentQueue() *upload.Queue {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.queue
}

func (ui *RootUI) rowCount() int {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return len(ui.rows)
}

func (ui *RootUI) rowAt(id int) (model.UploadTask, bool) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if id < 0 || id >= len(ui.rows) {
		return model.UploadTask{}, false
	}
	return ui.rows[id], true
}

// setRowLocked replaces the row of the task's file. Callers hold ui.mu.
func (ui *RootUI) setRowLocked(task model.UploadTask) {
	if i, ok := ui.rowIndex[task.File.Name]; ok {
		ui.rows[i] = task
	}
}

// OnFilesAdded shows a pending row per newly registered file. A file that
// already has a row, such as one carried to a new queue, reuses it.
func (ui *RootUI) OnFilesAdded(added []model.SelectedFile) {
	ui.mu.Lock()
	for _, f := range added {
		task := *model.NewUploadTask(f)
		if i, ok := ui.rowIndex[f.Name]; ok {
			ui.rows[i] = task
			continue
		}
		ui.rowIndex[f.Name] = len(ui.rows)
		ui.rows = append(ui.rows, task)
	}
	if len(added) == 0 {
		ui.message = ui.localization.GetText(KeyNoNewFiles)
	} else {
		ui.message = ui.localization.Format(KeyFilesAdded, len(added))
	}
	ui.mu.Unlock()

	log.Printf("Files added: %d", len(added))
	ui.refresh()
}

// OnTaskStarted marks the row as uploading
func (ui *RootUI) OnTaskStarted(task model.UploadTask) {
	ui.mu.Lock()
	ui.setRowLocked(task)
	ui.halted = false
	ui.mu.Unlock()

	ui.refresh()
}

// OnProgress updates the row progress, debounced to keep the UI responsive
func (ui *RootUI) OnProgress(task model.UploadTask, progress model.Progress) {
	ui.mu.Lock()
	ui.setRowLocked(task)
	now := time.Now()
	if !progress.Complete() && now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		ui.mu.Unlock()
		return
	}
	ui.lastUIUpdate = now
	ui.mu.Unlock()

	ui.refresh()
}

// OnTaskSucceeded marks the row as done
func (ui *RootUI) OnTaskSucceeded(task model.UploadTask, isLast bool) {
	ui.mu.Lock()
	ui.setRowLocked(task)
	ui.message = ui.localization.Format(KeyUploaded, task.GetDisplayName())
	ui.mu.Unlock()

	log.Printf("Upload succeeded: %s (last=%v)", task.File.Name, isLast)
	ui.refresh()
}

// OnTaskFailed marks the row as failed and offers retry or skip when the
// queue is halted on it
func (ui *RootUI) OnTaskFailed(task model.UploadTask, err error) {
	ui.mu.Lock()
	ui.setRowLocked(task)
	if ui.advance {
		cause := err
		var transportErr *upload.TransportError
		if errors.As(err, &transportErr) {
			cause = transportErr.Err
		}
		ui.message = ui.localization.Format(KeyUploadFailed, task.GetDisplayName(), cause)
	} else {
		ui.halted = true
		ui.message = ui.localization.Format(KeyQueueHalted, task.GetDisplayName())
	}
	ui.mu.Unlock()

	log.Printf("Upload failed: %s: %v", task.File.Name, err)
	ui.refresh()
}

// OnBatchComplete reports the finished batch and starts a new queue
func (ui *RootUI) OnBatchComplete() {
	ui.resetQueue(true)

	ui.mu.Lock()
	ui.message = ui.localization.GetText(KeyAllUploaded)
	ui.mu.Unlock()

	ui.refresh()
}

// refresh pushes the current state to the widgets on the UI goroutine
func (ui *RootUI) refresh() {
	if ui.taskList == nil {
		return
	}

	ui.mu.Lock()
	message := ui.message
	halted := ui.halted
	queue := ui.queue
	ui.mu.Unlock()
	busy := queue.State() == upload.StateRunning || halted

	fyne.Do(func() {
		if message != "" {
			ui.messageLabel.SetText(message)
		}
		if halted {
			ui.retryBtn.Show()
			ui.skipBtn.Show()
		} else {
			ui.retryBtn.Hide()
			ui.skipBtn.Hide()
		}
		if busy {
			ui.uploadBtn.Disable()
		} else {
			ui.uploadBtn.Enable()
		}
		ui.targetLabel.SetText(ui.settings.GetTargetURL())
		ui.taskList.Refresh()
	})
}

func (ui *RootUI) setMessage(message string) {
	ui.mu.Lock()
	ui.message = message
	ui.mu.Unlock()
	ui.refresh()
}

// onUploadClick starts the upload of every registered file
func (ui *RootUI) onUploadClick() {
	err := ui.currentQueue().Upload(ui.ctx)
	switch {
	case err == nil:
		ui.setMessage(ui.localization.GetText(KeyUploadStarted))
	case errors.Is(err, upload.ErrNothingToUpload):
		ui.setMessage(ui.localization.GetText(KeyNothingToUpload))
	default:
		log.Printf("Upload not started: %v", err)
	}
}

// onRetryClick re-issues the failed upload
func (ui *RootUI) onRetryClick() {
	if err := ui.currentQueue().Retry(); err != nil {
		log.Printf("Retry failed: %v", err)
		return
	}
	ui.mu.Lock()
	ui.halted = false
	ui.mu.Unlock()
	ui.refresh()
}

// onSkipClick abandons the failed upload. Skipping the last file ends the
// batch without a completion message; the next selection starts a new queue.
func (ui *RootUI) onSkipClick() {
	queue := ui.currentQueue()
	if err := queue.Skip(); err != nil {
		log.Printf("Skip failed: %v", err)
		return
	}

	ui.mu.Lock()
	ui.halted = false
	ui.mu.Unlock()

	if queue.State() == upload.StateDone {
		ui.resetQueue(true)
	}
	ui.refresh()
}

// onDeleteFile removes an uploaded file from the server
func (ui *RootUI) onDeleteFile(name string) {
	deleter, err := transport.NewDeleter(ui.settings.GetTargetURL(), ui.onDeleted)
	if err != nil {
		log.Printf("Delete not possible: %v", err)
		return
	}
	deleter.Delete(ui.ctx, url.PathEscape(name))
}

func (ui *RootUI) onDeleted(path string) {
	name, err := url.PathUnescape(path)
	if err != nil {
		name = path
	}
	ui.setMessage(ui.localization.Format(KeyDeleted, name))
}

// onDropped registers files dragged onto the window
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		if u.Scheme() == "file" {
			paths = append(paths, u.Path())
		}
	}
	ui.addPaths(paths)
}

func (ui *RootUI) addPaths(paths []string) {
	if len(paths) == 0 {
		return
	}
	files, err := platform.CollectFiles(paths, false)
	if err != nil {
		log.Printf("Cannot add files: %v", err)
		dialog.ShowError(err, ui.window)
		return
	}
	ui.AddFiles(files...)
}

// onAddFileClick opens the file picker
func (ui *RootUI) onAddFileClick() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		uri := reader.URI()
		reader.Close()

		if parent, err := storage.Parent(uri); err == nil {
			ui.settings.SetLastDirectory(parent.Path())
		}
		ui.AddFiles(fileFromURI(uri))
	}, ui.window)
	ui.setPickerLocation(d)
	d.Show()
}

// onAddFolderClick adds every regular file of a folder
func (ui *RootUI) onAddFolderClick() {
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		ui.settings.SetLastDirectory(dir.Path())
		ui.addPaths([]string{dir.Path()})
	}, ui.window)
	ui.setPickerLocation(d)
	d.Show()
}

func (ui *RootUI) setPickerLocation(d *dialog.FileDialog) {
	dir := ui.settings.GetLastDirectory()
	if dir == "" {
		var err error
		if dir, err = platform.GetDefaultPickerDir(); err != nil {
			return
		}
	}
	if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
		d.SetLocation(lister)
	}
}

// fileFromURI prefers a local path so the size is known. Content providers
// without one are streamed with an unknown size.
func fileFromURI(uri fyne.URI) model.SelectedFile {
	if uri.Scheme() == "file" {
		if f, err := model.NewFileFromPath(uri.Path()); err == nil {
			return f
		}
	}
	return model.NewFileFromReader(uri.Name(), model.UnknownSize, func() (io.ReadCloser, error) {
		return storage.Reader(uri)
	})
}

// onShowSettings displays the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies a new language right away. The failure policy is
// fixed per queue, so an idle queue is rebuilt with its selection to pick it up.
func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	if ui.currentQueue().State() == upload.StateIdle {
		ui.resetQueue(false)
	}
	ui.refresh()
}

// settingsTransport resolves the target and status policy from the saved
// settings on every upload, so a changed server URL applies to the next file.
type settingsTransport struct {
	ui *RootUI
}

func (t *settingsTransport) Upload(ctx context.Context, file model.SelectedFile, onProgress upload.ProgressFunc) error {
	tr, err := t.ui.newTransport(t.ui.settings.GetTargetURL(), t.ui.settings.GetStrictStatus())
	if err != nil {
		return err
	}
	return tr.Upload(ctx, file, onProgress)
}
