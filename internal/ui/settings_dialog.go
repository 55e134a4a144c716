package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hfs-uploader/internal/config"
	"github.com/ytget/hfs-uploader/internal/transport"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	targetEntry    *widget.Entry
	advanceCheck   *widget.Check
	strictCheck    *widget.Check
	languageSelect *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// preferences were written.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.targetEntry = widget.NewEntry()
	sd.targetEntry.SetPlaceHolder(config.DefaultTargetURL)
	sd.targetEntry.Validator = func(s string) error {
		_, err := transport.ParseTarget(s)
		return err
	}

	sd.advanceCheck = widget.NewCheck(sd.localization.GetText(KeyAdvanceOnFailure), nil)
	sd.strictCheck = widget.NewCheck(sd.localization.GetText(KeyStrictStatus), nil)

	languageOptions := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyTargetURL)+":"),
		sd.targetEntry,
		sd.advanceCheck,
		sd.strictCheck,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.targetEntry.SetText(sd.settings.GetTargetURL())
	sd.advanceCheck.SetChecked(sd.settings.GetAdvanceOnFailure())
	sd.strictCheck.SetChecked(sd.settings.GetStrictStatus())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if err := sd.targetEntry.Validate(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	sd.settings.SetTargetURL(sd.targetEntry.Text)
	sd.settings.SetAdvanceOnFailure(sd.advanceCheck.Checked)
	sd.settings.SetStrictStatus(sd.strictCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
