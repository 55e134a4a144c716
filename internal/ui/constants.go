package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconUpload   = "⬆"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconError    = "❌"
	IconDone     = "✓"
	IconPending  = "⏳"
)

// Text fragments
const (
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (TaskRow / lists)
const (
	StatusLabelWidth  float32 = 96
	SizeLabelWidth    float32 = 80
	PercentLabelWidth float32 = 48
	ProgressBarWidth  float32 = 160

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 48
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 320
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
