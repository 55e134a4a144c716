package config

import (
	"strings"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyTargetURL        = "target_url"
	KeyAdvanceOnFailure = "advance_on_failure"
	KeyStrictStatus     = "strict_status"
	KeyLanguage         = "app_language"
	KeyLastDirectory    = "last_directory"
)

// Default values
const (
	DefaultTargetURL        = "http://localhost:8000/"
	DefaultAdvanceOnFailure = false
	DefaultStrictStatus     = false
	DefaultLanguage         = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetTargetURL returns the upload endpoint
func (s *Settings) GetTargetURL() string {
	target := s.app.Preferences().String(KeyTargetURL)
	if target == "" {
		s.SetTargetURL(DefaultTargetURL)
		return DefaultTargetURL
	}
	return target
}

// SetTargetURL sets the upload endpoint; an empty value restores the default
func (s *Settings) SetTargetURL(target string) {
	target = strings.TrimSpace(target)
	if target == "" {
		target = DefaultTargetURL
	}
	s.app.Preferences().SetString(KeyTargetURL, target)
}

// GetAdvanceOnFailure returns whether a failed upload lets the queue continue
func (s *Settings) GetAdvanceOnFailure() bool {
	return s.app.Preferences().BoolWithFallback(KeyAdvanceOnFailure, DefaultAdvanceOnFailure)
}

// SetAdvanceOnFailure sets whether a failed upload lets the queue continue
func (s *Settings) SetAdvanceOnFailure(advance bool) {
	s.app.Preferences().SetBool(KeyAdvanceOnFailure, advance)
}

// GetStrictStatus returns whether HTTP error statuses count as failures
func (s *Settings) GetStrictStatus() bool {
	return s.app.Preferences().BoolWithFallback(KeyStrictStatus, DefaultStrictStatus)
}

// SetStrictStatus sets whether HTTP error statuses count as failures
func (s *Settings) SetStrictStatus(strict bool) {
	s.app.Preferences().SetBool(KeyStrictStatus, strict)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastDirectory returns the directory the file picker opened last, if any
func (s *Settings) GetLastDirectory() string {
	return s.app.Preferences().String(KeyLastDirectory)
}

// SetLastDirectory remembers the directory the file picker opened last
func (s *Settings) SetLastDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastDirectory, dir)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
