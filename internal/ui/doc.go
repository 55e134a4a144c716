package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// RootUI observes the upload queue and renders one TaskRow per selected file,
// with retry and skip controls when a failed upload holds the queue.
// All UI strings are localized via Localization.
