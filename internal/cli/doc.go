package cli

// Package cli renders upload queue notifications on a terminal: a redrawn
// progress line per task, status lines styled with lipgloss and an optional
// QR code pointing at the upload target.
