package platform

// Package platform contains OS/platform integration glue: turning local paths
// into selectable files and picking sensible starting directories.
