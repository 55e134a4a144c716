package upload

// Package upload implements the upload queue controller: a name-deduplicating
// selection registry and a sequencer that uploads the selected files one at a
// time through a Transport, forwarding progress and outcomes to an Observer.
