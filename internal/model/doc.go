package model

// Package model defines domain data structures used across the app: selected
// files, upload tasks, byte progress, and the task status enum. Status changes
// only move forward and are enforced by UploadTask.Transition.
