package model

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadTask_GetSizeString(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{UnknownSize, "—"},
		{0, "0 B"},
		{500, "500 B"},
		{2000, "2.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, test := range tests {
		task := &UploadTask{File: SelectedFile{Name: "f", Size: test.size}}
		result := task.GetSizeString()
		if result != test.expected {
			t.Errorf("GetSizeString() with Size=%d = %s, expected %s", test.size, result, test.expected)
		}
	}
}

func TestUploadTask_GetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"photo.jpg", "/home/u/photo.jpg", "photo.jpg"},
		{"", "/home/u/doc.pdf", "/home/u/doc.pdf"},
		{"  ", "", ""},
	}

	for _, test := range tests {
		task := &UploadTask{File: SelectedFile{Name: test.name, Path: test.path}}
		result := task.GetDisplayName()
		if result != test.expected {
			t.Errorf("GetDisplayName() with name='%s', path='%s' = '%s', expected '%s'",
				test.name, test.path, result, test.expected)
		}
	}
}

func TestNewUploadTask(t *testing.T) {
	task := NewUploadTask(NewFileFromBytes("a.txt", []byte("abc")))

	if !strings.HasPrefix(task.ID, TaskIDPrefix) {
		t.Errorf("Expected ID to start with '%s', got: %s", TaskIDPrefix, task.ID)
	}
	if len(task.ID) != len(TaskIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(TaskIDPrefix)+36, len(task.ID), task.ID)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status to be TaskStatusPending, got %s", task.Status)
	}
	if task.BytesTotal != UnknownSize {
		t.Errorf("Expected BytesTotal to be unknown before the request, got %d", task.BytesTotal)
	}
	if task.Attempt != 1 {
		t.Errorf("Expected Attempt 1, got %d", task.Attempt)
	}

	other := NewUploadTask(task.File)
	if other.ID == task.ID {
		t.Error("Expected different task IDs")
	}
}

func TestUploadTask_Transition(t *testing.T) {
	task := NewUploadTask(NewFileFromBytes("a.txt", nil))

	if err := task.Transition(TaskStatusSucceeded); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Pending -> Succeeded should be rejected, got %v", err)
	}

	if err := task.Transition(TaskStatusInProgress); err != nil {
		t.Fatalf("Pending -> InProgress: %v", err)
	}
	if task.StartedAt.IsZero() {
		t.Error("Expected StartedAt to be set")
	}

	if err := task.Transition(TaskStatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("InProgress -> Pending should be rejected, got %v", err)
	}

	if err := task.Transition(TaskStatusFailed); err != nil {
		t.Fatalf("InProgress -> Failed: %v", err)
	}
	if task.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}

	if err := task.Transition(TaskStatusInProgress); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Failed -> InProgress should be rejected, got %v", err)
	}
	if task.Status != TaskStatusFailed {
		t.Errorf("Expected status to stay Failed, got %s", task.Status)
	}
}

func TestSelectedFile_Sources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFileFromPath(path)
	if err != nil {
		t.Fatalf("NewFileFromPath: %v", err)
	}
	if f.Name != "photo.jpg" || f.Size != 10 || f.Path != path {
		t.Errorf("unexpected file %+v", f)
	}

	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "jpeg-bytes" {
		t.Errorf("unexpected content %q", data)
	}

	if _, err := NewFileFromPath(dir); err == nil {
		t.Error("Expected error for a directory")
	}
	if _, err := NewFileFromPath(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for a missing file")
	}

	streamed := NewFileFromReader("stream.bin", -5, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("x")), nil
	})
	if streamed.SizeKnown() {
		t.Error("Expected unknown size for negative input")
	}

	if _, err := (SelectedFile{Name: "empty"}).Open(); !errors.Is(err, ErrNoContent) {
		t.Errorf("Expected ErrNoContent, got %v", err)
	}
}
