package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ytget/hfs-uploader/internal/model"
)

// Operating system constants
const (
	OSAndroid = "android"
)

// AndroidStorageRoot is where the file picker starts on Android devices
const AndroidStorageRoot = "/sdcard"

// IsHidden reports whether a file name is hidden by dot-file convention
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// CollectFiles turns command line or drag-and-drop paths into selected files.
// Regular files are taken as given, in argument order. A directory contributes
// its regular files sorted by name, without recursing; hidden entries inside
// a directory are skipped unless includeHidden is set.
func CollectFiles(paths []string, includeHidden bool) ([]model.SelectedFile, error) {
	var files []model.SelectedFile

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("file does not exist: %w", err)
		}

		if !info.IsDir() {
			f, err := model.NewFileFromPath(p)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
			continue
		}

		dirFiles, err := collectDir(p, includeHidden)
		if err != nil {
			return nil, err
		}
		files = append(files, dirFiles...)
	}

	return files, nil
}

func collectDir(dir string, includeHidden bool) ([]model.SelectedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var files []model.SelectedFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !includeHidden && IsHidden(entry.Name()) {
			continue
		}
		f, err := model.NewFileFromPath(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// GetDefaultPickerDir returns the directory the file picker opens first
func GetDefaultPickerDir() (string, error) {
	// Fyne Android apps run as libdist.so
	isAndroid := runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so"

	if isAndroid {
		return AndroidStorageRoot, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return homeDir, nil
}
