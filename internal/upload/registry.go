package upload

import (
	"sync"

	"github.com/ytget/hfs-uploader/internal/model"
)

// Registry holds the deduplicated, insertion-ordered set of files to upload.
// Names are the only identity: a later file with a known name is dropped.
type Registry struct {
	mu      sync.RWMutex
	entries []model.SelectedFile
	names   map[string]struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// AddFile appends file unless an entry with the same name exists
func (r *Registry) AddFile(file model.SelectedFile) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(file)
}

// AddFiles adds each file in order and returns the ones that were new
func (r *Registry) AddFiles(files []model.SelectedFile) []model.SelectedFile {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := make([]model.SelectedFile, 0, len(files))
	for _, f := range files {
		if r.addLocked(f) {
			added = append(added, f)
		}
	}
	return added
}

// Entries returns a snapshot of the registered files in selection order
func (r *Registry) Entries() []model.SelectedFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.SelectedFile, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered files
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) addLocked(file model.SelectedFile) bool {
	if _, exists := r.names[file.Name]; exists {
		return false
	}
	r.names[file.Name] = struct{}{}
	r.entries = append(r.entries, file)
	return true
}
