package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/hfs-uploader/internal/model"
)

func names(files []model.SelectedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestRegistry_AddFileDeduplicatesByName(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.AddFile(sized("a.txt", 1)))
	assert.True(t, r.AddFile(sized("b.txt", 2)))
	assert.False(t, r.AddFile(sized("a.txt", 3)), "second a.txt must be rejected")

	entries := r.Entries()
	assert.Equal(t, []string{"a.txt", "b.txt"}, names(entries))
	assert.Equal(t, int64(1), entries[0].Size, "first-seen entry wins")
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_AddFilesReturnsOnlyNewEntries(t *testing.T) {
	r := NewRegistry()
	r.AddFiles([]model.SelectedFile{sized("photo.jpg", 2000)})

	added := r.AddFiles([]model.SelectedFile{
		sized("doc.pdf", 500),
		sized("photo.jpg", 10),
		sized("notes.md", 5),
		sized("doc.pdf", 1),
	})

	assert.Equal(t, []string{"doc.pdf", "notes.md"}, names(added))
	assert.Equal(t, []string{"photo.jpg", "doc.pdf", "notes.md"}, names(r.Entries()))
}

func TestRegistry_AddFilesEmptyBatch(t *testing.T) {
	r := NewRegistry()
	added := r.AddFiles(nil)
	require.NotNil(t, added)
	assert.Empty(t, added)
	assert.Empty(t, r.Entries())
}

func TestRegistry_EntriesIsSnapshot(t *testing.T) {
	r := NewRegistry()
	r.AddFile(sized("a.txt", 1))

	snapshot := r.Entries()
	snapshot[0].Name = "mutated"
	r.AddFile(sized("b.txt", 1))

	assert.Equal(t, []string{"a.txt", "b.txt"}, names(r.Entries()))
	assert.Len(t, snapshot, 1)
}

func TestRegistry_SameNameDifferentContent(t *testing.T) {
	r := NewRegistry()
	first := model.NewFileFromBytes("report.csv", []byte("v1"))
	second := model.NewFileFromBytes("report.csv", []byte("version two"))

	require.True(t, r.AddFile(first))
	require.False(t, r.AddFile(second))
	assert.Equal(t, int64(2), r.Entries()[0].Size)
}
