package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleter_DeletesAndReloads(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
		paths   []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	reloaded := make(chan string, 1)
	d, err := NewDeleter(ts.URL+"/share/", func(path string) { reloaded <- path }, WithLogger(quietLogger()))
	require.NoError(t, err)

	d.Delete(context.Background(), "old%20report.pdf")

	select {
	case path := <-reloaded:
		assert.Equal(t, "old%20report.pdf", path)
	case <-time.After(5 * time.Second):
		t.Fatal("onDeleted was not called")
	}
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodDelete}, methods)
	assert.Equal(t, []string{"/share/old report.pdf"}, paths)
}

func TestDeleter_BaseWithoutTrailingSlash(t *testing.T) {
	paths := make(chan string, 2)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
	}))
	defer ts.Close()

	for _, base := range []string{ts.URL + "/share", ts.URL} {
		d, err := NewDeleter(base, nil, WithLogger(quietLogger()))
		require.NoError(t, err)
		d.Delete(context.Background(), "report.pdf")
		d.Wait()
	}

	assert.Equal(t, "/share/report.pdf", <-paths)
	assert.Equal(t, "/report.pdf", <-paths)
}

func TestDeleter_AnyResponseTriggersReload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Deletion not permitted", http.StatusMethodNotAllowed)
	}))
	defer ts.Close()

	calls := 0
	d, err := NewDeleter(ts.URL, func(string) { calls++ }, WithLogger(quietLogger()))
	require.NoError(t, err)

	d.Delete(context.Background(), "/a.txt")
	d.Wait()
	assert.Equal(t, 1, calls)
}

func TestDeleter_TransportErrorIsSilent(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	calls := 0
	d, err := NewDeleter(base, func(string) { calls++ }, WithLogger(quietLogger()))
	require.NoError(t, err)

	d.Delete(context.Background(), "/a.txt")
	d.Delete(context.Background(), "   ")
	d.Wait()
	assert.Equal(t, 0, calls)
}

func TestNewDeleter_InvalidBase(t *testing.T) {
	_, err := NewDeleter("not a url", nil)
	assert.Error(t, err)
}
