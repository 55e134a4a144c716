package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/hfs-uploader/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func files(names ...string) []model.SelectedFile {
	out := make([]model.SelectedFile, len(names))
	for i, name := range names {
		out[i] = sized(name, 400)
	}
	return out
}

func runToRest(t *testing.T, s *Sequencer, fs []model.SelectedFile) {
	t.Helper()
	require.NoError(t, s.Start(context.Background(), fs))
	s.Wait()
}

func TestSequencer_UploadsInOrderAndCompletesOnce(t *testing.T) {
	transport := newFakeTransport()
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("a", "b", "c"))

	assert.Equal(t, []string{"a", "b", "c"}, transport.Calls())
	assert.Equal(t, 1, transport.MaxInFlight(), "uploads must never overlap")
	assert.Equal(t, StateDone, s.State())

	succeeded := rec.Kind("succeeded")
	require.Len(t, succeeded, 3)
	for i, e := range succeeded {
		assert.Equal(t, []string{"a", "b", "c"}[i], e.task.File.Name)
		assert.Equal(t, i == 2, e.isLast)
		assert.Equal(t, model.TaskStatusSucceeded, e.task.Status)
	}

	require.Len(t, rec.Kind("batch"), 1)
	events := rec.Events()
	assert.Equal(t, "batch", events[len(events)-1].kind, "batch completion comes after the last success")
	assert.Empty(t, rec.Kind("failed"))
}

func TestSequencer_TaskStartsOnlyAfterPreviousFinished(t *testing.T) {
	transport := newFakeTransport()
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("a", "b", "c"))

	var order []string
	for _, e := range rec.Events() {
		switch e.kind {
		case "started", "succeeded":
			order = append(order, e.kind+":"+e.task.File.Name)
		}
	}
	assert.Equal(t, []string{
		"started:a", "succeeded:a",
		"started:b", "succeeded:b",
		"started:c", "succeeded:c",
	}, order)
}

func TestSequencer_FailureHaltsQueue(t *testing.T) {
	transport := newFakeTransport()
	transport.failures["b"] = errConnReset
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("a", "b", "c"))

	assert.Equal(t, []string{"a", "b"}, transport.Calls(), "c must not start after b failed")
	assert.Equal(t, StateHalted, s.State())
	assert.Empty(t, rec.Kind("batch"))

	failed := rec.Kind("failed")
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].task.File.Name)
	assert.Equal(t, model.TaskStatusFailed, failed[0].task.Status)
	assert.Equal(t, errConnReset.Error(), failed[0].task.LastError)

	var terr *TransportError
	require.True(t, errors.As(failed[0].err, &terr))
	assert.Equal(t, "b", terr.FileName)
	assert.Equal(t, 1, terr.Attempt)
	assert.ErrorIs(t, failed[0].err, errConnReset)

	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, model.TaskStatusSucceeded, tasks[0].Status)
	assert.Equal(t, model.TaskStatusFailed, tasks[1].Status)
	assert.Equal(t, model.TaskStatusPending, tasks[2].Status)
}

func TestSequencer_RetryResumesFromFailedTask(t *testing.T) {
	transport := newFakeTransport()
	transport.failures["b"] = errConnReset
	transport.failOnce["b"] = true
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("a", "b", "c"))
	require.Equal(t, StateHalted, s.State())
	failedID := s.Tasks()[1].ID

	require.NoError(t, s.Retry())
	s.Wait()

	assert.Equal(t, []string{"a", "b", "b", "c"}, transport.Calls())
	assert.Equal(t, StateDone, s.State())
	assert.Len(t, rec.Kind("failed"), 1)
	assert.Len(t, rec.Kind("batch"), 1)

	retried := s.Tasks()[1]
	assert.Equal(t, 2, retried.Attempt)
	assert.NotEqual(t, failedID, retried.ID)
	assert.Equal(t, model.TaskStatusSucceeded, retried.Status)
}

func TestSequencer_SkipAdvancesPastFailedTask(t *testing.T) {
	transport := newFakeTransport()
	transport.failures["b"] = errConnReset
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("a", "b", "c"))
	require.NoError(t, s.Skip())
	s.Wait()

	assert.Equal(t, []string{"a", "b", "c"}, transport.Calls())
	assert.Equal(t, StateDone, s.State())
	assert.Len(t, rec.Kind("batch"), 1)
	assert.Equal(t, model.TaskStatusFailed, s.Tasks()[1].Status)
}

func TestSequencer_SkipLastTaskEndsWithoutBatchCompletion(t *testing.T) {
	transport := newFakeTransport()
	transport.failures["b"] = errConnReset
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("a", "b"))
	require.NoError(t, s.Skip())
	s.Wait()

	assert.Equal(t, StateDone, s.State())
	assert.Empty(t, rec.Kind("batch"))
	assert.ErrorIs(t, s.Skip(), ErrNotHalted)
}

func TestSequencer_AdvanceOnFailure(t *testing.T) {
	transport := newFakeTransport()
	transport.failures["b"] = errConnReset
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()), WithAdvanceOnFailure(true))

	runToRest(t, s, files("a", "b", "c"))

	assert.Equal(t, []string{"a", "b", "c"}, transport.Calls())
	assert.Equal(t, StateDone, s.State())
	assert.Len(t, rec.Kind("failed"), 1)
	assert.Len(t, rec.Kind("batch"), 1)
}

func TestSequencer_AdvanceOnFailureLastTaskFails(t *testing.T) {
	transport := newFakeTransport()
	transport.failures["b"] = errConnReset
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()), WithAdvanceOnFailure(true))

	runToRest(t, s, files("a", "b"))

	assert.Equal(t, StateDone, s.State())
	events := rec.Events()
	require.Len(t, rec.Kind("batch"), 1)
	assert.Equal(t, "batch", events[len(events)-1].kind)
}

func TestSequencer_ProgressIsMonotonicAndReachesTotal(t *testing.T) {
	transport := newFakeTransport()
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, []model.SelectedFile{sized("photo.jpg", 2000), sized("doc.pdf", 500)})

	for _, name := range []string{"photo.jpg", "doc.pdf"} {
		ticks := rec.ProgressFor(name)
		require.NotEmpty(t, ticks, name)
		for i := 1; i < len(ticks); i++ {
			assert.GreaterOrEqual(t, ticks[i].Sent, ticks[i-1].Sent, name)
		}
		assert.True(t, ticks[len(ticks)-1].Complete(), name)
	}

	for _, e := range rec.Kind("succeeded") {
		assert.Equal(t, e.task.BytesTotal, e.task.BytesSent)
		assert.Equal(t, e.task.File.Size, e.task.BytesTotal)
	}
}

func TestSequencer_ShortTransportGetsFinalTick(t *testing.T) {
	transport := newFakeTransport()
	transport.stopAtHalf = true
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, []model.SelectedFile{sized("photo.jpg", 2000)})

	ticks := rec.ProgressFor("photo.jpg")
	require.Len(t, ticks, 3)
	assert.Equal(t, model.Progress{Sent: 2000, Total: 2000}, ticks[2])

	succeeded := rec.Kind("succeeded")
	require.Len(t, succeeded, 1)
	assert.Equal(t, int64(2000), succeeded[0].task.BytesSent)
}

func TestSequencer_IndeterminateProgressHasNoPercentage(t *testing.T) {
	transport := newFakeTransport()
	transport.unknownTotal = true
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("stream.bin"))

	ticks := rec.ProgressFor("stream.bin")
	require.NotEmpty(t, ticks)
	for _, p := range ticks {
		assert.True(t, p.Indeterminate())
		_, ok := p.Percent()
		assert.False(t, ok, "indeterminate progress must not yield a percentage")
	}

	succeeded := rec.Kind("succeeded")
	require.Len(t, succeeded, 1)
	assert.Equal(t, model.UnknownSize, succeeded[0].task.BytesTotal)
	assert.Len(t, rec.Kind("batch"), 1)
}

func TestSequencer_LateProgressIsDropped(t *testing.T) {
	transport := newFakeTransport()
	rec := &recorder{}
	s := NewSequencer(transport, rec, WithLogger(quietLogger()))

	runToRest(t, s, files("a"))
	before := len(rec.Kind("progress"))

	transport.lastProgress(1, 400)
	assert.Len(t, rec.Kind("progress"), before)
	assert.Equal(t, int64(400), s.Tasks()[0].BytesSent)
}

func TestSequencer_StartErrors(t *testing.T) {
	s := NewSequencer(newFakeTransport(), nil, WithLogger(quietLogger()))

	assert.ErrorIs(t, s.Start(context.Background(), nil), ErrNothingToUpload)
	assert.Equal(t, StateIdle, s.State())
	assert.ErrorIs(t, s.Retry(), ErrNotHalted)

	require.NoError(t, s.Start(context.Background(), files("a")))
	assert.ErrorIs(t, s.Start(context.Background(), files("b")), ErrAlreadyStarted)
	s.Wait()
	assert.ErrorIs(t, s.Retry(), ErrNotHalted)
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateIdle:    "idle",
		StateRunning: "running",
		StateHalted:  "halted",
		StateDone:    "done",
		State(42):    "unknown",
	}
	for state, expected := range tests {
		assert.Equal(t, expected, state.String())
	}
}
