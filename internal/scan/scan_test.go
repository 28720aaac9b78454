package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/laagtabai/laag-tui/internal/platform"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type recorder struct {
	mu      sync.Mutex
	steps   []int
	results []Result
	errs    []error
	done    chan struct{}
	calls   *atomic.Int32
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 4), calls: atomic.NewInt32(0)}
}

func (r *recorder) onStep(i int) {
	r.mu.Lock()
	r.steps = append(r.steps, i)
	r.mu.Unlock()
}

func (r *recorder) onComplete(res Result, err error) {
	r.calls.Inc()
	r.mu.Lock()
	r.results = append(r.results, res)
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) stepCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

func TestSessionAdvancesAndCompletesOnce(t *testing.T) {
	rec := newRecorder()
	cfg := Config{Steps: 4, StepInterval: 10 * time.Millisecond}
	s := Start(context.Background(), NewSimulated(80*time.Millisecond), platform.Image{ID: "a"}, cfg, rec.onStep, rec.onComplete)

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("session never completed")
	}
	s.Wait()

	assert.Equal(t, int32(1), rec.calls.Load())
	require.Len(t, rec.results, 1)
	assert.NoError(t, rec.errs[0])
	assert.Equal(t, DefaultResult, rec.results[0])
	assert.Equal(t, []int{1, 2, 3}, rec.steps, "steps stop at the final index")
	assert.Equal(t, 3, s.Step())
	assert.True(t, s.Done())
}

func TestCancelSuppressesCompletion(t *testing.T) {
	rec := newRecorder()
	cfg := Config{Steps: 4, StepInterval: 20 * time.Millisecond}
	s := Start(context.Background(), NewSimulated(500*time.Millisecond), platform.Image{}, cfg, rec.onStep, rec.onComplete)

	require.Eventually(t, func() bool { return rec.stepCount() >= 2 }, time.Second, 5*time.Millisecond)
	s.Cancel()
	s.Cancel()
	s.Wait()

	steps := rec.stepCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), rec.calls.Load(), "cancelled session must not complete")
	assert.Equal(t, steps, rec.stepCount(), "no advances after cancel")
}

func TestTimeout(t *testing.T) {
	rec := newRecorder()
	cfg := Config{Steps: 1, Timeout: 20 * time.Millisecond}
	Start(context.Background(), NewSimulated(time.Hour), platform.Image{}, cfg, nil, rec.onComplete)

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout never reported")
	}
	assert.True(t, errors.Is(rec.errs[0], ErrTimeout))
}

func TestIdentifierErrorIsReported(t *testing.T) {
	rec := newRecorder()
	boom := errors.New("model unavailable")
	id := IdentifierFunc(func(context.Context, platform.Image) (Result, error) { return Result{}, boom })
	s := Start(context.Background(), id, platform.Image{}, DefaultConfig(), nil, rec.onComplete)
	<-rec.done
	s.Wait()
	assert.ErrorIs(t, rec.errs[0], boom)
}

func TestScannerReplacesRunningSession(t *testing.T) {
	sc := NewScanner(NewSimulated(60*time.Millisecond), Config{Steps: 2, StepInterval: 10 * time.Millisecond}, quiet())
	first, second := newRecorder(), newRecorder()

	s1 := sc.Start(context.Background(), platform.Image{ID: "1"}, nil, first.onComplete)
	s2 := sc.Start(context.Background(), platform.Image{ID: "2"}, nil, second.onComplete)
	assert.NotEqual(t, s1.ID, s2.ID)
	assert.Same(t, s2, sc.Active())

	select {
	case <-second.done:
	case <-time.After(2 * time.Second):
		t.Fatal("second session never completed")
	}
	s1.Wait()
	assert.Equal(t, int32(0), first.calls.Load(), "replaced session must not complete")
	assert.Nil(t, sc.Active(), "finished session is cleared")
	assert.Equal(t, 2, sc.Config().Steps)
}

func TestScannerCancel(t *testing.T) {
	sc := NewScanner(NewSimulated(time.Hour), DefaultConfig(), nil)
	rec := newRecorder()
	s := sc.Start(context.Background(), platform.Image{}, rec.onStep, rec.onComplete)
	sc.Cancel()
	s.Wait()
	assert.Nil(t, sc.Active())
	assert.Equal(t, int32(0), rec.calls.Load())
	sc.Cancel() // nothing running
}

func TestParentContextCancelSuppresses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := newRecorder()
	s := Start(ctx, NewSimulated(time.Hour), platform.Image{}, DefaultConfig(), nil, rec.onComplete)
	cancel()
	s.Wait()
	assert.Equal(t, int32(0), rec.calls.Load())
}
