// Package scan runs identification sessions: the "bAI is identifying..."
// sequence shown after the shutter is pressed. A session advances through a
// fixed number of progress steps on a timer while an Identifier works, then
// resolves exactly once.
package scan

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/laagtabai/laag-tui/internal/platform"
)

// ErrTimeout is passed to the completion callback when the identifier does
// not answer within Config.Timeout.
var ErrTimeout = errors.New("identification timed out")

// Result is what an identification resolves to.
type Result struct {
	LandmarkID string
	Title      string
	Confidence float64
}

// Identifier recognises the landmark in an image. Implementations must honour
// ctx cancellation.
type Identifier interface {
	Identify(ctx context.Context, image platform.Image) (Result, error)
}

// Simulated is the offline identifier: it waits Duration and then always
// reports the same landmark.
type Simulated struct {
	Duration time.Duration
	Result   Result
}

// DefaultResult is what the simulated identifier always finds.
var DefaultResult = Result{LandmarkID: "scanned-1", Title: "Magellan's Cross", Confidence: 1}

// NewSimulated creates a simulated identifier resolving to DefaultResult.
func NewSimulated(d time.Duration) *Simulated {
	return &Simulated{Duration: d, Result: DefaultResult}
}

func (s *Simulated) Identify(ctx context.Context, _ platform.Image) (Result, error) {
	t := time.NewTimer(s.Duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-t.C:
		return s.Result, nil
	}
}

// IdentifierFunc adapts a function to Identifier.
type IdentifierFunc func(ctx context.Context, image platform.Image) (Result, error)

func (f IdentifierFunc) Identify(ctx context.Context, image platform.Image) (Result, error) {
	return f(ctx, image)
}

// Config holds the session cadence.
type Config struct {
	Steps        int           // number of progress steps, final index is Steps-1
	StepInterval time.Duration // time between advances
	Timeout      time.Duration // zero disables the timeout
}

// DefaultConfig is four steps, one every 800ms.
func DefaultConfig() Config {
	return Config{Steps: 4, StepInterval: 800 * time.Millisecond}
}

// Session is one running identification.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	step   *atomic.Int32
	done   *atomic.Bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start begins a session. onStep receives every new step index; onComplete
// is called exactly once with the result or an error, unless the session is
// cancelled first. Callbacks run on the session's goroutines.
func Start(ctx context.Context, id Identifier, image platform.Image, cfg Config, onStep func(int), onComplete func(Result, error)) *Session {
	if cfg.Steps <= 0 {
		cfg.Steps = 1
	}
	runCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		step:      atomic.NewInt32(0),
		done:      atomic.NewBool(false),
		cancel:    cancel,
	}

	if cfg.Steps > 1 && cfg.StepInterval > 0 {
		s.wg.Add(1)
		go s.advance(runCtx, cfg, onStep)
	}

	s.wg.Add(1)
	go s.identify(runCtx, id, image, cfg.Timeout, onComplete)
	return s
}

func (s *Session) advance(ctx context.Context, cfg Config, onStep func(int)) {
	defer s.wg.Done()
	ticker := time.NewTicker(cfg.StepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.done.Load() {
				return
			}
			next := s.step.Inc()
			if onStep != nil {
				onStep(int(next))
			}
			if int(next) >= cfg.Steps-1 {
				return
			}
		}
	}
}

func (s *Session) identify(ctx context.Context, id Identifier, image platform.Image, timeout time.Duration, onComplete func(Result, error)) {
	defer s.wg.Done()
	idCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		idCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	res, err := id.Identify(idCtx, image)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			// cancelled by the caller: suppress
			return
		case errors.Is(err, context.DeadlineExceeded):
			err = ErrTimeout
		}
	}
	if !s.done.CompareAndSwap(false, true) {
		return
	}
	s.cancel()
	if onComplete != nil {
		onComplete(res, err)
	}
}

// Cancel stops pending advances and suppresses a completion that has not
// fired yet. It is safe to call more than once.
func (s *Session) Cancel() {
	s.done.CompareAndSwap(false, true)
	s.cancel()
}

// Wait blocks until the session's goroutines have exited.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Step returns the current step index.
func (s *Session) Step() int {
	return int(s.step.Load())
}

// Done reports whether the session completed or was cancelled.
func (s *Session) Done() bool {
	return s.done.Load()
}

// Scanner owns at most one session per screen instance. Starting a new
// session cancels the running one.
type Scanner struct {
	identifier Identifier
	cfg        Config
	logger     *slog.Logger

	mu      sync.Mutex
	current *Session
}

// NewScanner creates a scanner around an identifier.
func NewScanner(id Identifier, cfg Config, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{identifier: id, cfg: cfg, logger: logger}
}

// Config returns the cadence sessions run with.
func (sc *Scanner) Config() Config {
	return sc.cfg
}

// Start cancels any running session and starts a new one.
func (sc *Scanner) Start(ctx context.Context, image platform.Image, onStep func(int), onComplete func(Result, error)) *Session {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.current != nil && !sc.current.Done() {
		sc.logger.Info("cancelling previous identification", "session", sc.current.ID.String())
		sc.current.Cancel()
	}
	var s *Session
	s = Start(ctx, sc.identifier, image, sc.cfg, onStep, func(res Result, err error) {
		sc.mu.Lock()
		if sc.current == s {
			sc.current = nil
		}
		sc.mu.Unlock()
		if err != nil {
			sc.logger.Warn("identification failed", "session", s.ID.String(), "error", err)
		} else {
			sc.logger.Info("identification complete", "session", s.ID.String(), "landmark", res.LandmarkID)
		}
		if onComplete != nil {
			onComplete(res, err)
		}
	})
	sc.current = s
	sc.logger.Info("identification started", "session", s.ID.String(), "image", image.ID)
	return s
}

// Cancel stops the running session, if any.
func (sc *Scanner) Cancel() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.current != nil {
		sc.logger.Info("identification cancelled", "session", sc.current.ID.String())
		sc.current.Cancel()
		sc.current = nil
	}
}

// Active returns the running session or nil.
func (sc *Scanner) Active() *Session {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.current
}
