package agent

import (
	"context"
	"log"
	"time"

	"github.com/tradingagent/api/internal/client"
	"github.com/tradingagent/api/internal/config"
	"github.com/tradingagent/api/internal/model"
)

// Operating modes reported by /api/health
const (
	ModeReal = "real"
	ModeMock = "mock"
)

// Line is one item in a producer's ordered output. A non-nil Err marks a
// failed run; the channel is closed right after it.
type Line struct {
	Text string
	Err  error
}

// Producer yields the ordered, finite stream of progress lines for one
// analysis run.
type Producer interface {
	// Stream starts a run and returns its line channel. The channel is
	// closed when the run completes, fails, or ctx is cancelled. Producers
	// observe cancellation between lines; they never block on a closed
	// consumer.
	Stream(ctx context.Context, req *model.AnalysisRequest) <-chan Line
}

// New picks the engine-backed producer when the external engine is
// configured, falling back to the deterministic scripted mock.
func New(cfg *config.Config, engine *client.EngineClient) (Producer, string) {
	if engine.IsConfigured() {
		log.Println("Analysis engine configured. Running in real mode.")
		return NewEngineProducer(engine, cfg.Engine.PollInterval), ModeReal
	}
	log.Println("Analysis engine not configured. Running in mock mode.")
	return NewMockProducer(cfg.Stream.MockStepDelay), ModeMock
}

// emit sends one line unless ctx is cancelled first. Returns false when the
// run should stop.
func emit(ctx context.Context, out chan<- Line, text string) bool {
	select {
	case out <- Line{Text: text}:
		return true
	case <-ctx.Done():
		return false
	}
}

// fail sends the terminal error line unless ctx is cancelled first
func fail(ctx context.Context, out chan<- Line, err error) {
	select {
	case out <- Line{Err: err}:
	case <-ctx.Done():
	}
}

// pause sleeps for d unless ctx is cancelled first
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
