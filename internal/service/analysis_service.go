package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tradingagent/api/internal/agent"
	"github.com/tradingagent/api/internal/config"
	"github.com/tradingagent/api/internal/model"
	ws "github.com/tradingagent/api/internal/websocket"
)

var (
	// ErrAlreadyRunning is returned by Start when the job slot is occupied
	ErrAlreadyRunning = errors.New("analysis already running")
	// ErrNotRunning is returned by Stop when the job slot is empty
	ErrNotRunning = errors.New("no analysis is currently running")
)

// jobHandle is the single in-flight run. It exists exactly while the state
// is running; every terminal path clears it.
type jobHandle struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// AnalysisService owns the single analysis slot. It starts and cancels runs,
// consumes the producer's line stream, and relays every line and state
// change through the hub. All slot mutation happens here, behind one mutex.
type AnalysisService struct {
	hub      *ws.Hub
	producer agent.Producer
	mode     string

	lineDelay time.Duration
	stopWait  time.Duration

	mu     sync.Mutex
	handle *jobHandle
	state  model.AnalysisState
}

func NewAnalysisService(hub *ws.Hub, producer agent.Producer, mode string, streamCfg config.StreamConfig) *AnalysisService {
	return &AnalysisService{
		hub:       hub,
		producer:  producer,
		mode:      mode,
		lineDelay: streamCfg.LineDelay,
		stopWait:  streamCfg.StopWait,
		state:     model.StateIdle,
	}
}

// Mode reports whether the service runs against the real engine or the mock
func (s *AnalysisService) Mode() string {
	return s.mode
}

// State returns the current lifecycle state without blocking
func (s *AnalysisService) State() model.AnalysisState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start launches a new analysis run. Only one run may be in flight; a second
// Start is rejected with ErrAlreadyRunning and changes nothing.
func (s *AnalysisService) Start(req *model.AnalysisRequest) error {
	s.mu.Lock()
	if s.handle != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &jobHandle{
		id:     uuid.New().String(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.handle = h
	s.state = model.StateRunning
	s.mu.Unlock()

	log.Printf("Starting analysis %s for %s", h.id, req.Ticker)

	s.hub.BroadcastStatus(model.StateRunning)
	s.hub.BroadcastLog(fmt.Sprintf("Starting analysis for %s", req.Ticker))
	s.hub.BroadcastLog(fmt.Sprintf("Date: %s", req.AnalysisDate))
	s.hub.BroadcastLog(fmt.Sprintf("Research depth: %d", req.ResearchDepth))
	s.hub.BroadcastLog(fmt.Sprintf("LLM Provider: %s", req.LLMProvider))
	s.hub.BroadcastLog(fmt.Sprintf("Shallow model: %s", req.ShallowModel))
	s.hub.BroadcastLog(fmt.Sprintf("Deep model: %s", req.DeepModel))

	go s.run(ctx, h, req)
	return nil
}

// Stop cancels the in-flight run. It waits up to the configured bound for
// the run loop to acknowledge; cancellation is already requested either way,
// so the caller gets an acceptance even if the wait times out.
func (s *AnalysisService) Stop() error {
	s.mu.Lock()
	h := s.handle
	s.mu.Unlock()

	if h == nil {
		return ErrNotRunning
	}

	log.Printf("Stopping analysis %s", h.id)
	h.cancel()

	select {
	case <-h.done:
	case <-time.After(s.stopWait):
		log.Printf("Analysis %s did not acknowledge cancellation within %s; detaching", h.id, s.stopWait)
	}
	return nil
}

// Shutdown cancels any in-flight run during process exit
func (s *AnalysisService) Shutdown() {
	if err := s.Stop(); err == nil {
		log.Println("In-flight analysis cancelled on shutdown")
	}
}

func (s *AnalysisService) run(ctx context.Context, h *jobHandle, req *model.AnalysisRequest) {
	defer close(h.done)

	terminal := s.consume(ctx, req)

	// Terminal status goes out before the slot is cleared, so the last
	// event of this run always precedes the first event of the next.
	s.hub.BroadcastStatus(terminal)

	s.mu.Lock()
	s.state = terminal
	s.handle = nil
	s.mu.Unlock()

	log.Printf("Analysis %s finished: %s", h.id, terminal)
}

// consume relays the producer's lines until exhaustion, failure, or
// cancellation, and reports the resulting terminal state.
func (s *AnalysisService) consume(ctx context.Context, req *model.AnalysisRequest) model.AnalysisState {
	lines := s.producer.Stream(ctx, req)

	for {
		select {
		case <-ctx.Done():
			s.hub.BroadcastLog("Analysis stopped by user")
			return model.StateStopped

		case line, ok := <-lines:
			if !ok {
				if ctx.Err() != nil {
					s.hub.BroadcastLog("Analysis stopped by user")
					return model.StateStopped
				}
				return model.StateIdle
			}
			if line.Err != nil {
				log.Printf("Analysis failed: %v", line.Err)
				s.hub.BroadcastLog(fmt.Sprintf("Analysis failed: %v", line.Err))
				return model.StateError
			}

			s.hub.BroadcastLog(line.Text)
			s.yield(ctx)
		}
	}
}

// yield pauses briefly after each relayed line so slow observers are not
// overwhelmed. A cancellation during the pause is picked up on the next
// loop iteration.
func (s *AnalysisService) yield(ctx context.Context) {
	if s.lineDelay <= 0 {
		return
	}
	t := time.NewTimer(s.lineDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
