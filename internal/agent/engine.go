package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tradingagent/api/internal/client"
	"github.com/tradingagent/api/internal/model"
)

// EngineProducer drives a real analysis run on the external engine. The
// engine call blocks for the whole run, so it is detached onto its own
// goroutine while this producer emits elapsed-time progress lines. On
// cancellation the run is abandoned and its eventual result discarded.
type EngineProducer struct {
	engine       *client.EngineClient
	pollInterval time.Duration
}

func NewEngineProducer(engine *client.EngineClient, pollInterval time.Duration) *EngineProducer {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &EngineProducer{engine: engine, pollInterval: pollInterval}
}

type engineOutcome struct {
	result *client.AnalyzeResult
	err    error
}

func (p *EngineProducer) Stream(ctx context.Context, req *model.AnalysisRequest) <-chan Line {
	out := make(chan Line, 16)

	go func() {
		defer close(out)
		p.run(ctx, req, out)
	}()

	return out
}

func (p *EngineProducer) run(ctx context.Context, req *model.AnalysisRequest, out chan<- Line) {
	sep := strings.Repeat("=", 60)

	banner := []string{
		sep,
		fmt.Sprintf("REAL MODE: Analyzing %s", req.Ticker),
		fmt.Sprintf("Date: %s", req.AnalysisDate),
		fmt.Sprintf("LLM Provider: %s", req.LLMProvider),
		fmt.Sprintf("Models: %s / %s", req.ShallowModel, req.DeepModel),
		sep,
		fmt.Sprintf("Selected analysts: %s", strings.Join(req.Analysts.Enabled(), ", ")),
		fmt.Sprintf("Analyzing %s for %s...", req.Ticker, req.AnalysisDate),
	}
	for _, line := range banner {
		if !emit(ctx, out, line) {
			return
		}
	}

	// The engine call is not interruptible mid-run; give it its own context
	// so cancellation here detaches rather than tearing it down. The HTTP
	// client timeout still bounds the abandoned call.
	outcome := make(chan engineOutcome, 1)
	go func() {
		result, err := p.engine.Analyze(context.Background(), client.NewAnalyzeRequest(req))
		outcome <- engineOutcome{result: result, err: err}
	}()

	start := time.Now()
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Detach and discard; the consumer broadcasts the stop notice
			return

		case o := <-outcome:
			if o.err != nil {
				fail(ctx, out, fmt.Errorf("engine analysis failed: %w", o.err))
				return
			}
			for _, line := range formatDecision(req, o.result) {
				if !emit(ctx, out, line) {
					return
				}
			}
			return

		case <-ticker.C:
			elapsed := int(time.Since(start).Seconds())
			if !emit(ctx, out, fmt.Sprintf("Analysis in progress... (%ds elapsed)", elapsed)) {
				return
			}
		}
	}
}

func formatDecision(req *model.AnalysisRequest, result *client.AnalyzeResult) []string {
	sep := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 60)

	lines := []string{
		"",
		sep,
		"Analysis completed successfully!",
		sep,
		"",
		sep,
		"FINAL TRADING DECISION",
		sep,
		fmt.Sprintf("Ticker: %s", req.Ticker),
		fmt.Sprintf("Date: %s", req.AnalysisDate),
		"",
	}

	if result.FinalDecision != "" {
		lines = append(lines, "Final Decision:", sub, result.FinalDecision, "")
	}
	if result.InvestmentPlan != "" {
		lines = append(lines, "Investment Plan:", sub, result.InvestmentPlan, "")
	}
	if result.JudgeDecision != "" {
		lines = append(lines, "Risk Assessment:", sub, result.JudgeDecision, "")
	}

	return lines
}
