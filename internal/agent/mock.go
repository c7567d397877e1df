package agent

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/tradingagent/api/internal/model"
)

// MockProducer runs a scripted analysis without the external engine. The
// script is deterministic for a given request so tests and demos are stable.
type MockProducer struct {
	stepDelay time.Duration
}

// NewMockProducer creates a mock producer paced by stepDelay between phases
func NewMockProducer(stepDelay time.Duration) *MockProducer {
	return &MockProducer{stepDelay: stepDelay}
}

var mockAnalysts = []struct {
	key  string
	name string
}{
	{"market", "Market Analyst"},
	{"social", "Social Media Analyst"},
	{"news", "News Analyst"},
	{"fundamentals", "Fundamentals Analyst"},
	{"momentum", "Momentum Analyst"},
}

func (p *MockProducer) Stream(ctx context.Context, req *model.AnalysisRequest) <-chan Line {
	out := make(chan Line, 16)

	go func() {
		defer close(out)
		p.run(ctx, req, out)
	}()

	return out
}

func (p *MockProducer) run(ctx context.Context, req *model.AnalysisRequest, out chan<- Line) {
	sep := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 60)

	script := []string{
		sep,
		fmt.Sprintf("MOCK MODE: Analyzing %s", req.Ticker),
		fmt.Sprintf("Date: %s", req.AnalysisDate),
		fmt.Sprintf("Research Depth: %d", req.ResearchDepth),
		sep,
		"",
		"Phase 1: Analyst Reports",
		sub,
	}
	for _, line := range script {
		if !emit(ctx, out, line) {
			return
		}
	}

	enabled := map[string]bool{}
	for _, name := range req.Analysts.Enabled() {
		enabled[name] = true
	}
	for _, a := range mockAnalysts {
		if !enabled[a.key] {
			continue
		}
		if !emit(ctx, out, fmt.Sprintf("Running %s...", a.name)) || !pause(ctx, p.stepDelay) {
			return
		}
		if !emit(ctx, out, fmt.Sprintf("  ✓ %s completed", a.name)) {
			return
		}
	}

	if !p.phase(ctx, out, "Phase 2: Research Analysis",
		"Bull Researcher", "Bear Researcher", "Research Manager") {
		return
	}

	for _, line := range []string{"", "Phase 3: Trading Decision", sub, "Generating trading recommendation..."} {
		if !emit(ctx, out, line) {
			return
		}
	}
	if !pause(ctx, p.stepDelay) || !emit(ctx, out, "  ✓ Trader completed") {
		return
	}

	if !p.phase(ctx, out, "Phase 4: Risk Assessment",
		"Conservative risk debater", "Neutral risk debater", "Aggressive risk debater") {
		return
	}

	if !emit(ctx, out, "") || !emit(ctx, out, "Generating final portfolio decision...") || !pause(ctx, p.stepDelay) {
		return
	}

	decision, confidence, risk, position := mockDecision(req.Ticker)
	final := []string{
		"",
		sep,
		"FINAL TRADING DECISION",
		sep,
		fmt.Sprintf("Ticker: %s", req.Ticker),
		fmt.Sprintf("Signal: %s", decision),
		"",
		"Decision Details:",
		fmt.Sprintf("  Action: %s", decision),
		fmt.Sprintf("  Confidence: %d%%", confidence),
		fmt.Sprintf("  Risk Level: %s", risk),
		fmt.Sprintf("  Position Size: %d%% of portfolio", position),
		fmt.Sprintf("  Analysis Date: %s", req.AnalysisDate),
		"",
		sep,
		"Analysis completed successfully!",
		sep,
		"",
		"NOTE: This is MOCK MODE",
		"To use real TradingAgents:",
		"  1. Ensure the analysis engine is reachable",
		"  2. Configure ENGINE_URL and ENGINE_API_KEY",
		"  3. Restart the backend server",
	}
	for _, line := range final {
		if !emit(ctx, out, line) {
			return
		}
	}
}

func (p *MockProducer) phase(ctx context.Context, out chan<- Line, title string, actors ...string) bool {
	if !emit(ctx, out, "") || !emit(ctx, out, title) || !emit(ctx, out, strings.Repeat("-", 60)) {
		return false
	}
	for _, actor := range actors {
		if !emit(ctx, out, fmt.Sprintf("Running %s...", actor)) || !pause(ctx, p.stepDelay) {
			return false
		}
		if !emit(ctx, out, fmt.Sprintf("  ✓ %s completed", actor)) {
			return false
		}
	}
	return true
}

// mockDecision derives a stable pseudo-decision from the ticker
func mockDecision(ticker string) (decision string, confidence int, risk string, position int) {
	h := fnv.New32a()
	h.Write([]byte(ticker))
	n := h.Sum32()

	decisions := []string{"BUY", "SELL", "HOLD"}
	risks := []string{"Low", "Medium", "High"}
	return decisions[n%3], 60 + int(n%36), risks[(n/3)%3], 5 + int(n%21)
}
