package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tradingagent/api/internal/model"
)

func mockRequest() *model.AnalysisRequest {
	req := &model.AnalysisRequest{
		Ticker:       "TSLA",
		AnalysisDate: "2026-02-16",
	}
	req.Normalize()
	return req
}

func drain(t *testing.T, lines <-chan Line) []string {
	t.Helper()
	var out []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return out
			}
			if line.Err != nil {
				t.Fatalf("unexpected producer error: %v", line.Err)
			}
			out = append(out, line.Text)
		case <-timeout:
			t.Fatal("mock stream never finished")
		}
	}
}

func TestMockStreamRunsFullScript(t *testing.T) {
	p := NewMockProducer(0)

	lines := drain(t, p.Stream(context.Background(), mockRequest()))

	if len(lines) == 0 {
		t.Fatal("expected scripted output")
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"MOCK MODE: Analyzing TSLA",
		"Phase 1: Analyst Reports",
		"Running Market Analyst...",
		"Running Social Media Analyst...",
		"FINAL TRADING DECISION",
		"Analysis completed successfully!",
		"NOTE: This is MOCK MODE",
		"To use real TradingAgents:",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("script missing %q", want)
		}
	}

	// Default analyst set excludes the news analyst
	if strings.Contains(joined, "Running News Analyst...") {
		t.Error("news analyst should not run with default toggles")
	}
}

func TestMockStreamIsDeterministic(t *testing.T) {
	p := NewMockProducer(0)

	first := drain(t, p.Stream(context.Background(), mockRequest()))
	second := drain(t, p.Stream(context.Background(), mockRequest()))

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("line %d differs between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestMockStreamObservesCancellation(t *testing.T) {
	p := NewMockProducer(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	lines := p.Stream(ctx, mockRequest())

	// Read one line to be sure the run is underway, then cancel
	select {
	case <-lines:
	case <-time.After(2 * time.Second):
		t.Fatal("no output before cancel")
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after cancellation")
		}
	}
}

func TestMockDecisionIsStable(t *testing.T) {
	d1, c1, r1, p1 := mockDecision("TSLA")
	d2, c2, r2, p2 := mockDecision("TSLA")

	if d1 != d2 || c1 != c2 || r1 != r2 || p1 != p2 {
		t.Fatal("decision for the same ticker must be stable")
	}

	switch d1 {
	case "BUY", "SELL", "HOLD":
	default:
		t.Errorf("unexpected decision %q", d1)
	}
	if c1 < 60 || c1 > 95 {
		t.Errorf("confidence out of range: %d", c1)
	}
}
