package model

import (
	"strings"
	"time"
)

// LLM providers
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
	ProviderGoogle     Provider = "google"
	ProviderOpenrouter Provider = "openrouter"
	ProviderOllama     Provider = "ollama"
)

// Research depth levels (debate/discussion rounds)
type ResearchDepth int

const (
	DepthShallow ResearchDepth = 1
	DepthMedium  ResearchDepth = 3
	DepthDeep    ResearchDepth = 5
)

// AnalystConfig selects which analysts participate in the run
type AnalystConfig struct {
	Market       bool `json:"market"`
	Social       bool `json:"social"`
	News         bool `json:"news"`
	Fundamentals bool `json:"fundamentals"`
	Momentum     bool `json:"momentum"`
}

// Enabled returns the names of the selected analysts, in pipeline order
func (a AnalystConfig) Enabled() []string {
	var names []string
	if a.Market {
		names = append(names, "market")
	}
	if a.Social {
		names = append(names, "social")
	}
	if a.News {
		names = append(names, "news")
	}
	if a.Fundamentals {
		names = append(names, "fundamentals")
	}
	if a.Momentum {
		names = append(names, "momentum")
	}
	return names
}

// AnalysisRequest is the payload for POST /api/start
type AnalysisRequest struct {
	Ticker        string         `json:"ticker" validate:"required,min=1,max=10"`
	AnalysisDate  string         `json:"analysis_date" validate:"required,datetime=2006-01-02"`
	Analysts      *AnalystConfig `json:"analysts" validate:"omitempty"`
	ResearchDepth ResearchDepth  `json:"research_depth" validate:"omitempty,oneof=1 3 5"`
	LLMProvider   Provider       `json:"llm_provider" validate:"omitempty,oneof=openai anthropic google openrouter ollama"`
	ShallowModel  string         `json:"shallow_model" validate:"omitempty,max=80"`
	DeepModel     string         `json:"deep_model" validate:"omitempty,max=80"`
}

// Normalize canonicalizes the ticker and fills defaults for omitted fields.
// Must run before validation.
func (r *AnalysisRequest) Normalize() {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	if r.Analysts == nil {
		r.Analysts = &AnalystConfig{Market: true, Social: true}
	}
	if r.ResearchDepth == 0 {
		r.ResearchDepth = DepthShallow
	}
	if r.LLMProvider == "" {
		r.LLMProvider = ProviderOpenAI
	}
	if r.ShallowModel == "" {
		r.ShallowModel = "gpt-4o-mini"
	}
	if r.DeepModel == "" {
		r.DeepModel = "gpt-4o-mini"
	}
}

// AnalysisResponse is returned by /api/start and /api/stop
type AnalysisResponse struct {
	Status    string `json:"status"`
	Ticker    string `json:"ticker,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse is returned by /api/health
type HealthResponse struct {
	Status            string        `json:"status"`
	State             AnalysisState `json:"state"`
	TradingMode       string        `json:"trading_mode"`
	ActiveConnections int           `json:"active_connections"`
}

// Timestamp formats t the way the streaming channel does (UTC, RFC3339)
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
