package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tradingagent/api/internal/config"
	"github.com/tradingagent/api/internal/model"
)

// EngineClient handles communication with the external TradingAgents engine
type EngineClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// AnalyzeRequest is the request body for a full analysis run
type AnalyzeRequest struct {
	Ticker          string   `json:"ticker"`
	AnalysisDate    string   `json:"analysis_date"`
	Analysts        []string `json:"analysts"`
	DebateRounds    int      `json:"max_debate_rounds"`
	RiskRounds      int      `json:"max_risk_discuss_rounds"`
	LLMProvider     string   `json:"llm_provider"`
	ProviderBaseURL string   `json:"backend_url"`
	QuickThinkModel string   `json:"quick_think_llm"`
	DeepThinkModel  string   `json:"deep_think_llm"`
}

// AnalyzeResult is the terminal outcome of an analysis run
type AnalyzeResult struct {
	FinalDecision  string `json:"final_trade_decision"`
	InvestmentPlan string `json:"investment_plan,omitempty"`
	JudgeDecision  string `json:"judge_decision,omitempty"`
	Signal         string `json:"signal,omitempty"`
}

// NewEngineClient creates a new engine API client
func NewEngineClient(cfg *config.EngineConfig) *EngineClient {
	return &EngineClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
	}
}

// IsConfigured returns true if the engine endpoint and key are set
func (c *EngineClient) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// NewAnalyzeRequest maps an inbound API request to the engine's wire format
func NewAnalyzeRequest(req *model.AnalysisRequest) *AnalyzeRequest {
	return &AnalyzeRequest{
		Ticker:          req.Ticker,
		AnalysisDate:    req.AnalysisDate,
		Analysts:        req.Analysts.Enabled(),
		DebateRounds:    int(req.ResearchDepth),
		RiskRounds:      int(req.ResearchDepth),
		LLMProvider:     string(req.LLMProvider),
		ProviderBaseURL: ProviderBaseURL(req.LLMProvider),
		QuickThinkModel: req.ShallowModel,
		DeepThinkModel:  req.DeepModel,
	}
}

// Analyze runs a full analysis on the engine. This call blocks for the whole
// run, which can take minutes; callers are expected to run it off the main
// flow and poll for completion.
func (c *EngineClient) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResult, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result AnalyzeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse engine response: %w", err)
	}

	return &result, nil
}

// ProviderBaseURL returns the API base URL the engine should use for a
// given LLM provider.
func ProviderBaseURL(p model.Provider) string {
	switch p {
	case model.ProviderOpenAI:
		return "https://api.openai.com/v1"
	case model.ProviderAnthropic:
		return "https://api.anthropic.com/"
	case model.ProviderGoogle:
		return "https://generativelanguage.googleapis.com/v1"
	case model.ProviderOpenrouter:
		return "https://openrouter.ai/api/v1"
	case model.ProviderOllama:
		return "http://localhost:11434/v1"
	default:
		return ""
	}
}
