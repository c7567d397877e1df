package model

// Option is a labeled catalog value
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TickerOption pairs a company name with its symbol
type TickerOption struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// DepthOption describes a research depth level
type DepthOption struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CatalogResponse is the static configuration returned by GET /api/config
type CatalogResponse struct {
	Tickers   []TickerOption        `json:"tickers"`
	Analysts  []string              `json:"analysts"`
	Depth     []DepthOption         `json:"depth"`
	Providers []Option              `json:"provider"`
	Shallow   map[Provider][]Option `json:"shallow"`
	Deep      map[Provider][]Option `json:"deep"`
}

// Catalog returns the supported tickers, analysts, depth levels, providers and
// per-provider model lists. Pure data, safe to share.
func Catalog() CatalogResponse {
	return CatalogResponse{
		Tickers: []TickerOption{
			{Name: "Tesla", Symbol: "TSLA"},
			{Name: "Apple", Symbol: "AAPL"},
			{Name: "Microsoft", Symbol: "MSFT"},
			{Name: "NVIDIA", Symbol: "NVDA"},
			{Name: "Amazon", Symbol: "AMZN"},
			{Name: "Meta", Symbol: "META"},
			{Name: "Alphabet", Symbol: "GOOGL"},
			{Name: "Roblox", Symbol: "RBLX"},
			{Name: "Fubo", Symbol: "FUBO"},
			{Name: "SMR", Symbol: "SMR"},
			{Name: "Hims & Hers", Symbol: "HIMS"},
		},
		Analysts: []string{
			"Market Analyst", "Social Media Analyst", "News Analyst",
			"Fundamentals Analyst", "Momentum Analyst",
		},
		Depth: []DepthOption{
			{Name: "Shallow - Quick research, few debate and strategy discussion rounds", Value: int(DepthShallow)},
			{Name: "Medium - Middle ground, moderate debate rounds and strategy discussion", Value: int(DepthMedium)},
			{Name: "Deep - Comprehensive research, in depth debate and strategy discussion", Value: int(DepthDeep)},
		},
		Providers: []Option{
			{Name: "OpenAI", Value: string(ProviderOpenAI)},
			{Name: "Anthropic", Value: string(ProviderAnthropic)},
			{Name: "Google", Value: string(ProviderGoogle)},
			{Name: "Openrouter", Value: string(ProviderOpenrouter)},
			{Name: "Ollama", Value: string(ProviderOllama)},
		},
		Shallow: map[Provider][]Option{
			ProviderOpenAI: {
				{Name: "GPT-4o-mini - Fast and efficient for quick tasks", Value: "gpt-4o-mini"},
				{Name: "GPT-4.1-nano - Ultra-lightweight model for basic operations", Value: "gpt-4.1-nano"},
				{Name: "GPT-4.1-mini - Compact model with good performance", Value: "gpt-4.1-mini"},
				{Name: "GPT-4o - Standard model with solid capabilities", Value: "gpt-4o"},
			},
			ProviderAnthropic: {
				{Name: "Claude Haiku 3.5 - Fast inference and standard capabilities", Value: "claude-3-5-haiku-latest"},
				{Name: "Claude Sonnet 3.5 - Highly capable standard model", Value: "claude-3-5-sonnet-latest"},
				{Name: "Claude Sonnet 3.7 - Exceptional hybrid reasoning and agentic capabilities", Value: "claude-3-7-sonnet-latest"},
				{Name: "Claude Sonnet 4 - High performance and excellent reasoning", Value: "claude-sonnet-4-0"},
			},
			ProviderGoogle: {
				{Name: "Gemini 2.0 Flash-Lite - Cost efficiency and low latency", Value: "gemini-2.0-flash-lite"},
				{Name: "Gemini 2.0 Flash - Next generation features, speed, and thinking", Value: "gemini-2.0-flash"},
				{Name: "Gemini 2.5 Flash - Adaptive thinking, cost efficiency", Value: "gemini-2.5-flash-preview-05-20"},
			},
			ProviderOpenrouter: {
				{Name: "Meta: Llama 4 Scout", Value: "meta-llama/llama-4-scout:free"},
				{Name: "Meta: Llama 3.3 8B Instruct - A lightweight and ultra-fast variant of Llama 3.3 70B", Value: "meta-llama/llama-3.3-8b-instruct:free"},
				{Name: "google/gemini-2.0-flash-exp:free - Gemini Flash 2.0 offers a significantly faster time to first token", Value: "google/gemini-2.0-flash-exp:free"},
			},
			ProviderOllama: {
				{Name: "llama3.1 local", Value: "llama3.1"},
				{Name: "llama3.2 local", Value: "llama3.2"},
			},
		},
		Deep: map[Provider][]Option{
			ProviderOpenAI: {
				{Name: "GPT-4.1-nano - Ultra-lightweight model for basic operations", Value: "gpt-4.1-nano"},
				{Name: "GPT-4.1-mini - Compact model with good performance", Value: "gpt-4.1-mini"},
				{Name: "GPT-4o - Standard model with solid capabilities", Value: "gpt-4o"},
				{Name: "o4-mini - Specialized reasoning model (compact)", Value: "o4-mini"},
				{Name: "o3-mini - Advanced reasoning model (lightweight)", Value: "o3-mini"},
				{Name: "o3 - Full advanced reasoning model", Value: "o3"},
				{Name: "o1 - Premier reasoning and problem-solving model", Value: "o1"},
			},
			ProviderAnthropic: {
				{Name: "Claude Haiku 3.5 - Fast inference and standard capabilities", Value: "claude-3-5-haiku-latest"},
				{Name: "Claude Sonnet 3.5 - Highly capable standard model", Value: "claude-3-5-sonnet-latest"},
				{Name: "Claude Sonnet 3.7 - Exceptional hybrid reasoning and agentic capabilities", Value: "claude-3-7-sonnet-latest"},
				{Name: "Claude Sonnet 4 - High performance and excellent reasoning", Value: "claude-sonnet-4-0"},
				{Name: "Claude Opus 4 - Most powerful Anthropic model", Value: "claude-opus-4-0"},
			},
			ProviderGoogle: {
				{Name: "Gemini 2.0 Flash-Lite - Cost efficiency and low latency", Value: "gemini-2.0-flash-lite"},
				{Name: "Gemini 2.0 Flash - Next generation features, speed, and thinking", Value: "gemini-2.0-flash"},
				{Name: "Gemini 2.5 Flash - Adaptive thinking, cost efficiency", Value: "gemini-2.5-flash-preview-05-20"},
				{Name: "Gemini 2.5 Pro", Value: "gemini-2.5-pro-preview-06-05"},
			},
			ProviderOpenrouter: {
				{Name: "DeepSeek V3 - a 685B-parameter, mixture-of-experts model", Value: "deepseek/deepseek-chat-v3-0324:free"},
			},
			ProviderOllama: {
				{Name: "llama3.1 local", Value: "llama3.1"},
				{Name: "qwen3", Value: "qwen3"},
			},
		},
	}
}
