package model

// WebSocket message types
const (
	WSMessageTypeStatus = "status"
	WSMessageTypeLog    = "log"
)

// Liveness probe tokens relayed as plain text, outside the event stream
const (
	WSPingToken = "ping"
	WSPongToken = "pong"
)

// WSStatusMessage announces a lifecycle state change
type WSStatusMessage struct {
	Type  string        `json:"type"`
	State AnalysisState `json:"state"`
}

// WSLogMessage carries one progress line
type WSLogMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"ts"`
}
