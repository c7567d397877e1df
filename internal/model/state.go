package model

// AnalysisState is the lifecycle state of the single analysis slot
type AnalysisState string

const (
	StateIdle    AnalysisState = "idle"
	StateRunning AnalysisState = "running"
	StateStopped AnalysisState = "stopped"
	StateError   AnalysisState = "error"
)

// Terminal reports whether the state leaves the job slot free
func (s AnalysisState) Terminal() bool {
	return s != StateRunning
}
