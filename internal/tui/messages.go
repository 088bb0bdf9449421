package tui

import "github.com/rgehrsitz/itax/internal/domain"

// Scene is one screen of the application
type Scene int

const (
	SceneCalculator Scene = iota
	SceneBreakdown
	SceneHelp
)

// String returns the scene title shown in the breadcrumb
func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneBreakdown:
		return "Slab Breakdown"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ConfigLoadedMsg is sent when the profile file has been parsed
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg reports a failure that stops the current action
type ErrorMsg struct {
	Err error
}

// SnapshotSavedMsg is sent after a save attempt
type SnapshotSavedMsg struct {
	Path string
	Err  error
}
