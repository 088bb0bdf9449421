package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/scenario"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		if msg.Config.Rules != nil {
			engine, err := calculation.NewEngineWithRules(*msg.Config.Rules)
			if err != nil {
				m.err = err
				return m, nil
			}
			engine.SetLogger(m.engine.Logger)
			engine.Debug = m.engine.Debug
			m.engine = engine
		}
		m.loadProfile(0)
		return m, nil

	case SnapshotSavedMsg:
		if msg.Err != nil {
			m.status = "Save failed: " + msg.Err.Error()
		} else {
			m.status = "Saved " + msg.Path
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An error screen only accepts quit or dismiss
	if m.err != nil {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "enter":
			m.err = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.scene != SceneCalculator {
			m.navigate(SceneCalculator)
			return m, nil
		}
		return m, tea.Quit

	case "f1":
		if m.scene == SceneHelp {
			m.navigate(m.previousScene)
		} else {
			m.navigate(SceneHelp)
		}
		return m, nil

	case "ctrl+b":
		if m.scene == SceneBreakdown {
			m.navigate(SceneCalculator)
		} else {
			m.navigate(SceneBreakdown)
		}
		return m, nil
	}

	if m.scene != SceneCalculator {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down", "enter":
		return m, m.setFocus(m.focus + 1)

	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)

	case "ctrl+n":
		m.loadProfile(m.profileIndex + 1)
		return m, nil

	case "ctrl+p":
		m.loadProfile(m.profileIndex - 1)
		return m, nil

	case "ctrl+r":
		m.reset()
		return m, nil

	case "ctrl+s":
		return m.save()
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards msg to the focused field and recomputes on any change
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.inputs[m.focus].Value() != before {
		m.status = ""
		m.recompute()
	}
	return m, cmd
}

func (m *Model) navigate(scene Scene) {
	m.previousScene = m.scene
	m.scene = scene
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.comparison == nil {
		m.status = "Nothing to save"
		return m, nil
	}
	p, err := m.profileFromInputs()
	if err != nil {
		m.status = fmt.Sprintf("Nothing to save: %v", err)
		return m, nil
	}
	snap := scenario.NewSnapshot(m.financialYear(), p, *m.comparison)
	m.status = "Saving..."
	return m, saveSnapshotCmd(m.store, snap)
}
