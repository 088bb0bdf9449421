package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/scenario"
)

const (
	fieldGross = iota
	fieldDeductions
	fieldAge
	fieldCount
)

var fieldLabels = [fieldCount]string{"Gross income", "Deductions", "Age or bracket"}

var errNoIncome = errors.New("enter a gross income")

// Options configures NewModel
type Options struct {
	ConfigPath string // optional profile file; profiles can be cycled with ctrl+n / ctrl+p
	SaveDir    string // where ctrl+s writes snapshots
}

// Model is the whole application state
type Model struct {
	scene         Scene
	previousScene Scene

	width  int
	height int

	engine *calculation.Engine
	inputs []textinput.Model
	focus  int

	comparison *domain.RegimeComparison
	inputErr   string

	configPath   string
	config       *domain.Configuration
	profileIndex int

	store  *scenario.Store
	status string
	err    error
}

// NewModel creates the model with empty inputs and the focus on gross income
func NewModel(engine *calculation.Engine, opts Options) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}

	inputs := make([]textinput.Model, fieldCount)
	placeholders := [fieldCount]string{"e.g., 15,00,000 or 15L", "e.g., 1,50,000", "e.g., 45 or senior"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 20
		ti.Width = 24
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[fieldGross].Focus()

	saveDir := opts.SaveDir
	if saveDir == "" {
		saveDir = config.DefaultSettings().SaveDir
	}

	return Model{
		scene:      SceneCalculator,
		width:      80,
		height:     24,
		engine:     engine,
		inputs:     inputs,
		configPath: opts.ConfigPath,
		store:      scenario.NewStore(saveDir),
	}
}

// Init starts the cursor blinking and loads the profile file if one was given
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadConfigCmd(m.configPath, m.engine.Rules))
}

func loadConfigCmd(path string, rules domain.TaxRules) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParserWithRules(rules)
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func saveSnapshotCmd(store *scenario.Store, snap *scenario.Snapshot) tea.Cmd {
	return func() tea.Msg {
		path, err := store.Save(snap)
		return SnapshotSavedMsg{Path: path, Err: err}
	}
}

// Comparison returns the latest comparison, or nil while the inputs are empty or invalid
func (m Model) Comparison() *domain.RegimeComparison {
	return m.comparison
}

// InputError returns the message shown under the inputs
func (m Model) InputError() string {
	return m.inputErr
}

// profileFromInputs builds a profile from the three text fields
func (m Model) profileFromInputs() (domain.TaxProfile, error) {
	p := domain.TaxProfile{Name: m.profileName()}

	grossText := strings.TrimSpace(m.inputs[fieldGross].Value())
	if grossText == "" {
		return p, errNoIncome
	}
	gross, err := domain.ParseAmount(grossText)
	if err != nil {
		return p, fmt.Errorf("gross income: %w", err)
	}
	p.GrossIncome = gross

	if text := strings.TrimSpace(m.inputs[fieldDeductions].Value()); text != "" {
		ded, err := domain.ParseAmount(text)
		if err != nil {
			return p, fmt.Errorf("deductions: %w", err)
		}
		p.Deductions = domain.DeductionSet{domain.DeductionTotalKey: ded}
	}

	if text := strings.TrimSpace(m.inputs[fieldAge].Value()); text != "" {
		if age, err := strconv.Atoi(text); err == nil {
			if age < 0 || age > 130 {
				return p, fmt.Errorf("age %d out of range", age)
			}
			p.Age = &age
		} else {
			bracket, err := domain.ParseAgeBracket(text)
			if err != nil {
				return p, err
			}
			p.AgeBracket = bracket
		}
	}

	return p, nil
}

func (m Model) profileName() string {
	if m.config != nil && m.profileIndex < len(m.config.Profiles) {
		return m.config.Profiles[m.profileIndex].Name
	}
	return "interactive"
}

// recompute runs the regime comparison for the current inputs
func (m *Model) recompute() {
	p, err := m.profileFromInputs()
	if err != nil {
		m.comparison = nil
		if errors.Is(err, errNoIncome) {
			m.inputErr = ""
		} else {
			m.inputErr = err.Error()
		}
		return
	}
	cmp := m.engine.CompareProfile(p)
	m.comparison = &cmp
	m.inputErr = ""
}

// loadProfile copies a configured profile into the input fields
func (m *Model) loadProfile(i int) {
	if m.config == nil || len(m.config.Profiles) == 0 {
		return
	}
	n := len(m.config.Profiles)
	m.profileIndex = ((i % n) + n) % n
	p := m.config.Profiles[m.profileIndex]

	m.inputs[fieldGross].SetValue(p.GrossIncome.String())
	m.inputs[fieldDeductions].SetValue("")
	if len(p.Deductions) > 0 {
		m.inputs[fieldDeductions].SetValue(p.TotalDeductions().String())
	}
	switch {
	case p.AgeBracket != "":
		m.inputs[fieldAge].SetValue(string(p.AgeBracket))
	case p.Age != nil:
		m.inputs[fieldAge].SetValue(strconv.Itoa(*p.Age))
	default:
		m.inputs[fieldAge].SetValue("")
	}
	m.status = fmt.Sprintf("Loaded profile %s (%d of %d)", p.Name, m.profileIndex+1, n)
	m.recompute()
}

// setFocus moves the cursor to field i, wrapping at both ends
func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = ((i % fieldCount) + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

func (m *Model) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.comparison = nil
	m.inputErr = ""
	m.status = "Cleared"
}

func (m Model) financialYear() string {
	if m.config != nil && m.config.FinancialYear != "" {
		return m.config.FinancialYear
	}
	return m.engine.Rules.FinancialYear
}
