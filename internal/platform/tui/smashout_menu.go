package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkovalev/tui-smashout/internal/core"
	"github.com/mkovalev/tui-smashout/internal/games/smashout"
)

// SmashoutMode represents the selected game mode.
type SmashoutMode int

const (
	SmashoutModeCampaign SmashoutMode = iota
	SmashoutModeEndless
)

// SmashoutSelection holds the user's selection from the mode menu.
type SmashoutSelection struct {
	Mode       SmashoutMode
	Level      int    // 0 = start from beginning, 1-N = specific level
	Difficulty string // "" = config default
}

// smashoutMenuPage tracks which sub-page the mode menu is on.
type smashoutMenuPage int

const (
	pageMode smashoutMenuPage = iota
	pageLevel
	pageDifficulty
)

// SmashoutModeModel lets users choose mode, difficulty and starting level.
type SmashoutModeModel struct {
	page        smashoutMenuPage
	cursor      int
	levelCursor int
	diffCursor  int
	width       int
	height      int
	keyMapper   *KeyMapper
	selection   SmashoutSelection
	choosing    bool
	quitting    bool
	back        bool
}

var difficultyNames = []string{"easy", "normal", "hard", "fixed"}

// NewSmashoutModeModel creates a new mode selection model.
func NewSmashoutModeModel(width, height int) SmashoutModeModel {
	return SmashoutModeModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m SmashoutModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SmashoutModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SmashoutModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch m.page {
	case pageLevel:
		return m.handleLevelKey(action)
	case pageDifficulty:
		return m.handleDifficultyKey(action)
	default:
		return m.handleModeKey(action)
	}
}

func (m SmashoutModeModel) handleModeKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 3 { // Campaign, Endless, Select Level, Difficulty
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0: // Campaign
			m.choosing = false
			m.selection.Mode = SmashoutModeCampaign
			m.selection.Level = 0
			return m, tea.Quit
		case 1: // Endless
			m.choosing = false
			m.selection.Mode = SmashoutModeEndless
			m.selection.Level = 0
			return m, tea.Quit
		case 2: // Select Level
			m.page = pageLevel
			m.levelCursor = 0
		case 3: // Difficulty
			m.page = pageDifficulty
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m SmashoutModeModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	levelCount := smashout.LayoutCount()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < levelCount-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection.Mode = SmashoutModeCampaign
		m.selection.Level = m.levelCursor + 1 // 1-indexed
		return m, tea.Quit
	case MenuActionBack:
		m.page = pageMode
	}

	return m, nil
}

func (m SmashoutModeModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(difficultyNames)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		m.selection.Difficulty = difficultyNames[m.diffCursor]
		m.page = pageMode
	case MenuActionBack:
		m.page = pageMode
	}

	return m, nil
}

// View renders the current menu page.
func (m SmashoutModeModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.page {
	case pageLevel:
		return m.viewLevelSelect()
	case pageDifficulty:
		return m.viewDifficultySelect()
	default:
		return m.viewModeSelect()
	}
}

func (m SmashoutModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S M A S H O U T", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	diff := m.selection.Difficulty
	if diff == "" {
		diff = "default"
	}
	modes := []string{
		fmt.Sprintf("Campaign (%d levels)", smashout.LayoutCount()),
		"Endless Mode",
		"Select Level...",
		fmt.Sprintf("Difficulty: %s", diff),
	}

	for i, mode := range modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, mode), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m SmashoutModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	layouts := smashout.BuiltinLayouts()
	for i, lay := range layouts {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, lay.Name)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m SmashoutModeModel) viewDifficultySelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("DIFFICULTY", m.width))
	b.WriteString("\n\n")

	for i, name := range difficultyNames {
		cursor := "  "
		if i == m.diffCursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+name, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m SmashoutModeModel) Selected() *SmashoutSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m SmashoutModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SmashoutModeModel) WantsBack() bool {
	return m.back
}

// RunSmashoutModeSelector runs the mode selection and returns the selection.
// A nil selection means the user backed out or quit.
func RunSmashoutModeSelector(cfg core.RuntimeConfig) (*SmashoutSelection, core.RuntimeConfig, error) {
	model := NewSmashoutModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(SmashoutModeModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
