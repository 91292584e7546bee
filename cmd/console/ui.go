package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/chronicler/internal/engine"
	"github.com/jwebster45206/chronicler/pkg/game"
	"github.com/jwebster45206/chronicler/pkg/i18n"
)

type screen int

const (
	screenStart screen = iota
	screenPlaying
	screenGameOver
)

// Indexes into ConsoleUI.inputs.
const (
	inputName = iota
	inputPower
	inputDescription
	inputCount
)

var loadingKeys = []string{"loadingFate", "loadingVision", "loadingDestiny", "loadingScene"}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	eng  *engine.Engine
	lang i18n.Language

	scr    screen
	width  int
	height int
	ready  bool

	// Character creation state
	genreIndex int
	inputs     []textinput.Model
	focusIndex int

	// Scene state
	sceneViewport viewport.Model
	textarea      textarea.Model
	spinner       spinner.Model
	scene         *game.StoryScene
	art           string
	loading       bool
	loadingKey    string
	turnCount     int
	showInventory bool
	errText       string

	// Quit confirmation state
	showQuitModal bool
}

type sceneMsg struct {
	scene *game.StoryScene
	err   error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // light grey

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Italic(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	enemyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	genreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	genreSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true).
				Padding(0, 1)

	gameOverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(eng *engine.Engine) ConsoleUI {
	lang := eng.Language()

	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[inputName].Focus()

	ta := textarea.New()
	ta.Prompt = hintStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	m := ConsoleUI{
		eng:           eng,
		lang:          lang,
		scr:           screenStart,
		inputs:        inputs,
		textarea:      ta,
		spinner:       sp,
		sceneViewport: vp,
	}
	m.applyLanguage()
	return m
}

// applyLanguage refreshes all translated placeholder text.
func (m *ConsoleUI) applyLanguage() {
	m.inputs[inputName].Placeholder = i18n.T(m.lang, "namePlaceholder")
	m.inputs[inputPower].Placeholder = i18n.T(m.lang, "powerPlaceholder")
	m.inputs[inputDescription].Placeholder = i18n.T(m.lang, "descriptionPlaceholder")
	m.textarea.Placeholder = i18n.T(m.lang, "customActionPrompt")
}

func (m ConsoleUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.sceneViewport.Width = m.width - 4
		m.sceneViewport.Height = m.sceneHeight()
		m.textarea.SetWidth(m.width - 8)
		m.writeSceneContent()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.showQuitModal = true
			return m, nil
		}

	case sceneMsg:
		return m.handleScene(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.scr {
	case screenStart:
		return m.updateStart(msg)
	case screenPlaying:
		return m.updatePlaying(msg)
	default:
		return m.updateGameOver(msg)
	}
}

// sceneHeight is the viewport height left after the fixed chrome
// (stats bar, choices, textarea, hints).
func (m ConsoleUI) sceneHeight() int {
	h := m.height - 14
	if h < 4 {
		h = 4
	}
	return h
}

func (m ConsoleUI) handleScene(msg sceneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errText = msg.err.Error()
		// A failed first turn leaves us on the start screen; a failed
		// mid-game turn keeps the current scene playable.
		return m, nil
	}

	m.errText = ""
	m.scene = msg.scene
	m.showInventory = false
	m.turnCount++
	if msg.scene.Image != "" {
		m.art = sceneArt(msg.scene.Image)
	} else if m.scene.IsGameOver {
		m.art = ""
	}

	if msg.scene.IsGameOver {
		m.scr = screenGameOver
	} else {
		m.scr = screenPlaying
		m.textarea.Reset()
	}
	m.writeSceneContent()
	m.sceneViewport.GotoTop()
	return m, nil
}

func (m ConsoleUI) updateStart(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlL:
			if m.lang == i18n.LanguageEN {
				m.lang = i18n.LanguagePT
			} else {
				m.lang = i18n.LanguageEN
			}
			m.eng.SetLanguage(m.lang)
			m.applyLanguage()
			return m, nil

		case tea.KeyLeft:
			m.genreIndex = (m.genreIndex + len(game.Genres) - 1) % len(game.Genres)
			return m, nil

		case tea.KeyRight:
			m.genreIndex = (m.genreIndex + 1) % len(game.Genres)
			return m, nil

		case tea.KeyTab, tea.KeyShiftTab, tea.KeyEnter:
			if key.Type == tea.KeyEnter && m.focusIndex == inputCount-1 {
				return m.startGame()
			}
			if key.Type == tea.KeyShiftTab {
				m.focusIndex = (m.focusIndex + inputCount - 1) % inputCount
			} else {
				m.focusIndex = (m.focusIndex + 1) % inputCount
			}
			for i := range m.inputs {
				if i == m.focusIndex {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m ConsoleUI) startGame() (tea.Model, tea.Cmd) {
	character := game.CharacterProfile{
		Name:        strings.TrimSpace(m.inputs[inputName].Value()),
		Power:       strings.TrimSpace(m.inputs[inputPower].Value()),
		Description: strings.TrimSpace(m.inputs[inputDescription].Value()),
	}
	if character.Name == "" || character.Power == "" || character.Description == "" {
		m.errText = i18n.T(m.lang, "characterCreationTitle")
		return m, nil
	}

	genre := game.Genres[m.genreIndex]
	m.errText = ""
	m.loading = true
	m.loadingKey = loadingKeys[m.turnCount%len(loadingKeys)]

	eng := m.eng
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		scene, err := eng.StartGame(context.Background(), genre, character)
		return sceneMsg{scene, err}
	})
}

func (m ConsoleUI) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.loading {
			return m, nil
		}

		switch key.Type {
		case tea.KeyEsc:
			if m.errText != "" {
				m.errText = ""
				return m, nil
			}
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlE:
			m.showInventory = !m.showInventory
			m.writeSceneContent()
			return m, nil

		case tea.KeyCtrlY:
			if m.scene != nil {
				_ = clipboard.WriteAll(m.scene.SceneDescription)
			}
			return m, nil

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m.submitAction(input, game.Choice{})

		default:
			// Bare digits select a choice; anything else is typed
			// into the custom action box.
			if m.textarea.Value() == "" && len(key.String()) == 1 {
				if n := int(key.String()[0] - '0'); n >= 1 && m.scene != nil && n <= len(m.scene.Choices) {
					return m.submitAction("", m.scene.Choices[n-1])
				}
			}
		}
	}

	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)
	m.textarea, taCmd = m.textarea.Update(msg)
	m.sceneViewport, vpCmd = m.sceneViewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

func (m ConsoleUI) submitAction(custom string, choice game.Choice) (tea.Model, tea.Cmd) {
	m.errText = ""
	m.loading = true
	m.loadingKey = loadingKeys[m.turnCount%len(loadingKeys)]

	eng := m.eng
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		var (
			scene *game.StoryScene
			err   error
		)
		if custom != "" {
			scene, err = eng.SubmitCustomAction(context.Background(), custom)
		} else {
			scene, err = eng.SubmitChoice(context.Background(), choice)
		}
		return sceneMsg{scene, err}
	})
}

func (m ConsoleUI) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyCtrlN:
			m.eng.Restart()
			m.scr = screenStart
			m.scene = nil
			m.art = ""
			m.errText = ""
			m.showInventory = false
			for i := range m.inputs {
				m.inputs[i].Reset()
			}
			m.focusIndex = inputName
			m.inputs[inputName].Focus()
			return m, textinput.Blink
		case tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.sceneViewport, cmd = m.sceneViewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter", "ctrl+c":
			return m, tea.Quit
		case "n", "N", "esc":
			m.showQuitModal = false
			return m, nil
		}
	}
	return m, nil
}

// writeSceneContent fills the viewport with either the scene narration
// or the inventory panel, wrapped to the current width.
func (m *ConsoleUI) writeSceneContent() {
	if m.scene == nil {
		m.sceneViewport.SetContent("")
		return
	}
	w := m.sceneViewport.Width - 2
	if w < 20 {
		w = 20
	}

	if m.showInventory {
		m.sceneViewport.SetContent(m.inventoryContent(w))
		return
	}

	var content strings.Builder
	content.WriteString(sceneStyle.Render(wordwrap.String(m.scene.SceneDescription, w)))
	if m.scene.Log != "" {
		content.WriteString("\n\n")
		content.WriteString(logStyle.Render(wordwrap.String(m.scene.Log, w)))
	}
	m.sceneViewport.SetContent(content.String())
}

func (m *ConsoleUI) inventoryContent(w int) string {
	var content strings.Builder
	stats := m.scene.PlayerStats

	content.WriteString(labelStyle.Render(i18n.T(m.lang, "inventoryTab")) + "\n")
	if len(stats.Inventory) == 0 {
		content.WriteString(hintStyle.Render("—") + "\n")
	}
	for _, item := range stats.Inventory {
		line := fmt.Sprintf("• %s ×%d", item.Name, item.Quantity)
		if item.Description != "" {
			line += hintStyle.Render("  " + item.Description)
		}
		content.WriteString(wordwrap.String(line, w) + "\n")
	}

	content.WriteString("\n" + labelStyle.Render(i18n.T(m.lang, "organizationsTab")) + "\n")
	if len(stats.Entities) == 0 {
		content.WriteString(hintStyle.Render("—") + "\n")
	}
	for _, e := range stats.Entities {
		content.WriteString(fmt.Sprintf("• %s (%s)\n", e.Name, e.Type))
		for _, r := range e.Roles {
			content.WriteString(wordwrap.String(fmt.Sprintf("    %s: %s", r.Role, r.Person), w) + "\n")
		}
	}
	return content.String()
}

func (m ConsoleUI) statsBar() string {
	stats := m.scene.PlayerStats
	parts := []string{
		fmt.Sprintf("%s %d/%d", i18n.T(m.lang, "hp"), stats.HP, stats.MaxHP),
		fmt.Sprintf("%s %d", i18n.T(m.lang, "attack"), stats.Attack),
		fmt.Sprintf("%s %d", i18n.T(m.lang, "defense"), stats.Defense),
		fmt.Sprintf("%s %d", i18n.T(m.lang, "gold"), stats.Gold),
	}
	bar := statsStyle.Render(strings.Join(parts, "  │  "))
	if m.scene.Enemy != nil {
		bar += "  │  " + enemyStyle.Render(fmt.Sprintf("⚔ %s %d", m.scene.Enemy.Name, m.scene.Enemy.HP))
	}
	return bar
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showQuitModal {
		return m.viewQuitModal()
	}

	switch m.scr {
	case screenStart:
		return m.viewStart()
	case screenPlaying:
		return m.viewPlaying()
	default:
		return m.viewGameOver()
	}
}

func (m ConsoleUI) viewStart() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(i18n.T(m.lang, "title")) + "\n")
	b.WriteString("  " + subtitleStyle.Render(i18n.T(m.lang, "subtitle")) + "\n\n")

	b.WriteString("  " + labelStyle.Render(i18n.T(m.lang, "chooseYourGenre")) + "\n  ")
	for i, g := range game.Genres {
		label := i18n.T(m.lang, "genre_"+string(g))
		if i == m.genreIndex {
			b.WriteString(genreSelectedStyle.Render(label))
		} else {
			b.WriteString(genreStyle.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString("  " + labelStyle.Render(i18n.T(m.lang, "characterCreationTitle")) + "\n\n")
	labels := []string{
		i18n.T(m.lang, "characterName"),
		i18n.T(m.lang, "characterPower"),
		i18n.T(m.lang, "characterDescription"),
	}
	for i := range m.inputs {
		b.WriteString("  " + labels[i] + "\n")
		b.WriteString("  " + m.inputs[i].View() + "\n\n")
	}

	if m.loading {
		b.WriteString("  " + m.spinner.View() + loadingStyle.Render(i18n.T(m.lang, m.loadingKey)) + "\n")
	} else if m.errText != "" {
		b.WriteString("  " + errorStyle.Render(m.errText) + "\n")
	} else {
		b.WriteString("  " + hintStyle.Render("←/→ "+i18n.T(m.lang, "chooseYourGenre")+
			" · Tab · Enter: "+i18n.T(m.lang, "beginAdventure")+" · Ctrl+L: EN/PT · Ctrl+C") + "\n")
	}
	return b.String()
}

func (m ConsoleUI) viewPlaying() string {
	var b strings.Builder

	if m.art != "" {
		b.WriteString(m.art + "\n")
	}
	b.WriteString(m.sceneViewport.View() + "\n")
	b.WriteString("  " + separatorStyle.Render(strings.Repeat("─", max(10, m.width-4))) + "\n")
	b.WriteString("  " + m.statsBar() + "\n\n")

	if m.loading {
		b.WriteString("  " + m.spinner.View() + loadingStyle.Render(i18n.T(m.lang, m.loadingKey)) + "\n")
		return b.String()
	}

	b.WriteString("  " + labelStyle.Render(i18n.T(m.lang, "whatWillYouDo")) + "\n")
	for i, c := range m.scene.Choices {
		b.WriteString("  " + choiceStyle.Render(fmt.Sprintf("%d. %s", i+1, c.Text)) + "\n")
	}
	b.WriteString("\n  " + hintStyle.Render(i18n.T(m.lang, "otherAction")) + "\n")
	b.WriteString(m.textarea.View() + "\n")

	if m.errText != "" {
		b.WriteString("  " + errorStyle.Render(m.errText) + hintStyle.Render("  (Esc)") + "\n")
	} else {
		b.WriteString("  " + hintStyle.Render("1-3 · Enter: "+i18n.T(m.lang, "submitAction")+
			" · Ctrl+E: "+i18n.T(m.lang, "inventoryTab")+" · Ctrl+Y · Ctrl+C") + "\n")
	}
	return b.String()
}

func (m ConsoleUI) viewGameOver() string {
	var b strings.Builder
	b.WriteString("\n  " + gameOverStyle.Render(i18n.T(m.lang, "gameOverTitle")) + "\n\n")

	w := max(20, m.width-6)
	if m.scene != nil {
		b.WriteString(sceneStyle.Render(wordwrap.String(m.scene.SceneDescription, w)) + "\n\n")
		if m.scene.GameOverReason != "" {
			b.WriteString("  " + errorStyle.Render(wordwrap.String(m.scene.GameOverReason, w)) + "\n\n")
		}
	}
	b.WriteString("  " + hintStyle.Render("Enter: "+i18n.T(m.lang, "restart")+" · Ctrl+C") + "\n")
	return b.String()
}

func (m ConsoleUI) viewQuitModal() string {
	modal := modalStyle.Render("Quit Chronicler?\n\n[y] yes   [n] no")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
