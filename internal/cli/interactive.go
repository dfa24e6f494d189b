package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apresai/speak/internal/format"
)

// menuItem represents a single configurable option in the TUI.
type menuItem struct {
	label   string
	flag    string // flag the value is written back to
	value   string
	options []menuOption
	hint    string
	editing bool
	cursor  int // cursor within options when editing
}

type menuOption struct {
	label string
	value string
}

// menuState tracks which phase the TUI is in.
type menuState int

const (
	stateMenu menuState = iota
	stateEditing
)

// tuiModel is the Bubble Tea model for the interactive menu.
type tuiModel struct {
	items     []menuItem
	cursor    int
	state     menuState
	width     int
	err       error
	confirmed bool
	cancelled bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	menuLabelStyle = lipgloss.NewStyle().
			Width(12).
			Align(lipgloss.Right).
			MarginRight(2)

	menuValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	menuValueDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575")).
				Bold(true).
				PaddingLeft(2)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 3)

	buttonDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 3)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	headerBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)
)

const (
	idxText = iota
	idxFile
	idxOutput
	idxVoice
	idxLocale
	idxContainer
	idxQuality
	idxRate
	idxPitch
	idxStyle
	idxSpeak
)

var rateOptions = []menuOption{
	{label: "Default", value: ""},
	{label: "x-slow", value: "x-slow"},
	{label: "slow", value: "slow"},
	{label: "medium", value: "medium"},
	{label: "fast", value: "fast"},
	{label: "x-fast", value: "x-fast"},
}

var pitchOptions = []menuOption{
	{label: "Default", value: ""},
	{label: "x-low", value: "x-low"},
	{label: "low", value: "low"},
	{label: "medium", value: "medium"},
	{label: "high", value: "high"},
	{label: "x-high", value: "x-high"},
}

func containerOptions() []menuOption {
	opts := make([]menuOption, 0, len(format.Containers))
	for _, c := range format.Containers {
		opts = append(opts, menuOption{label: c.String(), value: c.String()})
	}
	return opts
}

func qualityOptions(container string) []menuOption {
	c, err := format.ParseContainer(container)
	if err != nil {
		c = format.DefaultContainer
	}
	var opts []menuOption
	for _, q := range format.Qualities(c) {
		opts = append(opts, menuOption{
			label: fmt.Sprintf("%d  %s", q.Level, q.Format),
			value: strconv.Itoa(q.Level),
		})
	}
	return opts
}

// buildMenuItems seeds every item from the current flags and settings.
func buildMenuItems() []menuItem {
	container := settings.Output.Container
	if flagContainer != "" {
		container = flagContainer
	}
	if container == "" {
		container = format.DefaultContainer.String()
	}
	quality := strconv.Itoa(format.DefaultQuality)
	if settings.Output.Quality != nil {
		quality = strconv.Itoa(*settings.Output.Quality)
	}
	if flagQuality != 0 {
		quality = strconv.Itoa(flagQuality)
	}
	voice := flagVoice
	if voice == "" {
		voice = settings.Text.Voice
	}

	items := []menuItem{
		{label: "Text", flag: "text", value: flagText, hint: "(or give a file below)"},
		{label: "File", flag: "file", value: flagFile, hint: "(optional: path, URL or PDF)"},
		{label: "Output", flag: "output", value: flagOutput, hint: "(play on speaker)"},
		{label: "Voice", flag: "voice", value: voice, hint: "(default for locale)"},
		{label: "Locale", flag: "locale", value: flagLocale, hint: "(" + settings.Text.Locale + ")"},
		{label: "Container", flag: "container-format", value: container, options: containerOptions()},
		{label: "Quality", flag: "quality", value: quality, options: qualityOptions(container)},
		{label: "Rate", flag: "rate", value: flagRate, options: rateOptions},
		{label: "Pitch", flag: "pitch", value: flagPitch, options: pitchOptions},
		{label: "Style", flag: "style", value: flagStyle, hint: "(azure only, e.g. cheerful)"},
		{label: ">>> Speak <<<"},
	}
	for i := range items {
		items[i].syncCursor()
	}
	return items
}

func (it *menuItem) syncCursor() {
	it.cursor = 0
	for j, opt := range it.options {
		if opt.value == it.value {
			it.cursor = j
			return
		}
	}
}

func initialTUIModel() tuiModel {
	return tuiModel{
		items:  buildMenuItems(),
		cursor: idxText,
		state:  stateMenu,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) isTextInput(idx int) bool {
	return idx != idxSpeak && len(m.items[idx].options) == 0
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateEditing:
			return m.updateEditing(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter", " ":
		if m.cursor == idxSpeak {
			if m.items[idxText].value == "" && m.items[idxFile].value == "" {
				m.err = errors.New("text or file is required")
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}
		m.state = stateEditing
		m.items[m.cursor].editing = true
		m.err = nil
	}
	return m, nil
}

func (m tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.cursor
	item := &m.items[idx]

	if m.isTextInput(idx) {
		switch msg.String() {
		case "enter":
			item.editing = false
			m.state = stateMenu
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "esc":
			item.editing = false
			m.state = stateMenu
		case "backspace":
			if r := []rune(item.value); len(r) > 0 {
				item.value = string(r[:len(r)-1])
			}
		case "ctrl+u":
			item.value = ""
		default:
			// Accept typed characters and pasted text
			if msg.Type == tea.KeyRunes {
				item.value += string(msg.Runes)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "enter", " ":
		if item.cursor >= 0 && item.cursor < len(item.options) {
			item.value = item.options[item.cursor].value
		}
		item.editing = false
		m.state = stateMenu

		// Quality levels differ per container; keep the level when it exists.
		if idx == idxContainer {
			q := &m.items[idxQuality]
			q.options = qualityOptions(item.value)
			if !hasOption(q.options, q.value) {
				q.value = strconv.Itoa(format.DefaultQuality)
			}
			q.syncCursor()
		}

		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "esc":
		item.editing = false
		m.state = stateMenu

	case "up", "k":
		if item.cursor > 0 {
			item.cursor--
		}

	case "down", "j":
		if item.cursor < len(item.options)-1 {
			item.cursor++
		}
	}
	return m, nil
}

func hasOption(opts []menuOption, v string) bool {
	for _, o := range opts {
		if o.value == v {
			return true
		}
	}
	return false
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(headerBorder.Render(titleStyle.Render("speak")))
	b.WriteString("\n")

	for i, item := range m.items {
		isActive := m.cursor == i

		if i == idxSpeak {
			b.WriteString("\n")
			if isActive {
				b.WriteString("  " + buttonStyle.Render(" Speak "))
			} else {
				b.WriteString("  " + buttonDimStyle.Render(" Speak "))
			}
			b.WriteString("\n")
			continue
		}

		cursor := "  "
		if isActive {
			cursor = cursorStyle.Render("> ")
		}
		renderedLabel := menuLabelStyle.Render(item.label)

		var renderedValue string
		switch {
		case item.editing && m.isTextInput(i):
			renderedValue = menuValueStyle.Render(item.value + "_")
		case item.value == "" && len(item.options) > 0:
			renderedValue = menuValueDimStyle.Render(item.options[0].label)
		case item.value == "":
			placeholder := item.hint
			if placeholder == "" {
				placeholder = "(not set)"
			}
			renderedValue = menuValueDimStyle.Render(placeholder)
		default:
			displayVal := item.value
			for _, opt := range item.options {
				if opt.value == item.value {
					displayVal = opt.label
					break
				}
			}
			renderedValue = menuValueStyle.Render(displayVal)
		}

		b.WriteString(cursor + renderedLabel + " " + renderedValue + "\n")

		if item.editing && len(item.options) > 0 {
			for j, opt := range item.options {
				if j == item.cursor {
					b.WriteString(selectedOptionStyle.Render("> "+opt.label) + "\n")
				} else {
					b.WriteString(optionStyle.Render("  "+opt.label) + "\n")
				}
			}
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	switch m.state {
	case stateMenu:
		b.WriteString(helpStyle.Render("  j/k or arrows to navigate | enter to edit | q to quit"))
	case stateEditing:
		if m.isTextInput(m.cursor) {
			b.WriteString(helpStyle.Render("  type value | enter to confirm | esc to cancel | ctrl+u to clear"))
		} else {
			b.WriteString(helpStyle.Render("  j/k or arrows to pick | enter to select | esc to cancel"))
		}
	}
	b.WriteString("\n")

	return b.String()
}

func runInteractiveSetup(cmd *cobra.Command) error {
	p := tea.NewProgram(initialTUIModel(), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return applySelections(cmd, result.(tuiModel))
}

// applySelections writes the wizard's values back through the command's
// flags so they take precedence like typed flags.
func applySelections(cmd *cobra.Command, final tuiModel) error {
	if final.cancelled || !final.confirmed {
		return errors.New("cancelled")
	}
	for _, item := range final.items {
		if item.flag == "" {
			continue
		}
		if item.value == "" && !cmd.Flags().Changed(item.flag) {
			continue
		}
		if err := cmd.Flags().Set(item.flag, item.value); err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(item.label), err)
		}
	}
	return nil
}
