// Package tui provides the interactive search-hit picker.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shelfdex/internal/openlibrary"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 18
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the picker.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user chose a hit to import.
	ActionSelected
	// ActionSkipped indicates the user declined every hit.
	ActionSkipped
)

// SelectionResult holds the outcome of a picker run.
type SelectionResult struct {
	Action    SelectionAction
	Selection *openlibrary.SearchHit
}

type hitItem struct {
	openlibrary.SearchHit
}

func (i hitItem) FilterValue() string { return i.SearchHit.Title }

func (i hitItem) year() string {
	if i.Year == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *i.Year)
}

type itemStyles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		metaStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type hitDelegate struct {
	styles itemStyles
}

func newDelegate() hitDelegate {
	return hitDelegate{styles: newItemStyles()}
}

func (d hitDelegate) Height() int                         { return 4 }
func (d hitDelegate) Spacing() int                        { return 1 }
func (d hitDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d hitDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	hit, ok := item.(hitItem)
	if !ok {
		return
	}

	authors := strings.Join(hit.Authors, ", ")
	if authors == "" {
		authors = "unknown author"
	}
	meta := authors
	if hit.Language != "" {
		meta += " · " + hit.Language
	}

	titleLine := d.styles.titleStyle.Render(fmt.Sprintf("%s (%s)", hit.SearchHit.Title, hit.year()))
	metaLine := d.styles.metaStyle.Render(meta)
	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, metaLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list   list.Model
	query  string
	result SelectionResult
}

func newModel(query string, hits []openlibrary.SearchHit) *model {
	listItems := make([]list.Item, len(hits))
	for i, hit := range hits {
		listItems[i] = hitItem{hit}
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		query:  query,
		result: SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(hitItem); ok {
				hit := selected.SearchHit
				m.result = SelectionResult{Action: ActionSelected, Selection: &hit}
				return m, tea.Quit
			}
		case "esc", "s", "q", "ctrl+c":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Results for: %s", m.query))
	help := helpStyle.Render("Up/Down navigate | Enter import | Esc cancel")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectHit shows the picker and returns the user's choice. A single hit
// is still shown so the user can confirm before anything is imported.
func SelectHit(query string, hits []openlibrary.SearchHit) (SelectionResult, error) {
	if len(hits) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	finalModel, err := runProgram(newModel(query, hits))
	if err != nil {
		return SelectionResult{}, fmt.Errorf("selection UI failed: %w", err)
	}

	m, ok := finalModel.(*model)
	if !ok {
		return SelectionResult{}, fmt.Errorf("unexpected model type %T", finalModel)
	}
	return m.result, nil
}

func clamp(preferred, max, min int) int {
	if max < min {
		return min
	}
	if preferred > max {
		return max
	}
	if preferred < min {
		return min
	}
	return preferred
}
