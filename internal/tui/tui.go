// Package tui is the terminal front end of the board.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/domains/todo/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeAddDescription
	modeEdit
	modeDescribe
	modeFilter
	modeConfirmDelete
)

type (
	boardChangedMsg struct{ status string }
	boardFailedMsg  struct {
		action string
		err    error
	}
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	badgeText   = lipgloss.Color("#ffffff")
)

type Model struct {
	ctx    context.Context
	board  *board.Board
	cfg    Config
	view   []model.Task
	cursor int
	mode   mode
	input  textinput.Model
	draft  model.Task
	target int64
	status string
}

func New(ctx context.Context, b *board.Board, cfg Config) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		ctx:    ctx,
		board:  b,
		cfg:    cfg,
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, '%s' to quit.", cfg.Keys.Add, cfg.Keys.Quit),
	}
	m.refresh()

	return m
}

// Run blocks until the user quits.
func Run(ctx context.Context, b *board.Board, cfg Config) error {
	program := tea.NewProgram(New(ctx, b, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()

	return err
}

func (m Model) Init() tea.Cmd {
	if !m.board.Networked() {
		return nil
	}

	return m.run("load", "Loaded tasks", m.board.Load)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardChangedMsg:
		m.status = msg.status
		m.refresh()
	case boardFailedMsg:
		m.status = fmt.Sprintf("%s failed, nothing was changed", msg.action)
		m.refresh()
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg.String())
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg.String())
		case modeFilter:
			return m.updateFilter(msg)
		default:
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys

	switch key {
	case "ctrl+c", keys.Quit:
		return m, tea.Quit
	case "down", keys.Down:
		m.cursor = clampCursor(m.cursor+1, len(m.view))
	case "up", keys.Up:
		m.cursor = clampCursor(m.cursor-1, len(m.view))
	case keys.Add:
		m.draft = model.Task{}
		m.status = "New task: type a title and press Enter"

		return m.startInput(modeAdd, "", "Task title")
	case keys.Advance:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}

		return m, m.run("status change", "Status updated", func(ctx context.Context) error {
			return m.board.Advance(ctx, task.ID)
		})
	case keys.Delete:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}

		m.mode = modeConfirmDelete
		m.target = task.ID
		m.status = fmt.Sprintf("Delete %q? y/n", task.Title)
	case keys.Edit:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}

		m.target = task.ID
		m.status = "Edit title: Enter to save, Esc to cancel"

		return m.startInput(modeEdit, task.Title, "Task title")
	case keys.Describe:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}

		m.target = task.ID
		m.status = "Edit description: Enter to save, Esc to cancel"

		return m.startInput(modeDescribe, task.Description, "Description")
	case keys.Sort:
		sortKey, _ := m.board.Sort()
		m.board.SetSort(sortKey.Next())
		m.refresh()
		m.status = "Sorted by " + string(sortKey.Next())
	case keys.Direction:
		m.board.ToggleSortDirection()
		m.refresh()

		_, direction := m.board.Sort()
		m.status = "Sort direction " + string(direction)
	case keys.Filter:
		filter := m.board.Filter()
		if filter.FilterKey == "" {
			m.board.SetFilter(filter.Query, model.FieldTitle)
		}

		m.status = "Filter: type to narrow, Enter to keep, Esc to clear"

		return m.startInput(modeFilter, filter.Query, "Filter")
	case keys.FilterKey:
		filter := m.board.Filter()
		next := nextFilterKey(filter.FilterKey)
		m.board.SetFilter(filter.Query, next)
		m.refresh()
		m.status = "Filtering by " + next
	case keys.Reload:
		if !m.board.Networked() {
			return m, nil
		}

		return m, m.run("reload", "Reloaded tasks", m.board.Load)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel:
		m.status = "Cancelled"

		return m.stopInput(), nil
	case m.cfg.Keys.Confirm:
		return m.submit(m.input.Value())
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}
}

func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	target := m.target

	switch m.mode {
	case modeAdd:
		title := strings.TrimSpace(value)
		if title == "" {
			m.status = "Title cannot be empty"

			return m, nil
		}

		m.draft = model.Task{Title: title}
		m.status = "Description (optional): press Enter to save"

		return m.startInput(modeAddDescription, "", "Description")
	case modeAddDescription:
		draft := m.draft
		draft.Description = strings.TrimSpace(value)

		return m.stopInput(), m.run("add", "Added task", func(ctx context.Context) error {
			_, err := m.board.Add(ctx, draft)

			return err
		})
	case modeEdit:
		if strings.TrimSpace(value) == "" {
			m.status = "Title cannot be empty"

			return m, nil
		}

		return m.stopInput(), m.run("edit", "Title updated", func(ctx context.Context) error {
			return m.board.Update(ctx, target, model.FieldTitle, strings.TrimSpace(value))
		})
	case modeDescribe:
		return m.stopInput(), m.run("edit", "Description updated", func(ctx context.Context) error {
			return m.board.Update(ctx, target, model.FieldDescription, value)
		})
	}

	return m.stopInput(), nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Confirm:
		m.status = "Filter applied"

		return m.stopInput(), nil
	case m.cfg.Keys.Cancel:
		m.board.SetFilter("", m.board.Filter().FilterKey)
		m.status = "Filter cleared"
		m = m.stopInput()
		m.refresh()

		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.board.SetFilter(m.input.Value(), m.board.Filter().FilterKey)
		m.refresh()

		return m, cmd
	}
}

func (m Model) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	target := m.target

	switch key {
	case "y", "Y":
		m.mode = modeList

		return m, m.run("delete", "Deleted task", func(ctx context.Context) error {
			return m.board.Delete(ctx, target)
		})
	case "n", "N", m.cfg.Keys.Cancel:
		m.mode = modeList
		m.status = "Delete cancelled"
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	source := "local session"
	if m.board.Networked() {
		source = m.cfg.BaseURL
	}

	b.WriteString(headerStyle.Render("Taskboard"))
	b.WriteString(mutedStyle.Render(" (" + source + ")"))
	b.WriteString("\n")
	b.WriteString(renderStats(m.board.Stats()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.describeView()))
	b.WriteString("\n\n")

	if len(m.view) == 0 {
		b.WriteString(fmt.Sprintf("No tasks to show. Press '%s' to add one.", m.cfg.Keys.Add))
		b.WriteString("\n")
	}

	for i, task := range m.view {
		b.WriteString(m.renderTask(i, task))
		b.WriteString("\n")
	}

	if m.inputActive() {
		b.WriteString("\n")
		b.WriteString(m.input.Placeholder + ": ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderTask(i int, task model.Task) string {
	cursor := "  "
	title := task.Title

	if i == m.cursor && m.mode == modeList {
		cursor = cursorStyle.Render("> ")
		title = cursorStyle.Render(title)
	}

	line := cursor + statusBadge(task.Status) + " " + title

	if task.Description != "" {
		line += mutedStyle.Render(" - " + task.Description)
	}

	if !task.UpdatedAt.IsZero() {
		line += mutedStyle.Render(" · " + task.UpdatedAt.Local().Format("02/01/2006, 15:04:05"))
	}

	return line
}

func (m Model) describeView() string {
	key, direction := m.board.Sort()
	text := fmt.Sprintf("sort: %s %s", key, direction)

	if filter := m.board.Filter(); filter.Active() {
		text += fmt.Sprintf(" · filter: %s contains %q", filter.FilterKey, filter.Query)
	}

	return text
}

func (m Model) inputActive() bool {
	return m.mode != modeList && m.mode != modeConfirmDelete
}

func (m Model) selected() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view) {
		return model.Task{}, false
	}

	return m.view[m.cursor], true
}

func (m Model) startInput(next mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = next
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	cmd := m.input.Focus()

	return m, cmd
}

func (m Model) stopInput() Model {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()

	return m
}

func (m *Model) refresh() {
	m.view = m.board.View()
	m.cursor = clampCursor(m.cursor, len(m.view))
}

// run executes op off the UI loop and reports back as a message.
func (m Model) run(action, done string, op func(context.Context) error) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		if err := op(ctx); err != nil {
			log.Warn().Err(err).Str("action", action).Msg("board operation failed")

			return boardFailedMsg{action: action, err: err}
		}

		return boardChangedMsg{status: done}
	}
}

func statusBadge(status model.Status) string {
	label := string(status)
	if label == "" {
		label = "-"
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(model.ColorHex(status))).
		Foreground(badgeText).
		Padding(0, 1).
		Render(label)
}

func renderStats(stats board.Stats) string {
	return fmt.Sprintf("All %d • %s %d • %s %d • %s %d",
		stats.All,
		model.StatusTodo, stats.Todo,
		model.StatusInProgress, stats.InProgress,
		model.StatusDone, stats.Done)
}

func renderHelp(k Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s describe • %s status • %s delete • %s sort • %s direction • %s filter • %s filter field • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Describe, keyName(k.Advance), k.Delete, k.Sort, k.Direction, k.Filter, k.FilterKey, k.Quit)
}

func keyName(key string) string {
	if key == " " {
		return "space"
	}

	return key
}

func nextFilterKey(current string) string {
	i := slices.Index(model.FilterableFields, current)

	return model.FilterableFields[(i+1)%len(model.FilterableFields)]
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}

	if cur >= n {
		return n - 1
	}

	return cur
}
