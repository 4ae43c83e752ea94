// Package tui implements the interactive todo panel: a scope-tabbed list
// with inline create/edit, auto-delete fade, and undo. The panel never
// mutates state directly; it dispatches the same wire messages an embedded
// webview would, and renders whatever state broadcasts come back.
package tui

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdock/taskdock/internal/core/todo"
	"github.com/taskdock/taskdock/internal/host"
	"github.com/taskdock/taskdock/internal/taskdock"
)

// OutboundMsg delivers an outbound host message into the program. The tui
// command forwards these with Program.Send.
type OutboundMsg struct {
	Msg host.Outbound
}

type mode int

const (
	modeBrowse mode = iota
	modeCreate
	modeEdit
	modeHelp
)

type section struct {
	title string
	scope todo.ScopeTarget
	todos []todo.Todo
}

// Deps are the collaborators the panel needs.
type Deps struct {
	UI   *host.MessageBus
	Orch *taskdock.Orchestrator
}

// Model is the bubbletea model for the todo panel.
type Model struct {
	deps Deps

	sections []section
	active   int
	cursor   int

	mode   mode
	input  textinput.Model
	editID string

	fading map[string]struct{}
	toast  string

	width  int
	height int
}

// New creates the panel model.
func New(deps Deps) Model {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = 200

	return Model{
		deps:     deps,
		sections: []section{{title: "Global", scope: todo.GlobalTarget()}},
		input:    input,
		fading:   make(map[string]struct{}),
	}
}

// Init announces the panel is ready, which triggers the first state
// broadcast.
func (m Model) Init() tea.Cmd {
	return m.dispatch(host.Inbound{Kind: host.KindWebviewReady})
}

func (m Model) dispatch(msg host.Inbound) tea.Cmd {
	return func() tea.Msg {
		m.deps.UI.Dispatch(msg)
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case OutboundMsg:
		return m.updateFromHost(msg.Msg)

	case ToastMsg:
		m.toast = msg.Text
		return m, clearToastAfter(4 * time.Second)

	case clearToastMsg:
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeCreate, modeEdit:
			return m.updateInput(msg)
		case modeHelp:
			m.mode = modeBrowse
			return m, nil
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateFromHost(out host.Outbound) (tea.Model, tea.Cmd) {
	switch out.Kind {
	case host.KindStateUpdate:
		if out.Payload != nil {
			m.applyState(*out.Payload)
		}
	case host.KindAutoDeleteCue:
		if out.TodoID != "" {
			m.fading[out.TodoID] = struct{}{}
		}
	case host.KindStartInlineCreate:
		if scope, ok := taskdock.ResolveWireScope(out.Scope); ok {
			m.focusScope(scope)
			m.beginCreate()
			return m, textinput.Blink
		}
	case host.KindStartInlineEdit:
		if scope, ok := taskdock.ResolveWireScope(out.Scope); ok {
			m.focusScope(scope)
			m.beginEdit(out.TodoID)
			return m, textinput.Blink
		}
	}
	return m, nil
}

// applyState rebuilds the sections from a broadcast, keeping the cursor on
// the same section where possible. Fade marks for ids that vanished are
// dropped.
func (m *Model) applyState(state host.StatePayload) {
	prevScope := m.activeSection().scope

	sections := []section{{title: "Global", scope: todo.GlobalTarget(), todos: state.Global}}

	folders := make([]string, 0, len(state.Workspaces))
	for folder := range state.Workspaces {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	for _, folder := range folders {
		sections = append(sections, section{
			title: folder,
			scope: todo.WorkspaceTarget(folder),
			todos: state.Workspaces[folder],
		})
	}

	m.sections = sections
	m.focusScope(prevScope)
	m.clampCursor()

	alive := make(map[string]struct{})
	for _, s := range m.sections {
		for _, item := range s.todos {
			alive[item.ID] = struct{}{}
		}
	}
	for id := range m.fading {
		if _, ok := alive[id]; !ok {
			delete(m.fading, id)
		}
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sec := m.activeSection()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(sec.todos)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.NextTab):
		m.active = (m.active + 1) % len(m.sections)
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.Add):
		// Round-trips through the orchestrator, which answers with a
		// startInlineCreate message.
		scope := sec.scope
		orch := m.deps.Orch
		return m, func() tea.Msg {
			orch.StartCreate(context.Background(), &scope)
			return nil
		}

	case key.Matches(msg, keys.Edit):
		if item, ok := m.selected(); ok {
			orch := m.deps.Orch
			target := item.Target()
			return m, func() tea.Msg {
				orch.StartEdit(context.Background(), target)
				return nil
			}
		}
		return m, nil

	case key.Matches(msg, keys.Toggle):
		if item, ok := m.selected(); ok {
			return m, m.dispatch(host.Inbound{
				Kind:   host.KindToggleComplete,
				Scope:  host.ScopeOf(sec.scope),
				TodoID: item.ID,
			})
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if item, ok := m.selected(); ok {
			return m, m.dispatch(host.Inbound{
				Kind:   host.KindRemoveTodo,
				Scope:  host.ScopeOf(sec.scope),
				TodoID: item.ID,
			})
		}
		return m, nil

	case key.Matches(msg, keys.Clear):
		return m, m.dispatch(host.Inbound{
			Kind:  host.KindClearScope,
			Scope: host.ScopeOf(sec.scope),
		})

	case key.Matches(msg, keys.Undo):
		scope := sec.scope
		orch := m.deps.Orch
		return m, func() tea.Msg {
			_ = orch.Undo(context.Background(), scope)
			return nil
		}

	case key.Matches(msg, keys.MoveUp):
		return m, m.moveSelected(-1)

	case key.Matches(msg, keys.MoveDn):
		return m, m.moveSelected(1)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Reset()
		return m, nil

	case "enter":
		title := m.input.Value()
		sec := m.activeSection()
		wire := host.Inbound{Scope: host.ScopeOf(sec.scope), Title: title}
		if m.mode == modeEdit {
			wire.Kind = host.KindCommitEdit
			wire.TodoID = m.editID
		} else {
			wire.Kind = host.KindCommitCreate
		}

		m.mode = modeBrowse
		m.input.Reset()
		return m, m.dispatch(wire)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveSelected swaps the selected todo with its neighbor by dispatching a
// full reorder.
func (m Model) moveSelected(delta int) tea.Cmd {
	sec := m.activeSection()
	j := m.cursor + delta
	if m.cursor < 0 || m.cursor >= len(sec.todos) || j < 0 || j >= len(sec.todos) {
		return nil
	}

	order := make([]string, len(sec.todos))
	for i, item := range sec.todos {
		order[i] = item.ID
	}
	order[m.cursor], order[j] = order[j], order[m.cursor]
	m.cursor = j

	return m.dispatch(host.Inbound{
		Kind:  host.KindReorderTodos,
		Scope: host.ScopeOf(sec.scope),
		Order: order,
	})
}

func (m *Model) beginCreate() {
	m.mode = modeCreate
	m.input.Reset()
	m.input.Placeholder = "What needs doing?"
	m.input.Focus()
}

func (m *Model) beginEdit(todoID string) {
	item, ok := m.findTodo(todoID)
	if !ok {
		return
	}
	m.mode = modeEdit
	m.editID = todoID
	m.input.SetValue(item.Title)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) focusScope(scope todo.ScopeTarget) {
	for i, s := range m.sections {
		if s.scope == scope {
			m.active = i
			return
		}
	}
	m.active = 0
}

func (m *Model) clampCursor() {
	n := len(m.activeSection().todos)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) activeSection() section {
	if m.active >= 0 && m.active < len(m.sections) {
		return m.sections[m.active]
	}
	return section{scope: todo.GlobalTarget()}
}

func (m Model) selected() (todo.Todo, bool) {
	sec := m.activeSection()
	if m.cursor < 0 || m.cursor >= len(sec.todos) {
		return todo.Todo{}, false
	}
	return sec.todos[m.cursor], true
}

func (m Model) findTodo(id string) (todo.Todo, bool) {
	for _, s := range m.sections {
		for _, item := range s.todos {
			if item.ID == id {
				return item, true
			}
		}
	}
	return todo.Todo{}, false
}
