package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"todoTracker/internal/client"
	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/models/todo"
	"todoTracker/internal/view"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DataService — то, что контроллеру нужно от клиентского сервиса данных.
type DataService interface {
	GetTodos(ctx context.Context) ([]*todo.Todo, error)
	AddTodo(ctx context.Context, draft dto.CreateTodoRequest) (*todo.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch dto.UpdateTodoRequest) (*todo.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseSubmitting
	phaseEditing
)

// сообщения однозначных асинхронных вызовов
type todosLoadedMsg struct{ todos []*todo.Todo }
type mutationDoneMsg struct{}
type failureMsg struct{ err error }

const callTimeout = 15 * time.Second

// Model — контроллер списка. Состояние after любой мутации не патчится
// локально: успех всегда вызывает полную перезагрузку с сервера.
type Model struct {
	svc DataService

	todos   []*todo.Todo // сырой список с сервера
	visible []*todo.Todo // отфильтрованная и отсортированная проекция
	counts  view.Counts
	filter  view.Filter

	phase   phase
	cursor  int
	errLine string

	// черновик формы (добавление и редактирование делят поля)
	titleInput textinput.Model
	descInput  textinput.Model
	descFocus  bool
	draftPrio  todo.Priority
	draftStat  todo.Status
	editID     string // пусто — добавление, иначе — id редактируемой записи
}

func New(svc DataService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Название..."
	ti.CharLimit = 200

	di := textinput.New()
	di.Prompt = "> "
	di.Placeholder = "Описание (опционально)..."
	di.CharLimit = 500

	return Model{
		svc:        svc,
		filter:     view.FilterAll,
		phase:      phaseLoading,
		titleInput: ti,
		descInput:  di,
		draftPrio:  todo.PriorityLow,
		draftStat:  todo.StatusActive,
	}
}

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// refreshCmd — явный триггер полной перезагрузки списка.
func (m Model) refreshCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		todos, err := svc.GetTodos(ctx)
		if err != nil {
			return failureMsg{err: err}
		}
		return todosLoadedMsg{todos: todos}
	}
}

func (m Model) submitCmd(draft dto.CreateTodoRequest) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		if _, err := svc.AddTodo(ctx, draft); err != nil {
			return failureMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) updateCmd(id string, patch dto.UpdateTodoRequest) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		if _, err := svc.UpdateTodo(ctx, id, patch); err != nil {
			return failureMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		if err := svc.DeleteTodo(ctx, id); err != nil {
			return failureMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

// toggleCmd — удобное обновление: Completed <-> Active,
// в остальном обычный update.
func (m Model) toggleCmd(t *todo.Todo) tea.Cmd {
	next := t.Status.Toggled()
	return m.updateCmd(t.ID, dto.UpdateTodoRequest{Status: &next})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case todosLoadedMsg:
		m.todos = msg.todos
		m.reproject()
		m.phase = phaseIdle
		m.errLine = ""
		if m.cursor >= len(m.visible) {
			m.cursor = len(m.visible) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case mutationDoneMsg:
		// после каждой записи — полная перезагрузка вместо локального патча
		m.phase = phaseLoading
		return m, m.refreshCmd()

	case failureMsg:
		m.phase = phaseIdle
		if errors.Is(msg.err, client.ErrNotAuthenticated) {
			m.errLine = "Вы не вошли: задайте TODOTRACKER_TOKEN или выполните вход"
		} else {
			m.errLine = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.phase == phaseEditing {
			return m.updateEditing(msg)
		}
		return m.updateIdle(msg)
	}

	return m, nil
}

func (m Model) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// занятость — советующий флаг: пока идёт вызов, новые не начинаем
	busy := m.phase == phaseLoading || m.phase == phaseSubmitting

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		if busy {
			return m, nil
		}
		m.phase = phaseLoading
		return m, m.refreshCmd()

	case "f":
		m.filter = m.filter.Next()
		m.reproject()
		if m.cursor >= len(m.visible) {
			m.cursor = 0
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case "a":
		if busy {
			return m, nil
		}
		m.startEdit(nil)
		return m, textinput.Blink

	case "e":
		if busy || len(m.visible) == 0 {
			return m, nil
		}
		m.startEdit(m.visible[m.cursor])
		return m, textinput.Blink

	case "d":
		if busy || len(m.visible) == 0 {
			return m, nil
		}
		m.phase = phaseSubmitting
		return m, m.deleteCmd(m.visible[m.cursor].ID)

	case "t", " ":
		if busy || len(m.visible) == 0 {
			return m, nil
		}
		m.phase = phaseSubmitting
		return m, m.toggleCmd(m.visible[m.cursor])
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// отмена редактирования: черновик сбрасывается, сеть не трогаем
		m.phase = phaseIdle
		m.blurDraft()
		return m, nil

	case "tab":
		m.descFocus = !m.descFocus
		if m.descFocus {
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		m.descInput.Blur()
		return m, m.titleInput.Focus()

	case "ctrl+p":
		m.draftPrio = nextPriority(m.draftPrio)
		return m, nil

	case "ctrl+s":
		m.draftStat = nextStatus(m.draftStat)
		return m, nil

	case "enter":
		title := strings.TrimSpace(m.titleInput.Value())
		if title == "" {
			// локальная валидация: пустое название не уходит в сеть
			m.errLine = "Название обязательно"
			return m, nil
		}

		desc := strings.TrimSpace(m.descInput.Value())
		m.phase = phaseSubmitting
		m.blurDraft()

		if m.editID == "" {
			return m, m.submitCmd(dto.CreateTodoRequest{
				Title:       title,
				Description: desc,
				Priority:    m.draftPrio,
				Status:      m.draftStat,
			})
		}

		return m, m.updateCmd(m.editID, dto.UpdateTodoRequest{
			Title:       &title,
			Description: &desc,
			Priority:    &m.draftPrio,
			Status:      &m.draftStat,
		})
	}

	var cmd tea.Cmd
	if m.descFocus {
		m.descInput, cmd = m.descInput.Update(msg)
	} else {
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) startEdit(target *todo.Todo) {
	m.phase = phaseEditing
	m.errLine = ""
	m.descFocus = false

	if target == nil {
		m.editID = ""
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.draftPrio = todo.PriorityLow
		m.draftStat = todo.StatusActive
	} else {
		m.editID = target.ID
		m.titleInput.SetValue(target.Title)
		m.descInput.SetValue(target.Description)
		m.draftPrio = target.Priority
		m.draftStat = target.Status
	}

	m.titleInput.Focus()
	m.descInput.Blur()
}

func (m *Model) blurDraft() {
	m.titleInput.Blur()
	m.descInput.Blur()
	m.descFocus = false
}

func (m *Model) reproject() {
	m.visible = view.Apply(m.todos, m.filter)
	m.counts = view.Count(m.todos)
}

func nextPriority(p todo.Priority) todo.Priority {
	switch p {
	case todo.PriorityLow:
		return todo.PriorityMedium
	case todo.PriorityMedium:
		return todo.PriorityHigh
	}
	return todo.PriorityLow
}

func nextStatus(s todo.Status) todo.Status {
	switch s {
	case todo.StatusActive:
		return todo.StatusPending
	case todo.StatusPending:
		return todo.StatusCompleted
	}
	return todo.StatusActive
}

func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), m.counts.Completed,
		pendingStyle.Render("•"), m.counts.Pending,
		accentStyle.Render("▸"), m.counts.Active,
		mutedStyle.Render("Всего"), m.counts.Total,
	)
	b.WriteString(header)
	b.WriteString("   ")
	b.WriteString(accentStyle.Render("[" + m.filter.Label() + "]"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseLoading:
		b.WriteString(mutedStyle.Render("Загрузка...") + "\n")
	case phaseSubmitting:
		b.WriteString(mutedStyle.Render("Отправка...") + "\n")
	}

	if m.phase == phaseEditing {
		action := "Новая запись"
		if m.editID != "" {
			action = "Редактирование"
		}
		b.WriteString(titleStyle.Render(action) + "\n")
		b.WriteString(m.titleInput.View() + "\n")
		b.WriteString(m.descInput.View() + "\n")
		b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			mutedStyle.Render("приоритет:"), accentStyle.Render(string(m.draftPrio)),
			mutedStyle.Render("статус:"), accentStyle.Render(string(m.draftStat))))
		b.WriteString(helpStyle.Render("enter сохранить · esc отмена · tab поле · ctrl+p приоритет · ctrl+s статус") + "\n")
	} else {
		if len(m.visible) == 0 && m.phase == phaseIdle {
			b.WriteString(mutedStyle.Render("Записей нет") + "\n")
		}

		for i, t := range m.visible {
			box := "☐"
			text := t.Title
			if t.Status == todo.StatusCompleted {
				box = successStyle.Render("☑")
				text = doneStyle.Render(text)
			} else if t.Status == todo.StatusPending {
				box = pendingStyle.Render("◔")
			}

			prefix := "  "
			if i == m.cursor {
				prefix = selectedStyle.Render("> ")
			}

			b.WriteString(fmt.Sprintf("%s%s %s %s\n", prefix, priorityMark(t.Priority.Rank()), box, text))
		}

		b.WriteString("\n")
		b.WriteString(helpStyle.Render("a добавить · e изменить · d удалить · t статус · f фильтр · r обновить · q выход") + "\n")
	}

	if m.errLine != "" {
		b.WriteString(errorStyle.Render("Ошибка: "+m.errLine) + "\n")
	}

	return b.String()
}
