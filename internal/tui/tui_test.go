package tui

import (
	"context"
	"errors"
	"testing"
	"time"
	"todoTracker/internal/client"
	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/models/todo"
	"todoTracker/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService — сервис данных в памяти, считает вызовы
type fakeService struct {
	todos []*todo.Todo
	err   error

	getCalls    int
	addCalls    int
	updateCalls int
	deleteCalls int

	lastUpdateID    string
	lastUpdatePatch dto.UpdateTodoRequest
	lastDeleteID    string
	lastDraft       dto.CreateTodoRequest
}

func (f *fakeService) GetTodos(ctx context.Context) ([]*todo.Todo, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.todos, nil
}

func (f *fakeService) AddTodo(ctx context.Context, draft dto.CreateTodoRequest) (*todo.Todo, error) {
	f.addCalls++
	f.lastDraft = draft
	if f.err != nil {
		return nil, f.err
	}
	return &todo.Todo{ID: "new-id", Title: draft.Title}, nil
}

func (f *fakeService) UpdateTodo(ctx context.Context, id string, patch dto.UpdateTodoRequest) (*todo.Todo, error) {
	f.updateCalls++
	f.lastUpdateID = id
	f.lastUpdatePatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &todo.Todo{ID: id}, nil
}

func (f *fakeService) DeleteTodo(ctx context.Context, id string) error {
	f.deleteCalls++
	f.lastDeleteID = id
	return f.err
}

func mkTodo(id, title string, p todo.Priority, s todo.Status) *todo.Todo {
	return &todo.Todo{
		ID:        id,
		Title:     title,
		Priority:  p,
		Status:    s,
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded прогоняет модель через успешную загрузку списка
func loaded(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := New(svc)

	cmd := m.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestInit_LoadsTodos(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "first", todo.PriorityLow, todo.StatusActive),
		mkTodo("2", "second", todo.PriorityHigh, todo.StatusActive),
	}}

	m := loaded(t, svc)

	assert.Equal(t, 1, svc.getCalls)
	assert.Equal(t, phaseIdle, m.phase)
	require.Len(t, m.visible, 2)

	// проекция отсортирована: High раньше Low
	assert.Equal(t, "second", m.visible[0].Title)
	assert.Equal(t, 2, m.counts.Active)
}

func TestLoadFailure_NotAuthenticated(t *testing.T) {
	svc := &fakeService{err: client.ErrNotAuthenticated}
	m := New(svc)

	msg := m.Init()()
	next, _ := m.Update(msg)
	m = next.(Model)

	assert.Equal(t, phaseIdle, m.phase)
	assert.Contains(t, m.errLine, "не вошли")
}

func TestLoadFailure_GenericError(t *testing.T) {
	svc := &fakeService{err: errors.New("connection refused")}
	m := New(svc)

	msg := m.Init()()
	next, _ := m.Update(msg)
	m = next.(Model)

	assert.Contains(t, m.errLine, "connection refused")
}

// после каждой мутации — полная перезагрузка с сервера
func TestMutationDone_TriggersRefresh(t *testing.T) {
	svc := &fakeService{}
	m := loaded(t, svc)
	require.Equal(t, 1, svc.getCalls)

	next, cmd := m.Update(mutationDoneMsg{})
	m = next.(Model)

	assert.Equal(t, phaseLoading, m.phase)
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(t, todosLoadedMsg{}, msg)
	assert.Equal(t, 2, svc.getCalls)
}

func TestDeleteKey(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "only", todo.PriorityLow, todo.StatusActive),
	}}
	m := loaded(t, svc)

	next, cmd := m.Update(key("d"))
	m = next.(Model)

	assert.Equal(t, phaseSubmitting, m.phase)
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(t, mutationDoneMsg{}, msg)
	assert.Equal(t, 1, svc.deleteCalls)
	assert.Equal(t, "1", svc.lastDeleteID)
}

func TestToggleKey(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "only", todo.PriorityLow, todo.StatusActive),
	}}
	m := loaded(t, svc)

	next, cmd := m.Update(key("t"))
	m = next.(Model)

	assert.Equal(t, phaseSubmitting, m.phase)
	require.NotNil(t, cmd)
	cmd()

	// Active переключается в Completed
	assert.Equal(t, 1, svc.updateCalls)
	assert.Equal(t, "1", svc.lastUpdateID)
	require.NotNil(t, svc.lastUpdatePatch.Status)
	assert.Equal(t, todo.StatusCompleted, *svc.lastUpdatePatch.Status)
}

func TestToggleKey_CompletedBack(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "done", todo.PriorityLow, todo.StatusCompleted),
	}}
	m := loaded(t, svc)

	_, cmd := m.Update(key("t"))
	require.NotNil(t, cmd)
	cmd()

	require.NotNil(t, svc.lastUpdatePatch.Status)
	assert.Equal(t, todo.StatusActive, *svc.lastUpdatePatch.Status)
}

func TestBusy_IgnoresMutationKeys(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "only", todo.PriorityLow, todo.StatusActive),
	}}
	m := loaded(t, svc)

	// первая мутация занимает контроллер
	next, _ := m.Update(key("d"))
	m = next.(Model)
	require.Equal(t, phaseSubmitting, m.phase)

	// повторное нажатие пока занят — без нового вызова
	_, cmd := m.Update(key("d"))
	assert.Nil(t, cmd)
}

func TestFilterKey_Cycles(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "active", todo.PriorityLow, todo.StatusActive),
		mkTodo("2", "done", todo.PriorityLow, todo.StatusCompleted),
	}}
	m := loaded(t, svc)
	require.Len(t, m.visible, 2)

	next, _ := m.Update(key("f"))
	m = next.(Model)

	assert.Equal(t, view.FilterActive, m.filter)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "active", m.visible[0].Title)

	// фильтрация не трогает сырой список и счётчики
	assert.Len(t, m.todos, 2)
	assert.Equal(t, 2, m.counts.Total)
}

func TestAddFlow(t *testing.T) {
	svc := &fakeService{}
	m := loaded(t, svc)

	next, _ := m.Update(key("a"))
	m = next.(Model)
	require.Equal(t, phaseEditing, m.phase)

	m.titleInput.SetValue("Buy milk")
	m.descInput.SetValue("2 litres")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.Equal(t, phaseSubmitting, m.phase)
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(t, mutationDoneMsg{}, msg)
	assert.Equal(t, 1, svc.addCalls)
	assert.Equal(t, "Buy milk", svc.lastDraft.Title)
	assert.Equal(t, "2 litres", svc.lastDraft.Description)
	assert.Equal(t, todo.PriorityLow, svc.lastDraft.Priority)
	assert.Equal(t, todo.StatusActive, svc.lastDraft.Status)
}

// пустое название отклоняется локально, запрос не уходит
func TestAddFlow_EmptyTitle(t *testing.T) {
	svc := &fakeService{}
	m := loaded(t, svc)

	next, _ := m.Update(key("a"))
	m = next.(Model)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, phaseEditing, m.phase)
	assert.Equal(t, "Название обязательно", m.errLine)
	assert.Equal(t, 0, svc.addCalls)
}

func TestAddFlow_EscCancels(t *testing.T) {
	svc := &fakeService{}
	m := loaded(t, svc)

	next, _ := m.Update(key("a"))
	m = next.(Model)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, phaseIdle, m.phase)
	assert.Equal(t, 0, svc.addCalls)
}

func TestEditFlow(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "old title", todo.PriorityMedium, todo.StatusPending),
	}}
	m := loaded(t, svc)

	next, _ := m.Update(key("e"))
	m = next.(Model)
	require.Equal(t, phaseEditing, m.phase)

	// черновик заполнен текущими значениями
	assert.Equal(t, "old title", m.titleInput.Value())
	assert.Equal(t, todo.PriorityMedium, m.draftPrio)
	assert.Equal(t, todo.StatusPending, m.draftStat)

	m.titleInput.SetValue("new title")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 1, svc.updateCalls)
	assert.Equal(t, "1", svc.lastUpdateID)
	require.NotNil(t, svc.lastUpdatePatch.Title)
	assert.Equal(t, "new title", *svc.lastUpdatePatch.Title)
}

func TestEditing_DraftCycles(t *testing.T) {
	svc := &fakeService{}
	m := loaded(t, svc)

	next, _ := m.Update(key("a"))
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = next.(Model)
	assert.Equal(t, todo.PriorityMedium, m.draftPrio)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = next.(Model)
	assert.Equal(t, todo.PriorityHigh, m.draftPrio)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	assert.Equal(t, todo.StatusPending, m.draftStat)
}

func TestCursor_Moves(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "first", todo.PriorityHigh, todo.StatusActive),
		mkTodo("2", "second", todo.PriorityLow, todo.StatusActive),
	}}
	m := loaded(t, svc)
	assert.Equal(t, 0, m.cursor)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 1, m.cursor)

	// за нижнюю границу не уходим
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 1, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestView_RendersList(t *testing.T) {
	svc := &fakeService{todos: []*todo.Todo{
		mkTodo("1", "Buy milk", todo.PriorityHigh, todo.StatusActive),
		mkTodo("2", "Done thing", todo.PriorityLow, todo.StatusCompleted),
	}}
	m := loaded(t, svc)

	out := m.View()
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Done thing")
	assert.Contains(t, out, "Все")
}

func TestView_Empty(t *testing.T) {
	svc := &fakeService{}
	m := loaded(t, svc)

	assert.Contains(t, m.View(), "Записей нет")
}
