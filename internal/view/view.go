package view

import (
	"sort"
	"todoTracker/internal/models/todo"
)

// Чистые проекции над сырым списком: фильтр, сортировка, счётчики.
// Пересчитываются при каждой загрузке, состояния не держат.

type Filter string

const FilterAll Filter = "all"
const FilterActive Filter = Filter(todo.StatusActive)
const FilterPending Filter = Filter(todo.StatusPending)
const FilterCompleted Filter = Filter(todo.StatusCompleted)

// Next циклически переключает фильтр: all -> Active -> Pending -> Completed.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	}
	return FilterAll
}

func (f Filter) Label() string {
	if f == FilterAll {
		return "Все"
	}
	return string(f)
}

func Apply(todos []*todo.Todo, filter Filter) []*todo.Todo {
	return Sort(FilterTodos(todos, filter))
}

func FilterTodos(todos []*todo.Todo, filter Filter) []*todo.Todo {
	if filter == FilterAll || filter == "" {
		res := make([]*todo.Todo, len(todos))
		copy(res, todos)
		return res
	}

	res := []*todo.Todo{}
	for _, t := range todos {
		if t.Status == todo.Status(filter) {
			res = append(res, t)
		}
	}
	return res
}

// Sort сортирует по трём убывающим ключам: ранг приоритета,
// ранг статуса, время создания (новые выше). Сортировка стабильная —
// равные ключи сохраняют исходный относительный порядок.
func Sort(todos []*todo.Todo) []*todo.Todo {
	res := make([]*todo.Todo, len(todos))
	copy(res, todos)

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Priority.Rank() != res[j].Priority.Rank() {
			return res[i].Priority.Rank() > res[j].Priority.Rank()
		}
		if res[i].Status.Rank() != res[j].Status.Rank() {
			return res[i].Status.Rank() > res[j].Status.Rank()
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	return res
}

type Counts struct {
	Total     int
	Completed int
	Pending   int
	Active    int
}

func Count(todos []*todo.Todo) Counts {
	c := Counts{Total: len(todos)}
	for _, t := range todos {
		switch t.Status {
		case todo.StatusCompleted:
			c.Completed++
		case todo.StatusPending:
			c.Pending++
		}
	}
	// активные выводятся из остатка
	c.Active = c.Total - c.Completed - c.Pending
	return c
}
