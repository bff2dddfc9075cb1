package todo

import (
	"time"
)

// Todo хранится одной плоской коллекцией; id присваивает хранилище.
// Владелец (UserID + Email) проставляется сервером при создании и не меняется.
type Todo struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Status      Status    `json:"status" firestore:"status"`
	Priority    Priority  `json:"priority" firestore:"priority"`
	UserID      string    `json:"userId" firestore:"userId"`
	Email       string    `json:"email" firestore:"email"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

type Status string
type Priority string

const StatusActive Status = "Active"
const StatusPending Status = "Pending"
const StatusCompleted Status = "Completed"

const PriorityLow Priority = "Low"
const PriorityMedium Priority = "Medium"
const PriorityHigh Priority = "High"

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusCompleted:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ранги для клиентской сортировки по убыванию
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (s Status) Rank() int {
	switch s {
	case StatusActive:
		return 3
	case StatusPending:
		return 2
	case StatusCompleted:
		return 1
	}
	return 0
}

// Toggled возвращает статус после переключения Completed <-> Active.
// Pending переключается в Completed как generic-обновление.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusActive
	}
	return StatusCompleted
}
