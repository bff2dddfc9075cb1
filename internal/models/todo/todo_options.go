package todo

// TodoOption — функция частичного обновления записи.
// nil-опции пропускаются на стороне сервиса.
type TodoOption func(*Todo)

func WithTitle(title string) TodoOption {
	if title == "" {
		return nil
	}
	return func(t *Todo) {
		t.Title = title
	}
}

func WithDescription(description *string) TodoOption {
	if description == nil {
		return nil
	}
	return func(t *Todo) {
		t.Description = *description
	}
}

func WithStatus(status Status) TodoOption {
	if !status.Valid() {
		return nil
	}
	return func(t *Todo) {
		t.Status = status
	}
}

func WithPriority(priority Priority) TodoOption {
	if !priority.Valid() {
		return nil
	}
	return func(t *Todo) {
		t.Priority = priority
	}
}
