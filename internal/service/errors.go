package service

import "fmt"

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	BusErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		BusErr.Details[detail.Key] = detail.Payload
	}

	return BusErr
}

func NewNotFound(id string) *BusinessError {
	return NewBusinessError("NOT_FOUND",
		fmt.Sprintf("запись %s не найдена", id),
		ToDetail("id", id))
}

// NewForbidden — запись принадлежит другому пользователю.
// Проверка владения на границе мутации обязательна: без неё любой
// аутентифицированный пользователь мог бы удалять чужие записи.
func NewForbidden(id string) *BusinessError {
	return NewBusinessError("FORBIDDEN",
		"запись принадлежит другому пользователю",
		ToDetail("id", id))
}

func NewValidationError(field, reason string) *BusinessError {
	return NewBusinessError("VALIDATION_ERROR",
		fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		ToDetail("field", field),
		ToDetail("reason", reason))
}
