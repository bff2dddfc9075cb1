package identity

import (
	"context"
	"errors"
)

// Identity — подтверждённая личность пользователя.
// Email используется как ключ владения записями.
type Identity struct {
	UID   string
	Email string
}

// Verifier проверяет bearer-токен во внешнем провайдере идентичности.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

var ErrInvalidToken = errors.New("недействительный токен")
