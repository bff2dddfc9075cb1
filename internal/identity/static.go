package identity

import (
	"context"
)

// StaticVerifier — фиксированная таблица токенов для dev-режима и тестов.
type StaticVerifier struct {
	tokens map[string]Identity
}

func NewStaticVerifier(tokens map[string]Identity) *StaticVerifier {
	if tokens == nil {
		tokens = map[string]Identity{}
	}
	return &StaticVerifier{tokens: tokens}
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	ident, ok := v.tokens[token]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return ident, nil
}
