package identity

import (
	"context"
	"fmt"
	"todoTracker/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier проверяет id-токены через Firebase Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*FirebaseVerifier, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		logger.Error("Identity: Ошибка инициализации Firebase", err)
		return nil, fmt.Errorf("инициализация firebase: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Identity: Ошибка создания auth-клиента", err)
		return nil, fmt.Errorf("создание auth-клиента: %w", err)
	}

	logger.Info("Identity: Firebase verifier готов")
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		// детали ошибки провайдера наружу не отдаём
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UID:   decoded.UID,
		Email: email,
	}, nil
}
