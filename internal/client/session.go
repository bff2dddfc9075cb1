package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const credFileName = "credentials.json"

var ErrNotAuthenticated = errors.New("пользователь не аутентифицирован")

// TokenInfo — сохранённый bearer-токен подписанного пользователя.
type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // когда сохранили в файл
	ExpiresAt *time.Time `json:"expires_at"` // опционально
}

// Session чеканит свежий токен на каждый вызов: кеша нет,
// источник перечитывается заново (env-переменная, затем файл).
// Реализует oauth2.TokenSource.
type Session struct{}

var _ oauth2.TokenSource = (*Session)(nil)

func NewSession() *Session {
	return &Session{}
}

// Current возвращает токен текущей сессии или ErrNotAuthenticated,
// если пользователь не входил — до сети в этом случае не доходим.
func (s *Session) Current() (*TokenInfo, error) {
	// 1) env-переменная имеет приоритет
	env := strings.TrimSpace(os.Getenv("TODOTRACKER_TOKEN"))
	if env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
	}

	// 2) файл с учётными данными
	p, err := credFilePath()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("чтение %s: %w", p, err)
	}

	var info TokenInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", p, err)
	}
	if strings.TrimSpace(info.Token) == "" {
		return nil, ErrNotAuthenticated
	}
	if info.ExpiresAt != nil && time.Now().After(*info.ExpiresAt) {
		return nil, ErrNotAuthenticated
	}

	info.Source = "file"
	return &info, nil
}

// Token реализует oauth2.TokenSource поверх Current.
func (s *Session) Token() (*oauth2.Token, error) {
	info, err := s.Current()
	if err != nil {
		return nil, err
	}

	tok := &oauth2.Token{AccessToken: info.Token, TokenType: "Bearer"}
	if info.ExpiresAt != nil {
		tok.Expiry = *info.ExpiresAt
	}
	return tok, nil
}

// Save сохраняет токен в файл учётных данных.
func (s *Session) Save(info *TokenInfo) error {
	dir, err := credsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("создание %s: %w", dir, err)
	}

	info.CreatedAt = time.Now()
	info.Source = "file"
	info.Token = stripBearer(info.Token)

	b, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}

	p := filepath.Join(dir, credFileName)
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("запись %s: %w", p, err)
	}
	return nil
}

func credsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".todotracker"), nil
}

func credFilePath() (string, error) {
	dir, err := credsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

func stripBearer(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
}
