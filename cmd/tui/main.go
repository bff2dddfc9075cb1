package main

import (
	"fmt"
	"os"
	"strings"
	"todoTracker/internal/client"
	"todoTracker/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "login" {
		login(os.Args[2:])
		return
	}

	baseURL := os.Getenv("TODOTRACKER_API")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	session := client.NewSession()
	svc := client.NewTodoService(baseURL, session)

	p := tea.NewProgram(tui.New(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка:", err)
		os.Exit(1)
	}
}

// login сохраняет bearer-токен в файл учётных данных;
// дальше каждая команда чеканит его заново из файла.
func login(args []string) {
	token := ""
	if len(args) > 0 {
		token = args[0]
	} else {
		token = os.Getenv("TODOTRACKER_TOKEN")
	}

	if strings.TrimSpace(token) == "" {
		fmt.Fprintln(os.Stderr, "использование: login <token> (или задайте TODOTRACKER_TOKEN)")
		os.Exit(1)
	}

	session := client.NewSession()
	if err := session.Save(&client.TokenInfo{Token: token}); err != nil {
		fmt.Fprintln(os.Stderr, "не удалось сохранить токен:", err)
		os.Exit(1)
	}

	fmt.Println("Токен сохранён")
}
