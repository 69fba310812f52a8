package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// NeedUserConfirm prompts the user for a yes/no confirmation.
func NeedUserConfirm(prompt string, description string) (bool, error) {
	var confirm bool

	confirmField := huh.NewConfirm().
		Title(prompt).
		Value(&confirm).
		Affirmative("Yes").
		Negative("No")

	if description = strings.TrimSpace(description); description != "" {
		confirmField.Description(description)
	}

	form := huh.NewForm(
		huh.NewGroup(confirmField),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("error in confirmation prompt: %v", err)
	}
	return confirm, nil
}
