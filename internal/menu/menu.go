// Package menu provides the interactive terminal front of the bootstrap.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	runewidth "github.com/mattn/go-runewidth"

	"llb/internal/logger"
)

// Option is a selectable menu entry.
type Option struct {
	Label string
	Desc  string
	Run   func() error
}

// Menu renders the main menu loop.
type Menu struct {
	log     logger.Logger
	options []Option
}

// NewMenu constructs a Menu over the given options. The last option is
// expected to be the exit entry (Run == nil).
func NewMenu(log logger.Logger, options []Option) *Menu {
	return &Menu{log: log, options: options}
}

// Show runs the selection loop until the exit entry is chosen or the
// prompt is interrupted.
func (m *Menu) Show() error {
	items := formatItems(m.options)

	for {
		prompt := promptui.Select{
			Label: "Please select an operation",
			Items: items,
			Size:  len(items),
			Templates: &promptui.SelectTemplates{
				Label:    "{{ . }}:",
				Active:   "▶ {{ . | cyan }}",
				Inactive: "  {{ . }}",
				Selected: "✓ {{ . | green }}",
			},
		}

		index, _, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			return err
		}

		option := m.options[index]
		if option.Run == nil {
			return nil
		}

		if err := option.Run(); err != nil {
			m.log.Error("%s failed: %v", option.Label, err)
		}
	}
}

// formatItems aligns descriptions into a column; labels may contain
// wide runes, so padding is computed from display width.
func formatItems(options []Option) []string {
	maxWidth := 0
	for _, option := range options {
		if width := runewidth.StringWidth(option.Label); width > maxWidth {
			maxWidth = width
		}
	}

	items := make([]string, 0, len(options))
	for _, option := range options {
		if option.Desc == "" {
			items = append(items, option.Label)
			continue
		}
		padding := strings.Repeat(" ", maxWidth-runewidth.StringWidth(option.Label))
		items = append(items, fmt.Sprintf("%s%s   %s", option.Label, padding, option.Desc))
	}
	return items
}
