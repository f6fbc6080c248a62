package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerItem is one entry shown in the interactive picker.
type PickerItem struct {
	Label    string // primary text (e.g. wallet name)
	SubLabel string // secondary text shown dimmed (e.g. address)
	Value    string // value returned on selection (may differ from Label)
}

// PickOutcome is the result of feeding one key to a Picker.
type PickOutcome int

const (
	PickPending PickOutcome = iota
	PickSelected
	PickCancelled
)

// Picker is a list selector that can run on its own (PickItem) or be
// embedded in a larger model such as the storefront's wallet connector.
type Picker struct {
	Title  string
	Items  []PickerItem
	cursor int
}

// HandleKey moves the cursor or finishes the pick. The selected item is
// non-nil only with PickSelected.
func (p *Picker) HandleKey(key string) (PickOutcome, *PickerItem) {
	switch key {
	case "q", "ctrl+c", "esc":
		return PickCancelled, nil
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.Items)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.Items) > 0 {
			item := p.Items[p.cursor]
			return PickSelected, &item
		}
	}
	return PickPending, nil
}

// View renders the list with the cursor row highlighted.
func (p Picker) View() string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("  "+p.Title) + "\n")

	if len(p.Items) == 0 {
		sb.WriteString(StyleMeta.Render("    nothing to pick") + "\n")
	}
	for i, item := range p.Items {
		prefix := "    "
		if i == p.cursor {
			prefix = "  ▸ "
		}

		line := prefix + StyleValue.Render(item.Label)
		if item.SubLabel != "" {
			line += "  " + StyleMeta.Render(item.SubLabel)
		}

		if i == p.cursor {
			sb.WriteString(StyleSelected.Render(line) + "\n")
		} else {
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(StyleMeta.Render("  [ ↑↓ / jk ] navigate   [ Enter ] select   [ esc ] cancel") + "\n")
	return sb.String()
}

// pickerModel runs a Picker as a standalone program.
type pickerModel struct {
	picker   Picker
	selected *PickerItem
	quitting bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch outcome, item := m.picker.HandleKey(key.String()); outcome {
	case PickCancelled:
		m.quitting = true
		return m, tea.Quit
	case PickSelected:
		m.selected = item
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}
	return "\n" + m.picker.View()
}

// PickItem runs an interactive list picker and returns the selected item's Value.
// Returns ("", nil) if the user cancels. Returns an error only on TUI failure.
func PickItem(title string, items []PickerItem) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no items to pick from")
	}

	m := pickerModel{picker: Picker{Title: title, Items: items}}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}

	fm := final.(pickerModel)
	if fm.quitting || fm.selected == nil {
		return "", nil
	}
	return fm.selected.Value, nil
}
