package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves a prompt without choosing.
var ErrCancelled = errors.New("cancelled")

const (
	pickerWidth     = 60
	pickerMaxHeight = 20
)

// Option is one selectable entry. Current marks the active profile.
type Option struct {
	Value   string
	Label   string
	Current bool
}

type optionItem struct {
	Option
}

func (i optionItem) Title() string {
	if i.Current {
		return i.Value + " " + currentStyle.Render("(current)")
	}
	return i.Label
}

func (i optionItem) Description() string { return "" }
func (i optionItem) FilterValue() string { return i.Value }

type pickerModel struct {
	list     list.Model
	selected string
	done     bool
	quitting bool
}

func newPickerModel(prompt string, options []Option) pickerModel {
	items := make([]list.Item, len(options))
	cursor := 0
	for i, o := range options {
		items[i] = optionItem{o}
		if o.Current {
			cursor = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	height := len(options) + 6
	if height > pickerMaxHeight {
		height = pickerMaxHeight
	}

	l := list.New(items, delegate, pickerWidth, height)
	l.Title = prompt
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.Select(cursor)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		// while filtering, enter and esc belong to the filter input
		if m.list.FilterState() != list.Filtering {
			switch msg.Type {
			case tea.KeyEsc:
				if m.list.FilterState() == list.FilterApplied {
					break
				}
				m.quitting = true
				return m, tea.Quit
			case tea.KeyEnter:
				if it, ok := m.list.SelectedItem().(optionItem); ok {
					m.selected = it.Value
					m.done = true
					return m, tea.Quit
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}
	if m.quitting {
		return quitTextStyle.Render("Cancelled.")
	}
	return "\n" + m.list.View()
}

// Pick shows options and returns the Value of the chosen one, or
// ErrCancelled when the user quits.
func Pick(prompt string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to select")
	}

	// Use stderr to avoid polluting stdout
	p := tea.NewProgram(newPickerModel(prompt, options), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(pickerModel)
	if !ok {
		return "", fmt.Errorf("internal error: invalid model type")
	}
	if !m.done {
		return "", ErrCancelled
	}
	return m.selected, nil
}
