package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"buntab/pkg/suggest"
)

// pickCommand creates the pick command: an interactive selector over the
// suggestions for a partial line. The chosen label is printed on stdout so
// shell widgets can splice it into the line.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <line>",
		Short: "Interactively pick a completion for a partial bun command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			items := engine.Suggest(ctx, args[0])
			if len(items) == 0 {
				printInfo("No suggestions for %q", args[0])
				return nil
			}

			model := newSuggestionListModel(items)
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}

			if m, ok := final.(suggestionListModel); ok && m.choice != nil {
				fmt.Println(m.choice.Label)
			}
			return nil
		},
	}
}

// suggestionListModel is the bubbletea model for interactive suggestion
// selection.
type suggestionListModel struct {
	items  []suggest.Suggestion
	cursor int
	choice *suggest.Suggestion
	height int
	offset int
}

func newSuggestionListModel(items []suggest.Suggestion) suggestionListModel {
	return suggestionListModel{items: items, height: 15}
}

func (m suggestionListModel) Init() tea.Cmd {
	return nil
}

func (m suggestionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.choice = &m.items[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m suggestionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Completion"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := m.offset; i < end; i++ {
		item := m.items[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		style := StyleValue
		if i == m.cursor {
			style = StyleTitle
		}
		b.WriteString(style.Render(cursor + item.Label))
		if item.Description != "" {
			b.WriteString("  " + StyleDim.Render(item.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))

	return b.String()
}
