package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rbhz/trs/app/dictionary"
)

const (
	headerPOS        = "词性"
	headerDefinition = "词义"
	translationTitle = "译文"
)

var (
	red   = lipgloss.Color("1")
	green = lipgloss.Color("2")

	titleStyle      = lipgloss.NewStyle().Bold(true)
	headerStyle     = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Padding(0, 1)
	posStyle        = lipgloss.NewStyle().Foreground(red).Align(lipgloss.Center).Padding(0, 1)
	definitionStyle = lipgloss.NewStyle().Foreground(green).Align(lipgloss.Center).Padding(0, 1)
	panelTitleStyle = lipgloss.NewStyle().Foreground(red).Padding(0, 1)
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Foreground(green).
			Padding(0, 1)
)

// Console renders entries and translations for terminal
type Console struct {
	out io.Writer
}

// RenderEntry prints dictionary entry as a table titled by word and pronunciations
func (c Console) RenderEntry(entry dictionary.Entry) error {
	_, err := fmt.Fprintln(c.out, EntryTable(entry))
	return err
}

// RenderTranslation prints translated sentence inside a titled panel
func (c Console) RenderTranslation(text string) error {
	_, err := fmt.Fprintln(c.out, TranslationPanel(text))
	return err
}

// EntryTitle builds "word 美: us 英: uk" title
func EntryTitle(entry dictionary.Entry) string {
	us, uk := entry.Pronunciations()
	return entry.Word + " 美: " + us + " 英: " + uk
}

// EntryTable returns rendered table for entry
func EntryTable(entry dictionary.Entry) string {
	rows := make([][]string, 0, len(entry.Senses))
	for _, sense := range entry.Senses {
		rows = append(rows, []string{sense.PartOfSpeech, sense.Definition})
	}
	t := table.New().
		Border(lipgloss.DoubleBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return posStyle
			default:
				return definitionStyle
			}
		}).
		Headers(headerPOS, headerDefinition).
		Rows(rows...)
	body := t.String()
	title := titleStyle.Width(lipgloss.Width(body)).Align(lipgloss.Center).Render(EntryTitle(entry))
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

// TranslationPanel returns rendered panel with translation
func TranslationPanel(text string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		panelTitleStyle.Render(translationTitle),
		panelStyle.Render(strings.TrimSpace(text)),
	)
}

// NewConsole creates renderer writing to out
func NewConsole(out io.Writer) Console {
	return Console{out: out}
}
