package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arica_go/internal/domain"
)

// Terminal renders the same views as the web page for a terminal.
type Terminal struct {
	labels Labels
	card   lipgloss.Style
	badge  lipgloss.Style
	title  lipgloss.Style
	muted  lipgloss.Style
}

func NewTerminal(labels Labels, width int) Terminal {
	if width <= 0 {
		width = 72
	}
	return Terminal{
		labels: labels,
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1).
			Width(width),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("31")).
			Padding(0, 1),
		title: lipgloss.NewStyle().Bold(true),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Cards stacks one block per attraction, or the no-results placeholder.
func (t Terminal) Cards(list []domain.Attraction) string {
	if len(list) == 0 {
		return t.card.Render(t.title.Render(NoResultsTitle) + "\n" + t.muted.Render(NoResultsHint))
	}
	blocks := make([]string, 0, len(list))
	for _, a := range list {
		blocks = append(blocks, t.Card(a))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (t Terminal) Card(a domain.Attraction) string {
	var b strings.Builder
	b.WriteString(t.badge.Render(t.labels.Label(a.Category)))
	b.WriteString(" ")
	b.WriteString(t.title.Render(a.Name))
	b.WriteString(t.muted.Render(fmt.Sprintf("  #%d", a.ID)))
	b.WriteString("\n")
	b.WriteString(t.muted.Render(a.Location + " • " + a.Distance))
	b.WriteString("\n")
	b.WriteString(a.Description)
	b.WriteString("\n")
	b.WriteString(t.muted.Render("Horario: " + a.Schedule + "   Precio: " + a.Price))
	return t.card.Render(b.String())
}

func (t Terminal) Detail(a domain.Attraction) string {
	body := t.title.Render("Detalles de: "+a.Name) + "\n\n" + a.Description
	if len(a.Specialties) > 0 {
		body += "\n\n" + t.muted.Render("Especialidades: "+strings.Join(a.Specialties, ", "))
	}
	return t.card.Render(body)
}

func (t Terminal) Categories(cats []domain.CategorySummary) string {
	var b strings.Builder
	for _, c := range cats {
		fmt.Fprintf(&b, "%-14s %-14s %d\n", c.Key, c.Label, c.Count)
	}
	return b.String()
}
