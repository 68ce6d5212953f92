// Package render prints results as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sells-group/contact-finder/internal/model"
)

// NoEmailsMessage is printed for a scrape that found nothing.
const NoEmailsMessage = "No email addresses found on this page"

// RawTextNotice precedes an AI answer that held no contact table.
const RawTextNotice = "No contact table could be parsed from the response. Raw answer:"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Research prints a lookup result: the contact table when one was parsed,
// otherwise the raw answer, followed by any citations.
func Research(w io.Writer, r *model.ResearchResult) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Contacts for %s", r.Query.CompanyName)))
	fmt.Fprintln(w, infoStyle.Render("model: "+r.Model))

	if r.Structured() {
		t := newTable("Name", "Title", "Email", "LinkedIn", "Company Email", "Source")
		for _, c := range r.Contacts {
			t.Row(c.Name, c.Title, c.Email, c.LinkedInURL, c.CompanyEmail, c.SourceCitation)
		}
		fmt.Fprintln(w, t.Render())
	} else {
		fmt.Fprintln(w, warnStyle.Render(RawTextNotice))
		fmt.Fprintln(w, strings.TrimSpace(r.Raw))
	}

	if len(r.Citations) > 0 {
		Citations(w, r.Citations)
	}
}

// Citations prints a numbered source list.
func Citations(w io.Writer, citations []model.Citation) {
	t := newTable("#", "Source", "URL")
	for i, c := range citations {
		t.Row(fmt.Sprintf("%d", i+1), c.Label, c.URL)
	}
	fmt.Fprintln(w, titleStyle.Render("Sources"))
	fmt.Fprintln(w, t.Render())
}

// Emails prints a scrape result.
func Emails(w io.Writer, r *model.ScrapeResult) {
	if r.Block != model.BlockNone {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("warning: page looks like a %s challenge; results may be incomplete", r.Block)))
	}
	if r.Empty() {
		fmt.Fprintln(w, NoEmailsMessage)
		return
	}

	heading := fmt.Sprintf("%d email addresses found on %s", len(r.Emails), r.Target.URL)
	if r.Title != "" {
		heading += fmt.Sprintf(" (%s)", r.Title)
	}
	fmt.Fprintln(w, titleStyle.Render(heading))

	t := newTable("Address", "Category", "Source")
	for _, e := range r.Emails {
		t.Row(e.Address, e.Category, e.SourceURL)
	}
	fmt.Fprintln(w, t.Render())

	if r.Truncated {
		fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("showing the first %d addresses", len(r.Emails))))
	}
}

// Models prints one model id per line, marking the preferred one.
func Models(w io.Writer, ids []string, preferred string) {
	for _, id := range ids {
		marker := "  "
		if id == preferred {
			marker = "* "
		}
		fmt.Fprintln(w, marker+id)
	}
}
