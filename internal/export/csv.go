// Package export writes lookup and scrape results as CSV and to the clipboard.
package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-finder/internal/model"
)

// EmailsFileName is the download name for scrape results.
const EmailsFileName = "extracted_emails.csv"

// contactColumns defines the ordered contact CSV columns.
var contactColumns = []string{
	"name",
	"title",
	"email",
	"linkedin_url",
	"company_email",
	"source_citation",
}

// emailColumns defines the ordered email CSV columns.
var emailColumns = []string{"address", "source_url", "category"}

var nonWordRe = regexp.MustCompile(`[^a-z0-9]+`)

// WriteContactsCSV writes contacts with a header row.
func WriteContactsCSV(w io.Writer, contacts []model.ContactResult) error {
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{
			c.Name,
			c.Title,
			c.Email,
			c.LinkedInURL,
			c.CompanyEmail,
			c.SourceCitation,
		})
	}
	return eris.Wrap(writeCSV(w, contactColumns, rows), "export: contacts")
}

// WriteEmailsCSV writes email records with a header row.
func WriteEmailsCSV(w io.Writer, emails []model.EmailRecord) error {
	rows := make([][]string, 0, len(emails))
	for _, e := range emails {
		rows = append(rows, []string{e.Address, e.SourceURL, e.Category})
	}
	return eris.Wrap(writeCSV(w, emailColumns, rows), "export: emails")
}

// ContactsCSV renders contacts as a CSV string.
func ContactsCSV(contacts []model.ContactResult) (string, error) {
	var buf bytes.Buffer
	if err := WriteContactsCSV(&buf, contacts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EmailsCSV renders email records as a CSV string.
func EmailsCSV(emails []model.EmailRecord) (string, error) {
	var buf bytes.Buffer
	if err := WriteEmailsCSV(&buf, emails); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContactsFileName derives the download name for a company lookup, e.g.
// "Acme Corp" gives "acme_corp_contacts.csv".
func ContactsFileName(company string) string {
	base := strings.Trim(nonWordRe.ReplaceAllString(strings.ToLower(company), "_"), "_")
	if base == "" {
		base = "company"
	}
	return base + "_contacts.csv"
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "write header")
	}
	if err := cw.WriteAll(rows); err != nil {
		return eris.Wrap(err, "write rows")
	}
	return nil
}
