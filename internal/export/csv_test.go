package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-finder/internal/model"
)

func TestWriteContactsCSV(t *testing.T) {
	contacts := []model.ContactResult{
		{
			Name:           "Jane Doe",
			Title:          "CEO, Founder",
			Email:          "jane@acme.com",
			LinkedInURL:    "https://www.linkedin.com/in/janedoe",
			CompanyEmail:   "info@acme.com",
			SourceCitation: "https://acme.com/team",
		},
		{Name: "John \"JJ\" Smith", Title: "CTO"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteContactsCSV(&buf, contacts))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "title", "email", "linkedin_url", "company_email", "source_citation"}, records[0])
	assert.Equal(t, []string{"Jane Doe", "CEO, Founder", "jane@acme.com", "https://www.linkedin.com/in/janedoe", "info@acme.com", "https://acme.com/team"}, records[1])
	assert.Equal(t, []string{"John \"JJ\" Smith", "CTO", "", "", "", ""}, records[2])
}

func TestWriteEmailsCSV(t *testing.T) {
	out, err := EmailsCSV([]model.EmailRecord{
		{Address: "sales@acme.com", SourceURL: "https://acme.com", Category: "sales"},
		{Address: "jane@acme.com", SourceURL: "https://acme.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "address,source_url,category\nsales@acme.com,https://acme.com,sales\njane@acme.com,https://acme.com,\n", out)
}

func TestContactsCSV_Empty(t *testing.T) {
	out, err := ContactsCSV(nil)
	require.NoError(t, err)

	assert.Equal(t, "name,title,email,linkedin_url,company_email,source_citation\n", out)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteEmailsCSV_WriteError(t *testing.T) {
	err := WriteEmailsCSV(failingWriter{}, []model.EmailRecord{{Address: "a@b.co"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestContactsFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme_corp_contacts.csv"},
		{"  Smith & Sons, LLC ", "smith_sons_llc_contacts.csv"},
		{"ACME", "acme_contacts.csv"},
		{"", "company_contacts.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ContactsFileName(tt.in))
		})
	}
	assert.Equal(t, "extracted_emails.csv", EmailsFileName)
}
