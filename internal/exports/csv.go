package exports

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// Row is one lead as it appears in the export file.
type Row struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	CompanyName     string
	JobTitle        string
	Source          string
	Status          string
	Score           int
	LastContactedAt *time.Time
	ConvertedAt     *time.Time
	CreatedAt       time.Time
}

func csvHeaders() []string {
	return []string{
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"company_name",
		"job_title",
		"source",
		"status",
		"lead_score",
		"last_contacted_at",
		"converted_at",
		"created_at",
	}
}

// CSV renders the row in header order. Timestamps are RFC 3339 UTC.
func (r Row) CSV() []string {
	return []string{
		r.ID,
		r.FirstName,
		r.LastName,
		r.Email,
		r.Phone,
		r.CompanyName,
		r.JobTitle,
		r.Source,
		r.Status,
		strconv.Itoa(r.Score),
		formatOptionalTime(r.LastContactedAt),
		formatOptionalTime(r.ConvertedAt),
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeRows(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.CSV()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
