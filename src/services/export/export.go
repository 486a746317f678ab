// Package export writes a form's submissions as a spreadsheet-friendly CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"sgformer-backend/src/models"
	"sgformer-backend/src/services/validation"
)

const TimeLayout = "2006-01-02 15:04:05"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func Header(form *models.Form) []string {
	row := []string{"Submitted At", "Name", "Email", "Attendance"}
	for _, q := range form.Questions {
		row = append(row, q.Label)
	}
	return row
}

func Row(form *models.Form, sub *models.Submission) []string {
	attendance := "Absent"
	if sub.Attended {
		attendance = "Attended"
	}
	row := []string{sub.SubmittedAt.Format(TimeLayout), sub.UserName, sub.UserEmail, attendance}
	for _, q := range form.Questions {
		cell := ""
		if a := sub.Answer(q.ID); a != nil {
			cell = validation.Stringify(a.Value)
		}
		row = append(row, cell)
	}
	return row
}

// CSV renders the header plus one row per submission, in the order given.
func CSV(form *models.Form, subs []models.Submission) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header(form)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i := range subs {
		if err := w.Write(Row(form, &subs[i])); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName builds a download name such as "Go_Workshop-submissions.csv".
func FileName(form *models.Form, ext string) string {
	base := strings.Trim(unsafeName.ReplaceAllString(form.Title, "_"), "_")
	if base == "" {
		base = form.ID.Hex()
	}
	return base + "-submissions." + ext
}
