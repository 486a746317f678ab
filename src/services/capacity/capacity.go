// Package capacity decides whether a form still accepts registrations.
package capacity

import (
	"time"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
	"sgformer-backend/src/services/validation"
)

const (
	MsgNotActive  = "Form is not active"
	MsgNotYetOpen = "Form is not yet open"
	MsgClosed     = "Form is closed"
	MsgMaxReached = "Maximum submissions reached"
)

// CheckOpen applies the form-level gates in order: active flag, date
// window, then the submission cap against the current counters.
func CheckOpen(form *models.Form, now time.Time) error {
	st := form.Settings
	if !st.IsActive {
		return apperror.Capacity(MsgNotActive)
	}
	if st.StartDate != nil && now.Before(*st.StartDate) {
		return apperror.Capacity(MsgNotYetOpen)
	}
	if st.EndDate != nil && now.After(*st.EndDate) {
		return apperror.Capacity(MsgClosed)
	}
	if st.MaxSubmissions != nil && form.Counters.Total >= int64(*st.MaxSubmissions) {
		return apperror.Capacity(MsgMaxReached)
	}
	return nil
}

// BuildReservation lists the seats a submission takes: one on the form and
// one per selected option of every option question. Only the first answer to
// a question counts.
func BuildReservation(form *models.Form, answers []models.Answer) models.Reservation {
	r := models.Reservation{Max: form.Settings.MaxSubmissions}
	seen := map[string]bool{}
	answered := map[string]bool{}

	for _, a := range answers {
		q := form.Question(a.QuestionID)
		if q == nil || !q.Type.HasOptions() || answered[q.ID] {
			continue
		}
		answered[q.ID] = true
		for _, choice := range validation.Choices(a.Value) {
			for _, o := range q.Options {
				if o.Value != choice {
					continue
				}
				key := models.OptionKey(q.ID, o.ID)
				if seen[key] {
					continue
				}
				seen[key] = true
				claim := models.SeatClaim{Key: key, Label: o.Label}
				if o.Limit != nil {
					claim.Limit = *o.Limit
				}
				r.Claims = append(r.Claims, claim)
			}
		}
	}
	return r
}

// Availability reports every limited option with its current count.
func Availability(form *models.Form) []models.OptionAvailability {
	out := []models.OptionAvailability{}
	for _, q := range form.Questions {
		for _, o := range q.Options {
			if o.Limit == nil {
				continue
			}
			count := form.Counters.Options[models.OptionKey(q.ID, o.ID)]
			out = append(out, models.OptionAvailability{
				QuestionID: q.ID,
				OptionID:   o.ID,
				Value:      o.Value,
				Label:      o.Label,
				Limit:      *o.Limit,
				Count:      count,
				Full:       count >= int64(*o.Limit),
			})
		}
	}
	return out
}

// Explain turns a refused reservation into the message for the cap that was
// hit, judged against a fresh copy of the form.
func Explain(form *models.Form, r models.Reservation) error {
	if r.Max != nil && form.Counters.Total >= int64(*r.Max) {
		return apperror.Capacity(MsgMaxReached)
	}
	for _, c := range r.Claims {
		if c.Limit > 0 && form.Counters.Options[c.Key] >= int64(c.Limit) {
			return apperror.Capacity(c.Label + " is full")
		}
	}
	// The seat was freed again between the refusal and this read.
	return apperror.Capacity("Registration is busy, please try again")
}
