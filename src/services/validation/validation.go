// Package validation checks submission answers against a form's questions.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateAnswers returns every violation. Answers that name no question or
// repeat one come first, then the per-question checks in question order. An
// empty result means the answers may be persisted.
func ValidateAnswers(questions []models.Question, answers []models.Answer) []string {
	labels := make(map[string]string, len(questions))
	for _, q := range questions {
		labels[q.ID] = q.Label
	}

	errs := []string{}
	byQuestion := make(map[string]interface{}, len(answers))
	for _, a := range answers {
		label, known := labels[a.QuestionID]
		if !known {
			errs = append(errs, fmt.Sprintf("Unknown question %q", a.QuestionID))
			continue
		}
		if _, dup := byQuestion[a.QuestionID]; dup {
			errs = append(errs, label+" is answered more than once")
			continue
		}
		byQuestion[a.QuestionID] = a.Value
	}

	for _, q := range questions {
		value, ok := byQuestion[q.ID]
		if !ok || IsEmpty(value) {
			if q.Required {
				errs = append(errs, q.Label+" is required")
			}
			continue
		}
		errs = append(errs, checkValue(q, value)...)
	}
	return errs
}

func checkValue(q models.Question, value interface{}) []string {
	var errs []string
	text := Stringify(value)
	v := q.Validation

	if v != nil {
		if v.MinLength != nil && len([]rune(text)) < *v.MinLength {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters", q.Label, *v.MinLength))
		}
		if v.MaxLength != nil && len([]rune(text)) > *v.MaxLength {
			errs = append(errs, fmt.Sprintf("%s must be at most %d characters", q.Label, *v.MaxLength))
		}
	}

	if q.Type == models.QuestionNumber {
		n, ok := toNumber(value)
		switch {
		case !ok:
			errs = append(errs, q.Label+" must be a number")
		case v != nil:
			if v.Min != nil && n < *v.Min {
				errs = append(errs, fmt.Sprintf("%s must be at least %s", q.Label, formatNumber(*v.Min)))
			}
			if v.Max != nil && n > *v.Max {
				errs = append(errs, fmt.Sprintf("%s must be at most %s", q.Label, formatNumber(*v.Max)))
			}
		}
	}

	if q.Type == models.QuestionEmail && !IsEmail(text) {
		errs = append(errs, q.Label+" must be a valid email address")
	}

	if v != nil && v.Pattern != "" {
		if re, err := regexp.Compile(v.Pattern); err == nil && !re.MatchString(text) {
			msg := v.CustomMessage
			if msg == "" {
				msg = q.Label + " has an invalid format"
			}
			errs = append(errs, msg)
		}
	}

	if q.Type.HasOptions() && len(q.Options) > 0 {
		choices := Choices(value)
		if len(choices) > 1 && !q.MultipleChoice() {
			errs = append(errs, q.Label+" accepts a single option")
		}
		allowed := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			allowed[o.Value] = true
		}
		for _, choice := range choices {
			if !allowed[choice] {
				errs = append(errs, q.Label+" has an invalid option")
				break
			}
		}
	}
	return errs
}

// IsEmpty treats nil, blank strings and empty lists as missing.
// false and 0 are real answers.
func IsEmpty(value interface{}) bool {
	switch t := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	case primitive.A:
		return len(t) == 0
	}
	return false
}

// Choices lists the selected values of an option answer.
func Choices(value interface{}) []string {
	switch t := value.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []interface{}:
		return stringsOf(t)
	case primitive.A:
		return stringsOf(t)
	case nil:
		return nil
	}
	return []string{Stringify(value)}
}

func stringsOf(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, Stringify(it))
	}
	return out
}

// Stringify renders an answer the way length checks and exports see it.
// Lists are joined with commas.
func Stringify(value interface{}) string {
	switch t := value.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case []string:
		return strings.Join(t, ",")
	case []interface{}:
		return strings.Join(stringsOf(t), ",")
	case primitive.A:
		return strings.Join(stringsOf(t), ",")
	}
	return fmt.Sprint(value)
}

func toNumber(value interface{}) (float64, bool) {
	switch t := value.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	}
	return 0, false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
