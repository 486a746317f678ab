package models

import "strings"

// SeatClaim is one option counter touched by a submission.
// Limit 0 means the option is counted but not capped.
type SeatClaim struct {
	Key   string
	Label string
	Limit int
}

// Reservation is everything a submission consumes on its form.
type Reservation struct {
	Max    *int
	Claims []SeatClaim
}

var optionKeyReplacer = strings.NewReplacer(".", "_", "$", "_")

// OptionKey is the counters.options key for an option. Dots and dollar
// signs are not allowed in document field names.
func OptionKey(questionID, optionID string) string {
	return optionKeyReplacer.Replace(questionID) + "__" + optionKeyReplacer.Replace(optionID)
}
