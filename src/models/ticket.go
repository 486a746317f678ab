package models

// TicketPayload is the JSON text encoded into a ticket barcode.
type TicketPayload struct {
	SubmissionID string `json:"submissionId"`
	FormID       string `json:"formId"`
	UserID       string `json:"userId,omitempty"`
}

type Ticket struct {
	Payload   TicketPayload `json:"payload"`
	Data      string        `json:"data"`
	QRCodePNG string        `json:"qrCode"`
	UserName  string        `json:"userName"`
	FormTitle string        `json:"formTitle"`
}

type CheckInResult struct {
	SubmissionID string `json:"submissionId"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	Message      string `json:"message"`
}
