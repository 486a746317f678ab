// Package tickets builds the barcode payload printed on a registration ticket.
package tickets

import (
	"encoding/json"
	"fmt"
	"strings"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
	"sgformer-backend/src/qrcode"
)

const MsgBadPayload = "Invalid barcode data format."

func PayloadFor(sub *models.Submission) models.TicketPayload {
	p := models.TicketPayload{SubmissionID: sub.ID.Hex(), FormID: sub.FormID.Hex()}
	if sub.UserID != nil {
		p.UserID = sub.UserID.Hex()
	}
	return p
}

func Encode(p models.TicketPayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses scanned barcode text. Both ids must be present.
func Decode(data string) (models.TicketPayload, error) {
	var p models.TicketPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &p); err != nil {
		return p, apperror.Validation(MsgBadPayload)
	}
	if p.SubmissionID == "" || p.FormID == "" {
		return p, apperror.Validation(MsgBadPayload)
	}
	return p, nil
}

// Render builds the ticket for a submission, QR code included.
func Render(sub *models.Submission, formTitle string) (*models.Ticket, error) {
	payload := PayloadFor(sub)
	data, err := Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encode ticket: %w", err)
	}
	png, err := qrcode.DataURI(data, qrcode.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return &models.Ticket{
		Payload:   payload,
		Data:      data,
		QRCodePNG: png,
		UserName:  sub.UserName,
		FormTitle: formTitle,
	}, nil
}
