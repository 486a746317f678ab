package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeSubmissionReceived  = "submission:received"
	TypeAttendanceConfirmed = "submission:attended"

	QueueNotifications = "notifications"
)

type SubmissionPayload struct {
	SubmissionID string `json:"submission_id"`
	FormID       string `json:"form_id"`
}

func newSubmissionTask(typename, submissionID, formID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SubmissionPayload{SubmissionID: submissionID, FormID: formID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typename, payload, asynq.Queue(QueueNotifications), asynq.MaxRetry(5)), nil
}

func NewSubmissionReceivedTask(submissionID, formID string) (*asynq.Task, error) {
	return newSubmissionTask(TypeSubmissionReceived, submissionID, formID)
}

func NewAttendanceConfirmedTask(submissionID, formID string) (*asynq.Task, error) {
	return newSubmissionTask(TypeAttendanceConfirmed, submissionID, formID)
}

func ParseSubmissionPayload(t *asynq.Task) (SubmissionPayload, error) {
	var p SubmissionPayload
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
