package notifications

import (
	"bytes"
	"html/template"
	"time"
)

type ReceivedEmailData struct {
	OwnerName    string
	FormTitle    string
	UserName     string
	UserEmail    string
	SubmittedAt  time.Time
	Total        int64
	DashboardURL string
}

type ConfirmationEmailData struct {
	UserName  string
	FormTitle string
	TicketURL string
}

type AttendanceEmailData struct {
	UserName   string
	FormTitle  string
	AttendedAt time.Time
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string { return t.UTC().Format("02/01/2006 15:04 UTC") },
}

var receivedTmpl = template.Must(template.New("received").Funcs(funcs).Parse(`<!DOCTYPE html>
<html><body style="font-family:sans-serif">
<p>Hello {{.OwnerName}},</p>
<p><strong>{{.UserName}}</strong> ({{.UserEmail}}) registered for <strong>{{.FormTitle}}</strong> on {{formatTime .SubmittedAt}}.</p>
<p>Registrations so far: {{.Total}}</p>
<p><a href="{{.DashboardURL}}">Open the submissions list</a></p>
</body></html>`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html><body style="font-family:sans-serif">
<p>Hello {{.UserName}},</p>
<p>Your registration for <strong>{{.FormTitle}}</strong> is confirmed.</p>
<p>Show your ticket at the entrance: <a href="{{.TicketURL}}">{{.TicketURL}}</a></p>
</body></html>`))

var attendanceTmpl = template.Must(template.New("attendance").Funcs(funcs).Parse(`<!DOCTYPE html>
<html><body style="font-family:sans-serif">
<p>Hello {{.UserName}},</p>
<p>You checked in to <strong>{{.FormTitle}}</strong> at {{formatTime .AttendedAt}}. Enjoy the event!</p>
</body></html>`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderReceivedEmail(d ReceivedEmailData) (string, error)         { return render(receivedTmpl, d) }
func RenderConfirmationEmail(d ConfirmationEmailData) (string, error) { return render(confirmationTmpl, d) }
func RenderAttendanceEmail(d AttendanceEmailData) (string, error)     { return render(attendanceTmpl, d) }
