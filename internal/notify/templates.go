package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; color: #1e3a8a;">
    <h2>Visit confirmed</h2>
    <p>Hello {{.VisitorName}},</p>
    <p>Your appointment has been registered with the following details:</p>
    <table style="border-collapse: collapse;">
      <tr><td style="padding: 4px 12px;"><b>Visiting</b></td><td>{{.VisitedName}}</td></tr>
      <tr><td style="padding: 4px 12px;"><b>Date</b></td><td>{{.Date}}</td></tr>
      <tr><td style="padding: 4px 12px;"><b>Time</b></td><td>{{.Time}}</td></tr>
      {{if .Plate}}<tr><td style="padding: 4px 12px;"><b>Vehicle plate</b></td><td>{{.Plate}}</td></tr>{{end}}
    </table>
    <p>Please bring a valid ID and arrive a few minutes early.</p>
  </body>
</html>`))

var rescheduledTmpl = template.Must(template.New("rescheduled").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; color: #1e3a8a;">
    <h2>Visit rescheduled</h2>
    <p>Hello {{.VisitorName}},</p>
    <p>Your appointment with {{.VisitedName}} has been moved:</p>
    <table style="border-collapse: collapse;">
      <tr><td style="padding: 4px 12px;"><b>Previous</b></td><td>{{.OldDate}} {{.OldTime}}</td></tr>
      <tr><td style="padding: 4px 12px;"><b>New</b></td><td>{{.Date}} {{.Time}}</td></tr>
    </table>
  </body>
</html>`))

var cancelledTmpl = template.Must(template.New("cancelled").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; color: #1e3a8a;">
    <h2>Visit cancelled</h2>
    <p>Hello {{.VisitorName}},</p>
    <p>Your appointment with {{.VisitedName}} on {{.Date}} at {{.Time}} has been cancelled.</p>
    <p>If this is unexpected, please contact the institution.</p>
  </body>
</html>`))

// Render produces the subject and HTML body for an event.
func Render(evt Event) (subject, body string, err error) {
	var tmpl *template.Template

	switch evt.Kind {
	case KindConfirmation:
		subject = "Appointment confirmation"
		tmpl = confirmationTmpl
	case KindRescheduled:
		subject = "Appointment rescheduled"
		tmpl = rescheduledTmpl
	case KindCancelled:
		subject = "Appointment cancelled"
		tmpl = cancelledTmpl
	default:
		return "", "", fmt.Errorf("unknown event kind %q", evt.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, evt); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
