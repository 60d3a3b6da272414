package mailer

import (
	"html/template"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

type festPassData struct {
	FestName     string
	Attendee     domain.Attendee
	Registration domain.Registration
	Group        []domain.Attendee
	ContactEmail string
	ContactPhone string
}

type eventConfirmationData struct {
	FestName     string
	Registration domain.Registration
	Leader       domain.Attendee
	ContactEmail string
	ContactPhone string
}

type entryConfirmationData struct {
	FestName     string
	Attendee     domain.Attendee
	Registration domain.Registration
}

type adminFestPassData struct {
	FestName     string
	Registration domain.Registration
	Leader       domain.Attendee
}

// html/template rejects data: URLs in src attributes; the QR images are data
// URLs we render ourselves, so they are marked trusted explicitly.
var tmplFuncs = template.FuncMap{
	"dataURL": func(s string) template.URL { return template.URL(s) },
}

var festPassTmpl = template.Must(template.New("festPass").Funcs(tmplFuncs).Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.FestName}} Fest Pass</h2>
  <p>Hi {{.Attendee.Name}},</p>
  <p>Your fest pass is confirmed. Show the QR code below at the venue gate.</p>
  <p style="text-align: center;"><img src="{{dataURL .Attendee.QRCode}}" alt="Fest Pass QR" width="256" height="256"/></p>
  <table cellpadding="4">
    <tr><td><b>Registration ID</b></td><td>{{.Registration.ID}}</td></tr>
    <tr><td><b>Name</b></td><td>{{.Attendee.Name}}</td></tr>
    <tr><td><b>College</b></td><td>{{.Attendee.College}}</td></tr>
  </table>
{{if .Group}}
  <h3>Your group's passes</h3>
  {{range .Group}}{{if not .IsLeader}}
  <div style="margin-bottom: 16px;">
    <p><b>{{.Name}}</b></p>
    <p style="text-align: center;"><img src="{{dataURL .QRCode}}" alt="Fest Pass QR" width="256" height="256"/></p>
  </div>
  {{end}}{{end}}
  <p>Each member has also received their own pass by email.</p>
{{end}}
  <p>Questions? Write to {{.ContactEmail}}{{if .ContactPhone}} or call {{.ContactPhone}}{{end}}.</p>
</body>
</html>`))

var adminFestPassTmpl = template.Must(template.New("adminFestPass").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.FestName}} - New Fest Pass Registration</h2>
  <table cellpadding="4">
    <tr><td><b>Registration ID</b></td><td>{{.Registration.ID}}</td></tr>
    <tr><td><b>Name</b></td><td>{{.Leader.Name}}</td></tr>
    <tr><td><b>Email</b></td><td>{{.Leader.Email}}</td></tr>
    <tr><td><b>Phone</b></td><td>{{.Leader.PhoneNumber}}</td></tr>
    <tr><td><b>College</b></td><td>{{.Leader.College}}</td></tr>
    <tr><td><b>Enrollment</b></td><td>{{.Registration.EnrollmentType}}</td></tr>
    <tr><td><b>Members</b></td><td>{{.Registration.NumMembers}}</td></tr>
    <tr><td><b>Amount</b></td><td>{{.Registration.Amount}}</td></tr>
{{if .Registration.PaymentID}}    <tr><td><b>Payment ID</b></td><td>{{.Registration.PaymentID}}</td></tr>
{{end}}  </table>
{{if gt (len .Registration.Attendees) 1}}
  <h3>Group members</h3>
  <ul>
  {{range .Registration.Attendees}}<li>{{.Name}}{{if .IsLeader}} (leader){{end}}</li>
  {{end}}</ul>
{{end}}
</body>
</html>`))

var eventConfirmationTmpl = template.Must(template.New("eventConfirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.FestName}} - Registration Confirmed</h2>
  <p>Hi {{.Leader.Name}},</p>
  <p>Your registration for <b>{{.Registration.EventName}}</b> is confirmed.</p>
  <table cellpadding="4">
    <tr><td><b>Registration ID</b></td><td>{{.Registration.ID}}</td></tr>
    <tr><td><b>Event</b></td><td>{{.Registration.EventName}}</td></tr>
{{if .Registration.TeamName}}    <tr><td><b>Team</b></td><td>{{.Registration.TeamName}}</td></tr>
{{end}}    <tr><td><b>Members</b></td><td>{{.Registration.NumMembers}}</td></tr>
  </table>
{{if gt (len .Registration.Attendees) 1}}
  <h3>Team members</h3>
  <ul>
  {{range .Registration.Attendees}}<li>{{.Name}}{{if .IsLeader}} (leader){{end}}</li>
  {{end}}</ul>
{{end}}
  <p>Questions? Write to {{.ContactEmail}}{{if .ContactPhone}} or call {{.ContactPhone}}{{end}}.</p>
</body>
</html>`))

var entryConfirmationTmpl = template.Must(template.New("entryConfirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.FestName}} - Entry Confirmed</h2>
  <p>Hi {{.Attendee.Name}},</p>
  <p>Welcome to {{.FestName}}! Your entry has been recorded.</p>
  <table cellpadding="4">
    <tr><td><b>Pass Number</b></td><td>{{.Attendee.PassNumber}}</td></tr>
    <tr><td><b>Registration ID</b></td><td>{{.Registration.ID}}</td></tr>
{{if .Attendee.EntryTime}}    <tr><td><b>Entry Time</b></td><td>{{.Attendee.EntryTime.Format "02 Jan 2006 15:04 MST"}}</td></tr>
{{end}}  </table>
  <p>Keep this email as proof of entry.</p>
</body>
</html>`))
