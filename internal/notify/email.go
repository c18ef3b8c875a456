package notify

import (
	"fmt"
	"time"

	"github.com/lenderapp/lender/internal/model"
)

var swedishWeekdays = [...]string{
	"söndag", "måndag", "tisdag", "onsdag", "torsdag", "fredag", "lördag",
}

var swedishMonths = [...]string{
	"januari", "februari", "mars", "april", "maj", "juni",
	"juli", "augusti", "september", "oktober", "november", "december",
}

// formatDate renders a date the way the emails always have: long Swedish
// form, e.g. "måndag 2 september 2026".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d",
		swedishWeekdays[t.Weekday()], t.Day(), swedishMonths[t.Month()-1], t.Year())
}

// formatTime truncates a time-of-day string to HH:MM.
func formatTime(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// greeting addresses the recipient by name when one is on file.
func greeting(name *string) string {
	if name != nil && *name != "" {
		return fmt.Sprintf("Hej %s!", *name)
	}
	return "Hej!"
}

// Subject returns the email subject for a notification.
func Subject(n *model.Notification) string {
	if n.Kind == model.NotificationBookingApproved {
		return "Din bokning har godkänts! ✓"
	}
	return "Uppdatering om din bokning"
}

// Body renders the HTML email body for a notification.
func Body(n *model.Notification) string {
	date := formatDate(n.SlotDate)

	if n.Kind == model.NotificationBookingApproved {
		return fmt.Sprintf(approvedTemplate,
			greeting(n.RecipientName), date, formatTime(n.SlotTime), n.SlotDuration)
	}
	return fmt.Sprintf(rejectedTemplate, greeting(n.RecipientName), date)
}

const approvedTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { color: #6366f1; font-size: 24px; margin-bottom: 20px; }
    .card { background: #f3f4f6; border-radius: 8px; padding: 16px; margin: 16px 0; }
    .success { color: #10b981; font-weight: bold; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">Lender</div>
    <p>%s</p>
    <p class="success">✓ Din bokning har godkänts!</p>
    <div class="card">
      <p><strong>Datum:</strong> %s</p>
      <p><strong>Tid:</strong> %s</p>
      <p><strong>Längd:</strong> %s</p>
      <p><strong>Sträcka:</strong> Malmö Triangeln ↔ Nørreport St.</p>
    </div>
    <p>Du kommer få biljetten via Skånetrafiken-appen.</p>
    <p>Trevlig resa!</p>
  </div>
</body>
</html>
`

const rejectedTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { color: #6366f1; font-size: 24px; margin-bottom: 20px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">Lender</div>
    <p>%s</p>
    <p>Tyvärr kunde vi inte godkänna din bokning för %s.</p>
    <p>Du är välkommen att boka en annan tid.</p>
  </div>
</body>
</html>
`
