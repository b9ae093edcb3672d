package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer renders the account and booking emails and hands them to a Sender.
type Mailer struct {
	sender      Sender
	frontendURL string
	templates   *template.Template
}

func NewMailer(sender Sender, frontendURL string) (*Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Mailer{sender: sender, frontendURL: frontendURL, templates: tmpl}, nil
}

func (m *Mailer) SendVerificationEmail(ctx context.Context, to, fullName, uidb64, token string) error {
	return m.send(ctx, to, "Verify Your Email - TravelMarket", "verify-email.html", map[string]interface{}{
		"FullName":         fullName,
		"VerificationLink": fmt.Sprintf("%s/verify-email/%s/%s", m.frontendURL, uidb64, token),
	})
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, uidb64, token string) error {
	return m.send(ctx, to, "Reset Your Password - TravelMarket", "reset-password.html", map[string]interface{}{
		"ResetLink": fmt.Sprintf("%s/reset/%s/%s", m.frontendURL, uidb64, token),
	})
}

func (m *Mailer) SendBookingConfirmedEmail(ctx context.Context, to, fullName, packageName string, bookingID uint) error {
	return m.send(ctx, to, "Your booking is confirmed - TravelMarket", "booking-confirmed.html", map[string]interface{}{
		"FullName":    fullName,
		"PackageName": packageName,
		"BookingLink": fmt.Sprintf("%s/my-bookings#%d", m.frontendURL, bookingID),
	})
}

func (m *Mailer) send(ctx context.Context, to, subject, name string, data map[string]interface{}) error {
	data["Email"] = to
	data["Year"] = time.Now().Year()

	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return m.sender.Send(ctx, Message{To: to, Subject: subject, HTML: body.String()})
}
