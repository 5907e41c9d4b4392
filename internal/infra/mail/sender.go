package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/sclayai/proposal-intake/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var noticeTemplate = template.Must(template.ParseFS(templateFS, "templates/intake_notice.html"))

func NewEmailSender(host string, port int, user, password, from, to, dashboardURL string) *EmailSender {
	return &EmailSender{
		From:         from,
		To:           to,
		DashboardURL: dashboardURL,
		Dialer:       gomail.NewDialer(host, port, user, password),
	}
}

// SendIntakeNotice mails the team that a form was submitted.
func (s *EmailSender) SendIntakeNotice(kind entity.Kind, businessName, contactName string) error {
	data := IntakeNoticeData{
		FormLabel:    formLabel(kind),
		BusinessName: businessName,
		ContactName:  contactName,
		DashboardURL: s.DashboardURL,
	}

	var body bytes.Buffer
	if err := noticeTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render intake notice: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New %s: %s", data.FormLabel, businessName))
	m.SetBody("text/html", body.String())

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send intake notice: %w", err)
	}
	return nil
}

func formLabel(kind entity.Kind) string {
	if kind == entity.KindProspect {
		return "prospect"
	}
	return "onboarding"
}
