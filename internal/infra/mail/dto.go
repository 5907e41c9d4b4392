package mail

import "gopkg.in/gomail.v2"

type IntakeNoticeData struct {
	FormLabel    string
	BusinessName string
	ContactName  string
	DashboardURL string
}

// Dialer sends composed messages; *gomail.Dialer implements it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From         string
	To           string
	DashboardURL string
	Dialer       Dialer
}
