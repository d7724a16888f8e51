package handlers

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer delivers award notifications. Delivery is an external
// collaborator: failures are retried by the outbox runner and never
// unwind the award transaction.
type Mailer interface {
	SendAwardNotice(to, agencyName, workName string, memoNumber int) error
}

// DefaultMailer is chosen from the environment at startup: SMTP when
// MAIL_ENABLED=true, otherwise a logger that records the notice.
var DefaultMailer Mailer = newMailerFromEnv()

func newMailerFromEnv() Mailer {
	if os.Getenv("MAIL_ENABLED") == "true" {
		return &smtpMailer{
			addr: os.Getenv("SMTP_ADDR"),
			from: os.Getenv("SMTP_FROM"),
		}
	}
	return logMailer{}
}

type smtpMailer struct {
	addr string
	from string
}

func (m *smtpMailer) SendAwardNotice(to, agencyName, workName string, memoNumber int) error {
	body := fmt.Sprintf("To: %s\r\nSubject: Award of Contract\r\n\r\n"+
		"Dear %s,\r\n\r\nYour bid for %q has been accepted vide work order memo no. %d. "+
		"Please report to the Gram Panchayat office to execute the agreement.\r\n",
		to, agencyName, workName, memoNumber)
	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(body))
}

type logMailer struct{}

func (logMailer) SendAwardNotice(to, agencyName, workName string, memoNumber int) error {
	log.Printf("mail disabled: award notice for %s (%s), work %q, memo %d",
		agencyName, to, workName, memoNumber)
	return nil
}
