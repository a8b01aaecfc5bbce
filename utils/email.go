package utils

import (
	"bytes"
	"estate_market/config"
	"fmt"
	"html/template"
	"log"
	"net/smtp"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

type ClaimDecisionData struct {
	Name       string
	UnitNumber string
	Building   string
	Project    string
	Approved   bool
	Price      string
}

var claimDecisionTmpl = template.Must(template.New("claim").Parse(`<p>Hello {{.Name}},</p>
{{if .Approved}}<p>Your claim for unit <b>{{.UnitNumber}}</b> in {{.Building}} ({{.Project}}) was approved. The unit is now registered to you at {{.Price}}.</p>
{{else}}<p>Your claim for unit <b>{{.UnitNumber}}</b> in {{.Building}} ({{.Project}}) was rejected. The unit is available again.</p>{{end}}`))

func smtpEnabled() bool {
	return config.Config("SMTP_HOST") != ""
}

// SendClaimDecisionEmail notifies the buyer about an approve or reject
// decision. Runs async and only logs failures.
func SendClaimDecisionEmail(to string, data ClaimDecisionData) {
	if to == "" || !smtpEnabled() {
		return
	}
	go func() {
		var body bytes.Buffer
		if err := claimDecisionTmpl.Execute(&body, data); err != nil {
			log.Printf("claim email render failed: %v", err)
			return
		}

		subject := "Your apartment claim was rejected"
		if data.Approved {
			subject = "Your apartment claim was approved"
		}

		m := gomail.NewMessage()
		m.SetHeader("From", config.Config("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(config.Config("SMTP_HOST"), config.ConfigInt("SMTP_PORT", 587), config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("claim email send failed: %v", err)
		}
	}()
}

// SendModerationResultEmail tells the applicant how a verification or
// builder application review ended.
func SendModerationResultEmail(to, name, subject string, approved bool) {
	if to == "" || !smtpEnabled() {
		return
	}
	go func() {
		result := "rejected"
		if approved {
			result = "approved"
		}
		host := config.Config("SMTP_HOST")
		e := email.NewEmail()
		e.From = config.Config("SMTP_FROM")
		e.To = []string{to}
		e.Subject = fmt.Sprintf("%s %s", subject, result)
		e.Text = []byte(fmt.Sprintf("Hello %s,\n\nYour %s was %s by our moderation team.\n", name, subject, result))
		addr := fmt.Sprintf("%s:%d", host, config.ConfigInt("SMTP_PORT", 587))
		auth := smtp.PlainAuth("", config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"), host)
		if err := e.Send(addr, auth); err != nil {
			log.Printf("moderation email send failed: %v", err)
		}
	}()
}
