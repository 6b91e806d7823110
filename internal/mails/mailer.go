package mails

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

// Email templates define three blocks: subject, plainBody and htmlBody.
func parseEmailTmpl(tmplName string, tmplData any) (map[string]string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+tmplName)
	if err != nil {
		return nil, err
	}
	tmplPartials := map[string]string{
		"subject":   "",
		"plainBody": "",
		"htmlBody":  "",
	}
	for key := range tmplPartials {
		buff := new(bytes.Buffer)
		if err = tmpl.ExecuteTemplate(buff, key, tmplData); err != nil {
			return nil, err
		}
		tmplPartials[key] = buff.String()
	}
	return tmplPartials, nil
}

// Mailer sends over plain SMTP.
type Mailer struct {
	Dialer       *mail.Dialer
	Sender       string
	RetriesCount int
}

func New(host string, port int, timeout time.Duration, username, password, sender string, retriesCount int) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	return &Mailer{
		Dialer:       dialer,
		Sender:       sender,
		RetriesCount: retriesCount,
	}
}

func (m *Mailer) Send(recipient string, tmplName string, tmplData any) error {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("Subject", tmplPartials["subject"])
	msg.SetBody("text/plain", tmplPartials["plainBody"])
	msg.AddAlternative("text/html", tmplPartials["htmlBody"])
	for i := 0; i < m.RetriesCount; i++ {
		err = m.Dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}

// ApiMailer sends through the mailtrap HTTP API instead of SMTP. ApiURL is
// the account's full send endpoint, including the inbox id for sandbox
// accounts.
type ApiMailer struct {
	ApiURL       string
	ApiToken     string
	Sender       string
	RetriesCount int
}

func (m *ApiMailer) Send(recipient string, tmplName string, tmplData any) error {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return err
	}
	sender := strings.SplitN(m.Sender, " <", 2)
	senderName := sender[0]
	senderEmail := m.Sender
	if len(sender) == 2 {
		senderEmail = strings.TrimSuffix(sender[1], ">")
	}
	payload, err := json.Marshal(map[string]any{
		"from":    map[string]string{"email": senderEmail, "name": senderName},
		"to":      []map[string]string{{"email": recipient}},
		"subject": tmplPartials["subject"],
		"text":    tmplPartials["plainBody"],
		"html":    tmplPartials["htmlBody"],
	})
	if err != nil {
		return err
	}
	client := http.Client{}
	var resp *http.Response
	for i := 0; i < m.RetriesCount; i++ {
		req, err := http.NewRequest(http.MethodPost, m.ApiURL, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Add("Authorization", "Bearer "+m.ApiToken)
		req.Header.Set("Content-Type", "application/json")
		resp, err = client.Do(req)
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if resp == nil {
		return fmt.Errorf("failed to send email to %s", recipient)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var bodyParsed map[string]any
	if err := json.Unmarshal(body, &bodyParsed); err == nil {
		if errs, ok := bodyParsed["errors"]; ok {
			return fmt.Errorf("failed to send email: %s", errs)
		}
	}
	return nil
}
