package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// defaultFrom адрес отправителя по умолчанию
const defaultFrom = "SpotBook Appointments <no-reply@spotbook.local>"

// Client SMTP клиент для отправки почтовых уведомлений
// Работает с неаутентифицированным SMTP (Mailpit-совместимо)
type Client struct {
	addr string
	from string
}

// NewClient создает новый SMTP клиент
func NewClient(host, port, from string) *Client {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = defaultFrom
	}
	return &Client{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

// Send отправляет письмо с HTML телом
func (c *Client) Send(to, subject, htmlBody string) error {
	msg := buildMessage(c.from, to, subject, htmlBody)
	if err := smtp.SendMail(c.addr, nil, c.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// buildMessage собирает минимальное RFC 5322 сообщение
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
