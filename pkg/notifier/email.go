// pkg/notifier/email.go
package notifier

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"settrack/pkg/config"
)

// Sender 通知发送能力
type Sender interface {
	Send(to, subject, body string) error
}

// EmailSender SMTP邮件通知服务。未配置SMTP时降级为日志输出并视为发送成功
type EmailSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewEmailSender 从配置创建邮件通知服务
func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		user:     cfg.SMTP.User,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
	}
}

// Configured 是否配置了真实的SMTP服务
func (e *EmailSender) Configured() bool {
	return e.host != ""
}

// Send 发送纯文本邮件
func (e *EmailSender) Send(to, subject, body string) error {
	return e.send(to, subject, body, "text/plain; charset=UTF-8")
}

// SendHTML 发送HTML邮件
func (e *EmailSender) SendHTML(to, subject, html string) error {
	return e.send(to, subject, html, "text/html; charset=UTF-8")
}

func (e *EmailSender) send(to, subject, body, contentType string) error {
	if !e.Configured() {
		// 降级模式：仅记录日志，视为发送成功
		log.Printf("[EMAIL MOCK] To: %s, Subject: %s", to, subject)
		log.Printf("[EMAIL MOCK] Body: %s", body)
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&msg, "\r\n%s\r\n", body)

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.user, e.password, e.host)

	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	log.Printf("[EMAIL SENT] To: %s", to)
	return nil
}
