package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"edu_portfolio_backend/internal/config"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	host      string
	port      int
	username  string
	password  string
	from      string
	clientURL string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.Email.Host,
		port:      cfg.Email.Port,
		username:  cfg.Email.Username,
		password:  cfg.Email.Password,
		from:      cfg.Email.From,
		clientURL: strings.TrimRight(cfg.ClientURL, "/"),
	}
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String()))
}

// SendVerificationEmail mails the link a user clicks to verify their address.
func (s *EmailService) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s", s.clientURL, token)
	body := fmt.Sprintf(`
		<h2>Emailingizni tasdiqlang</h2>
		<p>Ro'yxatdan o'tganingiz uchun rahmat! Hisobingizni faollashtirish uchun quyidagi havolani bosing:</p>
		<p><a href="%s">Emailni tasdiqlash</a></p>
		<p>Havola 24 soat davomida amal qiladi.</p>`, link)
	return s.send(to, "Emailingizni tasdiqlang", body)
}

// SendPasswordResetEmail mails the password reset link.
func (s *EmailService) SendPasswordResetEmail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)
	body := fmt.Sprintf(`
		<h2>Parolni tiklash</h2>
		<p>Parolingizni tiklash uchun quyidagi havolani bosing:</p>
		<p><a href="%s">Parolni tiklash</a></p>
		<p>Havola 1 soat davomida amal qiladi. Agar bu so'rovni siz yubormagan bo'lsangiz, bu xatni e'tiborsiz qoldiring.</p>`, link)
	return s.send(to, "Parolni tiklash", body)
}

// SendWelcomeEmail greets a newsletter subscriber.
func (s *EmailService) SendWelcomeEmail(to string) error {
	body := fmt.Sprintf(`
		<h2>Xush kelibsiz!</h2>
		<p>Yangiliklar ro'yxatimizga qo'shilganingiz uchun rahmat. Yangi kurslar va maqolalar haqida birinchilardan bo'lib xabardor bo'lasiz.</p>
		<p><a href="%s">Saytga o'tish</a></p>`, s.clientURL)
	return s.send(to, "Obuna uchun rahmat", body)
}
