package notifier

import (
	"context"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"jobboard.backend/pkg/crypto"
	"jobboard.backend/pkg/logger"
)

const otpSubject = "Your verification code"

// OTPNotifier delivers verification codes to account owners
type OTPNotifier interface {
	SendOTP(ctx context.Context, email, name, code string) error
}

// SMTPConfig holds outgoing mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// CodeTTL is quoted in the message body; zero means crypto.OTPTTL
	CodeTTL time.Duration
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier sends codes over SMTP
type SMTPNotifier struct {
	from    string
	codeTTL time.Duration
	dialer  mailDialer
}

// NewSMTPNotifier creates an SMTP notifier
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	ttl := cfg.CodeTTL
	if ttl <= 0 {
		ttl = crypto.OTPTTL
	}
	return &SMTPNotifier{
		from:    cfg.From,
		codeTTL: ttl,
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// SendOTP mails the code to email
func (n *SMTPNotifier) SendOTP(ctx context.Context, email, name, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", otpSubject)
	lifetime := describeTTL(n.codeTTL)
	m.SetBody("text/plain", plainBody(name, code, lifetime))
	m.AddAlternative("text/html", htmlBody(name, code, lifetime))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

// describeTTL renders whole minutes as words and anything else as a Go duration
func describeTTL(ttl time.Duration) string {
	if ttl%time.Minute != 0 {
		return ttl.String()
	}
	if minutes := int(ttl / time.Minute); minutes != 1 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return "1 minute"
}

func plainBody(name, code, lifetime string) string {
	return fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %s.\n", name, code, lifetime)
}

func htmlBody(name, code, lifetime string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in %s.</p>",
		html.EscapeString(name), html.EscapeString(code), lifetime)
}

// LogNotifier writes codes to the application log. Used when SMTP is not configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// SendOTP logs the code
func (n *LogNotifier) SendOTP(ctx context.Context, email, name, code string) error {
	logger.Info(ctx, "Verification code issued",
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}
