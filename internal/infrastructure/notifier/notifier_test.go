package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
	"jobboard.backend/pkg/crypto"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTPNotifier_SendOTP(t *testing.T) {
	d := &fakeDialer{}
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})
	n.dialer = d

	require.NoError(t, n.SendOTP(context.Background(), "alice@example.com", "Alice", "123456"))
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"noreply@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{otpSubject}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "123456")
}

func TestSMTPNotifier_QuotesConfiguredLifetime(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, CodeTTL: 15 * time.Minute})
	assert.Equal(t, 15*time.Minute, n.codeTTL)

	fallback := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.Equal(t, crypto.OTPTTL, fallback.codeTTL)

	lifetime := describeTTL(n.codeTTL)
	assert.Contains(t, plainBody("Alice", "123456", lifetime), "It expires in 15 minutes.")
	assert.Contains(t, htmlBody("Alice", "123456", lifetime), "It expires in 15 minutes.")
	assert.NotContains(t, plainBody("Alice", "123456", lifetime), "10 minutes")
}

func TestDescribeTTL(t *testing.T) {
	cases := map[time.Duration]string{
		time.Minute:      "1 minute",
		10 * time.Minute: "10 minutes",
		90 * time.Second: "1m30s",
		2 * time.Hour:    "120 minutes",
	}
	for ttl, want := range cases {
		assert.Equal(t, want, describeTTL(ttl), ttl.String())
	}
}

func TestSMTPNotifier_SendOTPErrors(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	n := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587})
	n.dialer = d

	err := n.SendOTP(context.Background(), "alice@example.com", "Alice", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send otp email")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, n.SendOTP(ctx, "alice@example.com", "Alice", "123456"), context.Canceled)
	assert.Len(t, d.sent, 1)
}

func TestHTMLBodyEscapesName(t *testing.T) {
	body := htmlBody("<script>", "123456", "10 minutes")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestLogNotifier_SendOTP(t *testing.T) {
	require.NoError(t, NewLogNotifier().SendOTP(context.Background(), "a@example.com", "A", "654321"))
}
