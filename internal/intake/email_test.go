package intake_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/Bitlatte/resonant/internal/config"
	"github.com/Bitlatte/resonant/internal/intake"
)

type recordingSender struct {
	sent []*mail.Msg
	err  error
}

func (r *recordingSender) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	r.sent = append(r.sent, msgs...)
	return r.err
}

func TestEmailNotifier_Notify(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	n := intake.NewEmailNotifierWithSender("forms@resonant.studio", "hello@resonant.studio", sender)
	assert.Equal(t, intake.ChannelEmail, n.Channel())

	require.NoError(t, n.Notify(context.Background(), testNotification()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"New project inquiry"}, msg.GetGenHeader(mail.HeaderSubject))
	rcpts, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"hello@resonant.studio"}, rcpts)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/plain")
	assert.Contains(t, buf.String(), "text/html")
}

func TestEmailNotifier_SendError(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{err: errors.New("connection refused")}
	n := intake.NewEmailNotifierWithSender("forms@resonant.studio", "hello@resonant.studio", sender)

	err := n.Notify(context.Background(), testNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEmailNotifier_InvalidAddress(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	n := intake.NewEmailNotifierWithSender("not an address", "hello@resonant.studio", sender)

	require.Error(t, n.Notify(context.Background(), testNotification()))
	assert.Empty(t, sender.sent)
}

func TestEmailText(t *testing.T) {
	t.Parallel()

	n := testNotification()
	assert.Equal(t, n.Summary+"\n\nProject details:\n"+n.Description, intake.EmailText(n))
}

func TestNewEmailNotifier(t *testing.T) {
	t.Parallel()

	for _, port := range []int{465, 587} {
		n, err := intake.NewEmailNotifier(config.MailConfig{
			Host: "smtp.example.com", Port: port, Username: "studio", Password: "secret",
			From: "forms@resonant.studio", To: "hello@resonant.studio",
		})
		require.NoError(t, err)
		assert.Equal(t, intake.ChannelEmail, n.Channel())
	}
}
