package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification channels.
const (
	ChannelEmail = "email"
	ChannelSlack = "slack"
)

// Channels lists every channel a submission can be announced on.
var Channels = []string{ChannelEmail, ChannelSlack}

// Subject is the headline used by every channel.
const Subject = "New project inquiry"

// Notifier delivers a notification over one channel.
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, n Notification) error
}

// Notification is a validated submission ready to be announced.
type Notification struct {
	ID          string
	ReceivedAt  time.Time
	Submission  Submission
	Summary     string
	Description string
}

// NewNotification prepares sub for delivery.
func NewNotification(sub Submission, now time.Time) Notification {
	return Notification{
		ID:          uuid.NewString(),
		ReceivedAt:  now,
		Submission:  sub,
		Summary:     Summarize(sub),
		Description: sub.Description,
	}
}

// Summarize renders the plain-text summary shared by every channel.
func Summarize(sub Submission) string {
	invite := "No"
	if sub.InviteToSlack() {
		invite = "Yes"
	}
	lines := []string{
		fmt.Sprintf("%s from %s (%s)", Subject, sub.Name, sub.Company),
		"Email: " + sub.Email,
		"Timeline: " + sub.Timeline,
		"Services: " + strings.Join(sub.Services, ", "),
		"Budget: " + sub.Budget,
		"How they heard: " + orNA(sub.Hear),
		"Slack channel: " + orNA(sub.SlackChannel),
		"Invite us to Slack: " + invite,
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
