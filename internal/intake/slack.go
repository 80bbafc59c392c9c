package intake

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/Bitlatte/resonant/internal/config"
)

const defaultSlackTimeout = 10 * time.Second

// SlackNotifier posts submissions to an incoming webhook.
type SlackNotifier struct {
	url    string
	client *http.Client
}

// NewSlackNotifier posts to cfg.WebhookURL, giving up after cfg.Timeout.
func NewSlackNotifier(cfg config.SlackConfig) *SlackNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSlackTimeout
	}
	return &SlackNotifier{
		url:    cfg.WebhookURL,
		client: &http.Client{Timeout: timeout},
	}
}

// Channel implements Notifier.
func (s *SlackNotifier) Channel() string { return ChannelSlack }

// Notify implements Notifier. A non-2xx answer from the webhook is an error.
func (s *SlackNotifier) Notify(ctx context.Context, n Notification) error {
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.url, s.client, SlackMessage(n)); err != nil {
		return fmt.Errorf("post slack webhook: %w", err)
	}
	return nil
}

// SlackMessage builds the webhook payload: a fallback text and two markdown
// sections holding the summary and the project description.
func SlackMessage(n Notification) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Text: Subject,
		Blocks: &slack.Blocks{BlockSet: []slack.Block{
			markdownSection("*" + Subject + "*\n" + n.Summary),
			markdownSection("*Project description*\n" + n.Description),
		}},
	}
}

func markdownSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}
