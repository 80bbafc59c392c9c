package intake

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bitlatte/resonant/internal/config"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/metrics"
)

// ConfiguredNotifiers returns a notifier for every channel whose settings are
// complete. Channels left out report false on every submission.
func ConfiguredNotifiers(cfg *config.Config) ([]Notifier, error) {
	var notifiers []Notifier
	if cfg.Mail.Enabled() {
		email, err := NewEmailNotifier(cfg.Mail)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, email)
	}
	if cfg.Slack.Enabled() {
		notifiers = append(notifiers, NewSlackNotifier(cfg.Slack))
	}
	return notifiers, nil
}

// Outcome records which channels accepted a notification.
type Outcome struct {
	delivered map[string]bool
}

// Sent reports whether channel delivered. Unconfigured channels report false.
func (o Outcome) Sent(channel string) bool {
	return o.delivered[channel]
}

// Dispatcher fans a notification out to every notifier.
type Dispatcher struct {
	notifiers []Notifier
	log       logger.Logger
	metrics   *metrics.Metrics
}

// NewDispatcher creates a dispatcher over notifiers. m may be nil.
func NewDispatcher(notifiers []Notifier, log logger.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{notifiers: notifiers, log: log, metrics: m}
}

// Channels returns the configured channel names.
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		names = append(names, n.Channel())
	}
	return names
}

// Dispatch runs every notifier concurrently and waits for all of them. A
// failing channel is logged and reported as not sent; it never affects the
// others. The error is non-nil when a notifier panicked or ctx ended before
// delivery finished.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) (Outcome, error) {
	results := make([]bool, len(d.notifiers))

	var g errgroup.Group
	for i, notifier := range d.notifiers {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s notifier panicked: %v", notifier.Channel(), r)
				}
			}()
			results[i] = d.deliver(ctx, notifier, n)
			return nil
		})
	}
	waitErr := g.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}

	out := Outcome{delivered: make(map[string]bool, len(Channels))}
	for i, notifier := range d.notifiers {
		out.delivered[notifier.Channel()] = results[i]
	}
	if d.metrics != nil {
		for _, ch := range Channels {
			if _, ok := out.delivered[ch]; !ok {
				d.metrics.ObserveNotification(ch, metrics.ResultSkipped, 0)
			}
		}
	}
	return out, waitErr
}

func (d *Dispatcher) deliver(ctx context.Context, notifier Notifier, n Notification) bool {
	start := time.Now()
	err := notifier.Notify(ctx, n)
	took := time.Since(start)

	result := metrics.ResultSent
	if err != nil {
		result = metrics.ResultFailed
		d.log.Error("Notification failed",
			logger.String("channel", notifier.Channel()),
			logger.String("submission_id", n.ID),
			logger.Duration("took", took),
			logger.Error(err),
		)
	} else {
		d.log.Info("Notification sent",
			logger.String("channel", notifier.Channel()),
			logger.String("submission_id", n.ID),
			logger.Duration("took", took),
		)
	}
	if d.metrics != nil {
		d.metrics.ObserveNotification(notifier.Channel(), result, took)
	}
	return err == nil
}
