package notify

import (
	"context"
	"log/slog"
	"time"
)

// Channel is one independently configured notification target.
type Channel interface {
	Name() string
	Send(ctx context.Context, subject, body string) error
}

// Clock abstracts wall-clock time for channels that stamp their output.
type Clock interface {
	Now() time.Time
}

// Notifier fans a message out to every channel. Channels fail
// independently; one failing never prevents the others from being attempted.
type Notifier struct {
	channels []Channel

	log *slog.Logger
}

func New(channels []Channel, log *slog.Logger) *Notifier {
	return &Notifier{
		channels: channels,
		log:      log.With("component", "notifier"),
	}
}

// Notify attempts every channel and reports whether at least one delivery
// succeeded. Delivery failure is logged, never returned; the polling loop
// must not stop because a notification could not go out.
func (n *Notifier) Notify(ctx context.Context, subject, body string) bool {
	delivered := false

	for _, ch := range n.channels {
		if err := ch.Send(ctx, subject, body); err != nil {
			n.log.ErrorContext(ctx, "failed to send notification", "channel", ch.Name(), "error", err)
			continue
		}
		n.log.InfoContext(ctx, "notification sent", "channel", ch.Name(), "subject", subject)
		delivered = true
	}

	if !delivered {
		n.log.WarnContext(ctx, "no notification could be delivered", "channels", len(n.channels), "subject", subject)
	}

	return delivered
}
