package notify

import (
	"context"
	"fmt"
	"log/slog"

	"olgwatch/internal/config"
)

// BuildChannels assembles the channel list from configuration. A channel
// with incomplete configuration is skipped with a log line, not an error;
// running with fewer (or zero) channels is a capability reduction, not a
// failure. A configured channel that cannot be constructed is a startup
// error.
func BuildChannels(ctx context.Context, conf *config.Config, clock Clock, log *slog.Logger) ([]Channel, error) {
	var channels []Channel

	if conf.TelegramBotToken != "" && conf.TelegramChatID != 0 {
		tg, err := NewTelegram(conf.TelegramBotToken, conf.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("build telegram channel: %w", err)
		}
		channels = append(channels, tg)
	} else {
		log.InfoContext(ctx, "notification channel skipped: missing configuration", "channel", "telegram")
	}

	if conf.BrevoAPIKey != "" && conf.FromEmail != "" && conf.MailTo != "" {
		channels = append(channels, NewBrevo(conf.BrevoAPIKey, conf.FromName, conf.FromEmail, conf.MailTo))
	} else {
		log.InfoContext(ctx, "notification channel skipped: missing configuration", "channel", "email")
	}

	if conf.GoogleCredentialsPath != "" && conf.GoogleCalendarID != "" {
		cal, err := NewCalendar(ctx, conf.GoogleCredentialsPath, conf.GoogleCalendarID, clock)
		if err != nil {
			return nil, fmt.Errorf("build calendar channel: %w", err)
		}
		channels = append(channels, cal)
	} else {
		log.InfoContext(ctx, "notification channel skipped: missing configuration", "channel", "calendar")
	}

	return channels, nil
}
