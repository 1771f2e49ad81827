package notify

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	extendedPropertySource = "olgwatch"
	eventDuration          = time.Hour
	reminderMinutes        = 15
)

// Calendar drops a reminder event into a Google calendar for each change
// notification, so updates surface on the user's phone without any bot or
// mail client involved. Events are tagged with a private extended property
// source=olgwatch so they can be told apart from the user's own entries.
type Calendar struct {
	svc        *calendar.Service
	calendarID string
	clock      Clock
}

// NewCalendar builds a Calendar API client using a service account JSON key
// file. Scope is calendar.events (create/read/delete).
func NewCalendar(ctx context.Context, credentialsPath, calendarID string, clock Clock) (*Calendar, error) {
	srv, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Calendar{
		svc:        srv,
		calendarID: calendarID,
		clock:      clock,
	}, nil
}

func (c *Calendar) Name() string {
	return "calendar"
}

func (c *Calendar) Send(ctx context.Context, subject, body string) error {
	start := c.clock.Now()
	end := start.Add(eventDuration)

	ev := &calendar.Event{
		Summary:     subject,
		Description: body,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: start.Location().String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: end.Location().String(),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{"source": extendedPropertySource},
		},
		Reminders: &calendar.EventReminders{
			Overrides:       []*calendar.EventReminder{{Method: "popup", Minutes: reminderMinutes}},
			ForceSendFields: []string{"UseDefault", "Overrides"},
		},
	}

	if _, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}

	return nil
}
