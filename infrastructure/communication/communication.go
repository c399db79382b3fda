package communication

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slack-go/slack"
	"swissclock.ch/swissclock/timeclock"
)

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
	// Location formats event times; defaults to UTC.
	Location *time.Location
}

// ConnectSlack returns nil when SLACK_BOT_TOKEN is unset.
func ConnectSlack(loc *time.Location) *Slack {
	token := os.Getenv("SLACK_BOT_TOKEN")
	if token == "" {
		return nil
	}
	infoCh := os.Getenv("SLACK_INFO_CHANNEL")
	errorCh := os.Getenv("SLACK_ERROR_CHANNEL")

	return NewSlack(slack.New(token), SlackOption{InfoChannelID: infoCh, ErrorChannelID: errorCh, Location: loc})
}

func NewSlack(client *slack.Client, options SlackOption) *Slack {
	if options.Location == nil {
		options.Location = time.UTC
	}
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(ctx context.Context, channelID, message string) error {
	_, _, err := s.client.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Info(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.InfoChannelID, message)
}

func (s *Slack) Error(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.ErrorChannelID, message)
}

// Relay posts every event to the info channel until events closes or ctx is
// done.
func (s *Slack) Relay(ctx context.Context, events <-chan timeclock.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := s.Info(ctx, s.FormatEvent(event)); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
			}
		}
	}
}

func (s *Slack) FormatEvent(event timeclock.Event) string {
	name := event.Employee.Name
	if name == "" {
		name = fmt.Sprintf("Employee %d", event.Entry.EmployeeID)
	}

	switch event.Kind {
	case timeclock.EventClockIn:
		return fmt.Sprintf(":clock9: %s clocked in at %s", name, event.Entry.ClockInTime.In(s.options.Location).Format("15:04"))
	case timeclock.EventClockOut:
		out := event.Entry.ClockInTime
		if event.Entry.ClockOutTime != nil {
			out = *event.Entry.ClockOutTime
		}
		return fmt.Sprintf(":wave: %s clocked out at %s (%.2f h)", name, out.In(s.options.Location).Format("15:04"), event.Entry.Hours(out))
	}
	return fmt.Sprintf("%s: %s", name, event.Kind)
}
