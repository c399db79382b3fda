package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"swissclock.ch/swissclock/infrastructure/communication"
	"swissclock.ch/swissclock/infrastructure/devops"
	"swissclock.ch/swissclock/infrastructure/filesystem"
	"swissclock.ch/swissclock/reporting"
	"swissclock.ch/swissclock/store"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

// HandleRequest runs on a schedule and reports the week before the event.
func HandleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	cfg, err := devops.Load(ctx, os.Getenv("SWISSCLOCK_CONFIG"))
	if err != nil {
		return err
	}
	if cfg.Reports.Bucket == "" {
		return fmt.Errorf("reports.bucket is not configured")
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	loc := utils.LoadLocation(cfg.Timezone)
	accounting := timeclock.New(backend.Store, backend.Directory, timeclock.Options{Location: loc})

	at := event.Time
	if at.IsZero() {
		at = time.Now()
	}
	period := reporting.LastWeek(at.In(loc))
	fmt.Printf("[INFO] building timesheet for %s\n", period.FileName())

	employees := accounting.Employees()
	entries, err := accounting.AllEntries(ctx)
	if err != nil {
		return err
	}
	asOf := accounting.Now()
	data, err := reporting.WriteTimesheet(employees, entries, period, asOf)
	if err != nil {
		return err
	}

	bucket, err := filesystem.NewBucket(ctx, cfg.Reports.Bucket)
	if err != nil {
		return err
	}
	key := cfg.Reports.Prefix + period.FileName()
	if err := bucket.WriteFile(ctx, key, data, reporting.ContentType); err != nil {
		return err
	}
	fmt.Printf("[INFO] uploaded s3://%s/%s\n", bucket.Name(), key)

	digest := reporting.Digest(reporting.Standings(employees, entries, period, asOf), period)

	if cfg.Reports.From != "" && len(cfg.Reports.To) > 0 {
		mailer, err := communication.NewMailer(ctx)
		if err != nil {
			return err
		}
		id, err := mailer.Send(ctx, &communication.Email{
			From:    cfg.Reports.From,
			To:      cfg.Reports.To,
			Subject: fmt.Sprintf("SwissClock timesheet %s", period.From.Format("2006-01-02")),
			Text:    digest,
			Attachments: []communication.Attachment{{
				Filename:    period.FileName(),
				ContentType: reporting.ContentType,
				Content:     data,
			}},
		})
		if err != nil {
			return err
		}
		fmt.Printf("[INFO] emailed timesheet to %d recipients (%s)\n", len(cfg.Reports.To), id)
	}

	if slack := communication.ConnectSlack(loc); slack != nil {
		if err := slack.Info(ctx, digest); err != nil {
			fmt.Printf("[ERROR] %v\n", err)
		}
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
