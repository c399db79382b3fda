package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"swissclock.ch/swissclock/importer"
	"swissclock.ch/swissclock/infrastructure/communication"
	"swissclock.ch/swissclock/infrastructure/devops"
	"swissclock.ch/swissclock/infrastructure/filesystem"
	"swissclock.ch/swissclock/store"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

// HandleRequest imports every CSV object named in the S3 notification.
func HandleRequest(ctx context.Context, event events.S3Event) error {
	cfg, err := devops.Load(ctx, os.Getenv("SWISSCLOCK_CONFIG"))
	if err != nil {
		return err
	}
	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	loc := utils.LoadLocation(cfg.Timezone)
	accounting := timeclock.New(backend.Store, backend.Directory, timeclock.Options{Location: loc})
	slack := communication.ConnectSlack(loc)

	var failed int
	for _, record := range event.Records {
		bucketName := record.S3.Bucket.Name
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			key = record.S3.Object.Key
		}

		if err := importObject(ctx, accounting, bucketName, key); err != nil {
			failed++
			fmt.Printf("[ERROR] s3://%s/%s: %v\n", bucketName, key, err)
			if slack != nil {
				if err := slack.Error(ctx, fmt.Sprintf("clock-in import of %s failed: %v", key, err)); err != nil {
					fmt.Printf("[ERROR] %v\n", err)
				}
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(event.Records))
	}
	return nil
}

func importObject(ctx context.Context, accounting *timeclock.Accounting, bucketName, key string) error {
	bucket, err := filesystem.NewBucket(ctx, bucketName)
	if err != nil {
		return err
	}

	var stream bytes.Buffer
	if err := bucket.ReadFile(ctx, key, &stream); err != nil {
		return err
	}

	result, err := importer.Import(ctx, accounting, &stream)
	if result != nil {
		fmt.Printf("[INFO] s3://%s/%s: imported %d entries, %d already present, skipped %d single-punch days\n",
			bucketName, key, result.Imported, result.Duplicates, len(result.Skipped))
	}
	return err
}

func main() {
	lambda.Start(HandleRequest)
}
