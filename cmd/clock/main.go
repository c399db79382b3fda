package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	v1 "swissclock.ch/swissclock/client/v1"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/utils"
)

const usage = `usage: clock [flags] in|out|status|board|entries|stats

Credentials come from -user/-password or SWISSCLOCK_TOKEN.
`

func main() {
	baseURL := flag.String("url", envOr("SWISSCLOCK_URL", "http://localhost:8090"), "server base URL")
	username := flag.String("user", os.Getenv("SWISSCLOCK_USER"), "username")
	password := flag.String("password", os.Getenv("SWISSCLOCK_PASSWORD"), "password")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := v1.NewSwissClockClient(*baseURL, os.Getenv("SWISSCLOCK_TOKEN"))
	employeeID := 0
	if *username != "" {
		login, err := client.Auth.Login(ctx, *username, *password)
		if err != nil {
			log.Fatal(err)
		}
		employeeID = login.User.ID
	}

	if err := run(ctx, client, flag.Arg(0), employeeID); err != nil {
		switch {
		case errors.Is(err, timeclock.ErrAlreadyClockedIn):
			log.Fatal("already clocked in")
		case errors.Is(err, timeclock.ErrNotClockedIn):
			log.Fatal("not clocked in")
		case errors.Is(err, v1.ErrUnauthorized):
			log.Fatal("not logged in: pass -user/-password or set SWISSCLOCK_TOKEN")
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, client *v1.SwissClockClient, command string, employeeID int) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	needID := func() (int, error) {
		if employeeID > 0 {
			return employeeID, nil
		}
		stats, err := client.Clock.Stats(ctx, 0)
		if err != nil {
			return 0, err
		}
		return stats.EmployeeID, nil
	}

	switch command {
	case "in", "out":
		id, err := needID()
		if err != nil {
			return err
		}
		var entry *timeclock.TimeEntry
		if command == "in" {
			entry, err = client.Clock.ClockIn(ctx, id)
		} else {
			entry, err = client.Clock.ClockOut(ctx, id)
		}
		if err != nil {
			return err
		}
		if entry.ClockOutTime == nil {
			fmt.Fprintf(w, "Clocked in at %s\n", entry.ClockInTime.Local().Format("15:04"))
		} else {
			fmt.Fprintf(w, "Clocked out at %s (%.2f h)\n", entry.ClockOutTime.Local().Format("15:04"), entry.Hours(*entry.ClockOutTime))
		}

	case "status":
		status, err := client.Clock.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tSTATUS")
		ids := make([]int, 0, len(status))
		for id := range status {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			s := status[id]
			fmt.Fprintf(w, "%d\t%s\t%s\n", id, s.Name, utils.FormatBoolean(s.IsClockedIn, "in", "out"))
		}

	case "board":
		board, err := client.Clock.Leaderboard(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "RANK\tNAME\tHOURS")
		for _, s := range board {
			fmt.Fprintf(w, "%d\t%s\t%.2f\n", s.Rank, s.Employee.Name, s.TotalHours)
		}

	case "entries":
		entries, err := client.Clock.TimeEntries(ctx, 0, 20)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "DATE\tIN\tOUT\tHOURS")
		for _, e := range entries.Data {
			out := "-"
			if e.ClockOutTime != nil {
				out = e.ClockOutTime.Local().Format("15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", e.ClockInTime.Local().Format("2006-01-02"), e.ClockInTime.Local().Format("15:04"), out, e.Hours(time.Now()))
		}
		fmt.Fprintf(w, "(%d of %d)\n", len(entries.Data), entries.Pagination.Total)

	case "stats":
		stats, err := client.Clock.Stats(ctx, employeeID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Today\t%.2f h\n", stats.TodayHours)
		fmt.Fprintf(w, "This week\t%.2f h\n", stats.WeekHours)
		fmt.Fprintf(w, "Total\t%.2f h\n", stats.TotalHours)
		fmt.Fprintf(w, "Daily average\t%.2f h over %d days\n", stats.AverageDailyHours, stats.DaysWorked)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
