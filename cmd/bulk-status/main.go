// Command bulk-status applies one application status to a list of ids from
// the command line, the same way the admin bulk endpoint does.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"placement-portal/config"
	"placement-portal/services"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var (
		idsRaw string
		status string
		notify bool
	)

	flag.StringVar(&idsRaw, "ids", "", "comma-separated list of application IDs (required)")
	flag.StringVar(&status, "status", "", "status label to apply (required)")
	flag.BoolVar(&notify, "notify", true, "email each student after their application is updated")
	flag.Parse()

	ids, err := parseIDs(idsRaw)
	if err != nil {
		log.Fatal(err)
	}
	if len(ids) == 0 {
		log.Fatal("-ids is required")
	}
	if strings.TrimSpace(status) == "" {
		log.Fatal("-status is required")
	}

	cfg := config.Load()
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	statuses := services.NewStatusService(db, config.NewSMTPMailer(cfg), services.StatusServiceOptions{
		BulkConcurrency: cfg.BulkStatusConcurrency,
		PortalURL:       cfg.PortalBaseURL,
	})

	result, err := statuses.BulkUpdateStatus(context.Background(), services.BulkStatusInput{
		ApplicationIDs: ids,
		Status:         status,
		Notify:         notify,
	})
	if err != nil {
		log.Fatalf("bulk status update failed: %v", err)
	}

	color.Cyan("\nStatus %q applied", status)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Application", "Updated", "Notified", "Email Error", "Error"})
	for _, item := range result.Items {
		table.Append([]string{
			strconv.FormatInt(item.ApplicationID, 10),
			strconv.FormatBool(item.Updated),
			strconv.FormatBool(item.Notified),
			deref(item.EmailError),
			deref(item.Error),
		})
	}
	table.Render()

	summary := fmt.Sprintf("Updated: %d, notified: %d, email errors: %d, failed: %d",
		result.UpdatedCount, result.NotifiedCount, result.ErrorCount, result.FailedCount)
	switch {
	case result.FailedCount > 0:
		color.Red("%s", summary)
		os.Exit(2)
	case result.ErrorCount > 0:
		color.Yellow("%s", summary)
	default:
		color.Green("%s", summary)
	}
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid application id '%s'", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
