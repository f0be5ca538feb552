package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"placement-portal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated SQLite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "portal.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

var seedSeq int64

func nextSeq() int64 { return atomic.AddInt64(&seedSeq, 1) }

func strPtr(s string) *string { return &s }

func seedStudent(t *testing.T, db *gorm.DB, id uint, email *string) *models.Student {
	t.Helper()
	student := &models.Student{
		ID:         id,
		Email:      email,
		RollNumber: fmt.Sprintf("ROLL%04d", nextSeq()),
		FirstName:  "Asha",
		LastName:   "Patil",
		Department: "Computer Engineering",
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return student
}

func seedJob(t *testing.T, db *gorm.DB, status string, deadline *time.Time) *models.Job {
	t.Helper()
	company := &models.Company{Name: fmt.Sprintf("Company %d", nextSeq())}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	job := &models.Job{CompanyID: company.ID, Title: "Software Engineer", Status: status, Deadline: deadline}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func seedApplication(t *testing.T, db *gorm.DB, id, jobID, studentID uint) *models.Application {
	t.Helper()
	app := &models.Application{ID: id, JobID: jobID, StudentID: studentID, Status: models.ApplicationStatusPending}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

func applicationStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var app models.Application
	if err := db.First(&app, id).Error; err != nil {
		t.Fatalf("reload application %d: %v", id, err)
	}
	return app.Status
}

type sentEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// recordingNotifier captures every send; failFor makes sends to an address fail.
// delay simulates a slow relay before each send is recorded.
type recordingNotifier struct {
	mu       sync.Mutex
	attempts int
	sent     []sentEmail
	err      error
	failFor  map[string]error
	delay    time.Duration
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, text, html string) error {
	if n.delay > 0 {
		time.Sleep(n.delay)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts++
	if err, ok := n.failFor[to]; ok {
		return err
	}
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentEmail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) attempted() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attempts
}

var errSMTPDown = errors.New("smtp: 421 service not available")
