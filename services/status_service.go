package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"placement-portal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// StatusServiceOptions tunes the status workflow.
type StatusServiceOptions struct {
	// BulkConcurrency bounds how many items of a bulk update run at once.
	// Values below 2 process the batch sequentially.
	BulkConcurrency int
	// PortalURL is linked from notification emails when set.
	PortalURL string
}

// StatusService updates application statuses and emails affected students.
type StatusService struct {
	db       *gorm.DB
	notifier Notifier
	opts     StatusServiceOptions
	now      func() time.Time
}

func NewStatusService(db *gorm.DB, notifier Notifier, opts StatusServiceOptions) *StatusService {
	if opts.BulkConcurrency < 1 {
		opts.BulkConcurrency = 1
	}
	return &StatusService{db: db, notifier: notifier, opts: opts, now: time.Now}
}

// UpdateStatusInput describes a single status change.
type UpdateStatusInput struct {
	ApplicationID uint
	Status        string
	Notify        bool
	// StudentID is an optional owner hint; zero means look it up from the application.
	StudentID uint
}

// StatusUpdateResult reports what happened to one application.
// EmailError is set only when a notification was attempted and failed.
type StatusUpdateResult struct {
	ApplicationID uint    `json:"applicationId"`
	Updated       bool    `json:"updated"`
	Notified      bool    `json:"notified"`
	EmailError    *string `json:"emailError"`
}

// UpdateStatus writes the new status unconditionally and, when asked, emails
// the owning student. A failed email never undoes the status write.
func (s *StatusService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*StatusUpdateResult, error) {
	if in.ApplicationID == 0 {
		return nil, invalidArgument("application id must be a positive integer")
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		return nil, invalidArgument("status is required")
	}
	return s.updateOne(ctx, in.ApplicationID, status, in.Notify, in.StudentID)
}

func (s *StatusService) updateOne(ctx context.Context, applicationID uint, status string, notify bool, studentHint uint) (*StatusUpdateResult, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", applicationID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": s.now(),
		})
	if res.Error != nil {
		return nil, persistenceError(fmt.Sprintf("update status of application %d", applicationID), res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("application %d", applicationID)
	}

	result := &StatusUpdateResult{ApplicationID: applicationID, Updated: true}
	if !notify {
		return result, nil
	}

	// the write is committed; request cancellation must not abort the email
	notified, err := s.notifyStudent(detachedContext(ctx), applicationID, status, studentHint)
	if err != nil {
		msg := err.Error()
		result.EmailError = &msg
		log.Printf("status email failed (application=%d status=%q): %v", applicationID, status, err)
		return result, nil
	}
	result.Notified = notified
	return result, nil
}

// notifyStudent makes exactly one send attempt. It returns (false, nil) when
// the student has no email on file.
func (s *StatusService) notifyStudent(ctx context.Context, applicationID uint, status string, studentHint uint) (bool, error) {
	db := s.db.WithContext(ctx)

	studentID, err := s.resolveOwner(db, applicationID, studentHint)
	if err != nil {
		return false, err
	}

	var student models.Student
	if err := db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("student %d not found", studentID)
		}
		return false, fmt.Errorf("load student %d: %w", studentID, err)
	}

	to := student.EmailAddress()
	if to == "" {
		return false, nil
	}
	if s.notifier == nil {
		return false, errors.New("email gateway not configured")
	}

	msg := BuildStatusEmail(student.DisplayName(), status, s.opts.PortalURL)
	if err := s.notifier.Send(ctx, to, msg.Subject, msg.Text, msg.HTML); err != nil {
		return false, fmt.Errorf("send to %s: %w", to, err)
	}
	return true, nil
}

// resolveOwner returns the student who owns the application. A hint that does
// not match the owner is ignored.
func (s *StatusService) resolveOwner(db *gorm.DB, applicationID, hint uint) (uint, error) {
	if hint != 0 {
		var n int64
		err := db.Model(&models.Application{}).
			Where("id = ? AND student_id = ?", applicationID, hint).
			Count(&n).Error
		if err != nil {
			return 0, fmt.Errorf("check owner of application %d: %w", applicationID, err)
		}
		if n > 0 {
			return hint, nil
		}
		log.Printf("ignoring student hint %d for application %d: not the owner", hint, applicationID)
	}

	var app models.Application
	if err := db.Select("id", "student_id").First(&app, applicationID).Error; err != nil {
		return 0, fmt.Errorf("resolve owner of application %d: %w", applicationID, err)
	}
	return app.StudentID, nil
}

// BulkStatusInput applies one status to many applications. Ids are taken as
// received; non-positive ones become failed items.
type BulkStatusInput struct {
	ApplicationIDs []int64
	Status         string
	Notify         bool
}

// BulkStatusItem is the outcome for one id of a bulk update.
type BulkStatusItem struct {
	ApplicationID int64   `json:"applicationId"`
	Updated       bool    `json:"updated"`
	Notified      bool    `json:"notified"`
	EmailError    *string `json:"emailError"`
	Error         *string `json:"error"`
}

// BulkStatusResult aggregates a bulk update. ErrorCount counts failed
// notifications; FailedCount counts ids whose status write did not happen.
type BulkStatusResult struct {
	UpdatedCount  int              `json:"updatedCount"`
	NotifiedCount int              `json:"notifiedCount"`
	ErrorCount    int              `json:"errorCount"`
	FailedCount   int              `json:"failedCount"`
	Items         []BulkStatusItem `json:"items"`
}

// BulkUpdateStatus runs UpdateStatus for every distinct id. No item failure
// aborts the batch; each outcome is isolated and counted. The batch is not
// bound to the caller's deadline, so a slow mail relay cannot leave valid ids
// unwritten.
func (s *StatusService) BulkUpdateStatus(ctx context.Context, in BulkStatusInput) (*BulkStatusResult, error) {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		return nil, invalidArgument("status is required")
	}
	ctx = detachedContext(ctx)

	ids := uniqueIDs(in.ApplicationIDs)
	items := make([]BulkStatusItem, len(ids))

	var g errgroup.Group
	g.SetLimit(s.opts.BulkConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			items[i] = s.bulkItem(ctx, id, status, in.Notify)
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkStatusResult{Items: items}
	for _, item := range items {
		if !item.Updated {
			result.FailedCount++
			continue
		}
		result.UpdatedCount++
		if !in.Notify {
			continue
		}
		if item.Notified {
			result.NotifiedCount++
		}
		if item.EmailError != nil {
			result.ErrorCount++
		}
	}

	log.Printf("bulk status update to %q: ids=%d updated=%d failed=%d notified=%d email_errors=%d",
		status, len(ids), result.UpdatedCount, result.FailedCount, result.NotifiedCount, result.ErrorCount)
	return result, nil
}

func (s *StatusService) bulkItem(ctx context.Context, id int64, status string, notify bool) BulkStatusItem {
	item := BulkStatusItem{ApplicationID: id}
	if id <= 0 {
		msg := "application id must be a positive integer"
		item.Error = &msg
		return item
	}

	res, err := s.updateOne(ctx, uint(id), status, notify, 0)
	if err != nil {
		msg := err.Error()
		item.Error = &msg
		log.Printf("bulk status update skipped application %d: %v", id, err)
		return item
	}

	item.Updated = res.Updated
	item.Notified = res.Notified
	item.EmailError = res.EmailError
	return item
}

// uniqueIDs drops repeated positive ids and keeps input order. Invalid ids are
// kept one per occurrence so each is reported.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, id)
	}
	return out
}
