package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"placement-portal/controllers"
	"placement-portal/models"
	"placement-portal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "routes-test-secret"

type outbox struct {
	mu   sync.Mutex
	sent []string
}

func (o *outbox) Send(_ context.Context, to, subject, _, _ string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, to+"|"+subject)
	return nil
}

type portal struct {
	router *gin.Engine
	db     *gorm.DB
	mail   *outbox
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "portal.db")), &gorm.Config{
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

	mail := &outbox{}
	statuses := services.NewStatusService(db, mail, services.StatusServiceOptions{BulkConcurrency: 2})

	router := gin.New()
	SetupRoutes(router, Handlers{
		Auth:         controllers.NewAuthController(services.NewStudentService(db), services.NewAdminService(db), testSecret, time.Hour),
		Profiles:     controllers.NewProfileController(services.NewProfileService(db)),
		Applications: controllers.NewApplicationController(services.NewApplicationService(db), statuses),
		Jobs:         controllers.NewJobController(services.NewJobService(db)),
	}, testSecret)

	return &portal{router: router, db: db, mail: mail}
}

func (p *portal) call(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	p.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid json %q", method, path, w.Body.String())
		}
	}
	return w.Code, out
}

func field(t *testing.T, m map[string]interface{}, keys ...string) interface{} {
	t.Helper()
	var cur interface{} = m
	for _, key := range keys {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			t.Fatalf("path %v: %v is not an object", keys, cur)
		}
		cur = obj[key]
	}
	return cur
}

func TestPlacementFlow(t *testing.T) {
	p := newPortal(t)

	code, body := p.call(t, http.MethodPost, "/api/v1/auth/student/signup", "", map[string]string{
		"roll_number": "cs21a001",
		"email":       "asha@college.edu",
		"password":    "student-pass",
		"first_name":  "Asha",
		"last_name":   "Patil",
	})
	if code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d %v", code, body)
	}
	studentToken := field(t, body, "token").(string)

	code, body = p.call(t, http.MethodPost, "/api/v1/auth/student/login", "", map[string]string{
		"login": "CS21A001", "password": "student-pass",
	})
	if code != http.StatusOK || field(t, body, "token") == "" {
		t.Fatalf("student login: expected 200, got %d %v", code, body)
	}

	profile := map[string]interface{}{
		"first_name":      "Asha",
		"last_name":       "Patil",
		"phone":           "9876543210",
		"department":      "Computer Engineering",
		"graduation_year": 2024,
		"cgpa":            8.4,
		"skills":          []string{"Go", "SQL"},
		"grades":          []map[string]interface{}{{"sem": 1, "sgpi": 8.1}},
		"resumes":         []map[string]string{{"title": "General", "link": "https://cv.example.com/asha.pdf"}},
	}
	if code, body = p.call(t, http.MethodPut, "/api/v1/me/profile", studentToken, profile); code != http.StatusOK {
		t.Fatalf("replace profile: expected 200, got %d %v", code, body)
	}

	grades := map[string]interface{}{"grades": []map[string]interface{}{{"sem": 1, "sgpi": 0}, {"sem": 2, "sgpi": 7.5}}}
	if code, body = p.call(t, http.MethodPut, "/api/v1/me/profile/grades", studentToken, grades); code != http.StatusOK {
		t.Fatalf("update grades: expected 200, got %d %v", code, body)
	}

	code, body = p.call(t, http.MethodGet, "/api/v1/me/profile", studentToken, nil)
	if code != http.StatusOK {
		t.Fatalf("get profile: expected 200, got %d", code)
	}
	gotGrades := field(t, body, "student", "grades").([]interface{})
	if len(gotGrades) != 1 || gotGrades[0].(map[string]interface{})["sem"].(float64) != 2 {
		t.Fatalf("expected only semester 2 after section update, got %v", gotGrades)
	}
	resumeID := field(t, body, "student", "resumes").([]interface{})[0].(map[string]interface{})["id"].(float64)

	if _, err := services.NewAdminService(p.db).EnsureAdmin(context.Background(), "tpo@college.edu", "TPO", "admin-pass-1"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	code, body = p.call(t, http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{
		"email": "tpo@college.edu", "password": "admin-pass-1",
	})
	if code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d %v", code, body)
	}
	adminToken := field(t, body, "token").(string)

	code, body = p.call(t, http.MethodPost, "/api/v1/admin/companies", adminToken, map[string]string{"name": "Acme"})
	if code != http.StatusCreated {
		t.Fatalf("create company: expected 201, got %d %v", code, body)
	}
	companyID := field(t, body, "company", "id").(float64)

	code, body = p.call(t, http.MethodPost, "/api/v1/admin/jobs", adminToken, map[string]interface{}{
		"company_id": companyID, "title": "Backend Engineer", "ctc": 1200000,
	})
	if code != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d %v", code, body)
	}
	jobID := field(t, body, "job", "id").(float64)

	code, body = p.call(t, http.MethodGet, "/api/v1/jobs", studentToken, nil)
	if code != http.StatusOK || field(t, body, "total").(float64) != 1 {
		t.Fatalf("list jobs: expected one open job, got %d %v", code, body)
	}

	code, body = p.call(t, http.MethodPost, "/api/v1/jobs/"+itoa(jobID)+"/apply", studentToken, map[string]interface{}{"resume_id": resumeID})
	if code != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d %v", code, body)
	}
	appID := field(t, body, "application", "id").(float64)

	code, body = p.call(t, http.MethodPatch, "/api/v1/admin/applications/"+itoa(appID)+"/status", adminToken, map[string]string{
		"status": "Interview round",
	})
	if code != http.StatusOK {
		t.Fatalf("update status: expected 200, got %d %v", code, body)
	}
	if field(t, body, "success") != true || field(t, body, "notified") != true || field(t, body, "emailError") != nil {
		t.Fatalf("unexpected status response: %v", body)
	}
	if len(p.mail.sent) != 1 || p.mail.sent[0] != "asha@college.edu|Application status updated: Interview round" {
		t.Fatalf("unexpected outbox: %v", p.mail.sent)
	}

	code, body = p.call(t, http.MethodGet, "/api/v1/me/applications", studentToken, nil)
	if code != http.StatusOK {
		t.Fatalf("my applications: expected 200, got %d", code)
	}
	mine := field(t, body, "applications").([]interface{})
	if len(mine) != 1 || mine[0].(map[string]interface{})["status"] != "Interview round" {
		t.Fatalf("student should see the new status, got %v", mine)
	}

	code, body = p.call(t, http.MethodPost, "/api/v1/admin/applications/status/bulk", adminToken, map[string]interface{}{
		"ids": []int{int(appID), 999}, "status": "offer given", "notify": false,
	})
	if code != http.StatusOK {
		t.Fatalf("bulk update: expected 200, got %d %v", code, body)
	}
	if field(t, body, "updatedCount").(float64) != 1 || field(t, body, "failedCount").(float64) != 1 || field(t, body, "errorCount").(float64) != 0 {
		t.Fatalf("unexpected bulk counts: %v", body)
	}
	if len(p.mail.sent) != 1 {
		t.Fatalf("bulk update with notify=false must not send email")
	}

	code, body = p.call(t, http.MethodPost, "/api/v1/admin/applications/status/bulk", adminToken, map[string]interface{}{
		"ids": []int{-1, 0, int(appID)}, "status": "offer given", "notify": false,
	})
	if code != http.StatusOK {
		t.Fatalf("bulk update with invalid ids: expected 200, got %d %v", code, body)
	}
	items, _ := field(t, body, "items").([]interface{})
	if len(items) != 3 || field(t, body, "failedCount").(float64) != 2 {
		t.Fatalf("each invalid id should be its own failed item: %v", body)
	}
	if first := items[0].(map[string]interface{}); first["applicationId"].(float64) != -1 {
		t.Fatalf("failed item should keep the submitted id: %v", first)
	}
}

func TestRoutesEnforceRoles(t *testing.T) {
	p := newPortal(t)

	code, body := p.call(t, http.MethodPost, "/api/v1/auth/student/signup", "", map[string]string{
		"roll_number": "cs21a002", "password": "student-pass",
	})
	if code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d %v", code, body)
	}
	studentToken := field(t, body, "token").(string)

	if code, _ := p.call(t, http.MethodGet, "/api/v1/admin/applications", studentToken, nil); code != http.StatusForbidden {
		t.Fatalf("student on admin route: expected 403, got %d", code)
	}
	if code, _ := p.call(t, http.MethodGet, "/api/v1/me/profile", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous profile: expected 401, got %d", code)
	}
	if code, _ := p.call(t, http.MethodGet, "/api/v1/health", "", nil); code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", code)
	}
	if code, _ := p.call(t, http.MethodGet, "/api/v1/nope", "", nil); code != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", code)
	}
	if code, _ := p.call(t, http.MethodPost, "/api/v1/auth/student/login", "", map[string]string{"login": "cs21a002", "password": "wrong-pass"}); code != http.StatusUnauthorized {
		t.Fatalf("bad credentials: expected 401, got %d", code)
	}
}

func itoa(v float64) string {
	return strconv.FormatUint(uint64(v), 10)
}
