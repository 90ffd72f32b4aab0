package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loanportal-backend/database"
	"loanportal-backend/middlewares"
	"loanportal-backend/models"
	"loanportal-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.FieldInspectionReport{},
		&models.PayoutReport{},
		&models.HeaderDetails{},
		&models.ReportRevision{},
		&models.IdempotencyKey{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(app)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, password, role string) models.User {
	t.Helper()
	u := models.User{FullName: name, Email: email, Role: role, Status: "Active"}
	u.SetPassword(password)
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := middlewares.GenerateJWT(u.Id, u.Role)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func request(t *testing.T, app *fiber.App, method, path, token string, payload interface{}, extra map[string]string) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	resp.Body.Close()
	return resp, raw
}

func TestLoginAndProfile(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	resp, raw := request(t, app, "POST", "/api/login", "", fiber.Map{
		"email":    "asha@example.com",
		"password": "secret123",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.Token == "" || out.User.Id != u.Id {
		t.Fatalf("unexpected login payload: %s", raw)
	}

	resp, raw = request(t, app, "GET", "/api/profile", out.Token, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile status %d: %s", resp.StatusCode, raw)
	}
	var profile models.User
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Email != "asha@example.com" {
		t.Fatalf("profile email = %q", profile.Email)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, db := setupApp(t)
	seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	resp, _ := request(t, app, "POST", "/api/login", "", fiber.Map{
		"email":    "asha@example.com",
		"password": "wrong",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := request(t, app, "GET", "/api/profile", "", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreatePayoutDerivesAmounts(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	// nett_amount in the body must be ignored, not honored.
	resp, raw := request(t, app, "POST", "/api/payouts", tokenFor(t, u), fiber.Map{
		"month":             "2025-01",
		"customer_name":     "ACME Traders",
		"loan_amount":       500000,
		"payout_percentage": 2,
		"nett_amount":       999999,
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d: %s", resp.StatusCode, raw)
	}
	var report models.PayoutReport
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.AmountPaid != 10000 || report.LessTds != 1000 || report.NettAmount != 9000 {
		t.Fatalf("derived fields wrong: paid=%v tds=%v nett=%v",
			report.AmountPaid, report.LessTds, report.NettAmount)
	}
	if report.CreatedByUserId != u.Id {
		t.Fatalf("creator = %q, want %q", report.CreatedByUserId, u.Id)
	}

	var stored models.PayoutReport
	if err := db.First(&stored, "id = ?", report.Id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.NettAmount != 9000 {
		t.Fatalf("persisted nett = %v, want 9000", stored.NettAmount)
	}
}

func TestCreatePayoutValidation(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	resp, raw := request(t, app, "POST", "/api/payouts", tokenFor(t, u), fiber.Map{
		"month":             "2025-01",
		"customer_name":     "ACME Traders",
		"loan_amount":       500000,
		"payout_percentage": 150,
	}, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for percentage > 100, got %d: %s", resp.StatusCode, raw)
	}
}

func TestUpdatePayoutRecomputesAndRecordsRevision(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	report := models.PayoutReport{
		Month: "2025-01", CustomerName: "ACME Traders",
		LoanAmount: 500000, PayoutPercentage: 2,
		CreatedByUserId: u.Id,
	}
	report.Recompute()
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}

	resp, raw := request(t, app, "PUT", "/api/payouts/"+report.Id, tokenFor(t, u), fiber.Map{
		"payout_percentage": 4,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status %d: %s", resp.StatusCode, raw)
	}
	var out models.PayoutReport
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.AmountPaid != 20000 || out.LessTds != 2000 || out.NettAmount != 18000 {
		t.Fatalf("recompute after update wrong: %+v", out)
	}

	var revisions []models.ReportRevision
	if err := db.Where("report_type = ? AND report_id = ?", models.ReportTypePayout, report.Id).
		Find(&revisions).Error; err != nil {
		t.Fatalf("load revisions: %v", err)
	}
	if len(revisions) != 1 || revisions[0].VersionNo != 1 {
		t.Fatalf("expected one revision with version 1, got %+v", revisions)
	}
}

func TestFieldAgentCannotSeeOthersReports(t *testing.T) {
	app, db := setupApp(t)
	agent := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)
	other := seedUser(t, db, "Ravi Kumar", "ravi@example.com", "secret123", models.RoleFieldAgent)

	rec := models.FieldInspectionReport{
		Date: "2025-01-05", LoanAcNo: "LA-1", CustomerName: "Beta Mills",
		CreatedByUserId: other.Id,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed inspection: %v", err)
	}

	resp, raw := request(t, app, "GET", "/api/inspections", tokenFor(t, agent), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		Reports []models.FieldInspectionReport `json:"reports"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Reports) != 0 {
		t.Fatalf("agent sees %d foreign reports", len(out.Reports))
	}

	resp, _ = request(t, app, "GET", "/api/inspections/"+rec.Id, tokenFor(t, agent), nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign record, got %d", resp.StatusCode)
	}

	// Admin sees everything.
	admin := seedUser(t, db, "Admin", "admin@example.com", "secret123", models.RoleAdmin)
	resp, raw = request(t, app, "GET", "/api/inspections/"+rec.Id, tokenFor(t, admin), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin get status %d: %s", resp.StatusCode, raw)
	}
}

func TestUserProvisioningIsAdminOnly(t *testing.T) {
	app, db := setupApp(t)
	agent := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)
	admin := seedUser(t, db, "Admin", "admin@example.com", "secret123", models.RoleAdmin)

	payload := fiber.Map{
		"full_name": "New Agent",
		"email":     "new@example.com",
		"password":  "longenough",
	}

	resp, _ := request(t, app, "POST", "/api/users", tokenFor(t, agent), payload, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("agent create user: expected 403, got %d", resp.StatusCode)
	}

	resp, raw := request(t, app, "POST", "/api/users", tokenFor(t, admin), payload, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin create user: expected 201, got %d: %s", resp.StatusCode, raw)
	}
	var created models.User
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Role != models.RoleFieldAgent {
		t.Fatalf("default role = %q, want FIELD_AGENT", created.Role)
	}

	// Listing stays open to any authenticated user.
	resp, _ = request(t, app, "GET", "/api/users", tokenFor(t, agent), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("agent list users: expected 200, got %d", resp.StatusCode)
	}
}

func TestDashboardEmptySet(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	resp, raw := request(t, app, "GET", "/api/dashboard?tab=INSPECTION", tokenFor(t, u), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		Stats struct {
			TotalCases   int     `json:"total_cases"`
			PositiveRate float64 `json:"positive_rate"`
		} `json:"stats"`
		FilteredCount int `json:"filtered_count"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Stats.TotalCases != 0 || out.Stats.PositiveRate != 0 || out.FilteredCount != 0 {
		t.Fatalf("expected zeroed dashboard, got %s", raw)
	}
}

func TestDashboardScopesToCaller(t *testing.T) {
	app, db := setupApp(t)
	agent := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)
	other := seedUser(t, db, "Ravi Kumar", "ravi@example.com", "secret123", models.RoleFieldAgent)

	mine := models.PayoutReport{Month: "2025-01", CustomerName: "A", LoanAmount: 100000, PayoutPercentage: 1, CreatedByUserId: agent.Id}
	mine.Recompute()
	theirs := models.PayoutReport{Month: "2025-01", CustomerName: "B", LoanAmount: 900000, PayoutPercentage: 1, CreatedByUserId: other.Id}
	theirs.Recompute()
	for _, r := range []*models.PayoutReport{&mine, &theirs} {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	resp, raw := request(t, app, "GET", "/api/dashboard?tab=PAYOUT", tokenFor(t, agent), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		Stats struct {
			TotalLoanAmount float64 `json:"total_loan_amount"`
		} `json:"stats"`
		FilteredCount int `json:"filtered_count"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.FilteredCount != 1 || out.Stats.TotalLoanAmount != 100000 {
		t.Fatalf("dashboard leaked foreign rows: %s", raw)
	}
}

func TestExportInspectionsWorkbook(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	rec := models.FieldInspectionReport{
		Date: "2025-01-05", LoanAcNo: "LA-1", CustomerName: "ACME Traders",
		LoanAmount: 250000, CreatedByUserId: u.Id,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, raw := request(t, app, "GET", "/api/inspections/export", tokenFor(t, u), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status %d: %s", resp.StatusCode, raw)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "Inspection_Reports.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	a1, _ := f.GetCellValue("Report", "A1")
	if a1 != "SL.No" {
		t.Fatalf("A1 = %q, want SL.No", a1)
	}
	c2, _ := f.GetCellValue("Report", "C2")
	if c2 != "LA-1" {
		t.Fatalf("C2 = %q, want LA-1", c2)
	}
}

func TestMailDraftIsAdminOnly(t *testing.T) {
	app, db := setupApp(t)
	agent := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)
	admin := seedUser(t, db, "Admin", "admin@example.com", "secret123", models.RoleAdmin)

	resp, _ := request(t, app, "GET", "/api/inspections/mail-draft", tokenFor(t, agent), nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("agent mail draft: expected 403, got %d", resp.StatusCode)
	}

	resp, raw := request(t, app, "GET", "/api/inspections/mail-draft?recipient=finance@example.com", tokenFor(t, admin), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin mail draft status %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		Mailto string `json:"mailto"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out.Mailto, "mailto:finance@example.com?") {
		t.Fatalf("mailto = %q", out.Mailto)
	}
	if strings.Contains(out.Mailto, "+") {
		t.Fatalf("mailto must encode spaces as %%20: %q", out.Mailto)
	}
}

func TestIdempotentCreateReplaysResponse(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "Asha Nair", "asha@example.com", "secret123", models.RoleFieldAgent)

	payload := fiber.Map{
		"month":             "2025-01",
		"customer_name":     "ACME Traders",
		"loan_amount":       500000,
		"payout_percentage": 2,
	}
	hdr := map[string]string{"Idempotency-Key": "create-acme-jan"}

	resp1, raw1 := request(t, app, "POST", "/api/payouts", tokenFor(t, u), payload, hdr)
	if resp1.StatusCode != http.StatusCreated {
		t.Fatalf("first create status %d: %s", resp1.StatusCode, raw1)
	}
	resp2, raw2 := request(t, app, "POST", "/api/payouts", tokenFor(t, u), payload, hdr)
	if resp2.StatusCode != http.StatusCreated {
		t.Fatalf("replay status %d: %s", resp2.StatusCode, raw2)
	}
	if !bytes.Equal(raw1, raw2) {
		t.Fatalf("replay body differs:\n%s\n%s", raw1, raw2)
	}

	var count int64
	if err := db.Model(&models.PayoutReport{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single stored report, got %d", count)
	}

	// Same key with a different request is a conflict.
	payload["customer_name"] = "Beta Mills"
	resp3, _ := request(t, app, "POST", "/api/payouts", tokenFor(t, u), payload, hdr)
	if resp3.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on key reuse, got %d", resp3.StatusCode)
	}
}
