package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"guidepost/internal/config"
	"guidepost/internal/database"
	"guidepost/internal/seed"
	"guidepost/internal/server"
	"guidepost/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	moderatorEmail    = "test@t.ca"
	moderatorPassword = "123456Pw"
)

func newGuideTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Characters(db); err != nil {
		t.Fatalf("seed characters: %v", err)
	}

	cfg := &config.Config{
		Port:               "8000",
		Env:                "test",
		JWTSecret:          "e2e_test_secret_value_not_for_prod",
		TokenTTLHrs:        1,
		ModeratorEmail:     moderatorEmail,
		ModeratorPassword:  moderatorPassword,
		UploadDir:          t.TempDir(),
		MaxUploadSizeBytes: service.DefaultMaxUploadSizeBytes,
	}

	srv, err := server.NewServerWithDeps(cfg, db, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return app
}

func loginModerator(t *testing.T, app *fiber.App, email, password string) (string, int) {
	t.Helper()

	req := jsonReq(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("login app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return body.Token, resp.StatusCode
}

func jsonReq(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	if payload == nil {
		return httptest.NewRequest(method, path, nil)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authReq(t *testing.T, method, path, token string, payload any) *http.Request {
	t.Helper()
	req := jsonReq(t, method, path, payload)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func guideFormReq(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/guides/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func mustStatus(t *testing.T, resp *http.Response, want int, step string) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s: expected %d, got %d", step, want, resp.StatusCode)
	}
}

func submitValidGuide(t *testing.T, app *fiber.App, username string) uint {
	t.Helper()

	req := guideFormReq(t, map[string]string{
		"username":       username,
		"character_name": "Ayaka",
		"title":          "Freeze burst build",
		"description":    "Stack crit rate first, then pivot into attack sands once comfortable.",
	})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("submit guide: %v", err)
	}
	mustStatus(t, resp, http.StatusCreated, "submit guide")

	var created struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &created)
	if created.ID == 0 {
		t.Fatal("submitted guide has no id")
	}
	return created.ID
}

func guideIDsAt(t *testing.T, app *fiber.App, path, token string) []uint {
	t.Helper()

	var req *http.Request
	if token != "" {
		req = authReq(t, http.MethodGet, path, token, nil)
	} else {
		req = jsonReq(t, http.MethodGet, path, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("list %s: %v", path, err)
	}
	mustStatus(t, resp, http.StatusOK, fmt.Sprintf("list %s", path))

	var guides []struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &guides)

	ids := make([]uint, 0, len(guides))
	for _, g := range guides {
		ids = append(ids, g.ID)
	}
	return ids
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
