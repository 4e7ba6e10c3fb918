package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/credit-report-extractor/internal/parser"
)

func setupTestApp() *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	h := &Handler{Engine: parser.NewEngine(nil), Log: log}
	h.Register(app)
	return app
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("failed to write form field %q: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
}

func TestParseRequiresFile(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, map[string]string{})
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", resp.StatusCode)
	}
}

func TestParseExtractedText(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, map[string]string{
		"extractedText": "CHASE BANK\nAccount #: XXXX-4492\nBalance: $1,294.00\nAccount Status: Late (30)\nDate Opened: 1/15/2022",
	})
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result ParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !result.Success {
		t.Errorf("expected success, got error %q", result.Error)
	}
	if result.Count != 1 {
		t.Fatalf("count: got %d, want 1", result.Count)
	}
	acct := result.Accounts[0]
	if acct.CreditorName != "CHASE BANK" {
		t.Errorf("creditor: got %q, want %q", acct.CreditorName, "CHASE BANK")
	}
	if acct.AccountNumber != "XXXX-4492" {
		t.Errorf("account number: got %q, want %q", acct.AccountNumber, "XXXX-4492")
	}
}

func TestParsePageBreakSeparator(t *testing.T) {
	app := setupTestApp()

	// The creditor line ends page one; the anchor opens page two. Lookback
	// must work across the page boundary.
	body, contentType := multipartBody(t, map[string]string{
		"extractedText": "CHASE BANK\n---PAGE_BREAK---\nAccount #: 1111",
	})
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var result ParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("count: got %d, want 1", result.Count)
	}
	if result.Accounts[0].CreditorName != "CHASE BANK" {
		t.Errorf("creditor: got %q, want %q", result.Accounts[0].CreditorName, "CHASE BANK")
	}
}

func TestParseDemoOverlay(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, map[string]string{
		"extractedText": "CHASE BANK\nAccount #: XXXX-4492",
		"demo":          "true",
	})
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var result ParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !result.Demo {
		t.Error("expected demo flag to be set")
	}
	if result.Count != 4 {
		t.Errorf("count: got %d, want 1 extracted + 3 samples", result.Count)
	}
	if result.Accounts[0].CreditorName != "CHASE BANK" {
		t.Errorf("extracted account must come first, got %q", result.Accounts[0].CreditorName)
	}
}
