package api

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/credit-report-extractor/internal/demo"
	"github.com/insightdelivered/credit-report-extractor/internal/extractor"
	"github.com/insightdelivered/credit-report-extractor/internal/models"
	"github.com/insightdelivered/credit-report-extractor/internal/parser"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// pageBreakMarker separates pages in client-side pre-extracted text.
const pageBreakMarker = "\n---PAGE_BREAK---\n"

// ParseResponse is the JSON envelope returned by POST /api/parse.
type ParseResponse struct {
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Accounts   []models.ParsedAccount `json:"accounts"`
	Count      int                    `json:"count"`
	ReportDate time.Time              `json:"reportDate"`
	RawText    string                 `json:"rawText,omitempty"`
	Demo       bool                   `json:"demo,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Engine *parser.Engine
	Log    *logrus.Logger
}

// Register sets up the API routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/parse", h.Parse)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// Parse accepts a multipart upload of a credit report PDF (form field
// "file"), or pre-extracted text from a client-side decoder (form field
// "extractedText", pages separated by ---PAGE_BREAK---), and returns the
// extracted tradelines. Decode failures surface as a degraded result, not
// an error status: clients detect them by an empty account list.
func (h *Handler) Parse(c *fiber.Ctx) error {
	pages := splitPreExtracted(c.FormValue("extractedText"))

	if len(pages) == 0 {
		file, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "No file uploaded. Use form field 'file'.")
		}
		if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
			return badRequest(c, "Only PDF files are supported.")
		}

		tmp, err := os.CreateTemp("", "report-*.pdf")
		if err != nil {
			return serverError(c, "Failed to create temp file.")
		}
		tmpPath := tmp.Name()
		tmp.Close()
		defer os.Remove(tmpPath)

		if err := c.SaveFile(file, tmpPath); err != nil {
			return serverError(c, "Failed to save uploaded file.")
		}

		h.Log.WithField("file", filepath.Base(file.Filename)).Info("parsing uploaded report")

		data := h.Engine.ParseDocument(c.UserContext(), tmpPath, extractor.ExtractText)
		return h.respond(c, data)
	}

	h.Log.WithField("pages", len(pages)).Info("parsing pre-extracted text")
	return h.respond(c, h.Engine.Parse(pages))
}

func (h *Handler) respond(c *fiber.Ctx, data models.CreditReportData) error {
	resp := ParseResponse{
		Success:    true,
		Accounts:   data.Accounts,
		ReportDate: data.ReportDate,
		RawText:    data.RawText,
	}

	if c.FormValue("demo") == "true" {
		resp.Accounts = append(resp.Accounts, demo.SampleAccounts()...)
		resp.Demo = true
	}
	resp.Count = len(resp.Accounts)

	if len(data.Accounts) == 0 {
		h.Log.Warn("no tradelines identified in document")
	} else {
		h.Log.WithField("accounts", len(data.Accounts)).Info("extraction complete")
	}

	return c.JSON(resp)
}

// splitPreExtracted turns client-side extracted text into page texts.
func splitPreExtracted(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var pages []string
	for _, page := range strings.Split(text, pageBreakMarker) {
		if page = strings.TrimSpace(page); page != "" {
			pages = append(pages, page)
		}
	}
	return pages
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ParseResponse{
		Success:  false,
		Error:    msg,
		Accounts: []models.ParsedAccount{},
	})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ParseResponse{
		Success:  false,
		Error:    msg,
		Accounts: []models.ParsedAccount{},
	})
}
