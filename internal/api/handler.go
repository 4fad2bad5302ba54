package api

import (
	"context"
	"errors"
	"time"

	"github.com/ahrdadan/formcheck/internal/browser"
	"github.com/ahrdadan/formcheck/internal/report"
	"github.com/ahrdadan/formcheck/internal/scenario"
	"github.com/gofiber/fiber/v2"
)

// Runner executes one form submission run.
type Runner interface {
	Run(ctx context.Context, in scenario.Input) (*report.Report, error)
}

// Handler handles API requests
type Handler struct {
	runner     Runner
	defaults   scenario.Input
	optionsFor func(browserName string) browser.Options
}

// NewHandler creates a new handler. defaults fills every field a request
// leaves empty, optionsFor picks the option bundle for a browser name.
func NewHandler(runner Runner, defaults scenario.Input, optionsFor func(string) browser.Options) *Handler {
	return &Handler{
		runner:     runner,
		defaults:   defaults,
		optionsFor: optionsFor,
	}
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorHandler is the custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(Response{
		Success: false,
		Error:   err.Error(),
	})
}

// HealthCheck returns health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(Response{
		Success: true,
		Data: map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// Browsers lists the supported browser names
func (h *Handler) Browsers(c *fiber.Ctx) error {
	names := make([]string, 0, len(browser.Families()))
	for _, f := range browser.Families() {
		names = append(names, f.String())
	}
	return c.JSON(Response{
		Success: true,
		Data: map[string]interface{}{
			"browsers": names,
			"default":  h.defaults.Browser,
		},
	})
}

// RunRequest overrides the default scenario values for one run.
type RunRequest struct {
	Browser      string `json:"browser,omitempty"`
	URL          string `json:"url,omitempty"`
	UserName     string `json:"user_name,omitempty"`
	UserEmail    string `json:"user_email,omitempty"`
	UserPassword string `json:"user_password,omitempty"`
	Timeout      int    `json:"timeout,omitempty"` // seconds
}

func (h *Handler) buildInput(req RunRequest) scenario.Input {
	in := h.defaults
	if req.Browser != "" {
		in.Browser = req.Browser
	}
	if req.URL != "" {
		in.URL = req.URL
	}
	if req.UserName != "" {
		in.UserName = req.UserName
	}
	if req.UserEmail != "" {
		in.UserEmail = req.UserEmail
	}
	if req.UserPassword != "" {
		in.UserPassword = req.UserPassword
	}
	if h.optionsFor != nil {
		in.Options = h.optionsFor(in.Browser)
	}
	return in
}

// CreateRun runs the scenario synchronously and returns its report
func (h *Handler) CreateRun(c *fiber.Ctx) error {
	var req RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if req.Timeout < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "timeout must not be negative")
	}

	in := h.buildInput(req)
	if _, err := browser.ParseFamily(in.Browser); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.Timeout)*time.Second)
		defer cancel()
	}

	rep, err := h.runner.Run(ctx, in)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if rep != nil && rep.Failure == report.FailureSetup {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(Response{
			Success: false,
			Data:    rep,
			Error:   err.Error(),
		})
	}

	return c.JSON(Response{
		Success: true,
		Data:    rep,
	})
}
