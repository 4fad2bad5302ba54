package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status is the outcome of a run.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// FailureKind classifies why a run failed.
type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureSetup       FailureKind = "setup"
	FailureInteraction FailureKind = "interaction"
	FailureTimeout     FailureKind = "timeout"
	FailureAssertion   FailureKind = "assertion"
)

// Report describes one form submission run.
type Report struct {
	ID         string            `json:"id"`
	Browser    string            `json:"browser"`
	URL        string            `json:"url"`
	Status     Status            `json:"status"`
	Failure    FailureKind       `json:"failure,omitempty"`
	Error      string            `json:"error,omitempty"`
	Submitted  map[string]string `json:"submitted,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	DurationMs int64             `json:"duration_ms"`
}

// New starts a report for a run against url.
func New(browser, url string) *Report {
	return &Report{
		ID:        uuid.New().String(),
		Browser:   browser,
		URL:       url,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the end time and outcome.
func (r *Report) Finish(kind FailureKind, err error) {
	r.FinishedAt = time.Now().UTC()
	r.DurationMs = r.FinishedAt.Sub(r.StartedAt).Milliseconds()
	if err == nil {
		r.Status = StatusPassed
		r.Failure = FailureNone
		r.Error = ""
		return
	}
	r.Status = StatusFailed
	r.Failure = kind
	r.Error = err.Error()
}

// Passed reports whether the run verified successfully.
func (r *Report) Passed() bool {
	return r.Status == StatusPassed
}

// Publisher delivers finished reports somewhere.
type Publisher interface {
	Publish(ctx context.Context, r *Report) error
}

// LogPublisher writes reports to a zap logger.
type LogPublisher struct {
	Logger *zap.Logger
}

func (p LogPublisher) Publish(_ context.Context, r *Report) error {
	fields := []zap.Field{
		zap.String("id", r.ID),
		zap.String("browser", r.Browser),
		zap.String("url", r.URL),
		zap.String("status", string(r.Status)),
		zap.Int64("duration_ms", r.DurationMs),
	}
	if r.Passed() {
		p.Logger.Info("Run finished", fields...)
		return nil
	}
	fields = append(fields, zap.String("failure", string(r.Failure)), zap.String("error", r.Error))
	p.Logger.Error("Run failed", fields...)
	return nil
}
