package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewAssignsID(t *testing.T) {
	a := New("chrome", "https://example.com")
	b := New("chrome", "https://example.com")

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.StartedAt.IsZero())
}

func TestFinishPassed(t *testing.T) {
	r := New("firefox", "https://example.com")
	r.Finish(FailureNone, nil)

	assert.True(t, r.Passed())
	assert.Equal(t, StatusPassed, r.Status)
	assert.Empty(t, r.Error)
	assert.False(t, r.FinishedAt.Before(r.StartedAt))
}

func TestFinishFailed(t *testing.T) {
	r := New("chrome", "https://example.com")
	r.Finish(FailureAssertion, errors.New("email does not match"))

	assert.False(t, r.Passed())
	assert.Equal(t, FailureAssertion, r.Failure)
	assert.Equal(t, "email does not match", r.Error)
}

func TestReportJSON(t *testing.T) {
	r := New("chrome", "https://example.com")
	r.Submitted = map[string]string{"Уровень языка": "advanced"}
	r.Finish(FailureNone, nil)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "passed", decoded["status"])
	assert.NotContains(t, decoded, "failure")
	assert.NotContains(t, decoded, "error")
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := LogPublisher{Logger: zap.New(core)}

	ok := New("chrome", "https://example.com")
	ok.Finish(FailureNone, nil)
	require.NoError(t, p.Publish(context.Background(), ok))

	bad := New("chrome", "https://example.com")
	bad.Finish(FailureTimeout, errors.New("wait timed out"))
	require.NoError(t, p.Publish(context.Background(), bad))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "timeout", entries[1].ContextMap()["failure"])
}
