package intake_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/resonant/internal/config"
	"github.com/Bitlatte/resonant/internal/intake"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/metrics"
)

const validBody = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"company": "Analytical Engines",
	"timeline": "1-3 months",
	"services": ["Product Strategy", "Brand Systems"],
	"budget": "$50k-$100k",
	"description": "We need a launch plan for our new engine."
}`

func newRouter(t *testing.T, notifiers []intake.Notifier, m *metrics.Metrics) *gin.Engine {
	t.Helper()

	h := intake.NewHandler(intake.NewDispatcher(notifiers, logger.NewNop(), m), m)
	r := gin.New()
	r.POST("/api/start-project", h.StartProject)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/start-project", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestStartProject_SlackOnly(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{Slack: config.SlackConfig{WebhookURL: srv.URL, Timeout: time.Second}}
	notifiers, err := intake.ConfiguredNotifiers(cfg)
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())

	w := post(newRouter(t, notifiers, m), validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"emailSent":false,"slackPosted":true}`, w.Body.String())
	assert.Equal(t, int32(1), hits.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeAccepted)), 0)
}

func TestStartProject_FailingChannelStillSucceeds(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	notifiers := []intake.Notifier{
		succeeding(intake.ChannelEmail),
		intake.NewSlackNotifier(config.SlackConfig{WebhookURL: srv.URL, Timeout: time.Second}),
	}

	w := post(newRouter(t, notifiers, nil), validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"emailSent":true,"slackPosted":false}`, w.Body.String())
}

func TestStartProject_InvalidEmail(t *testing.T) {
	t.Parallel()

	slack := succeeding(intake.ChannelSlack)
	m := metrics.New(prometheus.NewRegistry())
	body := strings.Replace(validBody, "ada@example.com", "ada-at-example", 1)

	w := post(newRouter(t, []intake.Notifier{slack}, m), body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp intake.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "email", resp.Issues[0].Field)
	assert.Equal(t, "Enter a valid email", resp.Issues[0].Message)
	assert.Equal(t, int32(0), slack.calls.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeRejected)), 0)
}

func TestStartProject_WrongFieldType(t *testing.T) {
	t.Parallel()

	body := strings.Replace(validBody, `["Product Strategy", "Brand Systems"]`, `"Product Strategy"`, 1)
	w := post(newRouter(t, nil, nil), body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"services"`)
}

func TestStartProject_MalformedJSON(t *testing.T) {
	t.Parallel()

	w := post(newRouter(t, nil, nil), `{"name": "Ada"`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp intake.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "body", resp.Issues[0].Field)
}

func TestStartProject_InternalFault(t *testing.T) {
	t.Parallel()

	broken := &fakeNotifier{channel: intake.ChannelEmail, notify: func(_ context.Context) error { panic("nil transport") }}
	m := metrics.New(prometheus.NewRegistry())

	w := post(newRouter(t, []intake.Notifier{broken}, m), validBody)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false}`, w.Body.String())
	assert.InDelta(t, 1, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeFailed)), 0)
}
