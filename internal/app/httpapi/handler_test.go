package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemesis-app/nemesis-server/internal/app"
	"github.com/nemesis-app/nemesis-server/internal/middleware"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.reply, g.err
}

func newTestAPI(t *testing.T) (http.Handler, *app.Application) {
	t.Helper()
	application, err := app.New(app.Stores{}, app.Options{
		AuthSecret: []byte("test-secret"),
		AuthIssuer: "nemesis-test",
		Generator:  stubGenerator{reply: "Focus on your sleep consistency."},
	}, nil)
	require.NoError(t, err)
	return NewHandler(application, Options{}, nil), application
}

// do issues a request with an optional authenticated user attached the same
// way the auth middleware would.
func do(t *testing.T, h http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// registerUser creates an account through the API and returns its user ID.
func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/register", "", fmt.Sprintf(
		`{"name":"Dana","email":%q,"password":"hunter2secret"}`, email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.User.ID)
	require.NotEmpty(t, resp.Token)
	return resp.User.ID
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "dana@example.com")

	rec := do(t, h, http.MethodPost, "/api/auth/login", "", `{"email":"dana@example.com","password":"hunter2secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", `{"email":"dana@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/auth/profile", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		Email string `json:"email"`
	}
	decode(t, rec, &profile)
	assert.Equal(t, "dana@example.com", profile.Email)

	rec = do(t, h, http.MethodGet, "/api/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHabitLifecycle(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "habits@example.com")

	rec := do(t, h, http.MethodPost, "/api/habits", userID, `{"name":"Morning run","frequency":"daily"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	rec = do(t, h, http.MethodPost, "/api/habits/"+created.ID+"/toggle", userID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var toggled struct {
		Outcome string `json:"outcome"`
		Habit   struct {
			Streak int `json:"streak"`
		} `json:"habit"`
	}
	decode(t, rec, &toggled)
	assert.Equal(t, 1, toggled.Habit.Streak)

	rec = do(t, h, http.MethodGet, "/api/habits", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []json.RawMessage
	decode(t, rec, &list)
	assert.Len(t, list, 1)

	rec = do(t, h, http.MethodGet, "/api/habits/stats", userID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another user cannot touch it.
	other := registerUser(t, h, "other@example.com")
	rec = do(t, h, http.MethodDelete, "/api/habits/"+created.ID, other, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/habits/"+created.ID, userID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFinanceFilteringAndSummary(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "money@example.com")

	for _, body := range []string{
		`{"type":"income","amount":5000,"category":"Salary","date":"2026-08-01"}`,
		`{"type":"expense","amount":120.50,"category":"Groceries","date":"2026-08-10"}`,
		`{"type":"expense","amount":60,"category":"Transport","date":"2026-08-25"}`,
	} {
		rec := do(t, h, http.MethodPost, "/api/finance", userID, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// The end day itself is included.
	rec := do(t, h, http.MethodGet, "/api/finance?start=2026-08-01&end=2026-08-10", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var records []json.RawMessage
	decode(t, rec, &records)
	assert.Len(t, records, 2)

	rec = do(t, h, http.MethodGet, "/api/finance?type=expense", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Len(t, records, 2)

	rec = do(t, h, http.MethodGet, "/api/finance?start=not-a-date", userID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/finance/summary", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Balance float64 `json:"balance"`
	}
	decode(t, rec, &summary)
	assert.InDelta(t, 5000, summary.Income, 0.001)
	assert.InDelta(t, 180.50, summary.Expense, 0.001)
	assert.InDelta(t, 4819.50, summary.Balance, 0.001)
}

func TestJournalValidationAndStats(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "journal@example.com")

	rec := do(t, h, http.MethodPost, "/api/journal", userID, `{"mood":9,"text":"too happy"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/journal", userID, `{"mood":4,"text":"Solid day","date":"2026-08-20"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/journal?min_mood=3", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []json.RawMessage
	decode(t, rec, &entries)
	assert.Len(t, entries, 1)

	rec = do(t, h, http.MethodGet, "/api/journal/stats", userID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubscriptionsReportTotal(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "subs@example.com")

	rec := do(t, h, http.MethodPost, "/api/subscriptions", userID, `{"name":"Streaming","cost":15.99}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodPost, "/api/subscriptions", userID, `{"name":"Gym","cost":40}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/subscriptions", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Subscriptions []json.RawMessage `json:"subscriptions"`
		Total         float64           `json:"total_monthly_cost"`
	}
	decode(t, rec, &resp)
	assert.Len(t, resp.Subscriptions, 2)
	assert.InDelta(t, 55.99, resp.Total, 0.001)
}

func TestWellnessConfigAndState(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "well@example.com")

	// First read seeds the default checklist.
	rec := do(t, h, http.MethodGet, "/api/wellness/config", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg struct {
		Config []string `json:"config"`
	}
	decode(t, rec, &cfg)
	assert.NotEmpty(t, cfg.Config)

	rec = do(t, h, http.MethodPut, "/api/wellness/config", userID, `{"config":["Meditate","Walk"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &cfg)
	assert.Equal(t, []string{"Meditate", "Walk"}, cfg.Config)

	rec = do(t, h, http.MethodPut, "/api/wellness/state", userID, `{"date":"2026-08-27","state":{"Meditate":true,"Walk":false}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/wellness/state?date=2026-08-27", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state struct {
		State map[string]bool `json:"state"`
	}
	decode(t, rec, &state)
	assert.True(t, state.State["Meditate"])

	rec = do(t, h, http.MethodGet, "/api/wellness/state?date=27/08/2026", userID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/wellness/history", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []struct {
		Date      string `json:"date"`
		Completed int    `json:"completed"`
	}
	decode(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Completed)
}

func TestGratitudeRoundTrip(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "grateful@example.com")

	rec := do(t, h, http.MethodGet, "/api/gratitude", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/gratitude", userID, `{"items":["Family","Coffee"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Items []string `json:"items"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, []string{"Family", "Coffee"}, resp.Items)
}

func TestHydrationToday(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "water@example.com")

	rec := do(t, h, http.MethodGet, "/api/hydration/today", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var today struct {
		ID   string `json:"id"`
		Cups int    `json:"cups"`
	}
	decode(t, rec, &today)
	assert.Equal(t, 0, today.Cups)

	rec = do(t, h, http.MethodPut, "/api/hydration/today", userID, `{"cups":6}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		ID   string `json:"id"`
		Cups int    `json:"cups"`
	}
	decode(t, rec, &updated)
	assert.Equal(t, 6, updated.Cups)
	assert.Equal(t, today.ID, updated.ID)

	rec = do(t, h, http.MethodPut, "/api/hydration/today", userID, `{"cups":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/hydration/history", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/hydration/"+today.ID, userID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSleepLifecycle(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "sleep@example.com")

	rec := do(t, h, http.MethodGet, "/api/sleep/latest", userID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/sleep", userID, `{"hours":7.5,"date":"2026-08-26"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID    string  `json:"id"`
		Hours float64 `json:"hours"`
	}
	decode(t, rec, &created)

	rec = do(t, h, http.MethodPost, "/api/sleep", userID, `{"hours":30}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/sleep/"+created.ID, userID, `{"hours":8}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/sleep/latest", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var latest struct {
		Hours float64 `json:"hours"`
	}
	decode(t, rec, &latest)
	assert.InDelta(t, 8, latest.Hours, 0.001)

	rec = do(t, h, http.MethodGet, "/api/sleep/history?limit=1", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []json.RawMessage
	decode(t, rec, &history)
	assert.Len(t, history, 1)

	rec = do(t, h, http.MethodDelete, "/api/sleep/"+created.ID, userID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSettingsExportAndAccountDeletion(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "owner@example.com")

	rec := do(t, h, http.MethodGet, "/api/settings", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/habits", userID, `{"name":"Read","frequency":"daily"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/settings/export", userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	var export struct {
		Habits []json.RawMessage `json:"habits"`
	}
	decode(t, rec, &export)
	assert.Len(t, export.Habits, 1)

	rec = do(t, h, http.MethodDelete, "/api/settings/account", userID, `{"confirm_email":"nope@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/settings/account", userID, `{"confirm_email":"owner@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/auth/profile", userID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInsightsEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)
	userID := registerUser(t, h, "insight@example.com")

	rec := do(t, h, http.MethodPost, "/api/ai/insights", userID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Insights string `json:"insights"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Focus on your sleep consistency.", resp.Insights)
}

func TestAuditTrailRecordsAccountEvents(t *testing.T) {
	application, err := app.New(app.Stores{}, app.Options{AuthSecret: []byte("s")}, nil)
	require.NoError(t, err)
	api := NewHandler(application, Options{MaxAuditEntries: 10}, nil)

	userID := registerUser(t, api, "audit@example.com")
	rec := do(t, api, http.MethodPut, "/api/auth/password", userID,
		`{"current_password":"hunter2secret","new_password":"anotherlongpass"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The concrete handler owns the audit ring.
	h, ok := api.(*handler)
	require.True(t, ok)
	entries := h.audit.list()
	require.Len(t, entries, 2)
	assert.Equal(t, "register", entries[0].Action)
	assert.Equal(t, "password_changed", entries[1].Action)
	assert.Equal(t, userID, entries[1].User)
}
