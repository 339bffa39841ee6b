// Package httpapi exposes the application services as a JSON REST API under
// /api.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nemesis-app/nemesis-server/internal/app"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/user"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/wellness"
	"github.com/nemesis-app/nemesis-server/internal/app/metrics"
	habitsvc "github.com/nemesis-app/nemesis-server/internal/app/services/habits"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/dateutil"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/internal/httputil"
	"github.com/nemesis-app/nemesis-server/internal/middleware"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Options tunes the handler's supporting pieces.
type Options struct {
	// AuditLogPath, when set, appends account audit events as JSONL.
	AuditLogPath string
	// MaxAuditEntries bounds the in-memory audit ring. 0 uses the default.
	MaxAuditEntries int
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app    *app.Application
	audit  *auditLog
	log    *logger.Logger
	router *mux.Router
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// NewHandler returns a router exposing the REST API.
func NewHandler(application *app.Application, opts Options, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}

	sink, err := newFileAuditSink(opts.AuditLogPath)
	if err != nil {
		log.WithError(err).Warn("audit log file unavailable; keeping in-memory audit only")
	}
	h := &handler{
		app:   application,
		audit: newAuditLog(opts.MaxAuditEntries, sink),
		log:   log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/profile", h.profile).Methods(http.MethodGet)
	api.HandleFunc("/auth/profile", h.updateProfile).Methods(http.MethodPut)
	api.HandleFunc("/auth/password", h.changePassword).Methods(http.MethodPut)

	api.HandleFunc("/habits", h.listHabits).Methods(http.MethodGet)
	api.HandleFunc("/habits", h.createHabit).Methods(http.MethodPost)
	api.HandleFunc("/habits/stats", h.habitStats).Methods(http.MethodGet)
	api.HandleFunc("/habits/{id}", h.getHabit).Methods(http.MethodGet)
	api.HandleFunc("/habits/{id}", h.updateHabit).Methods(http.MethodPut)
	api.HandleFunc("/habits/{id}", h.deleteHabit).Methods(http.MethodDelete)
	api.HandleFunc("/habits/{id}/toggle", h.toggleHabit).Methods(http.MethodPost)

	api.HandleFunc("/journal", h.listJournal).Methods(http.MethodGet)
	api.HandleFunc("/journal", h.createJournal).Methods(http.MethodPost)
	api.HandleFunc("/journal/stats", h.journalStats).Methods(http.MethodGet)
	api.HandleFunc("/journal/{id}", h.getJournal).Methods(http.MethodGet)
	api.HandleFunc("/journal/{id}", h.updateJournal).Methods(http.MethodPut)
	api.HandleFunc("/journal/{id}", h.deleteJournal).Methods(http.MethodDelete)

	api.HandleFunc("/finance", h.listFinance).Methods(http.MethodGet)
	api.HandleFunc("/finance", h.createFinance).Methods(http.MethodPost)
	api.HandleFunc("/finance/summary", h.financeSummary).Methods(http.MethodGet)
	api.HandleFunc("/finance/{id}", h.getFinance).Methods(http.MethodGet)
	api.HandleFunc("/finance/{id}", h.updateFinance).Methods(http.MethodPut)
	api.HandleFunc("/finance/{id}", h.deleteFinance).Methods(http.MethodDelete)

	api.HandleFunc("/subscriptions", h.listSubscriptions).Methods(http.MethodGet)
	api.HandleFunc("/subscriptions", h.createSubscription).Methods(http.MethodPost)
	api.HandleFunc("/subscriptions/{id}", h.updateSubscription).Methods(http.MethodPut)
	api.HandleFunc("/subscriptions/{id}", h.deleteSubscription).Methods(http.MethodDelete)

	api.HandleFunc("/wellness/config", h.wellnessConfig).Methods(http.MethodGet)
	api.HandleFunc("/wellness/config", h.setWellnessConfig).Methods(http.MethodPut)
	api.HandleFunc("/wellness/state", h.wellnessState).Methods(http.MethodGet)
	api.HandleFunc("/wellness/state", h.setWellnessState).Methods(http.MethodPut)
	api.HandleFunc("/wellness/history", h.wellnessHistory).Methods(http.MethodGet)

	api.HandleFunc("/gratitude", h.gratitudeItems).Methods(http.MethodGet)
	api.HandleFunc("/gratitude", h.setGratitudeItems).Methods(http.MethodPut)

	api.HandleFunc("/hydration/today", h.hydrationToday).Methods(http.MethodGet)
	api.HandleFunc("/hydration/today", h.setHydrationToday).Methods(http.MethodPut)
	api.HandleFunc("/hydration/history", h.hydrationHistory).Methods(http.MethodGet)
	api.HandleFunc("/hydration/{id}", h.deleteHydration).Methods(http.MethodDelete)

	api.HandleFunc("/sleep", h.createSleep).Methods(http.MethodPost)
	api.HandleFunc("/sleep/latest", h.latestSleep).Methods(http.MethodGet)
	api.HandleFunc("/sleep/history", h.sleepHistory).Methods(http.MethodGet)
	api.HandleFunc("/sleep/{id}", h.updateSleep).Methods(http.MethodPut)
	api.HandleFunc("/sleep/{id}", h.deleteSleep).Methods(http.MethodDelete)

	api.HandleFunc("/settings", h.getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.updateSettings).Methods(http.MethodPut)
	api.HandleFunc("/settings/reset", h.resetSettings).Methods(http.MethodPost)
	api.HandleFunc("/settings/export", h.exportData).Methods(http.MethodGet)
	api.HandleFunc("/settings/account", h.deleteAccount).Methods(http.MethodDelete)

	api.HandleFunc("/ai/insights", h.generateInsights).Methods(http.MethodPost)

	h.router = r
	return h
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID pulls the authenticated user from the request context. The auth
// middleware guarantees it is set for every /api route except the skip list.
func (h *handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.GetUserID(r.Context())
	if id == "" {
		httputil.WriteError(w, apperrors.Unauthorized("authentication required"))
		return "", false
	}
	return id, true
}

func (h *handler) recordAudit(r *http.Request, userID, action string, status int) {
	h.audit.add(auditEntry{
		Time:       time.Now().UTC(),
		User:       userID,
		Action:     action,
		Path:       r.URL.Path,
		Method:     r.Method,
		Status:     status,
		RemoteAddr: r.RemoteAddr,
	})
}

// parseDateRange reads optional start/end query parameters as YYYY-MM-DD.
// The end day is inclusive.
func parseDateRange(r *http.Request) (storage.DateRange, error) {
	var rng storage.DateRange
	if s := r.URL.Query().Get("start"); s != "" {
		day, err := dateutil.ParseDay(s)
		if err != nil {
			return rng, apperrors.Validation("start must be YYYY-MM-DD")
		}
		rng.Start = &day
	}
	if s := r.URL.Query().Get("end"); s != "" {
		day, err := dateutil.ParseDay(s)
		if err != nil {
			return rng, apperrors.Validation("end must be YYYY-MM-DD")
		}
		end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		rng.End = &end
	}
	return rng, nil
}

func parseLimit(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit < 0 {
		return 0, apperrors.Validation("limit must be a non-negative integer")
	}
	return limit, nil
}

// parseDate reads an optional RFC 3339 instant or YYYY-MM-DD day from a JSON
// string field. Empty means "unset".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := dateutil.ParseDay(s); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.Validation("date must be RFC 3339 or YYYY-MM-DD")
}

// ---- auth ----

type authResponse struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	u, token, err := h.app.Auth.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.recordAudit(r, u.ID, "register", http.StatusCreated)
	httputil.WriteJSON(w, http.StatusCreated, authResponse{User: u, Token: token})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	u, token, err := h.app.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.recordAudit(r, payload.Email, "login_failed", http.StatusUnauthorized)
		httputil.WriteError(w, err)
		return
	}
	h.recordAudit(r, u.ID, "login", http.StatusOK)
	httputil.WriteJSON(w, http.StatusOK, authResponse{User: u, Token: token})
}

func (h *handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	u, err := h.app.Auth.Profile(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Theme string `json:"theme"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	u, err := h.app.Auth.UpdateProfile(r.Context(), userID, payload.Name, payload.Email, payload.Theme)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

func (h *handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.app.Auth.ChangePassword(r.Context(), userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.recordAudit(r, userID, "password_changed", http.StatusOK)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// ---- habits ----

func (h *handler) listHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	filter := habitsvc.ListFilter{
		Frequency:  habit.Frequency(r.URL.Query().Get("frequency")),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}
	list, err := h.app.Habits.List(r.Context(), userID, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *handler) createHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name      string `json:"name"`
		Frequency string `json:"frequency"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	created, err := h.app.Habits.Create(r.Context(), userID, payload.Name, habit.Frequency(payload.Frequency))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) habitStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	stats, err := h.app.Habits.Stats(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *handler) getHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	found, err := h.app.Habits.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, found)
}

func (h *handler) updateHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name      string `json:"name"`
		Frequency string `json:"frequency"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.app.Habits.Update(r.Context(), userID, mux.Vars(r)["id"], payload.Name, habit.Frequency(payload.Frequency))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.app.Habits.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) toggleHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	toggled, outcome, err := h.app.Habits.Toggle(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	metrics.RecordHabitToggle(string(outcome))
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"habit":   toggled,
		"outcome": outcome,
	})
}

// ---- journal ----

func (h *handler) listJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rng, err := parseDateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter := storage.JournalFilter{Start: rng.Start, End: rng.End}
	if s := r.URL.Query().Get("min_mood"); s != "" {
		if filter.MinMood, err = strconv.Atoi(s); err != nil {
			httputil.WriteError(w, apperrors.Validation("min_mood must be an integer"))
			return
		}
	}
	if s := r.URL.Query().Get("max_mood"); s != "" {
		if filter.MaxMood, err = strconv.Atoi(s); err != nil {
			httputil.WriteError(w, apperrors.Validation("max_mood must be an integer"))
			return
		}
	}

	entries, err := h.app.Journals.List(r.Context(), userID, filter, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *handler) createJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Mood int    `json:"mood"`
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, err := h.app.Journals.Create(r.Context(), userID, payload.Mood, payload.Text, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

func (h *handler) journalStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	stats, err := h.app.Journals.Stats(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *handler) getJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	entry, err := h.app.Journals.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *handler) updateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Mood int    `json:"mood"`
		Text string `json:"text"`
		Date string `json:"date"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, err := h.app.Journals.Update(r.Context(), userID, mux.Vars(r)["id"], payload.Mood, payload.Text, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *handler) deleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.app.Journals.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- finance ----

func (h *handler) listFinance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rng, err := parseDateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter := storage.FinanceFilter{
		Start:    rng.Start,
		End:      rng.End,
		Type:     finance.Type(r.URL.Query().Get("type")),
		Category: r.URL.Query().Get("category"),
	}

	records, err := h.app.Finances.List(r.Context(), userID, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *handler) createFinance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Type     string  `json:"type"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Note     string  `json:"note"`
		Date     string  `json:"date"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.app.Finances.Create(r.Context(), userID, finance.Type(payload.Type), payload.Amount, payload.Category, payload.Note, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

func (h *handler) financeSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rng, err := parseDateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summary, err := h.app.Finances.Summarize(r.Context(), userID, rng)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *handler) getFinance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rec, err := h.app.Finances.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *handler) updateFinance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Type     string   `json:"type"`
		Amount   *float64 `json:"amount"`
		Category string   `json:"category"`
		Note     string   `json:"note"`
		Date     string   `json:"date"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.app.Finances.Update(r.Context(), userID, mux.Vars(r)["id"], finance.Type(payload.Type), payload.Amount, payload.Category, payload.Note, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *handler) deleteFinance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.app.Finances.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- subscriptions ----

func (h *handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	subs, total, err := h.app.Subscriptions.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions":      subs,
		"total_monthly_cost": total,
	})
}

func (h *handler) createSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name string  `json:"name"`
		Cost float64 `json:"cost"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sub, err := h.app.Subscriptions.Create(r.Context(), userID, payload.Name, payload.Cost)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *handler) updateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name string  `json:"name"`
		Cost float64 `json:"cost"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sub, err := h.app.Subscriptions.Update(r.Context(), userID, mux.Vars(r)["id"], payload.Name, payload.Cost)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

func (h *handler) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.app.Subscriptions.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- wellness ----

func (h *handler) wellnessConfig(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	config, err := h.app.Wellness.Config(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"config": config})
}

func (h *handler) setWellnessConfig(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Config []string `json:"config"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	config, err := h.app.Wellness.SetConfig(r.Context(), userID, payload.Config)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"config": config})
}

func (h *handler) wellnessState(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = dateutil.FormatDay(time.Now())
	}
	state, err := h.app.Wellness.State(r.Context(), userID, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"date": date, "state": state})
}

func (h *handler) setWellnessState(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Date  string         `json:"date"`
		State wellness.State `json:"state"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if payload.Date == "" {
		payload.Date = dateutil.FormatDay(time.Now())
	}

	state, err := h.app.Wellness.SetState(r.Context(), userID, payload.Date, payload.State)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"date": payload.Date, "state": state})
}

func (h *handler) wellnessHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rng := wellness.Range{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	history, err := h.app.Wellness.History(r.Context(), userID, rng)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, history)
}

// ---- gratitude ----

func (h *handler) gratitudeItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	items, err := h.app.Gratitude.Items(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *handler) setGratitudeItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Items []string `json:"items"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	items, err := h.app.Gratitude.SetItems(r.Context(), userID, payload.Items)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// ---- hydration ----

func (h *handler) hydrationToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rec, err := h.app.Hydration.Today(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *handler) setHydrationToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Cups int `json:"cups"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.app.Hydration.SetToday(r.Context(), userID, payload.Cups)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *handler) hydrationHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rng, err := parseDateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.app.Hydration.History(r.Context(), userID, rng, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *handler) deleteHydration(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.app.Hydration.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- sleep ----

func (h *handler) createSleep(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Hours float64 `json:"hours"`
		Date  string  `json:"date"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.app.Sleep.Create(r.Context(), userID, payload.Hours, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

func (h *handler) latestSleep(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rec, err := h.app.Sleep.Latest(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *handler) sleepHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	rng, err := parseDateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.app.Sleep.History(r.Context(), userID, rng, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *handler) updateSleep(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Hours float64 `json:"hours"`
		Date  string  `json:"date"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.app.Sleep.Update(r.Context(), userID, mux.Vars(r)["id"], payload.Hours, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *handler) deleteSleep(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.app.Sleep.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- settings ----

func (h *handler) getSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	settings, err := h.app.Settings.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settings)
}

func (h *handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload user.Settings
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	settings, err := h.app.Settings.Update(r.Context(), userID, payload)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settings)
}

func (h *handler) resetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	settings, err := h.app.Settings.Reset(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settings)
}

func (h *handler) exportData(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	export, err := h.app.Settings.ExportData(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.recordAudit(r, userID, "data_exported", http.StatusOK)
	w.Header().Set("Content-Disposition", `attachment; filename="nemesis-export.json"`)
	httputil.WriteJSON(w, http.StatusOK, export)
}

func (h *handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var payload struct {
		ConfirmEmail string `json:"confirm_email"`
	}
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.app.Settings.DeleteAccount(r.Context(), userID, payload.ConfirmEmail); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.recordAudit(r, userID, "account_deleted", http.StatusOK)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// ---- insights ----

func (h *handler) generateInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	start := time.Now()
	narrative, err := h.app.Insights.Generate(r.Context(), userID)
	if err != nil {
		status := "error"
		if svcErr := apperrors.GetServiceError(err); svcErr != nil {
			status = string(svcErr.Code)
		}
		metrics.RecordInsightGeneration(status, time.Since(start))
		httputil.WriteError(w, err)
		return
	}
	metrics.RecordInsightGeneration("ok", time.Since(start))
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"insights": narrative})
}
