package httpapi

import (
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/nemesis-app/nemesis-server/internal/app"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/postgres"
	"github.com/nemesis-app/nemesis-server/internal/platform/migrations"
)

// TestPostgresIntegration runs the API against a real database. Set
// TEST_POSTGRES_DSN (directly or via .env) to enable it.
func TestPostgresIntegration(t *testing.T) {
	_ = godotenv.Load("../../../.env")
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())
	require.NoError(t, migrations.Apply(db))

	store := postgres.New(db)
	application, err := app.New(app.Stores{
		Users:         store,
		Settings:      store,
		Habits:        store,
		Journals:      store,
		Finances:      store,
		Wellness:      store,
		Gratitude:     store,
		Hydration:     store,
		Sleep:         store,
		Subscriptions: store,
		Purger:        store,
	}, app.Options{AuthSecret: []byte("integration-secret")}, nil)
	require.NoError(t, err)

	h := NewHandler(application, Options{}, nil)

	email := "pg-" + uuid.NewString()[:8] + "@example.com"
	userID := registerUser(t, h, email)

	rec := do(t, h, http.MethodPost, "/api/habits", userID, `{"name":"Integration habit","frequency":"daily"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	rec = do(t, h, http.MethodPost, "/api/habits/"+created.ID+"/toggle", userID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/hydration/today", userID, `{"cups":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/settings/export", userID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Cascade delete keeps the database clean between runs.
	rec = do(t, h, http.MethodDelete, "/api/settings/account", userID,
		`{"confirm_email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
