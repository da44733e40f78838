package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/database"
	"github.com/milassets/backend/models"
	"github.com/milassets/backend/natsserver"
	"github.com/milassets/backend/repository"
	"github.com/milassets/backend/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	router *gin.Engine
	users  *repository.Users
	assets *repository.Assets
	tokens *auth.TokenService
	hub    *services.ActivityHub
	bus    *natsserver.EmbeddedNATS
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestEnv spins up the full router over an in-memory sqlite database.
// The activity hub is left out; handlers tolerate its absence.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := openTestDB(t)
	tokens := auth.NewTokenService("test-secret")
	router := NewRouter(RouterConfig{
		DB:     db,
		Tokens: tokens,
		Log:    zap.NewNop(),
	})

	return &testEnv{
		router: router,
		users:  repository.NewUsers(db),
		assets: repository.NewAssets(db),
		tokens: tokens,
	}
}

// Fixed test port, distinct from the services tests' port.
const testNATSPort = 42234

// newTestEnvWithHub additionally runs the embedded NATS server and the
// activity hub, wired exactly as in main.
func newTestEnvWithHub(t *testing.T, log *zap.Logger) *testEnv {
	t.Helper()

	bus, err := natsserver.New(natsserver.Config{Port: testNATSPort})
	require.NoError(t, err)
	t.Cleanup(bus.Shutdown)

	hub, err := services.NewActivityHub(bus, log)
	require.NoError(t, err)
	go hub.Run()

	db := openTestDB(t)
	tokens := auth.NewTokenService("test-secret")
	router := NewRouter(RouterConfig{
		DB:     db,
		Tokens: tokens,
		Hub:    hub,
		Bus:    bus,
		Log:    log,
	})

	return &testEnv{
		router: router,
		users:  repository.NewUsers(db),
		assets: repository.NewAssets(db),
		tokens: tokens,
		hub:    hub,
		bus:    bus,
	}
}

func (e *testEnv) createUser(t *testing.T, username, base string, role models.Role) *models.User {
	t.Helper()
	user, err := e.users.Create(username, "password1", username, base, role)
	require.NoError(t, err)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

// do performs a request against the router. An empty token leaves the
// request unauthenticated.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
