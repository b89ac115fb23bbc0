package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"morningful_landing_go/config"
	"morningful_landing_go/db"
	"morningful_landing_go/middleware"
	"morningful_landing_go/models"
	"morningful_landing_go/services"
	"morningful_landing_go/services/guided"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type eventSink struct {
	mu     sync.Mutex
	events []services.TrackedEvent
}

func (s *eventSink) Send(ctx context.Context, event services.TrackedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *eventSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		out = append(out, e.Name)
	}
	return out
}

// leadAPI stands in for the lead-intake backend
type leadAPI struct {
	server *httptest.Server
	mu     sync.Mutex
	status int
	bodies map[string][]map[string]any
}

func (a *leadAPI) calls(path string) []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]map[string]any(nil), a.bodies[path]...)
}

func (a *leadAPI) setStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
}

type testEnv struct {
	cfg       *config.Config
	db        *gorm.DB
	store     *services.SessionStore
	analytics *services.Analytics
	sink      *eventSink
	api       *leadAPI
	clock     *guided.ManualClock
	sessionID string
}

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.SubmissionLog{}, &models.AnalyticsEvent{}))

	// Set global DB
	db.DB = testDB
	return testDB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	api := &leadAPI{status: http.StatusOK, bodies: map[string][]map[string]any{}}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		api.mu.Lock()
		api.bodies[r.URL.Path] = append(api.bodies[r.URL.Path], body)
		status := api.status
		api.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(api.server.Close)

	cfg := &config.Config{
		Environment:    "test",
		AppURL:         "https://morningful.ai",
		AutoCloseDelay: 3 * time.Second,
		TypingDelay:    time.Second,
		EmailTestMode:  true,
	}
	database := setupTestDB(t)

	env := &testEnv{
		cfg:       cfg,
		db:        database,
		sink:      &eventSink{},
		api:       api,
		clock:     guided.NewManualClock(),
		sessionID: uuid.New().String(),
	}
	env.analytics = services.NewAnalytics(env.sink)
	flows := services.NewFlows(cfg, services.NewLeadClient(api.server.URL, 2*time.Second), env.analytics, services.NewDiagnostics(database)).
		WithClock(env.clock)
	env.store = services.NewSessionStore(flows, nil, time.Hour)
	t.Cleanup(env.store.Stop)
	return env
}

// request builds an echo context carrying the env's session cookie.
// params are name/value pairs for path parameters.
func (env *testEnv) request(method, path string, body io.Reader, htmx bool, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.JSONSerializer = SonicSerializer{}
	req := httptest.NewRequest(method, path, body)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: env.sessionID})
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

// serve runs handler behind the middleware the server installs
func (env *testEnv) serve(c echo.Context, handler echo.HandlerFunc) error {
	deps := Dependencies{Config: env.cfg, Sessions: env.store, Analytics: env.analytics, Diagnostics: services.NewDiagnostics(env.db)}
	return Inject(deps)(middleware.Visitor(env.cfg)(handler))(c)
}

// events waits for background analytics and returns the event names
func (env *testEnv) events() []string {
	env.analytics.Wait()
	return env.sink.names()
}

func assertHTTPError(t *testing.T, err error, status int) {
	t.Helper()
	var he *echo.HTTPError
	if assert.ErrorAs(t, err, &he) {
		assert.Equal(t, status, he.Code)
	}
}
