package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/coach"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/testutil"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(context.Context, string, []coach.Message) (string, error) {
	return s.reply, s.err
}

type testServer struct {
	app       *fiber.App
	completer *stubCompleter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		AdminToken:       "admin-token",
		CORSOrigins:      "*",
		Environment:      "test",
	}
	db := testutil.NewDB(t)
	cache := catalog.NewLocalCache(1024 * 1024)
	completer := &stubCompleter{reply: "Try the Quiet Yoga session."}

	prefs := services.NewPreferenceService(db)
	workouts := services.NewWorkoutService(db, cache, time.Minute, prefs)
	progress := services.NewProgressService(db, workouts, events.NopPublisher{}, nil)

	configHandler := handlers.NewRemoteConfigHandler(db)
	require.NoError(t, configHandler.SeedDefaults())

	app := NewApp(cfg)
	Setup(app, cfg, db, Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:     handlers.NewHealthHandler(db, cache),
		Config:     configHandler,
		Workout:    handlers.NewWorkoutHandler(workouts),
		Preference: handlers.NewPreferenceHandler(prefs),
		Progress:   handlers.NewProgressHandler(progress),
		Coach:      handlers.NewCoachHandler(services.NewCoachService(prefs, workouts, completer)),
		Dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(prefs, workouts, progress)),
	})
	return &testServer{app: app, completer: completer}
}

type call struct {
	method     string
	path       string
	token      string
	adminToken string
	body       interface{}
}

func (s *testServer) do(t *testing.T, c call) (int, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.adminToken != "" {
		req.Header.Set("X-Admin-Token", c.adminToken)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	status, body := s.do(t, call{method: "POST", path: "/api/auth/register", body: map[string]string{
		"email": email, "password": "secret1",
	}})
	require.Equal(t, http.StatusCreated, status, body)
	return body["access_token"].(string)
}

func (s *testServer) createWorkout(t *testing.T, token string, body map[string]interface{}) string {
	t.Helper()
	status, resp := s.do(t, call{method: "POST", path: "/api/admin/workouts", token: token, adminToken: "admin-token", body: body})
	require.Equal(t, http.StatusCreated, status, resp)
	return resp["id"].(string)
}

func titles(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	list, ok := body["workouts"].([]interface{})
	require.True(t, ok, body)
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = w.(map[string]interface{})["title"].(string)
	}
	return out
}

func TestOnboardingWorkoutsAndProgressFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "sam@example.com")

	status, _ := s.do(t, call{method: "GET", path: "/api/preferences", token: token})
	assert.Equal(t, http.StatusNotFound, status)

	status, dash := s.do(t, call{method: "GET", path: "/api/dashboard", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, dash["needs_onboarding"])

	yoga := s.createWorkout(t, token, map[string]interface{}{
		"title": "Quiet Yoga", "description": "slow flow", "duration": 20,
		"sensory_level": "low", "equipment": "none", "tags": []string{"calm"},
	})
	s.createWorkout(t, token, map[string]interface{}{
		"title": "Gym HIIT", "duration": 30, "sensory_level": "high", "equipment": "full", "tags": []string{"cardio"},
	})

	status, _ = s.do(t, call{method: "PUT", path: "/api/preferences", token: token, body: map[string]interface{}{
		"sensory_level": "extreme",
	}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, prefs := s.do(t, call{method: "PUT", path: "/api/preferences", token: token, body: map[string]interface{}{
		"name": "Sam", "sensory_level": "low", "equipment": "none", "workout_time": 20,
	}})
	require.Equal(t, http.StatusOK, status, prefs)
	assert.Equal(t, "low", prefs["sensory_level"])

	status, list := s.do(t, call{method: "GET", path: "/api/workouts", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Quiet Yoga"}, titles(t, list))
	assert.Equal(t, float64(2), list["total"])

	status, list = s.do(t, call{method: "GET", path: "/api/workouts?all=true", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, []string{"Gym HIIT", "Quiet Yoga"}, titles(t, list))

	status, list = s.do(t, call{method: "GET", path: "/api/workouts?all=true&tag=CARDIO", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Gym HIIT"}, titles(t, list))

	status, tags := s.do(t, call{method: "GET", path: "/api/workouts/tags", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, []interface{}{"calm", "cardio"}, tags["tags"])

	status, _ = s.do(t, call{method: "GET", path: "/api/workouts/" + yoga, token: token})
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, call{method: "GET", path: "/api/workouts/not-a-uuid", token: token})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = s.do(t, call{method: "GET", path: "/api/workouts/00000000-0000-0000-0000-000000000001", token: token})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, call{method: "POST", path: "/api/progress", token: token, body: map[string]string{
		"workout_id": "00000000-0000-0000-0000-000000000001",
	}})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.do(t, call{method: "POST", path: "/api/progress", token: token, body: map[string]string{}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, completion := s.do(t, call{method: "POST", path: "/api/progress", token: token, body: map[string]string{"workout_id": yoga}})
	require.Equal(t, http.StatusCreated, status, completion)

	status, summary := s.do(t, call{method: "GET", path: "/api/progress?tz=Europe/Berlin", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), summary["total_workouts"])
	assert.Equal(t, float64(1), summary["this_week"])
	assert.Equal(t, float64(1), summary["streak"])
	assert.Len(t, summary["recent"], 1)

	status, _ = s.do(t, call{method: "GET", path: "/api/progress?tz=Nowhere/Special", token: token})
	assert.Equal(t, http.StatusBadRequest, status)

	status, history := s.do(t, call{method: "GET", path: "/api/progress/history?limit=10", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, history["completions"], 1)

	status, dash = s.do(t, call{method: "GET", path: "/api/dashboard", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, dash["needs_onboarding"])
	assert.Len(t, dash["workouts"], 1)
}

func TestCoachChat(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "sam@example.com")

	status, body := s.do(t, call{method: "POST", path: "/api/coach/chat", token: token, body: map[string]interface{}{
		"message": "I feel overwhelmed",
		"history": []map[string]string{{"role": "assistant", "content": coach.Greeting}},
	}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Try the Quiet Yoga session.", body["reply"])
	assert.Equal(t, "sensory", body["intent"])

	s.completer.err = errors.New("provider down")
	status, body = s.do(t, call{method: "POST", path: "/api/coach/chat", token: token, body: map[string]string{"message": "hello"}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, coach.ErrorReply, body["reply"])

	status, _ = s.do(t, call{method: "POST", path: "/api/coach/chat", token: token, body: map[string]string{"message": ""}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, call{method: "POST", path: "/api/auth/register", body: map[string]string{"email": "x@y.co", "password": "123"}})
	assert.Equal(t, http.StatusBadRequest, status)

	token := s.register(t, "x@y.co")
	status, _ = s.do(t, call{method: "POST", path: "/api/auth/register", body: map[string]string{"email": "x@y.co", "password": "123456"}})
	assert.Equal(t, http.StatusConflict, status)

	status, login := s.do(t, call{method: "POST", path: "/api/auth/login", body: map[string]string{"email": "x@y.co", "password": "secret1"}})
	require.Equal(t, http.StatusOK, status)

	status, refreshed := s.do(t, call{method: "POST", path: "/api/auth/refresh", body: map[string]interface{}{"refresh_token": login["refresh_token"]}})
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, call{method: "POST", path: "/api/auth/refresh", body: map[string]interface{}{"refresh_token": login["refresh_token"]}})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, me := s.do(t, call{method: "GET", path: "/api/auth/me", token: token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "x@y.co", me["email"])

	status, _ = s.do(t, call{method: "POST", path: "/api/auth/logout", token: token, body: map[string]interface{}{"refresh_token": refreshed["refresh_token"]}})
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, call{method: "DELETE", path: "/api/auth/account", token: token, body: map[string]string{"password": "nope"}})
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = s.do(t, call{method: "DELETE", path: "/api/auth/account", token: token, body: map[string]string{"password": "secret1"}})
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, call{method: "GET", path: "/api/dashboard"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRemoteConfigRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "x@y.co")

	status, cfg := s.do(t, call{method: "GET", path: "/api/config"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, coach.Greeting, cfg["coach_greeting"])
	assert.Equal(t, float64(30), cfg["progress_refresh_seconds"])
	assert.Equal(t, false, cfg["maintenance_mode"])
	assert.Len(t, cfg["preferred_durations"], 6)

	status, _ = s.do(t, call{method: "PUT", path: "/api/admin/config/maintenance_mode", token: token, body: map[string]string{"value": "true", "type": "bool"}})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, call{method: "PUT", path: "/api/admin/config/maintenance_mode", token: token, adminToken: "admin-token", body: map[string]string{"value": "yes", "type": "bool"}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, call{method: "PUT", path: "/api/admin/config/maintenance_mode", token: token, adminToken: "admin-token", body: map[string]string{"value": "true", "type": "bool"}})
	require.Equal(t, http.StatusOK, status)

	_, cfg = s.do(t, call{method: "GET", path: "/api/config"})
	assert.Equal(t, true, cfg["maintenance_mode"])

	status, _ = s.do(t, call{method: "DELETE", path: "/api/admin/config/announcement_title", token: token, adminToken: "admin-token"})
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, call{method: "DELETE", path: "/api/admin/config/announcement_title", token: token, adminToken: "admin-token"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, health := s.do(t, call{method: "GET", path: "/api/health"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "ok", health["db"])

	resp, err := s.app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "neurofit_http_request_duration_seconds")
}

func TestErrorHandlerHidesServerErrors(t *testing.T) {
	app := NewApp(&config.Config{Environment: "test", CORSOrigins: "*"})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "short and stout", body["message"])
}
