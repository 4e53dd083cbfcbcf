package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/settings"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct{}

func (fakeBot) IsReady() bool   { return true }
func (fakeBot) GuildCount() int { return 2 }

func newTestServer(t *testing.T) (*Server, *warnings.Ledger, *settings.Store) {
	t.Helper()

	backend := storage.NewMemoryBackend()
	ledger, err := warnings.Open(backend, "warnings.toml")
	require.NoError(t, err)
	store, err := settings.Open(backend, "settings.toml")
	require.NoError(t, err)

	s, err := NewServer("", ".*", DefaultRateLimit)
	require.NoError(t, err)
	SetupAPIRoutes(s, APIDeps{Ledger: ledger, Settings: store, Storage: backend, Bot: fakeBot{}})
	return s, ledger, store
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthAndStatus(t *testing.T) {
	s, _, _ := newTestServer(t)

	w := get(t, s, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = get(t, s, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	bot := body["bot"].(map[string]interface{})
	assert.Equal(t, true, bot["isOnline"])
	assert.Equal(t, float64(2), bot["guilds"])
}

func TestWarningsRoute(t *testing.T) {
	s, ledger, _ := newTestServer(t)

	w := get(t, s, "/api/guilds/g/users/u/warnings")
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, err := ledger.AddWarning("g", "u", "spam", "mod")
	require.NoError(t, err)

	w = get(t, s, "/api/guilds/g/users/u/warnings")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["count"])
	list := body["warnings"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "spam", list[0].(map[string]interface{})["reason"])

	w = get(t, s, "/api/guilds")
	assert.Contains(t, w.Body.String(), `"guildId":"g"`)
}

func TestSettingsRoute(t *testing.T) {
	s, _, store := newTestServer(t)

	body := decode(t, get(t, s, "/api/guilds/g/settings"))
	assert.Equal(t, false, body["configured"])

	require.NoError(t, store.SetEscalationPolicy("g", models.BanPolicy(3)))
	body = decode(t, get(t, s, "/api/guilds/g/settings"))
	assert.Equal(t, true, body["configured"])
	policy := body["settings"].(map[string]interface{})["escalationPolicy"].(map[string]interface{})
	assert.Equal(t, "ban", policy["action"])
	assert.Equal(t, float64(3), policy["threshold"])
}

func TestMetricsRoute(t *testing.T) {
	s, _, _ := newTestServer(t)

	w := get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAllowedHosts(t *testing.T) {
	s, err := NewServer("", `^(.+\.)?pancy\.dev$`, DefaultRateLimit)
	require.NoError(t, err)
	SetupAPIRoutes(s, APIDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Host = "evil.example"
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Host = "api.pancy.dev"
	w = httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err = NewServer("", "(", DefaultRateLimit)
	assert.Error(t, err)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	engine := gin.New()
	engine.Use(rateLimitMiddleware(RateLimitConfig{Window: time.Minute, MaxRequests: 2}, func() time.Time { return now }))
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	do := func() int {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, do(), "the window resets")
}

func TestRequestSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/health?x=1", nil)
	c.Request.Header.Set("Authorization", "secret")

	r := requestSummary(c)
	assert.Equal(t, "/api/health", r.path)
	assert.Equal(t, "x=1", r.query)
	assert.True(t, strings.EqualFold(r.headers.Get("Authorization"), "secret"))
}
