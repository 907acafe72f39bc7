package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"staynest/internal/config"
	"staynest/internal/repos"
	"staynest/internal/router"
)

const seedPassword = "Passw0rd!"

func testConfig() config.Config {
	return config.Config{
		DBDriver:     "sqlite",
		DBDSN:        ":memory:",
		Seed:         true,
		JWTSecret:    "test-secret",
		JWTTTL:       time.Hour,
		RateLimitMax: 1000,
		LoginRateMax: 100,
		BodyLimit:    1 << 20,
		ServiceName:  "staynest-test",
	}
}

// newApp wires the full router over a fresh seeded in-memory database.
func newApp(t *testing.T) *fiber.App {
	t.Helper()
	return newAppWith(t, testConfig())
}

func newAppWith(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(repos.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN, Seed: cfg.Seed})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return router.New(cfg, db)
}

// client keeps cookies between requests and echoes the csrf cookie in the
// X-Csrf-Token header on every call.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newClient(t *testing.T, app *fiber.App) *client {
	t.Helper()
	c := &client{t: t, app: app, cookies: map[string]string{}}
	resp, _ := c.do("GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, c.cookies["csrf_"], "csrf token missing")
	return c
}

func loggedIn(t *testing.T, app *fiber.App, email string) *client {
	t.Helper()
	c := newClient(t, app)
	resp, body := c.do("POST", "/api/auth/login", map[string]string{"email": email, "password": seedPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login %s: %v", email, body)
	require.NotEmpty(t, c.cookies["token"])
	return c
}

func (c *client) request(method, path string, body any) *http.Request {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	if tok := c.cookies["csrf_"]; tok != "" {
		req.Header.Set("X-Csrf-Token", tok)
	}
	return req
}

func (c *client) do(method, path string, body any) (*http.Response, map[string]any) {
	c.t.Helper()
	resp, err := c.app.Test(c.request(method, path, body), -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Value == "" || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return resp, decode(c.t, resp)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), "body=%s", raw)
	}
	return out
}

type logEntry struct {
	Level     string         `json:"level"`
	Action    string         `json:"action"`
	UserID    string         `json:"user_id"`
	Role      string         `json:"role"`
	ListingID string         `json:"listing_id"`
	BookingID string         `json:"booking_id"`
	SubjectID string         `json:"subject_id"`
	Status    int            `json:"status"`
	Fields    map[string]any `json:"fields"`
}

// capture logs by temporarily replacing the standard logger output
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
