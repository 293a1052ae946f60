package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const registerPath = "/visitors/register"

func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, ttl, zap.NewNop()))
	e.POST(registerPath, handler)
	e.GET(registerPath, handler)
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func validHeaders() map[string]string {
	return map[string]string{
		"Ax-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, registerPath, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)
	valid := validHeaders()

	cases := []struct {
		name string
		hdr  map[string]string
	}{
		{"missing Ax-Request-Id", map[string]string{"Ax-Request-At": valid["Ax-Request-At"]}},
		{"invalid Ax-Request-Id", map[string]string{"Ax-Request-Id": "NOT-VALID", "Ax-Request-At": valid["Ax-Request-At"]}},
		{"invalid Ax-Request-At", map[string]string{"Ax-Request-Id": valid["Ax-Request-Id"], "Ax-Request-At": "not-a-time"}},
		{"missing Ax-Request-At", map[string]string{"Ax-Request-Id": valid["Ax-Request-Id"]}},
		{"skewed Ax-Request-At", map[string]string{
			"Ax-Request-Id": valid["Ax-Request-Id"],
			"Ax-Request-At": time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doReq(t, e, http.MethodPost, registerPath, mkJSONBody(t, map[string]int{"x": 1}), tc.hdr)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls atomic.Int32
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		calls.Add(1)
		return okCreatedHandler(c)
	})

	h := validHeaders()
	body := map[string]any{"full_name": "Budi", "contact": "0812"}

	rec1 := doReq(t, e, http.MethodPost, registerPath, mkJSONBody(t, body), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	rec2 := doReq(t, e, http.MethodPost, registerPath, mkJSONBody(t, body), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("handler ran %d times, want 1", n)
	}
}

func Test_SameRequestID_DifferentClients_AreIndependent(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls atomic.Int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		calls.Add(1)
		return okCreatedHandler(c)
	})

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		h := validHeaders()
		h[echo.HeaderXRealIP] = ip
		rec := doReq(t, e, http.MethodPost, registerPath, bytes.NewReader([]byte(`{}`)), h)
		if rec.Code != http.StatusCreated {
			t.Fatalf("ip %s => want 201, got %d", ip, rec.Code)
		}
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("handler ran %d times, want 2", n)
	}
}

func Test_ServerError_ReleasesKey(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls atomic.Int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		if calls.Add(1) == 1 {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "busy"})
		}
		return okCreatedHandler(c)
	})

	h := validHeaders()
	rec := doReq(t, e, http.MethodPost, registerPath, bytes.NewReader([]byte(`{}`)), h)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("first => want 503, got %d", rec.Code)
	}
	rec = doReq(t, e, http.MethodPost, registerPath, bytes.NewReader([]byte(`{}`)), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("retry => want 201, got %d", rec.Code)
	}
}

func Test_ReturnedServerError_ReleasesKeyAndSurfacesCause(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	cause := errors.New("lock wait timeout")
	var seen error
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen = next(c)
			return seen
		}
	})
	e.Use(IdempotencyMiddleware(rdb, time.Minute, zap.NewNop()))
	e.POST(registerPath, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "try again").SetInternal(cause)
	})

	h := validHeaders()
	rec := doReq(t, e, http.MethodPost, registerPath, bytes.NewReader([]byte(`{}`)), h)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
	if !errors.Is(seen, cause) {
		t.Fatalf("cause not returned to outer middleware, got %v", seen)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("idempotency key should be released, have %v", keys)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	reqID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	body := []byte(`{"x":1}`)

	// httptest requests come from 192.0.2.1
	key := buildKey(http.MethodPost, registerPath, "ip-192.0.2.1", reqID)
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		RequestID:   reqID,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, registerPath, bytes.NewReader(body), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	reqID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	key := buildKey(http.MethodPost, registerPath, "ip-192.0.2.1", reqID)
	final := idempEntry{
		Code:        http.StatusCreated,
		Body:        []byte(`{"ok":true}`),
		BodySHA256:  bodyHash([]byte(`{"x":1}`)),
		RequestID:   reqID,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, registerPath, bytes.NewReader([]byte(`{"x":2}`)), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same reqID => want 409, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, time.Minute, okCreatedHandler)

	rec := doReq(t, e, http.MethodPost, registerPath, bytes.NewReader([]byte(`{}`)), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}

func Test_requestScope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.1.1.1")
	c := e.NewContext(req, httptest.NewRecorder())

	if got := requestScope(c); got != "ip-10.1.1.1" {
		t.Fatalf("anonymous scope = %q", got)
	}
	c.Set(CtxEmployeeID, uint64(7))
	if got := requestScope(c); got != "emp-7" {
		t.Fatalf("employee scope = %q", got)
	}
}
