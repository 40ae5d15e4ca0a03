package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/navneetha-rajan/mindmate/internal/observability"
	"github.com/navneetha-rajan/mindmate/internal/pkg/ctxutil"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
	"github.com/navneetha-rajan/mindmate/internal/services"
)

type fakeAuth struct {
	services.AuthService
	userID uuid.UUID
	seen   string
}

func (f *fakeAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	f.seen = token
	if token == "outage" {
		return ctx, apierr.Internal(errors.New("token store unavailable"))
	}
	if token != "good" {
		return ctx, errors.New("bad token")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: f.userID, TokenString: token}), nil
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	cases := []struct {
		name   string
		header string
		query  string
		user   uuid.UUID
		want   int
	}{
		{"missing", "", "", userID, http.StatusUnauthorized},
		{"not bearer", "Basic abc", "", userID, http.StatusUnauthorized},
		{"rejected", "Bearer nope", "", userID, http.StatusUnauthorized},
		{"token store failure", "Bearer outage", "", userID, http.StatusInternalServerError},
		{"bearer", "Bearer good", "", userID, http.StatusOK},
		{"lowercase scheme", "bearer good", "", userID, http.StatusOK},
		{"query token", "", "good", userID, http.StatusOK},
		{"no user", "Bearer good", "", uuid.Nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fa := &fakeAuth{userID: tc.user}
			am := NewAuthMiddleware(logger.Nop(), fa)
			r := gin.New()
			var gotUser uuid.UUID
			r.GET("/api/auth/me", am.RequireAuth(), func(c *gin.Context) {
				gotUser = ctxutil.UserID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			target := "/api/auth/me"
			if tc.query != "" {
				target += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.want, rec.Body.String())
			}
			if tc.want == http.StatusOK && gotUser != userID {
				t.Fatalf("user in context: got=%s want=%s", gotUser, userID)
			}
		})
	}
}

func TestTraceContextAndRequestLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.Nop()))
	var td *ctxutil.TraceData
	r.GET("/health", func(c *gin.Context) {
		td = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if td == nil || td.RequestID != "req-123" || td.TraceID == "" {
		t.Fatalf("trace data: got %+v", td)
	}
	if rec.Header().Get("X-Request-Id") != "req-123" || rec.Header().Get("X-Trace-Id") != td.TraceID {
		t.Fatalf("response headers: got %v", rec.Header())
	}
}

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTimeout(time.Minute))
	var hasDeadline bool
	r.GET("/x", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	if !hasDeadline {
		t.Fatalf("expected a request deadline")
	}

	r = gin.New()
	r.Use(RequestTimeout(0))
	r.GET("/x", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	if hasDeadline {
		t.Fatalf("zero timeout must not set a deadline")
	}
}

func TestMetricsMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/journal/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/journal/abc", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	want := `mindmate_http_requests_total{method="GET",route="/api/journal/:id",status="204"} 1`
	if !strings.Contains(body, want) {
		t.Fatalf("metrics output missing %q:\n%s", want, body)
	}
}

func TestClientRequestID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abc-123", "abc-123"},
		{"  padded  ", "padded"},
		{"", ""},
		{"has\nnewline", ""},
		{"ünïcode", ""},
		{strings.Repeat("x", maxRequestIDLen+1), ""},
	}
	for _, tc := range cases {
		if got := clientRequestID(tc.in); got != tc.want {
			t.Fatalf("clientRequestID(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
