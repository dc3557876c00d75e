package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/frahmantamala/shift-tracker/internal/metrics"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("RequestID", func() {
	It("mints a trace id when none is sent", func() {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = TraceIDFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(seen).NotTo(BeEmpty())
		Expect(rec.Header().Get(TraceIDHeader)).To(Equal(seen))
	})

	It("propagates the caller's trace id", func() {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = TraceIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceIDHeader, "trace-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(seen).To(Equal("trace-123"))
		Expect(rec.Header().Get(TraceIDHeader)).To(Equal("trace-123"))
	})
})

var _ = Describe("UserContext", func() {
	It("adds the caller identity to the request logger", func() {
		var buf bytes.Buffer
		logger.Setup(logger.Options{Level: "info", Format: "json", Output: &buf})
		DeferCleanup(func() {
			logger.Setup(logger.Options{Level: "info", Format: "text", Output: GinkgoWriter})
		})

		h := UserContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.From(r.Context()).Info("handled")
		}))

		req := httptest.NewRequest(http.MethodGet, "/add-shift", nil)
		ctx := internal.ContextWithIdentity(req.Context(), &internal.Identity{UserID: 9, Role: internal.RoleDriver})
		h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

		Expect(buf.String()).To(ContainSubstring(`"userID":9`))
		Expect(buf.String()).To(ContainSubstring(`"role":"driver"`))
	})

	It("passes anonymous requests through untouched", func() {
		called := false
		h := UserContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(called).To(BeTrue())
	})
})

var _ = Describe("LoggingMiddleware", func() {
	var (
		buf bytes.Buffer
		lg  *slog.Logger
	)

	BeforeEach(func() {
		buf.Reset()
		lg = slog.New(slog.NewJSONHandler(&buf, nil))
	})

	It("masks the login identifier, tokens and the Authorization header", func() {
		h := LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"eyJhbGciOi","name":"Ana","role":"driver"}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"id":"A1"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer secret")
		h.ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		Expect(out).NotTo(ContainSubstring("A1"))
		Expect(out).NotTo(ContainSubstring("eyJhbGciOi"))
		Expect(out).NotTo(ContainSubstring("Bearer secret"))
		Expect(out).To(ContainSubstring("Ana"))
		Expect(out).To(ContainSubstring(filtered))
	})

	It("keeps the request body readable for the handler", func() {
		var got string
		h := LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := new(bytes.Buffer)
			_, _ = b.ReadFrom(r.Body)
			got = b.String()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/add-shift", strings.NewReader(`{"user_id":1}`)))
		Expect(got).To(Equal(`{"user_id":1}`))
	})

	It("logs client errors at warn level", func() {
		h := LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/shifts/x", nil))
		Expect(buf.String()).To(ContainSubstring(`"level":"WARN"`))
		Expect(buf.String()).To(ContainSubstring(`"status_code":400`))
	})

	It("summarizes binary bodies", func() {
		Expect(filterSensitiveBody("application/octet-stream", []byte{0x50, 0x4b, 0x03, 0x04})).To(Equal("[4 bytes]"))
		Expect(filterSensitiveBody("text/plain; charset=utf-8", []byte("Backend läuft!"))).To(Equal("Backend läuft!"))
	})

	It("filters nested JSON", func() {
		out := filterSensitiveBody("application/json", []byte(`[{"id":1,"kunde":"K"}]`))
		Expect(out).To(Equal(`[{"id":"[FILTERED]","kunde":"K"}]`))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("turns a panic into a JSON internal error", func() {
		var buf bytes.Buffer
		lg := slog.New(slog.NewJSONHandler(&buf, nil))
		h := RecoveryMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["error"]["message"]).To(Equal(msgInternal))
		Expect(buf.String()).To(ContainSubstring("panic recovered"))
		Expect(rec.Body.String()).NotTo(ContainSubstring("boom"))
	})
})

var _ = Describe("CORS", func() {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	BeforeEach(func() {
		called = false
	})

	preflight := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodOptions, "/add-shift", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		return req
	}

	It("answers preflight requests for allowed origins", func() {
		h := CORS([]string{"https://app.example.com"})(next)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, preflight("https://app.example.com"))

		Expect(called).To(BeFalse())
		Expect(rec.Code).To(BeElementOf(http.StatusOK, http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.com"))
		Expect(rec.Header().Get("Access-Control-Allow-Headers")).To(ContainSubstring("Authorization"))
		Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring(http.MethodPost))
		Expect(rec.Header().Get("Access-Control-Max-Age")).To(Equal("600"))
	})

	It("withholds the allow headers from unknown origins", func() {
		h := CORS([]string{"https://app.example.com"})(next)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, preflight("https://evil.example.com"))

		Expect(called).To(BeFalse())
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(BeEmpty())
	})

	It("exposes the download headers on actual requests", func() {
		h := CORS([]string{"https://app.example.com"})(next)

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(called).To(BeTrue())
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.com"))
		Expect(rec.Header().Get("Access-Control-Expose-Headers")).To(ContainSubstring("Content-Disposition"))
	})

	It("admits any origin with a wildcard", func() {
		h := CORS([]string{"*"})(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anything.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusTeapot))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})

var _ = Describe("Metrics", func() {
	It("labels requests with the matched route pattern", func() {
		router := chi.NewRouter()
		router.Use(Metrics)
		router.Get("/shifts/{user_id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("/shifts/{user_id}", http.MethodGet, "200")
		before := testutil.ToFloat64(counter)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/shifts/42", nil))

		Expect(testutil.ToFloat64(counter)).To(Equal(before + 1))
	})
})
