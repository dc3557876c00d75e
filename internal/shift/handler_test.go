package shift_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	shiftDatamodel "github.com/frahmantamala/shift-tracker/internal/core/datamodel/shift"
	userDatamodel "github.com/frahmantamala/shift-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/shift-tracker/internal/shift"
	shiftPostgres "github.com/frahmantamala/shift-tracker/internal/shift/postgres"
	"github.com/frahmantamala/shift-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Shift Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *shift.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(&userDatamodel.User{}, &shiftDatamodel.Shift{})).To(Succeed())
		Expect(db.Create(&userDatamodel.User{ID: 1, UniqueID: "A1", Name: "Ana", Role: "driver"}).Error).To(Succeed())

		service := shift.NewService(shiftPostgres.NewShiftRepository(db), nil, shift.SchemaItinerary, slogger)
		handler = shift.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/add-shift", handler.RecordShift)
		router.Get("/shifts/{user_id}", handler.ListShifts)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("records a shift and lists it exactly once", func() {
		rec := do(http.MethodPost, "/add-shift",
			`{"user_id":1,"shift_number":"A1","kunde":"K","auto":"V1","datum":"2025-03-14","start_time":"08:00","end_time":"16:00"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Schicht erfolgreich hinzugefügt!"))

		rec = do(http.MethodGet, "/shifts/1", "")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var shifts []shift.Shift
		Expect(json.NewDecoder(rec.Body).Decode(&shifts)).To(Succeed())
		Expect(shifts).To(HaveLen(1))
		Expect(shifts[0].ShiftNumber).To(Equal("A1"))
		Expect(shifts[0].Kunde).To(Equal("K"))
		Expect(shifts[0].Auto).To(Equal("V1"))
		Expect(shifts[0].Datum).To(Equal("2025-03-14"))
		Expect(shifts[0].StartTime).To(Equal("08:00"))
		Expect(shifts[0].EndTime).To(Equal("16:00"))
	})

	It("accepts user_id as a string", func() {
		rec := do(http.MethodPost, "/add-shift",
			`{"user_id":"1","shift_number":"A2","kunde":"K","auto":"V1","datum":"2025-03-15","start_time":"06:00","end_time":"14:00"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("answers 400 and writes nothing when a field is missing", func() {
		rec := do(http.MethodPost, "/add-shift", `{"user_id":1,"kunde":"K"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("Alle Felder sind erforderlich!"))

		var count int64
		Expect(db.Model(&shiftDatamodel.Shift{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("answers 400 for a body that is not JSON", func() {
		rec := do(http.MethodPost, "/add-shift", `not json`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("answers [] for a user without shifts", func() {
		rec := do(http.MethodGet, "/shifts/77", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(strings.TrimSpace(rec.Body.String())).To(Equal("[]"))
	})

	It("answers 400 for a non numeric user id", func() {
		rec := do(http.MethodGet, "/shifts/abc", "")
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
