package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/http/middleware"
	"github.com/tbourn/priority-radar/internal/repo"
	"github.com/tbourn/priority-radar/internal/services"
	"github.com/tbourn/priority-radar/internal/usecase"
)

const apiBase = "/api/v1"

// refNow is Thursday 2026-10-15; with a Sunday week start the week runs
// 2026-10-11..2026-10-17.
var refNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	db *gorm.DB
	r  *gin.Engine
}

// newEnv wires real services over a private in-memory database with users
// user-1 and user-2, behind the identity and idempotency middleware.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repo.OpenSQLite(fmt.Sprintf("file:h_%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repo.CreateUsers(context.Background(), db,
		&domain.User{ID: "user-1", Name: "Ada Lovelace", Role: "Engineer"},
		&domain.User{ID: "user-2", Name: "Grace Hopper", Role: "Lead"},
	); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	cal := calendar.New(calendar.Fixed(refNow), time.UTC, time.Sunday)
	priorities := services.NewPriorityService(db, cal, nil)
	checkIns := services.NewCheckInService(db, cal, nil)
	h := New(Deps{
		Priorities: priorities,
		CheckIns:   checkIns,
		Submitter:  usecase.NewSubmitter(db, checkIns, priorities, nil),
		FOIA:       services.NewFOIAService(db, cal, nil),
		Users:      services.NewUserService(db, nil),
		Calendar:   cal,
		DB:         db,
	})

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Identity("user-1"),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, IdempotencyLookup(db)),
	)
	h.Register(r.Group(apiBase))
	return &testEnv{db: db, r: r}
}

// do sends a request to path under the API base. body may be nil, a raw
// string, or any JSON-encodable value; hdr holds header name/value pairs.
func (e *testEnv) do(method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, apiBase+path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v; body=%s", v, err, w.Body.String())
	}
	return v
}

// expectError asserts the status and envelope code of an error response.
func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d; want %d; body=%s", w.Code, status, w.Body.String())
	}
	if got := decode[ErrorResponse](t, w); got.Code != code || got.RequestID == "" {
		t.Fatalf("error = %+v; want code %q with request id", got, code)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d; want %d; body=%s", w.Code, status, w.Body.String())
	}
}
