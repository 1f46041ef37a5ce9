package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/service"
	"github.com/ikkim/hubline-admin/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBulkService struct {
	actions []service.BulkAction
	actor   service.Actor
}

func (s *stubBulkService) BulkApprove(actions []service.BulkAction, actor service.Actor) service.BulkResult {
	s.actions, s.actor = actions, actor
	return service.BulkResult{SuccessCount: len(actions), Errors: []string{}}
}

func (s *stubBulkService) BulkReject(actions []service.BulkAction, actor service.Actor) service.BulkResult {
	return s.BulkApprove(actions, actor)
}

// withAdmin stands in for the auth middleware
func withAdmin(c *gin.Context) {
	c.Set(middleware.UserIDKey, "admin-1")
	c.Set(middleware.UserNameKey, "Ops Admin")
	c.Next()
}

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBulkController(t *testing.T) {
	stub := &stubBulkService{}
	ctrl := NewBulkController(stub)
	r := gin.New()
	r.POST("/bulk/approve", withAdmin, ctrl.BulkApprove)

	w := postJSON(t, r, "/bulk/approve", map[string]interface{}{
		"items": []map[string]string{
			{"kind": "riders", "entity_id": "r-1"},
			{"kind": "hubs", "entity_id": "h-1"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, stub.actions, 2)
	assert.Equal(t, model.KindRider, stub.actions[0].Kind)
	assert.Equal(t, model.KindBusinessHub, stub.actions[1].Kind)
	assert.Equal(t, service.Actor{ID: "admin-1", Name: "Ops Admin"}, stub.actor)

	var result service.BulkResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.SuccessCount)
}

func TestBulkController_RejectsBadRequests(t *testing.T) {
	stub := &stubBulkService{}
	r := gin.New()
	r.POST("/bulk/approve", withAdmin, NewBulkController(stub).BulkApprove)

	tooMany := make([]map[string]string, maxBulkItems+1)
	for i := range tooMany {
		tooMany[i] = map[string]string{"kind": "rider", "entity_id": "r"}
	}

	tests := []struct {
		name string
		body interface{}
	}{
		{"no items", map[string]interface{}{}},
		{"empty items", map[string]interface{}{"items": []interface{}{}}},
		{"missing entity id", map[string]interface{}{"items": []map[string]string{{"kind": "rider"}}}},
		{"over limit", map[string]interface{}{"items": tooMany}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/bulk/approve", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Nil(t, stub.actions)
}

func TestKindParam(t *testing.T) {
	r := gin.New()
	r.GET("/entities/:kind", func(c *gin.Context) {
		kind, ok := kindParam(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, string(kind))
	})

	for path, want := range map[string]string{
		"/entities/stations":      "loading_station",
		"/entities/business_hubs": "business_hub",
		"/entities/shareholder":   "shareholder",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Body.String())
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/entities/warehouses", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryTime(t *testing.T) {
	r := gin.New()
	var got []string
	r.GET("/t", func(c *gin.Context) {
		ts, err := queryTime(c, "from")
		switch {
		case err != nil:
			got = append(got, "error")
		case ts == nil:
			got = append(got, "none")
		default:
			got = append(got, ts.UTC().Format("2006-01-02T15:04"))
		}
	})

	for _, q := range []string{"", "?from=2026-03-01", "?from=2026-03-01T10:30:00Z", "?from=yesterday"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/t"+q, nil))
	}
	assert.Equal(t, []string{"none", "2026-03-01T00:00", "2026-03-01T10:30", "error"}, got)
}

func TestQueryLimit(t *testing.T) {
	r := gin.New()
	var got []int
	r.GET("/t", func(c *gin.Context) {
		got = append(got, queryLimit(c, 20, maxListLimit))
	})

	for _, q := range []string{"", "?limit=35", "?limit=100", "?limit=100000000", "?limit=-4", "?limit=many"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/t"+q, nil))
	}
	assert.Equal(t, []int{20, 35, 100, 100, 20, 20}, got)
}

func TestWithAuditOutcome(t *testing.T) {
	entry := &model.AuditLog{ID: 7}
	ok := withAuditOutcome(gin.H{}, service.AuditOutcome{Entry: entry})
	assert.Equal(t, entry, ok["audit_log"])
	assert.NotContains(t, ok, "audit_warning")

	failed := withAuditOutcome(gin.H{}, service.AuditOutcome{Err: errors.New("db down")})
	assert.NotContains(t, failed, "audit_log")
	assert.NotEmpty(t, failed["audit_warning"])
}
