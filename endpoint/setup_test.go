package endpoint_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/adiyatma/idp-dashboard/config"
	"github.com/adiyatma/idp-dashboard/endpoint"
	"github.com/adiyatma/idp-dashboard/eventlog"
	"github.com/adiyatma/idp-dashboard/fusionauth"
	"github.com/adiyatma/idp-dashboard/middleware"
	"github.com/adiyatma/idp-dashboard/util"
	"github.com/gin-gonic/gin"
)

// TestMain sets up consistent test configuration for all tests in the
// endpoint_test package. This prevents test order dependency issues caused by
// the singleton config pattern.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "test-secret-123")
	os.Setenv("GINMODE", "release")

	util.SetJWTSecret("test-secret-123")

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	os.Exit(m.Run())
}

// newEventRouter builds a router with the webhook ingestion routes backed by
// a file store in a per-test temp dir.
func newEventRouter(t *testing.T) *gin.Engine {
	t.Helper()
	journal := eventlog.NewJournal(eventlog.NewFileStore(t.TempDir()), eventlog.DefaultCap)
	dispatcher := eventlog.NewDispatcher(journal)

	r := gin.New()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.EventLogMiddleware(dispatcher))
	r.POST("/api/webhooks/fusionauth", endpoint.ReceiveWebhook)
	r.GET("/api/webhooks/fusionauth", endpoint.ListEvents)
	return r
}

// newProxyRouter builds a router with the FusionAuth proxy routes wired to
// the given client.
func newProxyRouter(client *fusionauth.Client) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.FusionAuthMiddleware(client))
	api := r.Group("/api")
	{
		api.GET("/me", endpoint.Me)
		api.GET("/tenants", endpoint.ListTenants)
		api.GET("/applications", endpoint.ListApplications)
		api.GET("/users/count", endpoint.CountUsers)
		api.GET("/mau", endpoint.MonthlyActiveUsers)
		api.GET("/system", endpoint.SystemOverview)
		api.GET("/login-records", endpoint.ListLoginRecords)
		api.GET("/logs/audit", endpoint.ListAuditLogs)
		api.GET("/logs/webhooks", endpoint.ListWebhookLogs)
	}
	return r
}

type requestSpec struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

func performRequest(t *testing.T, r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	setJSONHeader := false
	switch v := spec.body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(v)
		setJSONHeader = true
	default:
		b, _ := json.Marshal(spec.body)
		reader = strings.NewReader(string(b))
		setJSONHeader = true
	}

	req := httptest.NewRequest(spec.method, spec.path, reader)
	if setJSONHeader {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range spec.headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("response is not JSON: %v\nbody: %s", err, w.Body.String())
		}
	}
	return w, response
}

func doGET(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	return performRequest(t, r, requestSpec{method: http.MethodGet, path: path})
}
