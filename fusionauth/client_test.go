package fusionauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientNotConfigured(t *testing.T) {
	client := NewClient("", "")
	if client.Configured() {
		t.Fatal("empty client reports configured")
	}
	if _, err := client.Tenants(context.Background()); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := client.SystemOverview(context.Background()); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClientSendsAuthAndTenantHeaders(t *testing.T) {
	var gotAuth, gotTenant, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTenant = r.Header.Get(TenantHeader)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"total":5}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "api-key-123")
	count, err := client.CountUsers(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
	// FusionAuth wants the raw API key, not a Bearer scheme.
	if gotAuth != "api-key-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotTenant != "t-1" {
		t.Errorf("tenant header = %q", gotTenant)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestClientNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key")
	if _, err := client.Tenants(context.Background()); err == nil {
		t.Fatal("expected error on 401 response")
	}
}

func TestTenantsCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"tenants":[{"id":"t-1","name":"Alpha"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	for i := 0; i < 3; i++ {
		tenants, err := client.Tenants(context.Background())
		if err != nil {
			t.Fatalf("tenants: %v", err)
		}
		if len(tenants) != 1 || tenants[0].Name != "Alpha" {
			t.Fatalf("unexpected tenants: %+v", tenants)
		}
	}
	if hits != 1 {
		t.Errorf("upstream hit %d times, want 1 (cached)", hits)
	}
}

func TestSystemOverviewFanIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.WriteHeader(http.StatusOK)
		case "/api/status":
			w.Write([]byte(`{"version":"1.50.0","runtimeMode":"production","database":{"state":"Healthy"},"search":{"state":"Degraded"}}`))
		case "/api/system/version":
			// Version endpoint unavailable forces the status fallback.
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	overview, err := client.SystemOverview(context.Background())
	if err != nil {
		t.Fatalf("system overview: %v", err)
	}
	if !overview.Up {
		t.Error("expected Up with healthy endpoint")
	}
	if overview.Version != "1.50.0" {
		t.Errorf("version = %q, want status fallback 1.50.0", overview.Version)
	}
	if overview.DB != "Healthy" || overview.Search != "Degraded" {
		t.Errorf("db/search = %q/%q", overview.DB, overview.Search)
	}
	if overview.RuntimeMode != "production" {
		t.Errorf("runtimeMode = %q", overview.RuntimeMode)
	}
}

func TestSystemOverviewDownNotCached(t *testing.T) {
	healthCode := http.StatusInternalServerError
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.WriteHeader(healthCode)
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	overview, err := client.SystemOverview(context.Background())
	if err != nil {
		t.Fatalf("system overview: %v", err)
	}
	if overview.Up {
		t.Fatal("expected Up=false on failing health check")
	}

	// A recovered backend must be visible immediately; down results are
	// never cached.
	healthCode = http.StatusOK
	overview, err = client.SystemOverview(context.Background())
	if err != nil {
		t.Fatalf("system overview after recovery: %v", err)
	}
	if !overview.Up {
		t.Error("expected Up=true after recovery")
	}
}

func TestMonthlyActiveUserReportQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"total":10,"monthlyActiveUsers":[{"count":10,"interval":1}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	report, err := client.MonthlyActiveUserReport(context.Background(), "", 1000, 2000)
	if err != nil {
		t.Fatalf("mau report: %v", err)
	}
	if report.Total != 10 || len(report.Monthly) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if gotQuery != "start=1000&end=2000" {
		t.Errorf("query = %q", gotQuery)
	}
}
