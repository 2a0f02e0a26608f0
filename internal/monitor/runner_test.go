package monitor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRunAllPass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	runner := NewRunner(srv.URL, &out)
	results := runner.Run(context.Background(), []Check{
		{Name: "list", Method: http.MethodGet, Path: "/api/admin/orders", ExpectStatus: http.StatusOK},
	})

	if results.AnyFailed() {
		t.Fatalf("run failed: %+v", results.Checks)
	}
	if results.Passed != 1 {
		t.Errorf("Passed = %d, want 1", results.Passed)
	}
	if !strings.Contains(out.String(), "PASSED") {
		t.Errorf("output missing PASSED line: %s", out.String())
	}
}

func TestRunStatusMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	var out bytes.Buffer
	runner := NewRunner(srv.URL, &out)
	results := runner.Run(context.Background(), []Check{
		{Name: "missing", Method: http.MethodGet, Path: "/api/admin/orders", ExpectStatus: http.StatusOK},
	})

	if !results.AnyFailed() {
		t.Fatal("want failure for 404 against expected 200")
	}
	if got := results.Checks[0].Err; !strings.Contains(got, "Expected status 200 but got 404") {
		t.Errorf("error = %q, want it to contain %q", got, "Expected status 200 but got 404")
	}
}

func TestRunTransportFailureDoesNotAbort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":3}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	// First check points at a closed port, second at the live server.
	dead := NewRunner("http://127.0.0.1:1", &out)
	results := dead.Run(context.Background(), []Check{
		{Name: "dead", Method: http.MethodGet, Path: "/x", ExpectStatus: http.StatusOK},
	})
	if !results.AnyFailed() {
		t.Fatal("want transport failure recorded")
	}

	live := NewRunner(srv.URL, &out)
	results = live.Run(context.Background(), []Check{
		{Name: "dead", Method: http.MethodGet, Path: "/x", ExpectStatus: http.StatusOK},
		{Name: "count", Method: http.MethodGet, Path: "/api/admin/analytics/events/count", ExpectStatus: http.StatusOK},
	})
	if results.Passed != 1 || results.Failed != 1 {
		t.Errorf("Passed/Failed = %d/%d, want 1/1", results.Passed, results.Failed)
	}
}

func TestRunLatencyViolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(30 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	runner := NewRunner(srv.URL, &out)
	runner.budget = 10 * time.Millisecond

	results := runner.Run(context.Background(), []Check{
		{Name: "slow", Method: http.MethodGet, Path: "/", ExpectStatus: http.StatusOK},
	})
	if !results.AnyFailed() {
		t.Fatal("want latency violation")
	}
	if got := results.Checks[0].Err; !strings.Contains(got, "exceeds 10ms threshold") {
		t.Errorf("error = %q, want latency message", got)
	}
}

func TestRunSkippedCountsAsPassed(t *testing.T) {
	var out bytes.Buffer
	runner := NewRunner("http://127.0.0.1:1", &out)
	results := runner.Run(context.Background(), []Check{
		{
			Name:         "single",
			Method:       http.MethodGet,
			PathFunc:     func() (string, bool) { return "", true },
			ExpectStatus: http.StatusOK,
		},
	})
	if results.AnyFailed() {
		t.Fatal("skipped check must not fail the run")
	}
	if !results.Checks[0].Skipped {
		t.Error("check should be marked skipped")
	}
}

func TestDefaultChecksChainIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/orders":
			w.Write([]byte(`[{"id":"o-1","status":"PENDING"}]`))
		case "/api/admin/orders/o-1":
			w.Write([]byte(`{"id":"o-1","status":"PENDING"}`))
		case "/api/admin/inventory":
			w.Write([]byte(`{"content":[{"sku":"LAPTOP-001","productName":"Laptop","qty":5}],"totalElements":1}`))
		case "/api/admin/inventory/LAPTOP-001":
			w.Write([]byte(`{"sku":"LAPTOP-001","productName":"Laptop","stock":5}`))
		case "/api/admin/fulfillments":
			w.Write([]byte(`[{"id":7,"orderId":"o-1","status":"SCHEDULED"}]`))
		case "/api/admin/fulfillments/7":
			w.Write([]byte(`{"id":7,"orderId":"o-1","status":"SCHEDULED"}`))
		case "/api/admin/analytics/events/count":
			w.Write([]byte(`{"count":42}`))
		case "/api/admin/analytics/summary":
			w.Write([]byte(`{"date":"2024-01-15","totalOrders":1,"totalAmount":50000}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	runner := NewRunner(srv.URL, &out)
	results := runner.Run(context.Background(), DefaultChecks())
	runner.Report(results)

	if results.AnyFailed() {
		t.Fatalf("run failed:\n%s", out.String())
	}
	if results.Passed != 8 {
		t.Errorf("Passed = %d, want 8", results.Passed)
	}
	if !strings.Contains(out.String(), "Success Rate: 100.00%") {
		t.Errorf("summary missing success rate: %s", out.String())
	}
}

func TestDefaultChecksSkipSinglesOnEmptyBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/orders", "/api/admin/inventory", "/api/admin/fulfillments":
			w.Write([]byte(`[]`))
		case "/api/admin/analytics/events/count":
			w.Write([]byte(`{"count":0}`))
		case "/api/admin/analytics/summary":
			w.Write([]byte(`{"date":"2024-01-15","totalOrders":0,"totalAmount":0}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	results := NewRunner(srv.URL, &out).Run(context.Background(), DefaultChecks())

	if results.AnyFailed() {
		t.Fatalf("run failed:\n%s", out.String())
	}
	skipped := 0
	for _, c := range results.Checks {
		if c.Skipped {
			skipped++
		}
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3 single-record checks skipped", skipped)
	}
}

func TestWaitReady(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if err := WaitReady(context.Background(), srv.URL, 10*time.Second); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if calls < 2 {
		t.Errorf("calls = %d, want at least 2", calls)
	}
}
