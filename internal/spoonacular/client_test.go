package spoonacular

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestGenerateMealPlanQuery(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.GenerateMealPlan(context.Background(), GenerateParams{
		TimeFrame:      "day",
		TargetCalories: 2000,
		Diet:           "vegetarian",
	})
	if err != nil {
		t.Fatalf("GenerateMealPlan() error = %v", err)
	}

	want := url.Values{
		"timeFrame":      {"day"},
		"targetCalories": {"2000"},
		"diet":           {"vegetarian"},
		"apiKey":         {"test-key"},
	}
	if len(gotQuery) != len(want) {
		t.Errorf("query has %d params, want %d: %v", len(gotQuery), len(want), gotQuery)
	}
	for key, values := range want {
		if got := gotQuery.Get(key); got != values[0] {
			t.Errorf("query[%s] = %q, want %q", key, got, values[0])
		}
	}
}

func TestGenerateMealPlanOmitsUnsetParams(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	if _, err := c.GenerateMealPlan(context.Background(), GenerateParams{TimeFrame: "week"}); err != nil {
		t.Fatalf("GenerateMealPlan() error = %v", err)
	}

	if len(gotQuery) != 2 {
		t.Errorf("query has %d params, want timeFrame and apiKey only: %v", len(gotQuery), gotQuery)
	}
	for _, key := range []string{"targetCalories", "diet", "exclude"} {
		if _, ok := gotQuery[key]; ok {
			t.Errorf("query contains %s for an unset parameter", key)
		}
	}
}

func TestGenerateMealPlanMissingKeySkipsNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.GenerateMealPlan(context.Background(), GenerateParams{TimeFrame: "day"})
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("GenerateMealPlan() error = %v, want ErrAPIKeyMissing", err)
	}
	if hits != 0 {
		t.Errorf("upstream hit %d times, want 0", hits)
	}
}

func TestGenerateMealPlanReturnsRawBody(t *testing.T) {
	body := `{"meals": [{"id": 1}], "customField": {"nested": [1, 2, 3]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	raw, err := c.GenerateMealPlan(context.Background(), GenerateParams{TimeFrame: "week"})
	if err != nil {
		t.Fatalf("GenerateMealPlan() error = %v", err)
	}
	if string(raw) != body {
		t.Errorf("GenerateMealPlan() = %s, want the body byte for byte", raw)
	}
}

func TestGenerateMealPlanStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"status": "failure", "message": "daily quota exceeded"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.GenerateMealPlan(context.Background(), GenerateParams{TimeFrame: "day"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("GenerateMealPlan() error = %T, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusPaymentRequired {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusPaymentRequired)
	}
	wantMsg := "GET /mealplanner/generate returned HTTP 402:"
	if !strings.Contains(err.Error(), wantMsg) || !strings.Contains(err.Error(), "daily quota exceeded") {
		t.Errorf("error = %q, want it to contain %q and the body", err, wantMsg)
	}
}

func TestGenerateMealPlanInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	_, err := c.GenerateMealPlan(context.Background(), GenerateParams{TimeFrame: "day"})

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("GenerateMealPlan() error = %T, want *DecodeError", err)
	}
}

func TestGenerateMealPlanScrubsKeyFromTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "sekret-key-123")
	_, err := c.GenerateMealPlan(context.Background(), GenerateParams{TimeFrame: "day"})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("GenerateMealPlan() error = %T, want *TransportError", err)
	}
	if strings.Contains(err.Error(), "sekret-key-123") {
		t.Errorf("error leaks the API key: %q", err)
	}
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	c := NewClient("", "test-key")
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}

	c = NewClient("http://localhost:9400/", "test-key")
	if c.baseURL != "http://localhost:9400" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
}
