package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParsePageDefaults(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 20},
		{"page=3&limit=50", 3, 50},
		{"page=abc&limit=xyz", 1, 20},
		{"page=0&limit=-5", 1, 20},
		{"page=2", 2, 20},
	}
	for _, tc := range cases {
		p := parsePage(testContext(t, tc.query))
		if p.Page != tc.wantPage || p.Limit != tc.wantLimit {
			t.Fatalf("query %q: got page=%d limit=%d, want page=%d limit=%d",
				tc.query, p.Page, p.Limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestFilterParamAll(t *testing.T) {
	c := testContext(t, "restaurantId=all&outcome=MISSED")
	if got := filterParam(c, "restaurantId"); got != "" {
		t.Fatalf("expected 'all' to clear the filter, got %q", got)
	}
	if got := filterParam(c, "outcome"); got != "MISSED" {
		t.Fatalf("expected MISSED, got %q", got)
	}
	if got := filterParam(c, "missing"); got != "" {
		t.Fatalf("expected empty for absent param, got %q", got)
	}
}

func TestParseTimeParam(t *testing.T) {
	if got := parseTimeParam(""); got != nil {
		t.Fatalf("expected nil for empty value")
	}
	if got := parseTimeParam("not-a-date"); got != nil {
		t.Fatalf("expected nil for malformed value")
	}

	got := parseTimeParam("2025-03-10")
	if got == nil || !got.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected bare date parse: %v", got)
	}

	got = parseTimeParam("2025-03-10T09:30:00Z")
	if got == nil || got.Hour() != 9 {
		t.Fatalf("unexpected RFC3339 parse: %v", got)
	}
}

func TestBearerToken(t *testing.T) {
	c := testContext(t, "")
	c.Request.Header.Set("Authorization", "Bearer abc123")
	if got := bearerToken(c); got != "abc123" {
		t.Fatalf("expected abc123, got %q", got)
	}

	c = testContext(t, "")
	if got := bearerToken(c); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
