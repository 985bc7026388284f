package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAPIKeyAuthExactMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), APIKeyAuth("secret"))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"exact match passes", "secret", http.StatusOK},
		{"missing key rejected", "", http.StatusUnauthorized},
		{"prefix of secret rejected", "secr", http.StatusUnauthorized},
		{"secret with suffix rejected", "secret2", http.StatusUnauthorized},
		{"case difference rejected", "Secret", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.key != "" {
				req.Header.Set("X-API-Key", tc.key)
			}

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		if c.GetString("request_id") == "" {
			t.Error("request_id missing from context")
		}
		c.String(http.StatusOK, "pong")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if resp.Header().Get("X-Request-ID") == "" {
		t.Fatal("X-Request-ID header not set")
	}
}

func TestKeyPrefixTruncation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "short"},
		{"12345678", "12345678"},
		{"123456789abcdef", "12345678"},
	}

	for _, tc := range cases {
		if got := keyPrefix(tc.in); got != tc.want {
			t.Errorf("keyPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
