package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMethodOverride(t *testing.T) {
	cases := []struct {
		name   string
		method string
		target string
		header string
		form   url.Values
		want   string
	}{
		{"FormField", http.MethodPost, "/x", "", url.Values{"_method": {"put"}}, http.MethodPut},
		{"Query", http.MethodPost, "/x?_method=DELETE", "", nil, http.MethodDelete},
		{"Header", http.MethodPost, "/x", "PATCH", nil, http.MethodPatch},
		{"IgnoreUnknown", http.MethodPost, "/x?_method=TRACE", "", nil, http.MethodPost},
		{"OnlyPost", http.MethodGet, "/x?_method=DELETE", "", nil, http.MethodGet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			h := methodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Method
			}))
			var req *http.Request
			if tc.form != nil {
				req = httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(tc.method, tc.target, nil)
			}
			if tc.header != "" {
				req.Header.Set(methodOverrideHeader, tc.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestMethodOverride_FormStillReadable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var title string
	r.PUT("/x", func(c *gin.Context) {
		title = c.PostForm("title")
		c.Status(http.StatusNoContent)
	})

	form := url.Values{"_method": {"PUT"}, "title": {"kept"}}
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	methodOverride(r).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if title != "kept" {
		t.Errorf("expected form value kept, got %q", title)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	t.Run("Generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(requestIDHeader)
		if len(id) != 36 || w.Body.String() != id {
			t.Errorf("unexpected request id %q (body %q)", id, w.Body.String())
		}
	})

	t.Run("Propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		r.ServeHTTP(w, req)
		if w.Header().Get(requestIDHeader) != "abc-123" {
			t.Errorf("expected propagated id, got %q", w.Header().Get(requestIDHeader))
		}
	})
}

func TestExcerpt(t *testing.T) {
	excerpt := templateFuncs["excerpt"].(func(string, int) string)
	if got := excerpt("<b>hello</b> world", 100); got != "hello world" {
		t.Errorf("expected tags stripped, got %q", got)
	}
	if got := excerpt("abcdef", 3); got != "abc…" {
		t.Errorf("expected truncation, got %q", got)
	}
	if got := excerpt("Tom & Jerry's <i>show</i>", 100); got != "Tom & Jerry's show" {
		t.Errorf("expected entities decoded once, got %q", got)
	}
	if got := excerpt("it's", 3); got != "it'…" {
		t.Errorf("expected truncation on decoded text, got %q", got)
	}
}
