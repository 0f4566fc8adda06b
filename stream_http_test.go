package mathtok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/mathml+xml")
		_, _ = w.Write([]byte(`<math><msup><mi>x</mi><mn>2</mn></msup></math>`))
	}))
	defer srv.Close()

	res, err := HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:     srv.URL,
		Options: []ConvertOption{WithMathDelimiters(true)},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Tokens != "[math] [sup] x 2 [end_sup] [end_math]\n\n" {
		t.Fatalf("unexpected tokens: %q", res.Tokens)
	}
}

func TestHTTPConvertUsesContentTypeCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-7")
		_, _ = w.Write([]byte("<p><math><mi>\xf0</mi></math></p>"))
	}))
	defer srv.Close()

	res, err := HTTPConvert(context.Background(), HTTPConvertRequest{URL: srv.URL})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Tokens != "π" {
		t.Fatalf("unexpected tokens: %q", res.Tokens)
	}
}

func TestHTTPConvertErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := HTTPConvert(context.Background(), HTTPConvertRequest{URL: srv.URL}); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := HTTPConvert(context.Background(), HTTPConvertRequest{}); err == nil {
		t.Fatalf("expected error for empty URL")
	}
	if _, err := HTTPConvert(context.Background(), HTTPConvertRequest{URL: "ftp://example.com/x.mml"}); err == nil || !strings.Contains(err.Error(), "unsupported scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestFormatForContentType(t *testing.T) {
	cases := map[string]Format{
		"text/html; charset=utf-8": FormatHTML,
		"application/xhtml+xml":    FormatXML,
		"application/mathml+xml":   FormatXML,
		"text/xml":                 FormatXML,
		"text/plain":               FormatAuto,
		"":                         FormatAuto,
	}
	for contentType, want := range cases {
		if got := formatForContentType(contentType); got != want {
			t.Fatalf("formatForContentType(%q)=%s want %s", contentType, got, want)
		}
	}
}
