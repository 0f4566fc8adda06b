package mathtok

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func BenchmarkConvertQuadratic(b *testing.B) {
	data := readTestdata(b, "quadratic.xml")
	b.ReportAllocs()
	reader := bytes.NewReader(data)
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		if _, err := Convert(ConvertRequest{Reader: reader, Format: FormatXML}); err != nil {
			b.Fatalf("convert: %v", err)
		}
	}
}

func BenchmarkConvertHTML(b *testing.B) {
	data := readTestdata(b, "article.html")
	b.ReportAllocs()
	b.ResetTimer()
	reader := bytes.NewReader(data)
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		if _, err := Convert(ConvertRequest{Reader: reader, Format: FormatHTML}); err != nil {
			b.Fatalf("convert: %v", err)
		}
	}
}

func BenchmarkConvertAll(b *testing.B) {
	data := readTestdata(b, "quadratic.xml")
	for _, jobs := range []int{1, 4} {
		b.Run("jobs"+strconv.Itoa(jobs), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				inputs := make([]Input, 16)
				for j := range inputs {
					inputs[j] = ReaderInput("q", bytes.NewReader(data), FormatXML)
				}
				if _, err := ConvertAll(context.Background(), inputs, jobs); err != nil {
					b.Fatalf("convert all: %v", err)
				}
			}
		})
	}
}

func BenchmarkHTTPConvert(b *testing.B) {
	data := readTestdata(b, "quadratic.xml")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/mathml+xml")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := HTTPConvert(context.Background(), HTTPConvertRequest{URL: server.URL}); err != nil {
			b.Fatalf("convert http: %v", err)
		}
	}
}
