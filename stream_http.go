package mathtok

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// HTTPConvertRequest configures HTTPConvert.
type HTTPConvertRequest struct {
	URL     string
	Client  *http.Client
	Format  Format
	Options []ConvertOption
}

// HTTPConvert fetches a document over HTTP(S) and converts it. The response
// Content-Type is used for HTML charset detection.
func HTTPConvert(ctx context.Context, req HTTPConvertRequest) (Result, error) {
	if req.URL == "" {
		return Result{}, fmt.Errorf("convert http: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("convert http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return Result{}, fmt.Errorf("convert http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "application/mathml+xml, application/xhtml+xml, text/html;q=0.9, */*;q=0.5")
	resp, err := client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("convert http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("convert http: status %s", resp.Status)
	}
	contentType := resp.Header.Get("Content-Type")
	format := req.Format
	if format == FormatAuto {
		format = formatForContentType(contentType)
	}
	return Convert(ConvertRequest{
		Reader:      resp.Body,
		Format:      format,
		ContentType: contentType,
		Options:     req.Options,
	})
}

func formatForContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatAuto
	}
	switch {
	case mediaType == "text/html":
		return FormatHTML
	case strings.HasSuffix(mediaType, "+xml"), mediaType == "text/xml", mediaType == "application/xml":
		return FormatXML
	default:
		return FormatAuto
	}
}
