package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/mathtok"
)

const fracDoc = `<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>`

func TestRunFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.mml")
	if err := os.WriteFile(path, []byte(fracDoc), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/mathml+xml")
		_, _ = w.Write([]byte(`<math><msqrt><mi>x</mi></msqrt></math>`))
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{path, "file://" + path, srv.URL}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	want := "[math] [frac] a b [end_frac] [end_math]\n\n" +
		"[math] [frac] a b [end_frac] [end_math]\n\n" +
		"[math] [sqrt] x [end_sqrt] [end_math]\n\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", stdout.String(), want)
	}
}

func TestRunStdinWithoutDelimiters(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--math-delimiters=false"}, strings.NewReader(fracDoc), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "[frac] a b [end_frac]\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRunLogsDiagnosticsWithInputName(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-"}, strings.NewReader(`<math><mfoo>x</mfoo><mi>y</mi></math>`), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	logged := stderr.String()
	for _, want := range []string{"level=warn", "input=-", "kind=unknown_element", "element=mfoo"} {
		if !strings.Contains(logged, want) {
			t.Fatalf("expected %q in log output %q", want, logged)
		}
	}
	if got := stdout.String(); got != "[math] y [end_math]\n\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRunQuietSuppressesDiagnostics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-q"}, strings.NewReader(`<math><mfoo/></math>`), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected no log output, got %q", stderr.String())
	}
}

func TestRunStrictFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--strict", "--log-format", "json"}, strings.NewReader(`<math><mfoo/></math>`), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), `"level":"error"`) {
		t.Fatalf("expected json error record, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", stdout.String())
	}
}

func TestRunInvalidFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--format", "pdf"}, strings.NewReader(""), &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit code 2 for bad format, got %d", code)
	}
	if code := run([]string{"--log-format", "xml"}, strings.NewReader(""), &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit code 2 for bad log format, got %d", code)
	}
}

func TestMakeInputFormatOverride(t *testing.T) {
	in, err := makeInput("doc.txt", mathtok.FormatHTML, nil)
	if err != nil {
		t.Fatalf("makeInput: %v", err)
	}
	if _, ok := in.(fileInput); !ok {
		t.Fatalf("expected fileInput for explicit format, got %T", in)
	}
	if _, err := makeInput("  ", mathtok.FormatAuto, nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestWriteTokensWraps(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTokens(&buf, "[frac] alpha beta [end_frac]", 12); err != nil {
		t.Fatalf("writeTokens: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		if len(line) > 12 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
	if strings.Join(strings.Fields(buf.String()), " ") != "[frac] alpha beta [end_frac]" {
		t.Fatalf("wrapping changed tokens: %q", buf.String())
	}
}

func TestResolveWidth(t *testing.T) {
	var buf bytes.Buffer
	if got := resolveWidth(40, &buf); got != 40 {
		t.Fatalf("resolveWidth(40)=%d", got)
	}
	if got := resolveWidth(-1, &buf); got != 0 {
		t.Fatalf("resolveWidth(-1)=%d", got)
	}
	if got := resolveWidth(0, &buf); got != 0 {
		t.Fatalf("resolveWidth(0) on non-terminal=%d", got)
	}
}
