package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearProviders makes sure no provider from the host environment is used.
func clearProviders(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TRANSLATE_COM_API_KEY", "LIBRETRANSLATE_URL", "OPENAI_API_KEY", "REDIS_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stdout, "tarjama ") {
		t.Errorf("expected version output, got: %s", stdout)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if _, _, err := runCLI(t, "", "frobnicate"); err == nil {
		t.Error("expected error for an unknown command")
	}
}

func TestRun_TranslateTransliteratesWithoutProviders(t *testing.T) {
	clearProviders(t)

	stdout, _, err := runCLI(t, "", "translate", "Khalid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "خاليد" {
		t.Errorf("expected transliteration, got %q", stdout)
	}
}

func TestRun_TranslateNoFallback(t *testing.T) {
	clearProviders(t)

	_, _, err := runCLI(t, "", "translate", "--no-fallback", "Khalid")
	if err == nil {
		t.Fatal("expected error without providers or fallback")
	}
	if !strings.Contains(err.Error(), "no translation providers configured") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_TranslateEmptyStdin(t *testing.T) {
	clearProviders(t)

	stdout, _, err := runCLI(t, "   \n", "translate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "" {
		t.Errorf("expected empty output, got %q", stdout)
	}
}

func TestRun_TranslateJSONOverLibreTranslate(t *testing.T) {
	clearProviders(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText":"مشاريعنا"}`))
	}))
	defer srv.Close()
	t.Setenv("LIBRETRANSLATE_URL", srv.URL)

	stdout, _, err := runCLI(t, "Our Projects\n", "translate", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out translateOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if out.Text != "Our Projects" || out.TranslatedText != "مشاريعنا" {
		t.Errorf("unexpected output: %+v", out)
	}
	if out.Provider != "libretranslate" || out.Transliterated {
		t.Errorf("expected a provider translation, got %+v", out)
	}
}

func TestRun_HTMLDryRun(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "about.html")
	os.WriteFile(inputFile, []byte(`<h1>Board of Directors</h1><p>Chairman</p><p>2024</p>`), 0o644)

	stdout, _, err := runCLI(t, "", "html", "--dry-run", "--json", inputFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		InputFile string   `json:"input_file"`
		NodeCount int      `json:"node_count"`
		Texts     []string `json:"texts"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if out.InputFile != "about.html" || out.NodeCount != 2 {
		t.Errorf("unexpected dry run: %+v", out)
	}
}

func TestRun_HTMLOutputFile(t *testing.T) {
	clearProviders(t)

	dir := t.TempDir()
	inputFile := filepath.Join(dir, "team.html")
	outputFile := filepath.Join(dir, "team.ar.html")
	os.WriteFile(inputFile, []byte(`<ul><li>Sasha</li></ul>`), 0o644)

	_, stderr, err := runCLI(t, "", "html", inputFile, "-o", outputFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != `<ul><li>ساشا</li></ul>` {
		t.Errorf("unexpected output: %s", data)
	}
	if !strings.Contains(stderr, "Transliterated:  1") {
		t.Errorf("expected stats on stderr, got: %s", stderr)
	}
}

func TestRun_HTMLMissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "html", "--dry-run", filepath.Join(t.TempDir(), "missing.html"))
	if err == nil || !strings.Contains(err.Error(), "reading file") {
		t.Errorf("expected a read error, got %v", err)
	}
}
