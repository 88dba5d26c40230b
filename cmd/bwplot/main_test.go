// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwperf/bwperf/bwchart"
	"github.com/bwperf/bwperf/bwfmt"
)

// stubOutputs replaces the window and the web server for the duration
// of a test and records what they were asked to show.
type stubOutputs struct {
	shown  []*bwchart.Figure
	served []string
}

func stub(t *testing.T) *stubOutputs {
	t.Helper()
	s := new(stubOutputs)
	oldDisplay, oldServe := display, serve
	display = func(fig *bwchart.Figure) error {
		s.shown = append(s.shown, fig)
		return nil
	}
	serve = func(addr string, fig *bwchart.Figure, stderr io.Writer) error {
		s.served = append(s.served, addr)
		return nil
	}
	t.Cleanup(func() { display, serve = oldDisplay, oldServe })
	return s
}

// input copies testdata/name into a fresh directory and returns its
// path.
func input(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func files(t *testing.T, dir string) []string {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names
}

func TestUsage(t *testing.T) {
	s := stub(t)
	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr, []string{"bwplot"}); code != 0 {
		t.Errorf("exit status %d, want 0", code)
	}
	if want := "Usage: bwplot <result_file.csv> [<display/png>]\n"; stdout.String() != want {
		t.Errorf("stdout %q, want %q", stdout.String(), want)
	}
	if len(s.shown) != 0 {
		t.Errorf("usage displayed a figure")
	}
}

func TestMissingFile(t *testing.T) {
	s := stub(t)
	path := filepath.Join(t.TempDir(), "nope.csv")
	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr, []string{"bwplot", path, "png"}); code == 0 {
		t.Errorf("exit status 0 for a missing file")
	}
	if !strings.Contains(stderr.String(), path) {
		t.Errorf("stderr %q does not name %s", stderr.String(), path)
	}
	if len(s.shown) != 0 {
		t.Errorf("displayed a figure for a missing file")
	}

	err := bwplot(&stdout, &stderr, []string{"bwplot", path})
	var lerr *bwfmt.LoadError
	if !errors.As(err, &lerr) {
		t.Errorf("got %v, want *bwfmt.LoadError", err)
	}
}

func TestMissingColumn(t *testing.T) {
	stub(t)
	path := input(t, "noschema.csv")
	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr, []string{"bwplot", path, "png"}); code == 0 {
		t.Errorf("exit status 0 without cycle columns")
	}
	if !strings.Contains(stderr.String(), "read_cycles") {
		t.Errorf("stderr %q does not name the missing column", stderr.String())
	}
	if _, err := os.Stat(path + ".png"); err == nil {
		t.Errorf("wrote %s.png for a bad input", path)
	}
}

func TestPNG(t *testing.T) {
	s := stub(t)
	path := input(t, "minimal.csv")
	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr, []string{"bwplot", path, "png"}); code != 0 {
		t.Fatalf("exit status %d: %s", code, stderr.String())
	}
	if len(s.shown) != 0 || len(s.served) != 0 {
		t.Errorf("png output also displayed the figure")
	}
	f, err := os.Open(path + ".png")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1920 || cfg.Height != 1080 {
		t.Errorf("image is %dx%d, want 1920x1080", cfg.Width, cfg.Height)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
}

func TestDisplay(t *testing.T) {
	for _, test := range []struct {
		name    string
		args    []string
		warning string
	}{
		{"default", nil, ""},
		{"display", []string{"display"}, ""},
		{"unknown", []string{"svg"}, "Unknown output format: svg. Defaulting to display.\n"},
		{"case matters", []string{"PNG"}, "Unknown output format: PNG. Defaulting to display.\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			s := stub(t)
			path := input(t, "minimal.csv")
			var stdout, stderr bytes.Buffer
			args := append([]string{"bwplot", path}, test.args...)
			if code := run(&stdout, &stderr, args); code != 0 {
				t.Fatalf("exit status %d: %s", code, stderr.String())
			}
			if stdout.String() != test.warning {
				t.Errorf("stdout %q, want %q", stdout.String(), test.warning)
			}
			if len(s.shown) != 1 {
				t.Fatalf("displayed %d figures, want 1", len(s.shown))
			}
			if want := bwchart.Title(path); s.shown[0].Title != want {
				t.Errorf("title %q, want %q", s.shown[0].Title, want)
			}
			if got := files(t, filepath.Dir(path)); len(got) != 1 {
				t.Errorf("display wrote files: %q", got)
			}
		})
	}
}

func TestHTTPFlag(t *testing.T) {
	s := stub(t)
	path := input(t, "minimal.csv")
	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr, []string{"bwplot", "-http", "localhost:0", path}); code != 0 {
		t.Fatalf("exit status %d: %s", code, stderr.String())
	}
	if len(s.shown) != 0 || len(s.served) != 1 || s.served[0] != "localhost:0" {
		t.Errorf("shown %d, served %q", len(s.shown), s.served)
	}
}

func TestVerbose(t *testing.T) {
	stub(t)
	path := input(t, "minimal.csv")
	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr, []string{"bwplot", "-v", path, "png"}); code != 0 {
		t.Fatalf("exit status %d: %s", code, stderr.String())
	}
	for _, want := range []string{"2 stream results", "4 stride results", "wrote " + path + ".png", `Linear accesses: ticks at ["1" "4"]`, "Strided read accesses stride: 2: mean"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr.String())
		}
	}
}

func TestBadFlag(t *testing.T) {
	stub(t)
	var stdout, stderr bytes.Buffer
	if code := run(&stdout, &stderr, []string{"bwplot", "-bogus"}); code == 0 {
		t.Errorf("exit status 0 for an unknown flag")
	}
	if code := run(&stdout, &stderr, []string{"bwplot", "-h"}); code != 0 {
		t.Errorf("exit status %d for -h", code)
	}
}

func TestChartHandler(t *testing.T) {
	chart := []byte("\x89PNG fake")
	srv := httptest.NewServer(chartHandler("Bandwidth results for <x>", chart))
	defer srv.Close()

	get := func(path string) (*http.Response, []byte) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		return resp, body
	}

	resp, body := get("/chart.png")
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" || !bytes.Equal(body, chart) {
		t.Errorf("/chart.png: %s %q", ct, body)
	}
	resp, body = get("/")
	if resp.StatusCode != 200 || !strings.Contains(string(body), `src="chart.png"`) || !strings.Contains(string(body), "&lt;x&gt;") {
		t.Errorf("/: %d %s", resp.StatusCode, body)
	}
	if resp, _ = get("/other"); resp.StatusCode != 404 {
		t.Errorf("/other: status %d, want 404", resp.StatusCode)
	}
}
