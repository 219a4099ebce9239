package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olgasafonova/wikitranslate-mcp-server/internal/wikipedia"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if opts.term != "Python" || opts.source != "de" || opts.runs != 3 {
		t.Errorf("unexpected defaults %+v", opts)
	}
	if len(opts.targets) != 1 || opts.targets[0] != "es" {
		t.Errorf("unexpected default targets %v", opts.targets)
	}

	opts, err = parseFlags([]string{"-term", "Katze", "-target", "fr, it,,ja", "-n", "5"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.term != "Katze" || opts.runs != 5 {
		t.Errorf("unexpected options %+v", opts)
	}
	if strings.Join(opts.targets, ",") != "fr,it,ja" {
		t.Errorf("targets = %v, want [fr it ja]", opts.targets)
	}

	if _, err := parseFlags([]string{"-n", "0"}); err == nil {
		t.Error("expected error for -n 0")
	}
	if _, err := parseFlags([]string{"-target", " , "}); err == nil {
		t.Error("expected error for empty -target")
	}
}

func TestTimingsSummary(t *testing.T) {
	if got := (timings{}).summary(); got != "no runs" {
		t.Errorf("empty summary = %q", got)
	}

	got := timings{30 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond}.summary()
	want := "min 10ms  median 20ms  max 30ms  mean 20ms"
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestMeasureStopsOnError(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	out, err := measure(5, func() error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(out) != 2 || calls != 3 {
		t.Errorf("expected 2 timings and 3 calls, got %d and %d", len(out), calls)
	}
}

func TestRunAgainstFakeWikipedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("list") == "search":
			_, _ = w.Write([]byte(`{"query":{"search":[{"ns":0,"title":"Katze","pageid":42,"snippet":"","timestamp":"2024-01-01T00:00:00Z"}]}}`))
		case q.Get("prop") == "pageprops":
			_, _ = w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"title":"Katze"}}}}`))
		case q.Get("prop") == "langlinks":
			_, _ = w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"langlinks":[{"lang":"fr","url":"https://fr.wikipedia.org/wiki/Chat","langname":"Französisch","autonym":"français","*":"Chat"}]}}}}`))
		}
	}))
	defer srv.Close()

	client := wikipedia.NewClient().WithEndpoint(srv.URL + "/%s/w/api.php")
	defer client.Close()

	err := run(context.Background(), client, options{term: "Katze", source: "de", targets: []string{"fr"}, runs: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}
