package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sdofetch/internal/catalog"
)

const dataSourcesBody = `{
	"SDO": {
		"AIA": {
			"171": {"sourceId": 15, "end": "2026-08-28T10:00:00Z"},
			"304": {"sourceId": 18, "end": "2026-08-28T11:45:00Z"}
		},
		"HMI": {
			"magnetogram": {"sourceId": 23, "end": "2026-08-28T09:00:00Z"}
		}
	},
	"SOHO": {}
}`

func newHelioviewerServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/getDataSources/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, dataSourcesBody)
	})
	mux.HandleFunc("/takeScreenshot/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("layers") == "" {
			http.Error(w, "missing layers", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"url": "/screenshots/2026/08/28/shot.png"}`)
	})
	mux.HandleFunc("/screenshots/2026/08/28/shot.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngPayload)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestTimestamp(t *testing.T) {
	srv := newHelioviewerServer(t)
	fetcher, _ := newTestFetcher(t, srv.URL, srv.URL)

	ts, err := fetcher.LatestTimestamp(context.Background())
	if err != nil {
		t.Fatalf("LatestTimestamp failed: %v", err)
	}
	// Newest end date across all AIA measurements
	if ts != "2026-08-28T11:45:00Z" {
		t.Errorf("Expected newest AIA end date, got %q", ts)
	}
}

func TestLatestTimestampMissingObservatory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"SOHO": {}}`)
	}))
	defer srv.Close()

	fetcher, _ := newTestFetcher(t, srv.URL, srv.URL)
	if _, err := fetcher.LatestTimestamp(context.Background()); err == nil {
		t.Error("Expected error when SDO is absent from data sources, got nil")
	}
}

func TestFetchHelioviewer(t *testing.T) {
	srv := newHelioviewerServer(t)
	// Direct endpoint always fails so Fetch must fall back
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer direct.Close()

	fetcher, _ := newTestFetcher(t, direct.URL, srv.URL)
	src, err := catalog.Resolve("AIA_304")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	res, err := fetcher.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch with Helioviewer fallback failed: %v", err)
	}

	if res.Method != "helioviewer" {
		t.Errorf("Expected helioviewer method after fallback, got %s", res.Method)
	}
	if diff := cmp.Diff(pngPayload, res.Payload); diff != "" {
		t.Errorf("Payload mismatch (-want +got):\n%s", diff)
	}
	if res.RequestedDate != "2026-08-28T11:45:00Z" {
		t.Errorf("Expected requested date from data sources, got %q", res.RequestedDate)
	}
	if res.ObservationDate != "2026-08-28T11:45:00Z" {
		t.Errorf("Expected observation date from data sources, got %q", res.ObservationDate)
	}
}

func TestHelioviewerSidecarCarriesObservationDate(t *testing.T) {
	srv := newHelioviewerServer(t)
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer direct.Close()

	fetcher, _ := newTestFetcher(t, direct.URL, srv.URL)

	result := fetcher.FetchOne(context.Background(), "AIA_304")
	if result.Err != nil {
		t.Fatalf("FetchOne failed: %v", result.Err)
	}

	metaJSON, err := os.ReadFile(result.MetaPath)
	if err != nil {
		t.Fatalf("Failed to read metadata: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(metaJSON, &fields); err != nil {
		t.Fatalf("Metadata does not parse: %v", err)
	}
	if fields["observation_date"] != "2026-08-28T11:45:00Z" {
		t.Errorf("Sidecar observation_date = %v, want 2026-08-28T11:45:00Z", fields["observation_date"])
	}
	if fields["requested_date"] != "2026-08-28T11:45:00Z" {
		t.Errorf("Sidecar requested_date = %v, want 2026-08-28T11:45:00Z", fields["requested_date"])
	}
}

func TestHelioviewerFallbackDateOmitsObservation(t *testing.T) {
	// getDataSources is broken, the screenshot path still works
	mux := http.NewServeMux()
	mux.HandleFunc("/getDataSources/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/takeScreenshot/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"url": "/shot.png"}`)
	})
	mux.HandleFunc("/shot.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngPayload)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fetcher, _ := newTestFetcher(t, srv.URL, srv.URL)
	src, _ := catalog.Resolve("AIA_171")

	res, err := fetcher.FetchHelioviewer(context.Background(), src)
	if err != nil {
		t.Fatalf("FetchHelioviewer failed: %v", err)
	}
	if res.ObservationDate != "" {
		t.Errorf("Expected no observation date for fallback request, got %q", res.ObservationDate)
	}
	if res.RequestedDate == "" {
		t.Error("Expected fallback requested date to be recorded")
	}
}

func TestFetchPrefersDirect(t *testing.T) {
	helio := newHelioviewerServer(t)
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(jpegPayload)
	}))
	defer direct.Close()

	fetcher, _ := newTestFetcher(t, direct.URL, helio.URL)
	src, _ := catalog.Resolve("AIA_171")

	res, err := fetcher.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.Method != "direct" {
		t.Errorf("Expected direct method when endpoint is healthy, got %s", res.Method)
	}
}

func TestFetchHelioviewerScreenshotLayers(t *testing.T) {
	var gotLayers string
	mux := http.NewServeMux()
	mux.HandleFunc("/getDataSources/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dataSourcesBody)
	})
	mux.HandleFunc("/takeScreenshot/", func(w http.ResponseWriter, r *http.Request) {
		gotLayers = r.URL.Query().Get("layers")
		fmt.Fprint(w, `{"url": "/shot.png"}`)
	})
	mux.HandleFunc("/shot.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngPayload)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fetcher, _ := newTestFetcher(t, srv.URL, srv.URL)
	src, _ := catalog.Resolve("HMI_Magnetogram")

	if _, err := fetcher.FetchHelioviewer(context.Background(), src); err != nil {
		t.Fatalf("FetchHelioviewer failed: %v", err)
	}
	if gotLayers != "[SDO,23,1,100]" {
		t.Errorf("Unexpected layers parameter: %q", gotLayers)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{
			name: "relative path joined with API origin",
			base: "https://api.helioviewer.org/v2/",
			ref:  "/cache/shot.png",
			want: "https://api.helioviewer.org/cache/shot.png",
		},
		{
			name: "absolute URL passed through",
			base: "https://api.helioviewer.org/v2/",
			ref:  "https://cdn.example.org/shot.png",
			want: "https://cdn.example.org/shot.png",
		},
		{
			name: "missing leading slash",
			base: "http://127.0.0.1:8080/",
			ref:  "shot.png",
			want: "http://127.0.0.1:8080/shot.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveURL(tt.base, tt.ref); got != tt.want {
				t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
			}
		})
	}
}
