package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

const (
	joobleAPIKey = "jooble-test-key"
	adzunaAppKey = "adzuna-test-key"
)

// fakeUpstream stands in for the Jooble and Adzuna APIs and counts the calls it receives.
type fakeUpstream struct {
	mu    sync.Mutex
	calls map[string]int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{calls: map[string]int{}}
}

func (f *fakeUpstream) count(service string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[service]
}

func (f *fakeUpstream) record(service string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[service]++
}

func (f *fakeUpstream) joobleServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.record("jooble")

		if r.URL.Path != "/"+joobleAPIKey {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("invalid api key"))
			return
		}

		var request struct {
			Keywords string `json:"keywords"`
			Location string `json:"location"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		writeJSON(w, map[string]any{
			"totalCount": 1,
			"jobs": []map[string]string{{
				"title":    request.Keywords + " engineer",
				"location": request.Location,
				"company":  "Acme",
			}},
		})
	}))
}

// adzunaServer reports salaries only for "golang" searches.
func (f *fakeUpstream) adzunaServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.record("adzuna")

		if r.URL.Query().Get("app_key") != adzunaAppKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("invalid app key"))
			return
		}

		results := []map[string]any{}
		if r.URL.Query().Get("what") == "golang" {
			results = append(results,
				map[string]any{"id": "1", "title": "Go developer", "salary_min": 90000.0},
				map[string]any{"id": "2", "title": "Senior Go developer", "salary_min": 110000.0},
				map[string]any{"id": "3", "title": "Go intern"},
			)
		}
		writeJSON(w, map[string]any{"count": len(results), "results": results})
	}))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
