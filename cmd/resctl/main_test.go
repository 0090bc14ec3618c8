package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/state":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"total_coherence":0.5}`))
		case "/api/v1/suggestion":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	oldServerURL := serverURL
	serverURL = server.URL
	defer func() { serverURL = oldServerURL }()

	t.Run("returns body on 200", func(t *testing.T) {
		body, status, err := getEndpoint("/api/v1/state")
		if err != nil {
			t.Fatalf("getEndpoint() error = %v", err)
		}
		if status != http.StatusOK {
			t.Errorf("status = %d, want %d", status, http.StatusOK)
		}
		if !strings.Contains(string(body), "total_coherence") {
			t.Errorf("body = %q, want it to contain total_coherence", body)
		}
	})

	t.Run("returns empty body on 204", func(t *testing.T) {
		body, status, err := getEndpoint("/api/v1/suggestion")
		if err != nil {
			t.Fatalf("getEndpoint() error = %v", err)
		}
		if status != http.StatusNoContent {
			t.Errorf("status = %d, want %d", status, http.StatusNoContent)
		}
		if len(body) != 0 {
			t.Errorf("body = %q, want empty", body)
		}
	})

	t.Run("returns error with body on failure", func(t *testing.T) {
		_, _, err := getEndpoint("/api/v1/missing")
		if err == nil {
			t.Fatal("getEndpoint() error = nil, want error")
		}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("error = %v, want it to mention status 500", err)
		}
		if !strings.Contains(err.Error(), "boom") {
			t.Errorf("error = %v, want it to carry the response body", err)
		}
	})
}

func TestPostEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"reset"}`))
	}))
	defer server.Close()

	oldServerURL := serverURL
	serverURL = server.URL
	defer func() { serverURL = oldServerURL }()

	body, err := postEndpoint("/api/v1/reset")
	if err != nil {
		t.Fatalf("postEndpoint() error = %v", err)
	}
	if !strings.Contains(string(body), "reset") {
		t.Errorf("body = %q, want it to contain reset", body)
	}
}

func TestRunHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	oldServerURL := serverURL
	serverURL = server.URL
	defer func() { serverURL = oldServerURL }()

	if err := runHealth(healthCmd, nil); err != nil {
		t.Errorf("runHealth() error = %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "indents an object",
			input: `{"a":1}`,
			want:  "{\n  \"a\": 1\n}",
		},
		{
			name:  "indents nested arrays",
			input: `{"a":[1,2]}`,
			want:  "{\n  \"a\": [\n    1,\n    2\n  ]\n}",
		},
		{
			name:    "rejects invalid json",
			input:   `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prettyJSON([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("prettyJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("prettyJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSuggestion(t *testing.T) {
	tests := []struct {
		name       string
		suggestion Suggestion
		want       []string
		wantAbsent []string
	}{
		{
			name: "full suggestion",
			suggestion: Suggestion{
				ID:              "synthesis-1700000000000",
				Reason:          "Patterns emergence Resonance are strengthening",
				TargetConcepts:  []string{"emergence", "flow"},
				SuggestedAction: "consult",
				Confidence:      0.72,
				BasedOnPatterns: []string{"pattern-emergence"},
			},
			want: []string{
				"Suggested action: consult",
				"Confidence: 72%",
				"Target concepts: emergence, flow",
				"Based on: pattern-emergence",
			},
		},
		{
			name: "omits empty sections",
			suggestion: Suggestion{
				SuggestedAction: "observe",
				Reason:          "still watching",
				Confidence:      0.1,
			},
			want: []string{
				"Suggested action: observe",
				"Confidence: 10%",
			},
			wantAbsent: []string{
				"Target concepts:",
				"Based on:",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatSuggestion(tt.suggestion)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("formatSuggestion() = %q, want it to contain %q", got, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("formatSuggestion() = %q, want it to omit %q", got, absent)
				}
			}
		})
	}
}
