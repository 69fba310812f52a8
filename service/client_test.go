package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"models":[{"name":"llama3.1","digest":"abc","size":1024,"modified_at":"2025-06-15T10:30:00Z"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(models) != 1 || models[0].Name != "llama3.1" || models[0].Size != 1024 {
		t.Errorf("Unexpected models: %+v", models)
	}
}

func TestClient_Non2xxIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"model 'missing' not found"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	err := client.DeleteModel(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if !IsNetworkError(err) {
		t.Errorf("Expected NetworkError, got %T: %v", err, err)
	}
}

func TestClient_ConnectionRefusedIsNetworkError(t *testing.T) {
	// Reserve a port, then close it so nothing is listening.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	client := NewClient(addr, 2*time.Second)
	_, err := client.ListModels(context.Background())
	if err == nil {
		t.Fatal("Expected error when nothing is listening")
	}
	if !IsNetworkError(err) {
		t.Errorf("Expected NetworkError, got %T: %v", err, err)
	}
}

func TestStreamLines_DeliversAllLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"status":"one"}`)
		fmt.Fprintln(w, `{"status":"two"}`)
		fmt.Fprintln(w, `{"status":"three"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	lines, errc := client.StreamLines(context.Background(), http.MethodPost, "/api/pull", map[string]any{"name": "m"})

	var got []string
	for line := range lines {
		got = append(got, line)
	}
	if err := <-errc; err != nil {
		t.Fatalf("Unexpected stream error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(got), got)
	}
	if got[0] != `{"status":"one"}` || got[2] != `{"status":"three"}` {
		t.Errorf("Lines delivered out of shape: %v", got)
	}
}

func TestStreamLines_CancellationStopsStream(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		fmt.Fprintln(w, `{"status":"first"}`)
		flusher.Flush()
		<-release // hold the stream open until the test is done
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient(server.URL, 30*time.Second)
	lines, errc := client.StreamLines(ctx, http.MethodPost, "/api/pull", map[string]any{"name": "m"})

	first, ok := <-lines
	if !ok || first != `{"status":"first"}` {
		t.Fatalf("Expected first line, got %q (ok=%v)", first, ok)
	}

	cancel()

	for range lines {
		// drain until the producer notices the cancellation
	}
	select {
	case err := <-errc:
		if err == nil {
			t.Error("Expected a cancellation error, got nil")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stream did not terminate after cancellation")
	}
}

func TestRunTransfer_SuccessAndFailure(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr bool
		remote  bool
	}{
		{
			name: "success",
			lines: []string{
				`{"status":"pulling manifest"}`,
				`{"status":"downloading","completed":10,"total":100}`,
				`{"status":"success"}`,
			},
		},
		{
			name: "daemon error",
			lines: []string{
				`{"status":"pulling manifest"}`,
				`{"error":"manifest unknown"}`,
			},
			wantErr: true,
			remote:  true,
		},
		{
			name: "incomplete stream",
			lines: []string{
				`{"status":"pulling manifest"}`,
				`{"status":"downloading","completed":10,"total":100}`,
			},
			wantErr: true,
			remote:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for _, line := range tt.lines {
					fmt.Fprintln(w, line)
				}
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)
			err := client.PullModel(context.Background(), "some-model", nil)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Expected success, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected failure")
			}
			if tt.remote && !IsRemoteError(err) {
				t.Errorf("Expected RemoteError, got %T: %v", err, err)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"version":"0.9.2"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	v, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if v != "0.9.2" {
		t.Errorf("Expected version '0.9.2', got %q", v)
	}
}
