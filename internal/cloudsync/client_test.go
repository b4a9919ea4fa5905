package cloudsync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boticaviva/backend/pkg/config"
)

func TestSavePutsSettingsWithAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(config.CloudSyncConfig{BaseURL: server.URL, APIKey: "secret", StoreID: "botica-1"})
	if err := client.Save(context.Background(), map[string]string{"store_name": "BoticaViva"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if gotPath != "/v1/stores/botica-1/settings" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["store_name"] != "BoticaViva" {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestFetchMissingSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(config.CloudSyncConfig{BaseURL: server.URL, StoreID: "botica-1"})
	var out map[string]string
	if err := client.Fetch(context.Background(), &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnconfiguredClientIsDisabled(t *testing.T) {
	client := NewClient(config.CloudSyncConfig{})

	if err := client.Save(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := client.Fetch(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
