package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConfigured(t *testing.T) {
	if New("", "", "", "menu").Configured() {
		t.Fatal("expected empty credentials to report unconfigured")
	}
	if New("demo", "key", "", "menu").Configured() {
		t.Fatal("expected missing secret to report unconfigured")
	}
	if !New("demo", "key", "secret", "menu").Configured() {
		t.Fatal("expected full credentials to report configured")
	}
}

func TestSignParamsSortsKeys(t *testing.T) {
	params := map[string]string{
		"timestamp": "1700000000",
		"folder":    "menu",
		"public_id": "item-1",
	}

	sum := sha1.Sum([]byte("folder=menu&public_id=item-1&timestamp=1700000000secret"))
	want := hex.EncodeToString(sum[:])

	if got := signParams(params, "secret"); got != want {
		t.Fatalf("signParams = %q, want %q", got, want)
	}
}

func TestUploadParsesSuccessResponse(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse upload form: %v", err)
		}
		for _, field := range []string{"folder", "public_id", "timestamp", "transformation", "api_key", "signature"} {
			if r.FormValue(field) == "" {
				t.Fatalf("missing form field %q", field)
			}
		}
		if r.FormValue("transformation") != "c_limit,w_800,h_600" {
			t.Fatalf("unexpected transformation %q", r.FormValue("transformation"))
		}
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/item.jpg","public_id":"menu/item-1"}`))
	}))
	defer server.Close()

	client := New("demo", "key", "secret", "menu")
	client.BaseURL = server.URL

	resp, err := client.Upload("item-1", []byte("image-bytes"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if gotPath != "/v1_1/demo/image/upload" {
		t.Fatalf("unexpected upload path %q", gotPath)
	}
	if resp.SecureURL != "https://res.cloudinary.com/demo/item.jpg" {
		t.Fatalf("unexpected secure url %q", resp.SecureURL)
	}
	if resp.PublicID != "menu/item-1" {
		t.Fatalf("unexpected public id %q", resp.PublicID)
	}
}

func TestUploadSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer server.Close()

	client := New("demo", "key", "wrong", "menu")
	client.BaseURL = server.URL

	if _, err := client.Upload("item-1", []byte("image-bytes")); err == nil {
		t.Fatal("expected error from rejected upload")
	}
}
