package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdraft/mdraft-cli/pkg/models"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	root := t.TempDir()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(root, logger).Handler())
	t.Cleanup(ts.Close)
	return ts, root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestTreeEndpoint(t *testing.T) {
	ts, root := newTestServer(t)
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(root, "node_modules", "x.js"), "x")
	writeFile(t, filepath.Join(root, "a.md"), "# a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")

	resp, err := http.Get(ts.URL + "/api/files/tree")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    []models.FileNode `json:"data"`
	}
	decode(t, resp, &body)

	if !body.Success {
		t.Error("Expected success response")
	}
	if len(body.Data) != 2 {
		t.Fatalf("Expected 2 visible entries, got %d", len(body.Data))
	}
	if body.Data[0].Title != "a.md" || body.Data[1].Title != "b.txt" {
		t.Errorf("Unexpected entries: %+v", body.Data)
	}
}

func TestTreeEndpointEscapeDenied(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/files/tree?path=../..")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for escaping path, got %d", resp.StatusCode)
	}
}

func TestFileContentEndpoint(t *testing.T) {
	ts, root := newTestServer(t)
	writeFile(t, filepath.Join(root, "docs", "guide.md"), "# Guide")

	resp, err := http.Get(ts.URL + "/api/files/docs/guide.md")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Content string `json:"content"`
			Path    string `json:"path"`
			Size    int64  `json:"size"`
		} `json:"data"`
	}
	decode(t, resp, &body)

	if body.Data.Content != "# Guide" {
		t.Errorf("Expected content %q, got %q", "# Guide", body.Data.Content)
	}
	if body.Data.Path != "docs/guide.md" {
		t.Errorf("Expected path %q, got %q", "docs/guide.md", body.Data.Path)
	}
}

func TestFileContentMissing(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/files/absent.md")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestFileContentEscapeDenied(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/files/notes.md", nil)
	// Bypass client-side path cleaning to hit the handler with a raw
	// traversal path.
	req.URL.Path = "/api/files/../../etc/passwd"
	req.URL.RawPath = "/api/files/..%2F..%2Fetc%2Fpasswd"

	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusNotFound &&
		resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusMovedPermanently {
		t.Errorf("Traversal request must not succeed, got %d", resp.StatusCode)
	}
	if resp.StatusCode == http.StatusOK {
		t.Error("Traversal request served a file")
	}
}

func uploadImage(t *testing.T, url, field, filename string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	part.Write(data)
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, url+"/api/upload-image", &buf)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Upload request failed: %v", err)
	}
	return resp
}

func TestUploadEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := uploadImage(t, ts.URL, "image", "pic.png", []byte("png-bytes"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success      bool   `json:"success"`
		URL          string `json:"url"`
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
	}
	decode(t, resp, &body)

	if !body.Success {
		t.Error("Expected success response")
	}
	if body.OriginalName != "pic.png" {
		t.Errorf("Expected original name pic.png, got %q", body.OriginalName)
	}
	if body.Size != int64(len("png-bytes")) {
		t.Errorf("Expected size %d, got %d", len("png-bytes"), body.Size)
	}

	// The stored file must be fetchable back through /uploads/.
	fetch, err := http.Get(ts.URL + body.URL)
	if err != nil {
		t.Fatalf("Fetch of uploaded file failed: %v", err)
	}
	defer fetch.Body.Close()
	if fetch.StatusCode != http.StatusOK {
		t.Errorf("Expected uploaded file to be served, got %d", fetch.StatusCode)
	}
	stored, _ := io.ReadAll(fetch.Body)
	if string(stored) != "png-bytes" {
		t.Error("Served upload differs from original")
	}
}

func TestUploadRejectsBadExtension(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := uploadImage(t, ts.URL, "image", "evil.exe", []byte("mz"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for disallowed extension, got %d", resp.StatusCode)
	}
}

func TestUploadRequiresImageField(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := uploadImage(t, ts.URL, "wrongfield", "pic.png", []byte("png"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing image field, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
