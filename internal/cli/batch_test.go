package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadURLList(t *testing.T) {
	path := writeTempList(t, `# articles to fetch
https://example.com/one

https://example.com/two
`)

	urls, err := readURLList(path)
	if err != nil {
		t.Fatalf("readURLList failed: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %d", len(urls))
	}
	if urls[0] != "https://example.com/one" || urls[1] != "https://example.com/two" {
		t.Errorf("Unexpected URLs: %v", urls)
	}
}

func TestReadURLList_RejectsInvalidEntry(t *testing.T) {
	path := writeTempList(t, "https://example.com/ok\nnot-a-url\n")

	if _, err := readURLList(path); err == nil {
		t.Error("Expected invalid URL line to be rejected")
	}
}

func TestReadURLList_MissingFile(t *testing.T) {
	if _, err := readURLList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Expected missing file to be an error")
	}
}
