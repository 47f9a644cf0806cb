package local_fs

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLocalFS_SendFile(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	content := "hello world"
	modTime := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)

	savedPath, err := client.SendFile("test_file.txt", strings.NewReader(content), "text/plain", modTime)
	if err != nil {
		t.Fatalf("SendFile failed: %v", err)
	}

	savedContent, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(savedContent) != content {
		t.Errorf("Content mismatch: expected %s, got %s", content, string(savedContent))
	}

	fileInfo, err := os.Stat(savedPath)
	if err != nil {
		t.Fatalf("Failed to stat saved file: %v", err)
	}
	diff := fileInfo.ModTime().Sub(modTime)
	if diff < -time.Second || diff > time.Second {
		t.Errorf("ModTime mismatch: expected %v, got %v", modTime, fileInfo.ModTime())
	}
}

func TestLocalFS_SendContent(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	// Subdirectory in the key exercises directory creation.
	content := []byte("hello content")
	savedPath, err := client.SendContent("subdir/test_content.txt", content, time.Now())
	if err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}

	savedContent, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(savedContent, content) {
		t.Errorf("Content mismatch: expected %s, got %s", content, savedContent)
	}
}

func TestLocalFS_Delete(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	savedPath, err := client.SendContent("to_delete.txt", []byte("x"), time.Now())
	if err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}

	if err := client.Delete("to_delete.txt"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(savedPath); !os.IsNotExist(err) {
		t.Errorf("file still exists after delete")
	}

	// Deleting a missing key is not an error.
	if err := client.Delete("missing.txt"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}
