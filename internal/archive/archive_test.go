package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchive(t *testing.T) {
	tmpDir := t.TempDir()

	// assets/audio/nepali/barakhari/ka_aa.mp3
	audioDir := filepath.Join(tmpDir, "assets", "audio")
	subDir := filepath.Join(audioDir, "nepali", "barakhari")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create audio directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(audioDir, "nepali", "ka.mp3"), []byte("ka"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "ka_aa.mp3"), []byte("kaa"), 0644); err != nil {
		t.Fatalf("Failed to create sub file: %v", err)
	}

	archivedPath, err := Archive(audioDir)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	if _, err := os.Stat(audioDir); !os.IsNotExist(err) {
		t.Error("Audio directory still exists after archiving")
	}

	archiveDir := filepath.Join(tmpDir, "assets", "archive")
	if filepath.Dir(archivedPath) != archiveDir {
		t.Errorf("archived to %s, want inside %s", archivedPath, archiveDir)
	}
	if !strings.HasPrefix(filepath.Base(archivedPath), "audio-") {
		t.Errorf("Archived directory name doesn't start with 'audio-': %s", archivedPath)
	}

	if _, err := os.Stat(filepath.Join(archivedPath, "nepali", "ka.mp3")); err != nil {
		t.Error("Test file not found in archive")
	}
	if _, err := os.Stat(filepath.Join(archivedPath, "nepali", "barakhari", "ka_aa.mp3")); err != nil {
		t.Error("Sub file not found in archive")
	}
}

func TestArchive_NonExistentDirectory(t *testing.T) {
	_, err := Archive(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Fatal("Expected error for non-existent directory")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchive_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "audio")
	os.WriteFile(file, []byte("x"), 0644)

	if _, err := Archive(file); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Expected 'not a directory' error, got: %v", err)
	}
}

func TestArchive_SameTimestamp(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	tmpDir := t.TempDir()
	audioDir := filepath.Join(tmpDir, "audio")

	for i := 0; i < 3; i++ {
		if err := os.MkdirAll(audioDir, 0755); err != nil {
			t.Fatalf("Failed to create audio directory: %v", err)
		}
		if _, err := Archive(audioDir); err != nil {
			t.Fatalf("Archive failed on iteration %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries in archive directory, got %d", len(entries))
	}
	if entries[0].Name() != "audio-20250301-100000" {
		t.Errorf("first archive = %s", entries[0].Name())
	}
}
