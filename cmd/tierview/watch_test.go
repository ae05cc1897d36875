package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// TestWatchImage tests that a write to the image reaches the program
func TestWatchImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tier.img")
	if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil {
		t.Fatal(err)
	}

	msgs := make(chan tea.Msg, 8)
	w, err := watchImage(path, time.Millisecond, func(msg tea.Msg) { msgs <- msg })
	if err != nil {
		t.Fatalf("watchImage: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-msgs:
		if _, ok := msg.(imageChangedMsg); !ok {
			t.Errorf("got %T, want imageChangedMsg", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatchImage_MissingFile(t *testing.T) {
	_, err := watchImage(filepath.Join(t.TempDir(), "absent.img"), time.Second, func(tea.Msg) {})
	if err == nil {
		t.Fatal("expected an error for a missing image")
	}
}

func TestIsImageWrite(t *testing.T) {
	if !isImageWrite(fsnotify.Event{Name: "a", Op: fsnotify.Write | fsnotify.Chmod}) {
		t.Error("write not recognized")
	}
	if isImageWrite(fsnotify.Event{Name: "a", Op: fsnotify.Chmod}) {
		t.Error("chmod treated as write")
	}
}

// TestImageChanged tests the status message for an external write
func TestImageChanged(t *testing.T) {
	helper := NewTestHelper(1)
	helper.Send(imageChangedMsg{})
	if got := helper.GetModel().statusMessage; got != "Image changed on disk" {
		t.Errorf("status = %q", got)
	}
}
