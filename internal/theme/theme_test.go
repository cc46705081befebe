// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Theme
		wantErr bool
	}{
		{"light", Light, false},
		{"DARK", Dark, false},
		{"  contrast\n", Contrast, false},
		{"auto", "", true},
		{"", "", true},
		{"sepia", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownTheme) {
			t.Errorf("Parse(%q) err = %v, want ErrUnknownTheme", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsDark(t *testing.T) {
	if Light.IsDark() {
		t.Error("Light.IsDark() = true")
	}
	if !Dark.IsDark() || !Contrast.IsDark() {
		t.Error("Dark and Contrast should use the dark palette")
	}
}

func TestDetect(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	tests := []struct {
		name     string
		explicit string
		bg       func() bool
		want     Theme
	}{
		{"explicit dark", "dark", light, Dark},
		{"explicit contrast", "contrast", light, Contrast},
		{"explicit light on dark terminal", "light", dark, Dark},
		{"explicit light on light terminal", "light", light, Light},
		{"auto dark", "auto", dark, Dark},
		{"auto light", "auto", light, Light},
		{"garbage", "neon", light, Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detect(tt.explicit, tt.bg); got != tt.want {
				t.Errorf("detect(%q) = %q, want %q", tt.explicit, got, tt.want)
			}
		})
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStatic(Light)
	var got []Theme
	cancel := p.OnChange(func(th Theme) { got = append(got, th) })

	p.Set(Light)
	p.Set(Dark)
	p.Set(Dark)
	cancel()
	p.Set(Contrast)

	if p.Theme() != Contrast {
		t.Errorf("Theme() = %q, want contrast", p.Theme())
	}
	if len(got) != 1 || got[0] != Dark {
		t.Errorf("notifications = %v, want [dark]", got)
	}
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme")
	if err := os.WriteFile(path, []byte("dark\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(path, Light)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	fw.WithLogger(log.New(io.Discard, "", 0))
	defer fw.Close()

	if fw.Theme() != Dark {
		t.Errorf("initial Theme() = %q, want dark from file", fw.Theme())
	}

	changes := make(chan Theme, 4)
	fw.OnChange(func(th Theme) { changes <- th })

	if err := os.WriteFile(path, []byte("contrast"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case th := <-changes:
		if th != Contrast {
			t.Errorf("change = %q, want contrast", th)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	if fw.Theme() != Contrast {
		t.Errorf("Theme() = %q, want contrast", fw.Theme())
	}
}

func TestFileWatcherMissingFileUsesFallback(t *testing.T) {
	fw, err := NewFileWatcher(filepath.Join(t.TempDir(), "absent"), Contrast)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	if fw.Theme() != Contrast {
		t.Errorf("Theme() = %q, want fallback", fw.Theme())
	}
	if err := fw.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "theme"), Light)
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
