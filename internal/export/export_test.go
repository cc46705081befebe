// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation("Tell me a joke")
	conv.Append(model.NewUserMessage("Tell me a joke"))
	conv.Append(model.NewAssistantMessage("Why did the **spreadsheet** break up?"))
	return conv
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestMarkdownExport(t *testing.T) {
	conv := sampleConversation()
	out, err := NewMarkdownExporter(&Options{IncludeMetadata: true, IncludeTimestamps: true, Now: fixedNow}).Export(conv)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"---\ntitle: Tell me a joke\n",
		"exported: 2025-03-14T09:26:53Z",
		"# Tell me a joke",
		"### You <sub>",
		"### Assistant <sub>",
		"Why did the **spreadsheet** break up?",
		"*AI-generated content may be incorrect.*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownExportWithoutMetadata(t *testing.T) {
	out, err := NewMarkdownExporter(&Options{}).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	md := string(out)
	if strings.HasPrefix(md, "---") {
		t.Error("front matter written without IncludeMetadata")
	}
	if strings.Contains(md, "<sub>") {
		t.Error("timestamps written without IncludeTimestamps")
	}
	if !strings.Contains(md, "### You\n") {
		t.Errorf("missing role heading:\n%s", md)
	}
}

func TestMarkdownEscaping(t *testing.T) {
	conv := model.NewConversation("Q: what is *this*\nreally")
	out, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	md := string(out)
	if !strings.Contains(md, `title: "Q: what is *this*\nreally"`) {
		t.Errorf("front matter title not quoted:\n%s", md)
	}
	if !strings.Contains(md, `# Q: what is \*this\*`) {
		t.Errorf("heading not escaped:\n%s", md)
	}
	if !strings.Contains(md, "*No messages yet.*") {
		t.Errorf("empty conversation note missing:\n%s", md)
	}
}

func TestJSONExport(t *testing.T) {
	conv := sampleConversation()
	out, err := NewJSONExporter().Export(conv)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded model.Conversation
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.ID != conv.ID || len(decoded.Messages) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Messages[1].Role != model.RoleAssistant {
		t.Errorf("role = %q", decoded.Messages[1].Role)
	}
}

func TestNilConversation(t *testing.T) {
	if _, err := NewMarkdownExporter(nil).Export(nil); !errors.Is(err, ErrNilConversation) {
		t.Errorf("markdown err = %v", err)
	}
	if _, err := NewJSONExporter().Export(nil); !errors.Is(err, ErrNilConversation) {
		t.Errorf("json err = %v", err)
	}
	if _, err := ToDir(nil, t.TempDir(), nil); !errors.Is(err, ErrNilConversation) {
		t.Errorf("ToDir err = %v", err)
	}
}

func TestToFilePicksFormat(t *testing.T) {
	dir := t.TempDir()
	conv := sampleConversation()

	tests := []struct {
		name   string
		prefix string
	}{
		{"out/chat.json", "{"},
		{"chat.JSON", "{"},
		{"chat.md", "---"},
		{"chat.txt", "---"},
	}

	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		if err := ToFile(conv, path, nil); err != nil {
			t.Fatalf("ToFile(%s): %v", tt.name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", tt.name, err)
		}
		if !strings.HasPrefix(string(data), tt.prefix) {
			t.Errorf("%s starts with %q, want %q", tt.name, string(data[:min(len(data), 10)]), tt.prefix)
		}
	}
}

func TestToDir(t *testing.T) {
	dir := t.TempDir()
	conv := model.NewConversation("plan: Q3/Q4 roadmap?")

	path, err := ToDir(conv, dir, &Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("ToDir: %v", err)
	}
	want := filepath.Join(dir, "conversation_plan-_Q3-Q4_roadmap-_20250314_092653.md")
	if path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", "conversation"},
		{"simple", "simple"},
		{"a/b\\c:d", "a-b-c-d"},
		{"tab\there", "tab_here"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
