package indexer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "changes.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest fixture: %v", err)
	}
	return path
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantFullSync bool
		wantEntries  []ChangeEntry
	}{
		{
			name:    "changed and removed paths",
			content: "docs/a.md\nREMOVED:docs/b.md\nsrc/main.go\n",
			wantEntries: []ChangeEntry{
				{Path: "docs/a.md"},
				{Path: "docs/b.md", Removed: true},
				{Path: "src/main.go"},
			},
		},
		{
			name:        "blank lines and whitespace ignored",
			content:     "\n  docs/a.md  \n\n\t\nREMOVED: docs/b.md \n",
			wantEntries: []ChangeEntry{{Path: "docs/a.md"}, {Path: "docs/b.md", Removed: true}},
		},
		{
			name:         "full sync sentinel",
			content:      "FULL_SYNC\n",
			wantFullSync: true,
		},
		{
			name:         "sentinel mixed with entries",
			content:      "docs/a.md\nFULL_SYNC\ndocs/b.md\n",
			wantFullSync: true,
			wantEntries:  []ChangeEntry{{Path: "docs/a.md"}, {Path: "docs/b.md"}},
		},
		{
			name:    "empty manifest",
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)

			m, err := ParseManifest(path)
			if err != nil {
				t.Fatalf("ParseManifest() error = %v", err)
			}
			if m.FullSync != tt.wantFullSync {
				t.Errorf("FullSync = %v, want %v", m.FullSync, tt.wantFullSync)
			}
			if len(m.Entries) != len(tt.wantEntries) {
				t.Fatalf("got %d entries, want %d", len(m.Entries), len(tt.wantEntries))
			}
			for i, want := range tt.wantEntries {
				if m.Entries[i] != want {
					t.Errorf("Entries[%d] = %+v, want %+v", i, m.Entries[i], want)
				}
			}
		})
	}
}

func TestParseManifest_MissingFile(t *testing.T) {
	_, err := ParseManifest(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("ParseManifest() on missing file returned nil error, want error")
	}
}
