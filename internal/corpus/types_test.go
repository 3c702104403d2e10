package corpus

import "testing"

func TestDetermineSourceType(t *testing.T) {
	tests := []struct {
		name    string
		relPath string
		want    SourceType
	}{
		{"slack export", "slack_files/general/2024-01-01.txt", SourceChatExport},
		{"github repo", "github_repos/myrepo/README.md", SourceRepository},
		{"dot git suffix segment", "mirrors/myrepo.git/README.md", SourceRepository},
		{"plain upload", "uploads/notes.txt", SourceManualUpload},
		{"root level file", "readme.md", SourceManualUpload},
		{"slack wins over later segments", "slack_files/github_repos/x.txt", SourceChatExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineSourceType(tt.relPath); got != tt.want {
				t.Errorf("DetermineSourceType(%q) = %q, want %q", tt.relPath, got, tt.want)
			}
		})
	}
}
