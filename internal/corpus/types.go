package corpus

import (
	"path/filepath"
	"strings"
)

// SourceType classifies where a file came from within the data directory.
type SourceType string

const (
	SourceRepository   SourceType = "repository"
	SourceChatExport   SourceType = "chat-export"
	SourceManualUpload SourceType = "manual-upload"
)

// SourceFile identifies one eligible filesystem entry under a processing root.
// Digest stays empty until the hasher has run; an empty digest after hashing
// means the file could not be read and change detection degrades for it.
type SourceFile struct {
	AbsPath    string
	RelPath    string // relative to the root, forward slashes
	Ext        string // lowercased extension, including the dot
	Size       int64
	Digest     string
	SourceType SourceType
}

// DetermineSourceType classifies a file by its path segments. Repos land
// under github_repos (or keep a .git suffix on a segment), chat exports
// under slack_files, everything else is a manual upload.
func DetermineSourceType(relPath string) SourceType {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		switch {
		case part == "slack_files":
			return SourceChatExport
		case part == "github_repos", strings.HasSuffix(part, ".git"):
			return SourceRepository
		}
	}
	return SourceManualUpload
}
