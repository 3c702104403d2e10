package corpus

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"ragsync/internal/contextutil"
)

// Loader reads file content, tolerating the text encodings commonly found in
// mixed corpora (code, exported chats, pasted docs).
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// fallbackEncodings are tried in order after UTF-8 and BOM detection.
var fallbackEncodings = []encoding.Encoding{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// Load reads the file at path and returns its text. An undecodable file
// yields "" with a warning; the caller treats that as a skip. I/O failures
// are returned as errors so the caller can record a per-file error.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.Decode(ctx, path, raw), nil
}

// Decode converts raw bytes to text, attempting UTF-8, then BOM-marked
// UTF-16, then single-byte fallbacks.
func (l *Loader) Decode(ctx context.Context, path string, raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	if bytes.HasPrefix(raw, utf16LEBOM) || bytes.HasPrefix(raw, utf16BEBOM) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if text, err := dec.Bytes(raw); err == nil && utf8.Valid(text) {
			return string(text)
		}
	}

	for _, enc := range fallbackEncodings {
		if text, err := enc.NewDecoder().Bytes(raw); err == nil && utf8.Valid(text) {
			return string(text)
		}
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.WarnContext(ctx, "could not decode file", "path", path)
	return ""
}
