package auditlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// forbiddenChars are stripped from log filenames. Covers Windows
	// filesystem restrictions plus comma.
	forbiddenChars = `<>"\|?*:,`

	// maxMessagePart bounds the message-derived part of a filename.
	maxMessagePart = 50

	// maxFilename bounds the whole filename, leaving room for the
	// extension within a 260-character path.
	maxFilename = 245
)

// CleanFilename sanitizes a candidate filename: forbidden characters are
// removed, spaces become underscores, the part after the first
// underscore is capped at 50 characters, and the whole name at 245.
func CleanFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if !strings.ContainsRune(forbiddenChars, r) {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), " ", "_")

	if idx := strings.Index(cleaned, "_"); idx >= 0 {
		datePart, messagePart := cleaned[:idx], cleaned[idx+1:]
		if len(messagePart) > maxMessagePart {
			messagePart = messagePart[:maxMessagePart]
		}
		cleaned = datePart + "_" + messagePart
	}

	if len(cleaned) > maxFilename {
		cleaned = cleaned[:maxFilename]
	}
	return cleaned
}

// WriteMessageLog writes content to a timestamped .txt file under dir,
// creating the directory if needed. The filename combines the current
// time with a sanitized form of userMsg. It returns the path written.
func WriteMessageLog(dir, userMsg, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	stamp := time.Now().Format("20060102150405")
	name := CleanFilename(fmt.Sprintf("%s_%s", stamp, userMsg)) + ".txt"
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write message log: %w", err)
	}
	return path, nil
}
