// Package files reports name, size and MIME type of a selected file.
package files

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"inlaw/internal/state"
)

// Office formats sniff as generic containers; the extension disambiguates.
var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Describe stats and sniffs the file at path.
func Describe(path string) (state.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return state.FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return state.FileInfo{}, fmt.Errorf("%s is a directory", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return state.FileInfo{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	return state.FileInfo{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		MimeType:  resolve(mt, ext),
	}, nil
}

func resolve(mt *mimetype.MIME, ext string) string {
	detected := essence(mt.String())
	want, known := extensionTypes[ext]
	switch {
	case known && (mt.Is(want) || detected == "application/zip" ||
		detected == "application/x-ole-storage" || detected == "application/octet-stream"):
		return want
	case detected == "application/octet-stream":
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return essence(byExt)
		}
	}
	return detected
}

// essence strips MIME parameters such as charset.
func essence(t string) string {
	if mediaType, _, err := mime.ParseMediaType(t); err == nil {
		return mediaType
	}
	return t
}
