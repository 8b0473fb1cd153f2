package artifact

import (
	"path/filepath"
	"strings"
	"sync"
)

type implStore struct {
	dir       string
	audioExt  string
	mu        sync.Mutex
	allocated map[Stage]string
	created   bool
}

// New creates a Store rooted at dir. audioFormat picks the audio file extension ("wav" when empty).
func New(dir, audioFormat string) Store {
	ext := strings.TrimPrefix(strings.TrimSpace(audioFormat), ".")
	if ext == "" {
		ext = "wav"
	}
	return &implStore{
		dir:       dir,
		audioExt:  ext,
		allocated: make(map[Stage]string),
	}
}

// RunDir returns the working directory for a video under outputDir: one directory per video stem.
func RunDir(outputDir, videoPath string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem)
}
