package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (s *implStore) Dir() string {
	return s.dir
}

func (s *implStore) fileName(stage Stage) string {
	switch stage {
	case StageAudio:
		return "audio." + s.audioExt
	case StageRawTranscript:
		return "transcript.srt"
	case StageCleaned:
		return "transcript.txt"
	case StageBody:
		return "body.tex"
	case StageDocument:
		return "notes.tex"
	}
	name := strings.Trim(reUnsafe.ReplaceAllString(string(stage), "_"), "._")
	if name == "" {
		name = "artifact"
	}
	return name + ".out"
}

func (s *implStore) Allocate(stage Stage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.allocated[stage]; ok {
		return p, nil
	}
	if !s.created {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("create work dir %s: %w", s.dir, err)
		}
		s.created = true
	}

	p := filepath.Join(s.dir, s.fileName(stage))
	s.allocated[stage] = p
	return p, nil
}

func (s *implStore) Exists(stage Stage) bool {
	info, err := os.Stat(filepath.Join(s.dir, s.fileName(stage)))
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

func (s *implStore) WriteFile(stage Stage, data []byte) (string, error) {
	p, err := s.Allocate(stage)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("write %s artifact: %w", stage, err)
	}
	return p, nil
}

func (s *implStore) ReadFile(stage Stage) ([]byte, error) {
	p, err := s.Allocate(stage)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s artifact: %w", stage, err)
	}
	return data, nil
}

// Finalize removes intermediates. Files the store never named are left alone.
func (s *implStore) Finalize(keepIntermediates bool) error {
	if keepIntermediates {
		return nil
	}

	var errs []error
	for _, stage := range []Stage{StageAudio, StageRawTranscript, StageCleaned, StageBody} {
		p := filepath.Join(s.dir, s.fileName(stage))
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", p, err))
		}
	}

	s.mu.Lock()
	for stage, p := range s.allocated {
		if stage == StageDocument {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", p, err))
		}
	}
	s.mu.Unlock()

	return errors.Join(errs...)
}
