// Package transcript holds the timed segment type shared by the transcriber and the
// normalizer, plus the on-disk formats of the raw and cleaned transcript artifacts.
package transcript

import (
	"strings"
	"time"
)

// Segment is a timed unit of recognized speech.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Cleaned is the normalizer's output: ordered, non-empty paragraphs.
type Cleaned struct {
	Paragraphs []string
}

// Empty reports whether no paragraph survived normalization.
func (c Cleaned) Empty() bool {
	return len(c.Paragraphs) == 0
}

// Text renders paragraphs separated by a blank line. This is both the generation
// input and the persisted cleaned-transcript format.
func (c Cleaned) Text() string {
	return strings.Join(c.Paragraphs, "\n\n")
}

// ParseCleaned reads the format written by Cleaned.Text.
func ParseCleaned(text string) Cleaned {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	return Cleaned{Paragraphs: paras}
}

// PlainText joins segment texts with single spaces, skipping empty ones.
func PlainText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
