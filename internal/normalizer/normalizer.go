// Package normalizer turns raw recognized segments into cleaned, paragraph-structured
// text. It is purely lexical: filler words, stop words and recognition artifacts are
// dropped token by token and paragraphs are cut on silence gaps or token budgets.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

// Options configures a Normalizer. Zero values disable the corresponding rule.
type Options struct {
	FillerWords      []string
	StopWords        []string
	ArtifactPatterns []string
	// SilenceThreshold starts a new paragraph when the gap between two segments exceeds it.
	SilenceThreshold time.Duration
	// MaxParagraphTokens closes the current paragraph once it holds this many tokens.
	MaxParagraphTokens int
}

// Stats describes what a normalization pass removed.
type Stats struct {
	Segments         int
	TokensIn         int
	FillersRemoved   int
	StopsRemoved     int
	ArtifactsRemoved int
	Paragraphs       int
}

// Normalizer is safe for concurrent use; it holds no mutable state.
type Normalizer struct {
	fillers   map[string]struct{}
	stops     map[string]struct{}
	artifacts []*regexp.Regexp
	silence   time.Duration
	maxTokens int
}

// New compiles opts into a Normalizer.
func New(opts Options) (*Normalizer, error) {
	n := &Normalizer{
		fillers:   wordSet(opts.FillerWords),
		stops:     wordSet(opts.StopWords),
		silence:   opts.SilenceThreshold,
		maxTokens: opts.MaxParagraphTokens,
	}
	for _, p := range opts.ArtifactPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile artifact pattern %q: %w", p, err)
		}
		n.artifacts = append(n.artifacts, re)
	}
	return n, nil
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Normalize cleans segments into paragraphs. Zero segments give an empty result.
func (n *Normalizer) Normalize(segments []transcript.Segment) (transcript.Cleaned, Stats) {
	stats := Stats{Segments: len(segments)}
	var (
		paragraphs []string
		current    []string
	)

	flush := func() {
		if p := strings.TrimSpace(strings.Join(current, " ")); p != "" {
			paragraphs = append(paragraphs, p)
		}
		current = current[:0]
	}

	for i, seg := range segments {
		if i > 0 && n.silence > 0 && seg.Start-segments[i-1].End > n.silence {
			flush()
		}

		for _, tok := range strings.Fields(seg.Text) {
			stats.TokensIn++
			if !n.keep(tok, &stats) {
				continue
			}
			current = append(current, tok)
			if n.maxTokens > 0 && len(current) >= n.maxTokens {
				flush()
			}
		}
	}
	flush()

	stats.Paragraphs = len(paragraphs)
	return transcript.Cleaned{Paragraphs: paragraphs}, stats
}

// keep runs the filler, stop-word and artifact passes independently; a token
// matching any of them is dropped and counted against the first set it matched.
func (n *Normalizer) keep(tok string, stats *Stats) bool {
	lower := strings.ToLower(tok)
	_, filler := n.fillers[lower]
	_, stop := n.stops[lower]

	switch {
	case filler:
		stats.FillersRemoved++
		return false
	case stop:
		stats.StopsRemoved++
		return false
	}

	for _, re := range n.artifacts {
		if re.MatchString(tok) {
			stats.ArtifactsRemoved++
			return false
		}
	}
	return true
}
