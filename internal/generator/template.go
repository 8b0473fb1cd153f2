package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
)

var reKeyTerm = regexp.MustCompile(`(?i)\b(definition|theorem|important|key|main|primary)\b`)

type implTemplate struct {
	sections int
}

// NewTemplate creates an offline Generator that turns the first sections
// paragraphs of the transcript into numbered sections. It needs no credentials.
func NewTemplate(sections int) Generator {
	if sections <= 0 {
		sections = 5
	}
	return &implTemplate{sections: sections}
}

func (t *implTemplate) Name() string {
	return "template"
}

func (t *implTemplate) Generate(ctx context.Context, req Request) (string, error) {
	var paragraphs []string
	for _, p := range strings.Split(req.Transcript, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return "", &Error{Kind: KindBadRequest, Provider: t.Name(), Err: fmt.Errorf("transcript is empty")}
	}
	if len(paragraphs) > t.sections {
		paragraphs = paragraphs[:t.sections]
	}

	var b strings.Builder
	for i, p := range paragraphs {
		fmt.Fprintf(&b, "\\section{Topic %d}\n%s\n\n", i+1, formatParagraph(p))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// formatParagraph escapes plain text and bolds a few signal words.
func formatParagraph(p string) string {
	return reKeyTerm.ReplaceAllString(assembler.EscapeLaTeX(p), `\textbf{$1}`)
}
