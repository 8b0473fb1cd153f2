// Package export renders transcripts and generated notes as Word documents.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

var (
	reHeading = regexp.MustCompile(`^\\(section|subsection|subsubsection)\*?\{(.+)\}\s*$`)
	reItem    = regexp.MustCompile(`^\\item(?:\[[^\]]*\])?\s*(.*)$`)
	reEnv     = regexp.MustCompile(`^\\(begin|end)\{[^}]*\}`)
	reBold    = regexp.MustCompile(`\\textbf\{([^{}]*)\}`)
	reInline  = regexp.MustCompile(`\\(?:emph|textit|underline|texttt)\{([^{}]*)\}`)
	reCommand = regexp.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?(?:\{([^{}]*)\})?`)
	reMath    = regexp.MustCompile(`(^|[^\\])\$+`)
)

var unescaper = strings.NewReplacer(
	`\&`, `&`,
	`\%`, `%`,
	`\$`, `$`,
	`\#`, `#`,
	`\_`, `_`,
	`\{`, `{`,
	`\}`, `}`,
)

// TranscriptToDocx writes the cleaned transcript, one Word paragraph per
// transcript paragraph, under a bold title.
func TranscriptToDocx(title string, cleaned transcript.Cleaned, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	doc.AddParagraph("")

	for _, para := range cleaned.Paragraphs {
		addStyledRun(doc.AddParagraph(""), para, false, fontSize)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

// NotesToDocx converts a generated LaTeX body to a styled Word document.
// Only sectioning, list items and bold text carry over; other markup is
// reduced to its text.
func NotesToDocx(title, body, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") || reEnv.MatchString(trimmed) {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), plainText(m[2]), true, headingSize(m[1]))
			continue
		}

		if m := reItem.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func headingSize(command string) uint64 {
	switch command {
	case "section":
		return 15
	case "subsection":
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText splits on \textbf so bold spans become bold runs.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if clean := plainText(part); clean != "" {
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(plainText(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

// plainText strips LaTeX commands, keeping the text of their first argument.
func plainText(s string) string {
	s = reInline.ReplaceAllString(s, "$1")
	s = reCommand.ReplaceAllString(s, "$1")
	s = reMath.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "~", " ")
	return unescaper.Replace(s)
}
