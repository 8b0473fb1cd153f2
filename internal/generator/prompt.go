package generator

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	placeholderTranscript = "{{TRANSCRIPT}}"
	placeholderTitle      = "{{TITLE}}"
)

// systemPrompt is sent as the system message by the API providers.
const systemPrompt = "You are an expert at creating well-structured LaTeX documents from lecture transcripts. Create professional, academic notes with proper formatting."

//go:embed prompt.txt
var defaultPrompt string

// DefaultPrompt returns the built-in prompt template.
func DefaultPrompt() string {
	return defaultPrompt
}

// LoadPrompt reads a prompt template from path, or returns the built-in one when path is empty.
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return defaultPrompt, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	return string(data), nil
}

// BuildMessage fills the prompt's placeholders. A prompt without a transcript
// placeholder gets the transcript appended.
func BuildMessage(req Request) string {
	msg := strings.ReplaceAll(req.Prompt, placeholderTitle, req.Title)
	if strings.Contains(msg, placeholderTranscript) {
		return strings.ReplaceAll(msg, placeholderTranscript, req.Transcript)
	}
	return strings.TrimRight(msg, "\n") + "\n\nTranscript:\n---\n" + req.Transcript + "\n---\n"
}

var reFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\n(.*?)\n?```$")

// cleanReply strips a code fence around the reply and, when the model ignored
// the instructions and wrote a complete document, keeps only its body.
func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	if m := reFence.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	const begin, end = `\begin{document}`, `\end{document}`
	if i := strings.Index(s, begin); i >= 0 {
		s = s[i+len(begin):]
		if j := strings.LastIndex(s, end); j >= 0 {
			s = s[:j]
		}
		s = strings.Replace(s, `\maketitle`, "", 1)
		s = strings.TrimSpace(s)
	}
	return s
}
