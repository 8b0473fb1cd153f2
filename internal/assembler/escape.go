package assembler

import "strings"

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes characters that LaTeX treats as markup. Use it for plain
// text only, never for generated bodies.
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}
