package transcript

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var reSrtTime = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)

// FormatSRT renders segments as SRT cues. Segments with blank text are skipped
// and cues are numbered consecutively.
func FormatSRT(segments []Segment) string {
	var b strings.Builder
	n := 0
	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", n, srtTimestamp(s.Start), srtTimestamp(s.End), text)
	}
	return b.String()
}

// ParseSRT reads SRT cues back into segments.
func ParseSRT(content string) ([]Segment, error) {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return nil, nil
	}

	var segments []Segment
	for i, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		timing := lines[0]
		textStart := 1
		if !strings.Contains(timing, "-->") {
			timing = lines[1]
			textStart = 2
		}
		m := reSrtTime.FindStringSubmatch(strings.TrimSpace(timing))
		if m == nil {
			return nil, fmt.Errorf("cue %d: malformed timing line %q", i+1, timing)
		}
		if textStart >= len(lines) {
			continue
		}
		segments = append(segments, Segment{
			Start: parseClock(m[1:5]),
			End:   parseClock(m[5:9]),
			Text:  strings.Join(lines[textStart:], " "),
		})
	}
	return segments, nil
}

func srtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", int64(h), int64(m), int64(s), int64(ms))
}

// parseClock converts regexp groups (h, m, s, ms) into a duration. The regexp
// guarantees every group is numeric.
func parseClock(parts []string) time.Duration {
	n := make([]int, len(parts))
	for i, p := range parts {
		n[i], _ = strconv.Atoi(p)
	}
	return time.Duration(n[0])*time.Hour +
		time.Duration(n[1])*time.Minute +
		time.Duration(n[2])*time.Second +
		time.Duration(n[3])*time.Millisecond
}
