package transcript

import (
	"strings"
	"testing"
	"time"
)

func TestFormatSRT(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2 * time.Second, Text: " Hello everyone. "},
		{Start: 2 * time.Second, End: 3 * time.Second, Text: "   "},
		{Start: time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond, End: time.Hour + 2*time.Minute + 5*time.Second, Text: "Welcome back."},
	}

	got := FormatSRT(segments)
	want := "1\n00:00:00,000 --> 00:00:02,000\nHello everyone.\n\n" +
		"2\n01:02:03,045 --> 01:02:05,000\nWelcome back.\n\n"
	if got != want {
		t.Errorf("FormatSRT() =\n%q\nwant\n%q", got, want)
	}
}

func TestParseSRT(t *testing.T) {
	content := "1\r\n00:00:00,000 --> 00:00:02,500\r\nFirst line\r\nsecond line\r\n\r\n" +
		"2\n00:00:10.000 --> 00:00:12,000\nThird\n"

	segments, err := ParseSRT(content)
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].End != 2500*time.Millisecond {
		t.Errorf("End = %v, want 2.5s", segments[0].End)
	}
	if segments[0].Text != "First line second line" {
		t.Errorf("Text = %q", segments[0].Text)
	}
	if segments[1].Start != 10*time.Second {
		t.Errorf("Start = %v, want 10s", segments[1].Start)
	}
}

func TestParseSRTRoundTrip(t *testing.T) {
	in := []Segment{
		{Start: 0, End: 2 * time.Second, Text: "a b c"},
		{Start: 2100 * time.Millisecond, End: 4 * time.Second, Text: "d e"},
	}
	out, err := ParseSRT(FormatSRT(in))
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d segments, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("segment %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestParseSRTEmptyAndMalformed(t *testing.T) {
	segments, err := ParseSRT("  \n ")
	if err != nil || segments != nil {
		t.Errorf("ParseSRT(blank) = %v, %v; want nil, nil", segments, err)
	}

	if _, err := ParseSRT("1\nnot a timestamp --> nope\ntext\n"); err == nil {
		t.Error("ParseSRT() should reject malformed timing")
	}
}

func TestCleanedRoundTrip(t *testing.T) {
	c := Cleaned{Paragraphs: []string{"first paragraph", "second paragraph"}}
	if c.Empty() {
		t.Error("Empty() = true for non-empty transcript")
	}
	got := ParseCleaned(c.Text() + "\n\n\n")
	if strings.Join(got.Paragraphs, "|") != "first paragraph|second paragraph" {
		t.Errorf("ParseCleaned() = %v", got.Paragraphs)
	}
	if !(Cleaned{}).Empty() {
		t.Error("Empty() = false for zero transcript")
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText([]Segment{{Text: " one "}, {Text: ""}, {Text: "two"}})
	if got != "one two" {
		t.Errorf("PlainText() = %q, want %q", got, "one two")
	}
}
