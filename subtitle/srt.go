package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/clipforge-cli/timeline"
)

// ErrNoParsableCues is returned when interchange text contains no block
// that survives parsing.
var ErrNoParsableCues = errors.New("subtitle: no parsable cues")

// FormatTimestamp renders seconds as HH:MM:SS,mmm with fixed-width
// zero-padded fields. Milliseconds are truncated, not rounded.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds * 1000)
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	secs := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp parses an HH:MM:SS,mmm field back into seconds.
func ParseTimestamp(s string) (float64, error) {
	var hours, minutes, secs, millis int
	n, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d:%d,%d", &hours, &minutes, &secs, &millis)
	if n != 4 || err != nil {
		return 0, fmt.Errorf("subtitle: bad timestamp %q", s)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || secs < 0 || secs > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("subtitle: timestamp %q out of range", s)
	}
	return float64(hours*3600+minutes*60+secs) + float64(millis)/1000, nil
}

// Marshal serializes cues in the given order as SRT: 1-based index line,
// timing line, one or more text lines, blocks separated by a blank line.
func Marshal(cues []Cue) string {
	var b strings.Builder
	for i, c := range cues {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(c.Range.Start), FormatTimestamp(c.Range.End))
		b.WriteString(c.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Parse reads SRT interchange text into cues. Blocks with fewer than three
// lines or a malformed timing line are skipped, not fatal. Parse fails only
// when non-blank input yields no cue at all.
func Parse(text string) ([]Cue, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var cues []Cue
	var block []string
	flush := func() {
		if cue, ok := parseBlock(block); ok {
			cues = append(cues, cue)
		}
		block = block[:0]
	}

	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()

	if len(cues) == 0 {
		if strings.TrimSpace(normalized) == "" {
			return nil, nil
		}
		return nil, ErrNoParsableCues
	}
	return cues, nil
}

// parseBlock converts one index/timing/text block into a cue. Blocks that
// violate the shape are dropped by the caller.
func parseBlock(lines []string) (Cue, bool) {
	if len(lines) < 3 {
		return Cue{}, false
	}

	if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
		return Cue{}, false
	}

	parts := strings.Split(lines[1], "-->")
	if len(parts) != 2 {
		return Cue{}, false
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Cue{}, false
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Cue{}, false
	}
	if start >= end {
		return Cue{}, false
	}

	return Cue{
		Range: timeline.Range{Start: start, End: end},
		Text:  strings.Join(lines[2:], "\n"),
	}, true
}
