package score

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNoBaseline        = errors.New("no baseline digits found")
	ErrInsufficientLines = errors.New("insufficient lines in materials text")
	ErrEmptyMaterial     = errors.New("material line contains no digits")
)

var (
	digitRun = regexp.MustCompile(`\d+`)
	nonDigit = regexp.MustCompile(`[^\d]`)
)

// confusions maps glyphs the recognizer habitually returns in place of
// digits. Applied per line before non-digits are stripped.
var confusions = strings.NewReplacer(
	"o", "0", "O", "0",
	"l", "1", "L", "1",
	"I", "1", "i", "1",
	"|", "1", "!", "1",
)

// ParseBaseline returns the first run of ASCII digits anywhere in text.
func ParseBaseline(text string) (int, error) {
	m := digitRun.FindString(text)
	if m == "" {
		return 0, ErrNoBaseline
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoBaseline, m)
	}
	return n, nil
}

// Materials holds the four box counts in screenshot order.
type Materials struct {
	Wooden   int
	Silver   int
	Gold     int
	Platinum int
}

// ParseMaterials reads the four box counts from the first four non-empty
// lines of the recognized text. Counts are taken as-is: an implausibly
// large misread still parses, matching the upstream recognizer contract.
func ParseMaterials(text string) (Materials, error) {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) < 4 {
		return Materials{}, fmt.Errorf("%w: got %d", ErrInsufficientLines, len(lines))
	}

	var vals [4]int
	for i, ln := range lines[:4] {
		cleaned := nonDigit.ReplaceAllString(confusions.Replace(ln), "")
		if cleaned == "" {
			return Materials{}, fmt.Errorf("%w: %q", ErrEmptyMaterial, ln)
		}
		n, err := strconv.Atoi(cleaned)
		if err != nil {
			return Materials{}, fmt.Errorf("%w: %q", ErrEmptyMaterial, ln)
		}
		vals[i] = n
	}
	return Materials{Wooden: vals[0], Silver: vals[1], Gold: vals[2], Platinum: vals[3]}, nil
}
