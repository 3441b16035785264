package service

import (
	"html"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CharsPerMinute is the divisor of the read time estimate.
const CharsPerMinute = 200

type ITextService interface {
	Fold(input string) string
	ContainsFolded(haystack, needle string) bool
	RemoveTags(input string) string
	ReduceToLength(input string, length int) string
	ReadTime(content string) int
	SplitTags(input string) []string
}

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Fold makes text comparable regardless of case and Vietnamese diacritics:
// NFD decomposition, combining marks removed, đ mapped to d, lower case.
// đ has no canonical decomposition, so it needs the explicit mapping.
func (ts *TextService) Fold(input string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			switch r {
			case 'đ', 'Đ':
				return 'd'
			}
			return r
		}),
		norm.NFC,
	)
	folded, _, err := transform.String(t, input)
	if err != nil {
		folded = input
	}
	return strings.ToLower(folded)
}

// ContainsFolded reports whether needle is a substring of haystack after folding both.
func (ts *TextService) ContainsFolded(haystack, needle string) bool {
	return strings.Contains(ts.Fold(haystack), ts.Fold(needle))
}

// RemoveTags strips html tags, unescapes entities and collapses whitespace.
func (ts *TextService) RemoveTags(input string) string {
	plain := tagPattern.ReplaceAllString(input, " ")
	plain = html.UnescapeString(plain)
	return strings.Join(strings.Fields(plain), " ")
}

// ReduceToLength cuts input at a word boundary so that it has at most length runes.
func (ts *TextService) ReduceToLength(input string, length int) string {
	if utf8.RuneCountInString(input) <= length {
		return input
	}
	var builder strings.Builder
	total := 0
	for i, word := range strings.Fields(input) {
		n := utf8.RuneCountInString(word)
		if i > 0 {
			n++
		}
		if total+n > length {
			break
		}
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(word)
		total += n
	}
	return builder.String()
}

// ReadTime is max(1, round(characters / 200)), counted over the raw content.
func (ts *TextService) ReadTime(content string) int {
	minutes := int(math.Round(float64(utf8.RuneCountInString(content)) / CharsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// SplitTags splits a comma-joined tag string, trimming blanks.
func (ts *TextService) SplitTags(input string) []string {
	tags := []string{}
	for _, tag := range strings.Split(input, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
