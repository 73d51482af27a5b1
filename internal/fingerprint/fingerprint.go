// Package fingerprint derives structural and lexical features from post
// text: word, sentence, emoji, hashtag, mention, link and call-to-action
// counts used by the dashboards for content analysis.
package fingerprint

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"linkpulse/pkg/contracts/domain"
)

// composeFields is the priority order used to choose the canonical text of a
// post: rich body fields before titles.
var composeFields = []string{
	"post body", "body", "text", "content", "post text", "description", "post title", "title",
}

var ctaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)apply now`),
	regexp.MustCompile(`(?i)sign up`),
	regexp.MustCompile(`(?i)book a demo`),
	regexp.MustCompile(`(?i)get started`),
	regexp.MustCompile(`(?i)join the waitlist`),
	regexp.MustCompile(`(?i)download (?:the )?(?:guide|whitepaper|report)`),
	regexp.MustCompile(`(?i)register today`),
	regexp.MustCompile(`(?i)learn more`),
}

var (
	linkPattern     = regexp.MustCompile(`(?i)https?://[^\s)]+`)
	hashtagPattern  = regexp.MustCompile(`#[\p{L}0-9_]+`)
	mentionPattern  = regexp.MustCompile(`@[\w.%-]+`)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]?`)
	mediaHint       = regexp.MustCompile(`(?i)video|image|rich|carousel|document`)
)

// pictographic covers the Unicode blocks holding emoji and related symbols.
// The regexp engine has no Extended_Pictographic class, so emoji are counted
// per rune against this table instead.
var pictographic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // Miscellaneous Symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // Dingbats
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1}, // Misc Symbols and Arrows
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F0FF, Stride: 1}, // Mahjong, Dominoes, Cards
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // Misc Symbols and Pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // Emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // Transport and Map
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // Supplemental Symbols
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1}, // Symbols and Pictographs Extended-A
	},
}

// ComposePostText returns the canonical text for a record, scanning body
// fields before titles and returning the first non-blank value. Keys are
// normalized header names.
func ComposePostText(rec map[string]string) string {
	for _, field := range composeFields {
		if v, ok := rec[field]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Compute derives the text statistics for one piece of post text. typeHint
// is the raw post-type column and is used only for media detection.
func Compute(text, typeHint string) domain.TextStats {
	normalized := strings.TrimSpace(text)

	var stats domain.TextStats
	stats.CharCount = utf8.RuneCountInString(normalized)
	if normalized != "" {
		stats.WordCount = len(strings.Fields(normalized))
		for _, seg := range sentencePattern.FindAllString(normalized, -1) {
			if strings.TrimSpace(seg) != "" {
				stats.SentenceCount++
			}
		}
	}
	for _, r := range normalized {
		if unicode.Is(pictographic, r) {
			stats.EmojiCount++
		}
	}
	stats.HashtagCount = len(hashtagPattern.FindAllString(normalized, -1))
	stats.MentionCount = len(mentionPattern.FindAllString(normalized, -1))
	stats.LinkCount = len(linkPattern.FindAllString(normalized, -1))
	for _, p := range ctaPatterns {
		stats.CTACount += len(p.FindAllStringIndex(normalized, -1))
	}
	stats.HasMedia = typeHint != "" && mediaHint.MatchString(typeHint)
	return stats
}
