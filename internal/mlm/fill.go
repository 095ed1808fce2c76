package mlm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mask is the placeholder token the model fills.
const Mask = "[MASK]"

// ErrNoCandidate is returned when the model proposes nothing for a mask.
var ErrNoCandidate = errors.New("mlm: no candidate for mask")

// DynamicMask puts a mask between every pair of words.
func DynamicMask(words []string) string {
	if len(words) == 0 {
		return ""
	}
	parts := make([]string, 0, 2*len(words)-1)
	for i, w := range words {
		parts = append(parts, w)
		if i < len(words)-1 {
			parts = append(parts, Mask)
		}
	}
	return strings.Join(parts, " ")
}

// Substitute replaces the first mask in text with token. Word-piece
// continuations ("##ing") lose their prefix.
func Substitute(text, token string) string {
	return strings.Replace(text, Mask, strings.TrimPrefix(token, "##"), 1)
}

// Fill resolves the masks of text one at a time, left to right, each time
// asking f about the partially filled sentence.
func Fill(ctx context.Context, f Filler, text string) (string, error) {
	for n := strings.Count(text, Mask); n > 0; n-- {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		cands, err := f.FillMask(ctx, text)
		if err != nil {
			return "", err
		}
		if len(cands) == 0 || strings.TrimSpace(cands[0].TokenStr) == "" {
			return "", fmt.Errorf("%w %d", ErrNoCandidate, strings.Count(text, Mask))
		}
		text = Substitute(text, strings.TrimSpace(cands[0].TokenStr))
	}
	return text, nil
}

// Complete masks between every pair of words, fills the masks and tidies
// the result. A single word is only tidied.
func Complete(ctx context.Context, f Filler, words []string) (string, error) {
	filled, err := Fill(ctx, f, DynamicMask(words))
	if err != nil {
		return "", err
	}
	return Clean(filled), nil
}

// CompleteAfterFirst inserts one mask after the first word and fills it.
func CompleteAfterFirst(ctx context.Context, f Filler, words []string) (string, error) {
	if len(words) == 0 {
		return "", nil
	}
	masked := append([]string{words[0], Mask}, words[1:]...)
	filled, err := Fill(ctx, f, strings.Join(masked, " "))
	if err != nil {
		return "", err
	}
	return Clean(filled), nil
}

var punctSpacing = strings.NewReplacer(" ,", ",", " .", ".", " !", "!", " ?", "?")

// Clean drops [CLS]/[SEP], removes spaces before punctuation and
// capitalises the first letter.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "[CLS]", "")
	s = strings.ReplaceAll(s, "[SEP]", "")
	s = strings.Join(strings.Fields(s), " ")
	s = punctSpacing.Replace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
