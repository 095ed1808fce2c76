package chunk

// DefaultWords is the chunk size used when tokenising a corpus in parallel.
const DefaultWords = 4096

// Split slices s into chunks of at most max whitespace-separated words
// without decoding UTF-8 runes. Chunks are sub-slices of s; only the
// result slice is allocated. Boundaries always fall on a space or newline,
// so no word is ever cut in two.
func Split(s string, max int) []string {
	if max <= 0 {
		max = DefaultWords
	}

	// Capacity hint: assume "avg 5-byte word + 1 space".
	hint := len(s)/(max*6) + 1
	res := make([]string, 0, hint)

	start, words := 0, 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == ' ' || b == '\n' || b == '\t' || b == '\r' {
			words++
			if words == max {
				res = append(res, s[start:i])
				start, words = i+1, 0
			}
		}
	}
	// trailing slice (never empty unless s ends on a boundary)
	if start < len(s) || len(res) == 0 {
		res = append(res, s[start:])
	}
	return res
}
