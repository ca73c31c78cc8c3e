package tarjama

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ChunkConfig controls how long texts are split before translation.
// Sizes are measured in runes.
type ChunkConfig struct {
	Threshold int           // Texts longer than this are chunked
	MaxSize   int           // Upper bound for a single chunk
	Delay     time.Duration // Pause between consecutive chunks
}

// DefaultChunkConfig returns the chunking defaults.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Threshold: 450,
		MaxSize:   300,
		Delay:     250 * time.Millisecond,
	}
}

// needsChunking reports whether text is long enough to be split.
func (c ChunkConfig) needsChunking(text string) bool {
	return c.Threshold > 0 && c.MaxSize > 0 && utf8.RuneCountInString(text) > c.Threshold
}

// SplitSentences splits text after every newline and after '.', '!' or '?'
// when the mark is followed by whitespace. Sentences are returned trimmed,
// in order.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?', '\n':
		default:
			continue
		}
		if runes[i] != '\n' && (i+1 >= len(runes) || !unicode.IsSpace(runes[i+1])) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}

		// Skip the whitespace run after the boundary
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// ChunkText greedily packs adjacent sentences into chunks of at most maxSize
// runes. Sentences longer than maxSize are split at word boundaries, and
// words longer than maxSize are cut.
func ChunkText(text string, maxSize int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxSize <= 0 {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, sentence := range SplitSentences(text) {
		for _, piece := range splitLong(sentence, maxSize) {
			n := utf8.RuneCountInString(piece)
			if curLen > 0 && curLen+1+n > maxSize {
				flush()
			}
			if curLen > 0 {
				cur.WriteByte(' ')
				curLen++
			}
			cur.WriteString(piece)
			curLen += n
		}
	}
	flush()

	return chunks
}

// splitLong breaks s into word-boundary pieces no longer than maxSize runes.
func splitLong(s string, maxSize int) []string {
	if utf8.RuneCountInString(s) <= maxSize {
		return []string{s}
	}

	var pieces []string
	var cur strings.Builder
	curLen := 0

	for _, word := range strings.Fields(s) {
		for _, part := range cutRunes(word, maxSize) {
			n := utf8.RuneCountInString(part)
			if curLen > 0 && curLen+1+n > maxSize {
				pieces = append(pieces, cur.String())
				cur.Reset()
				curLen = 0
			}
			if curLen > 0 {
				cur.WriteByte(' ')
				curLen++
			}
			cur.WriteString(part)
			curLen += n
		}
	}
	if curLen > 0 {
		pieces = append(pieces, cur.String())
	}
	return pieces
}

// cutRunes splits a single word into pieces of at most size runes.
func cutRunes(word string, size int) []string {
	runes := []rune(word)
	if len(runes) <= size {
		return []string{word}
	}
	parts := make([]string, 0, len(runes)/size+1)
	for len(runes) > size {
		parts = append(parts, string(runes[:size]))
		runes = runes[size:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
