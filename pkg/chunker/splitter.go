package chunker

import "strings"

// Profile bounds the splitter. Sizes are in characters.
type Profile struct {
	ChunkSize int
	Overlap   int
	MinLength int // split fragments shorter than this are dropped as noise
}

// DocumentProfile is used for uploaded documents, FAQs and sheet rows.
func DocumentProfile() Profile {
	return Profile{ChunkSize: 1500, Overlap: 300, MinLength: 50}
}

// WebProfile is used for crawled page content, which tends to be denser
// in boilerplate and benefits from smaller segments.
func WebProfile() Profile {
	return Profile{ChunkSize: 800, Overlap: 200, MinLength: 50}
}

// Split divides text into overlapping, size-bounded segments. Boundaries
// are preferred in order: paragraph, sentence, raw character cut. The
// overlap keeps a fact that straddles a boundary retrievable from at
// least one chunk.
func Split(text string, p Profile) []string {
	if p.ChunkSize <= 0 {
		p = DocumentProfile()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	// An item that fits in a single chunk is always kept, however short.
	// The noise floor only applies to fragments produced by splitting,
	// so a one-line FAQ entry still gets indexed.
	if len(text) <= p.ChunkSize {
		return []string{text}
	}

	var out []string
	for _, c := range splitRecursive(text, p, levelParagraph) {
		c = strings.TrimSpace(c)
		if len(c) >= p.MinLength {
			out = append(out, c)
		}
	}
	return out
}

const (
	levelParagraph = iota
	levelSentence
	levelRaw
)

func splitRecursive(text string, p Profile, level int) []string {
	if len(text) <= p.ChunkSize {
		return []string{text}
	}
	if level >= levelRaw {
		return rawCut(text, p)
	}

	var parts []string
	if level == levelParagraph {
		parts = splitParagraphs(text)
	} else {
		parts = splitSentences(text)
	}
	if len(parts) <= 1 {
		// No boundary of this kind exists, fall through to the next one.
		return splitRecursive(text, p, level+1)
	}
	return mergeParts(parts, p, level)
}

// mergeParts greedily packs boundary-aligned parts into chunks up to the
// size budget, seeding each new chunk with the trailing parts of the
// previous one (up to Overlap chars). Parts that alone exceed the budget
// are re-split at the next boundary level.
func mergeParts(parts []string, p Profile, level int) []string {
	var chunks []string
	var cur []string
	curLen := 0
	fresh := false // whether cur holds anything beyond the overlap seed

	flush := func() {
		if curLen == 0 || !fresh {
			return
		}
		chunks = append(chunks, strings.Join(cur, ""))
		// Seed the next chunk with trailing parts totaling <= Overlap.
		var tail []string
		tailLen := 0
		for i := len(cur) - 1; i >= 0; i-- {
			if tailLen+len(cur[i]) > p.Overlap {
				break
			}
			tail = append([]string{cur[i]}, tail...)
			tailLen += len(cur[i])
		}
		cur, curLen = tail, tailLen
		fresh = false
	}

	for _, part := range parts {
		if len(part) > p.ChunkSize {
			flush()
			cur, curLen, fresh = nil, 0, false
			chunks = append(chunks, splitRecursive(part, p, level+1)...)
			continue
		}
		if curLen+len(part) > p.ChunkSize {
			flush()
			// Drop overlap seed from the front until the part fits.
			for len(cur) > 0 && curLen+len(part) > p.ChunkSize {
				curLen -= len(cur[0])
				cur = cur[1:]
			}
		}
		cur = append(cur, part)
		curLen += len(part)
		fresh = true
	}
	flush()
	return chunks
}

// splitParagraphs splits on blank lines, keeping the separator attached
// so rejoining parts reproduces the original text.
func splitParagraphs(text string) []string {
	var parts []string
	for {
		i := strings.Index(text, "\n\n")
		if i < 0 {
			break
		}
		j := i + 2
		for j < len(text) && text[j] == '\n' {
			j++
		}
		parts = append(parts, text[:j])
		text = text[j:]
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

// splitSentences splits after sentence-ending punctuation followed by
// whitespace, keeping the whitespace attached to the preceding sentence.
func splitSentences(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
			j++
		}
		if j < len(text) && !isSpace(text[j]) {
			// Mid-token punctuation (e.g. "v1.5", URLs) is not a boundary.
			i = j - 1
			continue
		}
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		parts = append(parts, text[start:j])
		start = j
		i = j - 1
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

// rawCut is the last resort: fixed-size rune windows with overlap,
// for text with no usable boundaries at all.
func rawCut(text string, p Profile) []string {
	runes := []rune(text)
	step := p.ChunkSize - p.Overlap
	if step <= 0 {
		step = p.ChunkSize
	}

	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + p.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
