package shortcode

import "strings"

// span is a half-open byte range [start, end).
type span struct {
	start, end int
}

// codeRanges returns the fenced code blocks and inline code spans of a
// markdown body. An unclosed fence runs to the end of the document.
func codeRanges(content string) []span {
	var ranges []span
	var fence struct {
		open  bool
		char  byte
		size  int
		start int
	}
	textStart := 0

	for pos := 0; pos < len(content); {
		end := strings.IndexByte(content[pos:], '\n')
		if end < 0 {
			end = len(content)
		} else {
			end += pos + 1
		}
		line := content[pos:end]

		if char, size, rest, ok := fenceLine(line); ok {
			switch {
			case !fence.open:
				ranges = append(ranges, inlineSpans(content, textStart, pos)...)
				fence.open, fence.char, fence.size, fence.start = true, char, size, pos
			case char == fence.char && size >= fence.size && strings.TrimSpace(rest) == "":
				ranges = append(ranges, span{fence.start, end})
				fence.open = false
				textStart = end
			}
		}
		pos = end
	}

	if fence.open {
		ranges = append(ranges, span{fence.start, len(content)})
	} else {
		ranges = append(ranges, inlineSpans(content, textStart, len(content))...)
	}
	return ranges
}

// fenceLine reports whether line opens or closes a code fence: up to three
// spaces of indent followed by at least three backticks or tildes.
func fenceLine(line string) (byte, int, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return 0, 0, "", false
	}
	char := trimmed[0]
	if char != '`' && char != '~' {
		return 0, 0, "", false
	}
	size := 0
	for size < len(trimmed) && trimmed[size] == char {
		size++
	}
	if size < 3 {
		return 0, 0, "", false
	}
	return char, size, trimmed[size:], true
}

// inlineSpans finds backtick code spans in content[from:to]. A span closes
// at the next run of exactly the same number of backticks.
func inlineSpans(content string, from, to int) []span {
	var ranges []span
	for i := from; i < to; {
		if content[i] != '`' {
			i++
			continue
		}
		n := runLength(content, i, to)
		closeAt := -1
		for j := i + n; j < to; {
			if content[j] != '`' {
				j++
				continue
			}
			m := runLength(content, j, to)
			if m == n {
				closeAt = j + m
				break
			}
			j += m
		}
		if closeAt < 0 {
			i += n
			continue
		}
		ranges = append(ranges, span{i, closeAt})
		i = closeAt
	}
	return ranges
}

func runLength(content string, i, to int) int {
	n := 0
	for i+n < to && content[i+n] == '`' {
		n++
	}
	return n
}

func inRanges(ranges []span, pos int) bool {
	for _, r := range ranges {
		if pos >= r.start && pos < r.end {
			return true
		}
	}
	return false
}
