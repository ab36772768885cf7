// Package shortcode finds component-style shortcodes such as
// <Youtube id="abc" title="Clip" muted /> in markdown and MDX bodies.
package shortcode

import (
	"regexp"
	"strconv"
	"strings"
)

// Tag is one shortcode occurrence. Start and End are byte offsets into the
// scanned content.
type Tag struct {
	Name  string
	Start int
	End   int
	Attrs map[string]any
}

var attrPattern = regexp.MustCompile(`([A-Za-z_][\w-]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|\{([^}]*)\}))?`)

func tagPattern(name string) *regexp.Regexp {
	n := regexp.QuoteMeta(name)
	// the name must end at whitespace, "/" or ">" so <Youtube-list> and
	// <Youtube.Item> are left alone
	return regexp.MustCompile(`<` + n + `((?:\s(?:[^>"'{}]|"[^"]*"|'[^']*'|\{[^}]*\})*?)?)\s*/?>(?:\s*</` + n + `\s*>)?`)
}

// Parser scans for a single shortcode name.
type Parser struct {
	name    string
	pattern *regexp.Regexp
}

func NewParser(name string) *Parser {
	return &Parser{name: name, pattern: tagPattern(name)}
}

// Find returns every tag in content in document order. Tags inside fenced
// code blocks and inline code spans are not returned.
func (p *Parser) Find(content string) []Tag {
	matches := p.pattern.FindAllStringSubmatchIndex(content, -1)
	tags := make([]Tag, 0, len(matches))
	code := codeRanges(content)
	for _, m := range matches {
		if inRanges(code, m[0]) {
			continue
		}
		tags = append(tags, Tag{
			Name:  p.name,
			Start: m[0],
			End:   m[1],
			Attrs: parseAttrs(content[m[2]:m[3]]),
		})
	}
	return tags
}

// Replace calls fn for each tag and splices its result into content. fn may
// return an error to abort.
func (p *Parser) Replace(content string, fn func(Tag) (string, error)) (string, int, error) {
	tags := p.Find(content)
	if len(tags) == 0 {
		return content, 0, nil
	}
	var b strings.Builder
	last := 0
	for _, tag := range tags {
		out, err := fn(tag)
		if err != nil {
			return "", 0, err
		}
		b.WriteString(content[last:tag.Start])
		b.WriteString(out)
		last = tag.End
	}
	b.WriteString(content[last:])
	return b.String(), len(tags), nil
}

func parseAttrs(raw string) map[string]any {
	attrs := make(map[string]any)
	for _, m := range attrPattern.FindAllStringSubmatchIndex(raw, -1) {
		key := raw[m[2]:m[3]]
		switch {
		case m[4] >= 0:
			attrs[key] = raw[m[4]:m[5]]
		case m[6] >= 0:
			attrs[key] = raw[m[6]:m[7]]
		case m[8] >= 0:
			attrs[key] = expressionValue(raw[m[8]:m[9]])
		default:
			// bare attribute
			attrs[key] = true
		}
	}
	return attrs
}

// expressionValue interprets the literal forms allowed inside {...}.
func expressionValue(expr string) any {
	expr = strings.TrimSpace(expr)
	switch expr {
	case "true":
		return true
	case "false":
		return false
	case "null", "undefined":
		return nil
	}
	if n, err := strconv.ParseFloat(expr, 64); err == nil {
		return n
	}
	if len(expr) >= 2 {
		q := expr[0]
		if (q == '"' || q == '\'' || q == '`') && expr[len(expr)-1] == q {
			return expr[1 : len(expr)-1]
		}
	}
	return expr
}
