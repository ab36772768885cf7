package model

import "strconv"

// WrapperClass is always applied to the outer container of a YouTube embed.
const WrapperClass = "yt-lite rounded-lg"

// Keys owned by the wrapper. Values supplied under these keys in
// EmbedRequest.Extra are replaced.
const (
	PropWrapperClass = "wrapperClass"
	PropID           = "id"
	PropTitle        = "title"
)

// EmbedRequest is the input of a single embed render. It is built per render
// and never mutated afterwards.
type EmbedRequest struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Extra map[string]any `json:"extra,omitempty"`
}

// EmbedProps is the full set of named options handed to the embed renderer.
type EmbedProps map[string]any

// String returns the value stored under key when it is a string.
func (p EmbedProps) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Bool reports whether key holds true. Strings "true" and "1" count as true.
func (p EmbedProps) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	}
	return false
}

// Has reports whether key is present, whatever its value.
func (p EmbedProps) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Number returns the numeric value stored under key or def. Numeric strings
// such as "4" are parsed.
func (p EmbedProps) Number(key string, def float64) float64 {
	switch v := p[key].(type) {
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case float32:
		return float64(v)
	}
	return def
}

// RenderedEmbed pairs the markup with the props that produced it.
type RenderedEmbed struct {
	HTML  string     `json:"html"`
	Props EmbedProps `json:"props"`
}
