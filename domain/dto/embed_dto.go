package dto

// EmbedRenderRequest is the body of POST /api/embeds/youtube
type EmbedRenderRequest struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Extra map[string]any `json:"extra,omitempty"`
}

// ShortcodeRenderRequest is the body of POST /api/shortcodes/render
type ShortcodeRenderRequest struct {
	Content string `json:"content"`
}

// ShortcodeRenderResponse holds an expanded document
type ShortcodeRenderResponse struct {
	HTML        string         `json:"html"`
	Count       int            `json:"count"`
	FrontMatter map[string]any `json:"frontMatter,omitempty"`
}
