package embedder

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"yt-embed/domain/model"
)

//go:embed assets/lite-youtube-embed.css
var stylesheet []byte

// Stylesheet returns the CSS that styles lite embeds. It is read once at init.
func Stylesheet() []byte {
	return stylesheet
}

// IRenderer turns forwarded props into embed markup.
type IRenderer interface {
	Render(props model.EmbedProps) (template.HTML, error)
}

const (
	defaultPoster      = "hqdefault"
	defaultPlayerClass = "lty-playbtn"
	defaultActivated   = "lyt-activated"
	defaultAnnounce    = "Watch"
	defaultContainer   = "article"
	defaultRel         = "preload"
	defaultReferrer    = "strict-origin-when-cross-origin"
)

// options the renderer interprets; everything else becomes a data attribute
var knownProps = map[string]struct{}{
	model.PropWrapperClass: {},
	model.PropID:           {},
	model.PropTitle:        {},
	"poster":               {},
	"webp":                 {},
	"thumbnail":            {},
	"noCookie":             {},
	"cookie":               {},
	"playlist":             {},
	"playlistCoverId":      {},
	"params":               {},
	"muted":                {},
	"aspectWidth":          {},
	"aspectHeight":         {},
	"announce":             {},
	"playerClass":          {},
	"iframeClass":          {},
	"activatedClass":       {},
	"containerElement":     {},
	"adNetwork":            {},
	"referrerPolicy":       {},
	"rel":                  {},
}

var containers = map[string]struct{}{
	"article": {},
	"div":     {},
	"section": {},
	"figure":  {},
}

var attrName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// LiteYouTube renders the click-to-load facade used in place of a full
// YouTube iframe. The iframe URL is carried in data-iframe-src so the client
// script can swap it in on activation.
type LiteYouTube struct{}

func NewLiteYouTube() IRenderer {
	return &LiteYouTube{}
}

func (r *LiteYouTube) Render(props model.EmbedProps) (template.HTML, error) {
	title := props.String(model.PropTitle)

	params, err := EncodeParams(props["params"])
	if err != nil {
		return "", fmt.Errorf("encode player params: %w", err)
	}

	posterURL := PosterURL(props)
	iframeURL := IframeURL(props, params)

	aspectWidth := props.Number("aspectWidth", 16)
	aspectHeight := props.Number("aspectHeight", 9)
	if aspectWidth <= 0 {
		aspectWidth = 16
	}
	if aspectHeight <= 0 {
		aspectHeight = 9
	}
	aspectRatio := strconv.FormatFloat(aspectHeight/aspectWidth*100, 'f', -1, 64)

	container := strings.ToLower(props.String("containerElement"))
	if _, ok := containers[container]; !ok {
		container = defaultContainer
	}

	var b strings.Builder
	rel := orDefault(props.String("rel"), defaultRel)
	fmt.Fprintf(&b, `<link rel="%s" href="%s" as="image">`, esc(rel), esc(posterURL))

	fmt.Fprintf(&b, `<%s class="%s" data-title="%s"`, container, esc(props.String(model.PropWrapperClass)), esc(title))
	fmt.Fprintf(&b, ` style="background-image: url('%s'); --aspect-ratio: %s%%;"`, esc(cssURL(posterURL)), aspectRatio)
	fmt.Fprintf(&b, ` data-iframe-src="%s"`, esc(iframeURL))
	fmt.Fprintf(&b, ` data-iframe-class="%s"`, esc(props.String("iframeClass")))
	fmt.Fprintf(&b, ` data-activated-class="%s"`, esc(orDefault(props.String("activatedClass"), defaultActivated)))
	fmt.Fprintf(&b, ` data-referrer-policy="%s"`, esc(orDefault(props.String("referrerPolicy"), defaultReferrer)))
	fmt.Fprintf(&b, ` data-ad-network="%t"`, !props.Has("adNetwork") || props.Bool("adNetwork"))
	for _, key := range passThroughKeys(props) {
		fmt.Fprintf(&b, ` data-%s="%s"`, kebab(key), esc(attrValue(props[key])))
	}
	b.WriteString(">")

	announce := orDefault(props.String("announce"), defaultAnnounce)
	fmt.Fprintf(&b, `<button type="button" class="%s" aria-label="%s %s">`,
		esc(orDefault(props.String("playerClass"), defaultPlayerClass)), esc(announce), esc(title))
	fmt.Fprintf(&b, `<span class="lty-visually-hidden">%s</span></button>`, esc(announce))
	fmt.Fprintf(&b, `</%s>`, container)

	return template.HTML(b.String()), nil
}

// PosterURL resolves the thumbnail shown before activation.
func PosterURL(props model.EmbedProps) string {
	if thumb := props.String("thumbnail"); thumb != "" {
		return thumb
	}
	poster := orDefault(props.String("poster"), defaultPoster)
	vi, format := "vi", "jpg"
	if props.Bool("webp") {
		vi, format = "vi_webp", "webp"
	}
	videoID := props.String(model.PropID)
	if props.Bool("playlist") {
		videoID = props.String("playlistCoverId")
	}
	return fmt.Sprintf("https://i.ytimg.com/%s/%s/%s.%s", vi, url.PathEscape(videoID), url.PathEscape(poster), format)
}

// IframeURL builds the player URL loaded once the facade is activated.
func IframeURL(props model.EmbedProps, params string) string {
	host := "https://www.youtube.com"
	if props.Bool("noCookie") || (props.Has("cookie") && !props.Bool("cookie")) {
		host = "https://www.youtube-nocookie.com"
	}
	muted := ""
	if props.Bool("muted") {
		muted = "&mute=1"
	}
	if params != "" {
		params = "&" + strings.TrimPrefix(params, "&")
	}
	encodedID := url.QueryEscape(props.String(model.PropID))
	if props.Bool("playlist") {
		return fmt.Sprintf("%s/embed/videoseries?autoplay=1%s&list=%s%s", host, muted, encodedID, params)
	}
	return fmt.Sprintf("%s/embed/%s?autoplay=1&state=1%s%s", host, url.PathEscape(props.String(model.PropID)), muted, params)
}

func passThroughKeys(props model.EmbedProps) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if _, known := knownProps[k]; known {
			continue
		}
		if !attrName.MatchString(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// kebab turns autoPlay into auto-play.
func kebab(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func attrValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int, int64, int32, uint, uint64:
		return fmt.Sprint(t)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

var cssURLReplacer = strings.NewReplacer(`'`, "%27", `"`, "%22", `(`, "%28", `)`, "%29", `\`, "%5C", "\n", "", "\r", "")

func cssURL(u string) string {
	return cssURLReplacer.Replace(u)
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
