package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yt-embed/domain/dto"
	"yt-embed/domain/model"
	"yt-embed/infrastructure/logger"
	"yt-embed/infrastructure/shortcode"

	"github.com/adrg/frontmatter"
	"github.com/kkdai/youtube/v2"
)

// ShortcodeName is the component name recognised in documents.
const ShortcodeName = "Youtube"

var ErrInvalidVideoURL = errors.New("invalid youtube url")

// IShortcodeUsecase expands Youtube shortcodes in a document body
type IShortcodeUsecase interface {
	Expand(ctx context.Context, content string) (*dto.ShortcodeRenderResponse, error)
}

type ShortcodeUsecase struct {
	embeds IEmbedUsecase
	parser *shortcode.Parser
}

func NewShortcodeUsecase(embeds IEmbedUsecase) IShortcodeUsecase {
	return &ShortcodeUsecase{embeds: embeds, parser: shortcode.NewParser(ShortcodeName)}
}

// Expand strips front matter and replaces every shortcode with rendered markup.
func (u *ShortcodeUsecase) Expand(ctx context.Context, content string) (*dto.ShortcodeRenderResponse, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	html, count, err := u.parser.Replace(string(body), func(tag shortcode.Tag) (string, error) {
		req, err := embedRequestFromAttrs(tag.Attrs)
		if err != nil {
			return "", err
		}
		rendered, err := u.embeds.Render(ctx, req)
		if err != nil {
			return "", err
		}
		return rendered.HTML, nil
	})
	if err != nil {
		return nil, err
	}

	logger.GetLogger().WithField("count", count).Debug("Expanded shortcodes")
	res := &dto.ShortcodeRenderResponse{HTML: html, Count: count}
	if len(meta) > 0 {
		res.FrontMatter = normalize(meta).(map[string]any)
	}
	return res, nil
}

// embedRequestFromAttrs splits the tag attributes into id, title and extra.
// url is only consulted when id is absent.
func embedRequestFromAttrs(attrs map[string]any) (model.EmbedRequest, error) {
	req := model.EmbedRequest{Extra: map[string]any{}}
	for k, v := range attrs {
		switch k {
		case model.PropID:
			req.ID = fmt.Sprint(v)
		case model.PropTitle:
			req.Title = fmt.Sprint(v)
		case "url":
		default:
			req.Extra[k] = v
		}
	}
	if _, hasID := attrs[model.PropID]; !hasID {
		if raw, ok := attrs["url"].(string); ok && raw != "" {
			id, err := youtube.ExtractVideoID(raw)
			if err != nil {
				return req, fmt.Errorf("%w %q: %v", ErrInvalidVideoURL, raw, err)
			}
			req.ID = id
		}
	} else if raw, ok := attrs["url"]; ok {
		req.Extra["url"] = raw
	}
	return req, nil
}

// normalize converts the map[interface{}]interface{} values produced by the
// YAML decoder into JSON-encodable maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}
