package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"yt-embed/domain/model"
	"yt-embed/domain/repository"
	"yt-embed/infrastructure/embedder"
	"yt-embed/infrastructure/logger"
)

// IEmbedUsecase renders YouTube embeds
type IEmbedUsecase interface {
	// Youtube returns the props forwarded to the renderer for req.
	Youtube(req model.EmbedRequest) model.EmbedProps
	// Render forwards req to the renderer and returns the markup.
	Render(ctx context.Context, req model.EmbedRequest) (*model.RenderedEmbed, error)
}

type EmbedUsecase struct {
	renderer embedder.IRenderer
	cache    repository.IEmbedCache // optional
	ttl      time.Duration
}

func NewEmbedUsecase(renderer embedder.IRenderer) *EmbedUsecase {
	return &EmbedUsecase{renderer: renderer}
}

// WithCache enables the fragment cache (fluent)
func (u *EmbedUsecase) WithCache(cache repository.IEmbedCache, ttl time.Duration) *EmbedUsecase {
	u.cache = cache
	u.ttl = ttl
	return u
}

// Youtube merges the wrapper-owned fields over the caller's extra options.
// Extra is copied, never modified.
func (u *EmbedUsecase) Youtube(req model.EmbedRequest) model.EmbedProps {
	props := make(model.EmbedProps, len(req.Extra)+3)
	for k, v := range req.Extra {
		props[k] = v
	}
	props[model.PropWrapperClass] = model.WrapperClass
	props[model.PropID] = req.ID
	props[model.PropTitle] = req.Title
	return props
}

func (u *EmbedUsecase) Render(ctx context.Context, req model.EmbedRequest) (*model.RenderedEmbed, error) {
	if req.ID == "" {
		logger.GetLogger().WithField("title", req.Title).Warn("Rendering YouTube embed with empty id")
	}
	props := u.Youtube(req)

	var key string
	if u.cache != nil {
		var err error
		if key, err = cacheKey(props); err != nil {
			logger.GetLogger().WithField("error", err).Debug("Embed props not cacheable")
			key = ""
		}
	}
	if key != "" {
		html, ok, err := u.cache.Get(ctx, key)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Embed cache read failed")
		} else if ok {
			return &model.RenderedEmbed{HTML: html, Props: props}, nil
		}
	}

	html, err := u.renderer.Render(props)
	if err != nil {
		return nil, fmt.Errorf("render youtube embed %q: %w", req.ID, err)
	}

	if key != "" {
		if err := u.cache.Set(ctx, key, string(html), u.ttl); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Embed cache write failed")
		}
	}
	return &model.RenderedEmbed{HTML: string(html), Props: props}, nil
}

// cacheKey hashes the props. encoding/json sorts map keys, so equal props
// give equal keys.
func cacheKey(props model.EmbedProps) (string, error) {
	raw, err := json.Marshal(props)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
