package http

import (
	"net/http"
	"strconv"

	"yt-embed/domain/dto"
	"yt-embed/domain/model"
	"yt-embed/infrastructure/embedder"
	"yt-embed/usecase"

	"github.com/gin-gonic/gin"
)

// IEmbedHandler defines the embed HTTP handlers
type IEmbedHandler interface {
	RenderYoutube(ctx *gin.Context)
	YoutubeFragment(ctx *gin.Context)
	RenderShortcodes(ctx *gin.Context)
	Stylesheet(ctx *gin.Context)
}

type EmbedHandler struct {
	embedUsecase     usecase.IEmbedUsecase
	shortcodeUsecase usecase.IShortcodeUsecase
}

func NewEmbedHandler(embedUsecase usecase.IEmbedUsecase, shortcodeUsecase usecase.IShortcodeUsecase) IEmbedHandler {
	return &EmbedHandler{embedUsecase: embedUsecase, shortcodeUsecase: shortcodeUsecase}
}

// RenderYoutube handles POST /api/embeds/youtube
func (h *EmbedHandler) RenderYoutube(ctx *gin.Context) {
	var req dto.EmbedRenderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	rendered, err := h.embedUsecase.Render(ctx.Request.Context(), model.EmbedRequest{
		ID:    req.ID,
		Title: req.Title,
		Extra: req.Extra,
	})
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Failed to render embed",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": rendered})
}

// YoutubeFragment handles GET /embed/youtube/:videoId
func (h *EmbedHandler) YoutubeFragment(ctx *gin.Context) {
	extra := map[string]any{}
	for key, values := range ctx.Request.URL.Query() {
		if key == model.PropTitle || len(values) == 0 {
			continue
		}
		extra[key] = queryValue(values[0])
	}

	rendered, err := h.embedUsecase.Render(ctx.Request.Context(), model.EmbedRequest{
		ID:    ctx.Param("videoId"),
		Title: ctx.Query(model.PropTitle),
		Extra: extra,
	})
	if err != nil {
		ctx.String(http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered.HTML))
}

// RenderShortcodes handles POST /api/shortcodes/render
func (h *EmbedHandler) RenderShortcodes(ctx *gin.Context) {
	var req dto.ShortcodeRenderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	res, err := h.shortcodeUsecase.Expand(ctx.Request.Context(), req.Content)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Failed to render shortcodes",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

// Stylesheet handles GET /assets/lite-youtube-embed.css
func (h *EmbedHandler) Stylesheet(ctx *gin.Context) {
	ctx.Header("Cache-Control", "public, max-age=86400")
	ctx.Data(http.StatusOK, "text/css; charset=utf-8", embedder.Stylesheet())
}

// queryValue turns "true", "false" and integers into typed values.
func queryValue(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return float64(n)
	}
	return v
}
