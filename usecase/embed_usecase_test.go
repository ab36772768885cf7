package usecase_test

import (
	"context"
	"html/template"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"yt-embed/domain/model"
	"yt-embed/infrastructure/logger"
	"yt-embed/usecase"
)

// Mock implementations
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(props model.EmbedProps) (template.HTML, error) {
	args := m.Called(props)
	return args.Get(0).(template.HTML), args.Error(1)
}

type MockEmbedCache struct {
	mock.Mock
}

func (m *MockEmbedCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockEmbedCache) Set(ctx context.Context, key string, html string, ttl time.Duration) error {
	args := m.Called(ctx, key, html, ttl)
	return args.Error(0)
}

func TestEmbedUsecase_Youtube_ForwardsIDAndTitle(t *testing.T) {
	u := usecase.NewEmbedUsecase(new(MockRenderer))

	props := u.Youtube(model.EmbedRequest{ID: "dQw4w9WgXcQ", Title: "Sample Video"})

	assert.Equal(t, model.EmbedProps{
		"wrapperClass": "yt-lite rounded-lg",
		"id":           "dQw4w9WgXcQ",
		"title":        "Sample Video",
	}, props)
}

func TestEmbedUsecase_Youtube_ForwardsExtra(t *testing.T) {
	u := usecase.NewEmbedUsecase(new(MockRenderer))

	props := u.Youtube(model.EmbedRequest{
		ID:    "abc123",
		Title: "Clip",
		Extra: map[string]any{"poster": "x.jpg", "muted": true, "aspectWidth": float64(4)},
	})

	assert.Equal(t, "x.jpg", props["poster"])
	assert.Equal(t, true, props["muted"])
	assert.Equal(t, float64(4), props["aspectWidth"])
	assert.Equal(t, "abc123", props["id"])
	assert.Equal(t, "Clip", props["title"])
	assert.Equal(t, model.WrapperClass, props["wrapperClass"])
}

func TestEmbedUsecase_Youtube_WrapperFieldsWin(t *testing.T) {
	u := usecase.NewEmbedUsecase(new(MockRenderer))
	extra := map[string]any{
		"wrapperClass": "custom",
		"id":           "other",
		"title":        "Other",
		"autoplay":     true,
	}

	props := u.Youtube(model.EmbedRequest{ID: "abc123", Title: "Clip", Extra: extra})

	assert.Equal(t, "yt-lite rounded-lg", props["wrapperClass"])
	assert.Equal(t, "abc123", props["id"])
	assert.Equal(t, "Clip", props["title"])
	assert.Equal(t, true, props["autoplay"])
	// the caller's map is left untouched
	assert.Equal(t, "custom", extra["wrapperClass"])
	assert.Equal(t, "other", extra["id"])
}

func TestEmbedUsecase_Youtube_EmptyIDForwarded(t *testing.T) {
	u := usecase.NewEmbedUsecase(new(MockRenderer))

	assert.NotPanics(t, func() {
		props := u.Youtube(model.EmbedRequest{ID: "", Title: ""})
		assert.Equal(t, "", props["id"])
		assert.Equal(t, "", props["title"])
		assert.Equal(t, model.WrapperClass, props["wrapperClass"])
	})
}

func TestEmbedUsecase_Render(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.MatchedBy(func(p model.EmbedProps) bool {
		return p["id"] == "abc123" && p["poster"] == "x.jpg" && p["wrapperClass"] == model.WrapperClass
	})).Return(template.HTML("<article></article>"), nil).Once()

	u := usecase.NewEmbedUsecase(renderer)
	res, err := u.Render(context.Background(), model.EmbedRequest{
		ID: "abc123", Title: "Clip", Extra: map[string]any{"poster": "x.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, "<article></article>", res.HTML)
	assert.Equal(t, "x.jpg", res.Props["poster"])
	renderer.AssertExpectations(t)
}

func TestEmbedUsecase_Render_RendererError(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything).Return(template.HTML(""), assert.AnError).Once()

	res, err := usecase.NewEmbedUsecase(renderer).Render(context.Background(), model.EmbedRequest{ID: "x", Title: "y"})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, assert.AnError)
	renderer.AssertExpectations(t)
}

func TestEmbedUsecase_Render_CacheHit(t *testing.T) {
	renderer := new(MockRenderer)
	cache := new(MockEmbedCache)
	cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("<cached/>", true, nil).Once()

	u := usecase.NewEmbedUsecase(renderer).WithCache(cache, time.Minute)
	res, err := u.Render(context.Background(), model.EmbedRequest{ID: "abc123", Title: "Clip"})

	require.NoError(t, err)
	assert.Equal(t, "<cached/>", res.HTML)
	assert.Equal(t, "abc123", res.Props["id"])
	renderer.AssertNotCalled(t, "Render", mock.Anything)
	cache.AssertExpectations(t)
}

func TestEmbedUsecase_Render_CacheMissStores(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything).Return(template.HTML("<article></article>"), nil).Once()
	cache := new(MockEmbedCache)
	var key string
	cache.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { key = args.String(1) }).
		Return("", false, nil).Once()
	cache.On("Set", mock.Anything, mock.AnythingOfType("string"), "<article></article>", 5*time.Minute).
		Run(func(args mock.Arguments) { assert.Equal(t, key, args.String(1)) }).
		Return(nil).Once()

	u := usecase.NewEmbedUsecase(renderer).WithCache(cache, 5*time.Minute)
	res, err := u.Render(context.Background(), model.EmbedRequest{ID: "abc123", Title: "Clip"})

	require.NoError(t, err)
	assert.Equal(t, "<article></article>", res.HTML)
	assert.Len(t, key, 64)
	renderer.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestEmbedUsecase_Render_CacheFailuresIgnored(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything).Return(template.HTML("<article></article>"), nil).Once()
	cache := new(MockEmbedCache)
	cache.On("Get", mock.Anything, mock.Anything).Return("", false, assert.AnError).Once()
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	u := usecase.NewEmbedUsecase(renderer).WithCache(cache, time.Minute)
	res, err := u.Render(context.Background(), model.EmbedRequest{ID: "abc123", Title: "Clip"})

	require.NoError(t, err)
	assert.Equal(t, "<article></article>", res.HTML)
	cache.AssertExpectations(t)
}

func TestEmbedUsecase_Render_SameKeyForEqualProps(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything).Return(template.HTML("x"), nil)
	cache := new(MockEmbedCache)
	var keys []string
	cache.On("Get", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(1)) }).
		Return("", false, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	u := usecase.NewEmbedUsecase(renderer).WithCache(cache, time.Minute)
	for i := 0; i < 2; i++ {
		_, err := u.Render(context.Background(), model.EmbedRequest{
			ID: "abc123", Title: "Clip", Extra: map[string]any{"b": 1.0, "a": "z"},
		})
		require.NoError(t, err)
	}
	_, err := u.Render(context.Background(), model.EmbedRequest{ID: "abc124", Title: "Clip"})
	require.NoError(t, err)

	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.NotEqual(t, keys[0], keys[2])
}

func captureLogs(t *testing.T) *logtest.Hook {
	t.Helper()
	hook := logtest.NewLocal(logger.Logger())
	t.Cleanup(func() { logger.Logger().ReplaceHooks(make(logrus.LevelHooks)) })
	return hook
}

func hasMessage(hook *logtest.Hook, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}

func TestEmbedUsecase_Render_NoCacheSkipsKey(t *testing.T) {
	hook := captureLogs(t)
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything).Return(template.HTML("<article></article>"), nil).Once()

	res, err := usecase.NewEmbedUsecase(renderer).Render(context.Background(), model.EmbedRequest{
		ID: "abc123", Title: "Clip", Extra: map[string]any{"onReady": func() {}},
	})

	require.NoError(t, err)
	assert.Equal(t, "<article></article>", res.HTML)
	assert.False(t, hasMessage(hook, "Embed props not cacheable"))
	renderer.AssertExpectations(t)
}

func TestEmbedUsecase_Render_UncacheablePropsBypassCache(t *testing.T) {
	hook := captureLogs(t)
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything).Return(template.HTML("<article></article>"), nil).Once()
	cache := new(MockEmbedCache)

	u := usecase.NewEmbedUsecase(renderer).WithCache(cache, time.Minute)
	res, err := u.Render(context.Background(), model.EmbedRequest{
		ID: "abc123", Title: "Clip", Extra: map[string]any{"onReady": func() {}},
	})

	require.NoError(t, err)
	assert.Equal(t, "<article></article>", res.HTML)
	assert.True(t, hasMessage(hook, "Embed props not cacheable"))
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
