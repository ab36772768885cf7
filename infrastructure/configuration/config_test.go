package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Defaults(t *testing.T) {
	require.NotZero(t, C.App.Port, "port should fall back to a default")
	require.NotEmpty(t, C.Embed.KeyPrefix)
	require.NotEmpty(t, C.Cors.AllowOrigins)
}

func TestEmbed_TTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{name: "empty uses default", ttl: "", want: 10 * time.Minute},
		{name: "valid duration", ttl: "90s", want: 90 * time.Second},
		{name: "invalid uses default", ttl: "soon", want: 10 * time.Minute},
		{name: "negative uses default", ttl: "-1m", want: 10 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Embed{CacheTTL: tt.ttl}.TTL())
		})
	}
}

func TestRedisClient_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisClient{Host: "cache", Port: "6380"}.Addr())
}

func TestInitCors_FromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,,")
	var c Config
	initCors(&c)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.Cors.AllowOrigins)
}

func TestInitApp_PortFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8088")
	var c Config
	initApp(&c)
	assert.Equal(t, 8088, c.App.Port)
}

func TestInitRedis_HostEnablesCache(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.internal")
	var c Config
	initRedis(&c)
	assert.True(t, c.RedisClient.Enabled)
	assert.Equal(t, "redis.internal:6379", c.RedisClient.Addr())
}

func TestLoadEnvFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "# comment\n\nEMBED_TEST_A=\"one\"\nexport EMBED_TEST_B='two'\nEMBED_TEST_KEEP=file\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("EMBED_TEST_KEEP", "env")
	os.Unsetenv("EMBED_TEST_A")
	os.Unsetenv("EMBED_TEST_B")
	t.Cleanup(func() {
		os.Unsetenv("EMBED_TEST_A")
		os.Unsetenv("EMBED_TEST_B")
	})

	loaded := LoadEnvFromFile(filepath.Join(dir, "missing.env"), path)

	assert.Equal(t, []string{path}, loaded)
	assert.Equal(t, "one", os.Getenv("EMBED_TEST_A"))
	assert.Equal(t, "two", os.Getenv("EMBED_TEST_B"))
	assert.Equal(t, "env", os.Getenv("EMBED_TEST_KEEP"))
}

func TestInit_AppliesEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.env")
	content := "REDIS_HOST=redis.from.file\nEMBED_CACHE_TTL=45s\nCORS_ORIGINS=https://site.example\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// runs last, after the variables below are restored
	t.Cleanup(func() { Init() })
	for _, key := range []string{"REDIS_HOST", "EMBED_CACHE_TTL", "CORS_ORIGINS"} {
		prev, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})
	}

	Init(path)

	assert.Equal(t, []string{path}, LoadedEnvFiles)
	assert.True(t, C.RedisClient.Enabled)
	assert.Equal(t, "redis.from.file:6379", C.RedisClient.Addr())
	assert.Equal(t, 45*time.Second, C.Embed.TTL())
	assert.Equal(t, []string{"https://site.example"}, C.Cors.AllowOrigins)
}
