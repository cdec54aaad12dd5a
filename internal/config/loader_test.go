package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// 测试工作目录下没有配置文件,走搜索路径落空后的默认值
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "./data/mirror.db", cfg.Database.Path)
	assert.Equal(t, "./data/mirror_memory.json", cfg.Memory.Path)
	assert.Equal(t, 12, cfg.Memory.KeepHistory)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 180, cfg.LLM.MaxTokens)
	assert.Equal(t, "./questions.json", cfg.Quiz.QuestionFile)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  http:
    port: 9090
    debug: true
memory:
  keep_history: 5
llm:
  enabled: true
  model: gpt-4o-mini
  api_key: ${TEST_MIRROR_KEY}
`)
	require.NoError(t, os.WriteFile(path, content, 0644))
	t.Setenv("TEST_MIRROR_KEY", "sk-test-123")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTP.Port)
	assert.True(t, cfg.Server.HTTP.Debug)
	assert.Equal(t, 5, cfg.Memory.KeepHistory)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test-123", cfg.LLM.APIKey)

	// 文件未覆盖的键仍取默认值
	assert.Equal(t, "./data/mirror.db", cfg.Database.Path)
}
