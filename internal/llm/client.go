package llm

import "time"

// Config LLM 配置
type Config struct {
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
}

// 默认生成参数,与规则式回落配合,宁可保守
const (
	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 180
	defaultTemperature = 0.85
)

// normalize 填充缺省的生成参数
func (c *Config) normalize() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = defaultTemperature
	}
}
