package fortune

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserData 占卜入参
type UserData struct {
	Name      string        `json:"name"`
	Birthdate string        `json:"birthdate"`
	Profile   *TraitProfile `json:"profile"`
}

// TraitProfile 特质画像
// 保留键的插入顺序,使"先见即胜"的并列裁决可复现
// (Go 的 map 遍历顺序是随机的,不能直接用作裁决依据)
type TraitProfile struct {
	keys   []string
	values map[string]any
}

// NewTraitProfile 创建空画像
func NewTraitProfile() *TraitProfile {
	return &TraitProfile{values: map[string]any{}}
}

// Set 写入一个特质,保持首次写入的顺序
func (p *TraitProfile) Set(key string, value any) {
	if p.values == nil {
		p.values = map[string]any{}
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get 读取一个特质
func (p *TraitProfile) Get(key string) (any, bool) {
	if p == nil || p.values == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Keys 按插入顺序返回全部键
func (p *TraitProfile) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

// Len 特质数量
func (p *TraitProfile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// UnmarshalJSON 按 JSON 对象中键出现的顺序解析
func (p *TraitProfile) UnmarshalJSON(data []byte) error {
	p.keys = nil
	p.values = map[string]any{}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("trait profile must be a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token in trait profile: %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		p.Set(key, value)
	}

	// 消费收尾的 '}'
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// MarshalJSON 按插入顺序序列化
func (p *TraitProfile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Snippet 序列化画像并截断到 maxLen 字符,尽量在逗号边界截断
// 用于拼进生成式提示词
func (p *TraitProfile) Snippet(maxLen int) string {
	if p == nil || p.Len() == 0 {
		return "{}"
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	s := string(data)
	if len(s) <= maxLen {
		return s
	}
	cut := s[:maxLen]
	if idx := bytes.LastIndexByte([]byte(cut), ','); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// CoerceNumeric 尝试把任意值转成数值
// 数值型字符串也算数值,其余类型忽略
func CoerceNumeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
