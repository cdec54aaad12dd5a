package memory

import "time"

// Entry 单条占卜记录,追加后不可变
type Entry struct {
	Timestamp string `json:"timestamp"`
	Fortune   string `json:"fortune"`
	Zodiac    string `json:"zodiac"`
	Tone      string `json:"tone"`
	Theme     string `json:"theme"`
}

// Summary 用户历史分析摘要
type Summary struct {
	Count           int     `json:"count"`
	MostCommonTone  string  `json:"most_common_tone"`
	MostCommonTheme string  `json:"most_common_theme"`
	Recent          []Entry `json:"recent"` // 最近五条,新的在前
}

// CleanStats 记忆清理统计
type CleanStats struct {
	Removed    int `json:"removed"`    // 删除的垃圾记录
	Duplicates int `json:"duplicates"` // 删除的重复记录
	Truncated  int `json:"truncated"`  // 截断的超长记录
}

// timestampLayouts 时间戳解析格式,兼容带时区和不带时区的 ISO-8601
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTimestamp 解析记录时间戳,失败时返回零值时间
func parseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
