package quiz

import (
	"encoding/json"
	"os"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// Question 问卷题目
type Question struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Choices  []string `json:"choices,omitempty"`
}

// Categories 五个固定维度
var Categories = []string{"emotion", "focus", "intuition", "trust", "reflection"}

// LoadBank 加载题库文件
// 兼容三种 JSON 形状: 按类别分组、带 questions 信封、平铺列表
// 文件缺失或无法解析时回落到内置题库
func LoadBank(path string) []Question {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logx.Warn("Failed to read question file %s: %v", path, err)
		}
		return DefaultBank()
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		logx.Warn("Question file %s is not valid JSON, using default bank: %v", path, err)
		return DefaultBank()
	}

	bank := normalize(raw)
	if len(bank) == 0 {
		logx.Warn("Question file %s yielded no questions, using default bank", path)
		return DefaultBank()
	}

	logx.Info("Loaded %d quiz questions from %s", len(bank), path)
	return bank
}

// normalize 把任意支持的形状归一化为平铺题目列表
func normalize(raw any) []Question {
	switch v := raw.(type) {
	case []any:
		return normalizeList(v, "general")
	case map[string]any:
		// 信封形状: { "questions": [ ... ] }
		if qs, ok := v["questions"].([]any); ok {
			return normalizeList(qs, "general")
		}
		// 分组形状: { "emotion": [ ... ], "focus": [ ... ] }
		return normalizeGrouped(v)
	default:
		return nil
	}
}

// normalizeGrouped 处理按类别分组的形状
// 按固定类别顺序遍历,保证编号可复现;未知类别排在其后
func normalizeGrouped(grouped map[string]any) []Question {
	var out []Question
	nextID := 1

	appendCategory := func(cat string) {
		items, ok := grouped[cat].([]any)
		if !ok {
			return
		}
		for _, item := range items {
			q, advance := normalizeItem(item, cat, nextID)
			out = append(out, q)
			if q.ID+1 > advance {
				advance = q.ID + 1
			}
			nextID = advance
		}
	}

	seen := map[string]bool{}
	for _, cat := range Categories {
		if _, ok := grouped[cat]; ok {
			appendCategory(cat)
			seen[cat] = true
		}
	}
	for cat := range grouped {
		if !seen[cat] {
			appendCategory(cat)
		}
	}

	return out
}

// normalizeList 处理平铺列表形状
func normalizeList(items []any, defaultCategory string) []Question {
	var out []Question
	nextID := 1

	for _, item := range items {
		q, advance := normalizeItem(item, defaultCategory, nextID)
		out = append(out, q)
		if q.ID+1 > advance {
			advance = q.ID + 1
		}
		nextID = advance
	}

	return out
}

// normalizeItem 归一化单个题目,返回题目和下一个候选编号
func normalizeItem(item any, defaultCategory string, nextID int) (Question, int) {
	switch q := item.(type) {
	case string:
		return Question{ID: nextID, Category: defaultCategory, Text: q}, nextID + 1
	case map[string]any:
		out := Question{ID: nextID, Category: defaultCategory}

		if id, ok := numericField(q, "id", "qid"); ok {
			out.ID = int(id)
		}
		if cat, ok := stringField(q, "category", "trait", "group"); ok {
			out.Category = cat
		}
		if text, ok := stringField(q, "text", "question"); ok {
			out.Text = text
		}
		if choices, ok := q["choices"].([]any); ok {
			for _, c := range choices {
				if s, ok := c.(string); ok {
					out.Choices = append(out.Choices, s)
				}
			}
		}

		return out, out.ID + 1
	default:
		return Question{ID: nextID, Category: defaultCategory}, nextID + 1
	}
}

// stringField 按候选键名取第一个非空字符串字段
func stringField(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// numericField 按候选键名取第一个数值字段
func numericField(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := m[k].(float64); ok {
			return f, true
		}
	}
	return 0, false
}

// DefaultBank 内置题库,每个维度两道题,1-5 分作答
func DefaultBank() []Question {
	return []Question{
		{ID: 1, Category: "emotion", Text: "How strongly do today's feelings color your decisions?"},
		{ID: 2, Category: "emotion", Text: "When something moves you, how long does the echo last?"},
		{ID: 3, Category: "focus", Text: "How easily do you hold a single thread of thought?"},
		{ID: 4, Category: "focus", Text: "How often do distractions pull you from what matters?"},
		{ID: 5, Category: "intuition", Text: "How much do you trust a hunch before the facts arrive?"},
		{ID: 6, Category: "intuition", Text: "How often do first impressions prove you right?"},
		{ID: 7, Category: "trust", Text: "How readily do you let others carry something fragile?"},
		{ID: 8, Category: "trust", Text: "How quickly do you forgive a promise half-kept?"},
		{ID: 9, Category: "reflection", Text: "How often do you revisit the day before sleeping?"},
		{ID: 10, Category: "reflection", Text: "How clearly can you name what yesterday taught you?"},
	}
}
