package fortune

import "strings"

// maxGeneratedLength 无句末标点时的长度上限
const maxGeneratedLength = 400

// 已知的劣质输出标记,命中即判为无效(大小写不敏感)
var badMarkers = []string{
	"unknown (element: void)",
	"fortune: unknown (element: void)",
	"the mirror is silent",
}

// CleanGeneratedText 清洗生成式文本
// 重复灌水直接判废返回空串;否则截到前两句;
// 没有句末标点时按 400 字符截断并补省略号
func CleanGeneratedText(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return t
	}

	if repetitiveRatio(t) {
		return ""
	}

	// 优先取前两句
	for _, sep := range []string{".", "?", "!"} {
		if !strings.Contains(t, sep) {
			continue
		}
		var parts []string
		for _, p := range strings.Split(t, sep) {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) >= 2 {
			return parts[0] + sep + " " + parts[1] + sep
		}
		if len(parts) == 1 {
			return parts[0] + sep
		}
		return ""
	}

	// 兜底按长度截断,在最后一个空白处断开
	runes := []rune(t)
	if len(runes) <= maxGeneratedLength {
		return t
	}
	capped := string(runes[:maxGeneratedLength])
	if idx := strings.LastIndexAny(capped, " \t\n"); idx > 0 {
		capped = capped[:idx]
	}
	return capped + "..."
}

// ValidGenerated 判断清洗后的生成式文本是否可用
// 至少 10 个字符,不含劣质标记,且未触发重复灌水规则
func ValidGenerated(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < 10 {
		return false
	}

	low := strings.ToLower(t)
	for _, marker := range badMarkers {
		if strings.Contains(low, marker) {
			return false
		}
	}

	return !repetitiveRatio(t)
}

// repetitiveRatio 重复灌水检测
// 超过 5 个单词且任一单词占比超过 60% 时判废
func repetitiveRatio(text string) bool {
	words := strings.Fields(text)
	if len(words) <= 5 {
		return false
	}

	counts := map[string]int{}
	most := 0
	for _, w := range words {
		counts[w]++
		if counts[w] > most {
			most = counts[w]
		}
	}

	return float64(most) > float64(len(words))*0.6
}
