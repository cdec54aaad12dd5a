package fortune

import (
	"math/rand"
	"strings"
)

// GuessTheme 从文本中推测主题
// 大小写不敏感地统计每个主题词的出现次数,取最高者;
// 全部为零时随机选一个主题。按词表声明顺序遍历,并列时先出现的获胜
func GuessTheme(text string) string {
	low := strings.ToLower(text)

	best := ""
	bestCount := 0
	for _, theme := range themes {
		if c := strings.Count(low, theme); c > bestCount {
			best = theme
			bestCount = c
		}
	}

	if bestCount > 0 {
		return best
	}
	return themes[rand.Intn(len(themes))]
}
