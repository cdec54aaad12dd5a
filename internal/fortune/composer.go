package fortune

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/matthewelijahlogan/mirror/internal/astrology"
	"github.com/matthewelijahlogan/mirror/internal/memory"
)

// RuleBasedFortune 规则式占卜文本合成
// 结构固定、用词随机:相同入参每次调用也会产出不同文本
// 传入的 tone 是未经时段微调的基调,微调在这里做且只做一次
func RuleBasedFortune(name, zodiac, element, tone, dominant string, history []memory.Entry, now time.Time) string {
	theme := themes[rand.Intn(len(themes))]
	adj := adjectives[rand.Intn(len(adjectives))]
	omen := omens[rand.Intn(len(omens))]

	adjusted := AdjustTone(tone, now.Hour())
	lines, ok := toneLines[adjusted]
	if !ok {
		lines = toneLines["neutral"]
	}
	toneLine := lines[rand.Intn(len(lines))]

	memoryHint := ""
	if len(history) > 0 {
		lastTheme := history[len(history)-1].Theme
		if lastTheme == "" {
			lastTheme = "reflection"
		}
		memoryHint = fmt.Sprintf("The mirror remembers a past theme of '%s'.", lastTheme)
	}

	astro := astrology.Hint(element)
	ts := now.Format("January 02, 2006")

	return fmt.Sprintf(
		"🪞 Mirror of %s — %s\n\n"+
			"%s, the %s child of %s, %s\n"+
			"Your %s stirs the current of %s, and %s\n"+
			"As %s passes, listen for the quiet next step.\n\n"+
			"%s\n"+
			"May your reflection reveal what your eyes do not.",
		titleCase(theme), ts,
		name, adj, zodiac, toneLine,
		dominant, theme, astro,
		omen,
		memoryHint,
	)
}

// titleCase 首字母大写,主题词都是小写 ASCII 单词
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
