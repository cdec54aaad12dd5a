package astrology

import (
	"strconv"
	"strings"
)

// zodiacRange 星座区间,按月/日匹配,不做闰年特判
type zodiacRange struct {
	startMonth, startDay int
	endMonth, endDay     int
	sign                 string
	element              string
}

// 十二星座区间表,每个区间横跨两个月份
var zodiacRanges = []zodiacRange{
	{1, 20, 2, 18, "Aquarius", "Air"},
	{2, 19, 3, 20, "Pisces", "Water"},
	{3, 21, 4, 19, "Aries", "Fire"},
	{4, 20, 5, 20, "Taurus", "Earth"},
	{5, 21, 6, 20, "Gemini", "Air"},
	{6, 21, 7, 22, "Cancer", "Water"},
	{7, 23, 8, 22, "Leo", "Fire"},
	{8, 23, 9, 22, "Virgo", "Earth"},
	{9, 23, 10, 22, "Libra", "Air"},
	{10, 23, 11, 21, "Scorpio", "Water"},
	{11, 22, 12, 21, "Sagittarius", "Fire"},
	{12, 22, 1, 19, "Capricorn", "Earth"},
}

// 元素提示语
var elementHints = map[string]string{
	"Fire":  "your passion lights hidden crossroads.",
	"Water": "your intuition echoes in quiet pools.",
	"Air":   "your thoughts drift toward new horizons.",
	"Earth": "your steps root change into practice.",
	"Void":  "the cosmos watches without shape.",
}

// 元素性格描述
var elementTraits = map[string]string{
	"Fire":  "You are passionate, energetic, and bold.",
	"Earth": "You are grounded, reliable, and practical.",
	"Air":   "You are curious, communicative, and inventive.",
	"Water": "You are intuitive, empathetic, and emotional.",
	"Void":  "Your star sign is undefined. Unique paths await you.",
}

// Analyze 根据生日字符串(YYYY-MM-DD)解析星座和元素
// 解析失败时返回 ("Unknown", "Void"),不会报错
func Analyze(birthdate string) (sign, element string) {
	parts := strings.Split(birthdate, "-")
	if len(parts) < 3 {
		return "Unknown", "Void"
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "Unknown", "Void"
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return "Unknown", "Void"
	}

	for _, r := range zodiacRanges {
		if (month == r.startMonth && day >= r.startDay) || (month == r.endMonth && day <= r.endDay) {
			return r.sign, r.element
		}
	}

	return "Unknown", "Void"
}

// Hint 返回元素对应的占星提示语
func Hint(element string) string {
	if hint, ok := elementHints[element]; ok {
		return hint
	}
	return ""
}

// ElementTrait 返回元素对应的性格描述
func ElementTrait(element string) string {
	if trait, ok := elementTraits[element]; ok {
		return trait
	}
	return elementTraits["Void"]
}
