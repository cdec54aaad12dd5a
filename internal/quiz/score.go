package quiz

import "github.com/matthewelijahlogan/mirror/internal/fortune"

// Summary 问卷评分摘要
type Summary struct {
	Scores  map[string]float64 `json:"scores"`
	Total   float64            `json:"total"`
	Average float64            `json:"average"`
	Count   int                `json:"count"`
}

// Summarize 汇总一次作答的各维度得分
// 非数值的条目不计分
func Summarize(profile *fortune.TraitProfile) Summary {
	summary := Summary{Scores: map[string]float64{}}

	for _, key := range profile.Keys() {
		v, _ := profile.Get(key)
		f, ok := fortune.CoerceNumeric(v)
		if !ok {
			continue
		}
		summary.Scores[key] = f
		summary.Total += f
		summary.Count++
	}

	if summary.Count > 0 {
		summary.Average = summary.Total / float64(summary.Count)
	}

	return summary
}
