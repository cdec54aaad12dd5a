package fortune

// 平均分到情绪基调的阈值
const (
	brightThreshold  = 4.2
	neutralThreshold = 2.6
)

// ComputeSignature 从特质画像推导情绪基调和主导特质
// 空画像或没有数值特质时返回 ("neutral", "unknown")
// 主导特质取数值最大的键,并列时先出现的获胜
func ComputeSignature(profile *TraitProfile) (tone, dominant string) {
	if profile == nil || profile.Len() == 0 {
		return "neutral", "unknown"
	}

	var sum float64
	count := 0
	dominant = ""
	var best float64

	for _, key := range profile.Keys() {
		v, _ := profile.Get(key)
		f, ok := CoerceNumeric(v)
		if !ok {
			// 非数值特质不参与计算,但仍可用于生成式提示词
			continue
		}
		sum += f
		count++
		if dominant == "" || f > best {
			dominant = key
			best = f
		}
	}

	if count == 0 {
		return "neutral", "unknown"
	}

	avg := sum / float64(count)
	switch {
	case avg >= brightThreshold:
		tone = "bright"
	case avg >= neutralThreshold:
		tone = "neutral"
	default:
		tone = "dark"
	}

	return tone, dominant
}

// AdjustTone 按一天中的小时微调基调
// 深夜(22点到次日5点)整体压暗一级,清晨(6点到10点)把 dark 提回 neutral
// 每次占卜只应调用一次,重复调用会改变结果
func AdjustTone(tone string, hour int) string {
	if hour >= 22 || hour <= 5 {
		switch tone {
		case "bright":
			return "neutral"
		case "neutral":
			return "dark"
		}
	}
	if hour >= 6 && hour <= 10 && tone == "dark" {
		return "neutral"
	}
	return tone
}
