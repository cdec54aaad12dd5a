package memory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// maxFortuneLength 清理时允许的单条占卜文本上限
const maxFortuneLength = 2000

// Clean 清理记忆文件: 去重、删除重复灌水文本、截断超长记录
// 清理前将原文件备份为 <path>.bak.<时间戳>
func (s *Store) Clean() (CleanStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats CleanStats

	mem := s.Load()
	if len(mem) == 0 {
		return stats, nil
	}

	// 备份原文件
	bak := fmt.Sprintf("%s.bak.%s", s.path, time.Now().Format("20060102T150405"))
	if data, err := os.ReadFile(s.path); err == nil {
		if err := os.WriteFile(bak, data, 0644); err != nil {
			return stats, fmt.Errorf("failed to back up memory file: %w", err)
		}
		logx.Info("Memory backed up to %s", bak)
	}

	for user, history := range mem {
		seen := map[string]bool{}
		cleaned := history[:0:0]

		for _, e := range history {
			if isRepetitiveJunk(e.Fortune) {
				stats.Removed++
				continue
			}
			if seen[e.Fortune] {
				stats.Duplicates++
				continue
			}
			seen[e.Fortune] = true

			if len(e.Fortune) > maxFortuneLength {
				e.Fortune = e.Fortune[:maxFortuneLength]
				stats.Truncated++
			}
			cleaned = append(cleaned, e)
		}

		if len(cleaned) > 0 {
			mem[user] = cleaned
		} else {
			delete(mem, user)
		}

		if s.redis != nil {
			if err := s.redis.InvalidateHistory(user); err != nil {
				logx.Warn("Failed to invalidate redis history for %s: %v", user, err)
			}
		}
	}

	if err := s.Save(mem); err != nil {
		return stats, err
	}

	logx.Info("Memory cleaned: removed %d, duplicates %d, truncated %d",
		stats.Removed, stats.Duplicates, stats.Truncated)
	return stats, nil
}

// isRepetitiveJunk 判断文本是否为重复灌水
// 规则一: 任一单词占比超过 60%;规则二: 短文本中单词出现超过 5 次
func isRepetitiveJunk(text string) bool {
	words := strings.Fields(text)
	if len(words) < 5 {
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

	if float64(most) > float64(len(words))*0.6 {
		return true
	}
	if most > 5 && len(words) < 50 {
		return true
	}
	return false
}
