package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// DefaultKeepHistory 每个用户默认保留的历史条数
const DefaultKeepHistory = 12

// Store 镜像记忆存储
// 每次操作都走 load-modify-save,写入通过临时文件 + 原子重命名落盘,
// 写操作由互斥锁串行化,避免并发写导致的文件损坏
type Store struct {
	path  string
	keep  int
	mu    sync.Mutex
	redis *RedisCache // 可选的 Redis 读缓存
}

// NewStore 创建记忆存储
func NewStore(path string, keep int, redis *RedisCache) *Store {
	if keep <= 0 {
		keep = DefaultKeepHistory
	}
	return &Store{
		path:  path,
		keep:  keep,
		redis: redis,
	}
}

// Load 加载全部记忆
// 文件不存在或内容损坏时返回空映射,不会报错
func (s *Store) Load() map[string][]Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logx.Warn("Failed to read memory file %s: %v", s.path, err)
		}
		return map[string][]Entry{}
	}

	var mem map[string][]Entry
	if err := json.Unmarshal(data, &mem); err != nil {
		logx.Warn("Memory file %s is corrupt, starting empty: %v", s.path, err)
		return map[string][]Entry{}
	}
	if mem == nil {
		mem = map[string][]Entry{}
	}
	return mem
}

// Save 持久化全部记忆
// 先写临时文件再原子重命名,崩溃时读取方不会看到半写状态
func (s *Store) Save(mem map[string][]Entry) error {
	data, err := json.MarshalIndent(mem, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp memory file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace memory file: %w", err)
	}

	return nil
}

// Append 追加一条记录到用户历史并持久化
// 超出保留上限时裁掉最旧的记录
func (s *Store) Append(user string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem := s.Load()
	history := append(mem[user], entry)
	if len(history) > s.keep {
		history = history[len(history)-s.keep:]
	}
	mem[user] = history

	if err := s.Save(mem); err != nil {
		return err
	}

	// 使 Redis 缓存失效,下次读取时回填
	if s.redis != nil {
		if err := s.redis.InvalidateHistory(user); err != nil {
			logx.Warn("Failed to invalidate redis history for %s: %v", user, err)
		}
	}

	logx.Debug("Appended memory entry for %s, history length now %d", user, len(history))
	return nil
}

// Get 获取用户历史,旧的在前;用户不存在时返回空切片
func (s *Store) Get(user string) []Entry {
	// 1. 先尝试从 Redis 读取(如果启用)
	if s.redis != nil {
		entries, err := s.redis.GetHistory(user)
		if err == nil && len(entries) > 0 {
			logx.Debug("User history loaded from redis cache")
			return entries
		}
	}

	// 2. 从文件读取
	history := s.Load()[user]

	// 3. 回填 Redis 缓存
	if s.redis != nil && len(history) > 0 {
		if err := s.redis.SaveHistory(user, history); err != nil {
			logx.Warn("Failed to save history to redis: %v", err)
		}
	}

	return history
}

// Purge 删除早于 cutoff 的记录,返回删除条数
// 时间戳无法解析的记录视为过期一并删除;清空的用户从映射中移除
func (s *Store) Purge(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem := s.Load()
	removed := 0

	for user, history := range mem {
		kept := history[:0:0]
		for _, e := range history {
			t, ok := parseTimestamp(e.Timestamp)
			if ok && !t.Before(cutoff) {
				kept = append(kept, e)
			} else {
				removed++
			}
		}
		if len(kept) > 0 {
			mem[user] = kept
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
		logx.Error("Failed to save memory after purge: %v", err)
	}

	logx.Info("Purged %d memory entries older than %s", removed, cutoff.Format(time.RFC3339))
	return removed
}

// Summarize 生成用户历史的分析摘要
func (s *Store) Summarize(user string) *Summary {
	history := s.Get(user)
	if len(history) == 0 {
		return &Summary{Recent: []Entry{}}
	}

	toneCounts := map[string]int{}
	themeCounts := map[string]int{}
	for _, e := range history {
		tone := e.Tone
		if tone == "" {
			tone = "unknown"
		}
		theme := e.Theme
		if theme == "" {
			theme = "reflection"
		}
		toneCounts[tone]++
		themeCounts[theme]++
	}

	recent := make([]Entry, 0, 5)
	for i := len(history) - 1; i >= 0 && len(recent) < 5; i-- {
		recent = append(recent, history[i])
	}

	return &Summary{
		Count:           len(history),
		MostCommonTone:  mostCommon(toneCounts),
		MostCommonTheme: mostCommon(themeCounts),
		Recent:          recent,
	}
}

// mostCommon 返回出现次数最多的键,并列时任取其一
func mostCommon(counts map[string]int) string {
	best := ""
	bestCount := -1
	for k, c := range counts {
		if c > bestCount {
			best, bestCount = k, c
		}
	}
	return best
}
