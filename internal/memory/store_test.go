package memory

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "mirror_memory.json"), 12, nil)
}

func entryAt(ts time.Time, fortune string) Entry {
	return Entry{
		Timestamp: ts.Format(time.RFC3339),
		Fortune:   fortune,
		Zodiac:    "Taurus",
		Tone:      "neutral",
		Theme:     "reflection",
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	mem := s.Load()
	assert.NotNil(t, mem)
	assert.Empty(t, mem)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror_memory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewStore(path, 12, nil)
	assert.Empty(t, s.Load())
}

func TestAppendAndGet(t *testing.T) {
	s := newTestStore(t)

	e := entryAt(time.Now(), "The mirror smiles upon this turning of the page.")
	require.NoError(t, s.Append("Ada", e))

	history := s.Get("Ada")
	require.Len(t, history, 1)
	assert.Equal(t, e.Fortune, history[0].Fortune)

	// 不存在的用户返回空
	assert.Empty(t, s.Get("nobody"))
}

func TestAppendTrimsToRetentionCap(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		e := entryAt(base.Add(time.Duration(i)*time.Hour), fmt.Sprintf("fortune %d", i))
		require.NoError(t, s.Append("Ada", e))
	}

	history := s.Get("Ada")
	require.Len(t, history, 12)
	// 保留最近 12 条,旧的在前
	assert.Equal(t, "fortune 3", history[0].Fortune)
	assert.Equal(t, "fortune 14", history[11].Fortune)
}

func TestSaveIsAtomic(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append("Ada", entryAt(time.Now(), "a quiet clarity")))

	// 临时文件不应残留
	_, err := os.Stat(s.path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPurge(t *testing.T) {
	s := newTestStore(t)

	old := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Now()
	require.NoError(t, s.Append("Ada", entryAt(old, "old fortune")))
	require.NoError(t, s.Append("Ada", entryAt(fresh, "fresh fortune")))
	require.NoError(t, s.Append("Bob", entryAt(old, "bob ancient")))

	removed := s.Purge(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, removed)

	// Ada 留下新记录,Bob 被整体移除
	mem := s.Load()
	require.Len(t, mem["Ada"], 1)
	assert.Equal(t, "fresh fortune", mem["Ada"][0].Fortune)
	_, exists := mem["Bob"]
	assert.False(t, exists)
}

func TestPurgeEverything(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append("Ada", entryAt(time.Now(), "one")))
	require.NoError(t, s.Append("Bob", entryAt(time.Now(), "two")))

	// 截止时间在未来,全部清空
	removed := s.Purge(time.Now().Add(time.Hour))
	assert.Equal(t, 2, removed)
	assert.Empty(t, s.Load())
}

func TestPurgeDropsUnparseableTimestamps(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(map[string][]Entry{
		"Ada": {{Timestamp: "garbage", Fortune: "broken clock"}},
	}))

	removed := s.Purge(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, removed)
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tones := []string{"bright", "bright", "dark"}
	themes := []string{"light", "light", "shadow"}
	for i := 0; i < 3; i++ {
		e := entryAt(base.Add(time.Duration(i)*time.Hour), fmt.Sprintf("fortune %d", i))
		e.Tone = tones[i]
		e.Theme = themes[i]
		require.NoError(t, s.Append("Ada", e))
	}

	summary := s.Summarize("Ada")
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, "bright", summary.MostCommonTone)
	assert.Equal(t, "light", summary.MostCommonTheme)
	// 最近的在前
	require.Len(t, summary.Recent, 3)
	assert.Equal(t, "fortune 2", summary.Recent[0].Fortune)
}

func TestSummarizeEmptyUser(t *testing.T) {
	s := newTestStore(t)
	summary := s.Summarize("nobody")
	assert.Equal(t, 0, summary.Count)
	assert.Empty(t, summary.MostCommonTone)
	assert.Empty(t, summary.Recent)
}

func TestWriteCSV(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append("Ada", entryAt(time.Now(), "first fortune")))
	require.NoError(t, s.Append("Ada", entryAt(time.Now(), "second fortune")))
	require.NoError(t, s.Append("Bob", entryAt(time.Now(), "bob, \"quoted\" fortune")))

	var sb strings.Builder
	require.NoError(t, s.WriteCSV(&sb))

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // 表头 + 三条记录
	assert.Equal(t, []string{"name", "timestamp", "zodiac", "tone", "theme", "fortune"}, records[0])
	assert.Equal(t, "Ada", records[1][0])
	assert.Equal(t, "bob, \"quoted\" fortune", records[3][5])
}

func TestClean(t *testing.T) {
	s := newTestStore(t)

	junk := strings.Repeat("moon ", 30)
	require.NoError(t, s.Save(map[string][]Entry{
		"Ada": {
			entryAt(time.Now(), "a real fortune about the tide and the garden"),
			entryAt(time.Now(), "a real fortune about the tide and the garden"), // 重复
			entryAt(time.Now(), junk), // 灌水
			entryAt(time.Now(), strings.Repeat("the long river of time keeps flowing onward ", 60)),
		},
		"Bob": {
			entryAt(time.Now(), junk),
		},
	}))

	stats, err := s.Clean()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Removed)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 1, stats.Truncated)

	mem := s.Load()
	require.Len(t, mem["Ada"], 2)
	_, exists := mem["Bob"]
	assert.False(t, exists)
}

func TestIsRepetitiveJunk(t *testing.T) {
	assert.True(t, isRepetitiveJunk(strings.Repeat("moon ", 30)))
	assert.False(t, isRepetitiveJunk("short text"))
	assert.False(t, isRepetitiveJunk("the tide carries a folded note toward ancient stone and quiet pools tonight"))
}
