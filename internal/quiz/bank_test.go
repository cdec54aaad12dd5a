package quiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewelijahlogan/mirror/internal/fortune"
)

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBankMissingFileUsesDefault(t *testing.T) {
	bank := LoadBank(filepath.Join(t.TempDir(), "absent.json"))
	assert.Equal(t, DefaultBank(), bank)
}

func TestLoadBankInvalidJSONUsesDefault(t *testing.T) {
	path := writeBank(t, "{broken")
	assert.Equal(t, DefaultBank(), LoadBank(path))
}

func TestLoadBankFlatList(t *testing.T) {
	path := writeBank(t, `[
		{"id": 3, "category": "focus", "text": "How steady is your gaze?"},
		"A bare question string",
		{"question": "Alt text key", "trait": "trust"}
	]`)

	bank := LoadBank(path)
	require.Len(t, bank, 3)
	assert.Equal(t, Question{ID: 3, Category: "focus", Text: "How steady is your gaze?"}, bank[0])
	assert.Equal(t, Question{ID: 4, Category: "general", Text: "A bare question string"}, bank[1])
	assert.Equal(t, "trust", bank[2].Category)
	assert.Equal(t, "Alt text key", bank[2].Text)
	assert.Equal(t, 5, bank[2].ID)
}

func TestLoadBankEnvelope(t *testing.T) {
	path := writeBank(t, `{"questions": ["first", {"text": "second", "category": "emotion", "choices": ["a", "b"]}]}`)

	bank := LoadBank(path)
	require.Len(t, bank, 2)
	assert.Equal(t, "first", bank[0].Text)
	assert.Equal(t, "general", bank[0].Category)
	assert.Equal(t, "emotion", bank[1].Category)
	assert.Equal(t, []string{"a", "b"}, bank[1].Choices)
}

func TestLoadBankGrouped(t *testing.T) {
	path := writeBank(t, `{
		"focus": ["f1", "f2"],
		"emotion": ["e1"]
	}`)

	bank := LoadBank(path)
	require.Len(t, bank, 3)
	// 分组形状按固定类别顺序归一化: emotion 在 focus 之前
	assert.Equal(t, "emotion", bank[0].Category)
	assert.Equal(t, "e1", bank[0].Text)
	assert.Equal(t, 1, bank[0].ID)
	assert.Equal(t, "focus", bank[1].Category)
	assert.Equal(t, 2, bank[1].ID)
	assert.Equal(t, 3, bank[2].ID)
}

func TestNormalizeUnknownShape(t *testing.T) {
	assert.Nil(t, normalize("just a string"))
	assert.Nil(t, normalize(42.0))
}

func TestSummarize(t *testing.T) {
	p := fortune.NewTraitProfile()
	p.Set("emotion", 4)
	p.Set("focus", 3)
	p.Set("note", "not a score")

	s := Summarize(p)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 7.0, s.Total, 0.001)
	assert.InDelta(t, 3.5, s.Average, 0.001)
	assert.InDelta(t, 4.0, s.Scores["emotion"], 0.001)
	_, hasNote := s.Scores["note"]
	assert.False(t, hasNote)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(fortune.NewTraitProfile())
	assert.Equal(t, 0, s.Count)
	assert.Zero(t, s.Average)
}
