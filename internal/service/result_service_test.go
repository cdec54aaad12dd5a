package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matthewelijahlogan/mirror/internal/fortune"
	"github.com/matthewelijahlogan/mirror/internal/model"
)

func testService(t *testing.T) *ResultService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mirror.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.QuizResponse{}, &model.FortuneLog{}))

	return NewResultServiceWithDB(db)
}

func adaProfile() *fortune.TraitProfile {
	p := &fortune.TraitProfile{}
	p.Set("emotion", 3)
	p.Set("focus", 2)
	p.Set("intuition", 5)
	p.Set("trust", 4)
	p.Set("reflection", 3)
	return p
}

func TestSaveUserResultCreatesUser(t *testing.T) {
	s := testService(t)

	err := s.SaveUserResult("Ada", "1990-04-21", adaProfile(), "a calm fortune")
	require.NoError(t, err)

	user, err := s.GetUser("Ada")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Taurus", user.Zodiac)
	assert.Equal(t, "Earth", user.Element)
	assert.Equal(t, "1990-04-21", user.Birthdate)

	var logs []model.FortuneLog
	require.NoError(t, s.GetDB().Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, user.ID, logs[0].UserID)
	assert.Equal(t, "a calm fortune", logs[0].Fortune)
}

func TestSaveUserResultReusesUser(t *testing.T) {
	s := testService(t)

	require.NoError(t, s.SaveUserResult("Ada", "1990-04-21", adaProfile(), "first"))
	require.NoError(t, s.SaveUserResult("Ada", "1990-04-21", adaProfile(), "second"))

	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	fortunes, err := s.CountFortunes()
	require.NoError(t, err)
	assert.Equal(t, int64(2), fortunes)
}

func TestSaveUserResultTraitColumns(t *testing.T) {
	s := testService(t)

	require.NoError(t, s.SaveUserResult("Ada", "1990-04-21", adaProfile(), "x"))

	history, err := s.GetUserQuizHistory("Ada")
	require.NoError(t, err)
	require.Len(t, history, 1)

	r := history[0]
	assert.Equal(t, 3, r.Emotion)
	assert.Equal(t, 2, r.Focus)
	assert.Equal(t, 5, r.Intuition)
	assert.Equal(t, 4, r.Trust)
	assert.Equal(t, 3, r.Reflection)
}

func TestSaveUserResultMissingTraits(t *testing.T) {
	s := testService(t)

	p := &fortune.TraitProfile{}
	p.Set("emotion", "4")
	p.Set("mood", "high")

	require.NoError(t, s.SaveUserResult("Bea", "2001-12-25", p, "y"))

	history, err := s.GetUserQuizHistory("Bea")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 4, history[0].Emotion)
	assert.Equal(t, 0, history[0].Focus)

	user, err := s.GetUser("Bea")
	require.NoError(t, err)
	assert.Equal(t, "Capricorn", user.Zodiac)
}

func TestGetUserQuizHistoryUnknownUser(t *testing.T) {
	s := testService(t)

	history, err := s.GetUserQuizHistory("nobody")
	require.NoError(t, err)
	assert.Empty(t, history)

	user, err := s.GetUser("nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}
