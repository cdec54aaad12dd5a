package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/matthewelijahlogan/mirror/internal/astrology"
	"github.com/matthewelijahlogan/mirror/internal/database"
	"github.com/matthewelijahlogan/mirror/internal/fortune"
	"github.com/matthewelijahlogan/mirror/internal/model"
)

// ResultService 占卜结果持久化服务
type ResultService struct {
	db *gorm.DB
}

// NewResultService 创建占卜结果服务实例
func NewResultService() *ResultService {
	return &ResultService{
		db: database.GetDB(),
	}
}

// NewResultServiceWithDB 使用指定数据库连接创建服务实例,测试用
func NewResultServiceWithDB(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

// GetDB 获取数据库连接
func (s *ResultService) GetDB() *gorm.DB {
	return s.db
}

// SaveUserResult 保存一次完整的占卜结果
// 用户不存在时创建(同时解析星座),然后写入作答记录和占卜文本
func (s *ResultService) SaveUserResult(name, birthdate string, profile *fortune.TraitProfile, fortuneText string) error {
	user, err := s.findOrCreateUser(name, birthdate)
	if err != nil {
		return err
	}

	today := time.Now().Format("2006-01-02")

	response := &model.QuizResponse{
		UserID:     user.ID,
		Date:       today,
		Emotion:    intTrait(profile, "emotion"),
		Focus:      intTrait(profile, "focus"),
		Intuition:  intTrait(profile, "intuition"),
		Trust:      intTrait(profile, "trust"),
		Reflection: intTrait(profile, "reflection"),
	}
	if err := s.db.Create(response).Error; err != nil {
		return fmt.Errorf("failed to save quiz response: %w", err)
	}

	log := &model.FortuneLog{
		UserID:  user.ID,
		Date:    today,
		Fortune: fortuneText,
	}
	if err := s.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to save fortune log: %w", err)
	}

	return nil
}

// findOrCreateUser 按名称查找用户,不存在时创建
func (s *ResultService) findOrCreateUser(name, birthdate string) (*model.User, error) {
	var user model.User
	err := s.db.Where("name = ?", name).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	zodiac, element := astrology.Analyze(birthdate)
	user = model.User{
		Name:      name,
		Birthdate: birthdate,
		Zodiac:    zodiac,
		Element:   element,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUserQuizHistory 获取用户的历史作答记录,新的在前
func (s *ResultService) GetUserQuizHistory(name string) ([]model.QuizResponse, error) {
	var user model.User
	err := s.db.Where("name = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []model.QuizResponse{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	var responses []model.QuizResponse
	if err := s.db.Where("user_id = ?", user.ID).
		Order("date DESC, id DESC").
		Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to query quiz history: %w", err)
	}

	return responses, nil
}

// GetUser 按名称获取用户
func (s *ResultService) GetUser(name string) (*model.User, error) {
	var user model.User
	err := s.db.Where("name = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// CountUsers 统计用户总数
func (s *ResultService) CountUsers() (int64, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountFortunes 统计占卜总数
func (s *ResultService) CountFortunes() (int64, error) {
	var count int64
	if err := s.db.Model(&model.FortuneLog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// intTrait 从画像中取整数特质值,缺失或非数值按 0 处理
func intTrait(profile *fortune.TraitProfile, key string) int {
	v, ok := profile.Get(key)
	if !ok {
		return 0
	}
	f, ok := fortune.CoerceNumeric(v)
	if !ok {
		return 0
	}
	return int(f)
}
