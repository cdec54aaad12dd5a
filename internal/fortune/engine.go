package fortune

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/matthewelijahlogan/mirror/internal/astrology"
	"github.com/matthewelijahlogan/mirror/internal/memory"
)

// PlaceholderFortune 兜底文案,任何异常路径都最终返回它
const PlaceholderFortune = "The mirror is quiet right now. Try again in a little while."

// ruleFloorLength 规则式文本的防御性下限,低于它改用兜底文案
const ruleFloorLength = 20

// historyPromptDepth 喂给生成式提示词的历史条数
const historyPromptDepth = 5

// Generator 生成式占卜能力
// 实现方返回候选文本或错误;编排器对其不可用/超时/报错一视同仁地回落
type Generator interface {
	GenerateFortune(ctx context.Context, req GenRequest) (string, error)
}

// GenRequest 生成式请求
type GenRequest struct {
	Name           string
	Zodiac         string
	Element        string
	Tone           string // 已经过时段微调
	Dominant       string
	HistoryText    string // 最近几条占卜原文
	ProfileSnippet string // 画像的 JSON 片段
}

// 编排状态机的状态
type genState int

const (
	stateAttemptGenerative genState = iota
	stateValidate
	stateAccept
	stateFallback
	statePersist
	stateDone
)

// Engine 占卜编排器
// 依赖全部由构造函数注入,不持有任何进程级单例
type Engine struct {
	store *memory.Store
	gen   Generator // 可选,为 nil 时直接走规则式
	now   func() time.Time
}

// Option Engine 可选项
type Option func(*Engine)

// WithClock 注入时钟,测试用
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine 创建占卜编排器
func NewEngine(store *memory.Store, gen Generator, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		gen:   gen,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateFortune 占卜主入口
// 保证返回非空字符串,任何内部失败都不会抛给调用方;
// 每次成功路径(生成式或规则式)都恰好追加一条历史记录
func (e *Engine) GenerateFortune(ctx context.Context, user UserData) (result string) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Fortune pipeline panic: %v", r)
			result = PlaceholderFortune
		}
	}()

	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = "Wanderer"
	}
	birth := user.Birthdate
	if birth == "" {
		birth = "1900-01-01"
	}

	zodiac, element := astrology.Analyze(birth)
	tone, dominant := ComputeSignature(user.Profile)

	var state genState
	var text, theme, persistTone string

	if e.gen != nil {
		state = stateAttemptGenerative
	} else {
		state = stateFallback
	}

	for state != stateDone {
		switch state {
		case stateAttemptGenerative:
			candidate, err := e.tryGenerative(ctx, name, zodiac, element, tone, dominant, user.Profile)
			if err != nil {
				logx.Warn("Generative fortune failed for %s, falling back: %v", name, err)
				state = stateFallback
				continue
			}
			text = candidate
			state = stateValidate

		case stateValidate:
			if ValidGenerated(text) {
				state = stateAccept
			} else {
				logx.Debug("Generated text rejected by validator, falling back")
				state = stateFallback
			}

		case stateAccept:
			theme = GuessTheme(text)
			persistTone = AdjustTone(tone, e.now().Hour())
			state = statePersist

		case stateFallback:
			history := e.store.Get(name)
			text = RuleBasedFortune(name, zodiac, element, tone, dominant, history, e.now())
			if len(strings.TrimSpace(text)) < ruleFloorLength {
				text = PlaceholderFortune
				theme = "quiet"
			} else {
				theme = GuessTheme(text)
			}
			persistTone = tone
			state = statePersist

		case statePersist:
			entry := memory.Entry{
				Timestamp: e.now().Format(time.RFC3339),
				Fortune:   text,
				Zodiac:    zodiac,
				Tone:      persistTone,
				Theme:     theme,
			}
			// 持久化失败只记日志,不能影响占卜结果返回
			if err := e.store.Append(name, entry); err != nil {
				logx.Error("Failed to persist fortune for %s: %v", name, err)
			}
			state = stateDone
		}
	}

	return text
}

// tryGenerative 调用生成式能力并清洗输出
// 清洗后为空视为失败,让编排器回落
func (e *Engine) tryGenerative(ctx context.Context, name, zodiac, element, tone, dominant string, profile *TraitProfile) (string, error) {
	history := e.store.Get(name)
	var recent []string
	start := len(history) - historyPromptDepth
	if start < 0 {
		start = 0
	}
	for _, h := range history[start:] {
		recent = append(recent, h.Fortune)
	}

	req := GenRequest{
		Name:           name,
		Zodiac:         zodiac,
		Element:        element,
		Tone:           AdjustTone(tone, e.now().Hour()),
		Dominant:       dominant,
		HistoryText:    strings.Join(recent, "\n"),
		ProfileSnippet: profile.Snippet(240),
	}

	raw, err := e.gen.GenerateFortune(ctx, req)
	if err != nil {
		return "", err
	}

	cleaned := CleanGeneratedText(raw)
	if cleaned == "" {
		return "", fmt.Errorf("cleaned text empty, generated output looks degenerate")
	}

	return cleaned, nil
}

// UserHistory 返回用户的占卜历史,旧的在前
func (e *Engine) UserHistory(name string) []memory.Entry {
	return e.store.Get(name)
}

// Summarize 返回用户历史摘要
func (e *Engine) Summarize(name string) *memory.Summary {
	return e.store.Summarize(name)
}
