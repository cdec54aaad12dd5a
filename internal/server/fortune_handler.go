package server

import (
	"net/http"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"

	"github.com/matthewelijahlogan/mirror/internal/astrology"
	"github.com/matthewelijahlogan/mirror/internal/fortune"
	"github.com/matthewelijahlogan/mirror/internal/quiz"
)

// FortuneRequest 占卜请求体
type FortuneRequest struct {
	Name      string                `json:"name"`
	Birthdate string                `json:"birthdate"`
	Profile   *fortune.TraitProfile `json:"profile"`
}

// handleHealth 健康检查
func (s *HTTPGinServer) handleHealth(c *gin.Context) {
	s.success(c, gin.H{
		"status": "healthy",
	})
}

// handleQuizQuestions 返回问卷题目
func (s *HTTPGinServer) handleQuizQuestions(c *gin.Context) {
	s.success(c, gin.H{
		"total":     len(s.bank),
		"questions": s.bank,
	})
}

// handleAstrology 返回出生日期对应的星座、元素与性格描述
func (s *HTTPGinServer) handleAstrology(c *gin.Context) {
	birthdate := c.Param("birthdate")

	zodiac, element := astrology.Analyze(birthdate)

	s.success(c, gin.H{
		"birthdate":     birthdate,
		"zodiac":        zodiac,
		"element":       element,
		"hint":          astrology.Hint(element),
		"element_trait": astrology.ElementTrait(element),
	})
}

// handleFortune 执行一次完整占卜:计算星座与性格签名,生成占卜文本并落库
func (s *HTTPGinServer) handleFortune(c *gin.Context) {
	var req FortuneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user := fortune.UserData{
		Name:      req.Name,
		Birthdate: req.Birthdate,
		Profile:   req.Profile,
	}

	text := s.oracle.GenerateFortune(c.Request.Context(), user)

	zodiac, element := astrology.Analyze(req.Birthdate)
	tone, dominant := fortune.ComputeSignature(req.Profile)
	scores := quiz.Summarize(req.Profile)

	// 结构化落库失败不影响占卜结果返回
	if s.results != nil {
		if err := s.results.SaveUserResult(req.Name, req.Birthdate, req.Profile, text); err != nil {
			logx.Warn("Failed to persist fortune result for %s: %v", req.Name, err)
		}
	}

	s.success(c, gin.H{
		"name":     req.Name,
		"zodiac":   zodiac,
		"element":  element,
		"tone":     tone,
		"dominant": dominant,
		"scores":   scores,
		"fortune":  text,
	})
}

// handleHistory 返回用户的占卜历史
func (s *HTTPGinServer) handleHistory(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		s.error(c, http.StatusBadRequest, "name is required")
		return
	}

	history := s.oracle.UserHistory(name)

	s.success(c, gin.H{
		"name":    name,
		"total":   len(history),
		"history": history,
	})
}

// handleHistorySummary 返回用户历史的聚合摘要
func (s *HTTPGinServer) handleHistorySummary(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		s.error(c, http.StatusBadRequest, "name is required")
		return
	}

	summary := s.oracle.Summarize(name)
	if summary == nil || summary.Count == 0 {
		s.error(c, http.StatusNotFound, "No history for user")
		return
	}

	s.success(c, gin.H{
		"name":    name,
		"summary": summary,
	})
}

// handleAnalytics 返回全局统计信息
func (s *HTTPGinServer) handleAnalytics(c *gin.Context) {
	mem := s.store.Load()

	entries := 0
	toneCounts := map[string]int{}
	themeCounts := map[string]int{}
	for _, history := range mem {
		entries += len(history)
		for _, e := range history {
			if e.Tone != "" {
				toneCounts[e.Tone]++
			}
			if e.Theme != "" {
				themeCounts[e.Theme]++
			}
		}
	}

	data := gin.H{
		"memory_users":   len(mem),
		"memory_entries": entries,
		"tones":          toneCounts,
		"themes":         themeCounts,
	}

	if s.results != nil {
		if users, err := s.results.CountUsers(); err == nil {
			data["db_users"] = users
		}
		if fortunes, err := s.results.CountFortunes(); err == nil {
			data["db_fortunes"] = fortunes
		}
	}

	s.success(c, data)
}

// handleExport 以 CSV 形式导出全部占卜记忆
func (s *HTTPGinServer) handleExport(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="mirror_memory.csv"`)
	c.Status(http.StatusOK)

	if err := s.store.WriteCSV(c.Writer); err != nil {
		logx.Error("Failed to export memory CSV: %v", err)
	}
}
