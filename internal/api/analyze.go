package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"donorcrm/internal/ai"
	"donorcrm/internal/analyzer"
	"donorcrm/internal/model"
)

// analyzeDataset 匿名化 → 聚合 → 生成提示词 → 调用模型
// 来源为空时退回演示数据；上游失败不影响存储状态
func (h *Handler) analyzeDataset(c *gin.Context, dataSource string, raw []model.Record) {
	anonymized := analyzer.Anonymize(raw)
	summary := analyzer.Aggregate(anonymized)
	prompt := analyzer.BuildAnalysisPrompt(summary, anonymized)

	analysis, err := h.ai.Analyze(c.Request.Context(), prompt)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data_source":    dataSource,
		"privacy_status": "anonymized",
		"data_summary": gin.H{
			"total_records":      len(raw),
			"anonymized_records": len(anonymized),
		},
		"aggregated_statistics": summary,
		"ai_analysis":           analysis,
		"analysis_timestamp":    time.Now().Format(time.RFC3339),
	})
}

// AnalyzeCRM 分析 CRM 历史数据（2025 年之前，SQLite 来源）
// GET /api/ai/analyze/crm
func (h *Handler) AnalyzeCRM(c *gin.Context) {
	if h.crm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "CRM хранилище не настроено"})
		return
	}

	raw, err := h.crm.AllEntries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(raw) == 0 {
		// 空库时生成演示数据，保持分析端点可用
		raw = analyzer.DemoCRMEntries()
	}

	h.analyzeDataset(c, "crm_database", raw)
}

// AnalyzeExcel 分析当期上传数据（内存存储）
// GET /api/ai/analyze/excel
func (h *Handler) AnalyzeExcel(c *gin.Context) {
	raw := h.records.Snapshot()
	if len(raw) == 0 {
		raw = analyzer.DemoUploadRecords()
	}

	h.analyzeDataset(c, "excel_memory", raw)
}
