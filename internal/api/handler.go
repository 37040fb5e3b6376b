package api

import (
	"github.com/gin-gonic/gin"

	"donorcrm/internal/ai"
	"donorcrm/internal/importer"
	"donorcrm/internal/store"
)

// Handler API 处理器
type Handler struct {
	records  *store.RecordStore
	crm      *store.CRMStore
	importer *importer.Importer
	ai       *ai.Client
}

// NewHandler 创建 API 处理器
func NewHandler(records *store.RecordStore, crm *store.CRMStore, aiClient *ai.Client) *Handler {
	return &Handler{
		records:  records,
		crm:      crm,
		importer: importer.New(records),
		ai:       aiClient,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据上传
	router.POST("/upload", h.Upload)

	// 记录查询
	router.GET("/records", h.ListRecords)
	router.GET("/records/count", h.CountRecords)
	router.GET("/records/filter", h.FilterRecords)
	router.GET("/records/export", h.ExportRecords)
	router.GET("/records/analytics", h.DonorAnalytics)
	router.GET("/records/unknown-gender", h.UnknownGender)

	// 记录写入
	router.POST("/records", h.AddRecord)
	router.PATCH("/records/:id", h.UpdateRecord)
	router.POST("/records/:id/phone", h.SetPhone)
	router.POST("/records/:id/language", h.SetLanguage)
	router.POST("/records/:id/gender", h.SetGender)

	// 来源管理
	router.GET("/sources", h.ListSources)
	router.POST("/sources/delete", h.DeleteBySource)
	router.POST("/reset", h.ResetAll)

	// AI 分析
	router.GET("/ai/analyze/crm", h.AnalyzeCRM)
	router.GET("/ai/analyze/excel", h.AnalyzeExcel)
}
