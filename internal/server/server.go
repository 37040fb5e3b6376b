package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"donorcrm/internal/ai"
	"donorcrm/internal/api"
	"donorcrm/internal/config"
	"donorcrm/internal/store"
)

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	records *store.RecordStore
	crm     *store.CRMStore
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 内存记录存储：进程级，上传数据的唯一去处
	records := store.NewRecordStore()

	// CRM 历史数据使用 SQLite
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, cfg.Data.CRMDB)

	crmStore, err := store.NewCRMStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	aiClient := ai.NewClient(cfg.AI.Model)

	handler := api.NewHandler(records, crmStore, aiClient)

	s := &Server{
		router:  gin.Default(),
		records: records,
		crm:     crmStore,
	}

	s.setupRoutes(handler)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(handler *api.Handler) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		handler.RegisterRoutes(apiGroup)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放持久化资源
func (s *Server) Close() error {
	return s.crm.Close()
}

// Records 获取内存存储（用于测试）
func (s *Server) Records() *store.RecordStore {
	return s.records
}
