package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"donorcrm/internal/analyzer"
	"donorcrm/internal/exporter"
	"donorcrm/internal/filter"
	"donorcrm/internal/model"
)

// parseFilterOptions 从查询参数组装过滤条件
// amount_from/amount_to 不是数字时视为客户端错误
func parseFilterOptions(c *gin.Context) (filter.Options, error) {
	opts := filter.Options{
		Tiers:     c.QueryArray("type"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Genders:   c.QueryArray("gender"),
		Languages: c.QueryArray("language"),
		Sources:   c.QueryArray("source"),
	}

	if v := c.Query("amount_from"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("некорректное значение amount_from: %q", v)
		}
		opts.AmountFrom = &f
	}
	if v := c.Query("amount_to"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("некорректное значение amount_to: %q", v)
		}
		opts.AmountTo = &f
	}

	return opts, nil
}

// FilterRecords 多维组合过滤
// GET /api/records/filter?type=&date_from=&date_to=&amount_from=&amount_to=&gender=&language=&source=
func (h *Handler) FilterRecords(c *gin.Context) {
	opts, err := parseFilterOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered, err := filter.Apply(h.records.Snapshot(), opts)
	if err != nil {
		if errors.Is(err, filter.ErrInvalidTier) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if filtered == nil {
		filtered = []model.Record{}
	}
	c.JSON(http.StatusOK, filtered)
}

// ExportRecords 过滤并导出为 xlsx
// GET /api/records/export  (参数同 /records/filter)
func (h *Handler) ExportRecords(c *gin.Context) {
	opts, err := parseFilterOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered, err := filter.Apply(h.records.Snapshot(), opts)
	if err != nil {
		if errors.Is(err, filter.ErrInvalidTier) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f, err := exporter.BuildWorkbook(filtered)
	if err != nil {
		if errors.Is(err, exporter.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "нет данных под выбранные фильтры"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="filtered_records.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		// 响应头已经发出，只能记录到 gin 的错误链里
		c.Error(err)
	}
}

// DonorAnalytics 单个捐赠人画像
// GET /api/records/analytics?key=значение&by=full_name|email
func (h *Handler) DonorAnalytics(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "параметр key обязателен"})
		return
	}
	by := c.DefaultQuery("by", model.FieldFullName)

	profile, err := analyzer.DonorAnalytics(h.records.Snapshot(), key, by)
	if err != nil {
		if errors.Is(err, analyzer.ErrDonorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "донор не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
