package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"donorcrm/internal/classifier"
	"donorcrm/internal/model"
	"donorcrm/internal/parser"
	"donorcrm/internal/store"
)

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	crmCount := 0
	if h.crm != nil {
		if n, err := h.crm.Count(); err == nil {
			crmCount = n
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"records":     h.records.Count(),
		"crm_entries": crmCount,
	})
}

// Upload 上传一批 Excel 文件
// POST /api/upload  (multipart: files=..., source=可选来源标签)
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидная форма загрузки"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файлы не найдены"})
		return
	}

	source := c.PostForm("source")

	var reports []any
	saved := 0
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось открыть файл " + fh.Filename})
			return
		}
		report, err := h.importer.ImportFile(f, fh.Filename, source)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ошибка обработки файла " + fh.Filename})
			return
		}
		reports = append(reports, report)
		saved += report.Saved
	}

	if saved == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "no_valid_data", "reports": reports})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "saved": saved, "reports": reports})
}

// presentRecord 补全展示用的派生字段
// 性别缺失时按姓名现场推断，语言缺失标记为 unknown，电话字段始终存在
func presentRecord(rec model.Record) model.Record {
	out := rec.Clone()
	if out.StringField(model.FieldGender) == "" {
		out[model.FieldGender] = classifier.InferGender(out.StringField(model.FieldFullName))
	}
	if out.StringField(model.FieldLanguage) == "" {
		out[model.FieldLanguage] = classifier.LangUnknown
	}
	if _, ok := out[model.FieldPhone]; !ok {
		out[model.FieldPhone] = nil
	}
	return out
}

// ListRecords 列出全部记录
// GET /api/records
func (h *Handler) ListRecords(c *gin.Context) {
	snapshot := h.records.Snapshot()
	out := make([]model.Record, 0, len(snapshot))
	for _, rec := range snapshot {
		out = append(out, presentRecord(rec))
	}
	c.JSON(http.StatusOK, out)
}

// CountRecords 记录总数
// GET /api/records/count
func (h *Handler) CountRecords(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"all_users": h.records.Count()})
}

// UnknownGender 列出无法推断性别的记录
// GET /api/records/unknown-gender
func (h *Handler) UnknownGender(c *gin.Context) {
	var out []model.Record
	for _, rec := range h.records.Snapshot() {
		g := rec.StringField(model.FieldGender)
		if g == "" {
			g = classifier.InferGender(rec.StringField(model.FieldFullName))
		}
		if classifier.CanonicalGender(g) == classifier.GenderUnknown {
			withGender := rec.Clone()
			withGender[model.FieldGender] = classifier.GenderUnknown
			out = append(out, withGender)
		}
	}
	c.JSON(http.StatusOK, out)
}

// AddRecord 手工添加一条记录
// POST /api/records
func (h *Handler) AddRecord(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	rec := make(model.Record, len(body)+2)
	for key, value := range body {
		rec[parser.CanonicalFieldName(key)] = value
	}
	if _, ok := rec[model.FieldPhone]; !ok {
		rec[model.FieldPhone] = nil
	}
	if _, ok := rec[model.FieldLanguage]; !ok {
		rec[model.FieldLanguage] = nil
	}

	c.JSON(http.StatusOK, h.records.Add(rec))
}

// recordID 解析路径里的记录 id
func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return 0, false
	}
	return id, true
}

// UpdateRecord 按 id 合并任意字段补丁
// PATCH /api/records/:id
func (h *Handler) UpdateRecord(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	patch := make(map[string]any, len(updates))
	for key, value := range updates {
		patch[parser.CanonicalFieldName(key)] = value
	}

	rec, err := h.records.Update(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "запись не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": rec})
}

// setFieldByID 点更新的公共逻辑
func (h *Handler) setFieldByID(c *gin.Context, field string, value any) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	if err := h.records.SetField(id, field, value); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "запись не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": 1})
}

// SetPhone 更新电话
// POST /api/records/:id/phone
func (h *Handler) SetPhone(c *gin.Context) {
	var body struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	h.setFieldByID(c, model.FieldPhone, body.Phone)
}

// SetLanguage 更新语言
// POST /api/records/:id/language
func (h *Handler) SetLanguage(c *gin.Context) {
	var body struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	h.setFieldByID(c, model.FieldLanguage, classifier.CanonicalLanguage(body.Language))
}

// SetGender 更新性别
// POST /api/records/:id/gender
func (h *Handler) SetGender(c *gin.Context) {
	var body struct {
		Gender string `json:"gender" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	h.setFieldByID(c, model.FieldGender, classifier.CanonicalGender(body.Gender))
}

// ListSources 按上传文件列出来源
// GET /api/sources
func (h *Handler) ListSources(c *gin.Context) {
	c.JSON(http.StatusOK, h.records.SourceFiles())
}

// DeleteBySource 删除某个上传文件的全部记录
// POST /api/sources/delete
func (h *Handler) DeleteBySource(c *gin.Context) {
	var body struct {
		Filename string `json:"filename" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": h.records.DeleteByFilename(body.Filename)})
}

// ResetAll 清空全部记录
// POST /api/reset
func (h *Handler) ResetAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deleted": h.records.Reset()})
}
