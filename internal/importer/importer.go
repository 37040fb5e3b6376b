// Package importer 把上传的 Excel 工作簿解码成原始行并完成入库
package importer

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"donorcrm/internal/model"
	"donorcrm/internal/parser"
	"donorcrm/internal/store"
)

// Importer 导入器
type Importer struct {
	store *store.RecordStore
}

// New 创建导入器
func New(s *store.RecordStore) *Importer {
	return &Importer{store: s}
}

// SheetResult 单个工作表的导入结果
type SheetResult struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Saved   int    `json:"saved"`
	Skipped int    `json:"skipped"` // 推导不出月份被丢弃的行数
}

// ImportReport 单个文件的导入报告
type ImportReport struct {
	BatchID  string        `json:"batch_id"`
	Filename string        `json:"filename"`
	Source   string        `json:"source"`
	Sheets   []SheetResult `json:"sheets"`
	Saved    int           `json:"saved"`
	Skipped  int           `json:"skipped"`
}

// ImportFile 解析一个工作簿并把规范化后的记录追加进存储
// source 为空时来源标签按文件名推导；同一文件的全部工作表作为一个批次入库
func (im *Importer) ImportFile(r io.Reader, filename, source string) (*ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	report := &ImportReport{
		BatchID:  uuid.New().String(),
		Filename: filename,
	}

	var batch []model.Record

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil || len(rows) < 2 {
			continue
		}

		ctx := parser.RowContext{
			Sheet:    sheetName,
			Source:   source,
			Filename: filename,
		}
		result := SheetResult{Name: sheetName, Rows: len(rows) - 1}

		header := rows[0]
		for _, cells := range rows[1:] {
			raw := rowToMap(header, cells)
			if len(raw) == 0 {
				continue
			}
			rec, ok := parser.CanonicalizeRow(raw, ctx)
			if !ok {
				result.Skipped++
				continue
			}
			batch = append(batch, rec)
			result.Saved++
		}

		report.Sheets = append(report.Sheets, result)
		report.Saved += result.Saved
		report.Skipped += result.Skipped
	}

	if len(batch) > 0 {
		im.store.Append(batch)
		report.Source = batch[0].StringField(model.FieldSource)
	}

	return report, nil
}

// rowToMap 把一行单元格按表头组装成原始行映射
// 空表头和空单元格跳过；行比表头短时缺失的列视为空
func rowToMap(header, cells []string) map[string]any {
	raw := make(map[string]any, len(header))
	for i, col := range header {
		if col == "" || i >= len(cells) {
			continue
		}
		if cells[i] == "" {
			continue
		}
		raw[col] = cells[i]
	}
	return raw
}
