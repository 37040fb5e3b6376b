// Package exporter 把过滤后的记录写成 xlsx 工作簿
package exporter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"donorcrm/internal/model"
)

// ErrNoRows 过滤结果为空，没有可导出的数据
var ErrNoRows = errors.New("no records match the requested filters")

// columnPriority 规范字段的固定列顺序，未收录的字段排在后面按名称排序
var columnPriority = []string{
	model.FieldID,
	model.FieldFullName,
	model.FieldEmail,
	model.FieldPhone,
	model.FieldGender,
	model.FieldLanguage,
	model.FieldAmount,
	model.FieldDate,
	model.FieldMonth,
	model.FieldSource,
	model.FieldFilename,
}

// columnOrder 计算导出列顺序
func columnOrder(records []model.Record) []string {
	present := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			present[key] = true
		}
	}

	var columns []string
	for _, col := range columnPriority {
		if present[col] {
			columns = append(columns, col)
			delete(present, col)
		}
	}

	extras := make([]string, 0, len(present))
	for col := range present {
		extras = append(extras, col)
	}
	sort.Strings(extras)

	return append(columns, extras...)
}

// BuildWorkbook 把记录集合写成单工作表的 xlsx
// 零条记录返回 ErrNoRows，区别于合法的空列表响应
func BuildWorkbook(records []model.Record) (*excelize.File, error) {
	if len(records) == 0 {
		return nil, ErrNoRows
	}

	columns := columnOrder(records)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, rec := range records {
		for colIdx, col := range columns {
			value, ok := rec[col]
			if !ok || value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}
