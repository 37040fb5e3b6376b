package importer

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"donorcrm/internal/model"
	"donorcrm/internal/store"
)

// buildWorkbook 在内存里拼一个测试工作簿
func buildWorkbook(t *testing.T, sheets map[string][][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("NewSheet failed: %v", err)
			}
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName failed: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return &buf
}

// TestImportFile 表头同义词映射、月份按工作表名推导
func TestImportFile(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		"Январь": {
			{"ФИО", "Сумма", "Дата", "E-mail"},
			{"Иванова Анна", "5000", "15.01.2025", "anna@example.com"},
			{"Серик Арман", "12000", "20.01.2025", ""},
		},
	})

	s := store.NewRecordStore()
	im := New(s)

	report, err := im.ImportFile(buf, "donations.xlsx", "")
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if report.Saved != 2 || report.Skipped != 0 {
		t.Fatalf("saved/skipped = %d/%d, want 2/0", report.Saved, report.Skipped)
	}
	if report.BatchID == "" {
		t.Errorf("batch id must be set")
	}
	if report.Source != "donations" {
		t.Errorf("source = %q, want donations", report.Source)
	}

	records := s.Snapshot()
	if len(records) != 2 {
		t.Fatalf("stored = %d, want 2", len(records))
	}
	first := records[0]
	if got := first.StringField(model.FieldFullName); got != "Иванова Анна" {
		t.Errorf("full_name = %q", got)
	}
	if got := first.StringField(model.FieldMonth); got != "Январь" {
		t.Errorf("month = %q, want Январь", got)
	}
	if got := first.StringField(model.FieldEmail); got != "anna@example.com" {
		t.Errorf("email = %q", got)
	}
	if got := first.StringField(model.FieldFilename); got != "donations.xlsx" {
		t.Errorf("filename = %q", got)
	}
	// 第二行的 E-mail 为空，不应出现该字段
	if _, ok := records[1][model.FieldEmail]; ok {
		t.Errorf("empty cell must not produce a field")
	}
}

// TestImportFileMonthFromDate 工作表名不是月份时按日期列推导月份
func TestImportFileMonthFromDate(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		"Выгрузка": {
			{"ФИО", "Дата"},
			{"Иванова Анна", "05.03.2025"},
			{"Серик Арман", "не дата"},
		},
	})

	s := store.NewRecordStore()
	report, err := New(s).ImportFile(buf, "export.xlsx", "kaspi")
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if report.Saved != 1 || report.Skipped != 1 {
		t.Fatalf("saved/skipped = %d/%d, want 1/1", report.Saved, report.Skipped)
	}

	rec := s.Snapshot()[0]
	if got := rec.StringField(model.FieldMonth); got != "Март" {
		t.Errorf("month = %q, want Март", got)
	}
	if got := rec.StringField(model.FieldSource); got != "kaspi" {
		t.Errorf("source = %q, want kaspi", got)
	}
}

// TestImportFileMultipleSheets 多工作表作为一个批次入库
func TestImportFileMultipleSheets(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		"Январь": {
			{"ФИО"},
			{"Донор Один"},
		},
		"Февраль": {
			{"ФИО"},
			{"Донор Два"},
			{"Донор Три"},
		},
	})

	s := store.NewRecordStore()
	report, err := New(s).ImportFile(buf, "year.xlsx", "")
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if report.Saved != 3 {
		t.Errorf("saved = %d, want 3", report.Saved)
	}
	if len(report.Sheets) != 2 {
		t.Errorf("sheets = %d, want 2", len(report.Sheets))
	}
	if s.Count() != 3 {
		t.Errorf("stored = %d, want 3", s.Count())
	}
}

// TestImportFileNotExcel 非 Excel 内容报错
func TestImportFileNotExcel(t *testing.T) {
	if _, err := New(store.NewRecordStore()).ImportFile(bytes.NewBufferString("не excel"), "a.xlsx", ""); err == nil {
		t.Errorf("expected error for invalid workbook")
	}
}
