package store

import (
	"path/filepath"
	"testing"

	"donorcrm/internal/model"
)

// TestCRMStoreRoundTrip 写入后能完整读回
func TestCRMStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "crm.db")
	s, err := NewCRMStore(dbPath)
	if err != nil {
		t.Fatalf("NewCRMStore failed: %v", err)
	}
	defer s.Close()

	entries := []model.Record{
		{"ФИО": "Иванова Анна", "Сумма": 5000.0, "Дата": "2024-01-15"},
		{"ФИО": "Серик Арман", "Сумма": 12000.0, "Дата": "2024-02-20"},
	}
	if err := s.InsertEntries(entries); err != nil {
		t.Fatalf("InsertEntries failed: %v", err)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	got, err := s.AllEntries()
	if err != nil {
		t.Fatalf("AllEntries failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("AllEntries len = %d, want 2", len(got))
	}
	if got[0]["ФИО"] != "Иванова Анна" {
		t.Errorf("ФИО = %v, want Иванова Анна", got[0]["ФИО"])
	}
	if got[1]["Сумма"] != 12000.0 {
		t.Errorf("Сумма = %v, want 12000", got[1]["Сумма"])
	}
}

// TestCRMStoreEmpty 空库读取不报错
func TestCRMStoreEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "crm.db")
	s, err := NewCRMStore(dbPath)
	if err != nil {
		t.Fatalf("NewCRMStore failed: %v", err)
	}
	defer s.Close()

	got, err := s.AllEntries()
	if err != nil {
		t.Fatalf("AllEntries failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("AllEntries len = %d, want 0", len(got))
	}
}
