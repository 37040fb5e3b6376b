package store

import (
	"errors"
	"fmt"
	"testing"

	"donorcrm/internal/model"
)

// TestAppendAssignsSequentialIDs 入库 N 条记录得到 1..N 的连续 id
func TestAppendAssignsSequentialIDs(t *testing.T) {
	s := NewRecordStore()

	var batch []model.Record
	for i := 0; i < 5; i++ {
		batch = append(batch, model.Record{
			model.FieldFullName: fmt.Sprintf("Донор %d", i),
		})
	}
	s.Append(batch)

	snapshot := s.Snapshot()
	if len(snapshot) != 5 {
		t.Fatalf("Snapshot() len = %d, want 5", len(snapshot))
	}
	for i, rec := range snapshot {
		if rec.ID() != int64(i+1) {
			t.Errorf("record %d id = %d, want %d", i, rec.ID(), i+1)
		}
	}
}

// TestAppendAcrossBatches id 跨批次不重复、不回退
func TestAppendAcrossBatches(t *testing.T) {
	s := NewRecordStore()

	s.Append([]model.Record{{}, {}})
	s.Append([]model.Record{{}})

	seen := map[int64]bool{}
	for _, rec := range s.Snapshot() {
		id := rec.ID()
		if seen[id] {
			t.Errorf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 3 {
		t.Errorf("unique ids = %d, want 3", len(seen))
	}
}

// TestGetNotFound 不存在的 id 返回 ErrNotFound
func TestGetNotFound(t *testing.T) {
	s := NewRecordStore()

	_, err := s.Get(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(42) err = %v, want ErrNotFound", err)
	}
}

// TestSetField 点更新单个字段
func TestSetField(t *testing.T) {
	s := NewRecordStore()
	s.Append([]model.Record{{model.FieldFullName: "Донор"}})

	if err := s.SetField(1, model.FieldPhone, "+77001234567"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	rec, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := rec.StringField(model.FieldPhone); got != "+77001234567" {
		t.Errorf("phone = %q, want +77001234567", got)
	}

	if err := s.SetField(99, model.FieldPhone, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetField(99) err = %v, want ErrNotFound", err)
	}
}

// TestUpdatePreservesID 补丁不能覆盖 id
func TestUpdatePreservesID(t *testing.T) {
	s := NewRecordStore()
	s.Append([]model.Record{{model.FieldFullName: "Донор"}})

	rec, err := s.Update(1, map[string]any{
		model.FieldID:    int64(777),
		model.FieldEmail: "donor@example.com",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rec.ID() != 1 {
		t.Errorf("id after update = %d, want 1", rec.ID())
	}
	if got := rec.StringField(model.FieldEmail); got != "donor@example.com" {
		t.Errorf("email = %q", got)
	}
}

// TestDeleteByFilename 按上传文件删除
func TestDeleteByFilename(t *testing.T) {
	s := NewRecordStore()
	s.Append([]model.Record{
		{model.FieldFilename: "a.xlsx"},
		{model.FieldFilename: "b.xlsx"},
		{model.FieldFilename: "a.xlsx"},
	})

	if deleted := s.DeleteByFilename("a.xlsx"); deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}

	// 删除后新入库的 id 仍然递增
	s.Append([]model.Record{{}})
	last := s.Snapshot()[s.Count()-1]
	if last.ID() != 4 {
		t.Errorf("new id = %d, want 4", last.ID())
	}
}

// TestReset 清空存储
func TestReset(t *testing.T) {
	s := NewRecordStore()
	s.Append([]model.Record{{}, {}, {}})

	if deleted := s.Reset(); deleted != 3 {
		t.Errorf("Reset() = %d, want 3", deleted)
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
}

// TestSourceFiles 按文件分组统计，顺序按首次出现
func TestSourceFiles(t *testing.T) {
	s := NewRecordStore()
	s.Append([]model.Record{
		{model.FieldFilename: "a.xlsx", model.FieldSource: "сайт"},
		{model.FieldFilename: "b.xlsx", model.FieldSource: "crm"},
		{model.FieldFilename: "a.xlsx", model.FieldSource: "сайт"},
	})

	files := s.SourceFiles()
	if len(files) != 2 {
		t.Fatalf("SourceFiles len = %d, want 2", len(files))
	}
	if files[0].Filename != "a.xlsx" || files[0].Count != 2 || files[0].Source != "сайт" {
		t.Errorf("files[0] = %+v", files[0])
	}
	if files[1].Filename != "b.xlsx" || files[1].Count != 1 {
		t.Errorf("files[1] = %+v", files[1])
	}
}
