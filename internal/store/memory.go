package store

import (
	"errors"
	"sync"

	"donorcrm/internal/model"
)

// ErrNotFound 按 id 定位的记录不存在
var ErrNotFound = errors.New("record not found")

// RecordStore 进程级内存记录存储
// 追加顺序即默认遍历顺序；id 单调递增，生命周期内不复用
type RecordStore struct {
	records []model.Record
	nextID  int64
	mu      sync.RWMutex
}

// NewRecordStore 创建内存存储
func NewRecordStore() *RecordStore {
	return &RecordStore{nextID: 1}
}

// Append 按到达顺序追加一批记录并分配 id
// 返回追加后的记录（含 id），入参记录被原地打上 id
func (s *RecordStore) Append(batch []model.Record) []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range batch {
		rec[model.FieldID] = s.nextID
		s.nextID++
		s.records = append(s.records, rec)
	}
	return batch
}

// Snapshot 返回当前全部记录的副本切片
// 记录本体共享，读操作不要修改字段
func (s *RecordStore) Snapshot() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Count 记录总数
func (s *RecordStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get 按 id 查找记录
func (s *RecordStore) Get(id int64) (model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// SetField 按 id 更新单个字段
func (s *RecordStore) SetField(id int64, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID() == id {
			rec[field] = value
			return nil
		}
	}
	return ErrNotFound
}

// Update 按 id 合并补丁，id 字段不可覆盖
func (s *RecordStore) Update(id int64, patch map[string]any) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID() == id {
			for k, v := range patch {
				if k == model.FieldID {
					continue
				}
				rec[k] = v
			}
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// Add 追加单条记录并分配 id
func (s *RecordStore) Add(rec model.Record) model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec[model.FieldID] = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return rec
}

// DeleteByFilename 删除来自指定文件的全部记录，返回删除数量
func (s *RecordStore) DeleteByFilename(filename string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	deleted := 0
	for _, rec := range s.records {
		if rec.StringField(model.FieldFilename) == filename {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return deleted
}

// Reset 清空全部记录，返回清除数量
// id 序列不回退，避免新旧记录的 id 冲突
func (s *RecordStore) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := len(s.records)
	s.records = nil
	return deleted
}

// SourceFile 某个上传文件的概要
type SourceFile struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Count    int    `json:"count"`
}

// SourceFiles 按上传文件分组统计，顺序为文件首次出现顺序
func (s *RecordStore) SourceFiles() []SourceFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]int)
	var out []SourceFile
	for _, rec := range s.records {
		filename := rec.StringField(model.FieldFilename)
		if filename == "" {
			continue
		}
		i, ok := index[filename]
		if !ok {
			index[filename] = len(out)
			out = append(out, SourceFile{
				Filename: filename,
				Source:   rec.StringField(model.FieldSource),
			})
			i = len(out) - 1
		}
		out[i].Count++
	}
	return out
}
