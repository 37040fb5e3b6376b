package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"donorcrm/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// CRMStore CRM 历史数据的 SQLite 存储层
// 原始行以 JSON 形式整行存储，字段集合不固定
type CRMStore struct {
	db *sql.DB
}

// NewCRMStore 创建 CRMStore 实例
func NewCRMStore(dbPath string) (*CRMStore, error) {
	// 确保 data 目录存在
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite 建议单连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &CRMStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化数据库结构
func (s *CRMStore) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Close 关闭数据库连接
func (s *CRMStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InsertEntries 批量写入原始记录
func (s *CRMStore) InsertEntries(entries []model.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO crm_entries (data) VALUES (?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to encode entry: %w", err)
		}
		if _, err := stmt.Exec(string(data)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert entry: %w", err)
		}
	}

	return tx.Commit()
}

// AllEntries 读取全部原始记录，入库顺序返回
// 无法解码的行跳过，不中断整体读取
func (s *CRMStore) AllEntries() ([]model.Record, error) {
	rows, err := s.db.Query(`SELECT data FROM crm_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query crm entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan crm entry: %w", err)
		}
		var rec model.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			continue
		}
		entries = append(entries, rec)
	}
	return entries, rows.Err()
}

// Count CRM 记录总数
func (s *CRMStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM crm_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count crm entries: %w", err)
	}
	return n, nil
}
