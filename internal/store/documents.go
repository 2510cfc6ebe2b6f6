package store

import (
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"intellispec/internal/model"
)

// InsertDocument 写入一条业务文档
func (s *Store) InsertDocument(doc *model.Document) error {
	payload, err := json.Marshal(doc.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO documents (id, tenant_id, document_type, payload, source_file)
		VALUES (?, ?, ?, ?, ?)
	`, doc.ID, doc.TenantID, doc.DocumentType, string(payload), doc.SourceFile)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// ListDocuments 按租户和文档类型查询，按写入顺序返回
func (s *Store) ListDocuments(tenantID, documentType string) ([]model.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, document_type, payload, source_file, created_at, updated_at
		FROM documents
		WHERE tenant_id = ? AND document_type = ?
		ORDER BY rowid
	`, tenantID, documentType)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// GetDocument 按 id 查询单条文档
func (s *Store) GetDocument(tenantID, id string) (*model.Document, error) {
	row := s.db.QueryRow(`
		SELECT id, tenant_id, document_type, payload, source_file, created_at, updated_at
		FROM documents
		WHERE tenant_id = ? AND id = ?
	`, tenantID, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return doc, err
}

// DeleteDocuments 删除某类型的全部文档，返回删除条数
func (s *Store) DeleteDocuments(tenantID, documentType string) (int64, error) {
	res, err := s.db.Exec(`
		DELETE FROM documents WHERE tenant_id = ? AND document_type = ?
	`, tenantID, documentType)
	if err != nil {
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}
	return res.RowsAffected()
}

// CountDocuments 统计某类型的文档数
func (s *Store) CountDocuments(tenantID, documentType string) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM documents WHERE tenant_id = ? AND document_type = ?
	`, tenantID, documentType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(r rowScanner) (*model.Document, error) {
	var doc model.Document
	var payload string
	var createdAt, updatedAt time.Time

	if err := r.Scan(&doc.ID, &doc.TenantID, &doc.DocumentType, &payload, &doc.SourceFile, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &doc.Payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	doc.CreatedAt = createdAt
	doc.UpdatedAt = updatedAt
	return &doc, nil
}
