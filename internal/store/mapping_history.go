package store

import (
	"database/sql"
	"fmt"
	"log"

	"intellispec/internal/mapping"
)

// UpsertMappingHistory 写入一条确认映射，同 key 覆盖旧值
func (s *Store) UpsertMappingHistory(tenantID, documentType, normalizedHeader, targetPath string) error {
	_, err := s.db.Exec(`
		INSERT INTO mapping_history (tenant_id, document_type, normalized_header, target_path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (tenant_id, document_type, normalized_header)
		DO UPDATE SET target_path = excluded.target_path, confirmed_at = CURRENT_TIMESTAMP
	`, tenantID, documentType, normalizedHeader, targetPath)
	if err != nil {
		return fmt.Errorf("failed to upsert mapping history: %w", err)
	}
	return nil
}

// LookupMappingHistory 查询确认映射
func (s *Store) LookupMappingHistory(tenantID, documentType, normalizedHeader string) (string, bool, error) {
	var target string
	err := s.db.QueryRow(`
		SELECT target_path FROM mapping_history
		WHERE tenant_id = ? AND document_type = ? AND normalized_header = ?
	`, tenantID, documentType, normalizedHeader).Scan(&target)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to lookup mapping history: %w", err)
	}
	return target, true, nil
}

// History mapping.History 的 SQLite 实现，固定到单个租户
type History struct {
	store    *Store
	tenantID string
}

// NewHistory 创建历史映射存储
func NewHistory(s *Store, tenantID string) *History {
	return &History{store: s, tenantID: tenantID}
}

// Lookup 查询已确认映射；查询失败按无命中处理
func (h *History) Lookup(documentType, normalizedHeader string) (string, bool) {
	target, ok, err := h.store.LookupMappingHistory(h.tenantID, documentType, normalizedHeader)
	if err != nil {
		log.Printf("mapping history lookup failed: %v", err)
		return "", false
	}
	return target, ok
}

// RecordConfirmedMapping 写入用户确认的映射
// 入参为原始表头，存储前做规范化
func (h *History) RecordConfirmedMapping(documentType, header, targetPath string) error {
	return h.store.UpsertMappingHistory(h.tenantID, documentType, mapping.NormalizeHeader(header), targetPath)
}
