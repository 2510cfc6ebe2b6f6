package model

import "time"

// DocumentType 已知的层级文档类型（公司 → 站点 → 资产分组 → 资产）
const (
	DocTypeCompany    = "company"
	DocTypeSite       = "site"
	DocTypeAssetGroup = "asset_group"
	DocTypeAsset      = "asset"
)

// Document 导入后落库的业务文档
// Payload 为嵌套记录，序列化为 JSON 存储
type Document struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenantId"`
	DocumentType string         `json:"documentType"`
	Payload      map[string]any `json:"payload"`
	SourceFile   string         `json:"sourceFile,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
