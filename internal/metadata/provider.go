package metadata

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"intellispec/internal/mapping"
	"intellispec/internal/model"
)

//go:embed forms/*.json
var formFS embed.FS

// Provider 表单元数据提供方
// 内置表单定义随二进制下发；formsDir 非空时允许
// <formsDir>/<documentType>.json 覆盖内置定义
type Provider struct {
	formsDir string
}

// NewProvider 创建元数据提供方
func NewProvider(formsDir string) *Provider {
	return &Provider{formsDir: formsDir}
}

// DocumentTypes 已知文档类型，按层级顺序
func (p *Provider) DocumentTypes() []string {
	return []string{
		model.DocTypeCompany,
		model.DocTypeSite,
		model.DocTypeAssetGroup,
		model.DocTypeAsset,
	}
}

// KnownType 是否为已知文档类型
func (p *Provider) KnownType(documentType string) bool {
	for _, dt := range p.DocumentTypes() {
		if dt == documentType {
			return true
		}
	}
	return false
}

// FormDefinition 获取某文档类型的表单定义
func (p *Provider) FormDefinition(documentType string) (*model.FormDefinition, error) {
	if p.formsDir != "" {
		path := filepath.Join(p.formsDir, documentType+".json")
		data, err := os.ReadFile(path)
		if err == nil {
			return decodeForm(data)
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read form override: %w", err)
		}
	}

	data, err := formFS.ReadFile("forms/" + documentType + ".json")
	if err != nil {
		return nil, &mapping.MetadataError{Reason: fmt.Sprintf("no form definition for document type %q", documentType)}
	}
	return decodeForm(data)
}

// Fields 发现某文档类型的全部可映射字段（含静态字段合并）
func (p *Provider) Fields(documentType string) ([]model.FieldDefinition, error) {
	def, err := p.FormDefinition(documentType)
	if err != nil {
		return nil, err
	}
	return mapping.DiscoverFields(def, StaticFields(documentType))
}

func decodeForm(data []byte) (*model.FormDefinition, error) {
	var def model.FormDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, &mapping.MetadataError{Reason: "malformed form definition: " + err.Error()}
	}
	return &def, nil
}
