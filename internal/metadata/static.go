package metadata

import "intellispec/internal/model"

// staticFields 人工维护的静态字段，优先级低于表单发现结果
// 主要承接不在表单里但历史导出中仍会出现的遗留列
var staticFields = map[string][]model.FieldDefinition{
	model.DocTypeAsset: {
		{Path: "legacy_id", Label: "Legacy ID", DataType: model.DataTypeText},
		// 与表单冲突时 required 取或：资产标签在老系统里同样是必填
		{Path: "asset_tag", Label: "Asset Tag", DataType: model.DataTypeText, Required: true},
	},
	model.DocTypeSite: {
		{Path: "timezone", Label: "Timezone", DataType: model.DataTypeText},
	},
	model.DocTypeCompany: {
		{Path: "tax_id", Label: "Tax ID", DataType: model.DataTypeText},
	},
}

// StaticFields 某文档类型的静态字段定义
func StaticFields(documentType string) []model.FieldDefinition {
	return staticFields[documentType]
}
