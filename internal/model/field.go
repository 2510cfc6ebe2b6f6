package model

// DataType 字段数据类型
type DataType string

const (
	DataTypeText    DataType = "text"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
	DataTypeDate    DataType = "date"
	DataTypeEnum    DataType = "enum"
)

// FieldDefinition 可映射的目标字段定义
// Path 使用点号分隔的嵌套路径，如 specifications.dimensions.length
type FieldDefinition struct {
	Path     string   `json:"path"`
	Label    string   `json:"label"`
	DataType DataType `json:"dataType"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"` // 仅 enum 类型有效
}
