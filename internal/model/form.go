package model

// FormNode 表单定义树节点
// Children 非空时视为字段分组，否则为叶子字段
type FormNode struct {
	Key       string     `json:"key"`
	Label     string     `json:"label,omitempty"`
	Widget    string     `json:"widget,omitempty"`    // 叶子字段的控件类型，决定 DataType
	Required  bool       `json:"required,omitempty"`
	Repeating bool       `json:"repeating,omitempty"` // 重复分组（数组），路径仍只使用一次分组 key
	Options   []string   `json:"options,omitempty"`
	Children  []FormNode `json:"children,omitempty"`
}

// FormDefinition 某一文档类型的表单定义
// 由元数据提供方下发，发现器只读不取
type FormDefinition struct {
	DocumentType string     `json:"documentType"`
	Nodes        []FormNode `json:"nodes"`
}
