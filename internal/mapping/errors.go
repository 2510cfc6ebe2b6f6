package mapping

import "fmt"

// MetadataError 表单定义缺失或结构不合法
// 对本次调用不可恢复，直接上抛给调用方
type MetadataError struct {
	Reason string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata error: %s", e.Reason)
}

// InvalidInputError 表头输入不合法（为空或存在重复列名）
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}
