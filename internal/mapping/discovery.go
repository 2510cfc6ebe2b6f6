package mapping

import (
	"strings"

	"intellispec/internal/model"
)

// widgetDataTypes 控件类型到字段数据类型的映射
// 未知控件一律按 text 处理
var widgetDataTypes = map[string]model.DataType{
	"text":        model.DataTypeText,
	"textarea":    model.DataTypeText,
	"richtext":    model.DataTypeText,
	"number":      model.DataTypeNumber,
	"integer":     model.DataTypeNumber,
	"decimal":     model.DataTypeNumber,
	"currency":    model.DataTypeNumber,
	"percent":     model.DataTypeNumber,
	"checkbox":    model.DataTypeBoolean,
	"switch":      model.DataTypeBoolean,
	"toggle":      model.DataTypeBoolean,
	"date":        model.DataTypeDate,
	"datetime":    model.DataTypeDate,
	"datepicker":  model.DataTypeDate,
	"select":      model.DataTypeEnum,
	"dropdown":    model.DataTypeEnum,
	"radio":       model.DataTypeEnum,
	"multiselect": model.DataTypeEnum,
}

// WidgetDataType 从控件类型推断数据类型
func WidgetDataType(widget string) model.DataType {
	if dt, ok := widgetDataTypes[strings.ToLower(strings.TrimSpace(widget))]; ok {
		return dt
	}
	return model.DataTypeText
}

// DiscoverFields 遍历表单定义树，产出可寻址的目标字段列表
// 深度优先前序；分组 key 逐层拼接为点号路径；重复分组只使用一次 key。
// static 为人工维护的静态字段，路径冲突时以发现结果为准，required 两边取或；
// 未冲突的静态字段按声明顺序追加在末尾。
func DiscoverFields(def *model.FormDefinition, static []model.FieldDefinition) ([]model.FieldDefinition, error) {
	if def == nil {
		return nil, &MetadataError{Reason: "form definition is missing"}
	}
	if def.Nodes == nil {
		return nil, &MetadataError{Reason: "form definition has no node tree"}
	}

	discovered := make([]model.FieldDefinition, 0, 16)
	if err := walkNodes(def.Nodes, "", &discovered); err != nil {
		return nil, err
	}

	byPath := make(map[string]int, len(discovered))
	for i, f := range discovered {
		byPath[f.Path] = i
	}

	for _, sf := range static {
		if i, ok := byPath[sf.Path]; ok {
			// 发现结果优先，required 取或
			if sf.Required {
				discovered[i].Required = true
			}
			continue
		}
		discovered = append(discovered, sf)
	}

	return discovered, nil
}

func walkNodes(nodes []model.FormNode, prefix string, out *[]model.FieldDefinition) error {
	for _, node := range nodes {
		if strings.TrimSpace(node.Key) == "" {
			return &MetadataError{Reason: "form node without key"}
		}

		path := node.Key
		if prefix != "" {
			path = prefix + "." + node.Key
		}

		if len(node.Children) > 0 {
			if err := walkNodes(node.Children, path, out); err != nil {
				return err
			}
			continue
		}

		field := model.FieldDefinition{
			Path:     path,
			Label:    node.Label,
			DataType: WidgetDataType(node.Widget),
			Required: node.Required,
		}
		if field.Label == "" {
			field.Label = humanizeKey(node.Key)
		}
		if field.DataType == model.DataTypeEnum {
			field.Options = append([]string(nil), node.Options...)
		}

		*out = append(*out, field)
	}
	return nil
}

// humanizeKey 从路径末段生成显示名：asset_tag -> Asset Tag
func humanizeKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
