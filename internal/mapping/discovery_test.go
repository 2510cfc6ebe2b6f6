package mapping

import (
	"errors"
	"testing"

	"intellispec/internal/model"
)

func specFormDef() *model.FormDefinition {
	return &model.FormDefinition{
		DocumentType: model.DocTypeAsset,
		Nodes: []model.FormNode{
			{Key: "asset_tag", Label: "Asset Tag", Widget: "text", Required: true},
			{
				Key: "specifications",
				Children: []model.FormNode{
					{
						Key: "dimensions",
						Children: []model.FormNode{
							{Key: "length", Label: "Length", Widget: "number"},
							{Key: "width", Label: "Width", Widget: "number"},
						},
					},
				},
			},
			{Key: "status", Label: "Status", Widget: "select", Options: []string{"active", "retired"}},
		},
	}
}

func TestDiscoverFields_NestedGroupPaths(t *testing.T) {
	t.Parallel()

	fields, err := DiscoverFields(specFormDef(), nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = f.Path
	}

	want := []string{"asset_tag", "specifications.dimensions.length", "specifications.dimensions.width", "status"}
	if len(paths) != len(want) {
		t.Fatalf("unexpected field count: %d %v", len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path[%d] want=%s got=%s", i, want[i], paths[i])
		}
	}
}

func TestDiscoverFields_WidgetTypeInference(t *testing.T) {
	t.Parallel()

	fields, err := DiscoverFields(specFormDef(), nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	byPath := map[string]model.FieldDefinition{}
	for _, f := range fields {
		byPath[f.Path] = f
	}

	if byPath["asset_tag"].DataType != model.DataTypeText {
		t.Fatalf("asset_tag type: %s", byPath["asset_tag"].DataType)
	}
	if byPath["specifications.dimensions.length"].DataType != model.DataTypeNumber {
		t.Fatalf("length type: %s", byPath["specifications.dimensions.length"].DataType)
	}
	if byPath["status"].DataType != model.DataTypeEnum {
		t.Fatalf("status type: %s", byPath["status"].DataType)
	}
	if len(byPath["status"].Options) != 2 {
		t.Fatalf("status options: %v", byPath["status"].Options)
	}
}

func TestDiscoverFields_RepeatingGroupSingleKey(t *testing.T) {
	t.Parallel()

	def := &model.FormDefinition{
		DocumentType: model.DocTypeAsset,
		Nodes: []model.FormNode{
			{
				Key:       "tags",
				Repeating: true,
				Children: []model.FormNode{
					{Key: "value", Widget: "text"},
				},
			},
		},
	}

	fields, err := DiscoverFields(def, nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(fields) != 1 || fields[0].Path != "tags.value" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestDiscoverFields_StaticMerge(t *testing.T) {
	t.Parallel()

	static := []model.FieldDefinition{
		// 与发现结果冲突：发现结果优先，required 取或
		{Path: "status", Label: "State", DataType: model.DataTypeText, Required: true},
		// 仅静态存在：追加到末尾
		{Path: "legacy_code", Label: "Legacy Code", DataType: model.DataTypeText},
	}

	fields, err := DiscoverFields(specFormDef(), static)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	var status, legacy *model.FieldDefinition
	for i := range fields {
		switch fields[i].Path {
		case "status":
			status = &fields[i]
		case "legacy_code":
			legacy = &fields[i]
		}
	}

	if status == nil || legacy == nil {
		t.Fatalf("missing merged fields: %+v", fields)
	}
	if status.Label != "Status" || status.DataType != model.DataTypeEnum {
		t.Fatalf("discovered definition should win: %+v", status)
	}
	if !status.Required {
		t.Fatalf("required should be OR'd from static source")
	}
	if fields[len(fields)-1].Path != "legacy_code" {
		t.Fatalf("static-only field should be appended last: %+v", fields)
	}
}

func TestDiscoverFields_MissingDefinition(t *testing.T) {
	t.Parallel()

	var metaErr *MetadataError
	if _, err := DiscoverFields(nil, nil); !errors.As(err, &metaErr) {
		t.Fatalf("want MetadataError, got %v", err)
	}

	def := &model.FormDefinition{DocumentType: model.DocTypeSite}
	if _, err := DiscoverFields(def, nil); !errors.As(err, &metaErr) {
		t.Fatalf("want MetadataError for nil node tree, got %v", err)
	}

	def = &model.FormDefinition{
		DocumentType: model.DocTypeSite,
		Nodes:        []model.FormNode{{Key: "  ", Widget: "text"}},
	}
	if _, err := DiscoverFields(def, nil); !errors.As(err, &metaErr) {
		t.Fatalf("want MetadataError for blank key, got %v", err)
	}
}

func TestDiscoverFields_EmptyTreeIsValid(t *testing.T) {
	t.Parallel()

	def := &model.FormDefinition{DocumentType: model.DocTypeSite, Nodes: []model.FormNode{}}
	fields, err := DiscoverFields(def, nil)
	if err != nil {
		t.Fatalf("empty tree should not error: %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestHumanizeKey(t *testing.T) {
	t.Parallel()

	if got := humanizeKey("asset_tag"); got != "Asset Tag" {
		t.Fatalf("unexpected label: %s", got)
	}
	if got := humanizeKey("length"); got != "Length" {
		t.Fatalf("unexpected label: %s", got)
	}
}
