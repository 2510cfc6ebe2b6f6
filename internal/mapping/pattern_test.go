package mapping

import (
	"testing"

	"intellispec/internal/model"
)

func TestSniffDataType_Dates(t *testing.T) {
	t.Parallel()

	samples := []any{"2024-01-02", "2024-02-03T10:00:00Z", "03/04/2024", "n/a", "2024-05-06"}
	dt, ok := sniffDataType(samples)
	if !ok || dt != model.DataTypeDate {
		t.Fatalf("want date, got %s ok=%v", dt, ok)
	}
}

func TestSniffDataType_Numbers(t *testing.T) {
	t.Parallel()

	samples := []any{"12", "3.5", float64(7), "-8", "x"}
	dt, ok := sniffDataType(samples)
	if !ok || dt != model.DataTypeNumber {
		t.Fatalf("want number, got %s ok=%v", dt, ok)
	}
}

func TestSniffDataType_Booleans(t *testing.T) {
	t.Parallel()

	samples := []any{"yes", "no", true, "Y", "N"}
	dt, ok := sniffDataType(samples)
	if !ok || dt != model.DataTypeBoolean {
		t.Fatalf("want boolean, got %s ok=%v", dt, ok)
	}
}

func TestSniffDataType_BelowRatio(t *testing.T) {
	t.Parallel()

	// 3/5 是数字，低于 80% 阈值
	samples := []any{"1", "2", "3", "a", "b"}
	if dt, ok := sniffDataType(samples); ok {
		t.Fatalf("should not sniff a type, got %s", dt)
	}
}

func TestSniffDataType_EmptySamplesSkipped(t *testing.T) {
	t.Parallel()

	samples := []any{"", nil, "  ", "2024-01-02", "2024-02-03"}
	dt, ok := sniffDataType(samples)
	if !ok || dt != model.DataTypeDate {
		t.Fatalf("want date, got %s ok=%v", dt, ok)
	}
}

func TestSniffDataType_LimitFirstTen(t *testing.T) {
	t.Parallel()

	// 前 10 个非空样本全是数字，之后的脏数据不参与判定
	samples := make([]any, 0, 15)
	for i := 0; i < 10; i++ {
		samples = append(samples, "42")
	}
	for i := 0; i < 5; i++ {
		samples = append(samples, "junk")
	}
	dt, ok := sniffDataType(samples)
	if !ok || dt != model.DataTypeNumber {
		t.Fatalf("want number, got %s ok=%v", dt, ok)
	}
}

func TestSniffDataType_NoSamples(t *testing.T) {
	t.Parallel()

	if _, ok := sniffDataType(nil); ok {
		t.Fatalf("no samples should not sniff")
	}
	if _, ok := sniffDataType([]any{"", nil}); ok {
		t.Fatalf("blank samples should not sniff")
	}
}
