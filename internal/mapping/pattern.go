package mapping

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"intellispec/internal/model"
)

// patternSampleLimit 每列最多检查的非空样本数
const patternSampleLimit = 10

// patternMinRatio 判定为某类型所需的最低样本占比
const patternMinRatio = 0.8

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

var numberRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// looksLikeDate ISO-8601 以及常见 MM/DD/YYYY、YYYY-MM-DD 形式
func looksLikeDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// looksLikeBoolean 仅接受明确的布尔词，避免与数字 0/1 混淆
func looksLikeBoolean(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "y", "n":
		return true
	}
	return false
}

func looksLikeNumber(s string) bool {
	if numberRe.MatchString(s) {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// sniffDataType 根据样本值猜测该列的数据类型
// 只检查前 patternSampleLimit 个非空样本；占比不足时返回 false
func sniffDataType(samples []any) (model.DataType, bool) {
	counts := map[model.DataType]int{}
	total := 0

	for _, v := range samples {
		if total >= patternSampleLimit {
			break
		}
		if v == nil {
			continue
		}

		switch tv := v.(type) {
		case bool:
			counts[model.DataTypeBoolean]++
		case float64:
			counts[model.DataTypeNumber]++
		case int:
			counts[model.DataTypeNumber]++
		case string:
			s := strings.TrimSpace(tv)
			if s == "" {
				continue
			}
			switch {
			case looksLikeDate(s):
				counts[model.DataTypeDate]++
			case looksLikeBoolean(s):
				counts[model.DataTypeBoolean]++
			case looksLikeNumber(s):
				counts[model.DataTypeNumber]++
			}
		default:
			s := strings.TrimSpace(fmt.Sprint(v))
			if s == "" {
				continue
			}
			if looksLikeNumber(s) {
				counts[model.DataTypeNumber]++
			}
		}
		total++
	}

	if total == 0 {
		return "", false
	}

	for _, dt := range []model.DataType{model.DataTypeDate, model.DataTypeNumber, model.DataTypeBoolean} {
		if float64(counts[dt])/float64(total) >= patternMinRatio {
			return dt, true
		}
	}
	return "", false
}
