package mapping

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`[\s_]+`)

// NormalizeHeader 规范化表头
// 小写、去首尾空白、内部空白和下划线折叠为单个空格
func NormalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return spaceRe.ReplaceAllString(name, " ")
}

// normalizeExact 仅做大小写与空白规范化，保留下划线
// 用于区分"完全相等"(95) 与"仅下划线/空格差异相等"(90)
func normalizeExact(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(name, " ")
}

// singularize 朴素去复数，仅处理常见英文尾缀
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ses") && len(word) > 3:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 1:
		return word[:len(word)-1]
	}
	return word
}

// singularizePhrase 对短语的每个词去复数
func singularizePhrase(phrase string) string {
	words := strings.Split(phrase, " ")
	for i, w := range words {
		words[i] = singularize(w)
	}
	return strings.Join(words, " ")
}

// normalizePath 将点号路径转为可与表头比较的形式
// specifications.dimensions.length -> specifications dimensions length
func normalizePath(path string) string {
	path = strings.ReplaceAll(path, ".", " ")
	return NormalizeHeader(path)
}
