package parser

import (
	"strings"
	"time"
)

// ParseDate 容错解析人工填写的日期
// 依次尝试 DD.MM.YYYY、DD/MM/YYYY、ISO（截断时间部分），全部失败返回 ok=false，从不报错
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	low := strings.ToLower(s)
	if low == "nan" || low == "nat" || low == "none" {
		return time.Time{}, false
	}

	if strings.Count(s, ".") == 2 {
		if t, err := time.Parse("02.01.2006", s); err == nil {
			return t, true
		}
	}
	if strings.Count(s, "/") == 2 {
		if t, err := time.Parse("02/01/2006", s); err == nil {
			return t, true
		}
	}
	if strings.Contains(s, "-") {
		datePart := s
		if idx := strings.Index(s, "T"); idx >= 0 {
			datePart = s[:idx]
		}
		if t, err := time.Parse("2006-01-02", datePart); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// tolerantLayouts ParseDateTolerant 追加尝试的格式
var tolerantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	time.RFC3339,
}

// ParseDateTolerant 聚合阶段使用的更宽松解析
// 在 ParseDate 基础上追加带时间的 ISO 格式和带时间的日在前格式。
// 带时间的格式先于 ParseDate 尝试，否则 ISO 带时间的写法会被截断成零点
func ParseDateTolerant(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range tolerantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return ParseDate(s)
}
