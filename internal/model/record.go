package model

import (
	"strconv"
	"strings"
)

// 规范字段名
// 不同来源表格中同一概念的多种写法（俄语/英语/别名）统一映射到这些名字
const (
	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldAmount   = "amount"
	FieldDate     = "date"
	FieldSource   = "source"
	FieldFilename = "filename"
	FieldMonth    = "month"
	FieldGender   = "gender"
	FieldLanguage = "language"
	FieldPhone    = "phone"
)

// Record 松散结构的捐赠记录
// 字段集合不固定，除 id 外任何字段都可能缺失，消费方必须按可选字段处理
type Record map[string]any

// RussianMonths 俄语月份名（表格的 sheet 名和入库 month 标签使用）
var RussianMonths = []string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// CanonicalRussianMonth 把任意大小写的俄语月份名归一到规范写法
// 不是月份名时返回 ok=false
func CanonicalRussianMonth(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, m := range RussianMonths {
		if strings.EqualFold(s, m) {
			return m, true
		}
	}
	return "", false
}

// Clone 浅拷贝记录
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID 读取记录 id，缺失时返回 0
func (r Record) ID() int64 {
	switch v := r[FieldID].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// StringField 读取字符串字段，缺失或非字符串返回空串
func (r Record) StringField(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// FloatField 读取数值字段并做容错类型转换
// 支持 float64/int/字符串（允许空格和逗号小数点），失败返回 ok=false
func (r Record) FloatField(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	return CoerceFloat(v)
}

// CoerceFloat 把松散类型的值转换为 float64
func CoerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		// 部分导出表使用逗号作为小数点，去掉千位空格
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
