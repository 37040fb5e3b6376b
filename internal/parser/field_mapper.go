package parser

import (
	"strings"

	"donorcrm/internal/model"
)

// fieldSynonyms 同义字段表
// 已知的别名/多语言写法映射到规范字段名，未收录的字段原样保留
var fieldSynonyms = map[string]string{
	"фио":               model.FieldFullName,
	"fio":               model.FieldFullName,
	"full_name":         model.FieldFullName,
	"e-mail":            model.FieldEmail,
	"email":             model.FieldEmail,
	"электронная почта": model.FieldEmail,
	"сумма":             model.FieldAmount,
	"сумма платежа":     model.FieldAmount,
	"summa":             model.FieldAmount,
	"amount":            model.FieldAmount,
	"дата":              model.FieldDate,
	"дата платежа":      model.FieldDate,
	"дата и время":      model.FieldDate,
	"date":              model.FieldDate,
	"datetime":          model.FieldDate,
	"источник":          model.FieldSource,
	"source":            model.FieldSource,
	"телефон":           model.FieldPhone,
	"phone":             model.FieldPhone,
	"язык":              model.FieldLanguage,
	"language":          model.FieldLanguage,
	"пол":               model.FieldGender,
	"gender":            model.FieldGender,
}

// CanonicalFieldName 把来源列名映射为规范字段名
func CanonicalFieldName(col string) string {
	trimmed := strings.TrimSpace(col)
	if canonical, ok := fieldSynonyms[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// RowContext 一批行的来源上下文
type RowContext struct {
	Sheet    string // 工作表名
	Source   string // 批次指定的来源标签，为空时按文件名推导
	Filename string // 原始文件名
}

// SourceLabel 该批次的来源标签
func (c RowContext) SourceLabel() string {
	if s := strings.TrimSpace(c.Source); s != "" {
		return s
	}
	name := c.Filename
	name = strings.TrimSuffix(name, ".xlsx")
	name = strings.TrimSuffix(name, ".xls")
	return name
}

// CanonicalizeRow 把原始行规范化为标准记录
// 无法推导出月份的行返回 ok=false，调用方应丢弃而不是入库
func CanonicalizeRow(raw map[string]any, ctx RowContext) (model.Record, bool) {
	rec := make(model.Record, len(raw)+4)

	for key, value := range raw {
		trimmed := strings.TrimSpace(key)
		low := strings.ToLower(trimmed)
		// 来源表自带的月份列一律丢弃，月份统一由系统推导
		if low == "month" || low == "месяц" {
			continue
		}
		if s, isStr := value.(string); isStr {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			value = s
		}
		if value == nil {
			continue
		}
		rec[CanonicalFieldName(trimmed)] = value
	}

	month, ok := deriveMonth(rec, ctx.Sheet)
	if !ok {
		return nil, false
	}
	rec[model.FieldMonth] = month

	rec[model.FieldSource] = ctx.SourceLabel()
	rec[model.FieldFilename] = ctx.Filename

	return rec, true
}

// deriveMonth 推导月份标签
// sheet 名本身是月份时直接采用，否则从日期字段解析；两者都失败时行被丢弃
func deriveMonth(rec model.Record, sheet string) (string, bool) {
	if m, ok := model.CanonicalRussianMonth(sheet); ok {
		return m, true
	}

	if t, ok := ParseDateTolerant(rec.StringField(model.FieldDate)); ok {
		return model.RussianMonths[int(t.Month())-1], true
	}

	return "", false
}
