// Package analyzer 匿名化、聚合统计与 AI 分析提示词
package analyzer

import (
	"math"
	"strings"

	"donorcrm/internal/model"
)

// identityFields 需要整体剔除的身份字段（小写匹配，含各语言拼写）
var identityFields = map[string]bool{
	"fio":                   true,
	"фио":                   true,
	"имя":                   true,
	"фамилия":               true,
	"отчество":              true,
	"email":                 true,
	"e-mail":                true,
	"e-mail & phone number": true,
	"e-mail & phone":        true,
	"телефон":               true,
	"phone":                 true,
	"full_name":             true,
}

// moneyFields 需要粗化的金额字段（小写匹配）
var moneyFields = map[string]bool{
	"сумма":    true,
	"summa":    true,
	"amount":   true,
	"donation": true,
}

// Anonymize 去除个人身份字段并粗化金额
// 金额为正数时取整到最近的千位；剔除后为空的记录从结果中删除。
// 对已匿名化的输入是幂等操作
func Anonymize(records []model.Record) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		clean := make(model.Record, len(rec))
		for key, value := range rec {
			low := strings.ToLower(strings.TrimSpace(key))
			if identityFields[low] {
				continue
			}
			if moneyFields[low] {
				if v, ok := model.CoerceFloat(value); ok && v > 0 {
					clean[key] = math.Round(v/1000) * 1000
					continue
				}
			}
			clean[key] = value
		}
		if len(clean) > 0 {
			out = append(out, clean)
		}
	}
	return out
}
