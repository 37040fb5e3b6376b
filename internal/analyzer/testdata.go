package analyzer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"donorcrm/internal/classifier"
	"donorcrm/internal/model"
)

// DemoCRMEntries 生成 CRM 2018-2024 的演示数据
// CRM 来源为空时用于展示分析流程，行结构模拟未规范化的 CRM 原始字段
func DemoCRMEntries() []model.Record {
	sources := []string{"сайт", "мобильное приложение", "социальные сети", "личный контакт"}
	entries := make([]model.Record, 0, 659)
	for i := 0; i < 659; i++ {
		dt := time.Date(
			2018+rand.IntN(7),
			time.Month(1+rand.IntN(12)),
			1+rand.IntN(28),
			0, 0, 0, 0, time.UTC,
		)
		entries = append(entries, model.Record{
			"id":       i + 1,
			"ФИО":      fmt.Sprintf("Донор %d", i+1),
			"E-mail":   fmt.Sprintf("donor%d@example.com", i+1),
			"Дата":     dt.Format("02.01.2006"),
			"Сумма":    500 + rand.IntN(49501),
			"телефон":  fmt.Sprintf("+7%d", 9000000000+rand.Int64N(1000000000)),
			"источник": sources[rand.IntN(len(sources))],
		})
	}
	return entries
}

// DemoUploadRecords 生成 Excel 2025 的演示数据（规范化后的记录形态）
func DemoUploadRecords() []model.Record {
	languages := []string{classifier.LangRussian, classifier.LangKazakh, classifier.LangEnglish}
	sources := []string{"сайт", "мобильное приложение", "социальные сети"}
	records := make([]model.Record, 0, 960)
	for i := 0; i < 960; i++ {
		dt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rand.IntN(31))
		records = append(records, model.Record{
			model.FieldID:       int64(i + 1),
			model.FieldFullName: fmt.Sprintf("Тестовый пользователь %d", i+1),
			model.FieldEmail:    fmt.Sprintf("test%d@example.com", i+1),
			model.FieldDate:     dt.Format("02.01.2006"),
			model.FieldAmount:   100 + rand.IntN(9901),
			model.FieldPhone:    fmt.Sprintf("+7%d", 9000000000+rand.Int64N(1000000000)),
			model.FieldLanguage: languages[rand.IntN(len(languages))],
			model.FieldSource:   sources[rand.IntN(len(sources))],
			model.FieldMonth:    model.RussianMonths[int(dt.Month())-1],
		})
	}
	return records
}
