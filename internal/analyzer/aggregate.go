package analyzer

import (
	"fmt"
	"strings"

	"donorcrm/internal/model"
	"donorcrm/internal/parser"
)

// amountCandidates 金额列候选名，优先精确匹配，找不到时退回子串匹配
var amountCandidates = []string{
	"сумма", "summa", "amount", "donation", "сумма операции", "кредит", "дебет",
	"сумма платежа", "сумма_платежа", "payment_amount", "transaction_amount",
}

// dateCandidates 日期列候选名，列表顺序即取值优先级
var dateCandidates = []string{
	"дата", "date", "дата платежа", "дата и время", "dt", "datetime",
	"дата_платежа", "payment_date", "transaction_date",
}

// collectFieldNames 收集集合中出现过的全部字段名，保持首次出现顺序
func collectFieldNames(records []model.Record) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				names = append(names, key)
			}
		}
	}
	return names
}

// findAmountColumns 识别金额列
func findAmountColumns(fieldNames []string) []string {
	var cols []string
	for _, name := range fieldNames {
		low := strings.ToLower(name)
		for _, cand := range amountCandidates {
			if low == cand {
				cols = append(cols, name)
				break
			}
		}
	}
	if len(cols) > 0 {
		return cols
	}
	// 精确匹配失败，按关键词子串找
	for _, name := range fieldNames {
		low := strings.ToLower(name)
		if strings.Contains(low, "сумма") || strings.Contains(low, "sum") || strings.Contains(low, "amount") {
			cols = append(cols, name)
		}
	}
	return cols
}

// findDateColumns 识别日期列
func findDateColumns(fieldNames []string) []string {
	var cols []string
	for _, cand := range dateCandidates {
		for _, name := range fieldNames {
			if strings.ToLower(name) == cand {
				cols = append(cols, name)
			}
		}
	}
	if len(cols) > 0 {
		return cols
	}
	for _, name := range fieldNames {
		low := strings.ToLower(name)
		if strings.Contains(low, "дата") || strings.Contains(low, "date") {
			cols = append(cols, name)
		}
	}
	if len(cols) > 0 {
		return cols
	}
	for _, name := range fieldNames {
		low := strings.ToLower(name)
		if strings.Contains(low, "время") || strings.Contains(low, "time") {
			cols = append(cols, name)
		}
	}
	return cols
}

// workingAmount 记录的工作金额：全部金额列求和，不可转换的列按 0 计
func workingAmount(rec model.Record, amountCols []string) float64 {
	total := 0.0
	for _, col := range amountCols {
		if v, ok := model.CoerceFloat(rec[col]); ok {
			total += v
		}
	}
	return total
}

// workingDateString 记录的工作日期：按候选优先级取第一个非空值
func workingDateString(rec model.Record, dateCols []string) string {
	for _, col := range dateCols {
		if s := rec.StringField(col); s != "" {
			return s
		}
	}
	return ""
}

// periodAccumulator 按出现顺序累积周期统计
type periodAccumulator struct {
	order []string
	stats map[string]*model.PeriodStats
}

func newPeriodAccumulator() *periodAccumulator {
	return &periodAccumulator{stats: map[string]*model.PeriodStats{}}
}

func (a *periodAccumulator) add(key string, amount float64) {
	st, ok := a.stats[key]
	if !ok {
		st = &model.PeriodStats{Min: amount, Max: amount}
		a.stats[key] = st
		a.order = append(a.order, key)
	}
	st.Count++
	st.Sum += amount
	if amount < st.Min {
		st.Min = amount
	}
	if amount > st.Max {
		st.Max = amount
	}
}

func (a *periodAccumulator) finalize() map[string]model.PeriodStats {
	out := make(map[string]model.PeriodStats, len(a.stats))
	for key, st := range a.stats {
		if st.Count > 0 {
			st.Mean = st.Sum / float64(st.Count)
		}
		out[key] = *st
	}
	return out
}

// extremes 选出总额最大/最小和笔数最大/最小的周期
// 严格比较保证并列时保留先出现的周期
func (a *periodAccumulator) extremes() (topBySum, topByCount, minBySum, minByCount string) {
	for _, key := range a.order {
		st := a.stats[key]
		if topBySum == "" || st.Sum > a.stats[topBySum].Sum {
			topBySum = key
		}
		if topByCount == "" || st.Count > a.stats[topByCount].Count {
			topByCount = key
		}
		if minBySum == "" || st.Sum < a.stats[minBySum].Sum {
			minBySum = key
		}
		if minByCount == "" || st.Count < a.stats[minByCount].Count {
			minByCount = key
		}
	}
	return
}

// Aggregate 计算聚合摘要
// 对缺列/脏数据全程降级：找不到金额列时统计归零，日期解析失败的记录
// 只从分组统计中剔除，总量统计仍然计入；任何输入都不会报错
func Aggregate(records []model.Record) *model.Summary {
	summary := model.EmptySummary()
	summary.TotalEntries = len(records)
	if len(records) == 0 {
		return summary
	}

	fieldNames := collectFieldNames(records)
	amountCols := findAmountColumns(fieldNames)
	dateCols := findDateColumns(fieldNames)

	if len(amountCols) > 0 {
		sum, minV, maxV := 0.0, 0.0, 0.0
		for i, rec := range records {
			v := workingAmount(rec, amountCols)
			sum += v
			if i == 0 || v < minV {
				minV = v
			}
			if i == 0 || v > maxV {
				maxV = v
			}
		}
		summary.TotalAmount = sum
		summary.AvgAmount = sum / float64(len(records))
		summary.MinAmount = minV
		summary.MaxAmount = maxV
		summary.DonationCount = len(records)
	}

	if len(amountCols) > 0 && len(dateCols) > 0 {
		monthly := newPeriodAccumulator()
		yearly := newPeriodAccumulator()

		for _, rec := range records {
			dt, ok := parser.ParseDateTolerant(workingDateString(rec, dateCols))
			if !ok {
				continue
			}
			amount := workingAmount(rec, amountCols)
			monthKey := fmt.Sprintf("%s %d", dt.Month().String(), dt.Year())
			yearKey := fmt.Sprintf("%d", dt.Year())
			monthly.add(monthKey, amount)
			yearly.add(yearKey, amount)
		}

		summary.Monthly = monthly.finalize()
		summary.Yearly = yearly.finalize()
		summary.TopMonthBySum, summary.TopMonthByCount, summary.MinMonthBySum, summary.MinMonthByCount = monthly.extremes()
		summary.TopYearBySum, summary.TopYearByCount, summary.MinYearBySum, summary.MinYearByCount = yearly.extremes()
	}

	summary.Sources = countSources(records)
	return summary
}

// countSources 来源取值的频次表
// 规范字段 source 优先，其次是未规范化的俄语列名
func countSources(records []model.Record) map[string]int {
	field := ""
	for _, rec := range records {
		if _, ok := rec[model.FieldSource]; ok {
			field = model.FieldSource
			break
		}
	}
	if field == "" {
		for _, rec := range records {
			if _, ok := rec["источник"]; ok {
				field = "источник"
				break
			}
		}
	}

	counts := map[string]int{}
	if field == "" {
		return counts
	}
	for _, rec := range records {
		if v := rec.StringField(field); v != "" {
			counts[v]++
		}
	}
	return counts
}
