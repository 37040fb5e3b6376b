package model

// PeriodStats 单个周期（月/年）的描述统计
type PeriodStats struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summary 聚合摘要
// 每次请求从记录快照全量重算，不做持久化
type Summary struct {
	TotalEntries  int     `json:"total_entries"`
	TotalAmount   float64 `json:"total_donations"`
	AvgAmount     float64 `json:"avg_donation"`
	MinAmount     float64 `json:"min_donation"`
	MaxAmount     float64 `json:"max_donation"`
	DonationCount int     `json:"donation_count"`

	Monthly map[string]PeriodStats `json:"monthly_statistics"`
	Yearly  map[string]PeriodStats `json:"yearly_statistics"`

	TopMonthBySum   string `json:"top_month_by_sum"`
	TopMonthByCount string `json:"top_month_by_count"`
	MinMonthBySum   string `json:"min_month_by_sum"`
	MinMonthByCount string `json:"min_month_by_count"`

	TopYearBySum   string `json:"top_year_by_sum"`
	TopYearByCount string `json:"top_year_by_count"`
	MinYearBySum   string `json:"min_year_by_sum"`
	MinYearByCount string `json:"min_year_by_count"`

	Sources map[string]int `json:"source_statistics"`
}

// EmptySummary 返回全零但结构完整的摘要
func EmptySummary() *Summary {
	return &Summary{
		Monthly: map[string]PeriodStats{},
		Yearly:  map[string]PeriodStats{},
		Sources: map[string]int{},
	}
}
