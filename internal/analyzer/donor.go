package analyzer

import (
	"errors"

	"donorcrm/internal/classifier"
	"donorcrm/internal/model"
	"donorcrm/internal/parser"
)

// ErrDonorNotFound 按身份键找不到任何记录
var ErrDonorNotFound = errors.New("donor not found")

// DonorStats 单个捐赠人的描述统计
type DonorStats struct {
	TotalCount        int      `json:"total_count"`
	TotalAmount       float64  `json:"total_amount"`
	AverageAmount     float64  `json:"average_amount"`
	MinAmount         *float64 `json:"min_amount"`
	MaxAmount         *float64 `json:"max_amount"`
	FirstTransaction  string   `json:"first_transaction"`
	LastTransaction   string   `json:"last_transaction"`
	MostFrequentMonth string   `json:"most_frequent_month"`
}

// DonorProfile 捐赠人画像：基本信息、统计与全部交易
type DonorProfile struct {
	Key          string         `json:"key"`
	By           string         `json:"by"`
	Gender       string         `json:"gender"`
	Stats        DonorStats     `json:"stats"`
	Transactions []model.Record `json:"transactions"`
}

// DonorAnalytics 按身份键汇总一个捐赠人的全部记录
// by 接受规范字段名或其同义写法（ФИО / E-mail）
func DonorAnalytics(records []model.Record, key, by string) (*DonorProfile, error) {
	field := parser.CanonicalFieldName(by)
	if field != model.FieldEmail {
		field = model.FieldFullName
	}

	var rows []model.Record
	for _, rec := range records {
		if rec.StringField(field) == key {
			rows = append(rows, rec)
		}
	}
	if len(rows) == 0 {
		return nil, ErrDonorNotFound
	}

	var amounts []float64
	monthCounts := map[string]int{}
	var monthOrder []string
	var first, last string

	for _, rec := range rows {
		if v, ok := rec.FloatField(model.FieldAmount); ok {
			amounts = append(amounts, v)
		}
		dt, ok := parser.ParseDate(rec.StringField(model.FieldDate))
		if !ok {
			continue
		}
		day := dt.Format("2006-01-02")
		if first == "" || day < first {
			first = day
		}
		if last == "" || day > last {
			last = day
		}
		month := dt.Format("2006-01")
		if monthCounts[month] == 0 {
			monthOrder = append(monthOrder, month)
		}
		monthCounts[month]++
	}

	stats := DonorStats{
		TotalCount:       len(rows),
		FirstTransaction: first,
		LastTransaction:  last,
	}
	if len(amounts) > 0 {
		minV, maxV, sum := amounts[0], amounts[0], 0.0
		for _, v := range amounts {
			sum += v
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		stats.TotalAmount = sum
		stats.AverageAmount = sum / float64(len(amounts))
		stats.MinAmount = &minV
		stats.MaxAmount = &maxV
	}
	// 并列时保留先出现的月份
	for _, month := range monthOrder {
		if stats.MostFrequentMonth == "" || monthCounts[month] > monthCounts[stats.MostFrequentMonth] {
			stats.MostFrequentMonth = month
		}
	}

	gender := classifier.GenderUnknown
	if field == model.FieldFullName {
		gender = classifier.InferGender(key)
	}

	return &DonorProfile{
		Key:          key,
		By:           field,
		Gender:       gender,
		Stats:        stats,
		Transactions: rows,
	}, nil
}
