package analyzer

import (
	"errors"
	"testing"

	"donorcrm/internal/classifier"
	"donorcrm/internal/model"
)

// TestDonorAnalyticsByName 按 ФИО 汇总画像
func TestDonorAnalyticsByName(t *testing.T) {
	records := []model.Record{
		{model.FieldFullName: "Иванова Анна", model.FieldAmount: 1000.0, model.FieldDate: "2024-01-10"},
		{model.FieldFullName: "Иванова Анна", model.FieldAmount: 3000.0, model.FieldDate: "2024-03-05"},
		{model.FieldFullName: "Иванова Анна", model.FieldAmount: 2000.0, model.FieldDate: "15.03.2024"},
		{model.FieldFullName: "Серик Арман", model.FieldAmount: 9000.0, model.FieldDate: "2024-02-01"},
	}

	profile, err := DonorAnalytics(records, "Иванова Анна", "фио")
	if err != nil {
		t.Fatalf("DonorAnalytics failed: %v", err)
	}
	if profile.By != model.FieldFullName {
		t.Errorf("By = %q, want full_name", profile.By)
	}
	if profile.Gender != classifier.GenderFemale {
		t.Errorf("Gender = %q, want female", profile.Gender)
	}
	if len(profile.Transactions) != 3 {
		t.Fatalf("transactions = %d, want 3", len(profile.Transactions))
	}

	st := profile.Stats
	if st.TotalCount != 3 || st.TotalAmount != 6000 || st.AverageAmount != 2000 {
		t.Errorf("stats = %+v", st)
	}
	if st.MinAmount == nil || *st.MinAmount != 1000 {
		t.Errorf("MinAmount = %v, want 1000", st.MinAmount)
	}
	if st.MaxAmount == nil || *st.MaxAmount != 3000 {
		t.Errorf("MaxAmount = %v, want 3000", st.MaxAmount)
	}
	if st.FirstTransaction != "2024-01-10" || st.LastTransaction != "2024-03-15" {
		t.Errorf("first/last = %q/%q", st.FirstTransaction, st.LastTransaction)
	}
	if st.MostFrequentMonth != "2024-03" {
		t.Errorf("MostFrequentMonth = %q, want 2024-03", st.MostFrequentMonth)
	}
}

// TestDonorAnalyticsByEmail 按 E-mail 汇总时不推断性别
func TestDonorAnalyticsByEmail(t *testing.T) {
	records := []model.Record{
		{model.FieldEmail: "anna@example.com", model.FieldAmount: 500.0, model.FieldDate: "2024-01-01"},
	}

	profile, err := DonorAnalytics(records, "anna@example.com", "e-mail")
	if err != nil {
		t.Fatalf("DonorAnalytics failed: %v", err)
	}
	if profile.By != model.FieldEmail {
		t.Errorf("By = %q, want email", profile.By)
	}
	if profile.Gender != classifier.GenderUnknown {
		t.Errorf("Gender = %q, want unknown", profile.Gender)
	}
}

// TestDonorAnalyticsUnknownBy 未知的 by 取值退回 ФИО
func TestDonorAnalyticsUnknownBy(t *testing.T) {
	records := []model.Record{
		{model.FieldFullName: "Серик Арман", model.FieldDate: "2024-01-01"},
	}

	profile, err := DonorAnalytics(records, "Серик Арман", "паспорт")
	if err != nil {
		t.Fatalf("DonorAnalytics failed: %v", err)
	}
	if profile.By != model.FieldFullName {
		t.Errorf("By = %q, want full_name", profile.By)
	}
}

// TestDonorAnalyticsNotFound 找不到记录返回 ErrDonorNotFound
func TestDonorAnalyticsNotFound(t *testing.T) {
	_, err := DonorAnalytics(nil, "Нет Такого", "фио")
	if !errors.Is(err, ErrDonorNotFound) {
		t.Errorf("err = %v, want ErrDonorNotFound", err)
	}
}

// TestDonorAnalyticsDirtyDates 日期解析失败的交易不影响统计其余部分
func TestDonorAnalyticsDirtyDates(t *testing.T) {
	records := []model.Record{
		{model.FieldFullName: "Донор", model.FieldAmount: 1000.0, model.FieldDate: "nan"},
		{model.FieldFullName: "Донор", model.FieldAmount: 2000.0, model.FieldDate: "2024-05-01"},
	}

	profile, err := DonorAnalytics(records, "Донор", "фио")
	if err != nil {
		t.Fatalf("DonorAnalytics failed: %v", err)
	}
	st := profile.Stats
	if st.TotalCount != 2 || st.TotalAmount != 3000 {
		t.Errorf("stats = %+v", st)
	}
	if st.FirstTransaction != "2024-05-01" || st.LastTransaction != "2024-05-01" {
		t.Errorf("first/last = %q/%q", st.FirstTransaction, st.LastTransaction)
	}
}
