package parser

import (
	"testing"
	"time"
)

// TestParseDate 测试三种人工日期格式
func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"31.12.2023", "2023-12-31", true},
		{"01.02.2025", "2025-02-01", true},
		{"31/12/2023", "2023-12-31", true},
		{"2023-12-31", "2023-12-31", true},
		{"2023-12-31T15:04:05", "2023-12-31", true},
		{" 31.12.2023 ", "2023-12-31", true},
		{"not-a-date", "", false},
		{"", "", false},
		{"nan", "", false},
		{"NaT", "", false},
		{"32.13.2023", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
		}
	}
}

// TestParseDateEquivalence 日在前格式和 ISO 格式解析出同一个日历日
func TestParseDateEquivalence(t *testing.T) {
	a, ok := ParseDate("31.12.2023")
	if !ok {
		t.Fatal("ParseDate(31.12.2023) failed")
	}
	b, ok := ParseDate("2023-12-31")
	if !ok {
		t.Fatal("ParseDate(2023-12-31) failed")
	}
	if !a.Equal(b) {
		t.Errorf("dates differ: %v vs %v", a, b)
	}
}

// TestParseDateTolerant 宽松解析额外接受带时间的格式
func TestParseDateTolerant(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2025-01-15T10:30:00", time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2025-01-15T10:30:00Z", time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2025-01-15 10:30:00", time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"15.01.2025 10:30", time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"15.01.2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"мусор", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseDateTolerant(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDateTolerant(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseDateTolerant(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
