package service

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-01-31", time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local)},
		{"2026/01/31", time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local)},
		{"2026-01-31 10:20:30", time.Date(2026, 1, 31, 10, 20, 30, 0, time.Local)},
		{"2026/1/5", time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)},
		{"2026-1-5 8:05", time.Date(2026, 1, 5, 8, 5, 0, 0, time.Local)},
		{"2026-01-31T10:20:30", time.Date(2026, 1, 31, 10, 20, 30, 0, time.Local)},
		{"  2026-01-31  ", time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.raw)
		if err != nil {
			t.Errorf("ParseDate(%q) 返回错误: %v", tt.raw, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, 期望 %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseDateUnparseable(t *testing.T) {
	for _, raw := range []string{"", "abc", "2026-13-01", "31/01/2026", "2026-01-31x"} {
		if _, err := ParseDate(raw); !errors.Is(err, ErrDateUnparseable) {
			t.Errorf("ParseDate(%q) err = %v, 期望 ErrDateUnparseable", raw, err)
		}
	}
}

func TestParseDateOrNow(t *testing.T) {
	before := time.Now()
	got := ParseDateOrNow("不是日期")
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("解析失败时应回退为当前时间, got %v", got)
	}

	fixed := ParseDateOrNow("2026-01-31")
	if !fixed.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local)) {
		t.Errorf("可解析日期不应回退, got %v", fixed)
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2026, 3, 15, 14, 30, 45, 123, time.Local)
	start, end := DayBounds(at)

	if !start.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)) {
		t.Errorf("start = %v", start)
	}
	if !end.Before(start.AddDate(0, 0, 1)) {
		t.Errorf("end 应严格早于次日零点: %v", end)
	}
	if end.Day() != 15 || end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("end = %v", end)
	}
}
