package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ── 宽容日期解析 ──
//
// 导入文件中的日期列允许多种写法: 2026-01-31、2026/01/31、带时间的变体、
// ISO-8601，以及单数字月日（2026/1/31）。

// ErrDateUnparseable 所有已知格式均无法解析
var ErrDateUnparseable = errors.New("无法解析的日期格式")

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

var (
	loosePattern    = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})(.*)$`)
	timeTailPattern = regexp.MustCompile(`^[\sT]+(\d{1,2}):(\d{1,2}):?(\d{1,2})?`)
)

// ParseDate 按固定格式列表、ISO-8601、单数字月日兜底的顺序依次尝试解析
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrDateUnparseable
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	// ISO-8601
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}

	// 单数字月日兜底: 2026/1/31、2026-1-31 10:30[:05]
	if m := loosePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			hour, minute, second := 0, 0, 0
			if m[4] != "" {
				tm := timeTailPattern.FindStringSubmatch(m[4])
				if tm == nil {
					return time.Time{}, ErrDateUnparseable
				}
				hour, _ = strconv.Atoi(tm[1])
				minute, _ = strconv.Atoi(tm[2])
				if tm[3] != "" {
					second, _ = strconv.Atoi(tm[3])
				}
			}
			return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), nil
		}
	}

	return time.Time{}, ErrDateUnparseable
}

// ParseDateOrNow 解析失败时回退为当前时间（兼容历史导入行为，
// import.strict_date 开启时导入走 ParseDate 并把失败计为行失败）
func ParseDateOrNow(raw string) time.Time {
	t, err := ParseDate(raw)
	if err != nil {
		return time.Now()
	}
	return t
}

// DayBounds 返回 t 所在自然日的起止时刻 [00:00:00, 23:59:59.999999999]
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
