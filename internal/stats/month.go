package stats

import (
	"fmt"
	"time"
)

// Month 表示统计视图所选的年月。
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf 取给定时间所在的年月。
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth 解析 yyyy-MM 形式的月份参数。
func ParseMonth(value string) (Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q", value)
	}
	return MonthOf(t), nil
}

// String 输出 yyyy-MM，用于接口参数与展示。
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Advance 返回前后平移 delta 个月后的月份，delta 为负表示回退。
// Advance(m, +1) 再 Advance(-1) 恢复原值。
func (m Month) Advance(delta int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return MonthOf(t)
}

// CanAdvance 判断从当前月份平移 delta 个月是否允许。
// 向后翻页不受限制；向前翻页最多到「当前日历月的下一个月」为止。
func (m Month) CanAdvance(delta int, now time.Time) bool {
	if delta <= 0 {
		return true
	}
	limit := MonthOf(now).Advance(1)
	return !m.Advance(delta).after(limit)
}

// Contains 判断时间是否落在本月内。
// 边界策略：首日与末日均计入（闭区间），保证整月记录被完整划分。
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) index() int {
	return m.Year*12 + int(m.Month) - 1
}

func (m Month) after(other Month) bool {
	return m.index() > other.index()
}
