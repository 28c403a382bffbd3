package schedule

import (
	"strconv"
)

// AllWeekdays lists Sunday (0) through Saturday (6)
var AllWeekdays = []int{0, 1, 2, 3, 4, 5, 6}

// ExpandDays expands a cron day-of-week field into the weekdays it names.
// Values are not range checked. A reversed range such as "5-1" expands to
// nothing, and non-numeric values are dropped.
func ExpandDays(dow string) []int {
	f := parseField(dow)

	switch f.kind {
	case kindWildcard:
		return append([]int(nil), AllWeekdays...)
	case kindRange:
		start, errStart := strconv.Atoi(f.parts[0])
		end, errEnd := strconv.Atoi(f.parts[1])
		if errStart != nil || errEnd != nil {
			return []int{}
		}
		days := []int{}
		for d := start; d <= end; d++ {
			days = append(days, d)
		}
		return days
	case kindList:
		days := make([]int, 0, len(f.parts))
		for _, part := range f.parts {
			if d, err := strconv.Atoi(part); err == nil {
				days = append(days, d)
			}
		}
		return days
	case kindLiteral:
		d, err := strconv.Atoi(f.raw)
		if err != nil {
			return []int{}
		}
		return []int{d}
	default:
		return []int{}
	}
}
