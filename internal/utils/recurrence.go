package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tues": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thur": 4, "thurs": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// ParseWeekdays parses a comma-separated schedule into sorted weekday indices.
// It accepts day names ("mon,wed"), indices ("1,3") and the shorthands
// "daily", "weekdays" and "weekends".
func ParseWeekdays(s string) ([]int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return nil, fmt.Errorf("schedule cannot be empty")
	case "daily", "everyday", "all":
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	case "weekdays":
		return []int{1, 2, 3, 4, 5}, nil
	case "weekends":
		return []int{0, 6}, nil
	}

	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, ok := weekdayNames[part]
		if !ok {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("invalid weekday %q", part)
			}
			idx = n
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		days = append(days, idx)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("schedule cannot be empty")
	}
	sort.Ints(days)
	return days, nil
}

// FormatSchedule renders weekday indices for display ("Mon, Wed" or "Daily").
func FormatSchedule(schedule []int) string {
	if len(schedule) == 0 {
		return "Never"
	}
	seen := make(map[int]bool, len(schedule))
	var days []int
	for _, d := range schedule {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Ints(days)
	switch {
	case len(days) == 7 && days[0] == 0 && days[6] == 6:
		return "Daily"
	case len(days) == 5 && days[0] == 1 && days[4] == 5:
		return "Weekdays"
	case len(days) == 2 && days[0] == 0 && days[1] == 6:
		return "Weekends"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			names = append(names, fmt.Sprintf("?%d", d))
			continue
		}
		names = append(names, time.Weekday(d).String()[:3])
	}
	return strings.Join(names, ", ")
}
