package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration 解析时间长度字符串
// 在 time.ParseDuration 的基础上支持 d（天）后缀，例如 7d、24h、30m、10s
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}

	return time.ParseDuration(s)
}
