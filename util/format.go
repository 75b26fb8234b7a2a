package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber renders a numeric string for display. Small values keep
// a compact zero-run notation, larger values keep two fractional
// digits.
func FormatNumber(numStr string) string {
	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return numStr
	}

	if num == 0 {
		return "0"
	}

	parts := strings.Split(numStr, ".")
	if len(parts) == 1 {
		return numStr
	}

	if num > 0 && num < 1 {
		zeroCount := 0
		for _, r := range parts[1] {
			if r == '0' {
				zeroCount++
			} else {
				break
			}
		}
		rightPart := parts[1]
		restPart := truncateString(rightPart[zeroCount:], 3)
		if zeroCount > 2 {
			return fmt.Sprintf("%s.{%d}%s", parts[0], zeroCount, restPart)
		}
		return fmt.Sprintf("%s.%s%s", parts[0], zero(zeroCount), restPart)
	}

	restPart := truncateString(parts[1], 2)
	return truncateZero(fmt.Sprintf("%s.%s", parts[0], restPart))
}

// FormatPercentage renders a percent-style upstream field. Values are
// already percentages ("0.35" means 0.35%), so no scaling here.
func FormatPercentage(per string) string {
	num, err := strconv.ParseFloat(per, 64)
	if err != nil {
		return per
	}

	perStr := strconv.FormatFloat(num, 'f', 2, 64)
	perStr = strings.TrimRight(perStr, "0")
	perStr = strings.TrimRight(perStr, ".")
	return perStr + "%"
}

func zero(count int) string {
	runes := []rune{}
	for range count {
		runes = append(runes, '0')
	}
	return string(runes)
}

func truncateZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	parts := strings.Split(s, ".")

	if parts[1] == "" || strings.Count(parts[1], "0") == len(parts[1]) {
		return parts[0]
	}

	return s
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)

	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}

	return s
}
