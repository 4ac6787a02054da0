package utils

import "math"

// CreateRankList returns 1-based ranks for count already-sorted items.
// Ranks saturate at math.MaxUint16.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		if i+1 >= math.MaxUint16 {
			ranks[i] = math.MaxUint16
			continue
		}
		ranks[i] = uint16(i + 1)
	}
	return ranks
}

// FormatWithCommas formats n with thousands separators, e.g. 12,345
func FormatWithCommas(n int) string {
	neg := n < 0
	// magnitude as uint64 so math.MinInt does not overflow
	u := uint64(n)
	if neg {
		u = -u
	}
	digits := []byte{}
	for i := 0; u > 0 || i == 0; i++ {
		if i > 0 && i%3 == 0 {
			digits = append(digits, ',')
		}
		digits = append(digits, byte('0'+u%10))
		u /= 10
	}
	if neg {
		digits = append(digits, '-')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
