package aggregate

// Ratio returns a normalized indel similarity between two strings in
// [0, 100]: 100 * 2*LCS(a,b) / (len(a)+len(b)). Two empty strings are
// identical by convention.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	lcs := lcsLength(ra, rb)
	return 100 * float64(2*lcs) / float64(len(ra)+len(rb))
}

func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
