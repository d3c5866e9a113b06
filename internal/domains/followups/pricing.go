package followups

// quotePrices is the fixed size-to-price table, in dollars for a 7-day
// rental with weight included.
var quotePrices = map[int]int{
	10: 275,
	15: 325,
	20: 375,
	30: 450,
	40: 525,
}

// availableSizes in ascending order, for nearest-size lookup.
var availableSizes = []int{10, 15, 20, 30, 40}

// NearestSize maps a requested yardage onto the closest size we actually
// stock. Ties round up, since an undersized bin is the costlier mistake.
func NearestSize(requested int) int {
	if requested <= 0 {
		return 20
	}

	best := availableSizes[0]
	bestDiff := abs(requested - best)
	for _, size := range availableSizes[1:] {
		diff := abs(requested - size)
		if diff < bestDiff || (diff == bestDiff && size > best) {
			best = size
			bestDiff = diff
		}
	}
	return best
}

// QuotePrice returns the stocked size nearest the request and its price.
func QuotePrice(requested int) (size, price int) {
	size = NearestSize(requested)
	return size, quotePrices[size]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
