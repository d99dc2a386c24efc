package similarity

// Jaccard computes the Jaccard index of two token sets: the size of the
// intersection divided by the size of the union. Two empty sets yield 0,
// never a division error.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
