package similarity

const (
	winklerPrefixLimit = 4
	winklerScaling     = 0.1
)

// jaroWinklerSimilarity boosts the Jaro score by 0.1 per shared leading rune,
// up to four runes.
func jaroWinklerSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	jaro := jaroSimilarity(ra, rb)

	prefix := 0
	for i := 0; i < len(ra) && i < len(rb) && i < winklerPrefixLimit; i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*winklerScaling*(1.0-jaro)
}

func jaroSimilarity(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	window := max(len(a), len(b))/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, len(a))
	bMatched := make([]bool, len(b))

	matches := 0
	for i := range a {
		start := max(0, i-window)
		end := min(len(b), i+window+1)
		for j := start; j < end; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Half the number of matched runes that appear out of order
	transpositions := 0
	k := 0
	for i := range a {
		if !aMatched[i] {
			continue
		}
		for !bMatched[k] {
			k++
		}
		if a[i] != b[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(len(a)) + m/float64(len(b)) + (m-t)/m) / 3
}
