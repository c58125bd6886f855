package hybrid

import "regexp"

var (
	upperInitialRe  = regexp.MustCompile(`^[A-Z]`)
	latinFivePlusRe = regexp.MustCompile(`^[a-zA-Z]{5,}$`)
	anyLatinRe      = regexp.MustCompile(`[a-zA-Z]`)
)

// Confidence estimates how trustworthy a locally extracted keyword list is,
// on a 0..1 scale. It is a routing heuristic, not a quality guarantee.
//
// Scoring (out of 100): 50 when any keyword looks like a technical term
// (uppercase-initial, contains a dot, or a purely alphabetic token of 5+
// letters); a mutually exclusive count tier of 30/20/10 for 3+/2/1
// keywords; and up to 20 scaled by the fraction of keywords containing a
// Latin letter.
func Confidence(keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	score := 0.0

	for _, k := range keywords {
		if looksTechnical(k) {
			score += 50
			break
		}
	}

	switch {
	case len(keywords) >= 3:
		score += 30
	case len(keywords) >= 2:
		score += 20
	default:
		score += 10
	}

	english := 0
	for _, k := range keywords {
		if anyLatinRe.MatchString(k) {
			english++
		}
	}
	score += float64(english) / float64(len(keywords)) * 20

	return score / 100
}

func looksTechnical(keyword string) bool {
	if upperInitialRe.MatchString(keyword) {
		return true
	}
	for i := 0; i < len(keyword); i++ {
		if keyword[i] == '.' {
			return true
		}
	}
	return latinFivePlusRe.MatchString(keyword)
}
