package metrics

import "math"

// healthWeights defines the contribution of each category to the overall
// health score. Growth is deliberately excluded: it is informational and too
// volatile for small businesses to weigh into a solvency-style score.
var healthWeights = map[Category]float64{
	CategoryLiquidity:     0.25,
	CategoryProfitability: 0.25,
	CategorySolvency:      0.20,
	CategoryEfficiency:    0.15,
	CategoryCashFlow:      0.15,
}

// ratingScores maps a rating to its numeric contribution.
var ratingScores = map[Rating]float64{
	RatingExcellent: 100,
	RatingGood:      75,
	RatingFair:      50,
	RatingPoor:      25,
}

const neutralScore = 50

// CalculateHealthScore aggregates metric ratings into a 0-100 score.
// The result depends only on the set of rated metrics per category, not on
// their ordering. Categories with no rated metrics score neutral.
func CalculateHealthScore(metrics Set) *HealthScore {
	categoryScores := make(map[Category]float64, len(healthWeights))

	for category := range healthWeights {
		categoryMetrics := metrics[category]
		var sum float64
		var rated int
		for _, m := range categoryMetrics {
			if m.Rating == "" {
				continue
			}
			score, ok := ratingScores[m.Rating]
			if !ok {
				score = neutralScore
			}
			sum += score
			rated++
		}
		if rated > 0 {
			categoryScores[category] = sum / float64(rated)
		} else {
			categoryScores[category] = neutralScore
		}
	}

	var overall float64
	for category, weight := range healthWeights {
		overall += categoryScores[category] * weight
	}
	overall = math.Round(overall*10) / 10

	return &HealthScore{
		OverallScore:   overall,
		CategoryScores: categoryScores,
		Rating:         overallRating(overall),
		Interpretation: scoreInterpretation(overall),
	}
}

func overallRating(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 50:
		return "Fair"
	case score >= 35:
		return "Needs Attention"
	default:
		return "Critical"
	}
}

func scoreInterpretation(score float64) string {
	switch {
	case score >= 80:
		return "The business demonstrates strong financial health across all key indicators."
	case score >= 65:
		return "The business is financially healthy with some areas for potential improvement."
	case score >= 50:
		return "The business shows moderate financial stability but requires attention in several areas."
	case score >= 35:
		return "The business faces financial challenges that need to be addressed promptly."
	default:
		return "The business is in critical financial condition requiring immediate action."
	}
}
