package attempt

import (
	"math"

	"github.com/google/uuid"
)

// PassThreshold is the minimum percentage that passes an exam.
const PassThreshold = 60

type ScoredQuestion struct {
	ID            uuid.UUID
	CorrectAnswer string
}

// Score counts the positions where answers[i] equals the correct marker of
// questions[i]. Missing answers count as wrong and extra ones are ignored.
// Comparison is exact and case sensitive.
func Score(questions []ScoredQuestion, answers []string) (correct, total int) {
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct, len(questions)
}

// Percentage returns correct/total as a percentage rounded to two decimals,
// or 0 for an empty exam.
func Percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100
}

// Passed compares the exact ratio against PassThreshold so rounding never
// moves a result across the boundary.
func Passed(correct, total int) bool {
	return total > 0 && correct*100 >= PassThreshold*total
}
