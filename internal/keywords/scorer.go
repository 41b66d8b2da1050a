package keywords

import "math"

type Match struct {
	Score   float64
	Matched []string
	Missing []string
}

// Score reports the share of job keywords found in the resume, in percent.
// An empty job set scores 0.
func Score(job, resume Set) Match {
	match := Match{Matched: []string{}, Missing: []string{}}
	if len(job) == 0 {
		return match
	}

	for _, word := range job.Sorted() {
		if resume.Contains(word) {
			match.Matched = append(match.Matched, word)
		} else {
			match.Missing = append(match.Missing, word)
		}
	}

	ratio := float64(len(match.Matched)) / float64(len(job)) * 100
	match.Score = math.Round(ratio*100) / 100
	return match
}
