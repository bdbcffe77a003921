package batch

import "fmt"

// Part is a contiguous slice of the corpus, Number starts at 1
type Part struct {
	Number int
	Start  int
	End    int
}

// Len returns the number of records in the part
func (p Part) Len() int {
	return p.End - p.Start
}

// Slice returns the records of tweets covered by the part
func (p Part) Slice(tweets []Tweet) []Tweet {
	start, end := p.Start, p.End
	if start > len(tweets) {
		start = len(tweets)
	}
	if end > len(tweets) {
		end = len(tweets)
	}
	return tweets[start:end]
}

// PartSize returns ceil(total/numParts)
func PartSize(total, numParts int) int {
	if numParts < 1 || total <= 0 {
		return 0
	}
	return (total + numParts - 1) / numParts
}

// PlanParts splits total records into numParts contiguous parts.
// Parts past the end of the data are empty.
func PlanParts(total, numParts int) ([]Part, error) {
	if numParts < 1 {
		return nil, fmt.Errorf("number of parts must be at least 1, got %d", numParts)
	}
	if total < 0 {
		return nil, fmt.Errorf("record count must not be negative, got %d", total)
	}

	size := PartSize(total, numParts)
	parts := make([]Part, numParts)
	for i := range parts {
		start := min(i*size, total)
		end := min((i+1)*size, total)
		parts[i] = Part{Number: i + 1, Start: start, End: end}
	}
	return parts, nil
}
