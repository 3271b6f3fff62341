package emissions

// Candidate is the pair of metrics the classifier ranks on.
type Candidate struct {
	TotalCO2Kg    float64
	DurationHours float64
}

// Route labels assigned by Classify.
const (
	LabelEco       = "eco"
	LabelFastest   = "fastest"
	LabelAlternate = "alternate"
)

// Classify assigns one label per candidate, positionally. The lowest-emission
// candidate is "eco" and the shortest-duration candidate is "fastest";
// everything else is "alternate". Ties resolve to the earliest candidate.
// When the same candidate wins both rankings it is labeled "eco" and no
// candidate is labeled "fastest".
func Classify(candidates []Candidate) []string {
	if len(candidates) == 0 {
		return []string{}
	}

	labels := make([]string, len(candidates))
	if len(candidates) == 1 {
		labels[0] = LabelEco

		return labels
	}

	ecoIdx, fastIdx := 0, 0
	for i, c := range candidates {
		if c.TotalCO2Kg < candidates[ecoIdx].TotalCO2Kg {
			ecoIdx = i
		}
		if c.DurationHours < candidates[fastIdx].DurationHours {
			fastIdx = i
		}
	}

	for i := range labels {
		labels[i] = LabelAlternate
	}
	labels[fastIdx] = LabelFastest
	labels[ecoIdx] = LabelEco

	return labels
}
