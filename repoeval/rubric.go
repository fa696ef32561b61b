package repoeval

// rubricFor converts a final score into a letter grade. Each band is
// inclusive on its lower edge.
func rubricFor(score float64) Rubric {
	var grade, summary string
	switch {
	case score >= 90:
		grade = "A+"
		summary = "Outstanding engineering quality, architecture, and hygiene."
	case score >= 80:
		grade = "A"
		summary = "Strong codebase with minor improvements needed."
	case score >= 70:
		grade = "B"
		summary = "Decent project, but notable issues in structure or quality."
	case score >= 60:
		grade = "C"
		summary = "Mediocre quality; several important issues need fixing."
	default:
		grade = "D"
		summary = "High risk / weak quality; major refactors and tests required."
	}

	return Rubric{
		Grade:   grade,
		Summary: summary,
		Bands: map[string]string{
			"A+": "90-100",
			"A":  "80-89",
			"B":  "70-79",
			"C":  "60-69",
			"D":  "<60",
		},
	}
}
