package gpa

// Aggregate computes the credit-hour weighted GPA of the counted records.
func Aggregate(records []CourseRecord) Statistics {
	var stats Statistics
	for _, r := range records {
		if !r.Counted() {
			continue
		}
		stats.TotalPoints += r.Points * float64(r.Hours)
		stats.TotalHours += r.Hours
	}

	if stats.TotalHours > 0 {
		stats.GPA = stats.TotalPoints / float64(stats.TotalHours)
		stats.Defined = true
	}
	return stats
}
