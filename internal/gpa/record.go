package gpa

import "fmt"

// CourseRecord is the grade points and credit hours of a single course
// the student was enrolled in.
type CourseRecord struct {
	Points float64
	Hours  int
}

func (r CourseRecord) String() string {
	return fmt.Sprintf("GPA=%.2f, hours=%d", r.Points, r.Hours)
}

// Counted is false for withdrawals and ungraded courses, they are
// left out of the totals.
func (r CourseRecord) Counted() bool {
	return r.Points != 0
}

type Statistics struct {
	TotalPoints float64
	TotalHours  int
	// only meaningful if Defined is true
	GPA float64
	// false when no counted course has any hours
	Defined bool
}
