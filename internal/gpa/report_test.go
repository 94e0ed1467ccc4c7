package gpa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	records := []CourseRecord{{3.7, 3}, {0, 3}, {0, 2}}

	var out bytes.Buffer
	err := Report(&out, records, Aggregate(records))
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, `Fetched 3 courses:
========================================
GPA=3.70, hours=3
GPA=0.00, hours=3
GPA=0.00, hours=2

Total Points: 11.10
Total Hours: 3
GPA: 3.70
`, out.String())
}

func TestReportWithoutHours(t *testing.T) {
	var out bytes.Buffer
	err := Report(&out, []CourseRecord{}, Aggregate(nil))
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, `Fetched 0 courses:
========================================

Total Points: 0.00
Total Hours: 0
GPA: N/A
`, out.String())
}

func TestReportTable(t *testing.T) {
	records := []CourseRecord{{3.7, 3}, {0, 3}}

	var out bytes.Buffer
	err := ReportTable(&out, records, Aggregate(records))
	if err != nil {
		t.Fatal(err)
	}

	rendered := out.String()
	require.True(t, strings.HasPrefix(rendered, "Fetched 2 courses:\n"))
	require.Contains(t, rendered, "POINTS")
	require.Contains(t, rendered, "3.70")
	require.Contains(t, rendered, "false")
	require.True(t, strings.HasSuffix(rendered, "Total Points: 11.10\nTotal Hours: 3\nGPA: 3.70\n"))
}

func TestCourseRecordString(t *testing.T) {
	require.Equal(t, "GPA=3.33, hours=4", CourseRecord{Points: 3.333, Hours: 4}.String())
}
