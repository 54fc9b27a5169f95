package testutil

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gallegosdmz/umvh-frontend-sub001/internal/dataprocessing"
	"github.com/gallegosdmz/umvh-frontend-sub001/internal/exporter"
	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// Concentrado builds a report for group and semester in which student i
// gets ordinary grade grades[i] in every course and that grade as promedio.
func Concentrado(group string, semester int, courses []string, grades ...float64) domain.ConcentradoData {
	report := domain.ConcentradoData{
		Group:    group,
		Semester: semester,
		Period:   "2024-2025",
		Courses:  courses,
		Students: make([]domain.StudentGrades, 0, len(grades)),
	}
	for i, g := range grades {
		student := domain.StudentGrades{
			FullName:           fmt.Sprintf("Alumno %s-%02d", group, i+1),
			RegistrationNumber: fmt.Sprintf("%s%03d", group, i+1),
			CourseGrades:       make(map[string]domain.CourseGradeDetail, len(courses)),
			Promedio:           g,
		}
		for _, c := range courses {
			student.CourseGrades[c] = dataprocessing.NewCourseGradeDetail(0, 0, 0, g, 0)
		}
		report.Students = append(report.Students, student)
	}
	return report
}

// WorkbookBytes renders report in the default layout.
func WorkbookBytes(t testing.TB, report domain.ConcentradoData) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := exporter.WriteConcentradoWorkbook(&buf, report, dataprocessing.DefaultLayout()); err != nil {
		t.Fatalf("render workbook %s: %v", report.Group, err)
	}
	return buf.Bytes()
}

// BadSubtitleWorkbook returns a workbook whose subtitle has no group.
func BadSubtitleWorkbook(t testing.TB) []byte {
	t.Helper()
	report := Concentrado("", 1, []string{"Historia"}, 8)
	return WorkbookBytes(t, report)
}
