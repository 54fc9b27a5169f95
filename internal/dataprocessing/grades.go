package dataprocessing

import "github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"

// FinalGrade derives the final grade of a subject: the extraordinary grade
// when recorded, else the ordinary grade, else the mean of the recorded
// partials, else 0.
func FinalGrade(p1, p2, p3, ord, ext float64) float64 {
	if ext > 0 {
		return ext
	}
	if ord > 0 {
		return ord
	}
	var avg mean
	avg.add(p1)
	avg.add(p2)
	avg.add(p3)
	return avg.value()
}

// NewCourseGradeDetail builds a grade record with its derived final grade.
func NewCourseGradeDetail(p1, p2, p3, ord, ext float64) domain.CourseGradeDetail {
	return domain.CourseGradeDetail{
		P1:         p1,
		P2:         p2,
		P3:         p3,
		Ord:        ord,
		Ext:        ext,
		FinalGrade: FinalGrade(p1, p2, p3, ord, ext),
	}
}

// mean accumulates the arithmetic mean of recorded (> 0) values.
type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	if v > 0 {
		m.sum += v
		m.count++
	}
}

func (m mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
