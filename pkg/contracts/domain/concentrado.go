package domain

// CourseGradeDetail is one student's grade record for one subject.
// A zero in any raw field means the grade was not recorded.
type CourseGradeDetail struct {
	P1         float64 `json:"p1"`
	P2         float64 `json:"p2"`
	P3         float64 `json:"p3"`
	Ord        float64 `json:"ord"`
	Ext        float64 `json:"ext"`
	FinalGrade float64 `json:"finalGrade"` // derived, never read from the sheet
}

// StudentGrades holds one student's row within a single concentrado.
// FullName is for display only; RegistrationNumber is the intended stable identity.
type StudentGrades struct {
	FullName           string                       `json:"fullName"`
	RegistrationNumber string                       `json:"registrationNumber"`
	CourseGrades       map[string]CourseGradeDetail `json:"courseGrades"`
	Promedio           float64                      `json:"promedio"`
}

// ConcentradoData is the parsed form of one group grade report workbook.
// Courses keeps the left-to-right column order of the source sheet.
type ConcentradoData struct {
	Group    string          `json:"group"`
	Semester int             `json:"semester"`
	Period   string          `json:"period"`
	Courses  []string        `json:"courses"`
	Students []StudentGrades `json:"students"`
}
