package domain

// GroupStatistics summarises one concentrado inside a semester bucket.
type GroupStatistics struct {
	Group          string             `json:"group"`
	Promedio       float64            `json:"promedio"`
	CourseAverages map[string]float64 `json:"promediosPorMateria"`
}

// SemesterStatistics aggregates every report sharing a semester number.
type SemesterStatistics struct {
	Semester         int               `json:"semestre"`
	Promedio         float64           `json:"promedioGeneral"`
	Groups           []GroupStatistics `json:"grupos"`
	FailuresByCourse map[string]int    `json:"reprobadosPorMateria"`
	AllCourses       []string          `json:"materias"`
}

// SemesterAverage is the general average of one semester.
type SemesterAverage struct {
	Semester int     `json:"semestre"`
	Promedio float64 `json:"promedio"`
}

// StatisticsResult is the output of aggregating a batch of concentrados.
// Both lists are sorted by ascending semester.
type StatisticsResult struct {
	PromediosGenerales []SemesterAverage    `json:"promediosGenerales"`
	Semestres          []SemesterStatistics `json:"semestres"`
}

// GroupCount returns the number of group summaries across all semesters.
func (r StatisticsResult) GroupCount() int {
	n := 0
	for _, s := range r.Semestres {
		n += len(s.Groups)
	}
	return n
}
