package dataprocessing

import (
	"math"
	"sort"

	"github.com/gallegosdmz/umvh-frontend-sub001/pkg/contracts/domain"
)

// PassingGrade is the lowest final grade that is not counted as a failure.
const PassingGrade = 7.0

// Aggregate computes per-semester statistics for a batch of concentrados.
// The result does not depend on the order of reports.
func Aggregate(reports []domain.ConcentradoData) domain.StatisticsResult {
	buckets := make(map[int][]*domain.ConcentradoData)
	for i := range reports {
		r := &reports[i]
		buckets[r.Semester] = append(buckets[r.Semester], r)
	}

	semesters := make([]int, 0, len(buckets))
	for s := range buckets {
		semesters = append(semesters, s)
	}
	sort.Ints(semesters)

	result := domain.StatisticsResult{
		PromediosGenerales: make([]domain.SemesterAverage, 0, len(semesters)),
		Semestres:          make([]domain.SemesterStatistics, 0, len(semesters)),
	}
	for _, semester := range semesters {
		stats := aggregateSemester(semester, buckets[semester])
		result.PromediosGenerales = append(result.PromediosGenerales, domain.SemesterAverage{
			Semester: semester,
			Promedio: stats.Promedio,
		})
		result.Semestres = append(result.Semestres, stats)
	}
	return result
}

func aggregateSemester(semester int, reports []*domain.ConcentradoData) domain.SemesterStatistics {
	courses := unionCourses(reports)
	failures := make(map[string]int, len(courses))
	for _, c := range courses {
		failures[c] = 0
	}

	var general mean
	groups := make([]domain.GroupStatistics, 0, len(reports))
	for _, report := range reports {
		for _, student := range report.Students {
			general.add(student.Promedio)
			for course, grade := range student.CourseGrades {
				if IsFailing(grade.FinalGrade) {
					failures[course]++
				}
			}
		}
		groups = append(groups, groupStatistics(report))
	}

	sort.Slice(groups, func(i, j int) bool { return groupLess(groups[i], groups[j]) })

	return domain.SemesterStatistics{
		Semester:         semester,
		Promedio:         Round2(general.value()),
		Groups:           groups,
		FailuresByCourse: failures,
		AllCourses:       courses,
	}
}

func groupStatistics(report *domain.ConcentradoData) domain.GroupStatistics {
	var average mean
	byCourse := make(map[string]*mean, len(report.Courses))
	for _, c := range report.Courses {
		byCourse[c] = &mean{}
	}

	for _, student := range report.Students {
		average.add(student.Promedio)
		for course, grade := range student.CourseGrades {
			m, ok := byCourse[course]
			if !ok {
				m = &mean{}
				byCourse[course] = m
			}
			m.add(grade.FinalGrade)
		}
	}

	courseAverages := make(map[string]float64, len(byCourse))
	for course, m := range byCourse {
		courseAverages[course] = Round2(m.value())
	}
	return domain.GroupStatistics{
		Group:          report.Group,
		Promedio:       Round2(average.value()),
		CourseAverages: courseAverages,
	}
}

// groupLess orders groups by name. Reports sharing a group name, such as the
// same group uploaded for two periods, fall back to their averages.
func groupLess(a, b domain.GroupStatistics) bool {
	if a.Group != b.Group {
		return a.Group < b.Group
	}
	if a.Promedio != b.Promedio {
		return a.Promedio < b.Promedio
	}

	ka, kb := sortedCourseKeys(a.CourseAverages), sortedCourseKeys(b.CourseAverages)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
		if va, vb := a.CourseAverages[ka[i]], b.CourseAverages[kb[i]]; va != vb {
			return va < vb
		}
	}
	return len(ka) < len(kb)
}

func sortedCourseKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// unionCourses returns every subject listed or graded in the reports, sorted.
func unionCourses(reports []*domain.ConcentradoData) []string {
	seen := make(map[string]struct{})
	for _, r := range reports {
		for _, c := range r.Courses {
			seen[c] = struct{}{}
		}
		for _, s := range r.Students {
			for c := range s.CourseGrades {
				seen[c] = struct{}{}
			}
		}
	}
	courses := make([]string, 0, len(seen))
	for c := range seen {
		courses = append(courses, c)
	}
	sort.Strings(courses)
	return courses
}

// IsFailing reports whether a recorded final grade is below PassingGrade.
// Zero means not recorded and never fails.
func IsFailing(grade float64) bool {
	return grade > 0 && grade < PassingGrade
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
