package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	groupPattern    = regexp.MustCompile(`Grupo:\s*([^|]+)`)
	semesterPattern = regexp.MustCompile(`Semestre:\s*(\d+)`)
	periodPattern   = regexp.MustCompile(`Per[ií]odo:\s*([^|]+)`)
)

// Subtitle holds the group metadata encoded in a concentrado subtitle.
type Subtitle struct {
	Group    string
	Semester int
	Period   string
}

// ParseSubtitle extracts group, semester and period from
// "<prefix> - Grupo: <group> | Semestre: <N> | Período: <period>".
// ok is false when the group or the semester cannot be matched, or when the
// group is blank; a missing period yields an empty Period.
func ParseSubtitle(s string) (Subtitle, bool) {
	var sub Subtitle

	g := groupPattern.FindStringSubmatch(s)
	if g == nil {
		return sub, false
	}
	sub.Group = strings.TrimSpace(g[1])
	if sub.Group == "" {
		return sub, false
	}

	m := semesterPattern.FindStringSubmatch(s)
	if m == nil {
		return sub, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return sub, false
	}
	sub.Semester = n

	if p := periodPattern.FindStringSubmatch(s); p != nil {
		sub.Period = strings.TrimSpace(p[1])
	}
	return sub, true
}

// ReportTitle prefixes subtitles written by this module.
const ReportTitle = "Concentrado de calificaciones"

// String renders the subtitle in the grammar ParseSubtitle accepts.
func (s Subtitle) String() string {
	out := fmt.Sprintf("%s - Grupo: %s | Semestre: %d", ReportTitle, s.Group, s.Semester)
	if s.Period != "" {
		out += " | Período: " + s.Period
	}
	return out
}
