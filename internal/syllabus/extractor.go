package syllabus

import (
	"regexp"
	"strconv"
	"strings"
)

// Line-oriented parsing of university syllabus PDFs. The documents are
// loosely structured; every pattern here has a fallback because real
// syllabi drift from the template in small ways.

type Parsed struct {
	ProgramName string
	Department  string
	SchemeName  string
	StartYear   int
	Courses     []ParsedCourse
}

type ParsedCourse struct {
	Code     string
	Name     string
	Chapters []ParsedChapter
	Outcomes []ParsedOutcome
}

type ParsedChapter struct {
	Number int
	Name   string
}

type ParsedOutcome struct {
	Code        string
	Description string
}

var romanNumerals = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
	"XI": 11, "XII": 12, "XIII": 13, "XIV": 14, "XV": 15,
}

var (
	// The program name ends where the " in <department>" clause or the line
	// does; a greedy match would swallow the department too.
	programRe      = regexp.MustCompile(`(?i)(Bachelor of [A-Za-z&]+(?: [A-Za-z&]+)*?)(?:\s+in\s|\n|$)`)
	departmentRe   = regexp.MustCompile(`(?i)Bachelor of [A-Za-z &]+ in ([A-Za-z &]+)`)
	deptFallbackRe = regexp.MustCompile(`(?i)Information Technology|Computer Science|Mechanical|EXTC`)
	schemeParenRe  = regexp.MustCompile(`(?i)\(([^)]*Scheme[^)]*)\)`)
	schemeRe       = regexp.MustCompile(`(?i)(Revised\s*[A-Za-z0-9'"\- ]*Scheme)`)
	academicYearRe = regexp.MustCompile(`(?i)Academic Year.*?(\d{4})`)
	anyYearRe      = regexp.MustCompile(`(\d{4})`)
	courseHeaderRe = regexp.MustCompile(`^\s*([A-Z]{2,5}\d{3}[A-Z]?)\s+(.+)$`)
	courseCodeRe   = regexp.MustCompile(`^\s*([A-Z]{2,5}\d{3}[A-Z]?)\s*$`)
	moduleRe       = regexp.MustCompile(`(?i)Module\s+(\d+|[IVX]+)\s*[:\-.]?\s+([A-Za-z][A-Za-z0-9 ,.&()\-]*)`)
	outcomeRe      = regexp.MustCompile(`(?i)(CO\d+)\s*[:\-]\s*([A-Za-z][A-Za-z0-9 ,.&()\-]*)`)
)

// Parse extracts the catalog structure from the full syllabus text.
func Parse(text string) Parsed {
	lines := normalizeLines(text)
	parsed := parseHeader(lines)

	for _, section := range courseSections(lines) {
		body := strings.Join(lines[section.start:section.end+1], "\n")
		course := ParsedCourse{
			Code:     section.code,
			Name:     cleanTitle(section.name),
			Chapters: parseModules(body),
			Outcomes: parseOutcomes(body),
		}
		parsed.Courses = append(parsed.Courses, course)
	}
	return parsed
}

func normalizeLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		lines = append(lines, strings.TrimSpace(ln))
	}
	return lines
}

// parseHeader reads program, department, scheme and start year from the top
// of the document, with defaults matching the university's usual wording.
func parseHeader(lines []string) Parsed {
	top := lines
	if len(top) > 120 {
		top = top[:120]
	}
	header := strings.Join(top, "\n")

	parsed := Parsed{
		ProgramName: "Bachelor of Engineering",
		Department:  "Information Technology",
		SchemeName:  "Revised C Scheme",
	}

	if m := programRe.FindStringSubmatch(header); m != nil {
		parsed.ProgramName = strings.TrimSpace(m[1])
	}
	if m := departmentRe.FindStringSubmatch(header); m != nil {
		parsed.Department = strings.TrimSpace(m[1])
	} else if m := deptFallbackRe.FindString(header); m != "" {
		parsed.Department = m
	}
	if m := schemeParenRe.FindStringSubmatch(header); m != nil {
		parsed.SchemeName = strings.TrimSpace(m[1])
	} else if m := schemeRe.FindStringSubmatch(header); m != nil {
		parsed.SchemeName = strings.TrimSpace(m[1])
	}
	if m := academicYearRe.FindStringSubmatch(header); m != nil {
		parsed.StartYear, _ = strconv.Atoi(m[1])
	} else if m := anyYearRe.FindStringSubmatch(header); m != nil {
		parsed.StartYear, _ = strconv.Atoi(m[1])
	}
	return parsed
}

type section struct {
	code  string
	name  string
	start int
	end   int
}

// courseSections associates each DETAILED SYLLABUS marker with the nearest
// course header above it. The header is usually "ITC501 Course Name" on one
// line; occasionally the code sits alone with the name on the next line.
func courseSections(lines []string) []section {
	var sections []section
	seen := map[string]bool{}

	for i, ln := range lines {
		if !strings.Contains(strings.ToUpper(ln), "DETAILED SYLLABUS") {
			continue
		}
		for back := 1; back <= 14; back++ {
			idx := i - back
			if idx < 0 {
				break
			}
			if lines[idx] == "" {
				continue
			}
			if m := courseHeaderRe.FindStringSubmatch(lines[idx]); m != nil {
				if !seen[m[1]] {
					seen[m[1]] = true
					sections = append(sections, section{code: m[1], name: m[2], start: idx})
				}
				break
			}
			if m := courseCodeRe.FindStringSubmatch(lines[idx]); m != nil {
				name := ""
				if idx+1 < len(lines) {
					name = lines[idx+1]
				}
				if !seen[m[1]] {
					seen[m[1]] = true
					sections = append(sections, section{code: m[1], name: name, start: idx})
				}
				break
			}
		}
	}

	for i := range sections {
		if i+1 < len(sections) {
			sections[i].end = sections[i+1].start - 1
		} else {
			sections[i].end = min(len(lines)-1, sections[i].start+400)
		}
	}
	return sections
}

func parseModules(body string) []ParsedChapter {
	var chapters []ParsedChapter
	seen := map[int]bool{}
	for _, m := range moduleRe.FindAllStringSubmatch(body, -1) {
		num, ok := moduleNumber(m[1])
		if !ok || seen[num] {
			continue
		}
		seen[num] = true
		chapters = append(chapters, ParsedChapter{Number: num, Name: cleanTitle(m[2])})
	}
	return chapters
}

func parseOutcomes(body string) []ParsedOutcome {
	var outcomes []ParsedOutcome
	seen := map[string]bool{}
	for _, m := range outcomeRe.FindAllStringSubmatch(body, -1) {
		code := strings.ToUpper(m[1])
		if seen[code] {
			continue
		}
		seen[code] = true
		outcomes = append(outcomes, ParsedOutcome{Code: code, Description: cleanTitle(m[2])})
	}
	return outcomes
}

func moduleNumber(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if n, ok := romanNumerals[strings.ToUpper(s)]; ok {
		return n, true
	}
	return 0, false
}

func cleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " .,-")
}
