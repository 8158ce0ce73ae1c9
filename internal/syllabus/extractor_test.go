package syllabus

import (
	"testing"
)

const sampleSyllabus = `
University of Mumbai
Bachelor of Engineering in Information Technology
(Revised C Scheme)
Academic Year 2021-2022

Program Structure

ITC501 Internet Programming

Course Objectives: understand web fundamentals.

DETAILED SYLLABUS

Module 1: Introduction to Web Technology
HTML, CSS and the request/response cycle.
Module 2 - Client Side Scripting
JavaScript fundamentals.
Module III: Server Side Programming
Sessions, cookies, templating.

Course Outcomes:
CO1: Describe the architecture of the web.
CO2 - Build interactive client side pages.

ITC502
Data Warehousing and Mining

DETAILED SYLLABUS

Module 1: Introduction to Data Warehousing
Module 2: Mining Frequent Patterns
CO1: Explain warehouse schemas.
`

func TestParseHeader(t *testing.T) {
	parsed := Parse(sampleSyllabus)

	if parsed.ProgramName != "Bachelor of Engineering" {
		t.Errorf("program = %q", parsed.ProgramName)
	}
	if parsed.Department != "Information Technology" {
		t.Errorf("department = %q", parsed.Department)
	}
	if parsed.SchemeName != "Revised C Scheme" {
		t.Errorf("scheme = %q", parsed.SchemeName)
	}
	if parsed.StartYear != 2021 {
		t.Errorf("start year = %d", parsed.StartYear)
	}
}

func TestParseHeaderProgramEndsBeforeDepartment(t *testing.T) {
	parsed := Parse("Bachelor of Engineering in Computer Engineering\nDETAILED SYLLABUS placeholder")
	if parsed.ProgramName != "Bachelor of Engineering" {
		t.Errorf("program = %q, want department clause excluded", parsed.ProgramName)
	}
	if parsed.Department != "Computer Engineering" {
		t.Errorf("department = %q", parsed.Department)
	}
}

func TestParseHeaderProgramWithoutDepartmentClause(t *testing.T) {
	parsed := Parse("University of Mumbai\nBachelor of Science\nAcademic Year 2023")
	if parsed.ProgramName != "Bachelor of Science" {
		t.Errorf("program = %q", parsed.ProgramName)
	}
}

func TestParseCourses(t *testing.T) {
	parsed := Parse(sampleSyllabus)

	if len(parsed.Courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(parsed.Courses))
	}

	first := parsed.Courses[0]
	if first.Code != "ITC501" {
		t.Errorf("code = %q", first.Code)
	}
	if first.Name != "Internet Programming" {
		t.Errorf("name = %q", first.Name)
	}
	if len(first.Chapters) != 3 {
		t.Fatalf("got %d chapters, want 3", len(first.Chapters))
	}
	if first.Chapters[2].Number != 3 {
		t.Errorf("roman numeral module number = %d, want 3", first.Chapters[2].Number)
	}
	if first.Chapters[0].Name != "Introduction to Web Technology" {
		t.Errorf("chapter name = %q", first.Chapters[0].Name)
	}
	if len(first.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(first.Outcomes))
	}
	if first.Outcomes[0].Code != "CO1" {
		t.Errorf("outcome code = %q", first.Outcomes[0].Code)
	}

	// Code-on-its-own-line header form.
	second := parsed.Courses[1]
	if second.Code != "ITC502" {
		t.Errorf("second code = %q", second.Code)
	}
	if second.Name != "Data Warehousing and Mining" {
		t.Errorf("second name = %q", second.Name)
	}
	if len(second.Chapters) != 2 {
		t.Errorf("second course chapters = %d, want 2", len(second.Chapters))
	}
}

func TestParseNoCourses(t *testing.T) {
	parsed := Parse("just some unrelated text\nwith no syllabus markers")
	if len(parsed.Courses) != 0 {
		t.Errorf("got %d courses, want 0", len(parsed.Courses))
	}
}

func TestModuleNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"12", 12, true},
		{"IV", 4, true},
		{"viii", 8, true},
		{"ABC", 0, false},
	}
	for _, c := range cases {
		got, ok := moduleNumber(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("moduleNumber(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
