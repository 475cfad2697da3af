package domain

import "strings"

// Subject is one of the olympiad subjects a registrant can choose
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
	SubjectRussian Subject = "russian"
	SubjectIT      Subject = "it"
)

// Subjects lists the closed subject set in display order
var Subjects = []Subject{SubjectMath, SubjectEnglish, SubjectRussian, SubjectIT}

var subjectTitles = map[Subject]string{
	SubjectMath:    "Matematika",
	SubjectEnglish: "Ingliz tili",
	SubjectRussian: "Rus tili",
	SubjectIT:      "IT",
}

// ParseSubject matches a raw key against the closed set, ignoring case and surrounding spaces
func ParseSubject(raw string) (Subject, bool) {
	key := Subject(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := subjectTitles[key]; !ok {
		return "", false
	}
	return key, true
}

// Title returns the human-readable button label
func (s Subject) Title() string {
	if title, ok := subjectTitles[s]; ok {
		return title
	}
	return string(s)
}
