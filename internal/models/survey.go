package models

import (
	"math"
	"strings"
)

// Column positions of the survey sheet (range A:O). Reordering the sheet only
// requires changing this block.
const (
	ColTimestamp = iota
	ColEmail
	ColFullName
	ColPhone
	ColUserType
	ColProgram
	ColMeetingsCount
	ColLastMeeting
	ColMeetingDuration
	ColMeetingRating
	ColExperience
	ColEngagementRating
	ColComments
	ColAdditionalComments
	ColAIFeedback

	ColumnCount
)

// AIFeedbackColumn is the sheet letter of ColAIFeedback.
const AIFeedbackColumn = "O"

// SurveyRow represents one mentorship check-in submission. Every field is kept
// as the raw cell text; numbers are parsed on demand.
type SurveyRow struct {
	Timestamp          string `json:"timestamp"`
	Email              string `json:"email"`
	FullName           string `json:"fullName"`
	Phone              string `json:"phone"`
	UserType           string `json:"userType"`
	Program            string `json:"program"`
	MeetingsCount      string `json:"meetingsCount"`
	LastMeeting        string `json:"lastMeeting"`
	MeetingDuration    string `json:"meetingDuration"`
	MeetingRating      string `json:"meetingRating"`
	Experience         string `json:"experience"`
	EngagementRating   string `json:"engagementRating"`
	Comments           string `json:"comments"`
	AdditionalComments string `json:"additionalComments"`
	AIFeedback         string `json:"aiFeedback"`
}

// RowFromCells maps a positional sheet row to a SurveyRow. Missing trailing
// cells become empty strings, except the numeric answers, which become "0".
func RowFromCells(cells []string) SurveyRow {
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}

	// Blank numeric answers count as zero.
	number := func(i int) string {
		if v := cell(i); strings.TrimSpace(v) != "" {
			return v
		}
		return "0"
	}

	return SurveyRow{
		Timestamp:          cell(ColTimestamp),
		Email:              cell(ColEmail),
		FullName:           cell(ColFullName),
		Phone:              cell(ColPhone),
		UserType:           cell(ColUserType),
		Program:            cell(ColProgram),
		MeetingsCount:      number(ColMeetingsCount),
		LastMeeting:        cell(ColLastMeeting),
		MeetingDuration:    number(ColMeetingDuration),
		MeetingRating:      number(ColMeetingRating),
		Experience:         cell(ColExperience),
		EngagementRating:   number(ColEngagementRating),
		Comments:           cell(ColComments),
		AdditionalComments: cell(ColAdditionalComments),
		AIFeedback:         cell(ColAIFeedback),
	}
}

// Key identifies a row for activity ids and stored annotations. Two rows
// sharing timestamp and email share a key.
func (r SurveyRow) Key() string {
	return r.Timestamp + "-" + r.Email
}

// ParseLenientInt reads an optional sign followed by digits after any leading
// whitespace and ignores whatever follows, so "60 minutos" is 60 and "8.5" is 8.
// ok is false when no digit is found.
func ParseLenientInt(s string) (n int, ok bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		// Cap absurd cell values instead of overflowing.
		if n < math.MaxInt32/10 {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, false
	}

	if neg {
		n = -n
	}
	return n, true
}
