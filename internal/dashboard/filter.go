package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mentorship-dashboard/internal/models"

	"golang.org/x/text/cases"
)

// ErrInvalidFilter is returned for query filters that cannot be understood.
var ErrInvalidFilter = errors.New("invalid filter")

// RatingRange is an inclusive meeting rating interval.
type RatingRange struct {
	Min int
	Max int
}

// Contains reports whether rating lies in the range.
func (r RatingRange) Contains(rating int) bool {
	return rating >= r.Min && rating <= r.Max
}

// Criteria is the validated form of models.DashboardFilters.
type Criteria struct {
	Program string
	Rating  *RatingRange
}

// ParseFilters validates the query filters. Blank values mean no constraint.
func ParseFilters(f models.DashboardFilters) (Criteria, error) {
	c := Criteria{Program: strings.TrimSpace(f.Programa)}

	if nota := strings.TrimSpace(f.NotaEncontro); nota != "" {
		r, err := ParseRatingRange(nota)
		if err != nil {
			return Criteria{}, err
		}
		c.Rating = &r
	}

	return c, nil
}

// ParseRatingRange reads a "<min>-<max>" token such as "7-8".
func ParseRatingRange(s string) (RatingRange, error) {
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return RatingRange{}, fmt.Errorf("%w: notaEncontro %q must be <min>-<max>", ErrInvalidFilter, s)
	}

	r := RatingRange{}
	var err error
	if r.Min, err = strconv.Atoi(strings.TrimSpace(lo)); err != nil {
		return RatingRange{}, fmt.Errorf("%w: notaEncontro min %q is not an integer", ErrInvalidFilter, lo)
	}
	if r.Max, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
		return RatingRange{}, fmt.Errorf("%w: notaEncontro max %q is not an integer", ErrInvalidFilter, hi)
	}
	if r.Min > r.Max {
		return RatingRange{}, fmt.Errorf("%w: notaEncontro min %d is greater than max %d", ErrInvalidFilter, r.Min, r.Max)
	}

	return r, nil
}

// Apply returns the rows matching every active criterion, in their original order.
func (c Criteria) Apply(rows []models.SurveyRow) []models.SurveyRow {
	fold := cases.Fold()
	program := fold.String(c.Program)

	filtered := make([]models.SurveyRow, 0, len(rows))
	for _, row := range rows {
		if program != "" && !strings.Contains(fold.String(row.Program), program) {
			continue
		}
		if c.Rating != nil {
			rating, ok := models.ParseLenientInt(row.MeetingRating)
			if !ok || !c.Rating.Contains(rating) {
				continue
			}
		}
		filtered = append(filtered, row)
	}

	return filtered
}
