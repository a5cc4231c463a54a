package dashboard

import (
	"testing"

	"mentorship-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters_Empty(t *testing.T) {
	c, err := ParseFilters(models.DashboardFilters{})
	require.NoError(t, err)
	assert.Empty(t, c.Program)
	assert.Nil(t, c.Rating)
}

func TestParseFilters_Invalid(t *testing.T) {
	for _, nota := range []string{"7", "a-8", "7-b", "9-7", "-"} {
		_, err := ParseFilters(models.DashboardFilters{NotaEncontro: nota})
		assert.ErrorIsf(t, err, ErrInvalidFilter, "notaEncontro %q", nota)
	}
}

func TestCriteriaApply_ProgramCaseInsensitive(t *testing.T) {
	rows := []models.SurveyRow{
		{Email: "a", Program: "Jovem Aprendiz"},
		{Email: "b", Program: "Liderança"},
		{Email: "c", Program: "JOVEM TALENTO"},
	}

	c, err := ParseFilters(models.DashboardFilters{Programa: "jovem"})
	require.NoError(t, err)

	got := c.Apply(rows)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Email)
	assert.Equal(t, "c", got[1].Email)
}

func TestCriteriaApply_RatingRange(t *testing.T) {
	rows := []models.SurveyRow{
		{Email: "a", MeetingRating: "6"},
		{Email: "b", MeetingRating: "7"},
		{Email: "c", MeetingRating: "8"},
		{Email: "d", MeetingRating: "9"},
		{Email: "e", MeetingRating: "n/a"},
		{Email: "f", MeetingRating: ""},
	}

	c, err := ParseFilters(models.DashboardFilters{NotaEncontro: "7-8"})
	require.NoError(t, err)

	got := c.Apply(rows)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Email)
	assert.Equal(t, "c", got[1].Email)
}

func TestCriteriaApply_Composes(t *testing.T) {
	rows := []models.SurveyRow{
		{Email: "a", Program: "Tech", MeetingRating: "9"},
		{Email: "b", Program: "Tech", MeetingRating: "3"},
		{Email: "c", Program: "Arts", MeetingRating: "10"},
	}

	c, err := ParseFilters(models.DashboardFilters{Programa: "tech", NotaEncontro: "9-10"})
	require.NoError(t, err)

	got := c.Apply(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Email)
}
