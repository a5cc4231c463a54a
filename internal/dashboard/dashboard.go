// Package dashboard turns survey rows into the dashboard view: filters, KPIs,
// charts and the recent activity feed. Everything here is a pure function of
// its input.
package dashboard

import (
	"sort"
	"strings"

	"mentorship-dashboard/internal/models"
)

// Build assembles the dashboard from already filtered rows. stored maps row
// keys to sentiments kept by the annotation store and may be nil.
func Build(rows []models.SurveyRow, stored map[string]models.Sentiment) models.DashboardData {
	return models.DashboardData{
		Kpis: ComputeKPIs(rows),
		Charts: models.ChartData{
			Evaluation:       Evaluation(rows),
			ProgramFunnel:    ProgramFunnel(rows),
			CommentsAnalysis: CommentsAnalysis(rows, stored),
			MentorVsMentee:   MentorVsMentee(rows),
		},
		Activities: RecentActivities(rows),
	}
}

// RatingOptions are the fixed choices of the rating filter, one per tier.
var RatingOptions = []models.FilterOption{
	{Value: "9-10", Label: "Excelente (9-10)"},
	{Value: "8-8", Label: "Bom (8)"},
	{Value: "6-7", Label: "Ruim (6-7)"},
	{Value: "0-5", Label: "Insatisfeito (0-5)"},
}

// FilterOptionsFor lists the distinct program names of rows, sorted.
func FilterOptionsFor(rows []models.SurveyRow) models.FilterOptions {
	seen := make(map[string]struct{})
	programs := make([]string, 0)
	for _, row := range rows {
		p := strings.TrimSpace(row.Program)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		programs = append(programs, p)
	}
	sort.Strings(programs)

	options := make([]models.FilterOption, len(RatingOptions))
	copy(options, RatingOptions)

	return models.FilterOptions{Programas: programs, NotasEncontro: options}
}
