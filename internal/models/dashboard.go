package models

// DashboardFilters holds the optional query filters of the dashboard.
type DashboardFilters struct {
	Programa     string `form:"programa" json:"programa,omitempty"`
	NotaEncontro string `form:"notaEncontro" json:"notaEncontro,omitempty"`
}

// KpiData is the KPI strip shown on top of the dashboard.
type KpiData struct {
	TotalRespostas int     `json:"totalRespostas"`
	DuplasAtivas   int     `json:"duplasAtivas"`
	MediaEncontros float64 `json:"mediaEncontros"`
	DuplasAtencao  int     `json:"duplasAtencao"`
}

// EvaluationBucket is one bar of the rating histogram.
type EvaluationBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// FunnelStage is one stage of the program progress funnel.
type FunnelStage struct {
	Stage      string `json:"stage"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// CommentsBucket counts annotated feedback per sentiment.
type CommentsBucket struct {
	Category  string    `json:"category"`
	Count     int       `json:"count"`
	Sentiment Sentiment `json:"sentiment"`
}

// UserTypeBucket compares mentors and mentees.
type UserTypeBucket struct {
	UserType      string  `json:"userType"`
	AverageRating float64 `json:"averageRating"`
	Count         int     `json:"count"`
}

// ChartData groups every chart of the dashboard.
type ChartData struct {
	Evaluation       []EvaluationBucket `json:"evaluation"`
	ProgramFunnel    []FunnelStage      `json:"programFunnel"`
	CommentsAnalysis []CommentsBucket   `json:"commentsAnalysis"`
	MentorVsMentee   []UserTypeBucket   `json:"mentorVsMentee"`
}

// ActivityData is a recent submission reshaped for display.
type ActivityData struct {
	ID           string `json:"id"`
	Dupla        string `json:"dupla"`
	Data         string `json:"data"`
	Destaque     string `json:"destaque"`
	PontoAtencao string `json:"pontoAtencao"`
	FeedbackIA   string `json:"feedbackIA"`
	MentorAvatar string `json:"mentorAvatar"`
	MenteeAvatar string `json:"menteeAvatar"`
}

// DashboardData is the full response of the dashboard endpoint.
type DashboardData struct {
	Kpis       KpiData        `json:"kpis"`
	Charts     ChartData      `json:"charts"`
	Activities []ActivityData `json:"activities"`
}

// FilterOption is a selectable value of a dashboard filter.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions lists the values offered by the filter bar.
type FilterOptions struct {
	Programas     []string       `json:"programas"`
	NotasEncontro []FilterOption `json:"notasEncontro"`
}
