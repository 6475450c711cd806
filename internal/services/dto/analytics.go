package dto

import "kairo_backend/internal/repositories"

type MonthlyAnalyticsQuery struct {
	Months int `form:"months" binding:"omitempty,min=1,max=24"`
}

type MonthlyAnalyticsResponse struct {
	Months []repositories.MonthlyStat `json:"months"`
}

type FunnelAnalyticsResponse struct {
	Funnel         repositories.FunnelStats `json:"funnel"`
	ActivePostings int                      `json:"active_postings"`
	Applications   int                      `json:"applications"`
}
