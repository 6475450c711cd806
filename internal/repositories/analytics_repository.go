package repositories

import (
	"database/sql"
)

type MonthlyStat struct {
	Month        string `json:"month"`
	Applications int    `json:"applications"`
	Hires        int    `json:"hires"`
}

type FunnelStats struct {
	Applied     int `json:"applied"`
	Shortlisted int `json:"shortlisted"`
	Interviewed int `json:"interviewed"`
	Hired       int `json:"hired"`
	Rejected    int `json:"rejected"`
}

// AnalyticsRepository answers aggregate questions about a recruiter's
// postings with raw SQL. Results are always scoped to internships owned
// by the given recruiter.
type AnalyticsRepository interface {
	GetMonthlyStats(recruiterID string, months int) ([]MonthlyStat, error)
	GetFunnelStats(recruiterID string) (*FunnelStats, error)
	GetActivePostingsCount(recruiterID string) (int, error)
	GetTotalApplicationsCount(recruiterID string) (int, error)
}

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetMonthlyStats(recruiterID string, months int) ([]MonthlyStat, error) {
	if months < 1 || months > 24 {
		months = 6
	}
	rows, err := r.db.Query(`
        SELECT to_char(date_trunc('month', a.created_at), 'YYYY-MM') AS month,
               COUNT(*) AS applications,
               COUNT(*) FILTER (WHERE a.is_hire) AS hires
        FROM internship_applications a
        JOIN internships i ON i.id = a.internship_id
        WHERE i.recruiter_id = $1
          AND a.created_at >= date_trunc('month', NOW()) - ($2 - 1) * INTERVAL '1 month'
        GROUP BY 1
        ORDER BY 1
    `, recruiterID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []MonthlyStat
	for rows.Next() {
		var s MonthlyStat
		if err := rows.Scan(&s.Month, &s.Applications, &s.Hires); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *analyticsRepository) GetFunnelStats(recruiterID string) (*FunnelStats, error) {
	var f FunnelStats
	err := r.db.QueryRow(`
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE a.is_shortlisted),
               COUNT(*) FILTER (WHERE a.select_interview),
               COUNT(*) FILTER (WHERE a.is_hire),
               COUNT(*) FILTER (WHERE a.is_reject)
        FROM internship_applications a
        JOIN internships i ON i.id = a.internship_id
        WHERE i.recruiter_id = $1
    `, recruiterID).Scan(&f.Applied, &f.Shortlisted, &f.Interviewed, &f.Hired, &f.Rejected)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *analyticsRepository) GetActivePostingsCount(recruiterID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
        SELECT COUNT(*) FROM internships WHERE recruiter_id = $1 AND is_active
    `, recruiterID).Scan(&count)
	return count, err
}

func (r *analyticsRepository) GetTotalApplicationsCount(recruiterID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
        SELECT COUNT(*)
        FROM internship_applications a
        JOIN internships i ON i.id = a.internship_id
        WHERE i.recruiter_id = $1
    `, recruiterID).Scan(&count)
	return count, err
}
