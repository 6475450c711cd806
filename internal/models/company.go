package models

// Company is an organization that internships are posted under.
type Company struct {
	BaseModel
	Name            string `gorm:"not null" json:"name"`
	Industry        string `json:"industry"`
	Website         string `json:"website"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	CompanySize     string `json:"company_size"`
	EstablishedYear int    `json:"established_year"`

	Recruiters []RecruiterProfile `gorm:"foreignKey:CompanyID" json:"recruiters,omitempty"`
}

// CompanyAuth holds console credentials for a company. LoginID is the
// generated "COMP-XXXXXX" identifier the company signs in with.
type CompanyAuth struct {
	BaseModel
	CompanyID    string `gorm:"uniqueIndex;not null" json:"company_id"`
	LoginID      string `gorm:"uniqueIndex;not null" json:"login_id"`
	PasswordHash string `gorm:"not null" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
