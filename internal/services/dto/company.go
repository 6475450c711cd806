package dto

import "kairo_backend/internal/models"

type RegisterCompanyRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=150"`
	Industry        string `json:"industry" binding:"max=100"`
	Website         string `json:"website" binding:"omitempty,url"`
	Description     string `json:"description" binding:"max=3000"`
	Location        string `json:"location" binding:"max=100"`
	CompanySize     string `json:"company_size" binding:"max=30"`
	EstablishedYear int    `json:"established_year" binding:"omitempty,min=1800,max=2100"`
	Password        string `json:"password" binding:"required,min=8"`
}

// RegisterCompanyResponse returns the generated LoginID exactly once.
type RegisterCompanyResponse struct {
	ID      string `json:"id"`
	LoginID string `json:"login_id"`
}

type CompanyLoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CompanyLoginResponse struct {
	Token   string     `json:"token"`
	Company CompanyDTO `json:"company"`
}

type UpdateCompanyRequest struct {
	Name            string `json:"name" binding:"omitempty,min=2,max=150"`
	Industry        string `json:"industry" binding:"max=100"`
	Website         string `json:"website" binding:"omitempty,url"`
	Description     string `json:"description" binding:"max=3000"`
	Location        string `json:"location" binding:"max=100"`
	CompanySize     string `json:"company_size" binding:"max=30"`
	EstablishedYear int    `json:"established_year" binding:"omitempty,min=1800,max=2100"`
}

type AttachRecruiterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type CompanyDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Industry        string `json:"industry,omitempty"`
	Website         string `json:"website,omitempty"`
	Description     string `json:"description,omitempty"`
	Location        string `json:"location,omitempty"`
	CompanySize     string `json:"company_size,omitempty"`
	EstablishedYear int    `json:"established_year,omitempty"`
}

func NewCompanyDTO(company *models.Company) *CompanyDTO {
	return &CompanyDTO{
		ID:              company.ID,
		Name:            company.Name,
		Industry:        company.Industry,
		Website:         company.Website,
		Description:     company.Description,
		Location:        company.Location,
		CompanySize:     company.CompanySize,
		EstablishedYear: company.EstablishedYear,
	}
}
