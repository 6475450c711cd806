package dto

import (
	"time"

	"kairo_backend/internal/models"
)

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=Applied Shortlisted Interview Hire Reject"`

	// required when Status is Interview
	InterviewMode     string     `json:"interview_mode" binding:"omitempty,oneof=online offline"`
	InterviewLocation string     `json:"interview_location" binding:"max=300"`
	InterviewDate     *time.Time `json:"interview_date"`
	InterviewTime     string     `json:"interview_time" binding:"max=20"`
}

type ApplicationDTO struct {
	ID           string                   `json:"id"`
	InternshipID string                   `json:"internship_id"`
	ApplicantID  string                   `json:"applicant_id"`
	Status       models.ApplicationStatus `json:"status"`

	IsShortlisted   bool `json:"is_shortlisted"`
	SelectInterview bool `json:"select_interview"`
	IsHire          bool `json:"is_hire"`
	IsReject        bool `json:"is_reject"`

	InterviewMode     string     `json:"interview_mode,omitempty"`
	InterviewLocation string     `json:"interview_location,omitempty"`
	InterviewDate     *time.Time `json:"interview_date,omitempty"`
	InterviewTime     string     `json:"interview_time,omitempty"`

	Internship *InternshipDTO       `json:"internship,omitempty"`
	Applicant  *ApplicantProfileDTO `json:"applicant,omitempty"`
	AppliedAt  time.Time            `json:"applied_at"`
}

func NewApplicationDTO(application *models.InternshipApplication) *ApplicationDTO {
	d := &ApplicationDTO{
		ID:                application.ID,
		InternshipID:      application.InternshipID,
		ApplicantID:       application.ApplicantID,
		Status:            application.Status,
		IsShortlisted:     application.IsShortlisted,
		SelectInterview:   application.SelectInterview,
		IsHire:            application.IsHire,
		IsReject:          application.IsReject,
		InterviewMode:     application.InterviewMode,
		InterviewLocation: application.InterviewLocation,
		InterviewDate:     application.InterviewDate,
		InterviewTime:     application.InterviewTime,
		AppliedAt:         application.CreatedAt,
	}
	if application.Internship != nil {
		d.Internship = NewInternshipDTO(application.Internship)
	}
	if application.Applicant != nil {
		d.Applicant = NewApplicantProfileDTO(application.Applicant, nil)
	}
	return d
}
