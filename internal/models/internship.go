package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Internship is a posting created by a recruiter on behalf of a company.
type Internship struct {
	BaseModel
	Title        string         `gorm:"not null" json:"title"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"index" json:"category"`
	Type         InternshipType `gorm:"not null" json:"type"`
	Mode         InternshipMode `gorm:"not null" json:"mode"`
	Location     string         `json:"location"`
	Duration     string         `json:"duration"`
	Stipend      *int           `json:"stipend"`
	StipendType  StipendType    `json:"stipend_type"`
	Openings     int            `json:"openings"`
	Requirements string         `gorm:"type:text" json:"requirements"`

	SkillsRequired datatypes.JSON `gorm:"type:jsonb" json:"skills_required"`
	Perks          datatypes.JSON `gorm:"type:jsonb" json:"perks"`

	ApplyBy           *time.Time `json:"apply_by"`
	IsActive          bool       `gorm:"default:true;index" json:"is_active"`
	ApplicationsCount int        `gorm:"default:0" json:"applications_count"`

	CompanyID   string   `gorm:"index;not null" json:"company_id"`
	RecruiterID string   `gorm:"index;not null" json:"recruiter_id"`
	Company     *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (i *Internship) GetSkillsRequired() []string {
	var skills []string
	if len(i.SkillsRequired) > 0 {
		_ = json.Unmarshal(i.SkillsRequired, &skills)
	}
	return skills
}

func (i *Internship) SetSkillsRequired(skills []string) {
	data, _ := json.Marshal(skills)
	i.SkillsRequired = datatypes.JSON(data)
}

func (i *Internship) GetPerks() []string {
	var perks []string
	if len(i.Perks) > 0 {
		_ = json.Unmarshal(i.Perks, &perks)
	}
	return perks
}

func (i *Internship) SetPerks(perks []string) {
	data, _ := json.Marshal(perks)
	i.Perks = datatypes.JSON(data)
}

// InternshipApplication is one applicant's submission to one posting.
// The (InternshipID, ApplicantID) pair is unique; a second submission
// is rejected with a conflict.
type InternshipApplication struct {
	BaseModel
	InternshipID string `gorm:"uniqueIndex:idx_internship_applicant;not null" json:"internship_id"`
	ApplicantID  string `gorm:"uniqueIndex:idx_internship_applicant;not null" json:"applicant_id"`

	Status ApplicationStatus `gorm:"default:Applied;index" json:"status"`

	IsApplied       bool `gorm:"default:true" json:"is_applied"`
	IsShortlisted   bool `gorm:"default:false" json:"is_shortlisted"`
	SelectInterview bool `gorm:"default:false" json:"select_interview"`
	IsHire          bool `gorm:"default:false" json:"is_hire"`
	IsReject        bool `gorm:"default:false" json:"is_reject"`

	InterviewMode     string     `json:"interview_mode"`
	InterviewLocation string     `json:"interview_location"`
	InterviewDate     *time.Time `json:"interview_date"`
	InterviewTime     string     `json:"interview_time"`

	// snapshot of the applicant profile at apply time
	ResumeData datatypes.JSON `gorm:"type:jsonb" json:"resume_data"`

	Internship *Internship       `gorm:"foreignKey:InternshipID" json:"internship,omitempty"`
	Applicant  *ApplicantProfile `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}

// ApplyStatusFlags sets the boolean stage flags to match status. Moving to
// a stage clears the flags of later stages.
func (a *InternshipApplication) ApplyStatusFlags(status ApplicationStatus) {
	a.Status = status
	a.IsApplied = true
	a.IsShortlisted = status == ApplicationStatusShortlisted || status == ApplicationStatusInterview || status == ApplicationStatusHired
	a.SelectInterview = status == ApplicationStatusInterview || status == ApplicationStatusHired
	a.IsHire = status == ApplicationStatusHired
	a.IsReject = status == ApplicationStatusRejected
}
