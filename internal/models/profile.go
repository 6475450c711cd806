package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ApplicantProfile extends a User with job-seeker fields. The array-valued
// fields live in jsonb columns and are mutated read-modify-write inside a
// row-locked transaction (see ProfileRepository).
type ApplicantProfile struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	About        string `json:"about"`
	Phone        string `json:"phone"`
	ContactEmail string `json:"contact_email"`
	Location     string `json:"location"`

	Skills     datatypes.JSON `gorm:"type:jsonb" json:"skills"`     // ["go", "sql"]
	Experience datatypes.JSON `gorm:"type:jsonb" json:"experience"` // []ExperienceEntry
	Projects   datatypes.JSON `gorm:"type:jsonb" json:"projects"`   // []ProjectEntry
	Education  datatypes.JSON `gorm:"type:jsonb" json:"education"`  // []EducationEntry

	GithubLink     string `json:"github_link"`
	LinkedinLink   string `json:"linkedin_link"`
	LeetcodeLink   string `json:"leetcode_link"`
	CodeforcesLink string `json:"codeforces_link"`
	ResumeURL      string `json:"resume_url"`
}

// ExperienceEntry is one element of the Experience jsonb array. The id is
// generated client-side/on-create and used for targeted deletes.
type ExperienceEntry struct {
	ID              string   `json:"id"`
	Role            string   `json:"role"`
	Company         string   `json:"company"`
	Duration        string   `json:"duration"`
	Description     string   `json:"description"`
	ReferenceEmails []string `json:"referenceEmails,omitempty"`
}

type ProjectEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link,omitempty"`
	Tech        []string `json:"tech,omitempty"`
}

type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
	Grade       string `json:"grade,omitempty"`
}

// GetSkills decodes the Skills column into a string slice.
func (a *ApplicantProfile) GetSkills() []string {
	var skills []string
	if len(a.Skills) > 0 {
		_ = json.Unmarshal(a.Skills, &skills)
	}
	return skills
}

// SetSkills encodes skills into the Skills column.
func (a *ApplicantProfile) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	a.Skills = datatypes.JSON(data)
}

func (a *ApplicantProfile) GetExperience() []ExperienceEntry {
	var entries []ExperienceEntry
	if len(a.Experience) > 0 {
		_ = json.Unmarshal(a.Experience, &entries)
	}
	return entries
}

func (a *ApplicantProfile) SetExperience(entries []ExperienceEntry) {
	data, _ := json.Marshal(entries)
	a.Experience = datatypes.JSON(data)
}

func (a *ApplicantProfile) GetProjects() []ProjectEntry {
	var entries []ProjectEntry
	if len(a.Projects) > 0 {
		_ = json.Unmarshal(a.Projects, &entries)
	}
	return entries
}

func (a *ApplicantProfile) SetProjects(entries []ProjectEntry) {
	data, _ := json.Marshal(entries)
	a.Projects = datatypes.JSON(data)
}

func (a *ApplicantProfile) GetEducation() []EducationEntry {
	var entries []EducationEntry
	if len(a.Education) > 0 {
		_ = json.Unmarshal(a.Education, &entries)
	}
	return entries
}

func (a *ApplicantProfile) SetEducation(entries []EducationEntry) {
	data, _ := json.Marshal(entries)
	a.Education = datatypes.JSON(data)
}

// RecruiterProfile extends a User with hiring-agent fields. A recruiter
// belongs to at most one company.
type RecruiterProfile struct {
	BaseModel
	UserID       string  `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyID    *string `gorm:"index" json:"company_id"`
	Position     string  `json:"position"`
	ContactEmail string  `json:"contact_email"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
