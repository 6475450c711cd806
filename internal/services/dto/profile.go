package dto

import "kairo_backend/internal/models"

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type UpdateAboutRequest struct {
	About string `json:"about" binding:"max=2000"`
}

type UpdateContactRequest struct {
	Phone        string `json:"phone" binding:"max=30"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Location     string `json:"location" binding:"max=100"`
}

type AddSkillsRequest struct {
	Skills []string `json:"skills" binding:"required,min=1,dive,min=1,max=50"`
}

type RemoveSkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

type ExperienceRequest struct {
	Role            string   `json:"role" binding:"required,max=100"`
	Company         string   `json:"company" binding:"required,max=100"`
	Duration        string   `json:"duration" binding:"max=60"`
	Description     string   `json:"description" binding:"max=2000"`
	ReferenceEmails []string `json:"referenceEmails" binding:"omitempty,dive,email"`
}

type ProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=2000"`
	Link        string   `json:"link" binding:"omitempty,url"`
	Tech        []string `json:"tech" binding:"omitempty,dive,max=50"`
}

type EducationRequest struct {
	Institution string `json:"institution" binding:"required,max=150"`
	Degree      string `json:"degree" binding:"max=100"`
	Duration    string `json:"duration" binding:"max=60"`
	Grade       string `json:"grade" binding:"max=30"`
}

// UpdateLinkRequest carries one external profile link. Which platform it
// belongs to comes from the URL path.
type UpdateLinkRequest struct {
	URL string `json:"url" binding:"required,max=300"`
}

type ApplicantProfileDTO struct {
	ID           string                   `json:"id"`
	UserID       string                   `json:"user_id"`
	Name         string                   `json:"name"`
	Email        string                   `json:"email"`
	About        string                   `json:"about"`
	Phone        string                   `json:"phone"`
	ContactEmail string                   `json:"contact_email"`
	Location     string                   `json:"location"`
	Skills       []string                 `json:"skills"`
	Experience   []models.ExperienceEntry `json:"experience"`
	Projects     []models.ProjectEntry    `json:"projects"`
	Education    []models.EducationEntry  `json:"education"`
	Links        ProfileLinks             `json:"links"`
	ResumeURL    string                   `json:"resume_url,omitempty"`
	ImageURL     string                   `json:"image_url,omitempty"`
}

type ProfileLinks struct {
	Github     string `json:"github,omitempty"`
	Linkedin   string `json:"linkedin,omitempty"`
	Leetcode   string `json:"leetcode,omitempty"`
	Codeforces string `json:"codeforces,omitempty"`
}

func NewApplicantProfileDTO(profile *models.ApplicantProfile, user *models.User) *ApplicantProfileDTO {
	d := &ApplicantProfileDTO{
		ID:           profile.ID,
		UserID:       profile.UserID,
		About:        profile.About,
		Phone:        profile.Phone,
		ContactEmail: profile.ContactEmail,
		Location:     profile.Location,
		Skills:       profile.GetSkills(),
		Experience:   profile.GetExperience(),
		Projects:     profile.GetProjects(),
		Education:    profile.GetEducation(),
		Links: ProfileLinks{
			Github:     profile.GithubLink,
			Linkedin:   profile.LinkedinLink,
			Leetcode:   profile.LeetcodeLink,
			Codeforces: profile.CodeforcesLink,
		},
		ResumeURL: profile.ResumeURL,
	}
	if user != nil {
		d.Name = user.Name
		d.Email = user.Email
		d.ImageURL = user.ImageURL
	}
	return d
}

type RecruiterProfileDTO struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Position     string      `json:"position"`
	ContactEmail string      `json:"contact_email"`
	Company      *CompanyDTO `json:"company,omitempty"`
}

func NewRecruiterProfileDTO(profile *models.RecruiterProfile, user *models.User) *RecruiterProfileDTO {
	d := &RecruiterProfileDTO{
		ID:           profile.ID,
		UserID:       profile.UserID,
		Position:     profile.Position,
		ContactEmail: profile.ContactEmail,
	}
	if user != nil {
		d.Name = user.Name
		d.Email = user.Email
	}
	if profile.Company != nil {
		d.Company = NewCompanyDTO(profile.Company)
	}
	return d
}
