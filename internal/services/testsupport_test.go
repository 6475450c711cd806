package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kairo_backend/internal/email"
	"kairo_backend/internal/models"
	"kairo_backend/internal/repositories"
	"kairo_backend/test/helpers"
)

// newTestDB hands out an unconnected gorm handle. The repositories are
// mocked below, so no SQL ever runs; the handle only has to survive
// db.Transaction calls.
func newTestDB() *gorm.DB {
	return helpers.NullDB()
}

// ----------------------------------------------------------------------------
// Repository mocks backed by maps. They ignore the db argument.
// ----------------------------------------------------------------------------

type mockUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byID: map[string]*models.User{}, byEmail: map[string]*models.User{}}
}

func (m *mockUserRepo) Create(_ *gorm.DB, user *models.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return repositories.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) Update(_ *gorm.DB, user *models.User) error {
	if _, ok := m.byID[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) MarkVerified(_ *gorm.DB, userID string, at time.Time) error {
	user, ok := m.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.EmailVerifiedAt = &at
	return nil
}

func (m *mockUserRepo) UpdateImageURL(_ *gorm.DB, userID, url string) error {
	user, ok := m.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ImageURL = url
	return nil
}

type mockSessionRepo struct {
	byToken map[string]*models.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{byToken: map[string]*models.Session{}}
}

func (m *mockSessionRepo) Create(_ *gorm.DB, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	m.byToken[session.Token] = session
	return nil
}

func (m *mockSessionRepo) FindByToken(_ *gorm.DB, token string) (*models.Session, error) {
	if session, ok := m.byToken[token]; ok {
		return session, nil
	}
	return nil, repositories.ErrSessionNotFound
}

func (m *mockSessionRepo) DeleteByToken(_ *gorm.DB, token string) error {
	delete(m.byToken, token)
	return nil
}

func (m *mockSessionRepo) DeleteByUserID(_ *gorm.DB, userID string) error {
	for token, session := range m.byToken {
		if session.UserID == userID {
			delete(m.byToken, token)
		}
	}
	return nil
}

func (m *mockSessionRepo) CleanExpired(_ *gorm.DB) error {
	for token, session := range m.byToken {
		if session.Expired() {
			delete(m.byToken, token)
		}
	}
	return nil
}

type mockVerificationTokenRepo struct {
	byToken map[string]*models.VerificationToken
}

func newMockVerificationTokenRepo() *mockVerificationTokenRepo {
	return &mockVerificationTokenRepo{byToken: map[string]*models.VerificationToken{}}
}

func (m *mockVerificationTokenRepo) Create(_ *gorm.DB, token *models.VerificationToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	m.byToken[token.Token] = token
	return nil
}

func (m *mockVerificationTokenRepo) FindByToken(_ *gorm.DB, token string) (*models.VerificationToken, error) {
	if vt, ok := m.byToken[token]; ok {
		return vt, nil
	}
	return nil, repositories.ErrVerificationTokenNotFound
}

func (m *mockVerificationTokenRepo) DeleteByToken(_ *gorm.DB, token string) error {
	delete(m.byToken, token)
	return nil
}

func (m *mockVerificationTokenRepo) DeleteByIdentifier(_ *gorm.DB, identifier string) error {
	for token, vt := range m.byToken {
		if vt.Identifier == identifier {
			delete(m.byToken, token)
		}
	}
	return nil
}

func (m *mockVerificationTokenRepo) CleanExpired(_ *gorm.DB) error { return nil }

type mockProfileRepo struct {
	applicantsByUserID map[string]*models.ApplicantProfile
	recruitersByUserID map[string]*models.RecruiterProfile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{
		applicantsByUserID: map[string]*models.ApplicantProfile{},
		recruitersByUserID: map[string]*models.RecruiterProfile{},
	}
}

func (m *mockProfileRepo) CreateApplicant(_ *gorm.DB, profile *models.ApplicantProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	m.applicantsByUserID[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) FindApplicantByUserID(_ *gorm.DB, userID string) (*models.ApplicantProfile, error) {
	if profile, ok := m.applicantsByUserID[userID]; ok {
		return profile, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (m *mockProfileRepo) FindApplicantByID(_ *gorm.DB, id string) (*models.ApplicantProfile, error) {
	for _, profile := range m.applicantsByUserID {
		if profile.ID == id {
			return profile, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (m *mockProfileRepo) UpdateApplicant(_ *gorm.DB, profile *models.ApplicantProfile) error {
	m.applicantsByUserID[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) UpdateApplicantFields(_ *gorm.DB, userID string, fields map[string]interface{}) error {
	profile, ok := m.applicantsByUserID[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	for key, value := range fields {
		str, _ := value.(string)
		switch key {
		case "about":
			profile.About = str
		case "phone":
			profile.Phone = str
		case "contact_email":
			profile.ContactEmail = str
		case "location":
			profile.Location = str
		case "github_link":
			profile.GithubLink = str
		case "linkedin_link":
			profile.LinkedinLink = str
		case "leetcode_link":
			profile.LeetcodeLink = str
		case "codeforces_link":
			profile.CodeforcesLink = str
		case "resume_url":
			profile.ResumeURL = str
		}
	}
	return nil
}

func (m *mockProfileRepo) MutateApplicant(_ *gorm.DB, userID string, fn func(p *models.ApplicantProfile) error) (*models.ApplicantProfile, error) {
	profile, ok := m.applicantsByUserID[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	if err := fn(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (m *mockProfileRepo) CreateRecruiter(_ *gorm.DB, profile *models.RecruiterProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	m.recruitersByUserID[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) FindRecruiterByUserID(_ *gorm.DB, userID string) (*models.RecruiterProfile, error) {
	if profile, ok := m.recruitersByUserID[userID]; ok {
		return profile, nil
	}
	return nil, repositories.ErrRecruiterNotFound
}

func (m *mockProfileRepo) UpdateRecruiter(_ *gorm.DB, profile *models.RecruiterProfile) error {
	m.recruitersByUserID[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) FindRecruitersByCompanyID(_ *gorm.DB, companyID string) ([]models.RecruiterProfile, error) {
	var result []models.RecruiterProfile
	for _, profile := range m.recruitersByUserID {
		if profile.CompanyID != nil && *profile.CompanyID == companyID {
			result = append(result, *profile)
		}
	}
	return result, nil
}

func (m *mockProfileRepo) DetachRecruiter(_ *gorm.DB, recruiterID string) error {
	for _, profile := range m.recruitersByUserID {
		if profile.ID == recruiterID {
			profile.CompanyID = nil
			return nil
		}
	}
	return repositories.ErrRecruiterNotFound
}

type mockInternshipRepo struct {
	byID map[string]*models.Internship
}

func newMockInternshipRepo() *mockInternshipRepo {
	return &mockInternshipRepo{byID: map[string]*models.Internship{}}
}

func (m *mockInternshipRepo) Create(_ *gorm.DB, internship *models.Internship) error {
	if internship.ID == "" {
		internship.ID = uuid.NewString()
	}
	internship.CreatedAt = time.Now()
	m.byID[internship.ID] = internship
	return nil
}

func (m *mockInternshipRepo) FindByID(_ *gorm.DB, id string) (*models.Internship, error) {
	if internship, ok := m.byID[id]; ok {
		return internship, nil
	}
	return nil, repositories.ErrInternshipNotFound
}

func (m *mockInternshipRepo) FindBySlug(_ *gorm.DB, slug string) (*models.Internship, error) {
	for _, internship := range m.byID {
		if internship.Slug == slug {
			return internship, nil
		}
	}
	return nil, repositories.ErrInternshipNotFound
}

func (m *mockInternshipRepo) SlugExists(_ *gorm.DB, slug string) (bool, error) {
	_, err := m.FindBySlug(nil, slug)
	return err == nil, nil
}

func (m *mockInternshipRepo) Update(_ *gorm.DB, internship *models.Internship) error {
	if _, ok := m.byID[internship.ID]; !ok {
		return repositories.ErrInternshipNotFound
	}
	m.byID[internship.ID] = internship
	return nil
}

func (m *mockInternshipRepo) SetActive(_ *gorm.DB, id string, active bool) error {
	internship, ok := m.byID[id]
	if !ok {
		return repositories.ErrInternshipNotFound
	}
	internship.IsActive = active
	return nil
}

func (m *mockInternshipRepo) Search(_ *gorm.DB, filter repositories.InternshipFilter) ([]models.Internship, int64, error) {
	var result []models.Internship
	for _, internship := range m.byID {
		if !internship.IsActive {
			continue
		}
		if filter.Search != "" && !containsFold(internship.Title, filter.Search) &&
			!containsFold(internship.Description, filter.Search) {
			continue
		}
		if filter.Type != "" && internship.Type != filter.Type {
			continue
		}
		if filter.Mode != "" && internship.Mode != filter.Mode {
			continue
		}
		if filter.Location != "" && !containsFold(internship.Location, filter.Location) {
			continue
		}
		if filter.Category != "" && internship.Category != filter.Category {
			continue
		}
		if filter.MinStipend != nil && (internship.Stipend == nil || *internship.Stipend < *filter.MinStipend) {
			continue
		}
		if filter.MaxStipend != nil && (internship.Stipend == nil || *internship.Stipend > *filter.MaxStipend) {
			continue
		}
		if len(filter.Skills) > 0 && !hasAnySkill(internship.GetSkillsRequired(), filter.Skills) {
			continue
		}
		result = append(result, *internship)
	}
	return result, int64(len(result)), nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func hasAnySkill(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (m *mockInternshipRepo) FindByRecruiterID(_ *gorm.DB, recruiterID string) ([]models.Internship, error) {
	var result []models.Internship
	for _, internship := range m.byID {
		if internship.RecruiterID == recruiterID {
			result = append(result, *internship)
		}
	}
	return result, nil
}

func (m *mockInternshipRepo) IncrementApplications(_ *gorm.DB, id string) error {
	internship, ok := m.byID[id]
	if !ok {
		return repositories.ErrInternshipNotFound
	}
	internship.ApplicationsCount++
	return nil
}

type mockApplicationRepo struct {
	byID map[string]*models.InternshipApplication
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{byID: map[string]*models.InternshipApplication{}}
}

func (m *mockApplicationRepo) Create(_ *gorm.DB, application *models.InternshipApplication) error {
	for _, existing := range m.byID {
		if existing.InternshipID == application.InternshipID && existing.ApplicantID == application.ApplicantID {
			return repositories.ErrDuplicateApplication
		}
	}
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	application.CreatedAt = time.Now()
	m.byID[application.ID] = application
	return nil
}

func (m *mockApplicationRepo) FindByID(_ *gorm.DB, id string) (*models.InternshipApplication, error) {
	if application, ok := m.byID[id]; ok {
		return application, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (m *mockApplicationRepo) FindByPair(_ *gorm.DB, internshipID, applicantID string) (*models.InternshipApplication, error) {
	for _, application := range m.byID {
		if application.InternshipID == internshipID && application.ApplicantID == applicantID {
			return application, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (m *mockApplicationRepo) FindByApplicantID(_ *gorm.DB, applicantID string) ([]models.InternshipApplication, error) {
	var result []models.InternshipApplication
	for _, application := range m.byID {
		if application.ApplicantID == applicantID {
			result = append(result, *application)
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) FindByInternshipID(_ *gorm.DB, internshipID string) ([]models.InternshipApplication, error) {
	var result []models.InternshipApplication
	for _, application := range m.byID {
		if application.InternshipID == internshipID {
			result = append(result, *application)
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) FindRecentByRecruiterID(_ *gorm.DB, recruiterID string, limit int) ([]models.InternshipApplication, error) {
	return nil, nil
}

func (m *mockApplicationRepo) FindInterviewsByRecruiterID(_ *gorm.DB, recruiterID string) ([]models.InternshipApplication, error) {
	var result []models.InternshipApplication
	for _, application := range m.byID {
		if application.SelectInterview {
			result = append(result, *application)
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) Update(_ *gorm.DB, application *models.InternshipApplication) error {
	if _, ok := m.byID[application.ID]; !ok {
		return repositories.ErrApplicationNotFound
	}
	m.byID[application.ID] = application
	return nil
}

type mockCompanyRepo struct {
	companies map[string]*models.Company
	auths     map[string]*models.CompanyAuth // keyed by login id
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{
		companies: map[string]*models.Company{},
		auths:     map[string]*models.CompanyAuth{},
	}
}

func (m *mockCompanyRepo) Create(_ *gorm.DB, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	m.companies[company.ID] = company
	return nil
}

func (m *mockCompanyRepo) FindByID(_ *gorm.DB, id string) (*models.Company, error) {
	if company, ok := m.companies[id]; ok {
		return company, nil
	}
	return nil, repositories.ErrCompanyNotFound
}

func (m *mockCompanyRepo) Update(_ *gorm.DB, company *models.Company) error {
	m.companies[company.ID] = company
	return nil
}

func (m *mockCompanyRepo) CreateAuth(_ *gorm.DB, auth *models.CompanyAuth) error {
	if auth.ID == "" {
		auth.ID = uuid.NewString()
	}
	auth.Company = m.companies[auth.CompanyID]
	m.auths[auth.LoginID] = auth
	return nil
}

func (m *mockCompanyRepo) FindAuthByLoginID(_ *gorm.DB, loginID string) (*models.CompanyAuth, error) {
	if auth, ok := m.auths[loginID]; ok {
		return auth, nil
	}
	return nil, repositories.ErrCompanyAuthNotFound
}

func (m *mockCompanyRepo) LoginIDExists(_ *gorm.DB, loginID string) (bool, error) {
	_, ok := m.auths[loginID]
	return ok, nil
}

// mockEmailProvider records what would have been sent.

type sentEmail struct {
	To       string
	Subject  string
	Template string
}

type mockEmailProvider struct {
	sent []sentEmail
}

func (m *mockEmailProvider) Send(e *email.Email) error {
	to := ""
	if len(e.To) > 0 {
		to = e.To[0]
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: e.Subject})
	return nil
}

func (m *mockEmailProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	addr := ""
	if len(to) > 0 {
		addr = to[0]
	}
	m.sent = append(m.sent, sentEmail{To: addr, Subject: subject, Template: templateName})
	return nil
}

func (m *mockEmailProvider) SendVerification(to, name, verifyURL string) error {
	m.sent = append(m.sent, sentEmail{To: to, Template: email.TemplateVerification})
	return nil
}

func (m *mockEmailProvider) SendCompanyCredentials(to, companyName, loginID string) error {
	m.sent = append(m.sent, sentEmail{To: to, Template: email.TemplateCompanyCredentials})
	return nil
}

func (m *mockEmailProvider) SendInterviewInvite(to, name, internshipTitle, mode, location, date, timeSlot string) error {
	m.sent = append(m.sent, sentEmail{To: to, Template: email.TemplateInterviewInvite})
	return nil
}

func (m *mockEmailProvider) Validate() error { return nil }
func (m *mockEmailProvider) Close() error    { return nil }
