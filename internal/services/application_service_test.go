package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairo_backend/internal/models"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type applicationFixture struct {
	applications *mockApplicationRepo
	internships  *mockInternshipRepo
	profiles     *mockProfileRepo
	users        *mockUserRepo
	mail         *mockEmailProvider
}

// newApplicationFixture seeds one verified applicant (user "applicant-1"),
// one recruiter attached to a company and one active posting.
func newApplicationFixture(t *testing.T) (*applicationFixture, ApplicationService, string) {
	t.Helper()
	f := &applicationFixture{
		applications: newMockApplicationRepo(),
		internships:  newMockInternshipRepo(),
		profiles:     newMockProfileRepo(),
		users:        newMockUserRepo(),
		mail:         &mockEmailProvider{},
	}

	require.NoError(t, f.users.Create(nil, &models.User{
		BaseModel: models.BaseModel{ID: "applicant-1"},
		Email:     "applicant@example.com",
		Name:      "Aruzhan",
		Role:      models.UserRoleApplicant,
	}))
	require.NoError(t, f.profiles.CreateApplicant(nil, &models.ApplicantProfile{
		BaseModel: models.BaseModel{ID: "ap-1"},
		UserID:    "applicant-1",
	}))

	companyID := "co-1"
	require.NoError(t, f.profiles.CreateRecruiter(nil, &models.RecruiterProfile{
		BaseModel: models.BaseModel{ID: "rp-1"},
		UserID:    "recruiter-1",
		CompanyID: &companyID,
	}))

	internship := &models.Internship{
		BaseModel:   models.BaseModel{ID: "in-1"},
		Title:       "Backend Intern",
		Slug:        "backend-intern",
		Type:        models.InternshipTypeFullTime,
		Mode:        models.InternshipModeRemote,
		IsActive:    true,
		CompanyID:   companyID,
		RecruiterID: "rp-1",
	}
	require.NoError(t, f.internships.Create(nil, internship))

	svc := NewApplicationService(f.applications, f.internships, f.profiles, f.users, f.mail)
	return f, svc, internship.ID
}

func TestApplySnapshotsProfileAndCountsApplication(t *testing.T) {
	t.Parallel()
	f, svc, internshipID := newApplicationFixture(t)

	app, err := svc.Apply(newTestDB(), "applicant-1", internshipID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	assert.Equal(t, "ap-1", app.ApplicantID)

	stored, err := f.applications.FindByPair(nil, internshipID, "ap-1")
	require.NoError(t, err)
	assert.True(t, stored.IsApplied)

	var snapshot map[string]interface{}
	require.NoError(t, json.Unmarshal(stored.ResumeData, &snapshot))
	assert.Equal(t, "Aruzhan", snapshot["name"])

	internship, _ := f.internships.FindByID(nil, internshipID)
	assert.Equal(t, 1, internship.ApplicationsCount)
}

func TestApplyTwiceConflicts(t *testing.T) {
	t.Parallel()
	f, svc, internshipID := newApplicationFixture(t)

	_, err := svc.Apply(newTestDB(), "applicant-1", internshipID)
	require.NoError(t, err)

	_, err = svc.Apply(newTestDB(), "applicant-1", internshipID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

	internship, _ := f.internships.FindByID(nil, internshipID)
	assert.Equal(t, 1, internship.ApplicationsCount, "duplicate must not bump the counter")
}

func TestApplyRejectsInactiveAndExpiredPostings(t *testing.T) {
	t.Parallel()
	f, svc, internshipID := newApplicationFixture(t)
	db := newTestDB()

	internship, _ := f.internships.FindByID(nil, internshipID)
	internship.IsActive = false
	_, err := svc.Apply(db, "applicant-1", internshipID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)

	internship.IsActive = true
	past := time.Now().Add(-time.Hour)
	internship.ApplyBy = &past
	_, err = svc.Apply(db, "applicant-1", internshipID)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestApplyUnknownInternshipIs404(t *testing.T) {
	t.Parallel()
	_, svc, _ := newApplicationFixture(t)

	_, err := svc.Apply(newTestDB(), "applicant-1", "missing")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestUpdateStatusWalksThePipeline(t *testing.T) {
	t.Parallel()
	_, svc, internshipID := newApplicationFixture(t)
	db := newTestDB()

	app, err := svc.Apply(db, "applicant-1", internshipID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(db, "recruiter-1", app.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusShortlisted,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsShortlisted)
	assert.False(t, updated.SelectInterview)

	when := time.Now().Add(72 * time.Hour)
	updated, err = svc.UpdateStatus(db, "recruiter-1", app.ID, &dto.UpdateApplicationStatusRequest{
		Status:        models.ApplicationStatusInterview,
		InterviewMode: "online",
		InterviewDate: &when,
		InterviewTime: "14:00",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsShortlisted)
	assert.True(t, updated.SelectInterview)
	assert.Equal(t, "online", updated.InterviewMode)

	updated, err = svc.UpdateStatus(db, "recruiter-1", app.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusHired,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsHire)
	assert.False(t, updated.IsReject)
}

func TestUpdateStatusRejectClearsLaterStageFlags(t *testing.T) {
	t.Parallel()
	_, svc, internshipID := newApplicationFixture(t)
	db := newTestDB()

	app, err := svc.Apply(db, "applicant-1", internshipID)
	require.NoError(t, err)

	when := time.Now().Add(24 * time.Hour)
	_, err = svc.UpdateStatus(db, "recruiter-1", app.ID, &dto.UpdateApplicationStatusRequest{
		Status:        models.ApplicationStatusInterview,
		InterviewMode: "online",
		InterviewDate: &when,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(db, "recruiter-1", app.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusRejected,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsReject)
	assert.False(t, updated.IsShortlisted)
	assert.False(t, updated.SelectInterview)
	assert.False(t, updated.IsHire)
}

func TestUpdateStatusInterviewRequiresModeAndDate(t *testing.T) {
	t.Parallel()
	_, svc, internshipID := newApplicationFixture(t)
	db := newTestDB()

	app, err := svc.Apply(db, "applicant-1", internshipID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(db, "recruiter-1", app.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusInterview,
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUpdateStatusByForeignRecruiterIsForbidden(t *testing.T) {
	t.Parallel()
	f, svc, internshipID := newApplicationFixture(t)
	db := newTestDB()

	otherCompany := "co-2"
	require.NoError(t, f.profiles.CreateRecruiter(nil, &models.RecruiterProfile{
		BaseModel: models.BaseModel{ID: "rp-2"},
		UserID:    "recruiter-2",
		CompanyID: &otherCompany,
	}))

	app, err := svc.Apply(db, "applicant-1", internshipID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(db, "recruiter-2", app.ID, &dto.UpdateApplicationStatusRequest{
		Status: models.ApplicationStatusShortlisted,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	_, err = svc.ListByInternship(db, "recruiter-2", internshipID)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
}

func TestInterviewStatusSendsInvite(t *testing.T) {
	t.Parallel()
	f, svc, internshipID := newApplicationFixture(t)
	db := newTestDB()

	app, err := svc.Apply(db, "applicant-1", internshipID)
	require.NoError(t, err)

	when := time.Now().Add(48 * time.Hour)
	_, err = svc.UpdateStatus(db, "recruiter-1", app.ID, &dto.UpdateApplicationStatusRequest{
		Status:        models.ApplicationStatusInterview,
		InterviewMode: "offline",
		InterviewDate: &when,
	})
	require.NoError(t, err)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "applicant@example.com", f.mail.sent[0].To)
}

func TestListByApplicantReturnsOwnApplicationsOnly(t *testing.T) {
	t.Parallel()
	f, svc, internshipID := newApplicationFixture(t)
	db := newTestDB()

	_, err := svc.Apply(db, "applicant-1", internshipID)
	require.NoError(t, err)

	require.NoError(t, f.applications.Create(nil, &models.InternshipApplication{
		InternshipID: internshipID,
		ApplicantID:  "ap-other",
		Status:       models.ApplicationStatusApplied,
	}))

	apps, err := svc.ListByApplicant(db, "applicant-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "ap-1", apps[0].ApplicantID)
}
