package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairo_backend/internal/models"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type internshipFixture struct {
	internships  *mockInternshipRepo
	applications *mockApplicationRepo
	profiles     *mockProfileRepo
}

func newInternshipFixture(t *testing.T) (*internshipFixture, InternshipService) {
	t.Helper()
	f := &internshipFixture{
		internships:  newMockInternshipRepo(),
		applications: newMockApplicationRepo(),
		profiles:     newMockProfileRepo(),
	}

	companyID := "co-1"
	require.NoError(t, f.profiles.CreateRecruiter(nil, &models.RecruiterProfile{
		BaseModel: models.BaseModel{ID: "rp-1"},
		UserID:    "recruiter-1",
		CompanyID: &companyID,
	}))
	// a recruiter who signed up but was never attached to a company
	require.NoError(t, f.profiles.CreateRecruiter(nil, &models.RecruiterProfile{
		BaseModel: models.BaseModel{ID: "rp-detached"},
		UserID:    "recruiter-detached",
	}))

	return f, NewInternshipService(f.internships, f.applications, f.profiles)
}

func TestSlugify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		title string
		want  string
	}{
		{"Backend Intern", "backend-intern"},
		{"  Go / SQL (Summer 2026)  ", "go-sql-summer-2026"},
		{"C++ Developer!!!", "c-developer"},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.title), tc.title)
	}
}

func TestCreateInternshipMintsUniqueSlug(t *testing.T) {
	t.Parallel()
	_, svc := newInternshipFixture(t)
	db := newTestDB()

	req := &dto.CreateInternshipRequest{
		Title:       "Backend Intern",
		Description: "Build APIs",
		Type:        models.InternshipTypeFullTime,
		Mode:        models.InternshipModeRemote,
	}

	first, err := svc.Create(db, "recruiter-1", req)
	require.NoError(t, err)
	assert.Equal(t, "backend-intern", first.Slug)
	assert.True(t, first.IsActive)

	second, err := svc.Create(db, "recruiter-1", req)
	require.NoError(t, err)
	assert.Equal(t, "backend-intern-2", second.Slug)

	third, err := svc.Create(db, "recruiter-1", req)
	require.NoError(t, err)
	assert.Equal(t, "backend-intern-3", third.Slug)
}

func TestCreateInternshipWithoutCompanyFails(t *testing.T) {
	t.Parallel()
	_, svc := newInternshipFixture(t)

	_, err := svc.Create(newTestDB(), "recruiter-detached", &dto.CreateInternshipRequest{
		Title:       "Orphan Posting",
		Description: "x",
		Type:        models.InternshipTypeFullTime,
		Mode:        models.InternshipModeRemote,
	})
	assert.ErrorIs(t, err, apperrors.ErrNoCompany)
}

func TestUpdateInternshipOwnershipAndPartialFields(t *testing.T) {
	t.Parallel()
	f, svc := newInternshipFixture(t)
	db := newTestDB()

	created, err := svc.Create(db, "recruiter-1", &dto.CreateInternshipRequest{
		Title:       "Data Intern",
		Description: "Pipelines",
		Type:        models.InternshipTypeFullTime,
		Mode:        models.InternshipModeOnsite,
		Location:    "Almaty",
	})
	require.NoError(t, err)

	otherCompany := "co-2"
	require.NoError(t, f.profiles.CreateRecruiter(nil, &models.RecruiterProfile{
		BaseModel: models.BaseModel{ID: "rp-2"},
		UserID:    "recruiter-2",
		CompanyID: &otherCompany,
	}))
	_, err = svc.Update(db, "recruiter-2", created.ID, &dto.UpdateInternshipRequest{Location: "Astana"})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	inactive := false
	updated, err := svc.Update(db, "recruiter-1", created.ID, &dto.UpdateInternshipRequest{
		Location: "Astana",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Astana", updated.Location)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Data Intern", updated.Title, "untouched fields survive")
	assert.Equal(t, created.Slug, updated.Slug, "slug stays unless the title changes")
}

func TestUpdateTitleReslugs(t *testing.T) {
	t.Parallel()
	_, svc := newInternshipFixture(t)
	db := newTestDB()

	created, err := svc.Create(db, "recruiter-1", &dto.CreateInternshipRequest{
		Title:       "Old Title",
		Description: "x",
		Type:        models.InternshipTypePartTime,
		Mode:        models.InternshipModeHybrid,
	})
	require.NoError(t, err)

	updated, err := svc.Update(db, "recruiter-1", created.ID, &dto.UpdateInternshipRequest{
		Title: "Brand New Title",
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestSearchMarksHasAppliedForTheSessionApplicant(t *testing.T) {
	t.Parallel()
	f, svc := newInternshipFixture(t)
	db := newTestDB()

	created, err := svc.Create(db, "recruiter-1", &dto.CreateInternshipRequest{
		Title:       "Applied Internship",
		Description: "x",
		Type:        models.InternshipTypeFullTime,
		Mode:        models.InternshipModeRemote,
	})
	require.NoError(t, err)

	require.NoError(t, f.profiles.CreateApplicant(nil, &models.ApplicantProfile{
		BaseModel: models.BaseModel{ID: "ap-1"},
		UserID:    "applicant-1",
	}))
	require.NoError(t, f.applications.Create(nil, &models.InternshipApplication{
		InternshipID: created.ID,
		ApplicantID:  "ap-1",
		Status:       models.ApplicationStatusApplied,
	}))

	resp, err := svc.Search(db, &dto.SearchInternshipsQuery{}, "applicant-1")
	require.NoError(t, err)
	require.Len(t, resp.Internships, 1)
	assert.True(t, resp.Internships[0].HasApplied)

	// anonymous browsing never carries the flag
	resp, err = svc.Search(db, &dto.SearchInternshipsQuery{}, "")
	require.NoError(t, err)
	require.Len(t, resp.Internships, 1)
	assert.False(t, resp.Internships[0].HasApplied)
}

func TestSearchFiltersCategoryStipendAndSkills(t *testing.T) {
	t.Parallel()
	_, svc := newInternshipFixture(t)
	db := newTestDB()

	stipend := func(n int) *int { return &n }
	postings := []dto.CreateInternshipRequest{
		{
			Title:          "Backend Intern",
			Description:    "x",
			Category:       "engineering",
			Type:           models.InternshipTypeFullTime,
			Mode:           models.InternshipModeRemote,
			Stipend:        stipend(30000),
			StipendType:    models.StipendTypePaid,
			SkillsRequired: []string{"Go", "Postgres"},
		},
		{
			Title:          "Design Intern",
			Description:    "x",
			Category:       "design",
			Type:           models.InternshipTypeFullTime,
			Mode:           models.InternshipModeRemote,
			Stipend:        stipend(10000),
			StipendType:    models.StipendTypePaid,
			SkillsRequired: []string{"Figma"},
		},
		{
			Title:       "Volunteer Research Intern",
			Description: "x",
			Category:    "engineering",
			Type:        models.InternshipTypePartTime,
			Mode:        models.InternshipModeOnsite,
			StipendType: models.StipendTypeUnpaid,
		},
	}
	for i := range postings {
		_, err := svc.Create(db, "recruiter-1", &postings[i])
		require.NoError(t, err)
	}

	titles := func(resp *dto.InternshipListResponse) []string {
		var out []string
		for _, d := range resp.Internships {
			out = append(out, d.Title)
		}
		return out
	}

	resp, err := svc.Search(db, &dto.SearchInternshipsQuery{Category: "engineering"}, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Backend Intern", "Volunteer Research Intern"}, titles(resp))

	// unstipended postings never satisfy a stipend range
	min, max := 20000, 50000
	resp, err = svc.Search(db, &dto.SearchInternshipsQuery{MinStipend: &min, MaxStipend: &max}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend Intern"}, titles(resp))

	low := 5000
	resp, err = svc.Search(db, &dto.SearchInternshipsQuery{MinStipend: &low}, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Backend Intern", "Design Intern"}, titles(resp))

	// any-of across a comma-separated list
	resp, err = svc.Search(db, &dto.SearchInternshipsQuery{Skills: "Figma, Rust"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Design Intern"}, titles(resp))

	resp, err = svc.Search(db, &dto.SearchInternshipsQuery{Skills: "Go"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend Intern"}, titles(resp))

	resp, err = svc.Search(db, &dto.SearchInternshipsQuery{Category: "design", Skills: "Go"}, "")
	require.NoError(t, err)
	assert.Empty(t, resp.Internships)
}

func TestGetBySlugUnknownIs404(t *testing.T) {
	t.Parallel()
	_, svc := newInternshipFixture(t)

	_, err := svc.GetBySlug(newTestDB(), "nope", "")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestListByRecruiterReturnsOwnPostings(t *testing.T) {
	t.Parallel()
	f, svc := newInternshipFixture(t)
	db := newTestDB()

	_, err := svc.Create(db, "recruiter-1", &dto.CreateInternshipRequest{
		Title:       "Mine",
		Description: "x",
		Type:        models.InternshipTypeFullTime,
		Mode:        models.InternshipModeRemote,
	})
	require.NoError(t, err)

	require.NoError(t, f.internships.Create(nil, &models.Internship{
		Title:       "Someone Else's",
		Slug:        "someone-elses",
		IsActive:    true,
		CompanyID:   "co-9",
		RecruiterID: "rp-9",
	}))

	mine, err := svc.ListByRecruiter(db, "recruiter-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Title)
}
