package models

type UserRole string
type ApplicationStatus string
type InternshipType string
type InternshipMode string
type StipendType string

const (
	UserRoleApplicant UserRole = "applicant"
	UserRoleRecruiter UserRole = "recruiter"

	ApplicationStatusApplied     ApplicationStatus = "Applied"
	ApplicationStatusShortlisted ApplicationStatus = "Shortlisted"
	ApplicationStatusInterview   ApplicationStatus = "Interview"
	ApplicationStatusHired       ApplicationStatus = "Hire"
	ApplicationStatusRejected    ApplicationStatus = "Reject"

	InternshipTypeFullTime InternshipType = "full_time"
	InternshipTypePartTime InternshipType = "part_time"

	InternshipModeRemote InternshipMode = "remote"
	InternshipModeOnsite InternshipMode = "onsite"
	InternshipModeHybrid InternshipMode = "hybrid"

	StipendTypePaid             StipendType = "paid"
	StipendTypeUnpaid           StipendType = "unpaid"
	StipendTypePerformanceBased StipendType = "performance_based"
)
