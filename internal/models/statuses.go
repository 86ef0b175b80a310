package models

// UserRole is the identity's role. RECRUITER and EMPLOYER are only valid
// while the user is associated with a company.
type UserRole string

const (
	RoleCandidate UserRole = "CANDIDATE"
	RoleRecruiter UserRole = "RECRUITER"
	RoleEmployer  UserRole = "EMPLOYER"
	RoleAdmin     UserRole = "ADMIN"
)

func ValidRole(role UserRole) bool {
	switch role {
	case RoleCandidate, RoleRecruiter, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// JobStatus drives the job lifecycle. DELETED is a soft delete: the row is
// kept for audit and never leaves that state.
type JobStatus string

const (
	JobStatusDraft   JobStatus = "DRAFT"
	JobStatusActive  JobStatus = "ACTIVE"
	JobStatusClosed  JobStatus = "CLOSED"
	JobStatusDeleted JobStatus = "DELETED"
)

// jobTransitions is the job state machine. CLOSED jobs come back only
// through duplication, which creates a new job rather than mutating the
// closed one, so it is not listed here.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:   {JobStatusActive, JobStatusDeleted},
	JobStatusActive:  {JobStatusClosed, JobStatusDeleted},
	JobStatusClosed:  {JobStatusDeleted},
	JobStatusDeleted: {},
}

// CanTransitionTo reports whether the status change is legal. A no-op
// (same status) is always allowed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s == next {
		return s != JobStatusDeleted
	}
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidJobStatus(status JobStatus) bool {
	_, ok := jobTransitions[status]
	return ok
}

// ApplicationStatus drives the application lifecycle. REJECTED, ACCEPTED and
// WITHDRAWN are terminal.
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "APPLIED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied: {
		ApplicationStatusUnderReview,
		ApplicationStatusRejected,
		ApplicationStatusAccepted,
		ApplicationStatusWithdrawn,
	},
	ApplicationStatusUnderReview: {
		ApplicationStatusRejected,
		ApplicationStatusAccepted,
		ApplicationStatusWithdrawn,
	},
	ApplicationStatusRejected:  {},
	ApplicationStatusAccepted:  {},
	ApplicationStatusWithdrawn: {},
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s ApplicationStatus) Terminal() bool {
	return len(applicationTransitions[s]) == 0
}
