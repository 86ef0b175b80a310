package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
)

// In-memory repository fakes. They reproduce the repository contracts,
// sentinel errors included, so service tests run without a database.

type fakeUserRepo struct {
	users map[string]*models.User
	// sessions is shared with the session fake so InvalidateSessions can
	// observe both sides of the contract.
	sessions *fakeSessionRepo
}

func newFakeUserRepo(sessions *fakeSessionRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), sessions: sessions}
}

func (r *fakeUserRepo) put(u *models.User) *models.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	r.users[u.ID] = &cp
	return u
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindActiveByID(id string) (*models.User, error) {
	u, err := r.FindByID(id)
	if err != nil || u.Deleted {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRecoveryToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.RecoveryToken != nil && *u.RecoveryToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAllActive() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if !u.Deleted {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(u *models.User) error {
	if _, err := r.FindByEmail(u.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	r.put(u)
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) InvalidateSessions(userID string) error {
	if r.sessions != nil {
		_ = r.sessions.DeleteForUser(userID)
	}
	if u, ok := r.users[userID]; ok {
		now := time.Now().UTC()
		u.SessionInvalidatedAt = &now
	}
	return nil
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) repositories.UserRepository { return r }

type fakeSessionRepo struct {
	byToken map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) forUser(userID string) *models.Session {
	for _, s := range r.byToken {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}

func (r *fakeSessionRepo) Replace(userID string, ttl time.Duration) (*models.Session, error) {
	_ = r.DeleteForUser(userID)
	now := time.Now().UTC()
	s := &models.Session{
		UserID:    userID,
		Token:     uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	s.ID = uuid.NewString()
	r.byToken[s.Token] = s
	return s, nil
}

func (r *fakeSessionRepo) FindByToken(token string) (*models.Session, error) {
	s, ok := r.byToken[token]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) DeleteForUser(userID string) error {
	for token, s := range r.byToken {
		if s.UserID == userID {
			delete(r.byToken, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteByToken(token string) error {
	delete(r.byToken, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired() (int64, error) {
	now := time.Now().UTC()
	var n int64
	for token, s := range r.byToken {
		if s.Expired(now) {
			delete(r.byToken, token)
			n++
		}
	}
	return n, nil
}

func (r *fakeSessionRepo) WithTx(tx *gorm.DB) repositories.SessionRepository { return r }

type fakeCompanyRepo struct {
	companies map[string]*models.Company
	users     *fakeUserRepo
	jobs      *fakeJobRepo
}

func newFakeCompanyRepo(users *fakeUserRepo, jobs *fakeJobRepo) *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*models.Company), users: users, jobs: jobs}
}

func (r *fakeCompanyRepo) put(c *models.Company) *models.Company {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	r.companies[c.ID] = &cp
	return c
}

func (r *fakeCompanyRepo) FindActiveByID(id string) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok || c.Deleted {
		return nil, repositories.ErrCompanyNotFound
	}
	cp := *c
	cp.RelatedUsers = nil
	for _, u := range r.users.users {
		if u.CompanyID != nil && *u.CompanyID == id {
			cp.RelatedUsers = append(cp.RelatedUsers, *u)
		}
	}
	return &cp, nil
}

func (r *fakeCompanyRepo) FindAllActive() ([]models.Company, error) {
	var out []models.Company
	for _, c := range r.companies {
		if !c.Deleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) Update(c *models.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return repositories.ErrCompanyNotFound
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) CreateWithFounder(c *models.Company, founder *models.User) error {
	r.put(c)
	founder.Role = models.RoleEmployer
	founder.CompanyID = &c.ID
	_ = r.users.Update(founder)
	c.EmployerID = &founder.ID
	cp := *c
	r.companies[c.ID] = &cp
	_ = r.users.InvalidateSessions(founder.ID)
	return nil
}

func (r *fakeCompanyRepo) AppointRecruiter(companyID string, user *models.User) error {
	user.Role = models.RoleRecruiter
	user.CompanyID = &companyID
	_ = r.users.Update(user)
	_ = r.users.InvalidateSessions(user.ID)
	return nil
}

func (r *fakeCompanyRepo) RemoveRecruiter(company *models.Company, recruiter *models.User, newManagerID string) error {
	_, _ = r.jobs.ReassignManagement(company.ID, recruiter.ID, newManagerID)
	recruiter.Role = models.RoleCandidate
	recruiter.CompanyID = nil
	_ = r.users.Update(recruiter)
	_ = r.users.InvalidateSessions(recruiter.ID)
	return nil
}

func (r *fakeCompanyRepo) ChangeEmployer(company *models.Company, current *models.User, successor *models.User) error {
	_, _ = r.jobs.ReassignManagement(company.ID, current.ID, successor.ID)
	current.Role = models.RoleCandidate
	current.CompanyID = nil
	_ = r.users.Update(current)
	successor.Role = models.RoleEmployer
	successor.CompanyID = &company.ID
	_ = r.users.Update(successor)
	company.EmployerID = &successor.ID
	cp := *company
	cp.RelatedUsers = nil
	r.companies[company.ID] = &cp
	_ = r.users.InvalidateSessions(current.ID)
	return nil
}

func (r *fakeCompanyRepo) SoftDelete(company *models.Company, related []models.User) error {
	for _, j := range r.jobs.jobs {
		if j.CompanyID == company.ID {
			j.Status = models.JobStatusDeleted
		}
	}
	for i := range related {
		u := related[i]
		u.Role = models.RoleCandidate
		u.CompanyID = nil
		_ = r.users.Update(&u)
		_ = r.users.InvalidateSessions(u.ID)
	}
	company.Deleted = true
	company.EmployerID = nil
	cp := *company
	cp.RelatedUsers = nil
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) WithTx(tx *gorm.DB) repositories.CompanyRepository { return r }

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) put(j *models.Job) *models.Job {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	cp := *j
	r.jobs[j.ID] = &cp
	return j
}

func (r *fakeJobRepo) Create(j *models.Job) error {
	r.put(j)
	return nil
}

func (r *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok || j.Status == models.JobStatusDeleted {
		return nil, repositories.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) FindActive() ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.Status == models.JobStatusActive {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) FindByCompany(companyID string, statuses []models.JobStatus) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.CompanyID != companyID {
			continue
		}
		if len(statuses) == 0 {
			if j.Status != models.JobStatusDeleted {
				out = append(out, *j)
			}
			continue
		}
		for _, s := range statuses {
			if j.Status == s {
				out = append(out, *j)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeJobRepo) FindByCreator(creatorID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.CreatedByID == creatorID && j.Status != models.JobStatusDeleted {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) Update(j *models.Job) error {
	if _, ok := r.jobs[j.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) ReassignManagement(companyID, fromID, toID string) (int64, error) {
	var n int64
	for _, j := range r.jobs {
		if j.CompanyID == companyID && j.CreatedByID == fromID && j.Status != models.JobStatusDeleted {
			j.CreatedByID = toID
			n++
		}
	}
	return n, nil
}

func (r *fakeJobRepo) WithTx(tx *gorm.DB) repositories.JobRepository { return r }

type fakeApplicationRepo struct {
	apps map[string]*models.Application
	jobs *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*models.Application), jobs: jobs}
}

func (r *fakeApplicationRepo) CreateForActiveJob(app *models.Application) error {
	job, ok := r.jobs.jobs[app.JobID]
	if !ok || job.Status == models.JobStatusDeleted {
		return repositories.ErrJobNotFound
	}
	if job.Status != models.JobStatusActive {
		return repositories.ErrJobNotOpen
	}
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.CandidateID == app.CandidateID {
			return repositories.ErrDuplicateApplication
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now().UTC()
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) FindByID(id string) (*models.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	cp := *app
	if j, ok := r.jobs.jobs[app.JobID]; ok {
		jc := *j
		cp.Job = &jc
	}
	return &cp, nil
}

func (r *fakeApplicationRepo) FindByCandidate(candidateID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.apps {
		if a.CandidateID == candidateID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByJob(jobID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) Update(app *models.Application) error {
	if _, ok := r.apps[app.ID]; !ok {
		return repositories.ErrApplicationNotFound
	}
	cp := *app
	cp.Job = nil
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) Delete(id string) error {
	if _, ok := r.apps[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) WithTx(tx *gorm.DB) repositories.ApplicationRepository { return r }

type fakeMailProvider struct {
	mu         sync.Mutex
	recoveries []string
}

// SendRecovery runs on a goroutine in the service, hence the lock.
func (p *fakeMailProvider) SendRecovery(_ context.Context, to string, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recoveries = append(p.recoveries, to)
	return nil
}

func (p *fakeMailProvider) sent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.recoveries)
}
