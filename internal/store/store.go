// Package store persists resumes, vacancies and screening applications
// in PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashmnv/hh-screener/internal/matching"
	"github.com/ashmnv/hh-screener/internal/resume"
	"github.com/ashmnv/hh-screener/internal/vacancy"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates and verifies a connection pool for the given database URL.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS resumes (
	id           BIGSERIAL PRIMARY KEY,
	candidate_id BIGINT NOT NULL,
	file_name    TEXT NOT NULL DEFAULT '',
	profile      JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vacancies (
	id                  BIGSERIAL PRIMARY KEY,
	employer_id         BIGINT NOT NULL,
	title               TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	experience_required TEXT NOT NULL DEFAULT '',
	primary_skills      JSONB NOT NULL DEFAULT '{}',
	nice_to_have_skills JSONB NOT NULL DEFAULT '[]',
	salary_from         INT,
	salary_to           INT,
	work_format         TEXT NOT NULL DEFAULT '',
	employment_type     TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS applications (
	id             BIGSERIAL PRIMARY KEY,
	candidate_id   BIGINT NOT NULL,
	vacancy_id     BIGINT NOT NULL REFERENCES vacancies (id),
	resume_id      BIGINT NOT NULL REFERENCES resumes (id),
	initial_status TEXT NOT NULL,
	match_score    DOUBLE PRECISION NOT NULL DEFAULT 0,
	match_details  JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (candidate_id, vacancy_id, resume_id)
);
`

// EnsureSchema creates the tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// StoredResume is a resume row together with its decoded profile.
type StoredResume struct {
	ID          int64
	CandidateID int64
	FileName    string
	Profile     *resume.Profile
	CreatedAt   time.Time
}

// SaveResume stores the extracted profile for a candidate and returns the
// new resume id.
func (s *Store) SaveResume(ctx context.Context, candidateID int64, fileName string, p *resume.Profile) (int64, error) {
	raw, err := p.ToMap()
	if err != nil {
		return 0, fmt.Errorf("encode profile: %w", err)
	}

	var id int64
	err = s.pool.QueryRow(ctx,
		`INSERT INTO resumes (candidate_id, file_name, profile) VALUES ($1, $2, $3) RETURNING id`,
		candidateID, fileName, raw,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert resume: %w", err)
	}
	return id, nil
}

// GetResume loads a resume row and decodes its profile.
func (s *Store) GetResume(ctx context.Context, id int64) (*StoredResume, error) {
	var (
		r   StoredResume
		raw map[string]any
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, candidate_id, file_name, profile, created_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.CandidateID, &r.FileName, &raw, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select resume: %w", err)
	}

	r.Profile, err = resume.FromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("decode profile for resume %d: %w", id, err)
	}
	return &r, nil
}

// CreateVacancy stores a vacancy and returns its id. The vacancy is
// validated before insert.
func (s *Store) CreateVacancy(ctx context.Context, v *vacancy.Vacancy) (int64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}

	primary, err := json.Marshal(v.PrimarySkills)
	if err != nil {
		return 0, fmt.Errorf("encode primary skills: %w", err)
	}
	nice, err := json.Marshal(v.NiceToHaveSkills)
	if err != nil {
		return 0, fmt.Errorf("encode nice-to-have skills: %w", err)
	}

	var id int64
	err = s.pool.QueryRow(ctx,
		`INSERT INTO vacancies
			(employer_id, title, description, experience_required,
			 primary_skills, nice_to_have_skills,
			 salary_from, salary_to, work_format, employment_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		v.EmployerID, v.Title, v.Description, v.ExperienceRequired,
		primary, nice,
		v.SalaryFrom, v.SalaryTo, string(v.WorkFormat), string(v.EmploymentType),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert vacancy: %w", err)
	}
	return id, nil
}

// GetVacancy loads a vacancy by id.
func (s *Store) GetVacancy(ctx context.Context, id int64) (*vacancy.Vacancy, error) {
	var (
		v                   vacancy.Vacancy
		primary, nice       []byte
		workFmt, employment string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, employer_id, title, description, experience_required,
		        primary_skills, nice_to_have_skills,
		        salary_from, salary_to, work_format, employment_type
		   FROM vacancies WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.EmployerID, &v.Title, &v.Description, &v.ExperienceRequired,
		&primary, &nice,
		&v.SalaryFrom, &v.SalaryTo, &workFmt, &employment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select vacancy: %w", err)
	}

	if err := json.Unmarshal(primary, &v.PrimarySkills); err != nil {
		return nil, fmt.Errorf("decode primary skills for vacancy %d: %w", id, err)
	}
	if err := json.Unmarshal(nice, &v.NiceToHaveSkills); err != nil {
		return nil, fmt.Errorf("decode nice-to-have skills for vacancy %d: %w", id, err)
	}
	v.WorkFormat = vacancy.WorkFormat(workFmt)
	v.EmploymentType = vacancy.EmploymentType(employment)
	return &v, nil
}

// Application is a stored screening decision for one
// candidate/vacancy/resume triple.
type Application struct {
	ID            int64             `json:"id"`
	CandidateID   int64             `json:"candidate_id"`
	VacancyID     int64             `json:"vacancy_id"`
	ResumeID      int64             `json:"resume_id"`
	InitialStatus matching.Status   `json:"initial_status"`
	MatchScore    float64           `json:"match_score"`
	MatchDetails  *matching.Details `json:"match_details,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CreateApplication stores a screening result. The operation is
// idempotent: if an application for the same triple already exists it is
// returned unchanged and created is false.
func (s *Store) CreateApplication(ctx context.Context, candidateID, vacancyID, resumeID int64, res *matching.Result) (app *Application, created bool, err error) {
	app, err = s.findApplication(ctx, candidateID, vacancyID, resumeID)
	if err == nil {
		return app, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	var details []byte
	if res.Details != nil {
		details, err = json.Marshal(res.Details)
		if err != nil {
			return nil, false, fmt.Errorf("encode match details: %w", err)
		}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO applications
			(candidate_id, vacancy_id, resume_id, initial_status, match_score, match_details)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (candidate_id, vacancy_id, resume_id) DO NOTHING`,
		candidateID, vacancyID, resumeID, string(res.InitialStatus), res.MatchScore, details,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert application: %w", err)
	}

	// Reselect instead of RETURNING so a concurrent insert of the same
	// triple still yields one consistent row.
	app, err = s.findApplication(ctx, candidateID, vacancyID, resumeID)
	if err != nil {
		return nil, false, err
	}
	return app, true, nil
}

func (s *Store) findApplication(ctx context.Context, candidateID, vacancyID, resumeID int64) (*Application, error) {
	var (
		a       Application
		details []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, candidate_id, vacancy_id, resume_id, initial_status, match_score, match_details, created_at
		   FROM applications
		  WHERE candidate_id = $1 AND vacancy_id = $2 AND resume_id = $3`,
		candidateID, vacancyID, resumeID,
	).Scan(&a.ID, &a.CandidateID, &a.VacancyID, &a.ResumeID, &a.InitialStatus, &a.MatchScore, &details, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select application: %w", err)
	}

	if len(details) > 0 {
		a.MatchDetails = &matching.Details{}
		if err := json.Unmarshal(details, a.MatchDetails); err != nil {
			return nil, fmt.Errorf("decode match details for application %d: %w", a.ID, err)
		}
	}
	return &a, nil
}

// ApplicationsForVacancy lists applications for a vacancy, newest first.
// If statusFilter is non-empty only applications with that status are
// returned.
func (s *Store) ApplicationsForVacancy(ctx context.Context, vacancyID int64, statusFilter matching.Status) ([]Application, error) {
	const base = `
		SELECT id, candidate_id, vacancy_id, resume_id, initial_status, match_score, match_details, created_at
		  FROM applications
		 WHERE vacancy_id = $1`

	var (
		rows pgx.Rows
		err  error
	)
	if statusFilter != "" {
		rows, err = s.pool.Query(ctx, base+` AND initial_status = $2 ORDER BY created_at DESC`, vacancyID, string(statusFilter))
	} else {
		rows, err = s.pool.Query(ctx, base+` ORDER BY created_at DESC`, vacancyID)
	}
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]Application, 0)
	for rows.Next() {
		var (
			a       Application
			details []byte
		)
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.VacancyID, &a.ResumeID,
			&a.InitialStatus, &a.MatchScore, &details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		if len(details) > 0 {
			a.MatchDetails = &matching.Details{}
			if err := json.Unmarshal(details, a.MatchDetails); err != nil {
				return nil, fmt.Errorf("decode match details for application %d: %w", a.ID, err)
			}
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// UpdateApplicationStatus overwrites the status of an application, e.g.
// after a manual review.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status matching.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE applications SET initial_status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
