package repository

import (
	"context"
	"errors"
	"fmt"

	"careerlink/internal/database"
	dbpostgres "careerlink/internal/database/postgres"
	"careerlink/internal/domain/student"

	"github.com/google/uuid"
)

var (
	ErrStudentProfileNotFound = errors.New("student profile not found")
	ErrEducationNotFound      = errors.New("education not found")
	ErrSkillNotFound          = errors.New("skill not found")
	ErrExperienceNotFound     = errors.New("experience not found")
)

type StudentProfileRepository interface {
	Create(ctx context.Context, userID uuid.UUID) (student.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (student.Profile, error)
	// GetOrCreate returns the profile of userID, creating an empty one first
	// when the user has none.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (student.Profile, error)

	UpdatePersonalDetails(ctx context.Context, profileID uuid.UUID, d student.PersonalDetails) error
	SetProfileImage(ctx context.Context, profileID uuid.UUID, path string) error
	SetUploadedResume(ctx context.Context, profileID uuid.UUID, path string) error
	SetGeneratedResume(ctx context.Context, profileID uuid.UUID, text string) error

	AddEducation(ctx context.Context, profileID uuid.UUID, e student.Education) error
	UpdateEducation(ctx context.Context, profileID uuid.UUID, e student.Education) error
	DeleteEducation(ctx context.Context, profileID, id uuid.UUID) error

	AddSkill(ctx context.Context, profileID uuid.UUID, s student.Skill) error
	UpdateSkill(ctx context.Context, profileID uuid.UUID, s student.Skill) error
	DeleteSkill(ctx context.Context, profileID, id uuid.UUID) error

	AddExperience(ctx context.Context, profileID uuid.UUID, e student.Experience) error
	UpdateExperience(ctx context.Context, profileID uuid.UUID, e student.Experience) error
	DeleteExperience(ctx context.Context, profileID, id uuid.UUID) error

	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

const studentProfileColumns = `id, user_id, first_name, last_name, phone, address, profile_image,
	resume_generated, resume_uploaded, created_at, updated_at`

type PostgresStudentProfileRepository struct {
	db database.DB
}

func NewPostgresStudentProfileRepository(db database.DB) *PostgresStudentProfileRepository {
	return &PostgresStudentProfileRepository{db: db}
}

func (r *PostgresStudentProfileRepository) Create(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	row := database.Conn(ctx, r.db).QueryRow(
		ctx,
		`INSERT INTO student_profiles (id, user_id) VALUES ($1, $2) RETURNING `+studentProfileColumns,
		uuid.New(), userID,
	)
	p, err := scanStudentProfile(row)
	if err != nil {
		return student.Profile{}, fmt.Errorf("insert student profile: %w", err)
	}
	return p, nil
}

func (r *PostgresStudentProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	return r.get(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
}

func (r *PostgresStudentProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (student.Profile, error) {
	return r.get(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE id = $1`, id)
}

func (r *PostgresStudentProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	_, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`INSERT INTO student_profiles (id, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		uuid.New(), userID,
	)
	if err != nil {
		return student.Profile{}, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *PostgresStudentProfileRepository) get(ctx context.Context, query string, arg uuid.UUID) (student.Profile, error) {
	q := database.Conn(ctx, r.db)
	p, err := scanStudentProfile(q.QueryRow(ctx, query, arg))
	if err != nil {
		return student.Profile{}, err
	}
	if err := loadStudentChildren(ctx, q, &p); err != nil {
		return student.Profile{}, err
	}
	return p, nil
}

func (r *PostgresStudentProfileRepository) UpdatePersonalDetails(ctx context.Context, profileID uuid.UUID, d student.PersonalDetails) error {
	return r.update(ctx,
		`UPDATE student_profiles SET first_name = $2, last_name = $3, phone = $4, address = $5, updated_at = now() WHERE id = $1`,
		profileID, d.FirstName, d.LastName, d.Phone, d.Address,
	)
}

func (r *PostgresStudentProfileRepository) SetProfileImage(ctx context.Context, profileID uuid.UUID, path string) error {
	return r.update(ctx, `UPDATE student_profiles SET profile_image = $2, updated_at = now() WHERE id = $1`, profileID, path)
}

func (r *PostgresStudentProfileRepository) SetUploadedResume(ctx context.Context, profileID uuid.UUID, path string) error {
	return r.update(ctx, `UPDATE student_profiles SET resume_uploaded = $2, updated_at = now() WHERE id = $1`, profileID, path)
}

func (r *PostgresStudentProfileRepository) SetGeneratedResume(ctx context.Context, profileID uuid.UUID, text string) error {
	return r.update(ctx, `UPDATE student_profiles SET resume_generated = $2, updated_at = now() WHERE id = $1`, profileID, text)
}

func (r *PostgresStudentProfileRepository) update(ctx context.Context, query string, args ...any) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentProfileNotFound
	}
	return nil
}

func (r *PostgresStudentProfileRepository) AddEducation(ctx context.Context, profileID uuid.UUID, e student.Education) error {
	_, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`INSERT INTO educations (id, profile_id, institute, degree, cgpa, passing_year, position)
		 VALUES ($1, $2, $3, $4, $5, $6, (SELECT COALESCE(MAX(position), 0) + 1 FROM educations WHERE profile_id = $2))`,
		e.ID, profileID, e.Institute, string(e.Degree), e.CGPA, e.PassingYear,
	)
	return err
}

func (r *PostgresStudentProfileRepository) UpdateEducation(ctx context.Context, profileID uuid.UUID, e student.Education) error {
	return r.child(ctx, ErrEducationNotFound,
		`UPDATE educations SET institute = $3, degree = $4, cgpa = $5, passing_year = $6 WHERE id = $1 AND profile_id = $2`,
		e.ID, profileID, e.Institute, string(e.Degree), e.CGPA, e.PassingYear,
	)
}

func (r *PostgresStudentProfileRepository) DeleteEducation(ctx context.Context, profileID, id uuid.UUID) error {
	return r.child(ctx, ErrEducationNotFound, `DELETE FROM educations WHERE id = $1 AND profile_id = $2`, id, profileID)
}

func (r *PostgresStudentProfileRepository) AddSkill(ctx context.Context, profileID uuid.UUID, s student.Skill) error {
	_, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`INSERT INTO student_skills (id, profile_id, skill, years_of_experience, related_projects, position)
		 VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(position), 0) + 1 FROM student_skills WHERE profile_id = $2))`,
		s.ID, profileID, s.Skill, s.YearsOfExperience, s.RelatedProjects,
	)
	return err
}

func (r *PostgresStudentProfileRepository) UpdateSkill(ctx context.Context, profileID uuid.UUID, s student.Skill) error {
	return r.child(ctx, ErrSkillNotFound,
		`UPDATE student_skills SET skill = $3, years_of_experience = $4, related_projects = $5 WHERE id = $1 AND profile_id = $2`,
		s.ID, profileID, s.Skill, s.YearsOfExperience, s.RelatedProjects,
	)
}

func (r *PostgresStudentProfileRepository) DeleteSkill(ctx context.Context, profileID, id uuid.UUID) error {
	return r.child(ctx, ErrSkillNotFound, `DELETE FROM student_skills WHERE id = $1 AND profile_id = $2`, id, profileID)
}

func (r *PostgresStudentProfileRepository) AddExperience(ctx context.Context, profileID uuid.UUID, e student.Experience) error {
	_, err := database.Conn(ctx, r.db).Exec(
		ctx,
		`INSERT INTO experiences (id, profile_id, company_name, role, position_title, start_date, end_date, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, (SELECT COALESCE(MAX(position), 0) + 1 FROM experiences WHERE profile_id = $2))`,
		e.ID, profileID, e.CompanyName, e.Role, e.Position, e.StartDate, e.EndDate,
	)
	return err
}

func (r *PostgresStudentProfileRepository) UpdateExperience(ctx context.Context, profileID uuid.UUID, e student.Experience) error {
	return r.child(ctx, ErrExperienceNotFound,
		`UPDATE experiences SET company_name = $3, role = $4, position_title = $5, start_date = $6, end_date = $7
		 WHERE id = $1 AND profile_id = $2`,
		e.ID, profileID, e.CompanyName, e.Role, e.Position, e.StartDate, e.EndDate,
	)
}

func (r *PostgresStudentProfileRepository) DeleteExperience(ctx context.Context, profileID, id uuid.UUID) error {
	return r.child(ctx, ErrExperienceNotFound, `DELETE FROM experiences WHERE id = $1 AND profile_id = $2`, id, profileID)
}

func (r *PostgresStudentProfileRepository) child(ctx context.Context, notFound error, query string, args ...any) error {
	n, err := database.Conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// DeleteByUserID removes the profile with its education, skill and experience
// rows. Applications are removed by the caller first.
func (r *PostgresStudentProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	q := database.Conn(ctx, r.db)
	stmts := []string{
		`DELETE FROM educations WHERE profile_id IN (SELECT id FROM student_profiles WHERE user_id = $1)`,
		`DELETE FROM student_skills WHERE profile_id IN (SELECT id FROM student_profiles WHERE user_id = $1)`,
		`DELETE FROM experiences WHERE profile_id IN (SELECT id FROM student_profiles WHERE user_id = $1)`,
		`DELETE FROM student_profiles WHERE user_id = $1`,
	}
	for _, s := range stmts {
		if _, err := q.Exec(ctx, s, userID); err != nil {
			return err
		}
	}
	return nil
}

func scanStudentProfile(row database.Row) (student.Profile, error) {
	var p student.Profile
	err := row.Scan(
		&p.ID, &p.UserID,
		&p.PersonalDetails.FirstName, &p.PersonalDetails.LastName, &p.PersonalDetails.Phone,
		&p.PersonalDetails.Address, &p.PersonalDetails.ProfileImage,
		&p.Resume.Generated, &p.Resume.Uploaded,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return student.Profile{}, ErrStudentProfileNotFound
		}
		return student.Profile{}, err
	}
	return p, nil
}

func loadStudentChildren(ctx context.Context, q database.Querier, p *student.Profile) error {
	p.Education = make([]student.Education, 0)
	p.Skills = make([]student.Skill, 0)
	p.Experience = make([]student.Experience, 0)

	rows, err := q.Query(ctx,
		`SELECT id, institute, degree, cgpa, passing_year FROM educations WHERE profile_id = $1 ORDER BY position, created_at`,
		p.ID,
	)
	if err != nil {
		return err
	}
	for rows.Next() {
		var e student.Education
		var degree string
		if err := rows.Scan(&e.ID, &e.Institute, &degree, &e.CGPA, &e.PassingYear); err != nil {
			rows.Close()
			return err
		}
		e.Degree = student.Degree(degree)
		p.Education = append(p.Education, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx,
		`SELECT id, skill, years_of_experience, related_projects FROM student_skills WHERE profile_id = $1 ORDER BY position, created_at`,
		p.ID,
	)
	if err != nil {
		return err
	}
	for rows.Next() {
		var s student.Skill
		if err := rows.Scan(&s.ID, &s.Skill, &s.YearsOfExperience, &s.RelatedProjects); err != nil {
			rows.Close()
			return err
		}
		p.Skills = append(p.Skills, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx,
		`SELECT id, company_name, role, position_title, start_date, end_date FROM experiences WHERE profile_id = $1 ORDER BY position, created_at`,
		p.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e student.Experience
		if err := rows.Scan(&e.ID, &e.CompanyName, &e.Role, &e.Position, &e.StartDate, &e.EndDate); err != nil {
			return err
		}
		p.Experience = append(p.Experience, e)
	}
	return rows.Err()
}
