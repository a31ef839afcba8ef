package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/course-api/internal/models"
)

// ==========================
// CourseRepo
// ==========================
type CourseRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{DB: db}
}

// ==========================
// List With Owners
// ==========================
// ListWithOwners returns every course joined with its owner's public
// fields. The result is never nil: an empty catalog yields an empty slice.
func (r *CourseRepo) ListWithOwners(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed,
		       u.id, u.first_name, u.last_name, u.email_address
		FROM courses c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.id
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		owner := &models.PublicUser{}
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.EstimatedTime, &c.MaterialsNeeded,
			&owner.ID, &owner.FirstName, &owner.LastName, &owner.EmailAddress,
		); err != nil {
			return nil, err
		}
		c.User = owner
		c.UserID = owner.ID
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// ==========================
// Get With Owner
// ==========================
func (r *CourseRepo) GetWithOwner(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed,
		       u.id, u.first_name, u.last_name, u.email_address
		FROM courses c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	c := &models.Course{}
	owner := &models.PublicUser{}

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.EstimatedTime, &c.MaterialsNeeded,
		&owner.ID, &owner.FirstName, &owner.LastName, &owner.EmailAddress,
	)

	if err != nil {
		return nil, err
	}

	c.User = owner
	c.UserID = owner.ID
	return c, nil
}

// ==========================
// List By Owner
// ==========================
// ListByOwner returns the courses owned by one user, without the owner
// nested (the caller already has the user).
func (r *CourseRepo) ListByOwner(ctx context.Context, userID int) ([]models.Course, error) {
	query := `
		SELECT id, title, description, estimated_time, materials_needed
		FROM courses
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.EstimatedTime, &c.MaterialsNeeded); err != nil {
			return nil, err
		}
		c.UserID = userID
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// ==========================
// Create Course
// ==========================
func (r *CourseRepo) Create(ctx context.Context, in models.CourseInput, userID int) (int, error) {
	query := `
		INSERT INTO courses (title, description, estimated_time, materials_needed, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int

	err := r.DB.QueryRowContext(ctx, query,
		in.Title, in.Description, in.EstimatedTime, in.MaterialsNeeded, userID,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

// ==========================
// Update Course
// ==========================
// Update rewrites the mutable fields of a course. Optional fields left
// out of the request arrive as nil and keep their stored value; title and
// description are validated upstream and always present. Ownership
// (user_id) is immutable and never touched here.
func (r *CourseRepo) Update(ctx context.Context, id int, in models.CourseInput) error {
	query := `
		UPDATE courses
		SET title = $1,
		    description = $2,
		    estimated_time = COALESCE($3, estimated_time),
		    materials_needed = COALESCE($4, materials_needed)
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(ctx, query,
		in.Title, in.Description, in.EstimatedTime, in.MaterialsNeeded, id,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ==========================
// Delete Course
// ==========================
func (r *CourseRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
