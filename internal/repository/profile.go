package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/devconnector/devconnector-go/internal/model"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDuplicateProfile = errors.New("profile already exists for user")
)

// ProfileRepository handles profile persistence operations.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileRow struct {
	ID             string                         `db:"id"`
	UserID         string                         `db:"user_id"`
	Company        string                         `db:"company"`
	Website        string                         `db:"website"`
	Location       string                         `db:"location"`
	Status         string                         `db:"status"`
	GitHubUsername string                         `db:"githubusername"`
	Bio            string                         `db:"bio"`
	Skills         jsonColumn[[]string]           `db:"skills"`
	Social         jsonColumn[model.Social]       `db:"social"`
	Experience     jsonColumn[[]model.Experience] `db:"experience"`
	Education      jsonColumn[[]model.Education]  `db:"education"`
}

type populatedRow struct {
	profileRow
	OwnerID     sql.NullString `db:"owner_id"`
	OwnerName   sql.NullString `db:"owner_name"`
	OwnerAvatar sql.NullString `db:"owner_avatar"`
}

const profileColumns = `p.id AS id, p.user_id AS user_id, p.company AS company, p.website AS website,
	p.location AS location, p.status AS status, p.githubusername AS githubusername, p.bio AS bio,
	p.skills AS skills, p.social AS social, p.experience AS experience, p.education AS education`

const selectProfile = `SELECT ` + profileColumns + ` FROM profiles p`

const selectPopulated = `SELECT ` + profileColumns + `,
	u.id AS owner_id, u.name AS owner_name, u.avatar AS owner_avatar
	FROM profiles p LEFT JOIN users u ON u.id = p.user_id`

// Create inserts a new profile. A second profile for the same user fails with
// ErrDuplicateProfile.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		p.ID = id.String()
	}
	p.Skills = nonNil(p.Skills)
	p.Experience = nonNil(p.Experience)
	p.Education = nonNil(p.Education)

	query := `INSERT INTO profiles
		(id, user_id, company, website, location, status, githubusername, bio, skills, social, experience, education)
		VALUES
		(:id, :user_id, :company, :website, :location, :status, :githubusername, :bio, :skills, :social, :experience, :education)`

	if _, err := r.db.NamedExecContext(ctx, query, toRow(p)); err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateProfile
		}
		return err
	}
	return nil
}

// Update overwrites every stored field of the profile owned by p.UserID.
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `UPDATE profiles SET
		company = :company, website = :website, location = :location, status = :status,
		githubusername = :githubusername, bio = :bio, skills = :skills, social = :social,
		experience = :experience, education = :education
		WHERE user_id = :user_id`

	_, err := r.db.NamedExecContext(ctx, query, toRow(p))
	return err
}

// GetByUserID retrieves the profile owned by userID without joining the owner.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var row profileRow
	if err := r.db.GetContext(ctx, &row, selectProfile+` WHERE p.user_id = ?`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	p := row.toModel()
	return &p, nil
}

// GetPopulatedByUserID retrieves the profile owned by userID with the owner's
// name and avatar joined in.
func (r *ProfileRepository) GetPopulatedByUserID(ctx context.Context, userID string) (*model.PopulatedProfile, error) {
	var row populatedRow
	if err := r.db.GetContext(ctx, &row, selectPopulated+` WHERE p.user_id = ?`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	p := row.toModel()
	return &p, nil
}

// ListPopulated returns every profile in creation order with owners joined in.
func (r *ProfileRepository) ListPopulated(ctx context.Context) ([]model.PopulatedProfile, error) {
	var rows []populatedRow
	if err := r.db.SelectContext(ctx, &rows, selectPopulated+` ORDER BY p.id`); err != nil {
		return nil, err
	}

	profiles := make([]model.PopulatedProfile, len(rows))
	for i, row := range rows {
		profiles[i] = row.toModel()
	}
	return profiles, nil
}

// DeleteByUserID removes the profile owned by userID and reports whether one existed.
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func toRow(p *model.Profile) profileRow {
	return profileRow{
		ID:             p.ID,
		UserID:         p.UserID,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		GitHubUsername: p.GitHubUsername,
		Bio:            p.Bio,
		Skills:         jsonColumn[[]string]{V: nonNil(p.Skills)},
		Social:         jsonColumn[model.Social]{V: p.Social},
		Experience:     jsonColumn[[]model.Experience]{V: nonNil(p.Experience)},
		Education:      jsonColumn[[]model.Education]{V: nonNil(p.Education)},
	}
}

func (row profileRow) toModel() model.Profile {
	return model.Profile{
		ID:             row.ID,
		UserID:         row.UserID,
		Company:        row.Company,
		Website:        row.Website,
		Location:       row.Location,
		Status:         row.Status,
		GitHubUsername: row.GitHubUsername,
		Bio:            row.Bio,
		Skills:         nonNil(row.Skills.V),
		Social:         row.Social.V,
		Experience:     nonNil(row.Experience.V),
		Education:      nonNil(row.Education.V),
	}
}

func (row populatedRow) toModel() model.PopulatedProfile {
	p := model.PopulatedProfile{Profile: row.profileRow.toModel()}
	if row.OwnerID.Valid {
		p.User = &model.UserSummary{
			ID:     row.OwnerID.String,
			Name:   row.OwnerName.String,
			Avatar: row.OwnerAvatar.String,
		}
	}
	return p
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
