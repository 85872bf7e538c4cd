package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
)

var (
	ErrNoProfile          = errors.New("there is no profile for this user")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("no experience found")
	ErrEducationNotFound  = errors.New("no education found")
)

var (
	profileMessages = map[string]string{
		"status": "Status is required",
		"skills": "Skills is required",
	}
	experienceMessages = map[string]string{
		"title":   "Title is required",
		"company": "company is required",
		"from":    "From date is required",
	}
	educationMessages = map[string]string{
		"school":       "School is required",
		"degree":       "Degree is required",
		"fieldofstudy": "Field of study is required",
		"from":         "From date is required",
	}
)

// ProfileService handles profile business logic.
type ProfileService struct {
	profiles *repository.ProfileRepository
	users    *repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles *repository.ProfileRepository, users *repository.UserRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// GetOwn returns the caller's profile with the owner joined in.
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*model.PopulatedProfile, error) {
	p, err := s.profiles.GetPopulatedByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrNoProfile
	}
	return p, err
}

// GetByUserID looks up a profile by its owner's ID. IDs that are not UUIDs are
// reported as ErrProfileNotFound, the same as a missing profile.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*model.PopulatedProfile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrProfileNotFound
	}

	p, err := s.profiles.GetPopulatedByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

// List returns every profile with owners joined in.
func (s *ProfileService) List(ctx context.Context) ([]model.PopulatedProfile, error) {
	return s.profiles.ListPopulated(ctx)
}

// Upsert creates the caller's profile or merges the supplied fields into the
// existing one. Empty optional fields leave stored values untouched; the social
// links are always replaced as a whole.
func (s *ProfileService) Upsert(ctx context.Context, userID string, req model.ProfileRequest) (*model.Profile, error) {
	if err := validateRequest(req, profileMessages); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return s.update(ctx, existing, req)
	case !errors.Is(err, repository.ErrProfileNotFound):
		return nil, err
	}

	p := &model.Profile{UserID: userID}
	applyProfileFields(p, req)

	err = s.profiles.Create(ctx, p)
	if errors.Is(err, repository.ErrDuplicateProfile) {
		// A concurrent request created it first; merge into that one instead.
		existing, err = s.profiles.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.update(ctx, existing, req)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) update(ctx context.Context, p *model.Profile, req model.ProfileRequest) (*model.Profile, error) {
	applyProfileFields(p, req)
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the caller's profile and then the caller's user record, and
// reports whether either existed.
func (s *ProfileService) Delete(ctx context.Context, userID string) (bool, error) {
	profileRemoved, err := s.profiles.DeleteByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("delete profile: %w", err)
	}

	userRemoved, err := s.users.Delete(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	return profileRemoved || userRemoved, nil
}

// AddExperience prepends an experience entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, req model.ExperienceRequest) (*model.Profile, error) {
	if err := validateRequest(req, experienceMessages); err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := model.Experience{
		ID:          newEntryID(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}
	p.Experience = append([]model.Experience{entry}, p.Experience...)

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience deletes the experience entry with entryID from the caller's profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*model.Profile, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range p.Experience {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrExperienceNotFound
	}

	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddEducation prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, req model.EducationRequest) (*model.Profile, error) {
	if err := validateRequest(req, educationMessages); err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := model.Education{
		ID:           newEntryID(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}
	p.Education = append([]model.Education{entry}, p.Education...)

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation deletes the education entry with entryID from the caller's profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*model.Profile, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range p.Education {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrEducationNotFound
	}

	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) ownProfile(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrNoProfile
	}
	return p, err
}

func applyProfileFields(p *model.Profile, req model.ProfileRequest) {
	setIfPresent(&p.Company, req.Company)
	setIfPresent(&p.Website, req.Website)
	setIfPresent(&p.Location, req.Location)
	setIfPresent(&p.Bio, req.Bio)
	setIfPresent(&p.Status, req.Status)
	setIfPresent(&p.GitHubUsername, req.GitHubUsername)
	if req.Skills != "" {
		p.Skills = splitSkills(req.Skills)
	}

	p.Social = model.Social{
		YouTube:   req.YouTube,
		Twitter:   req.Twitter,
		Facebook:  req.Facebook,
		LinkedIn:  req.LinkedIn,
		Instagram: req.Instagram,
	}
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// splitSkills turns "js, go , rust" into ["js", "go", "rust"].
func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseDateRange(fromStr, toStr string) (time.Time, *time.Time, error) {
	from, err := parseDate(fromStr)
	if err != nil {
		return time.Time{}, nil, fieldError("from", "From date is invalid")
	}
	if toStr == "" {
		return from, nil, nil
	}

	to, err := parseDate(toStr)
	if err != nil {
		return time.Time{}, nil, fieldError("to", "To date is invalid")
	}
	return from, &to, nil
}

func newEntryID() string {
	return uuid.NewString()
}
