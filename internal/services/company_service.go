package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/cache"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/anonto42/introhub/backend/internal/storage"
	"github.com/anonto42/introhub/backend/pkg/logger"
)

const (
	companyListCachePrefix = "companies:"
	companyDocumentPrefix  = "company-documents"
	memberImagePrefix      = "member-images"
)

type AddCompanyInput struct {
	CompanyName string `json:"company_name" form:"company_name" validate:"required"`
	Industry    string `json:"industry" form:"industry"`
	Email       string `json:"email" form:"email" validate:"required,email"`
}

func (in *AddCompanyInput) normalize() {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Industry = strings.TrimSpace(in.Industry)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

type AddCompanyMemberInput struct {
	CompanyID  string `json:"company_id" form:"company_id" validate:"required"`
	Role       string `json:"role" form:"role" validate:"required"`
	AboutMe    string `json:"about_me" form:"about_me" validate:"required"`
	LookingFor string `json:"looking_for" form:"looking_for" validate:"required"`
}

// ImportResult reports what a bulk import did.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// CompanyService manages the company directory and its members.
type CompanyService struct {
	base
	companies repositories.CompanyRepository
	members   repositories.CompanyMemberRepository
	storage   storage.Storage
	cache     *cache.TTLCache[[]models.Company]
	validator Validator
}

func NewCompanyService(
	companies repositories.CompanyRepository,
	members repositories.CompanyMemberRepository,
	store storage.Storage,
	listCache *cache.TTLCache[[]models.Company],
	validator Validator,
	opts ...Option,
) *CompanyService {
	return &CompanyService{
		base:      newBase(opts),
		companies: companies,
		members:   members,
		storage:   store,
		cache:     listCache,
		validator: validator,
	}
}

// Add registers a company. Each uploaded document produces its own
// UNCLAIMED row; without documents a single row is stored.
func (s *CompanyService) Add(ctx context.Context, in AddCompanyInput, docs []Upload) ([]string, error) {
	in.normalize()
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	if err := s.ensureNameFree(ctx, in.CompanyName); err != nil {
		return nil, err
	}

	now := s.now()
	newCompany := func() models.Company {
		return models.Company{
			CompanyID:   s.newID(),
			CompanyName: in.CompanyName,
			Industry:    in.Industry,
			Email:       in.Email,
			Status:      models.CompanyUnclaimed,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	var (
		rows []models.Company
		keys []string
	)
	if len(docs) == 0 {
		rows = append(rows, newCompany())
	}
	for _, doc := range docs {
		key := storage.ObjectKey(companyDocumentPrefix, doc.Filename)
		url, err := s.storage.Save(ctx, key, doc.Body, doc.ContentType)
		if err != nil {
			s.discard(ctx, keys...)
			return nil, apperrors.Internal(err)
		}
		keys = append(keys, key)

		c := newCompany()
		c.DocumentURL = url
		c.DocumentName = doc.Filename
		rows = append(rows, c)
	}

	if err := s.companies.CreateMany(ctx, rows); err != nil {
		s.discard(ctx, keys...)
		return nil, apperrors.Internal(err)
	}
	s.cache.DeletePrefix(companyListCachePrefix)

	ids := make([]string, len(rows))
	for i, c := range rows {
		ids[i] = c.CompanyID
	}
	logger.FromContext(ctx).Info("company added", "company_name", in.CompanyName, "rows", len(rows))
	return ids, nil
}

// List returns companies whose name contains searchText. Results are cached
// per search text until the TTL expires or a company write invalidates them.
func (s *CompanyService) List(ctx context.Context, searchText string) ([]models.Company, error) {
	text := strings.TrimSpace(searchText)
	key := companyListCachePrefix + strings.ToLower(text)

	companies, err := s.cache.GetOrSet(key, func() ([]models.Company, error) {
		return s.companies.List(ctx, text)
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(companies) == 0 {
		return nil, apperrors.NotFound("No company found")
	}
	return companies, nil
}

// AddMember attaches requester to a company, claiming it if it was still
// unclaimed.
func (s *CompanyService) AddMember(ctx context.Context, in AddCompanyMemberInput, image *Upload, requester *models.User) (string, error) {
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	in.Role = strings.TrimSpace(in.Role)
	in.AboutMe = strings.TrimSpace(in.AboutMe)
	in.LookingFor = strings.TrimSpace(in.LookingFor)
	if err := s.validator.Validate(in); err != nil {
		return "", err
	}

	company, err := s.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return "", notFoundOr(err, "Company does not exist")
	}

	now := s.now()
	member := &models.CompanyMember{
		CompanyMemberID: s.newID(),
		CompanyID:       company.CompanyID,
		UserID:          requester.ID,
		Role:            in.Role,
		AboutMe:         in.AboutMe,
		LookingFor:      in.LookingFor,
		Status:          models.MemberActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	var imageKey string
	if image != nil {
		imageKey = storage.ObjectKey(memberImagePrefix, image.Filename)
		url, err := s.storage.Save(ctx, imageKey, image.Body, image.ContentType)
		if err != nil {
			return "", apperrors.Internal(err)
		}
		member.ImageURL = url
	}

	if err := s.members.Create(ctx, member); err != nil {
		if imageKey != "" {
			s.discard(ctx, imageKey)
		}
		return "", apperrors.Internal(err)
	}

	if company.Status != models.CompanyClaimed {
		if err := s.companies.UpdateStatus(ctx, company.CompanyID, models.CompanyClaimed, now); err != nil {
			return "", apperrors.Internal(err)
		}
		logger.FromContext(ctx).Info("company claimed", "company_id", company.CompanyID)
	}
	s.cache.DeletePrefix(companyListCachePrefix)

	return member.CompanyMemberID, nil
}

// Import bulk inserts UNCLAIMED companies, skipping invalid rows and names
// that already exist or repeat within the batch.
func (s *CompanyService) Import(ctx context.Context, rows []AddCompanyInput) (*ImportResult, error) {
	result := &ImportResult{}
	seen := make(map[string]struct{}, len(rows))
	now := s.now()

	var batch []models.Company
	for _, in := range rows {
		in.normalize()
		if err := s.validator.Validate(in); err != nil {
			logger.FromContext(ctx).Warn("skipping company row", "company_name", in.CompanyName, "error", err)
			result.Skipped++
			continue
		}

		name := strings.ToLower(in.CompanyName)
		if _, dup := seen[name]; dup {
			result.Skipped++
			continue
		}
		seen[name] = struct{}{}

		if err := s.ensureNameFree(ctx, in.CompanyName); err != nil {
			if apperrors.Is(err, apperrors.KindConflict) {
				result.Skipped++
				continue
			}
			return nil, err
		}

		batch = append(batch, models.Company{
			CompanyID:   s.newID(),
			CompanyName: in.CompanyName,
			Industry:    in.Industry,
			Email:       in.Email,
			Status:      models.CompanyUnclaimed,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if len(batch) > 0 {
		if err := s.companies.CreateMany(ctx, batch); err != nil {
			return nil, apperrors.Internal(err)
		}
		s.cache.DeletePrefix(companyListCachePrefix)
	}
	result.Inserted = len(batch)
	return result, nil
}

// discard removes uploads whose owning record was never written.
func (s *CompanyService) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.FromContext(ctx).Warn("removing orphaned upload", "key", key, "error", err)
		}
	}
}

func (s *CompanyService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.companies.GetByName(ctx, name)
	switch {
	case err == nil:
		return apperrors.Conflict("Company already exists")
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return apperrors.Internal(err)
	}
}
