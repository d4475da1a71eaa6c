package services

import (
	"context"
	"strings"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/anonto42/introhub/backend/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	searchLimit     = 5
	statusFilterAll = "ALL"
)

// RequestIntroductionInput is the body of an introduction request.
type RequestIntroductionInput struct {
	IntroductionType   string `json:"introduction_type" validate:"required,oneof=GENERAL TARGET"`
	TargetType         string `json:"target_type" validate:"required_if=IntroductionType TARGET,omitempty,oneof=COMPANY INDIVIDUAL"`
	CompanyID          string `json:"company_id" validate:"required_if=TargetType COMPANY"`
	IndividualID       string `json:"individual_id" validate:"required_if=TargetType INDIVIDUAL"`
	Purpose            string `json:"purpose" validate:"required"`
	IntroductionMedium string `json:"introduction_medium" validate:"required"`
	ElaboratePurpose   string `json:"elaborate_purpose" validate:"required"`
	ValueOffer         string `json:"value_offer" validate:"required_if=IntroductionType GENERAL"`
}

// normalize trims every field, uppercases the enums and drops the fields
// that do not apply to the chosen type.
func (in *RequestIntroductionInput) normalize() {
	in.IntroductionType = strings.ToUpper(strings.TrimSpace(in.IntroductionType))
	in.TargetType = strings.ToUpper(strings.TrimSpace(in.TargetType))
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	in.IndividualID = strings.TrimSpace(in.IndividualID)
	in.Purpose = strings.TrimSpace(in.Purpose)
	in.IntroductionMedium = strings.TrimSpace(in.IntroductionMedium)
	in.ElaboratePurpose = strings.TrimSpace(in.ElaboratePurpose)
	in.ValueOffer = strings.TrimSpace(in.ValueOffer)

	switch models.IntroductionType(in.IntroductionType) {
	case models.IntroductionGeneral:
		in.TargetType, in.CompanyID, in.IndividualID = "", "", ""
	case models.IntroductionTarget:
		in.ValueOffer = ""
		switch models.TargetType(in.TargetType) {
		case models.TargetTypeCompany:
			in.IndividualID = ""
		case models.TargetTypeIndividual:
			in.CompanyID = ""
		}
	}
}

func (in *RequestIntroductionInput) target() models.Target {
	if models.IntroductionType(in.IntroductionType) != models.IntroductionTarget {
		return models.Target{}
	}
	if models.TargetType(in.TargetType) == models.TargetTypeCompany {
		return models.CompanyTarget(in.CompanyID)
	}
	return models.IndividualTarget(in.IndividualID)
}

type ListIntroductionsInput struct {
	Status             string `query:"status"`
	IntroductionFilter string `query:"introduction_filter"`
}

type UpdateIntroductionInput struct {
	IntroductionID string `json:"introduction_id" validate:"required"`
	Status         string `json:"status"`
}

// SearchResult groups the three capped search result sets.
type SearchResult struct {
	Recent     []models.IntroductionView `json:"recent"`
	Individual []models.IntroductionView `json:"individual"`
	Companies  []models.IntroductionView `json:"companies"`
}

// IntroductionService runs the introduction request workflow.
type IntroductionService struct {
	base
	introductions repositories.IntroductionRepository
	companies     repositories.CompanyRepository
	members       repositories.CompanyMemberRepository
	users         repositories.UserRepository
	validator     Validator
}

func NewIntroductionService(
	introductions repositories.IntroductionRepository,
	companies repositories.CompanyRepository,
	members repositories.CompanyMemberRepository,
	users repositories.UserRepository,
	validator Validator,
	opts ...Option,
) *IntroductionService {
	return &IntroductionService{
		base:          newBase(opts),
		introductions: introductions,
		companies:     companies,
		members:       members,
		users:         users,
		validator:     validator,
	}
}

// Request validates the input, checks the target exists and stores a new
// REQUESTED introduction owned by requester.
func (s *IntroductionService) Request(ctx context.Context, in RequestIntroductionInput, requester *models.User) (string, error) {
	in.normalize()
	if err := s.validator.Validate(in); err != nil {
		return "", err
	}

	target := in.target()
	switch target.Kind() {
	case models.TargetCompany:
		if _, err := s.companies.GetByID(ctx, target.ID()); err != nil {
			return "", notFoundOr(err, "Company does not exist")
		}
	case models.TargetIndividual:
		if _, err := s.users.GetUserByID(ctx, target.ID()); err != nil {
			return "", notFoundOr(err, "User does not exist")
		}
	}

	intro := models.NewIntroduction(models.NewIntroductionParams{
		ID:                 s.newID(),
		UserID:             requester.ID,
		Target:             target,
		Purpose:            in.Purpose,
		IntroductionMedium: in.IntroductionMedium,
		ElaboratePurpose:   in.ElaboratePurpose,
		ValueOffer:         in.ValueOffer,
		Now:                s.now(),
	})
	if err := s.introductions.Create(ctx, intro); err != nil {
		return "", apperrors.Internal(err)
	}

	logger.FromContext(ctx).Info("introduction requested",
		"introduction_id", intro.IntroductionID,
		"introduction_type", intro.IntroductionType,
	)
	return intro.IntroductionID, nil
}

// List returns the requester's introductions joined with display data.
// A RECEIVED status lists REQUESTED introductions targeting the requester,
// anything else lists introductions the requester created.
func (s *IntroductionService) List(ctx context.Context, in ListIntroductionsInput, requester *models.User) ([]models.IntroductionSummary, error) {
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	filter := strings.ToUpper(strings.TrimSpace(in.IntroductionFilter))

	q := repositories.IntroductionQuery{SortBy: repositories.SortByCreatedAt}

	switch filter {
	case "":
	case string(models.TargetTypeIndividual):
		q.Type = models.IntroductionGeneral
	case string(models.TargetTypeCompany):
		q.Type = models.IntroductionTarget
	default:
		return nil, apperrors.Validation("Invalid introduction filter")
	}

	switch status {
	case "", statusFilterAll:
		q.UserID = requester.ID
	default:
		parsed, ok := models.ParseIntroductionStatus(status)
		if !ok {
			return nil, apperrors.Validation("Invalid status value")
		}
		if parsed == models.StatusReceived {
			q.IndividualID = requester.ID
			q.Status = models.StatusRequested
		} else {
			q.UserID = requester.ID
			q.Status = parsed
		}
	}

	intros, err := s.introductions.Find(ctx, q)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(intros) == 0 {
		return nil, apperrors.NotFound("No introduction found")
	}

	return s.enrich(ctx, intros, requester.ID)
}

// enrich batch-fetches referenced users, companies and member counts and
// merges them into summaries.
func (s *IntroductionService) enrich(ctx context.Context, intros []models.Introduction, viewerID string) ([]models.IntroductionSummary, error) {
	userIDs := newIDSet(len(intros) * 2)
	companyIDs := newIDSet(len(intros))
	for _, intro := range intros {
		userIDs.add(intro.UserID)
		userIDs.add(intro.IndividualID)
		companyIDs.add(intro.CompanyID)
	}

	var (
		users     []models.User
		companies []models.Company
		counts    map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.GetUsersByIDs(gctx, userIDs.ids)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = s.companies.GetByIDs(gctx, companyIDs.ids)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.members.CountByCompanyIDs(gctx, companyIDs.ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal(err)
	}

	usersByID := make(map[string]models.UserCompact, len(users))
	for i := range users {
		usersByID[users[i].ID] = users[i].ToCompact()
	}
	companyNames := make(map[string]string, len(companies))
	for _, c := range companies {
		companyNames[c.CompanyID] = c.CompanyName
	}

	summaries := make([]models.IntroductionSummary, len(intros))
	for i := range intros {
		intro := &intros[i]
		summary := models.IntroductionSummary{IntroductionView: intro.View(viewerID)}
		if u, ok := usersByID[intro.UserID]; ok {
			summary.Requester = &u
		}
		if u, ok := usersByID[intro.IndividualID]; ok && intro.IndividualID != "" {
			summary.Individual = &u
		}
		if intro.CompanyID != "" {
			summary.CompanyName = companyNames[intro.CompanyID]
			summary.MemberCount = counts[intro.CompanyID]
		}
		summaries[i] = summary
	}
	return summaries, nil
}

// Search runs the recent, general and targeted queries concurrently, each
// capped at five results.
func (s *IntroductionService) Search(ctx context.Context, searchText string, requester *models.User) (*SearchResult, error) {
	queries := [3]repositories.IntroductionQuery{
		{InteractedOnly: true, SortBy: repositories.SortByLastInteracted},
		{Type: models.IntroductionGeneral, SortBy: repositories.SortByCreatedAt},
		{Type: models.IntroductionTarget, SortBy: repositories.SortByCreatedAt},
	}
	var results [3][]models.Introduction

	g, gctx := errgroup.WithContext(ctx)
	for i := range queries {
		q := queries[i]
		q.UserID = requester.ID
		q.SearchText = searchText
		q.Limit = searchLimit
		g.Go(func() error {
			intros, err := s.introductions.Find(gctx, q)
			results[i] = intros
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal(err)
	}

	if len(results[1]) == 0 && len(results[2]) == 0 {
		return nil, apperrors.NotFound("No introduction records found")
	}

	return &SearchResult{
		Recent:     views(results[0], requester.ID),
		Individual: views(results[1], requester.ID),
		Companies:  views(results[2], requester.ID),
	}, nil
}

// View returns the fixed projection of one introduction.
func (s *IntroductionService) View(ctx context.Context, id string, viewer *models.User) (*models.IntroductionView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation("%q is required", "introduction_id")
	}

	intro, err := s.introductions.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "No introduction found")
	}
	view := intro.View(viewer.ID)
	return &view, nil
}

// Update overwrites the status of an introduction. Any stored status may
// follow any other. last_interacted and updatedAt move only when the stored
// value actually changes.
func (s *IntroductionService) Update(ctx context.Context, in UpdateIntroductionInput) error {
	in.IntroductionID = strings.TrimSpace(in.IntroductionID)
	if err := s.validator.Validate(in); err != nil {
		return err
	}

	existing, err := s.introductions.GetByID(ctx, in.IntroductionID)
	if err != nil {
		return notFoundOr(err, "Introduction does not exist")
	}

	var status *models.IntroductionStatus
	if strings.TrimSpace(in.Status) != "" {
		parsed, ok := models.ParseIntroductionStatus(in.Status)
		if !ok || !parsed.Storable() {
			return apperrors.Validation("Invalid status value")
		}
		status = &parsed
	}

	if status == nil || *status == existing.Status {
		return nil
	}

	now := s.now()
	upd := repositories.IntroductionUpdate{
		Status:         status,
		LastInteracted: &now,
		UpdatedAt:      now,
	}
	if err := s.introductions.Update(ctx, in.IntroductionID, upd); err != nil {
		return notFoundOr(err, "Introduction does not exist")
	}

	logger.FromContext(ctx).Info("introduction updated",
		"introduction_id", in.IntroductionID,
		"from", existing.Status,
		"to", *status,
	)
	return nil
}

func views(intros []models.Introduction, viewerID string) []models.IntroductionView {
	out := make([]models.IntroductionView, len(intros))
	for i := range intros {
		out[i] = intros[i].View(viewerID)
	}
	return out
}

// idSet collects distinct non-empty ids in first seen order.
type idSet struct {
	ids  []string
	seen map[string]struct{}
}

func newIDSet(capacity int) *idSet {
	return &idSet{ids: make([]string, 0, capacity), seen: make(map[string]struct{}, capacity)}
}

func (s *idSet) add(id string) {
	if id == "" {
		return
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}
