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

const notificationPageSize = 4

type AddNotificationInput struct {
	ToUserID         string `json:"to_user_id" validate:"required"`
	NotificationType string `json:"notification_type" validate:"required"`
	ObjectID         string `json:"object_id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	RedirectionURL   string `json:"redirection_url"`
}

type ListNotificationsInput struct {
	ViewAll          bool   `query:"view_all"`
	NotificationType string `query:"notification_type"`
}

type UpdateNotificationsInput struct {
	NotificationID string `json:"notification_id"`
	Status         string `json:"status"`
	MarkAllAsRead  bool   `json:"mark_all_as_read"`
}

// NotificationListResult is a page of the requester's notifications and the
// counts shown next to it.
type NotificationListResult struct {
	Notifications      []models.EnrichedNotification `json:"notifications"`
	UnreadCount        int64                         `json:"unread_count"`
	IntroductionCounts int                           `json:"introduction_counts"`
}

// NotificationService handles notification related business logic
type NotificationService struct {
	base
	notifications repositories.NotificationRepository
	introductions repositories.IntroductionRepository
	users         repositories.UserRepository
	validator     Validator
}

func NewNotificationService(
	notifications repositories.NotificationRepository,
	introductions repositories.IntroductionRepository,
	users repositories.UserRepository,
	validator Validator,
	opts ...Option,
) *NotificationService {
	return &NotificationService{
		base:          newBase(opts),
		notifications: notifications,
		introductions: introductions,
		users:         users,
		validator:     validator,
	}
}

// Add stores an UNREAD notification from sender to in.ToUserID.
func (s *NotificationService) Add(ctx context.Context, in AddNotificationInput, sender *models.User) (string, error) {
	in.ToUserID = strings.TrimSpace(in.ToUserID)
	in.NotificationType = strings.TrimSpace(in.NotificationType)
	in.ObjectID = strings.TrimSpace(in.ObjectID)
	if err := s.validator.Validate(in); err != nil {
		return "", err
	}

	notificationType, ok := models.ParseNotificationType(in.NotificationType)
	if !ok {
		return "", apperrors.Validation("%q must be one of [%s]", "notification_type", joinTypes())
	}

	if notificationType == models.NotificationIntroductionRequest && in.ObjectID == "" {
		return "", apperrors.Validation("%q is required", "object_id")
	}
	if in.ObjectID != "" {
		if _, err := s.introductions.GetByID(ctx, in.ObjectID); err != nil {
			return "", notFoundOr(err, "Introduction does not exist")
		}
	}

	if _, err := s.users.GetUserByID(ctx, in.ToUserID); err != nil {
		return "", notFoundOr(err, "User does not exist")
	}

	now := s.now()
	n := &models.Notification{
		NotificationID: s.newID(),
		FromUserID:     sender.ID,
		ToUserID:       in.ToUserID,
		ObjectID:       in.ObjectID,
		Type:           notificationType,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		RedirectionURL: strings.TrimSpace(in.RedirectionURL),
		Status:         models.NotificationUnread,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return "", apperrors.Internal(err)
	}

	logger.FromContext(ctx).Info("notification sent",
		"notification_id", n.NotificationID,
		"notification_type", n.Type,
		"to_user_id", n.ToUserID,
	)
	return n.NotificationID, nil
}

// List returns the newest notifications addressed to requester, four unless
// ViewAll is set, together with the unread total.
func (s *NotificationService) List(ctx context.Context, in ListNotificationsInput, requester *models.User) (*NotificationListResult, error) {
	q := repositories.NotificationQuery{ToUserID: requester.ID}
	if !in.ViewAll {
		q.Limit = notificationPageSize
	}
	if strings.TrimSpace(in.NotificationType) != "" {
		t, ok := models.ParseNotificationType(in.NotificationType)
		if !ok {
			return nil, apperrors.Validation("%q must be one of [%s]", "notification_type", joinTypes())
		}
		q.Type = t
	}

	var (
		page   []models.Notification
		unread int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.notifications.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = s.notifications.CountUnread(gctx, requester.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal(err)
	}

	if len(page) == 0 {
		return nil, apperrors.NotFound("No notification found")
	}

	var introIDs []string
	for _, n := range page {
		if n.ObjectID != "" {
			introIDs = append(introIDs, n.ObjectID)
		}
	}
	statuses := make(map[string]models.IntroductionStatus, len(introIDs))
	if len(introIDs) > 0 {
		intros, err := s.introductions.GetByIDs(ctx, introIDs)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		for i := range intros {
			statuses[intros[i].IntroductionID] = models.DisplayStatus(&intros[i], requester.ID)
		}
	}

	result := &NotificationListResult{
		Notifications: make([]models.EnrichedNotification, len(page)),
		UnreadCount:   unread,
	}
	recipient := requester.FullName()
	for i, n := range page {
		result.Notifications[i] = models.EnrichedNotification{
			Notification:       n,
			RecipientName:      recipient,
			IntroductionStatus: statuses[n.ObjectID],
		}
		if n.Type == models.NotificationIntroductionRequest {
			result.IntroductionCounts++
		}
	}
	return result, nil
}

// Update flips read state. With MarkAllAsRead every UNREAD notification of
// requester becomes READ and the other fields are ignored; otherwise one
// notification is updated. It returns the number of records changed.
func (s *NotificationService) Update(ctx context.Context, in UpdateNotificationsInput, requester *models.User) (int64, error) {
	now := s.now()

	if in.MarkAllAsRead {
		n, err := s.notifications.MarkAllAsRead(ctx, requester.ID, now)
		if err != nil {
			return 0, apperrors.Internal(err)
		}
		logger.FromContext(ctx).Info("notifications marked as read", "count", n)
		return n, nil
	}

	id := strings.TrimSpace(in.NotificationID)
	if id == "" {
		return 0, apperrors.Validation("%q is required", "notification_id")
	}

	var status *models.NotificationStatus
	if strings.TrimSpace(in.Status) != "" {
		parsed, ok := models.ParseNotificationStatus(in.Status)
		if !ok {
			return 0, apperrors.Validation("%q must be one of [%s, %s]", "status", models.NotificationRead, models.NotificationUnread)
		}
		status = &parsed
	}

	existing, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return 0, notFoundOr(err, "Notification does not exist")
	}
	if existing.ToUserID != requester.ID {
		return 0, apperrors.NotFound("Notification does not exist")
	}

	if err := s.notifications.UpdateStatus(ctx, id, status, now); err != nil {
		return 0, notFoundOr(err, "Notification does not exist")
	}
	return 1, nil
}

func joinTypes() string {
	names := make([]string, len(models.NotificationTypes))
	for i, t := range models.NotificationTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
