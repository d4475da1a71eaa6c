package models

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationIntroductionRequest NotificationType = "INTRODUCTION_REQUEST"
	NotificationIntroductionUpdate  NotificationType = "INTRODUCTION_UPDATE"
	NotificationCompanyClaimed      NotificationType = "COMPANY_CLAIMED"
	NotificationGeneral             NotificationType = "GENERAL"
)

var NotificationTypes = []NotificationType{
	NotificationIntroductionRequest,
	NotificationIntroductionUpdate,
	NotificationCompanyClaimed,
	NotificationGeneral,
}

func ParseNotificationType(s string) (NotificationType, bool) {
	t := NotificationType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range NotificationTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "UNREAD"
	NotificationRead   NotificationStatus = "READ"
)

func ParseNotificationStatus(s string) (NotificationStatus, bool) {
	switch st := NotificationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case NotificationUnread, NotificationRead:
		return st, true
	}
	return "", false
}

// Notification is an addressed message to ToUserID (MongoDB)
type Notification struct {
	NotificationID string             `json:"notification_id" bson:"notification_id"`
	FromUserID     string             `json:"from_user_id,omitempty" bson:"from_user_id,omitempty"`
	ToUserID       string             `json:"to_user_id" bson:"to_user_id"`
	ObjectID       string             `json:"object_id,omitempty" bson:"object_id,omitempty"`
	Type           NotificationType   `json:"notification_type" bson:"notification_type"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description" bson:"description"`
	RedirectionURL string             `json:"redirection_url" bson:"redirection_url"`
	Status         NotificationStatus `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// EnrichedNotification includes recipient and introduction info
type EnrichedNotification struct {
	Notification
	RecipientName      string             `json:"recipient_name,omitempty"`
	IntroductionStatus IntroductionStatus `json:"introduction_status,omitempty"`
}
