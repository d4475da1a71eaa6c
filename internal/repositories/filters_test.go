package repositories

import (
	"testing"

	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildIntroductionFilter(t *testing.T) {
	tests := []struct {
		name  string
		query IntroductionQuery
		want  bson.M
	}{
		{
			name:  "created by requester",
			query: IntroductionQuery{UserID: "u-1"},
			want:  bson.M{"user_id": "u-1"},
		},
		{
			name:  "received by requester",
			query: IntroductionQuery{IndividualID: "u-1", Status: models.StatusRequested},
			want:  bson.M{"individual_id": "u-1", "status": models.StatusRequested},
		},
		{
			name:  "recently interacted general",
			query: IntroductionQuery{UserID: "u-1", Type: models.IntroductionGeneral, InteractedOnly: true},
			want: bson.M{
				"user_id":           "u-1",
				"introduction_type": models.IntroductionGeneral,
				"last_interacted":   bson.M{"$ne": nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildIntroductionFilter(tt.query))
		})
	}
}

func TestBuildIntroductionFilter_SearchTextIsQuoted(t *testing.T) {
	filter := BuildIntroductionFilter(IntroductionQuery{UserID: "u-1", SearchText: "  c++ (beta) "})

	or, ok := filter["$or"].(bson.A)
	if assert.True(t, ok) && assert.Len(t, or, 4) {
		re := primitive.Regex{Pattern: `c\+\+ \(beta\)`, Options: "i"}
		assert.Equal(t, bson.M{"purpose": re}, or[0])
		assert.Equal(t, bson.M{"introduction_medium": re}, or[1])
		assert.Equal(t, bson.M{"elaborate_purpose": re}, or[2])
		assert.Equal(t, bson.M{"value_offer": re}, or[3])
	}
}

func TestBuildIntroductionFilter_BlankSearchIgnored(t *testing.T) {
	filter := BuildIntroductionFilter(IntroductionQuery{UserID: "u-1", SearchText: "   "})
	assert.NotContains(t, filter, "$or")
}

func TestBuildNotificationFilter(t *testing.T) {
	assert.Equal(t, bson.M{"to_user_id": "u-1"}, BuildNotificationFilter(NotificationQuery{ToUserID: "u-1"}))
	assert.Equal(t,
		bson.M{"to_user_id": "u-1", "notification_type": models.NotificationIntroductionRequest},
		BuildNotificationFilter(NotificationQuery{ToUserID: "u-1", Type: models.NotificationIntroductionRequest, Limit: 4}),
	)
}
