package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIntroduction(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("general carries value offer and no target", func(t *testing.T) {
		intro := NewIntroduction(NewIntroductionParams{
			ID:                 "intro-1",
			UserID:             "u-1",
			Purpose:            "  Networking ",
			IntroductionMedium: "Email",
			ElaboratePurpose:   "Meet founders",
			ValueOffer:         " Mentorship ",
			Now:                now,
		})

		assert.Equal(t, IntroductionGeneral, intro.IntroductionType)
		assert.Equal(t, "Mentorship", intro.ValueOffer)
		assert.Equal(t, "Networking", intro.Purpose)
		assert.Empty(t, intro.TargetType)
		assert.Empty(t, intro.CompanyID)
		assert.Empty(t, intro.IndividualID)
		assert.Equal(t, StatusRequested, intro.Status)
		assert.Nil(t, intro.LastInteracted)
		assert.Equal(t, now, intro.CreatedAt)
		assert.Equal(t, TargetNone, intro.Target().Kind())
	})

	t.Run("company target drops value offer", func(t *testing.T) {
		intro := NewIntroduction(NewIntroductionParams{
			UserID:     "u-1",
			Target:     CompanyTarget(" c-1 "),
			ValueOffer: "ignored",
			Now:        now,
		})

		assert.Equal(t, IntroductionTarget, intro.IntroductionType)
		assert.Equal(t, TargetTypeCompany, intro.TargetType)
		assert.Equal(t, "c-1", intro.CompanyID)
		assert.Empty(t, intro.IndividualID)
		assert.Empty(t, intro.ValueOffer)
		assert.Equal(t, CompanyTarget("c-1"), intro.Target())
	})

	t.Run("individual target", func(t *testing.T) {
		intro := NewIntroduction(NewIntroductionParams{
			UserID: "u-1",
			Target: IndividualTarget("u-2"),
			Now:    now,
		})

		assert.Equal(t, TargetTypeIndividual, intro.TargetType)
		assert.Equal(t, "u-2", intro.IndividualID)
		assert.Empty(t, intro.CompanyID)
		assert.Equal(t, TargetIndividual, intro.Target().Kind())
		assert.Equal(t, "u-2", intro.Target().ID())
	})
}

func TestDisplayStatus(t *testing.T) {
	received := &Introduction{UserID: "u-1", IndividualID: "u-2", Status: StatusRequested}

	assert.Equal(t, StatusReceived, DisplayStatus(received, "u-2"))
	assert.Equal(t, StatusRequested, DisplayStatus(received, "u-1"))
	assert.Equal(t, StatusRequested, received.Status, "stored status must not change")

	accepted := &Introduction{UserID: "u-1", IndividualID: "u-2", Status: StatusAccepted}
	assert.Equal(t, StatusAccepted, DisplayStatus(accepted, "u-2"))

	general := &Introduction{UserID: "u-1", Status: StatusRequested}
	assert.Equal(t, StatusRequested, DisplayStatus(general, ""))

	assert.Equal(t, StatusReceived, received.View("u-2").Status)
}

func TestParseIntroductionStatus(t *testing.T) {
	s, ok := ParseIntroductionStatus(" accepted ")
	assert.True(t, ok)
	assert.Equal(t, StatusAccepted, s)

	_, ok = ParseIntroductionStatus("PENDING")
	assert.False(t, ok)

	s, ok = ParseIntroductionStatus("received")
	assert.True(t, ok)
	assert.False(t, s.Storable())
	assert.True(t, StatusWithdraw.Storable())
}

func TestParseNotificationEnums(t *testing.T) {
	nt, ok := ParseNotificationType("introduction_request")
	assert.True(t, ok)
	assert.Equal(t, NotificationIntroductionRequest, nt)

	_, ok = ParseNotificationType("LIKE")
	assert.False(t, ok)

	st, ok := ParseNotificationStatus("read")
	assert.True(t, ok)
	assert.Equal(t, NotificationRead, st)

	_, ok = ParseNotificationStatus("ARCHIVED")
	assert.False(t, ok)
}
