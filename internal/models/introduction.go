package models

import (
	"strings"
	"time"
)

type IntroductionType string

const (
	IntroductionGeneral IntroductionType = "GENERAL"
	IntroductionTarget  IntroductionType = "TARGET"
)

type TargetType string

const (
	TargetTypeCompany    TargetType = "COMPANY"
	TargetTypeIndividual TargetType = "INDIVIDUAL"
)

type IntroductionStatus string

const (
	StatusRequested IntroductionStatus = "REQUESTED"
	StatusReceived  IntroductionStatus = "RECEIVED"
	StatusWithdraw  IntroductionStatus = "WITHDRAW"
	StatusAccepted  IntroductionStatus = "ACCEPTED"
	StatusDenied    IntroductionStatus = "DENIED"
	StatusCompleted IntroductionStatus = "COMPLETED"
	StatusMatched   IntroductionStatus = "MATCHED"
	StatusSuggested IntroductionStatus = "SUGGESTED"
)

// IntroductionStatuses is the canonical status set, RECEIVED included.
var IntroductionStatuses = []IntroductionStatus{
	StatusRequested,
	StatusReceived,
	StatusWithdraw,
	StatusAccepted,
	StatusDenied,
	StatusCompleted,
	StatusMatched,
	StatusSuggested,
}

// ParseIntroductionStatus normalizes s and reports whether it is a known status.
func ParseIntroductionStatus(s string) (IntroductionStatus, bool) {
	status := IntroductionStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range IntroductionStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// Storable reports whether the status may be written to the database.
// RECEIVED only exists at read time.
func (s IntroductionStatus) Storable() bool {
	return s != StatusReceived && s != ""
}

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCompany
	TargetIndividual
)

// Target is who a TARGET introduction is directed at. The zero value is
// TargetNone, used by GENERAL introductions.
type Target struct {
	kind TargetKind
	id   string
}

func CompanyTarget(companyID string) Target {
	return Target{kind: TargetCompany, id: companyID}
}

func IndividualTarget(userID string) Target {
	return Target{kind: TargetIndividual, id: userID}
}

func (t Target) Kind() TargetKind { return t.kind }
func (t Target) ID() string       { return t.id }

// Introduction is a request by UserID to be connected, either openly
// (GENERAL) or to a specific company or individual (TARGET).
type Introduction struct {
	IntroductionID     string             `json:"introduction_id" bson:"introduction_id"`
	UserID             string             `json:"user_id" bson:"user_id"`
	IntroductionType   IntroductionType   `json:"introduction_type" bson:"introduction_type"`
	TargetType         TargetType         `json:"target_type,omitempty" bson:"target_type,omitempty"`
	CompanyID          string             `json:"company_id,omitempty" bson:"company_id,omitempty"`
	IndividualID       string             `json:"individual_id,omitempty" bson:"individual_id,omitempty"`
	Purpose            string             `json:"purpose" bson:"purpose"`
	IntroductionMedium string             `json:"introduction_medium" bson:"introduction_medium"`
	ElaboratePurpose   string             `json:"elaborate_purpose" bson:"elaborate_purpose"`
	ValueOffer         string             `json:"value_offer,omitempty" bson:"value_offer,omitempty"`
	Status             IntroductionStatus `json:"status" bson:"status"`
	LastInteracted     *time.Time         `json:"last_interacted" bson:"last_interacted"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewIntroductionParams carries already validated request fields.
type NewIntroductionParams struct {
	ID                 string
	UserID             string
	Target             Target
	Purpose            string
	IntroductionMedium string
	ElaboratePurpose   string
	ValueOffer         string
	Now                time.Time
}

// NewIntroduction builds a REQUESTED introduction. A TargetNone target yields
// a GENERAL introduction carrying the value offer; any other target yields a
// TARGET introduction with exactly one of company/individual set.
func NewIntroduction(p NewIntroductionParams) *Introduction {
	intro := &Introduction{
		IntroductionID:     p.ID,
		UserID:             p.UserID,
		Purpose:            strings.TrimSpace(p.Purpose),
		IntroductionMedium: strings.TrimSpace(p.IntroductionMedium),
		ElaboratePurpose:   strings.TrimSpace(p.ElaboratePurpose),
		Status:             StatusRequested,
		CreatedAt:          p.Now,
		UpdatedAt:          p.Now,
	}

	switch p.Target.Kind() {
	case TargetCompany:
		intro.IntroductionType = IntroductionTarget
		intro.TargetType = TargetTypeCompany
		intro.CompanyID = strings.TrimSpace(p.Target.ID())
	case TargetIndividual:
		intro.IntroductionType = IntroductionTarget
		intro.TargetType = TargetTypeIndividual
		intro.IndividualID = strings.TrimSpace(p.Target.ID())
	default:
		intro.IntroductionType = IntroductionGeneral
		intro.ValueOffer = strings.TrimSpace(p.ValueOffer)
	}
	return intro
}

// Target reconstructs the target from the stored fields.
func (i *Introduction) Target() Target {
	if i.IntroductionType != IntroductionTarget {
		return Target{}
	}
	switch i.TargetType {
	case TargetTypeCompany:
		return CompanyTarget(i.CompanyID)
	case TargetTypeIndividual:
		return IndividualTarget(i.IndividualID)
	}
	return Target{}
}

// DisplayStatus is the status shown to viewerID. The targeted individual of
// a REQUESTED introduction sees RECEIVED. The stored value is never changed.
func DisplayStatus(intro *Introduction, viewerID string) IntroductionStatus {
	if intro.Status == StatusRequested && intro.IndividualID != "" && intro.IndividualID == viewerID {
		return StatusReceived
	}
	return intro.Status
}

// IntroductionView is the fixed projection returned for a single record.
type IntroductionView struct {
	IntroductionID     string             `json:"introduction_id"`
	IntroductionType   IntroductionType   `json:"introduction_type"`
	TargetType         TargetType         `json:"target_type,omitempty"`
	CompanyID          string             `json:"company_id,omitempty"`
	IndividualID       string             `json:"individual_id,omitempty"`
	Purpose            string             `json:"purpose"`
	IntroductionMedium string             `json:"introduction_medium"`
	ElaboratePurpose   string             `json:"elaborate_purpose"`
	ValueOffer         string             `json:"value_offer,omitempty"`
	LastInteracted     *time.Time         `json:"last_interacted"`
	Status             IntroductionStatus `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
}

func (i *Introduction) View(viewerID string) IntroductionView {
	return IntroductionView{
		IntroductionID:     i.IntroductionID,
		IntroductionType:   i.IntroductionType,
		TargetType:         i.TargetType,
		CompanyID:          i.CompanyID,
		IndividualID:       i.IndividualID,
		Purpose:            i.Purpose,
		IntroductionMedium: i.IntroductionMedium,
		ElaboratePurpose:   i.ElaboratePurpose,
		ValueOffer:         i.ValueOffer,
		LastInteracted:     i.LastInteracted,
		Status:             DisplayStatus(i, viewerID),
		CreatedAt:          i.CreatedAt,
	}
}

// IntroductionSummary is a list entry joined with display data of the
// requester and the target.
type IntroductionSummary struct {
	IntroductionView
	Requester   *UserCompact `json:"requester,omitempty"`
	Individual  *UserCompact `json:"individual,omitempty"`
	CompanyName string       `json:"company_name,omitempty"`
	MemberCount int64        `json:"member_count,omitempty"`
}
