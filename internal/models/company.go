package models

import "time"

type CompanyStatus string

const (
	CompanyUnclaimed CompanyStatus = "UNCLAIMED"
	CompanyClaimed   CompanyStatus = "CLAIMED"
)

// Company is a directory entry. It starts UNCLAIMED and becomes CLAIMED
// once a member attaches to it.
type Company struct {
	CompanyID    string        `json:"company_id" bson:"company_id"`
	CompanyName  string        `json:"company_name" bson:"company_name"`
	Industry     string        `json:"industry,omitempty" bson:"industry,omitempty"`
	Email        string        `json:"email" bson:"email"`
	DocumentURL  string        `json:"document_url,omitempty" bson:"document_url,omitempty"`
	DocumentName string        `json:"document_name,omitempty" bson:"document_name,omitempty"`
	Status       CompanyStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
)

type CompanyMember struct {
	CompanyMemberID string       `json:"company_member_id" bson:"company_member_id"`
	CompanyID       string       `json:"company_id" bson:"company_id"`
	UserID          string       `json:"user_id" bson:"user_id"`
	Role            string       `json:"role" bson:"role"`
	AboutMe         string       `json:"about_me" bson:"about_me"`
	LookingFor      string       `json:"looking_for" bson:"looking_for"`
	ImageURL        string       `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Status          MemberStatus `json:"status" bson:"status"`
	CreatedAt       time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt" bson:"updatedAt"`
}
