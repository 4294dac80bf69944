package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusResolved
}

type Ticket struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        bson.ObjectID  `bson:"userId" json:"userId"`
	AssignedTo    *bson.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Title         string         `bson:"title" json:"title"`
	Description   string         `bson:"description" json:"description"`
	Category      string         `bson:"category" json:"category"`
	Priority      string         `bson:"priority" json:"priority"` // low | medium | high
	Status        string         `bson:"status" json:"status"`     // open | in_progress | resolved
	Attachments   []string       `bson:"attachments" json:"attachments"`
	AISuggestions []string       `bson:"aiSuggestions" json:"aiSuggestions"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`

	// Owner is populated by the admin listing only.
	Owner *OwnerSummary `bson:"owner,omitempty" json:"owner,omitempty"`
}

// OwnerSummary is the denormalized ticket owner shown to admins.
type OwnerSummary struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
}
