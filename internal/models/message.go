package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Message struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketID    bson.ObjectID `bson:"ticketId" json:"ticketId"`
	SenderID    bson.ObjectID `bson:"senderId" json:"senderId"`
	MessageText string        `bson:"messageText" json:"messageText"`
	Attachments []string      `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`

	// Sender is populated by listings only.
	Sender *SenderSummary `bson:"sender,omitempty" json:"sender,omitempty"`
}

// SenderSummary identifies who wrote a message in a thread.
type SenderSummary struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Role      string `bson:"role" json:"role"`
}
