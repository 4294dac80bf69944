// Package policy holds the single authorization rule of the system:
// a ticket and its thread are readable and writable by the ticket's
// owner and by admins, nobody else.
package policy

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/models"
)

func CanAccessTicket(t *models.Ticket, requesterID bson.ObjectID, role string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return t.UserID == requesterID
}
