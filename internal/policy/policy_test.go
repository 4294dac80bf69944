package policy

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"helpdesk/internal/models"
)

func TestCanAccessTicket(t *testing.T) {
	owner := bson.NewObjectID()
	stranger := bson.NewObjectID()
	admin := bson.NewObjectID()
	ticket := &models.Ticket{UserID: owner}

	cases := []struct {
		name      string
		requester bson.ObjectID
		role      string
		want      bool
	}{
		{"owner", owner, models.RoleUser, true},
		{"stranger", stranger, models.RoleUser, false},
		{"admin non-owner", admin, models.RoleAdmin, true},
		{"owner who is admin", owner, models.RoleAdmin, true},
		{"stranger with unknown role", stranger, "supervisor", false},
	}
	for _, c := range cases {
		if got := CanAccessTicket(ticket, c.requester, c.role); got != c.want {
			t.Fatalf("%s: CanAccessTicket = %v, want %v", c.name, got, c.want)
		}
	}
}
