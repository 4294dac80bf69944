package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"helpdesk/internal/database"
	"helpdesk/internal/models"
	"helpdesk/internal/repository"
)

type MessageRepo struct{ mgr *database.Manager }

func NewMessageRepo(mgr *database.Manager) repository.MessageRepository {
	return &MessageRepo{mgr: mgr}
}

func (r *MessageRepo) col(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.mgr.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("messages"), nil
}

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}
	m.CreatedAt = time.Now().UTC()
	if m.Attachments == nil {
		m.Attachments = []string{}
	}

	res, err := col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	m.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *MessageRepo) ListByTicket(ctx context.Context, ticketID bson.ObjectID) ([]models.Message, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "ticketId", Value: ticketID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "senderId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "sender"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$sender"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
