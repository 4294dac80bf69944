package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"helpdesk/internal/database"
	"helpdesk/internal/models"
	"helpdesk/internal/repository"
)

type TicketRepo struct{ mgr *database.Manager }

func NewTicketRepo(mgr *database.Manager) repository.TicketRepository { return &TicketRepo{mgr: mgr} }

func (r *TicketRepo) col(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.mgr.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("tickets"), nil
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	if t.AISuggestions == nil {
		t.AISuggestions = []string{}
	}

	res, err := col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	t.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *TicketRepo) Get(ctx context.Context, id bson.ObjectID) (*models.Ticket, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	var t models.Ticket
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]models.Ticket, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{"userId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Ticket{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll joins the owner for the admin view; tickets whose owner no
// longer resolves still come back, with Owner left nil.
func (r *TicketRepo) ListAll(ctx context.Context) ([]models.Ticket, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []models.Ticket{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TicketRepo) SetStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Ticket, error) {
	if !models.ValidStatus(status) {
		return nil, repository.ErrInvalidStatus
	}
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	var t models.Ticket
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
