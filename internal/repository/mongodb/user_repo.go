package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"helpdesk/internal/database"
	"helpdesk/internal/models"
	"helpdesk/internal/repository"
)

type UserRepo struct{ mgr *database.Manager }

func NewUserRepo(mgr *database.Manager) repository.UserRepository { return &UserRepo{mgr: mgr} }

func (r *UserRepo) col(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.mgr.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("users"), nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	res, err := col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrEmailTaken
		}
		return err
	}
	u.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
