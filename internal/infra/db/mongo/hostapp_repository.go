package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainhostapp "stayhub/internal/domain/hostapp"
	"stayhub/internal/domain/shared/approval"
	domainuser "stayhub/internal/domain/user"
)

type HostApplicationRepository struct {
	col *mongo.Collection
}

func NewHostApplicationRepository(db *mongo.Database) *HostApplicationRepository {
	return &HostApplicationRepository{col: db.Collection("host_applications")}
}

func (r *HostApplicationRepository) ByID(ctx context.Context, id domainhostapp.ApplicationID) (*domainhostapp.Application, error) {
	var doc hostAppDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainhostapp.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *HostApplicationRepository) ByUser(ctx context.Context, userID domainuser.ID) ([]*domainhostapp.Application, error) {
	return r.find(ctx, bson.M{"user_id": string(userID)})
}

func (r *HostApplicationRepository) All(ctx context.Context) ([]*domainhostapp.Application, error) {
	return r.find(ctx, bson.M{})
}

func (r *HostApplicationRepository) Save(ctx context.Context, app *domainhostapp.Application) error {
	doc := newHostAppDocument(app)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *HostApplicationRepository) find(ctx context.Context, filter bson.M) ([]*domainhostapp.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainhostapp.Application
	for cursor.Next(ctx) {
		var doc hostAppDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type hostAppDocument struct {
	ID          string `bson:"_id"`
	UserID      string `bson:"user_id"`
	PhoneNumber string `bson:"phone_number"`
	Address     string `bson:"address"`
	City        string `bson:"city"`
	Motivation  string `bson:"motivation"`
	Experience  string `bson:"experience"`
	Status      string `bson:"status"`
	AdminNotes  string `bson:"admin_notes"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func newHostAppDocument(app *domainhostapp.Application) hostAppDocument {
	return hostAppDocument{
		ID:          string(app.ID),
		UserID:      string(app.UserID),
		PhoneNumber: app.PhoneNumber,
		Address:     app.Address,
		City:        app.City,
		Motivation:  app.Motivation,
		Experience:  app.Experience,
		Status:      string(app.Status),
		AdminNotes:  app.AdminNotes,
		CreatedAt:   app.CreatedAt.UnixMilli(),
		UpdatedAt:   app.UpdatedAt.UnixMilli(),
	}
}

func (d hostAppDocument) toAggregate() *domainhostapp.Application {
	return &domainhostapp.Application{
		ID:          domainhostapp.ApplicationID(d.ID),
		UserID:      domainuser.ID(d.UserID),
		PhoneNumber: d.PhoneNumber,
		Address:     d.Address,
		City:        d.City,
		Motivation:  d.Motivation,
		Experience:  d.Experience,
		Status:      approval.Status(d.Status),
		AdminNotes:  d.AdminNotes,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
	}
}
