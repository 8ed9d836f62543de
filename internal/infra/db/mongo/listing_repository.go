package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlisting "stayhub/internal/domain/listing"
	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/shared/money"
)

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("listings")}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlisting.ListingID) (*domainlisting.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlisting.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) Save(ctx context.Context, l *domainlisting.Listing) error {
	doc := newListingDocument(l)
	filter := bson.M{"_id": doc.ID, "version": l.Version}
	doc.Version = l.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	out, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if out.MatchedCount == 0 && out.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	l.Version = doc.Version
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id domainlisting.ListingID) error {
	out, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if out.DeletedCount == 0 {
		return domainlisting.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) List(ctx context.Context, q domainlisting.Query) ([]*domainlisting.Listing, error) {
	filter := bson.M{}
	if q.OnlyApproved {
		filter["approval"] = string(approval.StatusApproved)
	}
	if q.Host != "" {
		filter["host_id"] = string(q.Host)
	}
	if q.City != "" {
		filter["city"] = bson.M{"$regex": "^" + q.City + "$", "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainlisting.Listing
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type listingDocument struct {
	ID          string `bson:"_id"`
	HostID      string `bson:"host_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Address     string `bson:"address"`
	City        string `bson:"city"`
	RateCents   int64  `bson:"rate_cents"`
	Currency    string `bson:"currency"`
	MaxGuests   int    `bson:"max_guests"`
	PhotoURL    string `bson:"photo_url"`
	Approval    string `bson:"approval"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
	Version     int64  `bson:"version"`
}

func newListingDocument(l *domainlisting.Listing) listingDocument {
	return listingDocument{
		ID:          string(l.ID),
		HostID:      string(l.Host),
		Title:       l.Title,
		Description: l.Description,
		Address:     l.Address,
		City:        l.City,
		RateCents:   l.PricePerNight.Amount,
		Currency:    l.PricePerNight.Currency,
		MaxGuests:   l.MaxGuests,
		PhotoURL:    l.PhotoURL,
		Approval:    string(l.Approval),
		CreatedAt:   l.CreatedAt.UnixMilli(),
		UpdatedAt:   l.UpdatedAt.UnixMilli(),
		Version:     l.Version,
	}
}

func (d listingDocument) toAggregate() *domainlisting.Listing {
	return &domainlisting.Listing{
		ID:            domainlisting.ListingID(d.ID),
		Host:          domainlisting.HostID(d.HostID),
		Title:         d.Title,
		Description:   d.Description,
		Address:       d.Address,
		City:          d.City,
		PricePerNight: money.Money{Amount: d.RateCents, Currency: d.Currency},
		MaxGuests:     d.MaxGuests,
		PhotoURL:      d.PhotoURL,
		Approval:      approval.Status(d.Approval),
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
		Version:       d.Version,
	}
}
