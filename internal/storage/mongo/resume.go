package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/honeycarbs/jobfeed/internal/domain"
	"github.com/honeycarbs/jobfeed/internal/domain/resume"
	"github.com/honeycarbs/jobfeed/internal/repository"
	pkgmongo "github.com/honeycarbs/jobfeed/pkg/mongo"
)

const defaultUserField = "userId"

var _ repository.ResumeRepository = (*ResumeRepository)(nil)

// ResumeRepository reads résumés from a MongoDB collection
type ResumeRepository struct {
	coll      *mongo.Collection
	userField string
}

// NewResumeRepository creates a ResumeRepository over the named collection.
// userField is the document field holding the owner id.
func NewResumeRepository(client *pkgmongo.Client, collection, userField string) *ResumeRepository {
	if userField == "" {
		userField = defaultUserField
	}
	return &ResumeRepository{
		coll:      client.Collection(collection),
		userField: userField,
	}
}

// FindByUserID loads every résumé owned by userID. The id is matched both
// as stored text and as an ObjectID when it has that shape.
func (r *ResumeRepository) FindByUserID(ctx context.Context, userID string) ([]domain.ResumeDocument, error) {
	opts := options.Find().SetProjection(bson.M{
		"_id":       1,
		r.userField: 1,
		"skills":    1,
		"summary":   1,
	})

	cursor, err := r.coll.Find(ctx, userFilter(r.userField, userID), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find resumes: %w", err)
	}
	defer cursor.Close(ctx)

	resumes := make([]domain.ResumeDocument, 0)
	for cursor.Next(ctx) {
		doc, err := decodeResume(cursor.Current, r.userField)
		if err != nil {
			continue
		}
		if doc.UserID == "" {
			doc.UserID = userID
		}
		resumes = append(resumes, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo: iterate resumes: %w", err)
	}

	return resumes, nil
}

func userFilter(field, userID string) bson.M {
	userID = strings.TrimSpace(userID)
	candidates := bson.A{userID}
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		candidates = append(candidates, oid)
	}
	return bson.M{field: bson.M{"$in": candidates}}
}

func decodeResume(raw bson.Raw, userField string) (domain.ResumeDocument, error) {
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return domain.ResumeDocument{}, fmt.Errorf("mongo: convert resume: %w", err)
	}

	doc, err := resume.Decode(data)
	if err != nil {
		return domain.ResumeDocument{}, err
	}

	if userField != defaultUserField {
		if v, err := raw.LookupErr(userField); err == nil {
			doc.UserID = rawIDString(v)
		}
	}
	return doc, nil
}

func rawIDString(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return ""
}
