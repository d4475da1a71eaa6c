package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anonto42/introhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SortByCreatedAt      = "createdAt"
	SortByLastInteracted = "last_interacted"
)

// IntroductionQuery narrows a listing. Zero fields are not filtered on.
type IntroductionQuery struct {
	UserID         string
	IndividualID   string
	Status         models.IntroductionStatus
	Type           models.IntroductionType
	InteractedOnly bool
	SearchText     string
	SortBy         string
	Limit          int64
}

// IntroductionUpdate holds the fields written by an update. Nil pointers
// are left untouched.
type IntroductionUpdate struct {
	Status         *models.IntroductionStatus
	LastInteracted *time.Time
	UpdatedAt      time.Time
}

// IntroductionRepository defines the interface for introduction data operations
type IntroductionRepository interface {
	Create(ctx context.Context, intro *models.Introduction) error
	GetByID(ctx context.Context, id string) (*models.Introduction, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Introduction, error)
	Find(ctx context.Context, q IntroductionQuery) ([]models.Introduction, error)
	Update(ctx context.Context, id string, upd IntroductionUpdate) error
}

// MongoIntroductionRepository implements IntroductionRepository for MongoDB
type MongoIntroductionRepository struct {
	collection *mongo.Collection
}

func NewMongoIntroductionRepository(db *mongo.Database) *MongoIntroductionRepository {
	return &MongoIntroductionRepository{collection: db.Collection(IntroductionCollection)}
}

func (r *MongoIntroductionRepository) Create(ctx context.Context, intro *models.Introduction) error {
	if _, err := r.collection.InsertOne(ctx, intro); err != nil {
		return fmt.Errorf("inserting introduction: %w", err)
	}
	return nil
}

func (r *MongoIntroductionRepository) GetByID(ctx context.Context, id string) (*models.Introduction, error) {
	var intro models.Introduction
	err := r.collection.FindOne(ctx, bson.M{"introduction_id": id}).Decode(&intro)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &intro, nil
}

func (r *MongoIntroductionRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Introduction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"introduction_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var intros []models.Introduction
	if err = cursor.All(ctx, &intros); err != nil {
		return nil, err
	}
	return intros, nil
}

// Find returns matching introductions, newest first by q.SortBy.
func (r *MongoIntroductionRepository) Find(ctx context.Context, q IntroductionQuery) ([]models.Introduction, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	findOptions := options.Find().SetSort(bson.D{{Key: sortBy, Value: -1}})
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, BuildIntroductionFilter(q), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var intros []models.Introduction
	if err = cursor.All(ctx, &intros); err != nil {
		return nil, err
	}
	return intros, nil
}

func (r *MongoIntroductionRepository) Update(ctx context.Context, id string, upd IntroductionUpdate) error {
	set := bson.M{"updatedAt": upd.UpdatedAt}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.LastInteracted != nil {
		set["last_interacted"] = *upd.LastInteracted
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"introduction_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// BuildIntroductionFilter translates q into a MongoDB filter document.
func BuildIntroductionFilter(q IntroductionQuery) bson.M {
	filter := bson.M{}
	if q.UserID != "" {
		filter["user_id"] = q.UserID
	}
	if q.IndividualID != "" {
		filter["individual_id"] = q.IndividualID
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Type != "" {
		filter["introduction_type"] = q.Type
	}
	if q.InteractedOnly {
		filter["last_interacted"] = bson.M{"$ne": nil}
	}
	if text := strings.TrimSpace(q.SearchText); text != "" {
		re := containsRegex(text)
		filter["$or"] = bson.A{
			bson.M{"purpose": re},
			bson.M{"introduction_medium": re},
			bson.M{"elaborate_purpose": re},
			bson.M{"value_offer": re},
		}
	}
	return filter
}

// containsRegex matches text literally anywhere, ignoring case.
func containsRegex(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}
