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

// CompanyRepository defines the interface for company directory operations
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	CreateMany(ctx context.Context, companies []models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Company, error)
	List(ctx context.Context, searchText string) ([]models.Company, error)
	UpdateStatus(ctx context.Context, id string, status models.CompanyStatus, at time.Time) error
}

type MongoCompanyRepository struct {
	collection *mongo.Collection
}

func NewMongoCompanyRepository(db *mongo.Database) *MongoCompanyRepository {
	return &MongoCompanyRepository{collection: db.Collection(CompanyCollection)}
}

func (r *MongoCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	if _, err := r.collection.InsertOne(ctx, company); err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (r *MongoCompanyRepository) CreateMany(ctx context.Context, companies []models.Company) error {
	if len(companies) == 0 {
		return nil
	}
	docs := make([]interface{}, len(companies))
	for i := range companies {
		docs[i] = companies[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("inserting companies: %w", err)
	}
	return nil
}

func (r *MongoCompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	return r.findOne(ctx, bson.M{"company_id": id})
}

// GetByName matches the whole name ignoring case.
func (r *MongoCompanyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	re := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$", Options: "i"}
	return r.findOne(ctx, bson.M{"company_name": re})
}

func (r *MongoCompanyRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"company_id": bson.M{"$in": ids}}, options.Find())
}

// List returns companies sorted by name, optionally narrowed to names
// containing searchText.
func (r *MongoCompanyRepository) List(ctx context.Context, searchText string) ([]models.Company, error) {
	filter := bson.M{}
	if text := strings.TrimSpace(searchText); text != "" {
		filter["company_name"] = containsRegex(text)
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "company_name", Value: 1}}))
}

func (r *MongoCompanyRepository) UpdateStatus(ctx context.Context, id string, status models.CompanyStatus, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"company_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCompanyRepository) findOne(ctx context.Context, filter bson.M) (*models.Company, error) {
	var company models.Company
	if err := r.collection.FindOne(ctx, filter).Decode(&company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *MongoCompanyRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Company, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []models.Company
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}
