package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/introhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CompanyMemberRepository interface {
	Create(ctx context.Context, member *models.CompanyMember) error
	CountByCompanyIDs(ctx context.Context, companyIDs []string) (map[string]int64, error)
}

type MongoCompanyMemberRepository struct {
	collection *mongo.Collection
}

func NewMongoCompanyMemberRepository(db *mongo.Database) *MongoCompanyMemberRepository {
	return &MongoCompanyMemberRepository{collection: db.Collection(CompanyMemberCollection)}
}

func (r *MongoCompanyMemberRepository) Create(ctx context.Context, member *models.CompanyMember) error {
	if _, err := r.collection.InsertOne(ctx, member); err != nil {
		return fmt.Errorf("inserting company member: %w", err)
	}
	return nil
}

// CountByCompanyIDs counts active members per company. Companies without
// members are absent from the result.
func (r *MongoCompanyMemberRepository) CountByCompanyIDs(ctx context.Context, companyIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(companyIDs))
	if len(companyIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"company_id": bson.M{"$in": companyIDs},
			"status":     models.MemberActive,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$company_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		CompanyID string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CompanyID] = row.Count
	}
	return counts, nil
}
