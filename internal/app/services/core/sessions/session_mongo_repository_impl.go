package sessions

import (
	"context"
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionMongoRepository struct {
	Collection *mongo.Collection
	Now        func() time.Time
}

func NewSessionMongoRepository(db *mongo.Database) contracts.SessionRepository {
	return &SessionMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionSessions),
		Now:        time.Now,
	}
}

func (repo *SessionMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repo.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "expiresAt", Value: 1}},
		},
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoCollectionSessions)
	}
	return nil
}

func (repo *SessionMongoRepository) CreateSession(ctx context.Context, userID models.UserID, email string, role models.Role, token string, expiresAt *int64) (models.SessionID, error) {
	session := models.Session{
		UserID:    userID,
		Email:     email,
		Role:      role,
		Token:     token,
		CreatedAt: repo.Now(),
		ExpiresAt: expiresAt,
	}
	result, err := repo.Collection.InsertOne(ctx, session)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return models.SessionID(result.InsertedID.(primitive.ObjectID).Hex()), nil
}

func (repo *SessionMongoRepository) FindSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := repo.Collection.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &session, nil
}

func (repo *SessionMongoRepository) DeleteSession(ctx context.Context, sessionID models.SessionID) error {
	objectID, err := primitive.ObjectIDFromHex(sessionID.String())
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *SessionMongoRepository) DeleteSessionsForEmail(ctx context.Context, email string) error {
	_, err := repo.Collection.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

// DeleteExpiredSessions removes rows whose expiresAt is at or before now.
// Sessions without expiresAt never expire and are kept.
func (repo *SessionMongoRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"expiresAt": bson.M{"$lte": now.UnixMilli()}}
	result, err := repo.Collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}
