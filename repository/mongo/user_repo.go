package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/repository"
)

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a document-store backed UserRepository.
func NewUserRepository(coll *mongo.Collection) repository.UserRepository {
	return &userRepository{coll: coll}
}

// userDocument is the stored shape. _id is decoded raw because it may hold
// either an ObjectID or a string.
type userDocument struct {
	ID    bson.RawValue `bson:"_id"`
	Name  string        `bson:"name"`
	Email string        `bson:"email"`
	Role  string        `bson:"role"`
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, classify("List failed", err)
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, classify("List failed", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, classify("List failed", err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify("Lookup failed", err)
	}
	user := doc.toDomain()
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}

	doc := bson.D{}
	if user.ID != nil {
		doc = append(doc, bson.E{Key: "_id", Value: idValue(user.ID)})
	}
	doc = append(doc,
		bson.E{Key: "name", Value: user.Name},
		bson.E{Key: "email", Value: user.Email},
		bson.E{Key: "role", Value: user.Role},
	)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.WrapError(domain.ErrCodeConflict, "ID or Email already exists", err)
		}
		return nil, classify("Insert failed", err)
	}

	created := *user
	if created.ID == nil {
		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return nil, domain.NewError(domain.ErrCodeInternal, fmt.Sprintf("Insert failed: unexpected id type %T", res.InsertedID))
		}
		created.ID = domain.GeneratedID(oid)
	}
	return &created, nil
}

func (r *userRepository) Update(ctx context.Context, id domain.ID, patch domain.UserPatch) error {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *patch.Role})
	}
	if len(set) == 0 {
		return domain.ErrNoUpdatableFields
	}

	res, err := r.coll.UpdateOne(ctx, idFilter(id), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.WrapError(domain.ErrCodeConflict, "Email already exists", err)
		}
		return classify("Update failed", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return classify("Delete failed", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func idFilter(id domain.ID) bson.D {
	return bson.D{{Key: "_id", Value: idValue(id)}}
}

func idValue(id domain.ID) interface{} {
	switch v := id.(type) {
	case domain.GeneratedID:
		return v.ObjectID()
	case domain.CustomID:
		return string(v)
	default:
		return id.String()
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:    decodeID(d.ID),
		Name:  d.Name,
		Email: d.Email,
		Role:  d.Role,
	}
}

func decodeID(raw bson.RawValue) domain.ID {
	switch raw.Type {
	case bson.TypeObjectID:
		return domain.GeneratedID(raw.ObjectID())
	case bson.TypeString:
		return domain.CustomID(raw.StringValue())
	default:
		// ids written by other tools, rendered the way the shell prints them
		return domain.CustomID(raw.String())
	}
}

func classify(message string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrCodeUnavailable, message, err)
	}
	return domain.WrapError(domain.ErrCodeInternal, message, err)
}
