package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-backend/internal/domain"
)

type messageRepo struct {
	db Database
}

func NewMessageRepository(db Database) domain.MessageRepository {
	return &messageRepo{db: db}
}

// messageFilter matches the inbox filters; search is a case-insensitive
// substring match over the text fields.
func messageFilter(q domain.MessageQuery) bson.M {
	filter := bson.M{}
	if q.Unread {
		filter["read"] = false
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"subject": re},
			bson.M{"content": re},
		}
	}
	return filter
}

func (r *messageRepo) Create(ctx context.Context, m *domain.Message) error {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return err
	}
	_, err = coll.InsertOne(ctx, m)
	return translateError(err)
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return nil, err
	}

	var m domain.Message
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (r *messageRepo) List(ctx context.Context, q domain.MessageQuery) ([]domain.Message, int64, error) {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return nil, 0, err
	}

	filter := messageFilter(q)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := coll.Find(ctx, filter, findOptions(domain.MessageSortFields, q.ListQuery))
	if err != nil {
		return nil, 0, err
	}
	messages := []domain.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *messageRepo) CountUnread(ctx context.Context) (int64, error) {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{"read": false})
}

func (r *messageRepo) LatestUnread(ctx context.Context, limit int) ([]domain.Message, error) {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := coll.Find(ctx, bson.M{"read": false}, opts)
	if err != nil {
		return nil, err
	}
	messages := []domain.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, ids []string) (int64, error) {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return 0, err
	}

	res, err := coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *messageRepo) MarkAllRead(ctx context.Context) (int64, error) {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return 0, err
	}

	res, err := coll.UpdateMany(ctx, bson.M{"read": false}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *messageRepo) Delete(ctx context.Context, id string) error {
	coll, err := collection(ctx, r.db, messageCollection)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
