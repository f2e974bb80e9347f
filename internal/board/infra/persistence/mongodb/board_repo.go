package mongodb

import (
	"context"
	"errors"
	"time"

	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/board/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "board"

type BoardRepository struct {
	coll *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *BoardRepository) LoadSnapshot(ctx context.Context, id entity.BoardID) (*entity.BoardPersistSnapshot, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb board collection is nil")
	}

	var doc model.BoardDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err == nil {
		return model.BoardDocToSnapshot(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrSnapshotNotFound.WithData("board_id", string(id))
	}
	return nil, wrapInfra(app.ReasonRepoLoadFail, err, id)
}

func (r *BoardRepository) Save(ctx context.Context, s *entity.BoardPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb board collection is nil")
	}

	doc := model.SnapshotToBoardDoc(s, time.Now())
	// 只覆盖更旧的版本；库里版本更新时过滤不到，upsert 撞主键，按过期写入丢弃。
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.BoardID, "version": bson.M{"$lt": doc.Version}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err == nil || mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return wrapInfra(app.ReasonRepoSaveFail, err, s.Snapshot.BoardID)
}

func wrapInfra(reason app.Reason, err error, id entity.BoardID) error {
	return app.Wrap(app.CodeUnavailable, "mongodb 访问失败", err).
		WithReason(reason).
		WithData("board_id", string(id))
}
