package mysql

import (
	"context"
	"errors"
	"time"

	"MergeIsland/internal/board/app"
	"MergeIsland/internal/board/entity"
	"MergeIsland/internal/board/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepo struct {
	db *gorm.DB
}

func NewBoardRepo(db *gorm.DB) *BoardRepo {
	return &BoardRepo{db: db}
}

// Migrate 建表；只在启动时调用一次。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Board{}, &model.BoardItem{})
}

func (r *BoardRepo) WithTx(tx *gorm.DB) *BoardRepo {
	return &BoardRepo{
		db: tx,
	}
}

const OpLoadSnapshot = "repo.board.LoadSnapshot"

func (r *BoardRepo) LoadSnapshot(ctx context.Context, id entity.BoardID) (*entity.BoardPersistSnapshot, error) {
	var head model.Board
	err := r.db.WithContext(ctx).Where("board_id = ?", string(id)).First(&head).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, entity.ErrSnapshotNotFound.WithData("board_id", string(id))
	default:
		return nil, wrapInfra(OpLoadSnapshot, app.ReasonRepoLoadFail, err, id)
	}

	var items []model.BoardItem
	if err := r.db.WithContext(ctx).Where("board_id = ?", string(id)).Order("ord").Find(&items).Error; err != nil {
		return nil, wrapInfra(OpLoadSnapshot, app.ReasonRepoLoadFail, err, id)
	}
	return model.BoardRowsToSnapshot(head, items), nil
}

const OpSave = "repo.board.Save"

// Save 在一个事务里覆盖头表并重写物品行；比库里旧的版本直接丢弃。
func (r *BoardRepo) Save(ctx context.Context, s *entity.BoardPersistSnapshot) error {
	if s == nil {
		return nil
	}
	head, items := model.SnapshotToBoardRows(s, time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)
		stale, err := txRepo.isStale(ctx, head)
		if err != nil || stale {
			return err
		}
		if err := tx.Save(&head).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", head.BoardID).Delete(&model.BoardItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return wrapInfra(OpSave, app.ReasonRepoSaveFail, err, s.Snapshot.BoardID)
	}
	return nil
}

func (r *BoardRepo) isStale(ctx context.Context, head model.Board) (bool, error) {
	var cur model.Board
	err := lockVersion(r.db.WithContext(ctx), head.BoardID).First(&cur).Error
	switch {
	case err == nil:
		return cur.Version > head.Version, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

// lockVersion 在事务内用 SELECT ... FOR UPDATE 读版本，检查与写入之间不会插入并发写。
func lockVersion(db *gorm.DB, boardID string) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("version").
		Where("board_id = ?", boardID)
}

// wrapInfra 纯技术错误（连接超时等），包装后交给 dc 重试。
func wrapInfra(op string, reason app.Reason, err error, id entity.BoardID) error {
	return app.Wrap(app.CodeUnavailable, "mysql 访问失败", err).
		WithReason(reason).
		WithData("op", op).
		WithData("board_id", string(id))
}
