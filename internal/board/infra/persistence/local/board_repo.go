// Package local 用 gdata 把棋盘存到本机用户数据目录，单机/开发环境用，不需要任何数据库。
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"MergeIsland/internal/board/entity"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const boardObject = "boards"

type saveFile struct {
	Version  uint64          `yaml:"version"`
	Snapshot entity.Snapshot `yaml:"snapshot"`
}

type BoardRepository struct {
	m *gdata.Manager
}

func Open(appName string) (*BoardRepository, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open local save %q: %w", appName, err)
	}
	return NewBoardRepository(m), nil
}

func NewBoardRepository(m *gdata.Manager) *BoardRepository {
	return &BoardRepository{m: m}
}

func (r *BoardRepository) LoadSnapshot(ctx context.Context, id entity.BoardID) (*entity.BoardPersistSnapshot, error) {
	_ = ctx
	key, err := propKey(id)
	if err != nil {
		return nil, err
	}
	if !r.m.ObjectPropExists(boardObject, key) {
		return nil, entity.ErrSnapshotNotFound.WithData("board_id", string(id))
	}
	data, err := r.m.LoadObjectProp(boardObject, key)
	if err != nil {
		return nil, fmt.Errorf("load board %q: %w", id, err)
	}
	var f saveFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal board %q: %w", id, err)
	}
	return &entity.BoardPersistSnapshot{Version: f.Version, Snapshot: f.Snapshot}, nil
}

func (r *BoardRepository) Save(ctx context.Context, s *entity.BoardPersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	key, err := propKey(s.Snapshot.BoardID)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(saveFile{Version: s.Version, Snapshot: s.Snapshot})
	if err != nil {
		return fmt.Errorf("marshal board %q: %w", s.Snapshot.BoardID, err)
	}
	if err := r.m.SaveObjectProp(boardObject, key, data); err != nil {
		return fmt.Errorf("save board %q: %w", s.Snapshot.BoardID, err)
	}
	return nil
}

// propKey 直接用作文件名，只允许字母、数字、下划线和短横线。
func propKey(id entity.BoardID) (string, error) {
	key := string(id)
	if key == "" {
		return "", errors.New("board id is empty")
	}
	if strings.IndexFunc(key, func(c rune) bool {
		return !(c == '_' || c == '-' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'))
	}) >= 0 {
		return "", fmt.Errorf("board id %q is not a valid local save key", key)
	}
	return key, nil
}
