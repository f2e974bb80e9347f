package mongo

import (
	"testing"

	"MergeIsland/internal/shared/serverconfig"
)

func TestOpen_缺少配置直接失败(t *testing.T) {
	if _, _, err := Open(serverconfig.MongoDBConfig{}, nil); err == nil {
		t.Fatalf("期望 uri 为空时失败")
	}
	if _, _, err := Open(serverconfig.MongoDBConfig{URI: "mongodb://127.0.0.1:27017"}, nil); err == nil {
		t.Fatalf("期望 database 为空时失败")
	}
}
