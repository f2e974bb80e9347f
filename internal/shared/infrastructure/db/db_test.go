package db

import (
	"testing"

	"MergeIsland/internal/shared/serverconfig"
)

func TestDSN_默认字符集(t *testing.T) {
	got := DSN(serverconfig.MySQLConfig{User: "root", Password: "pw", Host: "127.0.0.1", Port: 3306, DBName: "merge"})
	want := "root:pw@tcp(127.0.0.1:3306)/merge?charset=utf8mb4&parseTime=True&loc=Local"
	if got != want {
		t.Fatalf("DSN 不符 want=%s got=%s", want, got)
	}
}

func TestDSN_指定字符集(t *testing.T) {
	got := DSN(serverconfig.MySQLConfig{User: "u", Host: "db", Port: 1, DBName: "d", Charset: "utf8"})
	want := "u:@tcp(db:1)/d?charset=utf8&parseTime=True&loc=Local"
	if got != want {
		t.Fatalf("DSN 不符 want=%s got=%s", want, got)
	}
}
