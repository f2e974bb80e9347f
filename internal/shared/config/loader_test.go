package config

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Board struct {
		Size   int    `mapstructure:"size"`
		Policy string `mapstructure:"production_policy"`
	} `mapstructure:"board"`
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir err=%v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write err=%v", err)
	}
	return p
}

func TestLoadFile_读取yml(t *testing.T) {
	p := writeFile(t, t.TempDir(), "conf.yml", "board:\n  size: 7\n  production_policy: timed\n")
	var s sample
	if err := LoadFile(p, &s); err != nil {
		t.Fatalf("LoadFile err=%v", err)
	}
	if s.Board.Size != 7 || s.Board.Policy != "timed" {
		t.Fatalf("期望 size=7 policy=timed, got=%+v", s.Board)
	}
}

func TestLoadFile_环境变量覆盖(t *testing.T) {
	p := writeFile(t, t.TempDir(), "conf.yml", "board:\n  size: 7\n")
	t.Setenv("MERGE_BOARD_SIZE", "9")
	var s sample
	if err := LoadFile(p, &s, WithEnvPrefix("MERGE")); err != nil {
		t.Fatalf("LoadFile err=%v", err)
	}
	if s.Board.Size != 9 {
		t.Fatalf("期望环境变量覆盖 size=9, got=%d", s.Board.Size)
	}
}

func TestLoadFile_文件不存在返回错误(t *testing.T) {
	var s sample
	if err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"), &s); err == nil {
		t.Fatalf("期望返回错误")
	}
}

func TestResolve_向上查找(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "configs/conf.yml", "board:\n  size: 5\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir err=%v", err)
	}
	t.Chdir(nested)

	p, err := Resolve("configs/conf.yml")
	if err != nil {
		t.Fatalf("Resolve err=%v", err)
	}
	if filepath.Base(filepath.Dir(p)) != "configs" {
		t.Fatalf("期望找到 configs/conf.yml, got=%s", p)
	}
}
