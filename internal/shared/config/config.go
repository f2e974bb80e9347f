package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load 加载 cfgName 指向的配置文件到 target，失败直接 panic（只在进程启动时调用）。
//
// 约定：
// 1) cfgName 为绝对路径则直接使用；
// 2) 否则先按当前目录拼接，不存在时从当前目录开始向上查找 cfgName。
func Load(cfgName string, target any, opts ...Option) {
	path, err := Resolve(cfgName)
	if err != nil {
		panic(err)
	}
	if err := LoadFile(path, target, opts...); err != nil {
		panic(err)
	}
}

// Resolve 把相对路径解析成存在的配置文件路径。
func Resolve(cfgName string) (string, error) {
	if cfgName == "" {
		return "", fmt.Errorf("config name is empty")
	}
	if filepath.IsAbs(cfgName) {
		if !fileExist(cfgName) {
			return "", fmt.Errorf("config file not exist, configPath=%v", cfgName)
		}
		return cfgName, nil
	}
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findConfigUpward(curDir, cfgName)
}

func findConfigUpward(startDir, rel string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config file not exist, searched %s from: %s", rel, startDir)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
