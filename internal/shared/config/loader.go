package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type options struct {
	envPrefix string
	onChange  func(err error)
	watch     bool
}

type Option func(*options)

// WithEnvPrefix 允许用环境变量覆盖配置，例如 MERGE_BOARD_SIZE 覆盖 board.size。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithWatch 监听配置文件变更并重新 Unmarshal 到 target；fn 收到重新加载的结果。
func WithWatch(fn func(err error)) Option {
	return func(o *options) {
		o.watch = true
		o.onChange = fn
	}
}

// LoadFile 用 viper 读取 yml/json 配置（按扩展名识别）并 Unmarshal 到 target。
func LoadFile(configPath string, target any, opts ...Option) error {
	if !fileExist(configPath) {
		return fmt.Errorf("config file not exist, configPath=%v", configPath)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if o.envPrefix != "" {
		v.SetEnvPrefix(o.envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %q: %w", configPath, err)
	}
	if err := v.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config %q: %w", configPath, err)
	}

	if o.watch {
		// 回调在 viper 的 goroutine 里执行，target 不能与其他 goroutine 共享。
		v.OnConfigChange(func(e fsnotify.Event) {
			err := v.Unmarshal(target)
			if o.onChange != nil {
				o.onChange(err)
			}
		})
		v.WatchConfig()
	}
	return nil
}
