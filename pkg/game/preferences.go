package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidPreference 偏好值不在允许的枚举范围内
var ErrInvalidPreference = errors.New("invalid preference value")

// PreferenceStorage 偏好持久化端口
//
// Load 在键不存在时返回 ok=false 且 err=nil。
type PreferenceStorage interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

// Preference 单个用户偏好（主题、语言等）
//
// 值只能取 valid 允许的枚举；每次变化都会同步写入存储并通知订阅者。
// 存储失败只记录日志，内存中的值仍然生效。
type Preference[T ~string] struct {
	key     string
	value   T
	valid   func(T) bool
	storage PreferenceStorage
	log     *zap.Logger
	changed Broadcaster[T]
}

// NewPreference 创建偏好并从存储恢复
//
// 参数：
//   - key: 存储键
//   - def: 默认值（存储中没有值、值不合法或读取失败时使用）
//   - valid: 枚举校验函数
//   - storage: 持久化端口，可为 nil（仅内存）
//   - log: 日志，可为 nil
func NewPreference[T ~string](key string, def T, valid func(T) bool, storage PreferenceStorage, log *zap.Logger) *Preference[T] {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Preference[T]{
		key:     key,
		value:   def,
		valid:   valid,
		storage: storage,
		log:     log,
	}
	p.restore()
	return p
}

func (p *Preference[T]) restore() {
	if p.storage == nil {
		return
	}
	raw, ok, err := p.storage.Load(p.key)
	if err != nil {
		p.log.Warn("failed to load preference, using default",
			zap.String("key", p.key), zap.String("default", string(p.value)), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if v := T(raw); p.valid(v) {
		p.value = v
		return
	}
	p.log.Warn("ignoring stored preference outside the allowed values",
		zap.String("key", p.key), zap.String("stored", raw))
}

// Key 返回存储键
func (p *Preference[T]) Key() string {
	return p.key
}

// Get 返回当前值
func (p *Preference[T]) Get() T {
	return p.value
}

// Set 修改偏好
//
// 值不合法时返回 ErrInvalidPreference 且不做任何修改；
// 值未变化时不写存储也不通知。
func (p *Preference[T]) Set(v T) error {
	if !p.valid(v) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidPreference, p.key, v)
	}
	if v == p.value {
		return nil
	}
	p.value = v
	p.persist()
	p.changed.Publish(v)
	return nil
}

func (p *Preference[T]) persist() {
	if p.storage == nil {
		return
	}
	if err := p.storage.Save(p.key, string(p.value)); err != nil {
		p.log.Warn("failed to save preference", zap.String("key", p.key), zap.Error(err))
		return
	}
	p.log.Debug("preference saved", zap.String("key", p.key), zap.String("value", string(p.value)))
}

// Subscribe 订阅值变化
func (p *Preference[T]) Subscribe(fn func(T)) (cancel func()) {
	return p.changed.Subscribe(fn)
}
