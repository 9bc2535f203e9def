package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/portfolio/pkg/utils"
)

// 偏好存储位置：gdata 对象 "preferences"，每个偏好一个属性
const preferencesObject = "preferences"

// 偏好键
const (
	ThemePreferenceKey    = "theme"
	LanguagePreferenceKey = "language"
)

// GdataStorage 基于 gdata 的跨平台偏好存储
//
// 每个值以 YAML 标量形式保存，和设置文件格式一致。
type GdataStorage struct {
	manager *gdata.Manager
}

// NewGdataStorage 打开 gdata 存储
//
// 参数：
//   - appName: 存储目录名（如 "portfolio"）
func NewGdataStorage(appName string) (*GdataStorage, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage %q: %w", appName, err)
	}
	return &GdataStorage{manager: m}, nil
}

// Load 读取偏好
func (s *GdataStorage) Load(key string) (string, bool, error) {
	if !s.manager.ObjectPropExists(preferencesObject, key) {
		return "", false, nil
	}
	data, err := s.manager.LoadObjectProp(preferencesObject, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to load preference %s: %w", key, err)
	}
	var value string
	if err := yaml.Unmarshal(data, &value); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal preference %s: %w", key, err)
	}
	return value, true, nil
}

// Save 保存偏好
func (s *GdataStorage) Save(key, value string) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal preference %s: %w", key, err)
	}
	if err := s.manager.SaveObjectProp(preferencesObject, key, data); err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// MemoryStorage 内存偏好存储（降级模式和测试使用）
type MemoryStorage struct {
	values map[string]string
}

// NewMemoryStorage 创建空的内存存储
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Load 读取偏好
func (s *MemoryStorage) Load(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

// Save 保存偏好
func (s *MemoryStorage) Save(key, value string) error {
	s.values[key] = value
	return nil
}

// OpenPreferenceStorage 打开持久化存储，失败时降级为内存存储
func OpenPreferenceStorage(appName string, log *zap.Logger) PreferenceStorage {
	// Android 上 gdata 不会预先创建存储目录
	if err := utils.EnsureStorageDir(); err != nil && log != nil {
		log.Warn("storage directory unavailable", zap.String("path", utils.StoragePath()), zap.Error(err))
	}
	s, err := NewGdataStorage(appName)
	if err != nil {
		if log != nil {
			log.Warn("preferences will not persist", zap.Error(err))
		}
		return NewMemoryStorage()
	}
	return s
}
