//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 创建 gdata 在 Android 上使用的目录并确认可写
// 必须在打开 gdata 存储之前调用
func EnsureStorageDir() error {
	dir := StoragePath()
	if dir == "" {
		return errors.New("cannot resolve android package name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// StoragePath 偏好存储目录 /data/data/<package>/saves
func StoragePath() string {
	pkg, err := androidPackage()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg, "saves")
}

// androidPackage 应用进程名即包名，/proc/self/cmdline 以 NUL 分隔
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", errors.New("empty /proc/self/cmdline")
	}
	return string(name), nil
}
