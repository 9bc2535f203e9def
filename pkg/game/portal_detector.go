package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// freedesktop 设置门户（xdg-desktop-portal）
const (
	portalDestination = "org.freedesktop.portal.Desktop"
	portalPath        = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	portalSettings    = "org.freedesktop.portal.Settings"

	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"

	portalCallTimeout = 2 * time.Second
)

// color-scheme 取值：0 无偏好，1 深色，2 浅色
const (
	colorSchemeNoPreference uint32 = 0
	colorSchemeDark         uint32 = 1
	colorSchemeLight        uint32 = 2
)

// ErrNoSessionBus 找不到 D-Bus 会话总线
var ErrNoSessionBus = errors.New("no D-Bus session bus")

// PortalDetector 通过 freedesktop 设置门户读取系统配色
//
// 打开时读取一次 color-scheme，之后由 SettingChanged 信号在后台 goroutine 中更新。
// 门户报告"无偏好"时交给 fallback 判断。Dark 可以在任意 goroutine 调用。
type PortalDetector struct {
	scheme   atomic.Uint32
	fallback SystemThemeDetector

	conn    *dbus.Conn
	signals chan *dbus.Signal
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once

	log *zap.Logger
}

func newPortalDetector(fallback SystemThemeDetector, log *zap.Logger) *PortalDetector {
	if fallback == nil {
		fallback = EnvDetector{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &PortalDetector{
		fallback: fallback,
		signals:  make(chan *dbus.Signal, 8),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		log:      log.Named("PortalDetector"),
	}
	go d.watch()
	return d
}

// OpenPortalDetector 连接会话总线并订阅配色变化
//
// 没有会话总线或门户不可用时返回错误，调用方应改用 fallback。
// 不会自动启动 dbus-daemon。
func OpenPortalDetector(fallback SystemThemeDetector, log *zap.Logger) (*PortalDetector, error) {
	addr, ok := sessionBusAddress(os.Getenv)
	if !ok {
		return nil, ErrNoSessionBus
	}
	conn, err := dbus.Connect(addr)
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	d := newPortalDetector(fallback, log)
	d.conn = conn

	ctx, cancel := context.WithTimeout(context.Background(), portalCallTimeout)
	defer cancel()
	scheme, err := readColorScheme(ctx, conn.Object(portalDestination, portalPath))
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	d.scheme.Store(scheme)

	if err := conn.AddMatchSignalContext(ctx,
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalSettings),
		dbus.WithMatchMember("SettingChanged"),
		dbus.WithMatchArg(0, appearanceNamespace),
	); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("subscribe %s: %w", portalSettings, err)
	}
	conn.Signal(d.signals)

	d.log.Debug("portal color scheme", zap.Uint32("scheme", scheme))
	return d, nil
}

// sessionBusAddress 返回会话总线地址
// DBUS_SESSION_BUS_ADDRESS 优先，其次是 $XDG_RUNTIME_DIR/bus
func sessionBusAddress(getenv func(string) string) (string, bool) {
	if addr := getenv("DBUS_SESSION_BUS_ADDRESS"); addr != "" {
		return addr, true
	}
	if dir := getenv("XDG_RUNTIME_DIR"); dir != "" {
		path := filepath.Join(dir, "bus")
		if _, err := os.Stat(path); err == nil {
			return "unix:path=" + path, true
		}
	}
	return "", false
}

// readColorScheme 读取 color-scheme
// 先用 ReadOne，旧版门户只有已弃用的 Read（结果多包一层 variant）
func readColorScheme(ctx context.Context, obj dbus.BusObject) (uint32, error) {
	var v dbus.Variant
	err := obj.CallWithContext(ctx, portalSettings+".ReadOne", 0, appearanceNamespace, colorSchemeKey).Store(&v)
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("read %s: %w", colorSchemeKey, err)
		}
		if err := obj.CallWithContext(ctx, portalSettings+".Read", 0, appearanceNamespace, colorSchemeKey).Store(&v); err != nil {
			return 0, fmt.Errorf("read %s: %w", colorSchemeKey, err)
		}
	}
	scheme, ok := schemeValue(v)
	if !ok {
		return 0, fmt.Errorf("read %s: unexpected value %s", colorSchemeKey, v.String())
	}
	return scheme, nil
}

// schemeValue 解开（可能嵌套的）variant
func schemeValue(v dbus.Variant) (uint32, bool) {
	for range 3 {
		switch x := v.Value().(type) {
		case uint32:
			return x, true
		case dbus.Variant:
			v = x
		default:
			return 0, false
		}
	}
	return 0, false
}

func (d *PortalDetector) watch() {
	defer close(d.done)
	for {
		select {
		case sig, ok := <-d.signals:
			if !ok {
				return
			}
			d.handleSignal(sig)
		case <-d.quit:
			return
		}
	}
}

// handleSignal 处理 SettingChanged(namespace, key, value)
func (d *PortalDetector) handleSignal(sig *dbus.Signal) {
	if sig == nil || sig.Name != portalSettings+".SettingChanged" || len(sig.Body) < 3 {
		return
	}
	namespace, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if namespace != appearanceNamespace || key != colorSchemeKey {
		return
	}
	v, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return
	}
	scheme, ok := schemeValue(v)
	if !ok {
		d.log.Warn("ignoring color scheme", zap.String("value", v.String()))
		return
	}
	d.scheme.Store(scheme)
	d.log.Debug("color scheme changed", zap.Uint32("scheme", scheme))
}

// Dark 实现 SystemThemeDetector
func (d *PortalDetector) Dark() bool {
	switch d.scheme.Load() {
	case colorSchemeDark:
		return true
	case colorSchemeLight:
		return false
	}
	return d.fallback.Dark()
}

// Close 取消订阅、关闭连接并等待后台 goroutine 退出，可重复调用
func (d *PortalDetector) Close() error {
	var err error
	d.once.Do(func() {
		close(d.quit)
		if d.conn != nil {
			d.conn.RemoveSignal(d.signals)
			err = d.conn.Close()
		}
		<-d.done
	})
	return err
}

// OpenSystemThemeDetector 优先使用设置门户，不可用时退回 EnvDetector
// release 释放门户连接，可以重复调用
func OpenSystemThemeDetector(log *zap.Logger) (detector SystemThemeDetector, release func()) {
	if log == nil {
		log = zap.NewNop()
	}
	portal, err := OpenPortalDetector(EnvDetector{}, log)
	if err != nil {
		log.Debug("settings portal unavailable, reading color scheme from the environment", zap.Error(err))
		return EnvDetector{}, func() {}
	}
	return portal, func() {
		if err := portal.Close(); err != nil {
			log.Debug("failed to close session bus", zap.Error(err))
		}
	}
}
