// Package logger 提供全局 zap 日志实例
//
// 组件通过 logger.Named("ThemeManager") 获取带组件名的子日志器，
// 对应日志输出中的 "[ThemeManager]" 前缀。
// Init 之前调用 L() 得到的是 Nop 日志器，测试中无需初始化。
package logger

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Verbose 启用 debug 级别日志；否则只输出 warn 及以上
	Verbose bool
	// Format 输出格式："console"（默认）或 "json"
	Format string
}

var global atomic.Pointer[zap.Logger]

// Init 根据配置构建全局日志器并返回
// 可重复调用，后一次调用覆盖前一次
func Init(cfg Config) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.Verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeName = bracketNameEncoder
	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(jsonCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	l := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
	Set(l)
	return l
}

// Set 替换全局日志器（测试中可传入 zaptest 日志器）
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	global.Store(l)
}

// L 返回全局日志器
func L() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Named 返回带组件名的子日志器
func Named(component string) *zap.Logger {
	return L().Named(component)
}

// Sync 刷新缓冲的日志，退出前调用
func Sync() {
	_ = L().Sync()
}

// bracketNameEncoder 把 logger 名称编码为 "[Name]"
func bracketNameEncoder(name string, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + name + "]")
}
