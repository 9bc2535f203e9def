//go:build !mobile

package utils

import "os"

// IsMobile 是否运行在移动设备上
// 桌面端设置 PORTFOLIO_MOBILE_EMULATE=1 可模拟移动端（无鼠标指针样式）
func IsMobile() bool {
	return os.Getenv("PORTFOLIO_MOBILE_EMULATE") == "1"
}
