package utils

// Cleanup 清理函数栈
//
// Start 阶段每注册一个监听/订阅就把对应的取消函数压栈，
// Stop 阶段调用 Run 按注册的逆序全部执行，保证启动和停止一一对应。
// 零值可直接使用。
type Cleanup struct {
	fns []func()
}

// Add 压入清理函数，nil 会被忽略
func (c *Cleanup) Add(fn func()) {
	if fn != nil {
		c.fns = append(c.fns, fn)
	}
}

// Run 逆序执行并清空所有清理函数；重复调用是安全的
//
// 单个清理函数 panic 不会阻止其余函数执行，panic 会在全部执行完后重新抛出。
func (c *Cleanup) Run() {
	fns := c.fns
	c.fns = nil

	var recovered any
	for i := len(fns) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil && recovered == nil {
					recovered = r
				}
			}()
			fns[i]()
		}()
	}
	if recovered != nil {
		panic(recovered)
	}
}

// Len 返回待执行的清理函数数量
func (c *Cleanup) Len() int {
	return len(c.fns)
}
