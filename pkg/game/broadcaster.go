package game

// Broadcaster 同步广播器
//
// 订阅者按注册顺序在 Publish 的调用栈内依次被调用。
// 所有调用都发生在游戏主循环（ebiten Update）中，因此不加锁。
type Broadcaster[T any] struct {
	subs   []subscriber[T]
	nextID int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe 注册订阅者
//
// 返回：
//   - cancel: 取消订阅，可重复调用
func (b *Broadcaster[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	return func() { b.remove(id) }
}

func (b *Broadcaster[T]) remove(id int) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish 通知所有订阅者
// 回调中取消或新增订阅不影响本次通知的名单
func (b *Broadcaster[T]) Publish(v T) {
	if len(b.subs) == 0 {
		return
	}
	snapshot := make([]subscriber[T], len(b.subs))
	copy(snapshot, b.subs)
	for _, s := range snapshot {
		s.fn(v)
	}
}

// Len 返回当前订阅者数量
func (b *Broadcaster[T]) Len() int {
	return len(b.subs)
}
