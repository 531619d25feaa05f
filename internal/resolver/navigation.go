package resolver

import "github.com/fashiopulse/internal/constants"

// NavigationStack 视图历史栈，至少保留一个元素
type NavigationStack struct {
	entries []string
}

// NewNavigationStack 创建以首页为底的栈
func NewNavigationStack() *NavigationStack {
	return &NavigationStack{entries: []string{constants.ViewHome}}
}

// Current 当前视图
func (s *NavigationStack) Current() string {
	if len(s.entries) == 0 {
		return constants.ViewHome
	}
	return s.entries[len(s.entries)-1]
}

// Push 与栈顶相同则忽略
func (s *NavigationStack) Push(view string) {
	if view == "" || view == s.Current() {
		return
	}
	if len(s.entries) == 0 {
		s.entries = []string{constants.ViewHome}
		if view == constants.ViewHome {
			return
		}
	}
	s.entries = append(s.entries, view)
}

// Pop 单元素时为空操作，返回新的栈顶
func (s *NavigationStack) Pop() string {
	if len(s.entries) > 1 {
		s.entries = s.entries[:len(s.entries)-1]
	}
	return s.Current()
}

// Reset 回到 [home]
func (s *NavigationStack) Reset() {
	s.entries = []string{constants.ViewHome}
}

// Entries 返回副本
func (s *NavigationStack) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Restore 从快照恢复，空快照回到 [home]
func (s *NavigationStack) Restore(entries []string) {
	s.Reset()
	for _, view := range entries {
		s.Push(view)
	}
}
