package character

import "sync"

// MemorySender 把推送记录在内存里 测试使用
type MemorySender struct {
	mu     sync.Mutex
	pushes map[string][]any
}

func NewMemorySender() *MemorySender {
	return &MemorySender{pushes: make(map[string][]any)}
}

func (s *MemorySender) Push(uid string, connectorId string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes[uid] = append(s.pushes[uid], data)
}

func (s *MemorySender) Pushes(uid string) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]any(nil), s.pushes[uid]...)
}

func (s *MemorySender) Last(uid string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.pushes[uid]
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

func (s *MemorySender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes = make(map[string][]any)
}
