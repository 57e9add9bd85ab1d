package physics

import (
	"fmt"
	"sync"
)

// RecordingManager хранит тела в памяти и считает вызовы регистрации и
// удаления. Используется демо-сервером и тестами жизненного цикла вместо
// настоящего физического движка.
type RecordingManager struct {
	mu      sync.Mutex
	bodies  map[BodyHandle]*Body
	owners  map[BodyHandle]string
	created int
	removed int
}

// NewRecordingManager создаёт пустой менеджер
func NewRecordingManager() *RecordingManager {
	return &RecordingManager{
		bodies: make(map[BodyHandle]*Body),
		owners: make(map[BodyHandle]string),
	}
}

// RegisterBody регистрирует тело
func (rm *RecordingManager) RegisterBody(body *Body, owner string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.bodies[body.Handle]; exists {
		return fmt.Errorf("тело %s уже зарегистрировано", body.Handle)
	}
	rm.bodies[body.Handle] = body
	rm.owners[body.Handle] = owner
	rm.created++
	return nil
}

// RemoveBody удаляет тело. Повторное удаление — ошибка: жизненный цикл
// гарантирует ровно одно удаление на тело.
func (rm *RecordingManager) RemoveBody(handle BodyHandle) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.bodies[handle]; !exists {
		return fmt.Errorf("тело %s не зарегистрировано", handle)
	}
	delete(rm.bodies, handle)
	delete(rm.owners, handle)
	rm.removed++
	return nil
}

// ActiveBodies возвращает количество живых тел
func (rm *RecordingManager) ActiveBodies() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.bodies)
}

// Stats возвращает счётчики созданных и удалённых тел
func (rm *RecordingManager) Stats() (created, removed int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.created, rm.removed
}
