package jobs

import (
	"sync"
)

// JobLockManager guards a job against overlapping runs
type JobLockManager interface {
	// TryLock reports whether the lock for jobName was acquired
	TryLock(jobName string) bool

	// Unlock releases the lock for jobName. Releasing a lock that is not
	// held is a no-op.
	Unlock(jobName string)
}

// LocalLockManager keeps per-job locks in process memory. The cron worker
// is a single process, so nothing needs to coordinate across hosts.
type LocalLockManager struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewLocalLockManager() *LocalLockManager {
	return &LocalLockManager{held: make(map[string]bool)}
}

func (l *LocalLockManager) TryLock(jobName string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[jobName] {
		return false
	}
	l.held[jobName] = true
	return true
}

func (l *LocalLockManager) Unlock(jobName string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, jobName)
}
