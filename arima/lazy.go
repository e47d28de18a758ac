package arima

import "sync"

// lazy is a write-once cell. The first get runs derive; every later or
// concurrent get returns the same value and error.
type lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

func (l *lazy[T]) get(derive func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.val, l.err = derive()
	})
	return l.val, l.err
}
