package service

import "time"

// SetClock подменяет источник времени сервиса в тестах
func SetClock(svc any, now func() time.Time) {
	switch s := svc.(type) {
	case *outbreakService:
		s.now = now
	case *tracingService:
		s.now = now
	}
}
