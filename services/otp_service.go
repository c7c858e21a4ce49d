package services

import (
	"sync"
	"time"
)

// OTPStore is the expiring phone→code store backing the PIN-less login flow.
// The interface is the seam for an external store; the default implementation
// is process-local and swept on a schedule.
type OTPStore interface {
	Put(phone, code string, ttl time.Duration)
	Get(phone string) (string, bool)
	Delete(phone string)
	Sweep()
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

type memoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
}

func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{entries: make(map[string]otpEntry)}
}

var OTP = NewMemoryOTPStore()

func (s *memoryOTPStore) Put(phone, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[phone] = otpEntry{code: code, expiresAt: time.Now().Add(ttl)}
}

func (s *memoryOTPStore) Get(phone string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[phone]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, phone)
		return "", false
	}
	return e.code, true
}

func (s *memoryOTPStore) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
}

func (s *memoryOTPStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for phone, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, phone)
		}
	}
}
