package api

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type exportDownload struct {
	filePath  string
	filename  string
	expiresAt time.Time
}

type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
	}
}

// put registers a file and returns its one-shot token plus the expired
// files the caller should remove.
func (s *exportDownloadStore) put(filePath, filename string, ttl time.Duration) (token string, expiresAt time.Time, expired []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expired = s.purgeExpiredLocked(now)

	token = newRandomToken(24)
	expiresAt = now.Add(ttl)
	s.items[token] = exportDownload{
		filePath:  filePath,
		filename:  filename,
		expiresAt: expiresAt,
	}
	return token, expiresAt, expired
}

func (s *exportDownloadStore) get(token string) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[token]
	if !ok {
		return exportDownload{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return exportDownload{}, false
	}
	return v, true
}

func (s *exportDownloadStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) []string {
	var paths []string
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			paths = append(paths, v.filePath)
			delete(s.items, k)
		}
	}
	return paths
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
