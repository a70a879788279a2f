package usecase

import (
	"strings"
	"sync"
	"time"
)

type snapshotEntry struct {
	token     string
	payload   interface{}
	fetchedAt time.Time
}

// snapshotCache keeps the last successfully fetched payload per vendor and
// domain, plus the most recent token seen for each vendor so change-stream
// refreshes can re-fetch without a live request in hand.
type snapshotCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]*snapshotEntry
	tokens  map[string]string
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{
		entries: make(map[string]map[string]*snapshotEntry),
		tokens:  make(map[string]string),
	}
}

func (c *snapshotCache) set(scopeID, domainName, token string, payload interface{}, at time.Time) {
	scopeID = strings.TrimSpace(scopeID)
	domainName = strings.TrimSpace(domainName)
	if scopeID == "" || domainName == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[scopeID] == nil {
		c.entries[scopeID] = make(map[string]*snapshotEntry)
	}
	c.entries[scopeID][domainName] = &snapshotEntry{token: token, payload: payload, fetchedAt: at}
	if strings.TrimSpace(token) != "" {
		c.tokens[scopeID] = token
	}
}

func (c *snapshotCache) get(scopeID, domainName string) (*snapshotEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	domains, ok := c.entries[strings.TrimSpace(scopeID)]
	if !ok {
		return nil, false
	}
	entry, ok := domains[strings.TrimSpace(domainName)]
	return entry, ok
}

func (c *snapshotCache) delete(scopeID, domainName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	domains, ok := c.entries[strings.TrimSpace(scopeID)]
	if !ok {
		return
	}
	delete(domains, strings.TrimSpace(domainName))
	if len(domains) == 0 {
		delete(c.entries, strings.TrimSpace(scopeID))
	}
}

func (c *snapshotCache) tokenFor(scopeID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	token, ok := c.tokens[strings.TrimSpace(scopeID)]
	return token, ok && token != ""
}
