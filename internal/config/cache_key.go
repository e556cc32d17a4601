package config

import (
	"fmt"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CandidateActiveSessionKey returns the cache key guarding one live session
// per candidate identity. Email is lowercased so the guard matches the
// case-insensitive identity rule of the result store.
func (r *CacheKeyStruct) CandidateActiveSessionKey(email string) string {
	return fmt.Sprintf("candidate:%s:active_session", strings.ToLower(email))
}

var CacheKey = NewCacheKeyStruct()
