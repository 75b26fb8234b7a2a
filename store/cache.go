package store

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var CacheStore = cache.New(5*time.Minute, 30*time.Minute)

var TokenList string = "tokenList"

func cacheKey(chainIndex int, key string) string {
	return fmt.Sprintf("%d_%s", chainIndex, key)
}

func Set(chainIndex int, key string, value interface{}, duration time.Duration) {
	CacheStore.Set(cacheKey(chainIndex, key), value, duration)
}

func Get(chainIndex int, key string) (interface{}, bool) {
	return CacheStore.Get(cacheKey(chainIndex, key))
}

func Delete(chainIndex int, key string) {
	CacheStore.Delete(cacheKey(chainIndex, key))
}
