/*
Package redisstore provides a store for trees backed by a redis DB.
*/
package redisstore

import (
	"context"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pbanos/arbor/tree"
	treejson "github.com/pbanos/arbor/tree/json"
	"gopkg.in/redis.v5"
)

// ErrTreeNotFound is returned when loading a tree that is not in the store.
const ErrTreeNotFound = storeError("tree not found")

type storeError string

func (e storeError) Error() string {
	return string(e)
}

/*
Store keeps trees serialized as JSON on a redis DB, each under a key made of
the store prefix and the tree's name, and the set of stored names under the
key made of the prefix and "trees".

A Store built with NewCached keeps the most recently used trees decoded in
memory. Trees are immutable, so cached trees are shared between callers.
*/
type Store struct {
	rc     *redis.Client
	prefix string
	cache  *lru.Cache[string, *tree.Tree]
}

// New builds a Store over the given redis client, using the given prefix for
// its keys.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc: rc, prefix: prefix}
}

// NewCached builds a Store like New that keeps up to size decoded trees in
// memory.
func NewCached(rc *redis.Client, prefix string, size int) (*Store, error) {
	c, err := lru.New[string, *tree.Tree](size)
	if err != nil {
		return nil, fmt.Errorf("creating tree cache: %v", err)
	}
	return &Store{rc, prefix, c}, nil
}

/*
Open takes a redis URL (redis://[:password@]host:port[/db]), a prefix and a
cache size and returns a Store over a new client connected to it or an error
if the URL cannot be parsed or the server does not answer. The Store keeps up
to cacheSize decoded trees in memory, none if it is not positive.
*/
func Open(url, prefix string, cacheSize int) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %v", err)
	}
	rc := redis.NewClient(opts)
	if err = rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis: %v", err)
	}
	if cacheSize <= 0 {
		return New(rc, prefix), nil
	}
	s, err := NewCached(rc, prefix, cacheSize)
	if err != nil {
		rc.Close()
		return nil, err
	}
	return s, nil
}

// Save serializes the given tree and stores it under the given name,
// replacing any tree previously stored with it.
func (s *Store) Save(ctx context.Context, name string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := treejson.Marshal(t)
	if err != nil {
		return fmt.Errorf("saving tree %q: encoding tree: %v", name, err)
	}
	if err = s.rc.Set(s.keyFor(name), data, 0).Err(); err != nil {
		return fmt.Errorf("saving tree %q in redis: %v", name, err)
	}
	if err = s.rc.SAdd(s.indexKey(), name).Err(); err != nil {
		return fmt.Errorf("indexing tree %q in redis: %v", name, err)
	}
	if s.cache != nil {
		s.cache.Add(name, t)
	}
	return nil
}

// Load retrieves the tree stored under the given name. It returns
// ErrTreeNotFound if there is none.
func (s *Store) Load(ctx context.Context, name string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if t, ok := s.cache.Get(name); ok {
			return t, nil
		}
	}
	data, err := s.rc.Get(s.keyFor(name)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("loading tree %q: %w", name, ErrTreeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading tree %q from redis: %v", name, err)
	}
	t, err := treejson.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("loading tree %q: decoding: %v", name, err)
	}
	if s.cache != nil {
		s.cache.Add(name, t)
	}
	return t, nil
}

// Delete removes the tree stored under the given name, if any.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(name)
	}
	if err := s.rc.Del(s.keyFor(name)).Err(); err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", name, err)
	}
	if err := s.rc.SRem(s.indexKey(), name).Err(); err != nil {
		return fmt.Errorf("unindexing tree %q from redis: %v", name, err)
	}
	return nil
}

// Names returns the sorted names of the stored trees.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := s.rc.SMembers(s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing trees in redis: %v", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the underlying redis client.
func (s *Store) Close() error {
	return s.rc.Close()
}

func (s *Store) keyFor(name string) string {
	return fmt.Sprintf("%s:tree:%s", s.prefix, name)
}

func (s *Store) indexKey() string {
	return fmt.Sprintf("%s:trees", s.prefix)
}
