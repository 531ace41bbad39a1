package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore guarda cada coleção em um hash (id -> JSON) e mantém a ordem
// de inserção em um sorted set pontuado por um contador.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) docsKey(collection string) string  { return fmt.Sprintf("%s:%s", s.prefix, collection) }
func (s *RedisStore) orderKey(collection string) string { return fmt.Sprintf("%s:%s:order", s.prefix, collection) }
func (s *RedisStore) seqKey(collection string) string   { return fmt.Sprintf("%s:%s:seq", s.prefix, collection) }

func (s *RedisStore) Insert(ctx context.Context, collection, id string, doc []byte) error {
	created, err := s.client.HSetNX(ctx, s.docsKey(collection), id, doc).Result()
	if err != nil {
		return err
	}
	if !created {
		return ErrDuplicateID
	}
	seq, err := s.client.Incr(ctx, s.seqKey(collection)).Result()
	if err != nil {
		return err
	}
	return s.client.ZAdd(ctx, s.orderKey(collection), &redis.Z{Score: float64(seq), Member: id}).Err()
}

func (s *RedisStore) Replace(ctx context.Context, collection, id string, doc []byte) error {
	exists, err := s.client.HExists(ctx, s.docsKey(collection), id).Result()
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.client.HSet(ctx, s.docsKey(collection), id, doc).Err()
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	doc, err := s.client.HGet(ctx, s.docsKey(collection), id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	return doc, err
}

func (s *RedisStore) All(ctx context.Context, collection string) ([][]byte, error) {
	ids, err := s.client.ZRange(ctx, s.orderKey(collection), 0, -1).Result()
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	values, err := s.client.HMGet(ctx, s.docsKey(collection), ids...).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(values))
	for _, v := range values {
		if str, ok := v.(string); ok {
			out = append(out, []byte(str))
		}
	}
	return out, nil
}

// Flush apaga todas as coleções do prefixo; usado pelo seeder.
func (s *RedisStore) Flush(ctx context.Context, collections ...string) error {
	keys := make([]string, 0, len(collections)*3)
	for _, c := range collections {
		keys = append(keys, s.docsKey(c), s.orderKey(c), s.seqKey(c))
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
