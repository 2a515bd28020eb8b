package assetcache

import (
	"context"
	"encoding/json"
	"errors"
	"mealremind/internal/core/domain/asset"
	e "mealremind/internal/core/domain/errors"
	"sort"

	"github.com/go-redis/redis/v9"
)

type entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Hash stores each cache generation as a Redis hash of path to response.
// A set records which generations exist.
type Hash struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Hash {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if prefix == "" {
		panic(e.NewInvalidArgumentError("prefix", "must not be empty"))
	}
	return &Hash{client: client, prefix: prefix}
}

func (c *Hash) generationsKey() string {
	return c.prefix + ":generations"
}

func (c *Hash) generationKey(generation string) string {
	return c.prefix + ":" + generation
}

func (c *Hash) Put(ctx context.Context, generation string, path string, response asset.Response) error {
	data, err := json.Marshal(entry{Status: response.Status, ContentType: response.ContentType, Body: response.Body})
	if err != nil {
		return err
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.generationKey(generation), path, data)
		pipe.SAdd(ctx, c.generationsKey(), generation)
		return nil
	})
	return err
}

func (c *Hash) Get(ctx context.Context, generation string, path string) (asset.Response, error) {
	data, err := c.client.HGet(ctx, c.generationKey(generation), path).Bytes()
	if errors.Is(err, redis.Nil) {
		return asset.Response{}, asset.ErrAssetNotCached
	}
	if err != nil {
		return asset.Response{}, err
	}
	cached := entry{}
	if err := json.Unmarshal(data, &cached); err != nil {
		return asset.Response{}, err
	}
	return asset.Response{Status: cached.Status, ContentType: cached.ContentType, Body: cached.Body}, nil
}

func (c *Hash) Generations(ctx context.Context) ([]string, error) {
	generations, err := c.client.SMembers(ctx, c.generationsKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(generations)
	return generations, nil
}

func (c *Hash) Drop(ctx context.Context, generation string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.generationKey(generation))
		pipe.SRem(ctx, c.generationsKey(), generation)
		return nil
	})
	return err
}
