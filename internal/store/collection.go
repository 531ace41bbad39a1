package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection é a visão tipada de uma coleção do Store.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](s Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Insert(ctx context.Context, id string, item T) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("erro ao serializar documento de %s: %w", c.name, err)
	}
	return c.store.Insert(ctx, c.name, id, doc)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	var item T
	if err := json.Unmarshal(doc, &item); err != nil {
		return nil, fmt.Errorf("documento corrompido em %s/%s: %w", c.name, id, err)
	}
	return &item, nil
}

func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	docs, err := c.store.All(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("documento corrompido em %s: %w", c.name, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// Patch sobrepõe os campos presentes em patch ao documento gravado. O id
// nunca é alterado.
func (c *Collection[T]) Patch(ctx context.Context, id string, patch map[string]json.RawMessage) (*T, error) {
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("documento corrompido em %s/%s: %w", c.name, id, err)
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var item T
	if err := json.Unmarshal(merged, &item); err != nil {
		return nil, fmt.Errorf("campos inválidos para %s: %w", c.name, err)
	}
	// regrava a partir do tipo para descartar campos desconhecidos
	clean, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	if err := c.store.Replace(ctx, c.name, id, clean); err != nil {
		return nil, err
	}
	return &item, nil
}
