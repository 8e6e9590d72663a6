package store

import "context"

// Backend is a durable key-value store partitioned by namespace.
type Backend interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
}

// NamespacedKV binds a Backend to one namespace.
type NamespacedKV struct {
	backend   Backend
	namespace string
}

func Namespace(backend Backend, namespace string) *NamespacedKV {
	return &NamespacedKV{backend: backend, namespace: namespace}
}

func (kv *NamespacedKV) Get(ctx context.Context, key string) ([]byte, error) {
	return kv.backend.Get(ctx, kv.namespace, key)
}

func (kv *NamespacedKV) Set(ctx context.Context, key string, value []byte) error {
	return kv.backend.Set(ctx, kv.namespace, key, value)
}
