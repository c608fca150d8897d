package repository

import "context"

// KVStore puerto del almacenamiento clave-valor de la consola (equivalente al localStorage del
// navegador). Cada sesión de consola es un namespace independiente.
//
// Get devuelve domain.ErrKeyNotFound si la clave no existe. Las escrituras son síncronas:
// una lectura inmediatamente posterior observa el valor escrito.
type KVStore interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Remove(ctx context.Context, namespace string, keys ...string) error
}
