// Package inflight impede que a mesma ação seja disparada duas vezes
// enquanto a primeira ainda não terminou.
package inflight

import "sync"

type Guard struct {
	locks sync.Map
}

func NewGuard() *Guard {
	return &Guard{}
}

// TryAcquire reserva a chave. Se ela já está reservada devolve ok=false;
// caso contrário devolve a função que a libera.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	if _, busy := g.locks.LoadOrStore(key, struct{}{}); busy {
		return nil, false
	}
	var once sync.Once
	return func() {
		once.Do(func() { g.locks.Delete(key) })
	}, true
}
