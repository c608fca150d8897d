// Package latency simula la latencia de red alrededor de los pasos de acceso de la consola
// (login, verificación 2FA, selección de centro de costos).
//
// El retardo es cancelable: si el contexto de la petición se cancela antes de que venza,
// la continuación no se ejecuta y el paso no queda persistido.
package latency

import (
	"context"
	"time"
)

// Simulator retardo fijo cancelable. El valor cero no espera.
type Simulator struct {
	delay time.Duration
}

// New construye un simulador con el retardo indicado (<= 0 desactiva la espera).
func New(delay time.Duration) Simulator {
	return Simulator{delay: delay}
}

// Delay retardo configurado.
func (s Simulator) Delay() time.Duration { return s.delay }

// Wait bloquea hasta que vence el retardo o se cancela ctx; en ese caso devuelve ctx.Err().
func (s Simulator) Wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do espera el retardo y luego ejecuta fn. Si ctx se cancela antes, fn nunca se ejecuta.
func (s Simulator) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := s.Wait(ctx); err != nil {
		return err
	}
	return fn(ctx)
}

// After programa fn para cuando venza el retardo, sin bloquear. La función cancel devuelta
// (o la cancelación de ctx) convierte la continuación pendiente en un no-op. cancel es idempotente.
func (s Simulator) After(ctx context.Context, fn func()) (cancel func()) {
	ctx, stop := context.WithCancel(ctx)
	go func() {
		defer stop()
		if s.Wait(ctx) != nil {
			return
		}
		fn()
	}()
	return stop
}
