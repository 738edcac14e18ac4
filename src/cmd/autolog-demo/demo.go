// FILE: autolog/src/cmd/autolog-demo/demo.go
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"time"

	"autolog/src/internal/core"
	"autolog/src/internal/decision"
	"autolog/src/internal/intercept"
	"autolog/src/internal/service"

	"github.com/lixenwraith/log"
)

// checkoutService is a demo service whose calls get intercepted.
type checkoutService struct{}

type paymentCard struct {
	Number string `mask:""`
	Holder string
}

func (checkoutService) Charge(ctx context.Context, card paymentCard, amount int) (string, error) {
	if amount > 900 {
		return "", errors.New("amount exceeds limit")
	}
	return fmt.Sprintf("txn-%06d", rand.Intn(1000000)), nil
}

func (checkoutService) Refund(ctx context.Context, txn string) error {
	return nil
}

// catalogService demonstrates method exclusion: reads are too chatty to
// log, writes are not.
type catalogService struct{}

func (catalogService) GetProduct(ctx context.Context, sku string) (string, error) {
	return "widget", nil
}

func (catalogService) UpdateStock(ctx context.Context, sku string, delta int) error {
	if delta < -50 {
		return errors.New("stock underflow")
	}
	return nil
}

type demo struct {
	svc          *service.Service
	interceptor  *intercept.Interceptor
	logger       *log.Logger
	checkoutName string
	catalogName  string
}

func newDemo(svc *service.Service, logger *log.Logger) *demo {
	svc.Register(checkoutService{},
		service.WithMode(core.ModeBoth),
		service.WithMethodMarker("Refund", decision.Marker{
			Mode:  core.ModeInput,
			Level: levelPtr(core.LevelWarn),
		}))
	svc.Register(catalogService{},
		service.WithExcludedMethods("Get*"))

	return &demo{
		svc:          svc,
		interceptor:  svc.Interceptor(),
		logger:       logger,
		checkoutName: decision.TypeName(reflect.TypeOf(checkoutService{})),
		catalogName:  decision.TypeName(reflect.TypeOf(catalogService{})),
	}
}

func levelPtr(l core.Level) *core.Level { return &l }

// run generates demo traffic until the context is cancelled.
func (d *demo) run(ctx context.Context, interval time.Duration) {
	checkout := checkoutService{}
	catalog := catalogService{}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		actCtx, release := d.svc.StartActivity(ctx, "order-flow")

		card := paymentCard{Number: "4111-1111-1111-1111", Holder: "A. Customer"}
		amount := rand.Intn(1000)

		txn, err := intercept.Do1(actCtx, d.interceptor, d.checkoutName, "Charge",
			[]intercept.Arg{{Name: "card", Value: card}, {Name: "amount", Value: amount}},
			func(c context.Context) (string, error) {
				return checkout.Charge(c, card, amount)
			})
		if err != nil {
			release(err)
			continue
		}

		// Reads resolve to disabled; the call runs without capture
		_, _ = intercept.Do1(actCtx, d.interceptor, d.catalogName, "GetProduct",
			[]intercept.Arg{{Name: "sku", Value: "W-100"}},
			func(c context.Context) (string, error) {
				return catalog.GetProduct(c, "W-100")
			})

		delta := rand.Intn(120) - 60
		_ = intercept.Do(actCtx, d.interceptor, d.catalogName, "UpdateStock",
			[]intercept.Arg{{Name: "sku", Value: "W-100"}, {Name: "delta", Value: delta}},
			func(c context.Context) error {
				return catalog.UpdateStock(c, "W-100", delta)
			})

		if rand.Intn(10) == 0 {
			_ = intercept.Do(actCtx, d.interceptor, d.checkoutName, "Refund",
				[]intercept.Arg{{Name: "txn", Value: txn}},
				func(c context.Context) error {
					return checkout.Refund(c, txn)
				})
		}

		release(nil)
	}
}
