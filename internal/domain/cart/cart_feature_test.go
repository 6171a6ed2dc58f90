package cart

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/cucumber/godog"
)

type cartFeatureContext struct {
	cart *Cart
}

func (f *cartFeatureContext) anEmptyCart() error {
	f.cart = New()
	return nil
}

func (f *cartFeatureContext) iAddProductPricedTimes(id string, price float64, times int) error {
	for i := 0; i < times; i++ {
		if err := f.cart.Add(Product{ID: id, Name: id, Price: price}); err != nil {
			return err
		}
	}
	return nil
}

func (f *cartFeatureContext) iSetTheQuantityOfTo(id string, qty int) error {
	f.cart.UpdateQuantity(id, qty)
	return nil
}

func (f *cartFeatureContext) iRemoveFromTheCart(id string) error {
	f.cart.Remove(id)
	return nil
}

func (f *cartFeatureContext) iClearTheCart() error {
	f.cart.Clear()
	return nil
}

func (f *cartFeatureContext) theCartHasEntries(n int) error {
	if f.cart.Len() != n {
		return fmt.Errorf("expected %d entries, got %d", n, f.cart.Len())
	}
	return nil
}

func (f *cartFeatureContext) theQuantityOfIs(id string, qty int) error {
	if got := f.cart.Quantity(id); got != qty {
		return fmt.Errorf("expected quantity %d for %s, got %d", qty, id, got)
	}
	return nil
}

func (f *cartFeatureContext) theCartTotalIs(total float64) error {
	if got := f.cart.Total(); math.Abs(got-total) > 1e-9 {
		return fmt.Errorf("expected total %v, got %v", total, got)
	}
	return nil
}

func (f *cartFeatureContext) theCartDoesNotContain(id string) error {
	if f.cart.Contains(id) {
		return fmt.Errorf("cart still contains %s", id)
	}
	return nil
}

func (f *cartFeatureContext) theCartIsEmpty() error {
	if f.cart.State() != StateEmpty {
		return fmt.Errorf("expected empty cart, got %d entries", f.cart.Len())
	}
	return nil
}

func initializeCartScenario(ctx *godog.ScenarioContext) {
	fc := &cartFeatureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.cart = New()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, fc.anEmptyCart)
	ctx.Step(`^I add product "([^"]*)" priced (\d+(?:\.\d+)?) to the cart (\d+) times$`, fc.iAddProductPricedTimes)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, fc.iSetTheQuantityOfTo)
	ctx.Step(`^I remove "([^"]*)" from the cart$`, fc.iRemoveFromTheCart)
	ctx.Step(`^I clear the cart$`, fc.iClearTheCart)

	ctx.Step(`^the cart has (\d+) entry$`, fc.theCartHasEntries)
	ctx.Step(`^the cart has (\d+) entries$`, fc.theCartHasEntries)
	ctx.Step(`^the quantity of "([^"]*)" is (\d+)$`, fc.theQuantityOfIs)
	ctx.Step(`^the cart total is (\d+(?:\.\d+)?)$`, fc.theCartTotalIs)
	ctx.Step(`^the cart does not contain "([^"]*)"$`, fc.theCartDoesNotContain)
	ctx.Step(`^the cart is empty$`, fc.theCartIsEmpty)
}

func TestCartFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeCartScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
