package statemachine_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"ordering/internal/core/application/statemachine"
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/cucumber/godog"
)

// memoryCatalog matches every whitespace token of the phrase as a
// case-insensitive substring of the product name.
type memoryCatalog struct{ products []catalog.Product }

func (c *memoryCatalog) Find(_ context.Context, phrase string) ([]catalog.Product, error) {
	tokens := strings.Fields(strings.ToLower(phrase))
	var found []catalog.Product
	for _, p := range c.products {
		name := strings.ToLower(p.Name)
		matches := len(tokens) > 0
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				matches = false
				break
			}
		}
		if matches {
			found = append(found, p)
		}
	}
	return found, nil
}

type noHistory struct{}

func (noHistory) MostFrequent(context.Context, int64, int) (*customer.FrequentItem, error) {
	return nil, nil
}

func (noHistory) UsualItems(context.Context, int64) ([]order.LineItem, error) {
	return nil, nil
}

type resettingFinalizer struct{}

func (resettingFinalizer) Finalize(_ context.Context, state order.State) (order.State, kernel.UUID, error) {
	if err := state.ValidateFinalizable(); err != nil {
		return state, kernel.UUID{}, err
	}
	return state.Reset(), kernel.NewUUID(), nil
}

type conversation struct {
	catalog *memoryCatalog
	machine *statemachine.OrderStateMachine
	state   order.State
	reply   string
}

func (c *conversation) reset() {
	c.catalog = &memoryCatalog{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c.machine = statemachine.NewOrderStateMachine(c.catalog, noHistory{}, resettingFinalizer{}, logger, nil)
	c.state = order.NewState(acme.ID).WithShippingAddress(acme.DefaultShippingAddress)
	c.reply = ""
}

func (c *conversation) theCatalogContains(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		stock, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return err
		}
		price, err := kernel.MoneyFromString(row.Cells[3].Value)
		if err != nil {
			return err
		}
		c.catalog.products = append(c.catalog.products, catalog.Product{
			ID:    row.Cells[0].Value,
			Name:  row.Cells[1].Value,
			Stock: stock,
			Price: price,
		})
	}
	return nil
}

func (c *conversation) productNamed(name string) (catalog.Product, error) {
	for _, p := range c.catalog.products {
		if p.Name == name {
			return p, nil
		}
	}
	return catalog.Product{}, fmt.Errorf("no product named %q", name)
}

func (c *conversation) theOrderContains(qty int, name string) error {
	p, err := c.productNamed(name)
	if err != nil {
		return err
	}
	item, err := order.NewLineItem(p.ID, p.Name, qty, p.Price)
	if err != nil {
		return err
	}
	c.state = c.state.AddItem(item)
	return nil
}

func (c *conversation) theOrderIsEmpty() error {
	if !c.state.IsEmpty() {
		return fmt.Errorf("order starts with %d items", len(c.state.LineItems()))
	}
	return nil
}

func (c *conversation) apply(in intent.Intent) {
	res := c.machine.Apply(context.Background(), in, c.state, acme)
	c.state = res.State
	c.reply = res.Reply
}

func (c *conversation) theCustomerAdds(qty int, phrase string) error {
	c.apply(intent.AddItem{Items: []intent.ItemRequest{{ProductPhrase: phrase, Quantity: qty}}})
	return nil
}

func (c *conversation) theCustomerRemoves(qty int, phrase string) error {
	c.apply(intent.RemoveItem{Items: []intent.ItemRequest{{ProductPhrase: phrase, Quantity: qty}}})
	return nil
}

func (c *conversation) theCustomerSendsABatch(table *godog.Table) error {
	var items []intent.ItemRequest
	for _, row := range table.Rows[1:] {
		qty, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return err
		}
		items = append(items, intent.ItemRequest{
			Action:        intent.ParseAction(row.Cells[0].Value),
			ProductPhrase: row.Cells[1].Value,
			Quantity:      qty,
		})
	}
	c.apply(intent.MultiAction{Items: items})
	return nil
}

func (c *conversation) theCustomerAsksForConfirmation() error {
	c.apply(intent.RequestConfirmation{})
	return nil
}

func (c *conversation) theCustomerFinalizesTheOrder() error {
	c.apply(intent.FinalizeOrder{})
	return nil
}

func (c *conversation) theOrderShouldContain(qty int, name string) error {
	p, err := c.productNamed(name)
	if err != nil {
		return err
	}
	item, ok := c.state.Find(p.ID)
	if !ok {
		return fmt.Errorf("%s is not in the order", name)
	}
	if item.Quantity() != qty {
		return fmt.Errorf("expected %d x %s, got %d", qty, name, item.Quantity())
	}
	return nil
}

func (c *conversation) theOrderShouldNotContain(name string) error {
	p, err := c.productNamed(name)
	if err != nil {
		return err
	}
	if _, ok := c.state.Find(p.ID); ok {
		return fmt.Errorf("%s is still in the order", name)
	}
	return nil
}

func (c *conversation) theOrderShouldHaveLineItems(n int) error {
	if got := len(c.state.LineItems()); got != n {
		return fmt.Errorf("expected %d line items, got %d", n, got)
	}
	return nil
}

func (c *conversation) theReplyShouldBe(doc *godog.DocString) error {
	if c.reply != doc.Content {
		return fmt.Errorf("expected reply %q, got %q", doc.Content, c.reply)
	}
	return nil
}

func (c *conversation) theReplyShouldContain(text string) error {
	if !strings.Contains(c.reply, text) {
		return fmt.Errorf("expected reply to contain %q, got %q", text, c.reply)
	}
	return nil
}

func (c *conversation) theReplyShouldEndWith(text string) error {
	if !strings.HasSuffix(c.reply, text) {
		return fmt.Errorf("expected reply to end with %q, got %q", text, c.reply)
	}
	return nil
}

func (c *conversation) theReplyShouldHaveLines(n int) error {
	if got := len(strings.Split(c.reply, "\n")); got != n {
		return fmt.Errorf("expected %d reply lines, got %d: %q", n, got, c.reply)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	c := &conversation{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	ctx.Step(`^the catalog contains:$`, c.theCatalogContains)
	ctx.Step(`^the order contains (\d+) x "([^"]*)"$`, c.theOrderContains)
	ctx.Step(`^the order is empty$`, c.theOrderIsEmpty)

	ctx.Step(`^the customer adds (\d+) x "([^"]*)"$`, c.theCustomerAdds)
	ctx.Step(`^the customer removes (\d+) x "([^"]*)"$`, c.theCustomerRemoves)
	ctx.Step(`^the customer sends a batch:$`, c.theCustomerSendsABatch)
	ctx.Step(`^the customer asks for confirmation$`, c.theCustomerAsksForConfirmation)
	ctx.Step(`^the customer finalizes the order$`, c.theCustomerFinalizesTheOrder)

	ctx.Step(`^the order should contain (\d+) x "([^"]*)"$`, c.theOrderShouldContain)
	ctx.Step(`^the order should not contain "([^"]*)"$`, c.theOrderShouldNotContain)
	ctx.Step(`^the order should have (\d+) line items?$`, c.theOrderShouldHaveLineItems)
	ctx.Step(`^the reply should be:$`, c.theReplyShouldBe)
	ctx.Step(`^the reply should contain "([^"]*)"$`, c.theReplyShouldContain)
	ctx.Step(`^the reply should end with "([^"]*)"$`, c.theReplyShouldEndWith)
	ctx.Step(`^the reply should have (\d+) lines$`, c.theReplyShouldHaveLines)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
