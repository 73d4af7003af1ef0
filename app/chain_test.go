package app

import (
	"context"
	"testing"

	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/heirloomtest"
	"github.com/heirloom-labs/heirloom/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &heirloomtest.Decorator{}
	c2 := &heirloomtest.Decorator{}
	h := &heirloomtest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nil,
		c2,
	).WithHandler(h)

	ctx := context.Background()

	_, err := stack.Check(ctx, nil, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the chain
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	outer := &heirloomtest.Decorator{}
	stack := ChainDecorators(
		outer,
		utils.NewRecovery(),
	).WithHandler(heirloomtest.PanicHandler{Msg: "boom"})

	ctx := context.Background()

	_, err := stack.Check(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))

	// the decorator outside of the recovery was called and returned normally
	assert.Equal(t, 2, outer.CallCount())
}

func TestChainExtend(t *testing.T) {
	c1 := &heirloomtest.Decorator{}
	c2 := &heirloomtest.Decorator{}
	h := &heirloomtest.Handler{}

	base := ChainDecorators(c1)
	stack := base.Chain(c2).WithHandler(h)

	_, err := stack.Deliver(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, c1.DeliverCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())

	// the base chain is not modified by extending it
	_, err = base.WithHandler(h).Deliver(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, c1.DeliverCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())
}
