package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	cartRequest "github.com/lushmo/hairbloom/cart/pkg/request"
	"github.com/lushmo/hairbloom/checkout/pkg/request"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/repository"
)

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

func validShipping() request.Shipping {
	return request.Shipping{
		FirstName:  "Ayesha",
		LastName:   "Khan",
		Address:    "12 Canal Road",
		City:       "Lahore",
		PostalCode: "54000",
		Country:    "Pakistan",
		Phone:      "+92 300 1234567",
	}
}

func bankPayment() request.Payment {
	return request.Payment{
		Method:        request.PaymentMethodBank,
		AccountName:   "Ayesha Khan",
		AccountNumber: "PK36SCBL0000001123456702",
	}
}

func TestSubmitCheckoutPlacesOrder(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	userId := uuid.New()

	_, err := h.cartService.AddCartItem(c, userId, cartRequest.AddCartItem{
		ProductId: "hairbloom-growth-150ml",
		Quantity:  2,
	})
	assert.NoError(t, err)
	_, err = h.cartService.AddCartItem(c, userId, cartRequest.AddCartItem{
		ProductId: "hairbloom-shine-150ml",
		Quantity:  3,
	})
	assert.NoError(t, err)

	order, err := h.checkoutService.SubmitCheckout(c, userId, request.Checkout{
		Shipping: validShipping(),
		Payment:  bankPayment(),
	})
	assert.NoError(t, err)
	assert.EqualValues(t, "pending", order.Status)
	assert.EqualValues(t, request.PaymentMethodBank, order.PaymentMethod)
	assert.Len(t, order.Items, 2)
	// 2 * 19.99 + 3 * 21.99
	assert.True(
		t,
		order.TotalAmount.Equal(decimal.NewFromFloat(105.95)),
		"expected total 105.95 got %s",
		order.TotalAmount,
	)

	stored, err := h.queries.FindOrderById(c, repository.FindOrderByIdParams{
		ID:     order.ID,
		UserID: userId,
	})
	assert.NoError(t, err)
	assert.EqualValues(t, "pending", stored.Status)

	storedItems, err := h.queries.FindOrderItemsByOrderId(c, order.ID)
	assert.NoError(t, err)
	assert.Len(t, storedItems, 2)

	cart, err := h.cartService.FindCartByUserId(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items, "cart should be cleared after checkout")

	assert.Contains(t, h.notifier.titles(), "Order placed")
}

func TestSubmitCheckoutUpsertsProfileFromShipping(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	userId := uuid.New()

	_, err := h.cartService.AddCartItem(c, userId, cartRequest.AddCartItem{
		ProductId: "hairbloom-growth-250ml",
		Quantity:  1,
	})
	assert.NoError(t, err)

	_, err = h.checkoutService.SubmitCheckout(c, userId, request.Checkout{
		Shipping: validShipping(),
		Payment:  bankPayment(),
	})
	assert.NoError(t, err)

	profile, err := h.queries.FindProfileById(c, userId)
	assert.NoError(t, err)
	assert.EqualValues(t, "Ayesha", profile.FirstName)
	assert.EqualValues(t, "Lahore", profile.City)
}

func TestSubmitCheckoutRejectsInvalidPaymentBeforeWriting(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	userId := uuid.New()

	_, err := h.cartService.AddCartItem(c, userId, cartRequest.AddCartItem{
		ProductId: "hairbloom-growth-150ml",
		Quantity:  1,
	})
	assert.NoError(t, err)

	_, err = h.checkoutService.SubmitCheckout(c, userId, request.Checkout{
		Shipping: validShipping(),
		Payment: request.Payment{
			Method:     request.PaymentMethodCard,
			CardNumber: "4111 1111",
			CardExpiry: "12/27",
			CardCvc:    "123",
		},
	})
	assert.Error(t, err)

	orders, err := h.queries.FindOrdersByUserId(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, orders, "rejected checkout should write no order rows")

	cart, err := h.cartService.FindCartByUserId(c, userId)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1, "rejected checkout should leave the cart alone")
}

func TestSubmitCheckoutRejectsMissingShippingFields(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	userId := uuid.New()

	_, err := h.cartService.AddCartItem(c, userId, cartRequest.AddCartItem{
		ProductId: "hairbloom-growth-150ml",
		Quantity:  1,
	})
	assert.NoError(t, err)

	shipping := validShipping()
	shipping.City = ""
	_, err = h.checkoutService.SubmitCheckout(c, userId, request.Checkout{
		Shipping: shipping,
		Payment:  bankPayment(),
	})
	assert.Error(t, err)

	orders, err := h.queries.FindOrdersByUserId(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, orders, "rejected checkout should write no order rows")

	var profiles int
	err = h.pool.QueryRow(c, "SELECT count(*) FROM profiles").Scan(&profiles)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, profiles, "rejected checkout should write no profile row")
}

func TestSubmitCheckoutWithEmptyCart(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	userId := uuid.New()

	_, err := h.checkoutService.SubmitCheckout(c, userId, request.Checkout{
		Shipping: validShipping(),
		Payment:  bankPayment(),
	})
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)

	orders, err := h.queries.FindOrdersByUserId(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSubmitCheckoutWithoutUser(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	_, err := h.checkoutService.SubmitCheckout(c, uuid.Nil, request.Checkout{
		Shipping: validShipping(),
		Payment:  bankPayment(),
	})
	assert.ErrorIs(t, err, inErrors.ErrNotSignedIn)
	assert.Contains(t, h.notifier.titles(), "Please sign in")
}

func TestSubmitCheckoutMasksCardNumberInSnapshot(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	userId := uuid.New()

	_, err := h.cartService.AddCartItem(c, userId, cartRequest.AddCartItem{
		ProductId: "hairbloom-shine-500ml",
		Quantity:  1,
	})
	assert.NoError(t, err)

	order, err := h.checkoutService.SubmitCheckout(c, userId, request.Checkout{
		Shipping: validShipping(),
		Payment: request.Payment{
			Method:     request.PaymentMethodCard,
			CardNumber: "4111 1111 1111 1234",
			CardExpiry: "12/27",
			CardCvc:    "123",
		},
	})
	assert.NoError(t, err)

	snapshot := string(order.PaymentDetails)
	assert.Contains(t, snapshot, "1234")
	assert.NotContains(t, snapshot, "4111", "card number should be masked in the stored snapshot")
	assert.NotContains(t, snapshot, "123\"", "cvc should never be stored")
}

func TestSubmitCheckoutIsCancellable(t *testing.T) {
	c := testContext()
	h := setup(t, c)
	defer h.teardown(t)

	userId := uuid.New()

	_, err := h.cartService.AddCartItem(c, userId, cartRequest.AddCartItem{
		ProductId: "hairbloom-growth-150ml",
		Quantity:  1,
	})
	assert.NoError(t, err)

	cancelled, cancel := context.WithCancel(c)
	cancel()
	_, err = h.checkoutService.SubmitCheckout(cancelled, userId, request.Checkout{
		Shipping: validShipping(),
		Payment:  bankPayment(),
	})
	assert.Error(t, err)

	orders, err := h.queries.FindOrdersByUserId(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, orders, "cancelled checkout should write no order rows")
}
