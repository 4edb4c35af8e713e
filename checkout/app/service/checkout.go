package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	cartService "github.com/lushmo/hairbloom/cart/app/service"
	"github.com/lushmo/hairbloom/checkout/pkg/request"
	"github.com/lushmo/hairbloom/internal/config"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/internal/repository"
	notificationService "github.com/lushmo/hairbloom/notification/app/service"
	orderResponse "github.com/lushmo/hairbloom/order/pkg/response"
)

const orderStatusPending = "pending"

type CheckoutService struct {
	queries  *repository.Queries
	cart     *cartService.CartService
	notifier notificationService.Notifier
	cfg      config.Application
}

func NewCheckoutService(
	queries *repository.Queries,
	cart *cartService.CartService,
	notifier notificationService.Notifier,
	cfg config.Application,
) *CheckoutService {
	return &CheckoutService{queries: queries, cart: cart, notifier: notifier, cfg: cfg}
}

// SubmitCheckout places an order for the user's current cart. The order
// header and its line items are written as separate statements, so a
// failure between them leaves a header without lines. The caller sees
// that failure; the pending order is reconciled out of band.
func (s *CheckoutService) SubmitCheckout(
	c context.Context,
	userID uuid.UUID,
	param request.Checkout,
) (orderResponse.Order, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService SubmitCheckout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService SubmitCheckout").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyPaymentMethod, param.Payment.Method).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Err(inErrors.ErrNotSignedIn).Msg("checkout without user")
		s.notifier.Failure(c, userID, "Please sign in", "You need to sign in to place an order")
		return orderResponse.Order{}, inErrors.ErrNotSignedIn
	}

	logger = logger.With().Str(log.KeyProcess, "validating checkout").Logger()
	logger.Info().Msg("validating checkout")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating checkout with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error placing order", err.Error())
		return orderResponse.Order{}, err
	}
	if err := param.Payment.Validate(); err != nil {
		err = fmt.Errorf("failed validating payment with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error placing order", err.Error())
		return orderResponse.Order{}, err
	}
	logger.Info().Msg("validated checkout")

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := s.cart.FindCartByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	if len(cart.Items) == 0 {
		logger.Info().Err(inErrors.ErrEmptyCart).Msg("checkout with empty cart")
		s.notifier.Failure(c, userID, "Error placing order", inErrors.ErrEmptyCart.Error())
		return orderResponse.Order{}, inErrors.ErrEmptyCart
	}
	logger = logger.With().
		Int32(log.KeyTotalItems, cart.TotalItems).
		Str(log.KeyTotalPrice, cart.TotalPrice.String()).
		Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "processing payment").Logger()
	logger.Info().Msg("processing payment")
	if err := s.processPayment(c); err != nil {
		err = fmt.Errorf("failed processing payment with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error placing order", err.Error())
		return orderResponse.Order{}, err
	}
	logger.Info().Msg("processed payment")

	logger = logger.With().Str(log.KeyProcess, "upserting profile").Logger()
	logger.Info().Msg("upserting profile")
	_, err = s.queries.UpsertProfile(c, repository.UpsertProfileParams{
		ID:         userID,
		FirstName:  param.Shipping.FirstName,
		LastName:   param.Shipping.LastName,
		Phone:      param.Shipping.Phone,
		Address:    param.Shipping.Address,
		City:       param.Shipping.City,
		PostalCode: param.Shipping.PostalCode,
		Country:    param.Shipping.Country,
	})
	if err != nil {
		err = fmt.Errorf("failed upserting profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error placing order", err.Error())
		return orderResponse.Order{}, err
	}
	logger.Info().Msg("upserted profile")

	shippingSnapshot, err := json.Marshal(param.Shipping)
	if err != nil {
		err = fmt.Errorf("failed marshaling shipping snapshot with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	paymentSnapshot, err := json.Marshal(maskPayment(param.Payment))
	if err != nil {
		err = fmt.Errorf("failed marshaling payment snapshot with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	order, err := s.queries.InsertOrder(c, repository.InsertOrderParams{
		UserID:          userID,
		TotalAmount:     repository.NumericFromDecimal(cart.TotalPrice),
		PaymentMethod:   param.Payment.Method,
		PaymentDetails:  paymentSnapshot,
		ShippingAddress: shippingSnapshot,
		Status:          orderStatusPending,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error placing order", err.Error())
		return orderResponse.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Info().Msg("inserting order items")
	items := make([]orderResponse.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		orderItem, err := s.queries.InsertOrderItem(c, repository.InsertOrderItemParams{
			OrderID:   order.ID,
			ProductID: cartItem.Product.ID,
			Quantity:  cartItem.Quantity,
			Price:     repository.NumericFromDecimal(cartItem.Product.Price),
		})
		if err != nil {
			err = fmt.Errorf(
				"failed inserting order item productId=%s with error=%w",
				cartItem.Product.ID,
				err,
			)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			s.notifier.Failure(c, userID, "Error placing order", err.Error())
			return orderResponse.Order{}, err
		}
		items = append(items, orderResponse.OrderItem{
			ID:       orderItem.ID,
			Product:  cartItem.Product,
			Quantity: orderItem.Quantity,
			Price:    cartItem.Product.Price,
		})
	}
	logger.Info().Msgf("inserted %d order items", len(items))

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	// the order is already placed, a failed clear is logged and swallowed
	if _, err := s.cart.ClearCart(c, userID); err != nil {
		err = fmt.Errorf("failed clearing cart after checkout with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("cleared cart")

	s.notifier.Success(c, userID, "Order placed", successMessage(param.Payment.Method))

	return orderResponse.Order{
		ID:              order.ID,
		TotalAmount:     cart.TotalPrice,
		PaymentMethod:   order.PaymentMethod,
		PaymentDetails:  paymentSnapshot,
		ShippingAddress: shippingSnapshot,
		Status:          order.Status,
		Items:           items,
		CreatedAt:       order.CreatedAt.Time,
	}, nil
}

// processPayment stands in for a payment gateway call. It holds the
// request for the configured delay while staying cancellable.
func (s *CheckoutService) processPayment(c context.Context) error {
	delay := s.cfg.CheckoutDelay
	if delay <= 0 {
		delay = 1500 * time.Millisecond
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-c.Done():
		return c.Err()
	case <-timer.C:
		return nil
	}
}

func successMessage(method string) string {
	switch method {
	case request.PaymentMethodBank:
		return "Your order is pending. Complete the bank transfer to confirm it"
	case request.PaymentMethodEasypaisa:
		return "Your order is pending. Complete the Easypaisa payment to confirm it"
	case request.PaymentMethodJazzcash:
		return "Your order is pending. Complete the JazzCash payment to confirm it"
	default:
		return "Your order has been placed"
	}
}

// maskPayment builds the snapshot stored on the order. Card numbers keep
// only their last four digits and the cvc is never stored.
func maskPayment(p request.Payment) map[string]string {
	switch p.Method {
	case request.PaymentMethodCard:
		digits := strings.ReplaceAll(p.CardNumber, " ", "")
		last4 := digits
		if len(digits) > 4 {
			last4 = digits[len(digits)-4:]
		}
		return map[string]string{
			"method":     p.Method,
			"cardNumber": "**** **** **** " + last4,
			"cardExpiry": p.CardExpiry,
		}
	case request.PaymentMethodBank:
		return map[string]string{
			"method":        p.Method,
			"accountName":   p.AccountName,
			"accountNumber": p.AccountNumber,
		}
	default:
		return map[string]string{
			"method":      p.Method,
			"accountName": p.AccountName,
			"phoneNumber": p.PhoneNumber,
		}
	}
}
