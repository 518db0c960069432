package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/notification"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
	userResponse "github.com/Alturino/storefront/user/pkg/response"
)

type cart interface {
	ProductsInCart() []cartResponse.CartItem
	ClearCart(c context.Context) error
}

type profiles interface {
	Profile(c context.Context) (userResponse.Profile, error)
}

// CheckoutService runs the mocked checkout: validate the payment form, total
// the cart with decimal arithmetic, clear it and hand back a confirmation.
type CheckoutService struct {
	cart     cart
	profiles profiles
	validate *validator.Validate
	notifier notification.Notifier
}

func NewCheckoutService(
	cart cart,
	profiles profiles,
	notifier notification.Notifier,
) CheckoutService {
	return CheckoutService{
		cart:     cart,
		profiles: profiles,
		validate: validate.New(),
		notifier: notifier,
	}
}

// PrefillEmail fetches the logged in user's email for the checkout form.
// Failure is non-fatal, the form just starts blank.
func (svc CheckoutService) PrefillEmail(c context.Context) string {
	c, span := otel.Tracer.Start(c, "CheckoutService PrefillEmail")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService PrefillEmail").
		Logger()

	profile, err := svc.profiles.Profile(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg("failed while fetching user details")
		svc.notifier.Error(c, "failed while fetching user details")
		return ""
	}
	return profile.Email
}

// Total sums price times quantity over the cart.
func (svc CheckoutService) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range svc.cart.ProductsInCart() {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (svc CheckoutService) PlaceOrder(
	c context.Context,
	form request.Checkout,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService PlaceOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService PlaceOrder").
		Object("form", form).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating form").Logger()
	logger.Info().Msg("validating checkout form")
	if err := svc.validate.StructCtx(c, form); err != nil {
		err = fmt.Errorf("failed validating checkout form with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("validated checkout form")

	items := svc.cart.ProductsInCart()
	if len(items) == 0 {
		otel.RecordError(inErrors.ErrEmptyCart, span)
		logger.Error().Err(inErrors.ErrEmptyCart).Msg(inErrors.ErrEmptyCart.Error())
		svc.notifier.Error(c, "Your cart is empty")
		return response.Order{}, inErrors.ErrEmptyCart
	}

	order := response.Order{
		Id:       uuid.New(),
		Email:    form.Email,
		Address:  form.Address,
		Items:    items,
		Total:    svc.Total(),
		PlacedAt: time.Now(),
	}
	logger = logger.With().Str(log.KeyOrderId, order.Id.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart after checkout")
	if err := svc.cart.ClearCart(c); err != nil {
		err = fmt.Errorf("failed clearing cart after checkout with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger.Info().Msg("order placed")
	svc.notifier.Success(c, "Order placed successfully")
	return order, nil
}
