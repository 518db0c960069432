package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	cartRequest "github.com/Alturino/storefront/cart/pkg/request"
	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/notification"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/storage"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

// remote is the per-user cart resource on the store api. Sync with it is best
// effort, a failure never rolls back a local mutation.
type remote interface {
	Cart(c context.Context, userId string) (cartResponse.RemoteCart, error)
	UpsertCart(c context.Context, param cartRequest.UpsertCart) error
	DeleteCart(c context.Context, userId string) error
}

// catalog resolves product ids from the remote cart back into full products.
type catalog interface {
	Product(c context.Context, id string) (productResponse.Product, error)
}

type sessions interface {
	Current(c context.Context) (session.User, bool)
}

// CartService is the single source of truth for what is in the cart. Every
// mutation is serialized through one mutex and written through to the durable
// slot before the call returns, so concurrent callers can never tear a
// load-modify-store cycle.
type CartService struct {
	mu       sync.Mutex
	items    []cartResponse.CartItem
	slot     storage.Slot
	remote   remote
	catalog  catalog
	sessions sessions
	notifier notification.Notifier
}

func NewCartService(
	c context.Context,
	slot storage.Slot,
	remote remote,
	catalog catalog,
	sessions sessions,
	notifier notification.Notifier,
) *CartService {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NewCartService").
		Str(log.KeyProcess, "hydrating cart from slot").
		Logger()

	items, err := slot.Load(c)
	if err != nil {
		// fail safe, an unreadable slot is an empty cart
		logger.Warn().Err(err).Msg("failed loading cart slot, starting empty")
		items = nil
	}
	logger.Info().Int(log.KeyCartItems, len(items)).Msg("hydrated cart from slot")

	return &CartService{
		items:    items,
		slot:     slot,
		remote:   remote,
		catalog:  catalog,
		sessions: sessions,
		notifier: notifier,
	}
}

// AddToCart appends the product or increments the quantity of an existing
// entry. Requires a logged in user, callers map the returned ErrAuthRequired
// to a redirect to login.
func (svc *CartService) AddToCart(
	c context.Context,
	product productResponse.Product,
	quantity int,
) error {
	c, span := otel.Tracer.Start(c, "CartService AddToCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddToCart").
		Str(log.KeyProductId, product.Id.String()).
		Int(log.KeyQuantity, quantity).
		Logger()

	user, ok := svc.sessions.Current(c)
	if !ok {
		otel.RecordError(inErrors.ErrAuthRequired, span)
		logger.Error().
			Err(inErrors.ErrAuthRequired).
			Msg(inErrors.ErrAuthRequired.Error())
		svc.notifier.Error(c, "Please login to add the product to cart")
		return inErrors.ErrAuthRequired
	}

	if quantity < 1 {
		quantity = 1
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	message := ""
	if i := svc.indexOf(product.Id); i >= 0 {
		svc.items[i].Quantity += quantity
		message = fmt.Sprintf(
			"Product %s quantity increased by %d", product.Title, quantity,
		)
	} else {
		svc.items = append(svc.items, cartResponse.CartItem{
			Product:  product,
			Quantity: quantity,
		})
		message = fmt.Sprintf(
			"Product %s added to cart with quantity %d", product.Title, quantity,
		)
	}

	if err := svc.slot.Store(c, svc.items); err != nil {
		err = fmt.Errorf("failed writing cart slot with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.notifier.Error(c, "Failed to add product to cart")
		return err
	}

	if err := svc.pushRemote(c, user.Sub); err != nil {
		logger.Warn().Err(err).Msg("cart saved locally, remote sync failed")
		svc.notifier.Error(c, "Cart saved locally, syncing with the store failed")
		return nil
	}

	logger.Info().Msg(message)
	svc.notifier.Success(c, message)
	return nil
}

// UpdateCart sets the entry's quantity to the given absolute value, inserting
// the entry when absent. Quantities below 1 are rejected here rather than
// trusting every caller to disable its decrement control.
func (svc *CartService) UpdateCart(
	c context.Context,
	product productResponse.Product,
	quantity int,
) error {
	c, span := otel.Tracer.Start(c, "CartService UpdateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCart").
		Str(log.KeyProductId, product.Id.String()).
		Int(log.KeyQuantity, quantity).
		Logger()

	user, ok := svc.sessions.Current(c)
	if !ok {
		otel.RecordError(inErrors.ErrAuthRequired, span)
		logger.Error().
			Err(inErrors.ErrAuthRequired).
			Msg(inErrors.ErrAuthRequired.Error())
		svc.notifier.Error(c, "Please login to update the cart")
		return inErrors.ErrAuthRequired
	}

	if quantity < 1 {
		otel.RecordError(inErrors.ErrQuantityTooLow, span)
		logger.Error().
			Err(inErrors.ErrQuantityTooLow).
			Msg(inErrors.ErrQuantityTooLow.Error())
		svc.notifier.Error(c, "Quantity must be at least 1, remove the product instead")
		return inErrors.ErrQuantityTooLow
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if i := svc.indexOf(product.Id); i >= 0 {
		svc.items[i].Quantity = quantity
	} else {
		svc.items = append(svc.items, cartResponse.CartItem{
			Product:  product,
			Quantity: quantity,
		})
	}

	if err := svc.slot.Store(c, svc.items); err != nil {
		err = fmt.Errorf("failed writing cart slot with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.notifier.Error(c, "Failed to update cart")
		return err
	}

	if err := svc.pushRemote(c, user.Sub); err != nil {
		logger.Warn().Err(err).Msg("cart saved locally, remote sync failed")
		svc.notifier.Error(c, "Cart saved locally, syncing with the store failed")
		return nil
	}

	message := fmt.Sprintf("Product %s quantity set to %d", product.Title, quantity)
	logger.Info().Msg(message)
	svc.notifier.Success(c, message)
	return nil
}

// RemoveFromCart drops the entry with the given id. Removing an id that is
// not in the cart is a no-op, not an error. Individual line removals stay
// local, only a full clear reaches the remote cart.
func (svc *CartService) RemoveFromCart(c context.Context, id string) error {
	c, span := otel.Tracer.Start(c, "CartService RemoveFromCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveFromCart").
		Str(log.KeyProductId, id).
		Logger()

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if i := svc.indexOf(productResponse.ProductId(id)); i >= 0 {
		svc.items = append(svc.items[:i], svc.items[i+1:]...)
	}

	if err := svc.slot.Store(c, svc.items); err != nil {
		err = fmt.Errorf("failed writing cart slot with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.notifier.Error(c, "Failed to remove product from cart")
		return err
	}

	logger.Info().Msg("removed product from cart")
	svc.notifier.Success(c, "Product removed from cart.")
	return nil
}

// ClearCart empties the snapshot. When a user is logged in the remote cart is
// deleted too, but local state wins: the cart clears even when the remote
// delete fails.
func (svc *CartService) ClearCart(c context.Context) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Logger()

	svc.mu.Lock()
	defer svc.mu.Unlock()

	remoteFailed := false
	if user, ok := svc.sessions.Current(c); ok {
		if err := svc.remote.DeleteCart(c, user.Sub); err != nil {
			logger.Warn().Err(err).Msg("failed deleting remote cart, clearing locally")
			remoteFailed = true
		}
	}

	svc.items = nil
	if err := svc.slot.Store(c, nil); err != nil {
		err = fmt.Errorf("failed clearing cart slot with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.notifier.Error(c, "Failed while clearing cart")
		return err
	}

	if remoteFailed {
		svc.notifier.Error(c, "Cart cleared locally, the store could not be reached")
		return nil
	}
	logger.Info().Msg("cleared cart")
	svc.notifier.Success(c, "Cart Cleared Successfully.")
	return nil
}

// PullRemote replaces the local snapshot with the remote cart, resolving each
// line against the catalog. Used right after login. Any failure leaves the
// local snapshot untouched.
func (svc *CartService) PullRemote(c context.Context) error {
	c, span := otel.Tracer.Start(c, "CartService PullRemote")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService PullRemote").
		Logger()

	user, ok := svc.sessions.Current(c)
	if !ok {
		return inErrors.ErrAuthRequired
	}

	cart, err := svc.remote.Cart(c, user.Sub)
	if err != nil {
		err = fmt.Errorf("failed fetching remote cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg("keeping local cart")
		return err
	}

	items := make([]cartResponse.CartItem, 0, len(cart.Products))
	for _, line := range cart.Products {
		product, err := svc.catalog.Product(c, line.ProductId.String())
		if err != nil {
			err = fmt.Errorf(
				"failed resolving productId=%s with error=%w", line.ProductId, err,
			)
			otel.RecordError(err, span)
			logger.Warn().Err(err).Msg("keeping local cart")
			return err
		}
		items = append(items, cartResponse.CartItem{
			Product:  product,
			Quantity: line.Quantity,
		})
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.items = items
	if err := svc.slot.Store(c, svc.items); err != nil {
		err = fmt.Errorf("failed writing cart slot with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Int(log.KeyCartItems, len(items)).Msg("pulled remote cart")
	return nil
}

// ProductExistsOnCart reports whether the id is in the cart and returns the
// entry when it is. Pure query over the live snapshot.
func (svc *CartService) ProductExistsOnCart(id string) (cartResponse.CartItem, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if i := svc.indexOf(productResponse.ProductId(id)); i >= 0 {
		return svc.items[i], true
	}
	return cartResponse.CartItem{}, false
}

// ProductsInCart returns a copy of the current ordered snapshot.
func (svc *CartService) ProductsInCart() []cartResponse.CartItem {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	items := make([]cartResponse.CartItem, len(svc.items))
	copy(items, svc.items)
	return items
}

func (svc *CartService) Count() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return len(svc.items)
}

// indexOf must be called with the mutex held.
func (svc *CartService) indexOf(id productResponse.ProductId) int {
	for i, item := range svc.items {
		if item.Id == id {
			return i
		}
	}
	return -1
}

// pushRemote mirrors the snapshot to the remote cart. Must be called with the
// mutex held.
func (svc *CartService) pushRemote(c context.Context, userId string) error {
	lines := make([]cartRequest.UpsertItem, len(svc.items))
	for i, item := range svc.items {
		lines[i] = cartRequest.UpsertItem{
			Id:       item.Id.String(),
			Quantity: item.Quantity,
		}
	}
	return svc.remote.UpsertCart(c, cartRequest.UpsertCart{
		UserId:   userId,
		Products: lines,
	})
}
