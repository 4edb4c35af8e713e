package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/cart/pkg/request"
	"github.com/lushmo/hairbloom/cart/pkg/response"
	catalogService "github.com/lushmo/hairbloom/catalog/app/service"
	inCache "github.com/lushmo/hairbloom/internal/cache"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/internal/repository"
	notificationService "github.com/lushmo/hairbloom/notification/app/service"
)

const cartCacheTTL = time.Hour

// CartService is the storefront's cart store. Consistency is
// read-your-writes via full reload: every mutation invalidates the cached
// cart and re-reads the authoritative rows before anything is returned.
type CartService struct {
	queries  *repository.Queries
	cache    *redis.Client
	catalog  catalogService.CatalogService
	notifier notificationService.Notifier
}

func NewCartService(
	queries *repository.Queries,
	cache *redis.Client,
	catalog catalogService.CatalogService,
	notifier notificationService.Notifier,
) *CartService {
	return &CartService{queries: queries, cache: cache, catalog: catalog, notifier: notifier}
}

func (s *CartService) FindCartByUserId(
	c context.Context,
	userID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Msg("no user, yielding empty cart")
		return response.NewCart(nil), nil
	}

	cacheKey := fmt.Sprintf(inCache.KeyCartByUserId, userID.String())
	logger = logger.With().
		Str(log.KeyProcess, "finding cart in cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("finding cart in cache")
	jsonString, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		cart := response.Cart{}
		err = json.Unmarshal([]byte(jsonString), &cart)
		if err == nil {
			logger.Info().Msg("found cart in cache")
			return cart, nil
		}
		err = fmt.Errorf("failed unmarshaling cached cart with error=%w", err)
		logger.Info().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("cart not in cache")

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	rows, err := s.queries.FindCartItemsByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart in db with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error fetching cart", err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d cart rows in db", len(rows))

	logger = logger.With().Str(log.KeyProcess, "mapping cart").Logger()
	items := make([]response.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, response.CartItem{
			ID:       row.ID,
			Product:  s.catalog.ProductFromId(c, row.ProductID),
			Quantity: row.Quantity,
		})
	}
	cart := response.NewCart(items)
	logger = logger.With().
		Int32(log.KeyTotalItems, cart.TotalItems).
		Str(log.KeyTotalPrice, cart.TotalPrice.String()).
		Logger()
	logger.Info().Msg("mapped cart")

	logger = logger.With().Str(log.KeyProcess, "inserting cart to cache").Logger()
	logger.Info().Msg("inserting cart to cache")
	payload, err := json.Marshal(cart)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart, nil
	}
	err = s.cache.Set(c, cacheKey, payload, cartCacheTTL).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting cart to cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart, nil
	}
	logger.Info().Msg("inserted cart to cache")

	return cart, nil
}

func (s *CartService) AddCartItem(
	c context.Context,
	userID uuid.UUID,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddCartItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, param.ProductId).
		Int32(log.KeyCartItemQuantity, param.Quantity).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Err(inErrors.ErrNotSignedIn).Msg("add to cart without user")
		s.notifier.Failure(
			c,
			userID,
			"Please sign in",
			"You need to sign in to add items to your cart",
		)
		return response.Cart{}, inErrors.ErrNotSignedIn
	}

	quantity := param.Quantity
	if quantity < 1 {
		quantity = 1
	}
	product := s.catalog.ProductFromId(c, param.ProductId)

	logger = logger.With().Str(log.KeyProcess, "finding existing cart item").Logger()
	logger.Info().Msg("finding existing cart item")
	existing, err := s.queries.FindCartItemByUserIdAndProductId(
		c,
		repository.FindCartItemByUserIdAndProductIdParams{
			UserID:    userID,
			ProductID: param.ProductId,
		},
	)
	switch {
	case err == nil:
		logger = logger.With().Str(log.KeyProcess, "merging into existing cart item").Logger()
		logger.Info().Msgf("merging quantity=%d into existing quantity=%d", quantity, existing.Quantity)
		_, err = s.queries.UpdateCartItemQuantity(
			c,
			repository.UpdateCartItemQuantityParams{
				ID:       existing.ID,
				Quantity: existing.Quantity + quantity,
			},
		)
		if err != nil {
			err = fmt.Errorf("failed updating cart item quantity with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			s.notifier.Failure(c, userID, "Error adding item", err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("merged into existing cart item")
	case errors.Is(err, pgx.ErrNoRows):
		logger = logger.With().Str(log.KeyProcess, "inserting cart item").Logger()
		logger.Info().Msg("inserting cart item")
		_, err = s.queries.InsertCartItem(
			c,
			repository.InsertCartItemParams{
				UserID:    userID,
				ProductID: param.ProductId,
				Quantity:  quantity,
			},
		)
		if err != nil {
			err = fmt.Errorf("failed inserting cart item with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			s.notifier.Failure(c, userID, "Error adding item", err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("inserted cart item")
	default:
		err = fmt.Errorf("failed finding existing cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error adding item", err.Error())
		return response.Cart{}, err
	}

	cart, err := s.refetch(c, userID)
	if err != nil {
		return response.Cart{}, err
	}

	s.notifier.Success(
		c,
		userID,
		"Added to cart",
		fmt.Sprintf("%s %s added to your cart", product.Name, product.Size),
	)
	return cart, nil
}

func (s *CartService) UpdateCartItemQuantity(
	c context.Context,
	userID uuid.UUID,
	productID string,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCartItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCartItemQuantity").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID).
		Int32(log.KeyCartItemQuantity, quantity).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Err(inErrors.ErrNotSignedIn).Msg("update quantity without user")
		s.notifier.Failure(c, userID, "Please sign in", inErrors.ErrNotSignedIn.Error())
		return response.Cart{}, inErrors.ErrNotSignedIn
	}

	// quantity floor is 1; removal is an explicit operation
	if quantity < 1 {
		quantity = 1
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart item").Logger()
	logger.Info().Msg("finding cart item")
	existing, err := s.queries.FindCartItemByUserIdAndProductId(
		c,
		repository.FindCartItemByUserIdAndProductIdParams{UserID: userID, ProductID: productID},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s with error=%w", productID, inErrors.ErrCartItemNotFound)
		} else {
			err = fmt.Errorf("failed finding cart item with error=%w", err)
		}
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error updating quantity", err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartItemID, existing.ID.String()).Logger()
	logger.Info().Msg("found cart item")

	logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
	logger.Info().Msg("updating cart item quantity")
	_, err = s.queries.UpdateCartItemQuantity(
		c,
		repository.UpdateCartItemQuantityParams{ID: existing.ID, Quantity: quantity},
	)
	if err != nil {
		err = fmt.Errorf("failed updating cart item quantity with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error updating quantity", err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("updated cart item quantity")

	return s.refetch(c, userID)
}

func (s *CartService) RemoveCartItem(
	c context.Context,
	userID uuid.UUID,
	productID string,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Err(inErrors.ErrNotSignedIn).Msg("remove from cart without user")
		s.notifier.Failure(c, userID, "Please sign in", inErrors.ErrNotSignedIn.Error())
		return response.Cart{}, inErrors.ErrNotSignedIn
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart item").Logger()
	logger.Info().Msg("finding cart item")
	existing, err := s.queries.FindCartItemByUserIdAndProductId(
		c,
		repository.FindCartItemByUserIdAndProductIdParams{UserID: userID, ProductID: productID},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s with error=%w", productID, inErrors.ErrCartItemNotFound)
		} else {
			err = fmt.Errorf("failed finding cart item with error=%w", err)
		}
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error removing item", err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartItemID, existing.ID.String()).Logger()
	logger.Info().Msg("found cart item")

	logger = logger.With().Str(log.KeyProcess, "deleting cart item").Logger()
	logger.Info().Msg("deleting cart item")
	_, err = s.queries.DeleteCartItemById(c, existing.ID)
	if err != nil {
		err = fmt.Errorf("failed deleting cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error removing item", err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("deleted cart item")

	cart, err := s.refetch(c, userID)
	if err != nil {
		return response.Cart{}, err
	}

	s.notifier.Success(c, userID, "Removed from cart", "Item removed from your cart")
	return cart, nil
}

func (s *CartService) ClearCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Err(inErrors.ErrNotSignedIn).Msg("clear cart without user")
		s.notifier.Failure(c, userID, "Please sign in", inErrors.ErrNotSignedIn.Error())
		return response.Cart{}, inErrors.ErrNotSignedIn
	}

	logger = logger.With().Str(log.KeyProcess, "deleting cart items").Logger()
	logger.Info().Msg("deleting cart items")
	deleted, err := s.queries.DeleteCartItemsByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed deleting cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Failure(c, userID, "Error clearing cart", err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("deleted %d cart items", deleted)

	cacheKey := fmt.Sprintf(inCache.KeyCartByUserId, userID.String())
	logger = logger.With().
		Str(log.KeyProcess, "deleting cart from cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("deleting cart from cache")
	err = s.cache.Del(c, cacheKey).Err()
	if err != nil {
		err = fmt.Errorf("failed deleting cart from cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("deleted cart from cache")

	s.notifier.Success(c, userID, "Cart cleared", "All items have been removed from your cart")

	// the result is known, no refetch needed
	return response.NewCart(nil), nil
}

// refetch drops the cached cart and reloads the authoritative rows. Every
// mutation goes through here before its result is visible to callers.
func (s *CartService) refetch(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService refetch")
	defer span.End()

	cacheKey := fmt.Sprintf(inCache.KeyCartByUserId, userID.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService refetch").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger.Info().Msg("invalidating cached cart")
	err := s.cache.Del(c, cacheKey).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating cached cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("invalidated cached cart")

	return s.FindCartByUserId(c, userID)
}
