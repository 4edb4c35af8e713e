package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	catalogService "github.com/lushmo/hairbloom/catalog/app/service"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/internal/repository"
	"github.com/lushmo/hairbloom/order/pkg/response"
)

type OrderService struct {
	queries *repository.Queries
	catalog catalogService.CatalogService
}

func NewOrderService(
	queries *repository.Queries,
	catalog catalogService.CatalogService,
) *OrderService {
	return &OrderService{queries: queries, catalog: catalog}
}

// FindOrdersByUserId lists the user's order headers, newest first. Line
// items are only loaded when a single order is fetched.
func (s *OrderService) FindOrdersByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrdersByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrdersByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	rows, err := s.queries.FindOrdersByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(rows))

	orders := make([]response.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, s.mapOrder(row, nil))
	}
	return orders, nil
}

func (s *OrderService) FindOrderById(
	c context.Context,
	userID uuid.UUID,
	orderID uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	row, err := s.queries.FindOrderById(c, repository.FindOrderByIdParams{
		ID:     orderID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("orderId=%s with error=%w", orderID, inErrors.ErrOrderNotFound)
		} else {
			err = fmt.Errorf("failed finding order with error=%w", err)
		}
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	itemRows, err := s.queries.FindOrderItemsByOrderId(c, row.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found %d order items", len(itemRows))

	items := make([]response.OrderItem, 0, len(itemRows))
	for _, itemRow := range itemRows {
		items = append(items, response.OrderItem{
			ID:       itemRow.ID,
			Product:  s.catalog.ProductFromId(c, itemRow.ProductID),
			Quantity: itemRow.Quantity,
			Price:    repository.DecimalFromNumeric(itemRow.Price),
		})
	}
	return s.mapOrder(row, items), nil
}

func (s *OrderService) mapOrder(
	row repository.Order,
	items []response.OrderItem,
) response.Order {
	return response.Order{
		ID:              row.ID,
		TotalAmount:     repository.DecimalFromNumeric(row.TotalAmount),
		PaymentMethod:   row.PaymentMethod,
		PaymentDetails:  row.PaymentDetails,
		ShippingAddress: row.ShippingAddress,
		Status:          row.Status,
		Items:           items,
		CreatedAt:       row.CreatedAt.Time,
	}
}
