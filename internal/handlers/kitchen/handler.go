package kitchen

import (
	"net/http"

	"github.com/phuhk2908/rms-backend/infras/otel"
	"github.com/phuhk2908/rms-backend/internal/domains/kitchen/service"
	orderDto "github.com/phuhk2908/rms-backend/internal/domains/order/model/dto"
	"github.com/phuhk2908/rms-backend/shared/constant"
	gDto "github.com/phuhk2908/rms-backend/shared/dto"
	"github.com/phuhk2908/rms-backend/shared/validator"
	"github.com/phuhk2908/rms-backend/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Kitchen
	otel    otel.Otel
}

func New(service service.Kitchen, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/kitchen", func(routerGroup chi.Router) {
		routerGroup.Get("/queue", handler.GetQueue)
		routerGroup.Patch("/orders/{id}/items/{itemId}", handler.UpdateItemStatus)
	})
}

// GetQueue retrieves the kitchen work queue.
// @Summary Get the kitchen queue
// @Description Retrieve orders that still need preparation, with their items.
// @Tags Kitchen
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetOrdersResponse "Kitchen queue"
// @Failure 500 {object} response.Error
// @Router /v1/kitchen/queue [get]
// @Security BearerAuth
func (handler *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQueue")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	queue, err := handler.service.GetQueue(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get kitchen queue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Kitchen queue retrieved successfully")

	response.WithJSON(w, http.StatusOK, queue)
}

// UpdateItemStatus updates the status of one item from the kitchen display.
// @Summary Update an order item status from the kitchen
// @Description Advance a single order item through its preparation workflow.
// @Tags Kitchen
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param itemId path string true "Order Item ID"
// @Param request body dto.UpdateOrderItemStatusRequest true "Update Order Item Status Request"
// @Success 200 {object} dto.OrderResponse "Order item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/kitchen/orders/{id}/items/{itemId} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItemStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	itemID := chi.URLParam(r, constant.RequestParamItemID)

	req := orderDto.UpdateOrderItemStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateItemStatus(ctx, id, itemID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order item status")

		response.WithError(w, err)

		return
	}

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	scope.AddEvent("Order item status updated successfully by staff " + staff)

	response.WithJSON(w, http.StatusOK, res)
}
