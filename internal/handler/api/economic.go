package api

import (
	"context"
	"errors"
	"net/http"

	"EcoBoard/internal/domain/models"
	"EcoBoard/internal/usecase"
	xhttp "EcoBoard/pkg/http"
	xlogger "EcoBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EconomicService is the slice of the use case the HTTP layer needs.
type EconomicService interface {
	GetSnapshot(ctx context.Context) (*models.EconomicSnapshot, error)
	GetCurrencyRates(ctx context.Context) (*models.CurrencyRates, error)
	GetGoldPrice(ctx context.Context) (*models.GoldPrice, error)
	GetStockIndex(ctx context.Context) (*models.StockIndex, error)
	GetNews(ctx context.Context) ([]models.NewsItem, error)
	GetHistory(ctx context.Context, req *models.HistoryRequest) ([]models.RatePoint, error)
}

// LiveHandler upgrades a request to a WebSocket subscription.
type LiveHandler interface {
	Handle(c echo.Context) error
}

// EconomicHandler serves the signage data API.
type EconomicHandler struct {
	logger *xlogger.Logger
	svc    EconomicService
	live   LiveHandler // nil when live push is disabled
}

func NewEconomicHandler(logger *xlogger.Logger, svc EconomicService, live LiveHandler) *EconomicHandler {
	return &EconomicHandler{logger: logger, svc: svc, live: live}
}

func (h *EconomicHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api/economic")
	g.GET("", h.Snapshot)
	g.GET("/currency", h.Currency)
	g.GET("/gold", h.Gold)
	g.GET("/stocks", h.Stocks)
	g.GET("/news", h.News)
	g.GET("/history", h.History)
	if h.live != nil {
		g.GET("/live", h.live.Handle)
	}
}

// Snapshot composes all four domains; partial failures come back as
// null fields and only an all-down snapshot turns into a 500.
func (h *EconomicHandler) Snapshot(c echo.Context) error {
	snap, err := h.svc.GetSnapshot(c.Request().Context())
	if err != nil {
		h.logger.Error("snapshot failed", xlogger.Error(err))
		return xhttp.MessageResponse(c, http.StatusInternalServerError, "economic data temporarily unavailable")
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *EconomicHandler) Currency(c echo.Context) error {
	res, err := h.svc.GetCurrencyRates(c.Request().Context())
	if err != nil {
		h.logger.Error("currency getter failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EconomicHandler) Gold(c echo.Context) error {
	res, err := h.svc.GetGoldPrice(c.Request().Context())
	if err != nil {
		h.logger.Error("gold getter failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EconomicHandler) Stocks(c echo.Context) error {
	res, err := h.svc.GetStockIndex(c.Request().Context())
	if err != nil {
		h.logger.Error("stocks getter failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EconomicHandler) News(c echo.Context) error {
	res, err := h.svc.GetNews(c.Request().Context())
	if err != nil {
		h.logger.Error("news getter failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *EconomicHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	points, err := h.svc.GetHistory(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrHistoryDisabled) {
			return xhttp.MessageResponse(c, http.StatusNotFound, err.Error())
		}
		h.logger.Error("history query failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, points)
}

func (h *EconomicHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
