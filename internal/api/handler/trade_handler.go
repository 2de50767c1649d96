package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/service"
	pkgerrors "github.com/EnesCagri/kaankutuphane/pkg/errors"
	"github.com/EnesCagri/kaankutuphane/pkg/metrics"
	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

// TradeHandler handles the trade workflow endpoints.
type TradeHandler struct {
	tradeSvc service.TradeService
	metrics  *metrics.Metrics
}

// NewTradeHandler builds the TradeHandler.
func NewTradeHandler(tradeSvc service.TradeService, m *metrics.Metrics) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc, metrics: m}
}

// ProposeTrade proposes a one-for-one book exchange.
// POST /api/v1/trades
func (h *TradeHandler) ProposeTrade(c *gin.Context) {
	var req dto.ProposeTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	trade, err := h.tradeSvc.Propose(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTradeError(c, err)
		return
	}

	response.Created(c, trade)
}

// ResolveTrade accepts or rejects a pending trade request. Recipient only.
// PUT /api/v1/trades/:id
func (h *TradeHandler) ResolveTrade(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "trade request id is required")
		return
	}

	var req dto.ResolveTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	trade, err := h.tradeSvc.Resolve(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTradeError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.TradesResolved.WithLabelValues(trade.Status).Inc()
	}
	response.OK(c, trade)
}

// ListIncomingTrades lists trade requests addressed to the caller.
// GET /api/v1/trades/incoming
func (h *TradeHandler) ListIncomingTrades(c *gin.Context) {
	var req dto.TradeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	trades, err := h.tradeSvc.ListIncoming(c.Request.Context(), callerID, req.Status)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": trades})
}

// ListOutgoingTrades lists trade requests the caller proposed.
// GET /api/v1/trades/outgoing
func (h *TradeHandler) ListOutgoingTrades(c *gin.Context) {
	var req dto.TradeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	trades, err := h.tradeSvc.ListOutgoing(c.Request.Context(), callerID, req.Status)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": trades})
}

func (h *TradeHandler) handleTradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTradeNotFound):
		response.NotFound(c, 16001, "trade request not found")
	case errors.Is(err, service.ErrTradeOwnBook):
		response.BadRequest(c, 16002, "you already own this book")
	case errors.Is(err, service.ErrTradeOfferedNotOwned):
		response.BadRequest(c, 16003, "the offered book does not belong to the requester")
	case errors.Is(err, service.ErrTradePendingExists):
		response.Conflict(c, 16004, "you already have a pending request for this book")
	case errors.Is(err, service.ErrTradeNotRecipient):
		response.Forbidden(c, 16005, "only the recipient may resolve this request")
	case errors.Is(err, service.ErrTradeNotPending):
		response.Conflict(c, 16006, "this request has already been resolved")
	case errors.Is(err, pkgerrors.ErrSwapConflict):
		response.Conflict(c, 16007, "a book in this trade changed hands, refresh and retry")
	case errors.Is(err, service.ErrBookNotFound):
		response.NotFound(c, 14001, "book not found")
	case errors.Is(err, service.ErrStudentOnly):
		response.Forbidden(c, 10003, "students only")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	default:
		response.InternalError(c)
	}
}
