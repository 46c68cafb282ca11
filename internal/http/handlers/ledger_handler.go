package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
	"github.com/tbourn/go-wellbeing-backend/internal/utils"
)

// SurveyHistoryResponse is one page of a participant's submissions.
type SurveyHistoryResponse struct {
	Surveys    []domain.SurveyRecord `json:"surveys"`
	Pagination Pagination            `json:"pagination"`
}

// LedgerEndpoint godoc
// @ID          ledgerEndpoint
// @Summary     Spreadsheet-compatible logging endpoint
// @Description Accepts the same bodies as the external logging endpoint, routed by action:
// @Description CHECK_USER_OR_REGISTER replies {status: found|new, lastSeen?};
// @Description SUBMIT_SURVEY appends a record and replies {status: ok}.
// @Tags        Ledger
// @Accept      json
// @Produce     json
// @Param       body  body  object  true  "Ledger payload"
// @Success     200  {object}  object
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed payload or unknown action"
// @Failure     503  {object}  handlers.ErrorResponse  "Local ledger disabled"
// @Router      /ledger [post]
func (h *Handlers) LedgerEndpoint(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable body")
		return
	}
	out, err := h.ledgerSvc.Handle(c.Request.Context(), body)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// ListParticipantSurveys godoc
// @ID          listParticipantSurveys
// @Summary     Survey history of a participant
// @Description Newest first. Supports conditional requests via ETag / If-None-Match.
// @Tags        Ledger
// @Produce     json
// @Param       id         path   string  true   "Participant user token"  example(gas-user-a1b2c3d)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.SurveyHistoryResponse
// @Success     304  "Not modified"
// @Failure     503  {object}  handlers.ErrorResponse  "Local ledger disabled"
// @Router      /participants/{id}/surveys [get]
func (h *Handlers) ListParticipantSurveys(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")
	page, pageSize := pageFromQuery(c)

	count, latest, err := h.ledgerSvc.Stats(ctx, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	var ts int64
	if latest != nil {
		ts = latest.UnixMilli()
	}
	etag := utils.WeakETag("surveys", userID, count, ts, page, pageSize)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	items, total, err := h.ledgerSvc.History(ctx, userID, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, SurveyHistoryResponse{Surveys: items, Pagination: newPagination(page, pageSize, total)})
}
