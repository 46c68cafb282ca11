package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellbeing-backend/internal/assessment"
	"github.com/tbourn/go-wellbeing-backend/internal/domain"
	"github.com/tbourn/go-wellbeing-backend/internal/http/middleware"
)

// SubmitSurveyRequest optionally replaces the session's answers for this
// submission. An empty body submits the answers already set.
type SubmitSurveyRequest struct {
	Responses *domain.SurveyResponses `json:"responses"`
}

// ResultResponse is a scored result with its guidance.
type ResultResponse struct {
	Result   domain.SurveyResult `json:"result"`
	Guidance domain.Guidance     `json:"guidance"`
}

// Scale labels the two ends of every rating.
type Scale struct {
	Min      int    `json:"min"       example:"1"`
	Max      int    `json:"max"       example:"5"`
	MinLabel string `json:"min_label"`
	MaxLabel string `json:"max_label"`
}

// QuestionsResponse is the questionnaire catalogue.
type QuestionsResponse struct {
	Questions []domain.Question `json:"questions"`
	Scale     Scale             `json:"scale"`
}

// SubmitSurvey godoc
// @ID          submitSurvey
// @Summary     Submit the questionnaire
// @Description Scores the session's answers, stores the result, moves to the result page,
// @Description and logs the submission to the ledger when saving is enabled. The save
// @Description outcome is reported in save_status and never fails the request.
// @Description A repeated Idempotency-Key returns the stored outcome with Idempotency-Replayed: true.
// @Tags        Surveys
// @Accept      json
// @Produce     json
// @Param       id               path    string                        true   "Session ID (UUID)"  format(uuid)
// @Param       Idempotency-Key  header  string                        false  "Key for safe retries"
// @Param       body             body    handlers.SubmitSurveyRequest  false  "Optional replacement answers"
// @Success     201  {object}  services.SubmitResult  "Scored"
// @Success     200  {object}  services.SubmitResult  "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Incomplete survey"
// @Router      /sessions/{id}/surveys [post]
func (h *Handlers) SubmitSurvey(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	var req SubmitSurveyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
			return
		}
	}
	key, _ := middleware.GetIdempotencyKey(c)

	out, err := h.assessSvc.Submit(c.Request.Context(), id, key, req.Responses)
	if err != nil {
		serviceError(c, err)
		return
	}
	if out.Replayed {
		c.Header("Idempotency-Replayed", "true")
		localized(c, http.StatusOK, out)
		return
	}
	localized(c, http.StatusCreated, out)
}

// GetResult godoc
// @ID          getResult
// @Summary     Latest result of a session
// @Tags        Surveys
// @Produce     json
// @Param       id   path  string  true  "Session ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.ResultResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found or no result yet"
// @Router      /sessions/{id}/result [get]
func (h *Handlers) GetResult(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	res, g, err := h.assessSvc.Result(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	localized(c, http.StatusOK, ResultResponse{Result: res, Guidance: g})
}

// Assess godoc
// @ID          assess
// @Summary     Score a response set
// @Description Stateless scoring; nothing is stored or logged.
// @Tags        Surveys
// @Accept      json
// @Produce     json
// @Param       body  body  domain.SurveyResponses  true  "Five ratings"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse  "Incomplete survey"
// @Router      /assess [post]
func (h *Handlers) Assess(c *gin.Context) {
	var r domain.SurveyResponses
	if err := c.ShouldBindJSON(&r); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	res, g, err := h.assessSvc.Assess(c.Request.Context(), r)
	if err != nil {
		serviceError(c, err)
		return
	}
	localized(c, http.StatusOK, ResultResponse{Result: res, Guidance: g})
}

// ListQuestions godoc
// @ID          listQuestions
// @Summary     Questionnaire catalogue
// @Tags        Surveys
// @Produce     json
// @Success     200  {object}  handlers.QuestionsResponse
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	localized(c, http.StatusOK, QuestionsResponse{
		Questions: assessment.Questions(),
		Scale: Scale{
			Min:      domain.MinRating,
			Max:      domain.MaxRating,
			MinLabel: assessment.ScaleMinLabel,
			MaxLabel: assessment.ScaleMaxLabel,
		},
	})
}

// GetGuidance godoc
// @ID          getGuidance
// @Summary     Guidance for a risk level
// @Description Unknown levels return the generic result heading with empty advice.
// @Tags        Surveys
// @Produce     json
// @Param       level  path  string  true  "Risk level"  Enums(Low, Medium, High)
// @Success     200  {object}  domain.Guidance
// @Router      /guidance/{level} [get]
func (h *Handlers) GetGuidance(c *gin.Context) {
	localized(c, http.StatusOK, assessment.GuidanceFor(domain.RiskLevel(c.Param("level"))))
}

