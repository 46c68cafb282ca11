package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellbeing-backend/internal/session"
)

// SessionView is a session snapshot plus the flags the UI derives from it.
type SessionView struct {
	session.State
	HasTakenSurvey      bool `json:"has_taken_survey"`
	ShowsPreviousResult bool `json:"shows_previous_result"`
}

func viewOf(st session.State) SessionView {
	return SessionView{
		State:               st,
		HasTakenSurvey:      st.HasTakenSurvey(),
		ShowsPreviousResult: st.ShowsPreviousResult(),
	}
}

// RegisterRequest carries the display name to look up or register.
type RegisterRequest struct {
	Name string `json:"name" example:"สมชาย"`
}

// AnswerRequest sets one rating.
type AnswerRequest struct {
	Value *int `json:"value" binding:"required" example:"3"`
}

// NavigateRequest switches the visible page.
type NavigateRequest struct {
	Page session.Page `json:"page" binding:"required" example:"survey_new"`
}

// CreateSession godoc
// @ID          createSession
// @Summary     Start a session
// @Description Creates a visitor session with a fresh user token on the home page.
// @Tags        Sessions
// @Produce     json
// @Success     201  {object}  handlers.SessionView
// @Router      /sessions [post]
func (h *Handlers) CreateSession(c *gin.Context) {
	st := h.assessSvc.Create(c.Request.Context())
	c.Header("Location", strings.TrimSuffix(c.Request.URL.Path, "/")+"/"+st.ID)
	ok(c, http.StatusCreated, viewOf(st))
}

// GetSession godoc
// @ID          getSession
// @Summary     Get a session snapshot
// @Tags        Sessions
// @Produce     json
// @Param       id   path  string  true  "Session ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.SessionView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /sessions/{id} [get]
func (h *Handlers) GetSession(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	st, err := h.assessSvc.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, viewOf(st))
}

// Register godoc
// @ID          registerParticipant
// @Summary     Check in or register a participant
// @Description Looks the name up in the ledger, registering it when absent, and moves
// @Description the session to the survey page. Ledger failures do not fail the request;
// @Description they are reported through login_status and the page stays unchanged.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id    path  string                    true  "Session ID (UUID)"  format(uuid)
// @Param       body  body  handlers.RegisterRequest  true  "Display name"
// @Success     200  {object}  handlers.SessionView
// @Failure     400  {object}  handlers.ErrorResponse  "Empty name"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /sessions/{id}/register [post]
func (h *Handlers) Register(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	st, err := h.assessSvc.Register(c.Request.Context(), id, req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, viewOf(st))
}

// Answer godoc
// @ID          answerQuestion
// @Summary     Set one rating
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id        path  string                  true  "Session ID (UUID)"  format(uuid)
// @Param       question  path  string                  true  "Question ID"        example(q1)
// @Param       body      body  handlers.AnswerRequest  true  "Rating 1-5"
// @Success     200  {object}  handlers.SessionView
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid rating"
// @Failure     404  {object}  handlers.ErrorResponse  "Session or question not found"
// @Router      /sessions/{id}/answers/{question} [put]
func (h *Handlers) Answer(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "value required")
		return
	}
	st, err := h.assessSvc.Answer(c.Request.Context(), id, c.Param("question"), *req.Value)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, viewOf(st))
}

// Navigate godoc
// @ID          navigate
// @Summary     Switch page
// @Description Pages: home, survey, survey_new, result.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id    path  string                    true  "Session ID (UUID)"  format(uuid)
// @Param       body  body  handlers.NavigateRequest  true  "Target page"
// @Success     200  {object}  handlers.SessionView
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown page"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /sessions/{id}/page [put]
func (h *Handlers) Navigate(c *gin.Context) {
	id, valid := sessionParam(c)
	if !valid {
		return
	}
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "page required")
		return
	}
	st, err := h.assessSvc.Navigate(c.Request.Context(), id, req.Page)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, viewOf(st))
}
