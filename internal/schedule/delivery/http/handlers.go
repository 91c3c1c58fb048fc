package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"schedule-planner/pkg/response"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
	icsContentType   = "text/calendar; charset=utf-8"
)

// Process godoc
// @Summary     Turn free-form input into calendar events and tasks
// @Description Extracts events and tasks from text, an image and/or a voice note and creates them in Google Calendar and Google Tasks. Each item succeeds or fails on its own.
// @Tags        Schedule
// @Accept      multipart/form-data
// @Accept      json
// @Produce     json
// @Param       text  formData string false "Free-form text"
// @Param       image formData file   false "Photo of a schedule"
// @Param       audio formData file   false "Voice note"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "No usable input"
// @Failure     401 {object} response.Resp "Google account not connected"
// @Failure     422 {object} response.Resp "Nothing could be extracted"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedules/process [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processScheduleReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Process(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Process: %v", err)
		h.reportError(c, err)
		return
	}

	response.OK(c, h.newProcessResp(output))
}

// Preview godoc
// @Summary     Preview extracted events and tasks
// @Description Runs extraction and validation only. Nothing is written to Google. format=ics returns an iCalendar document.
// @Tags        Schedule
// @Accept      multipart/form-data
// @Accept      json
// @Produce     json
// @Produce     text/calendar
// @Param       format query    string false "json (default) or ics"
// @Param       text   formData string false "Free-form text"
// @Param       image  formData file   false "Photo of a schedule"
// @Param       audio  formData file   false "Voice note"
// @Success     200 {object} previewResp
// @Failure     400 {object} response.Resp "No usable input"
// @Failure     422 {object} response.Resp "Nothing could be extracted"
// @Router      /api/v1/schedules/preview [POST]
func (h *handler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	q, err := h.processPreviewQuery(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	req, err := h.processScheduleReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Preview(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Preview: %v", err)
		h.reportError(c, err)
		return
	}

	if q.Format == formatICS {
		c.Data(http.StatusOK, icsContentType, []byte(renderICS(output, time.Now())))
		return
	}
	response.OK(c, h.newPreviewResp(output))
}

// Login godoc
// @Summary     Connect a Google account
// @Description Redirects to the Google consent page for Calendar and Tasks access.
// @Tags        Auth
// @Success     302
// @Failure     404 {object} response.Resp "OAuth not configured"
// @Router      /auth/google/login [GET]
func (h *handler) Login(c *gin.Context) {
	if h.oauth == nil || !h.oauth.CanAuthorize() {
		response.Error(c, errOAuthDisabled, nil)
		return
	}

	state := uuid.NewString()
	url, err := h.oauth.AuthCodeURL(state)
	if err != nil {
		response.Error(c, errOAuthDisabled, nil)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, url)
}

// Callback godoc
// @Summary     Google OAuth callback
// @Description Exchanges the authorization code and stores the token.
// @Tags        Auth
// @Param       state query string true "OAuth state"
// @Param       code  query string true "Authorization code"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Invalid state or missing code"
// @Failure     502 {object} response.Resp "Exchange failed"
// @Router      /auth/google/callback [GET]
func (h *handler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	if h.oauth == nil || !h.oauth.CanAuthorize() {
		response.Error(c, errOAuthDisabled, nil)
		return
	}

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		response.Error(c, errInvalidState, nil)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", c.Request.TLS != nil, true)

	code := c.Query("code")
	if code == "" {
		response.Error(c, errMissingCode, nil)
		return
	}

	if err := h.oauth.Exchange(ctx, code); err != nil {
		h.l.Errorf(ctx, "oauth.Exchange: %v", err)
		response.Error(c, errExchangeFailed, nil)
		return
	}

	h.l.Infof(ctx, "Google account connected")
	response.OK(c, gin.H{"status": "connected"})
}

// reportError writes the mapped error, adding the consent URL when the backend is not connected.
func (h *handler) reportError(c *gin.Context, err error) {
	mapped, ok := h.mapError(err)
	if !ok {
		response.InternalError(c, err)
		return
	}

	var data map[string]interface{}
	if mapped == errNotConnected && h.oauth != nil && h.oauth.CanAuthorize() {
		data = map[string]interface{}{"auth_url": loginPath}
	}
	response.Error(c, mapped, data)
}
