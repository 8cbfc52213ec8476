package api

import (
	"errors"
	"net/http"
	"time"

	"GoldTracker/internal/domain/models"
	"GoldTracker/internal/usecase"
	xhttp "GoldTracker/pkg/http"
	xlogger "GoldTracker/pkg/logger"
	"GoldTracker/pkg/timer"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// DashboardConfig holds the handler settings.
type DashboardConfig struct {
	CookieName     string
	CookieMaxAge   time.Duration
	StreamInterval time.Duration
	// Source drives the stream timer; nil means the runtime timer.
	Source timer.Source
}

// DashboardHandler serves the page, the JSON API and the live stream of each
// session's dashboard.
type DashboardHandler struct {
	logger   *xlogger.Logger
	sessions *usecase.SessionRegistry
	cfg      DashboardConfig
	guard    []echo.MiddlewareFunc
	upgrader websocket.Upgrader
}

// NewDashboardHandler creates the handler. guard middleware wraps /api and /ws.
func NewDashboardHandler(logger *xlogger.Logger, sessions *usecase.SessionRegistry, cfg DashboardConfig, guard ...echo.MiddlewareFunc) *DashboardHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "gold_session"
	}
	if cfg.StreamInterval <= 0 {
		cfg.StreamInterval = time.Second
	}
	return &DashboardHandler{
		logger:   logger,
		sessions: sessions,
		cfg:      cfg,
		guard:    guard,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/ws", h.Stream, h.guard...)

	g := e.Group("/api", h.guard...)
	g.GET("/state", h.State)
	g.POST("/tab", h.SelectTab)
	g.GET("/markets", h.Markets)
	g.GET("/charts", h.Charts)
	g.POST("/charts/range", h.SelectRange)
	g.PUT("/charts/widgets/:container", h.UpdateWidget)
	g.GET("/reserves", h.Reserves)
}

// Page renders the dashboard, applying the tab, range and region query
// selections first. A range or region without a tab opens its panel.
func (h *DashboardHandler) Page(c echo.Context) error {
	req := &models.PageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}

	tab := models.Tab(req.Tab)
	switch {
	case tab != "":
	case req.Range != "":
		tab = models.TabCharts
	case req.Region != "":
		tab = models.TabReserves
	}
	if tab != "" {
		if err := d.SelectTab(tab); err != nil {
			return h.fail(c, err)
		}
	}
	if req.Range != "" && d.ActiveTab() == models.TabCharts {
		if err := d.SelectRange(models.TimeRange(req.Range)); err != nil {
			return h.fail(c, err)
		}
	}
	if req.Region != "" && d.ActiveTab() == models.TabReserves {
		if err := d.SelectRegion(models.Region(req.Region)); err != nil {
			return h.fail(c, err)
		}
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Render(http.StatusOK, "dashboard", NewPageData(d.State(), d.Document()))
}

func (h *DashboardHandler) State(c echo.Context) error {
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, d.State())
}

func (h *DashboardHandler) SelectTab(c echo.Context) error {
	req := &models.TabRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := d.SelectTab(models.Tab(req.Tab)); err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, d.State())
}

func (h *DashboardHandler) Markets(c echo.Context) error {
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	quotes, err := d.Quotes()
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, quotes)
}

func (h *DashboardHandler) Charts(c echo.Context) error {
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	view, err := d.Charts()
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *DashboardHandler) SelectRange(c echo.Context) error {
	req := &models.RangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := d.SelectRange(models.TimeRange(req.Range)); err != nil {
		return h.fail(c, err)
	}
	view, err := d.Charts()
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *DashboardHandler) UpdateWidget(c echo.Context) error {
	req := &models.WidgetConfig{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	req.ContainerID = c.Param("container")

	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := d.UpdateWidget(*req); err != nil {
		return h.fail(c, err)
	}
	view, err := d.Charts()
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *DashboardHandler) Reserves(c echo.Context) error {
	req := &models.ReservesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	d, err := h.session(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := d.SelectRegion(models.Region(req.Region)); err != nil {
		return h.fail(c, err)
	}
	view, err := d.Reserves()
	if err != nil {
		return h.fail(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}

// session resolves the caller's dashboard from the cookie, issuing a new
// cookie when the session is new or was evicted.
func (h *DashboardHandler) session(c echo.Context) (*usecase.Dashboard, error) {
	var id string
	if ck, err := c.Cookie(h.cfg.CookieName); err == nil {
		id = ck.Value
	}
	d, err := h.sessions.GetOrCreate(id)
	if err != nil {
		return nil, err
	}
	if d.ID() != id {
		ck := &http.Cookie{
			Name:     h.cfg.CookieName,
			Value:    d.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		if h.cfg.CookieMaxAge > 0 {
			ck.MaxAge = int(h.cfg.CookieMaxAge.Seconds())
		}
		c.SetCookie(ck)
	}
	return d, nil
}

// fail maps domain errors onto the response envelope.
func (h *DashboardHandler) fail(c echo.Context, err error) error {
	var appErr *xhttp.AppError
	switch {
	case errors.Is(err, models.ErrInvalidTab):
		appErr = xhttp.NewAppError("ERR_INVALID_TAB", "tab", err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidRange):
		appErr = xhttp.NewAppError("ERR_INVALID_RANGE", "range", err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidRegion):
		appErr = xhttp.NewAppError("ERR_INVALID_REGION", "region", err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrPanelNotMounted), errors.Is(err, models.ErrUnknownContainer):
		appErr = xhttp.NotFoundError(err.Error())
	case errors.Is(err, models.ErrSessionClosed):
		appErr = xhttp.UnavailableError(err.Error())
	default:
		h.logger.Error("dashboard request failed", xlogger.Error(err), xlogger.String("path", c.Path()))
		appErr = xhttp.InternalError("dashboard unavailable")
	}
	return xhttp.AppErrorResponse(c, appErr.WithError(err))
}
