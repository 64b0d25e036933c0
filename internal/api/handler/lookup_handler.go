package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/geotrace/geolocation-api/internal/api/metrics"
	"github.com/geotrace/geolocation-api/internal/core/domain"
	"github.com/geotrace/geolocation-api/internal/core/ports"
	"github.com/geotrace/geolocation-api/internal/infrastructure/queue"
)

// LookupHandler proxies IP geolocation lookups and records each successful
// search asynchronously through the recorder.
type LookupHandler struct {
	service  ports.LookupService
	recorder *queue.Recorder
	log      zerolog.Logger
}

func NewLookupHandler(service ports.LookupService, recorder *queue.Recorder, log zerolog.Logger) *LookupHandler {
	return &LookupHandler{service: service, recorder: recorder, log: log}
}

// Own handles GET /api/lookup — geolocation of the caller's own address.
//
// @Summary      Geolocate the caller's IP
// @Tags         lookup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Geolocation
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /lookup [get]
func (h *LookupHandler) Own(c echo.Context) error {
	return h.lookup(c, "")
}

// ByIP handles GET /api/lookup/:ip.
//
// @Summary      Geolocate a specific IP
// @Tags         lookup
// @Produce      json
// @Security     BearerAuth
// @Param        ip   path      string  true  "IPv4 or IPv6 address"
// @Success      200  {object}  domain.Geolocation
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /lookup/{ip} [get]
func (h *LookupHandler) ByIP(c echo.Context) error {
	return h.lookup(c, c.Param("ip"))
}

func (h *LookupHandler) lookup(c echo.Context, ip string) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	start := time.Now()
	geo, err := h.service.Lookup(c.Request().Context(), ip)
	metrics.LookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LookupsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrInvalidIP) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid ip address"})
		}
		if errors.Is(err, domain.ErrLookupFailed) {
			return c.JSON(http.StatusBadGateway, errorResponse{Error: "geolocation lookup failed"})
		}
		return err
	}
	metrics.LookupsTotal.WithLabelValues("success").Inc()

	// Record the search off the request path. The response does not wait on
	// persistence and a full queue only loses the history entry.
	if raw, err := json.Marshal(geo); err == nil {
		h.recorder.Enqueue(ports.AddHistoryInput{
			UserID:    userID,
			IPAddress: geo.IP,
			Location:  string(raw),
		})
	}

	return c.JSON(http.StatusOK, geo)
}
