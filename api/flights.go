package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightfilter/internal/domain"
	"github.com/Domenick1991/flightfilter/internal/service/filter"
	"github.com/Domenick1991/flightfilter/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightsRequest struct {
	Flights []domain.Flight `json:"flights" binding:"required"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.importFlights)
	router.GET("/:id", h.get)
}

// RegisterFilters mounts the named filters: GET runs over stored
// itineraries, POST over the itineraries in the request body.
func (h *FlightHandler) RegisterFilters(router *gin.RouterGroup) {
	router.GET("/", h.filterNames)
	router.GET("/:name", h.search)
	router.POST("/:name", h.filterPosted)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) importFlights(c *gin.Context) {
	var req flightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stored, err := h.service.Import(c.Request.Context(), req.Flights)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (h *FlightHandler) filterNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filters": filter.Names})
}

func (h *FlightHandler) search(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) filterPosted(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}
	var req flightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.service.Filter(c.Request.Context(), q, req.Flights)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bindQuery(c *gin.Context) (filter.Query, bool) {
	q := filter.Query{
		Name:      c.Param("name"),
		Date:      c.Query(filter.ParamDate),
		StartDate: c.Query(filter.ParamStartDate),
		EndDate:   c.Query(filter.ParamEndDate),
	}
	for _, key := range filter.RequiredParams(q.Name) {
		if v, ok := c.GetQuery(key); !ok || v == "" {
			respondError(c, fmt.Errorf("%w: %s", domain.ErrMissingParam, key))
			return filter.Query{}, false
		}
	}
	for key, dst := range map[string]*int{filter.ParamHours: &q.Hours, filter.ParamDateRange: &q.DateRange} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
			return filter.Query{}, false
		}
		*dst = v
	}
	return q, true
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var parseErr *filter.ParseError
	switch {
	case errors.As(err, &parseErr),
		errors.Is(err, domain.ErrUnknownFilter),
		errors.Is(err, domain.ErrInvalidHour),
		errors.Is(err, domain.ErrInvalidGround),
		errors.Is(err, domain.ErrMissingParam),
		errors.Is(err, domain.ErrEmptyItinerary):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFlightNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
