package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/solerao/campusmetro/internal/domain"
	"github.com/solerao/campusmetro/internal/lines"
	"github.com/solerao/campusmetro/internal/mapstore"
	"github.com/solerao/campusmetro/internal/service"
)

// APIHandlers exposes the HTTP handlers consumed by the map front-end.
type APIHandlers struct {
	logger  *slog.Logger
	planner *service.RoutePlanner
	store   *mapstore.Store
	table   *lines.Table
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, planner *service.RoutePlanner, store *mapstore.Store, table *lines.Table) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		planner: planner,
		store:   store,
		table:   table,
	}
}

func (h *APIHandlers) handleStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	g, err := h.store.Graph()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "map not loaded yet")
		return
	}

	resp := stationsResponse{
		Scheme:   g.Scheme(),
		Stations: make([]stationResponse, 0, g.Len()),
	}
	for _, st := range g.Stations() {
		resp.Stations = append(resp.Stations, toStationResponse(st, g.Neighbors(st.ID)))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleStation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/stations/")
	key = strings.Trim(key, "/")
	if key == "" {
		writeError(w, http.StatusBadRequest, "station ID or name is required")
		return
	}

	g, err := h.store.Graph()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "map not loaded yet")
		return
	}

	st, ok := g.StationByID(key)
	if !ok {
		st, ok = g.StationByName(key)
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no station matches "+key)
		return
	}

	respondJSON(w, http.StatusOK, toStationResponse(st, g.Neighbors(st.ID)))
}

func (h *APIHandlers) handleLines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	defs := h.table.Lines()
	resp := make([]lineResponse, 0, len(defs))
	for _, line := range defs {
		resp = append(resp, lineResponse{
			Name:        line.Name,
			Color:       line.Color,
			Connections: line.Connections,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	from := strings.TrimSpace(query.Get("from"))
	to := strings.TrimSpace(query.Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	plan, err := h.planner.PlanRoute(r.Context(), from, to)
	switch {
	case errors.Is(err, service.ErrUnknownStation):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, mapstore.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "map not loaded yet")
		return
	case err != nil:
		h.logger.Error("route planning failed", "error", err, "from", from, "to", to)
		writeError(w, http.StatusInternalServerError, "failed to plan route")
		return
	}

	respondJSON(w, http.StatusOK, toRouteResponse(plan))
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// --- Response DTOs ---

type errorResponse struct {
	Error string `json:"error"`
}

type positionResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type stationResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Position  positionResponse `json:"position"`
	Neighbors []string         `json:"neighbors"`
}

type stationsResponse struct {
	Scheme   string            `json:"scheme"`
	Stations []stationResponse `json:"stations"`
}

type lineResponse struct {
	Name        string   `json:"name"`
	Color       string   `json:"color,omitempty"`
	Connections []string `json:"connections"`
}

type routeStopResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Position positionResponse `json:"position"`
}

type routeSegmentResponse struct {
	From     string `json:"from"`
	To       string `json:"to"`
	FromName string `json:"fromName"`
	ToName   string `json:"toName"`
	Line     string `json:"line"`
	Color    string `json:"color"`
	Transfer bool   `json:"transfer"`
}

type routeResponse struct {
	From      string                 `json:"from"`
	To        string                 `json:"to"`
	Found     bool                   `json:"found"`
	Hops      int                    `json:"hops"`
	Transfers int                    `json:"transfers"`
	Stops     []routeStopResponse    `json:"stops"`
	Segments  []routeSegmentResponse `json:"segments"`
	Itinerary []string               `json:"itinerary"`
}

func toStationResponse(st domain.Station, neighbors []string) stationResponse {
	if neighbors == nil {
		neighbors = []string{}
	}
	return stationResponse{
		ID:        st.ID,
		Name:      st.Name,
		Position:  positionResponse{X: st.Position.X, Y: st.Position.Y},
		Neighbors: neighbors,
	}
}

func toRouteResponse(plan domain.RoutePlan) routeResponse {
	resp := routeResponse{
		From:      plan.FromID,
		To:        plan.ToID,
		Found:     plan.Found,
		Hops:      plan.Hops,
		Transfers: plan.Transfers,
		Stops:     []routeStopResponse{},
		Segments:  []routeSegmentResponse{},
		Itinerary: plan.Itinerary,
	}
	if resp.Itinerary == nil {
		resp.Itinerary = []string{}
	}
	for _, stop := range plan.Stops {
		resp.Stops = append(resp.Stops, routeStopResponse{
			ID:       stop.ID,
			Name:     stop.Name,
			Position: positionResponse{X: stop.Position.X, Y: stop.Position.Y},
		})
	}
	for _, seg := range plan.Segments {
		resp.Segments = append(resp.Segments, routeSegmentResponse{
			From:     seg.FromID,
			To:       seg.ToID,
			FromName: seg.FromName,
			ToName:   seg.ToName,
			Line:     seg.Line,
			Color:    seg.Color,
			Transfer: seg.Transfer,
		})
	}
	return resp
}
