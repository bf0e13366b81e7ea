package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dossier/pkg/scheduler"
)

const (
	defaultDeliveriesLimit = 20
	maxDeliveriesLimit     = 100
)

type dossierView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Recipient    string    `json:"recipient"`
	Feeds        []string  `json:"feeds"`
	MaxItems     int       `json:"max_items"`
	Frequency    string    `json:"frequency"`
	DeliveryTime string    `json:"delivery_time"`
	Timezone     string    `json:"timezone"`
	Style        string    `json:"style"`
	Language     string    `json:"language,omitempty"`
	Active       bool      `json:"active"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type deliveryView struct {
	ID          int64     `json:"id"`
	DeliveredAt time.Time `json:"delivered_at"`
	ItemCount   int       `json:"item_count"`
	Success     bool      `json:"success"`
	PeriodKey   string    `json:"period_key,omitempty"`
	Content     string    `json:"content"`
}

type styleView struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	IsDefault    bool   `json:"is_default"`
}

type summarizeRequest struct {
	Text     string `json:"text"`
	Style    string `json:"style"`
	Language string `json:"language"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	state := scheduler.StateStopped
	if s.scheduler.IsRunning() {
		state = scheduler.StateRunning
	}
	status := map[string]any{
		"status":    "ok",
		"version":   s.version,
		"time":      time.Now().UTC(),
		"scheduler": state.String(),
		"in_flight": s.scheduler.InFlight(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listDossiersHandler returns active dossiers
func (s *Server) listDossiersHandler(w http.ResponseWriter, r *http.Request) {
	dossiers, err := s.store.ListActive(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list dossiers: %v", err)
		renderError(w, r, errors.New("failed to list dossiers"), http.StatusInternalServerError)
		return
	}

	res := make([]dossierView, 0, len(dossiers))
	for _, d := range dossiers {
		res = append(res, dossierView{
			ID:           d.ID,
			Name:         d.Name,
			Recipient:    d.Recipient,
			Feeds:        d.Feeds,
			MaxItems:     d.MaxItems,
			Frequency:    string(d.Frequency),
			DeliveryTime: d.DeliveryTime,
			Timezone:     d.Timezone,
			Style:        d.Style,
			Language:     d.Language,
			Active:       d.Active,
			UpdatedAt:    d.UpdatedAt,
		})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// deliveriesHandler returns recent deliveries of a dossier, newest first
func (s *Server) deliveriesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := dossierID(w, r)
	if !ok {
		return
	}

	limit := defaultDeliveriesLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			renderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = min(n, maxDeliveriesLimit)
	}

	if _, err := s.store.GetDossier(r.Context(), id); err != nil {
		s.renderLookupError(w, r, id, err)
		return
	}

	deliveries, err := s.store.ListDeliveries(r.Context(), id, limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to list deliveries for %d: %v", id, err)
		renderError(w, r, errors.New("failed to list deliveries"), http.StatusInternalServerError)
		return
	}

	res := make([]deliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		res = append(res, deliveryView{ID: d.ID, DeliveredAt: d.DeliveredAt, ItemCount: d.ItemCount,
			Success: d.Success, PeriodKey: d.PeriodKey, Content: d.Content})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// runHandler dispatches a dossier immediately, regardless of its schedule
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := dossierID(w, r)
	if !ok {
		return
	}

	err := s.scheduler.RunNow(r.Context(), id)
	switch {
	case err == nil:
		renderJSON(w, r, http.StatusAccepted, map[string]any{"status": "accepted", "id": id})
	case errors.Is(err, scheduler.ErrInFlight):
		renderError(w, r, err, http.StatusConflict)
	default:
		s.renderLookupError(w, r, id, err)
	}
}

// stylesHandler returns the style catalog
func (s *Server) stylesHandler(w http.ResponseWriter, r *http.Request) {
	styles, err := s.store.ListStyles(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list styles: %v", err)
		renderError(w, r, errors.New("failed to list styles"), http.StatusInternalServerError)
		return
	}
	res := make([]styleView, 0, len(styles))
	for _, st := range styles {
		res = append(res, styleView{Name: st.Name, Instructions: st.Instructions, IsDefault: st.IsDefault})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// summarizeHandler makes a one-shot summary of the posted text
func (s *Server) summarizeHandler(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		renderError(w, r, errors.New("text is required"), http.StatusBadRequest)
		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), req.Text, req.Style, req.Language)
	if err != nil {
		lgr.Printf("[WARN] summarize failed: %v", err)
		renderError(w, r, errors.New("summarize failed"), http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"summary": summary})
}

// renderLookupError responds with 404 for unknown dossiers and 500 for anything else
func (s *Server) renderLookupError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		renderError(w, r, fmt.Errorf("dossier %d not found", id), http.StatusNotFound)
		return
	}
	lgr.Printf("[ERROR] dossier %d: %v", id, err)
	renderError(w, r, err, http.StatusInternalServerError)
}

// dossierID parses the id path value, responds with 400 if it's invalid
func dossierID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		renderError(w, r, errors.New("invalid dossier ID"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
