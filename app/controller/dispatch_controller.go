package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"obraexpress-store/dispatch"
	"obraexpress-store/repository"
)

// DispatchController handles HTTP requests for dispatch scheduling
// and the per-SKU dispatch date side channel.
type DispatchController struct {
	dateRepo repository.DispatchDateRepositoryInterface
	// now is replaceable so handler tests can pin the clock.
	now func() time.Time
}

// NewDispatchController creates a new DispatchController
func NewDispatchController(dateRepo repository.DispatchDateRepositoryInterface) *DispatchController {
	return &DispatchController{
		dateRepo: dateRepo,
		now:      time.Now,
	}
}

// nextDateResponse is the payload of GET /api/dispatch/next.
type nextDateResponse struct {
	Date               string `json:"date"`
	Label              string `json:"label"`
	TimeInfo           string `json:"time_info"`
	Description        string `json:"description"`
	DefaultRuleApplied bool   `json:"default_rule_applied"`
}

// NextDate handles GET /api/dispatch/next?tipo=policarbonato
func (c *DispatchController) NextDate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tipo := strings.TrimSpace(r.URL.Query().Get("tipo"))
	if tipo == "" {
		tipo = "policarbonato"
	}

	res, err := dispatch.NextDispatchDate(tipo, c.now())
	if err != nil {
		if errors.Is(err, dispatch.ErrNoDispatchDate) {
			log.Printf("❌ NextDate: %v (tipo=%s)", err, tipo)
			errorJSON(w, http.StatusConflict, "No dispatch date available within lookahead window")
			return
		}
		http.Error(w, "Failed to compute dispatch date", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, nextDateResponse{
		Date:               res.Date.Format("2006-01-02"),
		Label:              dispatch.FormatDispatchDate(res.Date),
		TimeInfo:           dispatch.TimeInfo(tipo),
		Description:        dispatch.Description(tipo),
		DefaultRuleApplied: res.DefaultRuleApplied,
	})
}

// Holidays handles GET /api/dispatch/holidays
func (c *DispatchController) Holidays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, dispatch.Holidays())
}

// dispatchDateBody is the body of PUT /api/dispatch-dates/{codigo}.
type dispatchDateBody struct {
	Date string `json:"date"`
}

// HandleDispatchDate routes GET and PUT /api/dispatch-dates/{codigo}.
func (c *DispatchController) HandleDispatchDate(w http.ResponseWriter, r *http.Request) {
	codigo := strings.TrimPrefix(r.URL.Path, "/api/dispatch-dates/")
	if codigo == "" || strings.Contains(codigo, "/") {
		http.Error(w, "Invalid product code", http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	switch r.Method {
	case http.MethodGet:
		isoDate, err := c.dateRepo.Get(ctx, codigo)
		if err != nil {
			log.Printf("❌ HandleDispatchDate: Error reading date for %s: %v", codigo, err)
			http.Error(w, "Failed to read dispatch date", http.StatusInternalServerError)
			return
		}
		if isoDate == "" {
			errorJSON(w, http.StatusNotFound, "No dispatch date stored for product")
			return
		}
		writeJSON(w, http.StatusOK, dispatchDateBody{Date: isoDate})

	case http.MethodPut:
		var body dispatchDateBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if _, err := time.Parse("2006-01-02", body.Date); err != nil {
			errorJSON(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		if err := c.dateRepo.Set(ctx, codigo, body.Date); err != nil {
			log.Printf("❌ HandleDispatchDate: Error saving date for %s: %v", codigo, err)
			http.Error(w, "Failed to save dispatch date", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, dispatchDateBody{Date: body.Date})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
