package dashboard

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/o1-spec/techservices-portal/internal/auth"
	"github.com/o1-spec/techservices-portal/internal/transport"
)

type ServiceAPI interface {
	Stats(actor *auth.Identity) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     svc,
	}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Service.Stats(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

// Export streams the caller's stats as a CSV attachment. Unknown format
// values fall back to CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Service.Stats(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	headers, values := stats.Columns()
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = strconv.Itoa(v)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=dashboard-report.csv")

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		h.Logger.Error("failed to write export", "error", err)
		return
	}
	if err := cw.Write(row); err != nil {
		h.Logger.Error("failed to write export", "error", err)
		return
	}
	cw.Flush()
}
