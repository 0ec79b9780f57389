// internal/app/features/dashboard/summary.go
package dashboard

import (
	"net/http"

	errorsfeature "github.com/dalemusser/schooldesk/internal/app/features/errors"
	metricsstore "github.com/dalemusser/schooldesk/internal/app/store/metrics"
	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/dalemusser/schooldesk/internal/app/system/mockdata"
)

type summaryResponse struct {
	Summary  metrics.Summary       `json:"summary"`
	Counts   *metricsstore.Counts  `json:"counts,omitempty"`
	Trends   []mockdata.TrendPoint `json:"trends"`
	Activity []mockdata.Activity   `json:"activity"`
	Notes    []string              `json:"notes,omitempty"`
}

// ServeSummaryJSON returns the derived dashboard views as JSON.
// GET /dashboard/summary.json
func (h *Handler) ServeSummaryJSON(w http.ResponseWriter, r *http.Request) {
	rep := h.build(r.Context())
	errorsfeature.WriteJSON(w, http.StatusOK, summaryResponse{
		Summary:  rep.Summary,
		Counts:   rep.Counts,
		Trends:   rep.Trends,
		Activity: rep.Activity,
		Notes:    truncationNotes(rep, h.PageSize),
	})
}
