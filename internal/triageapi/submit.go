package triageapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// submitRequest accepts either a single symptoms string or a list of
// symptom tags collected by a client-side selection flow. Tags are
// joined comma-separated, matching how the mobile client assembles its
// free-text field. Age is taken as-is; the engine accepts any value.
type submitRequest struct {
	Symptoms    string   `json:"symptoms"`
	SymptomTags []string `json:"symptom_tags"`
	Age         int      `json:"age"`
}

func (req *submitRequest) symptomsText() string {
	if req.Symptoms != "" {
		return req.Symptoms
	}
	return strings.Join(req.SymptomTags, ", ")
}

func (a *API) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	report, err := a.svc.Submit(r.Context(), req.symptomsText(), req.Age)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to submit triage")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("quicktriage.report.id", report.ID),
		attribute.Bool("quicktriage.report.urgent", report.IsUrgent),
	)

	writeJSON(w, http.StatusOK, report)
}
