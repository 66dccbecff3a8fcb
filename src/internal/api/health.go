package api

import (
	"net/http"

	"github.com/maksimkurb/ipnorm/src/internal/config"
	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
)

const selfCheckLine = "127.0.0.1:8080#self-check"

// CheckHealth reports liveness and runs a parser self-check.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy: true,
		Version: h.version,
		Formats: endpoint.Formats(),
		Checks:  make(map[string]CheckResult),
	}

	if o := endpoint.Parse(selfCheckLine); o.OK() && o.Endpoint.String() == "127.0.0.1 8080" {
		response.Checks["parser"] = CheckResult{Passed: true, Message: "Parser is operational"}
	} else {
		response.Healthy = false
		response.Checks["parser"] = CheckResult{Passed: false, Message: "Parser self-check failed: " + o.Reason.String()}
	}

	if err := config.ValidateOutputTemplate(h.cfg.General.OutputTemplate); err != nil {
		response.Healthy = false
		response.Checks["output_template"] = CheckResult{
			Passed:  false,
			Message: "Output template is invalid: " + err.Error(),
		}
	} else {
		response.Checks["output_template"] = CheckResult{
			Passed:  true,
			Message: "Output template is valid",
		}
	}

	writeJSONData(w, response)
}
