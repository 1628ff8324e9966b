package bamboohr

import (
	"encoding/json"
	"net/http"
)

type ImportResultDTO struct {
	BatchId           string   `json:"batchId"`
	Success           bool     `json:"success"`
	EmployeesImported int      `json:"employeesImported"`
	RecordsImported   int      `json:"recordsImported"`
	RecordsSkipped    int      `json:"recordsSkipped"`
	Errors            []string `json:"errors"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, err := h.service.ImportAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	errors := result.Errors
	if errors == nil {
		errors = []string{}
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ImportResultDTO{
		BatchId:           result.BatchId,
		Success:           result.Success,
		EmployeesImported: result.EmployeesImported,
		RecordsImported:   result.RecordsImported,
		RecordsSkipped:    result.RecordsSkipped,
		Errors:            errors,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
