package compensation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RecordDTO struct {
	Id            int     `json:"id,omitempty"`
	EmployeeId    string  `json:"employeeId,omitempty"`
	EffectiveDate string  `json:"effectiveDate"`
	EndDate       string  `json:"endDate,omitempty"`
	AnnualSalary  float64 `json:"annualSalary"`
	HourlyRate    float64 `json:"hourlyRate"`
	Currency      string  `json:"currency"`
	Notes         string  `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) AddRecord(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding compensation record")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	record, err := dtoToRecord(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.AddRecord(r.Context(), vars["id"], record)
	if err != nil {
		if errors.Is(err, ErrInvalidInterval) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(recordToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	history, err := h.service.History(r.Context(), vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RecordDTO, 0, len(history))
	for _, record := range history {
		dtos = append(dtos, recordToDTO(record))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetRate resolves the compensation record in effect on the requested date.
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	date, err := time.Parse(dateFormat, r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid date parameter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	record, err := h.service.Resolve(r.Context(), vars["id"], date)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			http.Error(w, "No compensation record in effect", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(recordToDTO(record)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func recordToDTO(record Record) RecordDTO {
	dto := RecordDTO{
		Id:            record.Id,
		EmployeeId:    record.EmployeeId,
		EffectiveDate: record.EffectiveDate.Format(dateFormat),
		AnnualSalary:  record.AnnualSalary,
		HourlyRate:    record.HourlyRate,
		Currency:      record.Currency,
		Notes:         record.Notes,
	}
	if !record.EndDate.IsZero() {
		dto.EndDate = record.EndDate.Format(dateFormat)
	}
	return dto
}

func dtoToRecord(dto RecordDTO) (Record, error) {
	effectiveDate, err := time.Parse(dateFormat, dto.EffectiveDate)
	if err != nil {
		return Record{}, ErrInvalidInterval
	}
	var endDate time.Time
	if dto.EndDate != "" {
		endDate, err = time.Parse(dateFormat, dto.EndDate)
		if err != nil {
			return Record{}, ErrInvalidInterval
		}
	}
	return Record{
		Id:            dto.Id,
		EmployeeId:    dto.EmployeeId,
		EffectiveDate: effectiveDate,
		EndDate:       endDate,
		AnnualSalary:  dto.AnnualSalary,
		HourlyRate:    dto.HourlyRate,
		Currency:      dto.Currency,
		Notes:         dto.Notes,
	}, nil
}
