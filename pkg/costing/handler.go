package costing

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type TimeIntervalDTO struct {
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"`
	Duration string     `json:"duration"`
}

type RawTimeEntryDTO struct {
	Id           string          `json:"id"`
	UserId       string          `json:"userId"`
	ProjectId    string          `json:"projectId"`
	Billable     bool            `json:"billable"`
	Description  string          `json:"description,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	TimeInterval TimeIntervalDTO `json:"timeInterval"`
}

type ImportRequestDTO struct {
	StartDate string            `json:"startDate,omitempty"`
	EndDate   string            `json:"endDate,omitempty"`
	Entries   []RawTimeEntryDTO `json:"entries,omitempty"`
}

type ImportSummaryDTO struct {
	TotalEntries       int     `json:"totalEntries"`
	BillableHours      float64 `json:"billableHours"`
	NonBillableHours   float64 `json:"nonBillableHours"`
	TotalCost          float64 `json:"totalCost"`
	TotalBillableValue float64 `json:"totalBillableValue"`
}

type ImportResultDTO struct {
	BatchId         string           `json:"batchId"`
	Success         bool             `json:"success"`
	RecordsImported int              `json:"recordsImported"`
	RecordsSkipped  int              `json:"recordsSkipped"`
	Errors          []string         `json:"errors"`
	Summary         ImportSummaryDTO `json:"summary"`
	CompletedAt     time.Time        `json:"completedAt"`
}

type Handler struct {
	importService ImportService
}

func NewHandler(importService ImportService) *Handler {
	return &Handler{importService}
}

// ImportTimeEntries imports either the inline entries of the request body or,
// when a date window is given instead, the entries fetched from the
// time-tracking system for that window.
func (h *Handler) ImportTimeEntries(w http.ResponseWriter, r *http.Request) {
	log.Debug("Importing time entries")
	w.Header().Set("Content-Type", "application/json")

	var request ImportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var result ImportResult
	var err error
	if len(request.Entries) > 0 {
		entries := make([]RawTimeEntry, 0, len(request.Entries))
		for _, dto := range request.Entries {
			entries = append(entries, dtoToRawEntry(dto))
		}
		result, err = h.importService.ImportEntries(r.Context(), entries)
	} else {
		start, parseErr := time.Parse("2006-01-02", request.StartDate)
		if parseErr != nil {
			http.Error(w, "Invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, parseErr := time.Parse("2006-01-02", request.EndDate)
		if parseErr != nil {
			http.Error(w, "Invalid endDate, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		result, err = h.importService.ImportWindow(r.Context(), start, end)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ImportStatus returns the most recent import result of this process.
func (h *Handler) ImportStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, ok := h.importService.LastImport()
	if !ok {
		http.Error(w, "No import has run yet", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func dtoToRawEntry(dto RawTimeEntryDTO) RawTimeEntry {
	var end time.Time
	if dto.TimeInterval.End != nil {
		end = *dto.TimeInterval.End
	}
	return RawTimeEntry{
		Id:          dto.Id,
		UserId:      dto.UserId,
		ProjectId:   dto.ProjectId,
		Billable:    dto.Billable,
		Description: dto.Description,
		Tags:        dto.Tags,
		TimeInterval: TimeInterval{
			Start:    dto.TimeInterval.Start,
			End:      end,
			Duration: dto.TimeInterval.Duration,
		},
	}
}

func resultToDTO(result ImportResult) ImportResultDTO {
	errors := result.Errors
	if errors == nil {
		errors = []string{}
	}
	return ImportResultDTO{
		BatchId:         result.BatchId,
		Success:         result.Success,
		RecordsImported: result.RecordsImported,
		RecordsSkipped:  result.RecordsSkipped,
		Errors:          errors,
		Summary: ImportSummaryDTO{
			TotalEntries:       result.Summary.TotalEntries,
			BillableHours:      result.Summary.BillableHours,
			NonBillableHours:   result.Summary.NonBillableHours,
			TotalCost:          result.Summary.TotalCost,
			TotalBillableValue: result.Summary.TotalBillableValue,
		},
		CompletedAt: result.CompletedAt,
	}
}
