package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/username/creditline/backend/src/logger"
	"github.com/username/creditline/backend/src/models"
	"github.com/username/creditline/backend/src/services"
	"github.com/username/creditline/backend/src/tradesys"
	"github.com/username/creditline/backend/src/utils"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func memberIDFromPath(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("memberID"), 10, 64)
}

func assetClassFromQuery(r *http.Request) (models.InstrumentType, bool) {
	switch value := r.URL.Query().Get("instrument"); value {
	case "":
		return "", true
	case string(models.InstrumentAdvance), string(models.InstrumentLetterOfCredit), string(models.InstrumentOther):
		return models.InstrumentType(value), true
	default:
		return "", false
	}
}

func (h *ActivityHandler) HandleGetMemberActivity(w http.ResponseWriter, r *http.Request) {
	memberID, err := memberIDFromPath(r)
	if err != nil {
		utils.SendJSONError(w, "invalid member id", http.StatusBadRequest)
		return
	}
	assetClass, ok := assetClassFromQuery(r)
	if !ok {
		utils.SendJSONError(w, "invalid instrument filter", http.StatusBadRequest)
		return
	}

	feed, err := h.activityService.GetMemberActivity(r.Context(), memberID, assetClass)
	if err != nil {
		if errors.Is(err, tradesys.ErrTransport) {
			// Transport detail stays in the logs; members get a generic
			// unavailable state.
			logger.L.Error("Trade booking system unavailable", "memberID", memberID, "error", err)
			utils.SendJSONError(w, "activity data unavailable", http.StatusServiceUnavailable)
			return
		}
		logger.L.Error("Failed to build member activity feed", "memberID", memberID, "error", err)
		utils.SendJSONError(w, "error retrieving member activity", http.StatusInternalServerError)
		return
	}

	etag, err := utils.GenerateETag(feed)
	if err == nil {
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(feed); err != nil {
		logger.L.Error("Error encoding activity feed response", "memberID", memberID, "error", err)
	}
}

func (h *ActivityHandler) HandleGetMemberActivitySummary(w http.ResponseWriter, r *http.Request) {
	memberID, err := memberIDFromPath(r)
	if err != nil {
		utils.SendJSONError(w, "invalid member id", http.StatusBadRequest)
		return
	}

	summary, err := h.activityService.GetMemberActivitySummary(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, tradesys.ErrTransport) {
			logger.L.Error("Trade booking system unavailable", "memberID", memberID, "error", err)
			utils.SendJSONError(w, "activity data unavailable", http.StatusServiceUnavailable)
			return
		}
		logger.L.Error("Failed to build member activity summary", "memberID", memberID, "error", err)
		utils.SendJSONError(w, "error retrieving member activity summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error encoding activity summary response", "memberID", memberID, "error", err)
	}
}

func (h *ActivityHandler) HandleInvalidateMemberCache(w http.ResponseWriter, r *http.Request) {
	memberID, err := memberIDFromPath(r)
	if err != nil {
		utils.SendJSONError(w, "invalid member id", http.StatusBadRequest)
		return
	}
	h.activityService.InvalidateMemberCache(r.Context(), memberID)
	w.WriteHeader(http.StatusNoContent)
}
