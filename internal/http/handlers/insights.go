package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/navneetha-rajan/mindmate/internal/http/response"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
	"github.com/navneetha-rajan/mindmate/internal/services"
)

const defaultTrackingLimit = 30

type InsightsHandler struct {
	insights services.InsightsService
}

func NewInsightsHandler(insights services.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// POST /api/insights/mood
func (h *InsightsHandler) CreateMood(c *gin.Context) {
	var req struct {
		MoodScore   *float64 `json:"mood_score"`
		MoodLabel   string   `json:"mood_label"`
		EnergyLevel int      `json:"energy_level"`
		StressLevel int      `json:"stress_level"`
		Notes       *string  `json:"notes"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if req.MoodScore == nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_mood_score", "mood_score is required"))
		return
	}
	entry, err := h.insights.CreateMood(c.Request.Context(), services.MoodInput{
		MoodScore:   *req.MoodScore,
		MoodLabel:   req.MoodLabel,
		EnergyLevel: req.EnergyLevel,
		StressLevel: req.StressLevel,
		Notes:       req.Notes,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Mood entry created successfully", "entry_id": entry.ID})
}

// GET /api/insights/mood
func (h *InsightsHandler) ListMoods(c *gin.Context) {
	f, err := parseFilter(c, defaultTrackingLimit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	moods, err := h.insights.ListMoods(c.Request.Context(), f)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, moods)
}

// GET /api/insights/mood-analysis?time_period=week|month
func (h *InsightsHandler) MoodAnalysis(c *gin.Context) {
	res, err := h.insights.MoodAnalysis(c.Request.Context(), c.DefaultQuery("time_period", "week"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"insights":      res,
		"total_entries": res.TotalEntries,
		"period":        res.TimePeriod,
	})
}

// POST /api/insights/habits
func (h *InsightsHandler) CreateHabit(c *gin.Context) {
	var req struct {
		HabitName  string   `json:"habit_name"`
		HabitValue *float64 `json:"habit_value"`
		HabitUnit  string   `json:"habit_unit"`
		Notes      *string  `json:"notes"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if req.HabitValue == nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_habit_value", "habit_value is required"))
		return
	}
	entry, err := h.insights.CreateHabit(c.Request.Context(), services.HabitInput{
		HabitName: req.HabitName,
		Value:     *req.HabitValue,
		Unit:      req.HabitUnit,
		Notes:     req.Notes,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Habit entry created successfully", "entry_id": entry.ID})
}

// GET /api/insights/habits
func (h *InsightsHandler) ListHabits(c *gin.Context) {
	f, err := parseFilter(c, defaultTrackingLimit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	habits, err := h.insights.ListHabits(c.Request.Context(), f)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, habits)
}

// GET /api/insights/habit-correlations
func (h *InsightsHandler) HabitCorrelations(c *gin.Context) {
	res, err := h.insights.HabitCorrelations(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/insights/patterns
func (h *InsightsHandler) Patterns(c *gin.Context) {
	res, err := h.insights.Patterns(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/insights/weekly-summary
func (h *InsightsHandler) WeeklySummary(c *gin.Context) {
	res, err := h.insights.WeeklySummary(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"summary": res})
}

// GET /api/insights/stats
func (h *InsightsHandler) Stats(c *gin.Context) {
	res, err := h.insights.Stats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
