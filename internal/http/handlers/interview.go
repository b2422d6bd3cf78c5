package handlers

import (
	"net/http"
	"strings"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/interview"
	"jobtracker/internal/http/response"
)

type InterviewHandler struct {
	interviews *app.InterviewService
	clock      app.Clock
}

func NewInterviewHandler(interviews *app.InterviewService, clock app.Clock) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, clock: clock}
}

// The form's 1..5 sliders arrive as *_rating and take precedence over *_score.
type interviewFields struct {
	RoundNumber       int    `json:"round_number"`
	InterviewType     string `json:"interview_type"`
	ScheduledAt       string `json:"scheduled_at"`
	Duration          *int   `json:"duration"`
	PerformanceScore  *int   `json:"performance_score"`
	EnjoymentScore    *int   `json:"enjoyment_score"`
	PerformanceRating *int   `json:"performance_rating"`
	EnjoymentRating   *int   `json:"enjoyment_rating"`
	Notes             string `json:"notes"`
	Transcript        string `json:"transcript"`
}

type interviewRequest struct {
	Interview interviewFields `json:"interview"`
}

func (h *InterviewHandler) interview(f interviewFields) (interview.Interview, error) {
	var v common.Validation
	item := interview.Interview{
		RoundNumber:      f.RoundNumber,
		InterviewType:    strings.TrimSpace(f.InterviewType),
		ScheduledAt:      parseTime(&v, "scheduled_at", f.ScheduledAt, h.clock.Zone()),
		Duration:         f.Duration,
		PerformanceScore: f.PerformanceScore,
		EnjoymentScore:   f.EnjoymentScore,
		Notes:            f.Notes,
		Transcript:       f.Transcript,
	}
	item.PerformanceScore = ratingScore(&v, "performance_rating", f.PerformanceRating, item.PerformanceScore)
	item.EnjoymentScore = ratingScore(&v, "enjoyment_rating", f.EnjoymentRating, item.EnjoymentScore)
	if err := v.Err(); err != nil {
		return interview.Interview{}, err
	}
	return item, nil
}

func ratingScore(v *common.Validation, field string, rating, fallback *int) *int {
	if rating == nil {
		return fallback
	}
	score, err := interview.ScoreFromRating(*rating)
	if err != nil {
		v.Add(field, "must be between 1 and 5")
		return fallback
	}
	return &score
}

func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req interviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.interview(req.Interview)
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.interviews.Create(r.Context(), jobID, item)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, newInterviewView(*created, h.clock.Current()))
}

func (h *InterviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	interviewID, err := idFromPath(r, "interview_id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req interviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.interview(req.Interview)
	if err != nil {
		response.Error(w, err)
		return
	}
	item.ID = interviewID
	updated, err := h.interviews.Update(r.Context(), jobID, item)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newInterviewView(*updated, h.clock.Current()))
}

func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	interviewID, err := idFromPath(r, "interview_id")
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.interviews.Delete(r.Context(), jobID, interviewID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
