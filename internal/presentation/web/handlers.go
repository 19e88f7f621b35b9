package web

import (
	_ "embed"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tesso57/dietplan/internal/application/usecase"
	"github.com/tesso57/dietplan/internal/domain/plan"
	"github.com/tesso57/dietplan/internal/domain/profile"
	"github.com/tesso57/dietplan/internal/infrastructure/ai"
	"github.com/tesso57/dietplan/internal/infrastructure/history"
)

//go:embed index.html
var indexHTML []byte

// DownloadName is the file name offered to browsers.
const DownloadName = "diet_plan.pdf"

type planRequest struct {
	Age      int     `json:"age" binding:"required"`
	Gender   string  `json:"gender" binding:"required"`
	WeightKg float64 `json:"weight_kg" binding:"required"`
	HeightCm float64 `json:"height_cm" binding:"required"`
	Goal     string  `json:"goal" binding:"required"`
	DietType string  `json:"diet_type"`
}

type sectionResponse struct {
	Heading  string `json:"heading,omitempty"`
	Provider string `json:"provider"`
	Text     string `json:"text"`
	Failed   bool   `json:"failed,omitempty"`
}

type planResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Text      string            `json:"text"`
	Sections  []sectionResponse `json:"sections"`
	PDFURL    string            `json:"pdf_url"`
}

type recordResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Providers []string  `json:"providers"`
	Policy    string    `json:"policy"`
	Document  string    `json:"document,omitempty"`
	PDFPath   string    `json:"pdf_path"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "providers": s.providers})
}

func (s *Server) handleCreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	p, err := req.profile()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.planner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": usecase.ErrNoProviders.Error()})
		return
	}

	out, err := s.planner.Generate(c.Request.Context(), p)
	if err != nil {
		status := statusFor(err)
		s.logger.Warn("plan generation failed", "status", status, "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toPlanResponse(out))
}

func (s *Server) handleDownload(c *gin.Context) {
	info, err := os.Stat(s.pdfPath)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "No plan has been generated yet"})
		return
	}
	c.FileAttachment(s.pdfPath, DownloadName)
}

func (s *Server) handleListPlans(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusOK, gin.H{"plans": []recordResponse{}})
		return
	}
	n, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(history.DefaultListLimit)))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
		return
	}

	records, err := s.history.List(n)
	if err != nil {
		s.logger.Error("failed to list plans", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}
	plans := make([]recordResponse, 0, len(records))
	for _, r := range records {
		resp := toRecordResponse(r)
		resp.Document = ""
		plans = append(plans, resp)
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (s *Server) handleGetPlan(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan history is disabled"})
		return
	}
	record, err := s.history.Get(c.Param("id"))
	if errors.Is(err, history.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if err != nil {
		s.logger.Error("failed to load plan", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan"})
		return
	}
	c.JSON(http.StatusOK, toRecordResponse(record))
}

func (r planRequest) profile() (profile.Profile, error) {
	gender, err := profile.ParseGender(r.Gender)
	if err != nil {
		return profile.Profile{}, err
	}
	goal, err := profile.ParseGoal(r.Goal)
	if err != nil {
		return profile.Profile{}, err
	}
	diet, err := profile.ParseDietType(r.DietType)
	if err != nil {
		return profile.Profile{}, err
	}
	p := profile.Profile{
		Age:      r.Age,
		Gender:   gender,
		WeightKg: r.WeightKg,
		HeightCm: r.HeightCm,
		Goal:     goal,
		DietType: diet,
	}
	return p, p.Validate()
}

func statusFor(err error) int {
	var perr *ai.Error
	switch {
	case errors.Is(err, profile.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNoProviders):
		return http.StatusServiceUnavailable
	case errors.As(err, &perr):
		if perr.Kind == ai.KindNetwork {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toPlanResponse(out usecase.DietPlan) planResponse {
	sections := make([]sectionResponse, 0, len(out.Document.Sections))
	for _, sec := range out.Document.Sections {
		sections = append(sections, sectionResponse{
			Heading:  sec.Heading,
			Provider: sec.ProviderID,
			Text:     sec.Text,
			Failed:   sec.Failed,
		})
	}
	return planResponse{
		ID:        out.ID,
		CreatedAt: out.CreatedAt,
		Text:      out.Text,
		Sections:  sections,
		PDFURL:    "/api/plans/latest.pdf",
	}
}

func toRecordResponse(r plan.Record) recordResponse {
	providers := r.Providers
	if providers == nil {
		providers = []string{}
	}
	return recordResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Providers: providers,
		Policy:    string(r.Policy),
		Document:  r.Document,
		PDFPath:   r.PDFPath,
	}
}
