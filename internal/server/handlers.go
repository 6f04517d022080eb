package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/career-advisor/internal/ai"
	"github.com/spigell/career-advisor/internal/analysis"
	"github.com/spigell/career-advisor/internal/document"
	"github.com/spigell/career-advisor/internal/extract"
)

const (
	// multipartOverhead leaves room for boundaries and part headers around the file.
	multipartOverhead = 1 << 20
	maxUploadBody     = document.MaxSize + multipartOverhead

	defaultGuidanceMatch  = 85
	defaultGuidanceGrowth = "High"
)

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	Profile extract.Profile `json:"profile"`
	Warning string          `json:"warning,omitempty"`
}

type analyzeResponse struct {
	ID     string           `json:"id"`
	Result *analysis.Result `json:"result"`
}

type guidanceRequest struct {
	Title  string   `json:"title"`
	Match  *float64 `json:"match"`
	Growth string   `json:"growth"`
	Skills []string `json:"skills"`
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) extract(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var req extractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
			return
		}
		c.JSON(http.StatusOK, extractResponse{Profile: extract.Extract(req.Text)})
		return
	}

	if c.Request.ContentLength > maxUploadBody {
		c.JSON(http.StatusRequestEntityTooLarge, errorBody(document.ErrTooLarge.Error()))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	header, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorBody(document.ErrTooLarge.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, errorBody("No file selected"))
		return
	}

	if !document.Allowed(header.Filename) {
		c.JSON(http.StatusBadRequest, errorBody("Invalid file type"))
		return
	}

	if header.Size > document.MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, errorBody(document.ErrTooLarge.Error()))
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("failed to open upload"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("failed to read upload"))
		return
	}

	text, err := document.ExtractText(header.Filename, data)
	if err != nil {
		s.logger.Warn("could not extract text from document",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, extractResponse{
			Profile: extract.Profile{},
			Warning: "Could not extract text from the file. Please fill in your details manually.",
		})
		return
	}

	c.JSON(http.StatusOK, extractResponse{Profile: extract.Extract(text)})
}

func (s *Server) analyze(c *gin.Context) {
	var req analysis.UserSkills
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	id, result, err := s.pipeline.Run(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody("analysis failed"))
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{ID: id, Result: result})
}

func (s *Server) getAnalysis(c *gin.Context) {
	result, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, analysis.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorBody("analysis not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody("failed to load analysis"))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) careerGuidance(c *gin.Context) {
	req := ai.GuidanceRequest{
		Title:  c.Param("title"),
		Match:  defaultGuidanceMatch,
		Growth: c.DefaultQuery("growth", defaultGuidanceGrowth),
	}

	if raw := c.Query("match"); raw != "" {
		match, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody("match must be a number"))
			return
		}
		req.Match = match
	}

	if id := c.Query("analysis_id"); id != "" {
		result, err := s.store.Get(c.Request.Context(), id)
		if errors.Is(err, analysis.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("analysis not found"))
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, errorBody("failed to load analysis"))
			return
		}
		req.UserSkills = result.UserSkills.All()
	}

	s.respondGuidance(c, req)
}

func (s *Server) guidance(c *gin.Context) {
	var body guidanceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if strings.TrimSpace(body.Title) == "" || body.Match == nil || strings.TrimSpace(body.Growth) == "" {
		c.JSON(http.StatusBadRequest, errorBody("Missing required fields"))
		return
	}

	s.respondGuidance(c, ai.GuidanceRequest{
		Title:      body.Title,
		Match:      *body.Match,
		Growth:     body.Growth,
		UserSkills: body.Skills,
	})
}

func (s *Server) respondGuidance(c *gin.Context, req ai.GuidanceRequest) {
	guidance, err := s.advisor.Guide(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, errorBody("failed to generate guidance"))
		return
	}

	c.JSON(http.StatusOK, guidance)
}
