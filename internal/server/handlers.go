package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rishav781/Test-Agent/internal/generator"
	"github.com/rishav781/Test-Agent/internal/parser"
	"github.com/rishav781/Test-Agent/internal/types"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

type generateResponse struct {
	Scenarios    []types.Scenario `json:"scenarios"`
	GeneratedAt  string           `json:"generated_at"`
	InputType    string           `json:"input_type"`
	DocumentType string           `json:"document_type,omitempty"`
	APIInfo      *apiInfo         `json:"api_info,omitempty"`
	RawResponse  string           `json:"raw_response,omitempty"`
}

type apiInfo struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	EndpointsCount int    `json:"endpoints_count"`
	ParsedAt       string `json:"parsed_at"`
}

type expandRequest struct {
	Scenarios    []types.Scenario `json:"scenarios"`
	DocumentType string           `json:"document_type"`
}

// analyze handles scenario discovery from a description or image. Only
// scenario metadata comes back; detail expansion is a second request.
func (s *Server) analyze(c *gin.Context) {
	input, errMsg := s.formInput(c, true)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	result := s.generator.GenerateScenarios(c.Request.Context(), *input)
	if result.Error != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error, "raw_response": result.RawResponse})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": result.Scenarios})
}

// generate handles two shapes: a JSON body with previously discovered
// scenarios to expand, or a form body for single-shot full generation.
func (s *Server) generate(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req expandRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Scenarios == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data. Expected 'scenarios' field"})
			return
		}

		result := s.generator.ExpandScenarios(c.Request.Context(), req.Scenarios, types.DocumentKind(req.DocumentType))
		c.JSON(http.StatusOK, generateResponse{
			Scenarios:   result.Scenarios,
			GeneratedAt: time.Now().Format(time.RFC3339),
			InputType:   "selected_scenarios",
		})
		return
	}

	input, errMsg := s.formInput(c, false)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	result := s.generator.GenerateScenarios(c.Request.Context(), *input)
	if result.Error != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error, "raw_response": result.RawResponse})
		return
	}

	inputType := "description"
	if input.ImageBase64 != "" {
		inputType = "image"
	}
	c.JSON(http.StatusOK, generateResponse{
		Scenarios:   result.Scenarios,
		GeneratedAt: time.Now().Format(time.RFC3339),
		InputType:   inputType,
	})
}

func (s *Server) analyzeWebsite(c *gin.Context) {
	var url string
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body struct {
			URL string `json:"url"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			url = strings.TrimSpace(body.URL)
		}
	} else {
		url = strings.TrimSpace(c.PostForm("url"))
	}

	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a website URL"})
		return
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), url)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// generateAPITests runs the full two-phase workflow for an uploaded
// Swagger/OpenAPI or Postman document: normalize, discover scenarios, then
// expand them through the orchestrator.
func (s *Server) generateAPITests(c *gin.Context) {
	fileHeader, err := c.FormFile("api_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an API document file (Swagger/OpenAPI JSON or Postman collection)"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".json") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a JSON file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON file. Please upload a valid JSON file."})
		return
	}

	parsed, kind, err := parser.Parse(doc)
	if err != nil {
		var typeErr *parser.DocumentTypeError
		if errors.As(err, &typeErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to detect API document type. Please upload a valid Swagger/OpenAPI specification or Postman collection."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	parsedAt := time.Now().Format(time.RFC3339)

	ctx := c.Request.Context()
	discovery := s.generator.GenerateScenarios(ctx, generator.Input{
		Document:      parsed,
		DocumentKind:  kind,
		ScenariosOnly: true,
	})
	expansion := s.generator.ExpandScenarios(ctx, discovery.Scenarios, kind)

	c.JSON(http.StatusOK, generateResponse{
		Scenarios:    expansion.Scenarios,
		GeneratedAt:  time.Now().Format(time.RFC3339),
		InputType:    "api_document_" + string(kind),
		DocumentType: string(kind),
		APIInfo: &apiInfo{
			Title:          parsed.Title,
			Description:    parsed.Description,
			EndpointsCount: len(parsed.Endpoints),
			ParsedAt:       parsedAt,
		},
	})
}

// formInput extracts a description or image from a multipart form.
func (s *Server) formInput(c *gin.Context, scenariosOnly bool) (*generator.Input, string) {
	if description := strings.TrimSpace(c.PostForm("description")); description != "" {
		return &generator.Input{Description: description, ScenariosOnly: scenariosOnly}, ""
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "Please provide either a description or upload an image"
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		return nil, "Invalid image file. Allowed formats: PNG, JPG, JPEG, GIF, BMP, WebP"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "Failed to read uploaded image"
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, "Failed to read uploaded image"
	}

	return &generator.Input{
		ImageBase64:   base64.StdEncoding.EncodeToString(raw),
		ScenariosOnly: scenariosOnly,
	}, ""
}
