package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/helios-eng/helios/ai"
	"github.com/helios-eng/helios/assistant"
	"github.com/helios-eng/helios/storage"
)

// chatMessage is one turn of conversation in the request payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// queryRequest is the POST /query payload.
type queryRequest struct {
	Question    string        `json:"question"`
	ChatHistory []chatMessage `json:"chat_history"`
	UseHybrid   bool          `json:"use_hybrid"`
	TopK        int           `json:"top_k"`
}

// exportRequest is the POST /export payload.
type exportRequest struct {
	MaterialName string `json:"material_name"`
	ExportFormat string `json:"export_format"`
}

func (s *Server) handleQuery(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	history := make([]ai.ChatTurn, 0, len(req.ChatHistory))
	for _, msg := range req.ChatHistory {
		role := ai.RoleAssistant
		if msg.Role == "user" {
			role = ai.RoleUser
		}
		history = append(history, ai.ChatTurn{Role: role, Content: msg.Content})
	}

	resp, err := s.assistant.Query(c.Request().Context(), assistant.QueryRequest{
		Question:  req.Question,
		History:   history,
		UseHybrid: req.UseHybrid,
		TopK:      req.TopK,
	})
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		s.logger.Error("query failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleExport(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.MaterialName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "material_name required")
	}

	record, err := s.repository.GetMaterialByName(c.Request().Context(), req.MaterialName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "material not found")
		}
		s.logger.Error("export lookup failed", "material", req.MaterialName, "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}

	format := req.ExportFormat
	if format == "" {
		format = "txt"
	}
	content, mediaType, err := renderExport(record, format)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}

	filename := fmt.Sprintf("%s.%s", req.MaterialName, format)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, mediaType, content)
}

func (s *Server) handleCompare(c echo.Context) error {
	question := c.QueryParam("q")
	if question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q required")
	}

	topK := 0
	if raw := c.QueryParam("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter k must be a positive integer")
		}
		topK = parsed
	}

	comparison, err := s.assistant.Compare(c.Request().Context(), question, topK)
	if err != nil {
		s.logger.Error("comparison failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "comparison failed")
	}

	return c.JSON(http.StatusOK, comparison)
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(c echo.Context) error {
	records, err := s.repository.ListMaterials(c.Request().Context())
	if err != nil {
		s.logger.Error("stats failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "stats failed")
	}

	embedded := 0
	for _, record := range records {
		if len(record.Vector) > 0 {
			embedded++
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"materials": len(records),
		"embedded":  embedded,
	})
}
