// Package web provides HTTP handlers and REST API endpoints for the
// assistant: chat, command parsing and dispatch, direct CRM actions,
// meeting scans, and the action history.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/jarvishq/jarvis/pkg/commands"
	"github.com/jarvishq/jarvis/pkg/protocol"
	"github.com/jarvishq/jarvis/pkg/services"
)

const defaultHistoryLimit = 50

type APIHandlers struct {
	assistantService  *services.Assistant
	automationService *services.Automation
	executor          protocol.ActionExecutor
	validator         *validator.Validate
}

func NewAPIHandlers(
	assistantService *services.Assistant,
	automationService *services.Automation,
	executor protocol.ActionExecutor,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		assistantService:  assistantService,
		automationService: automationService,
		executor:          executor,
		validator:         validator,
	}
}

// Chat forwards the message to the assistant and returns its reply along
// with the outcome of any command found in that reply.
func (h *APIHandlers) Chat(c fiber.Ctx) error {
	var req ChatRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.assistantService.HandleChat(c.Context(), req.Message)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

// ParseCommand extracts a command from text without dispatching it.
func (h *APIHandlers) ParseCommand(c fiber.Ctx) error {
	var req ParseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	cmd := commands.Parse(req.Text)
	if cmd == nil {
		return c.JSON(ParseResponse{Matched: false})
	}

	return c.JSON(ParseResponse{Matched: true, Action: cmd.Action(), Command: cmd})
}

// DispatchCommand executes one command built from explicit fields.
func (h *APIHandlers) DispatchCommand(c fiber.Ctx) error {
	var req DispatchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := req.toCommand()
	if err != nil {
		return handleServiceError(c, err)
	}

	outcome := h.assistantService.Execute(c.Context(), "direct", cmd)

	return c.JSON(outcome)
}

// UpdateContact patches contact fields on the CRM directly. Field updates
// have no command grammar, so they bypass the dispatcher.
func (h *APIHandlers) UpdateContact(c fiber.Ctx) error {
	var req UpdateContactRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.executor.UpdateContact(c.Context(), req.ContactID, req.Fields); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"contact_id": req.ContactID, "updated": true})
}

// ScanMeeting runs the automation rules against one recorded meeting.
func (h *APIHandlers) ScanMeeting(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Meeting ID is required")
	}

	outcomes, err := h.automationService.ScanMeeting(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"meeting_id": id, "outcomes": outcomes})
}

// GetHistory lists recent dispatch outcomes, newest first.
func (h *APIHandlers) GetHistory(c fiber.Ctx) error {
	limit := defaultHistoryLimit

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return badRequest(c, "Invalid limit parameter")
		}

		limit = parsed
	}

	entries, err := h.assistantService.History(c.Context(), limit)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"entries": entries, "limit": limit})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	storeCheck, ok := h.assistantService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Jarvis API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if ok {
		status = "healthy"
		message = "Jarvis API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"history": storeCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
