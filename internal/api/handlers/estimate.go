package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/request"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/response"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/validation"
)

// EstimateHandler handles HTTP requests for estimate endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// calculation to the estimateService and email to the deliveryService.
type EstimateHandler struct {
	estimateService *service.EstimateService
	deliveryService *service.DeliveryService
}

// NewEstimateHandler creates a new EstimateHandler with the provided service dependencies.
func NewEstimateHandler(estimateService *service.EstimateService, deliveryService *service.DeliveryService) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		deliveryService: deliveryService,
	}
}

// EstimateResponse is a calculated estimate. Results holds the flow-specific
// breakdown; LineItems and Totals list the same figures with display labels.
type EstimateResponse struct {
	ID              string                  `json:"id"`
	TransactionType model.TransactionType   `json:"transactionType"`
	CalculatedAt    time.Time               `json:"calculatedAt"`
	Inputs          request.EstimateRequest `json:"inputs"`
	Results         model.Breakdown         `json:"results"`
	LineItems       []model.LineItem        `json:"lineItems"`
	Totals          []model.LineItem        `json:"totals"`
	Reference       string                  `json:"reference,omitempty"`
}

// SendEstimateResponse confirms that an estimate was emailed.
type SendEstimateResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

func newEstimateResponse(e model.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:              e.ID,
		TransactionType: e.Input.Type,
		CalculatedAt:    e.CalculatedAt,
		Inputs:          request.FromInput(e.Input),
		Results:         e.Breakdown,
		LineItems:       e.Breakdown.LineItems(),
		Totals:          e.Breakdown.Totals(),
		Reference:       e.Reference,
	}
}

// Calculate handles POST requests to estimate closing costs.
//
// Endpoint: POST /api/estimate
// Request Body: EstimateRequest (transactionType, price, deposit, mortgage, newMortgage, commissionPct, isToronto, isFirstTimeBuyer, propertyType)
// Response: 201 Created with EstimateResponse
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 500 Internal Server Error if the calculation fails
func (h *EstimateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.EstimateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateEstimate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	estimate, err := h.estimateService.Calculate(r.Context(), req.ToInput())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCalculate.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, newEstimateResponse(estimate))
}

// Verify handles POST requests to recompute an estimate from its reference.
//
// Endpoint: POST /api/estimate/verify
// Request Body: VerifyEstimateRequest (reference)
// Response: 200 OK with EstimateResponse
// Error: 400 Bad Request if the body is invalid or the reference is missing
// Error: 410 Gone if the reference is forged, corrupted or expired
// Error: 500 Internal Server Error if the calculation fails
func (h *EstimateHandler) Verify(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.VerifyEstimateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	estimate, err := h.estimateService.Resolve(r.Context(), req.Reference)
	if err != nil {
		respondEstimateError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, newEstimateResponse(estimate))
}

// Email handles POST requests to email the PDF summary of an estimate.
// The emailed figures are always recomputed on the server, from the
// reference when one is given and from the inputs otherwise.
//
// Endpoint: POST /api/sendEstimate (alias POST /api/estimate/email)
// Request Body: EmailEstimateRequest (email, inputs, results, reference)
// Response: 200 OK with SendEstimateResponse
// Error: 400 Bad Request if the email is missing or invalid, no estimate was calculated, or inputs fail validation
// Error: 410 Gone if the reference is forged, corrupted or expired
// Error: 429 Too Many Requests if the client is rate limited (middleware)
// Error: 500 Internal Server Error if mail is not configured, or rendering or sending fails
func (h *EstimateHandler) Email(w http.ResponseWriter, r *http.Request) {
	if !h.deliveryService.Configured() {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrMailNotConfigured.Error(), nil)
		return
	}

	req, err := parseJSON[request.EmailEstimateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateEmailEstimate(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var estimate model.Estimate
	if req.Reference != "" {
		estimate, err = h.estimateService.Resolve(r.Context(), req.Reference)
	} else {
		estimate, err = h.estimateService.Calculate(r.Context(), req.Inputs.ToInput())
	}
	if err != nil {
		respondEstimateError(w, err)
		return
	}

	if err := h.deliveryService.SendEstimate(r.Context(), strings.TrimSpace(req.Email), estimate); err != nil {
		if errors.Is(err, apperrors.ErrMailNotConfigured) {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrMailNotConfigured.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSendEmail.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, SendEstimateResponse{OK: true, ID: estimate.ID})
}

func respondEstimateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMissingReference):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingReference.Error(), nil)
	case errors.Is(err, apperrors.ErrInvalidReference):
		response.RespondError(w, http.StatusGone, apperrors.ErrInvalidReference.Error(), nil)
	default:
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCalculate.Error(), err.Error())
	}
}
