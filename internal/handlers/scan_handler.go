package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/rakhadenny/scangate/internal/helpers"
	"github.com/rakhadenny/scangate/internal/middleware"
	"github.com/rakhadenny/scangate/internal/verification"
)

// VerifyScan runs one scanned payload through the redemption pipeline.
// Verdicts come back as 200 with an outcome; only operational failures
// (unknown or inactive scanner, storage faults) produce error statuses.
func VerifyScan(c *gin.Context) {
	scannerID, exists := c.Get("scanner_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Scanner ID not found in token.")
		return
	}

	svc := middleware.GetVerificationService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Verification service not found.")
		return
	}

	var req verification.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	result, err := svc.VerifyScan(c.Request.Context(), scannerID.(uuid.UUID), req)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrScannerNotFound):
			helpers.RespondWithError(c, http.StatusUnauthorized, "Scanner not found.")
		case errors.Is(err, verification.ErrScannerInactive):
			helpers.RespondWithError(c, http.StatusForbidden, "Scanner account is deactivated.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to verify scan.")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

type OverrideRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// OverrideScan forces entry for the booking behind a prior scan verdict.
func OverrideScan(c *gin.Context) {
	scannerID, exists := c.Get("scanner_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Scanner ID not found in token.")
		return
	}

	svc := middleware.GetVerificationService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Verification service not found.")
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Override reason is required.")
		return
	}

	result, err := svc.OverrideScan(c.Request.Context(), c.Param("scanId"), req.Reason, scannerID.(uuid.UUID))
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrScannerNotFound):
			helpers.RespondWithError(c, http.StatusUnauthorized, "Scanner not found.")
		case errors.Is(err, verification.ErrScannerInactive):
			helpers.RespondWithError(c, http.StatusForbidden, "Scanner account is deactivated.")
		case errors.Is(err, verification.ErrPermissionDenied):
			helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to override scans.")
		case errors.Is(err, verification.ErrScanNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Scan record not found.")
		case errors.Is(err, verification.ErrNoBookingRef):
			helpers.RespondWithError(c, http.StatusBadRequest, "Scan record has no booking to override.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to override scan.")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListScanHistory returns the enriched audit trail for an event, most
// recent first.
func ListScanHistory(c *gin.Context) {
	svc := middleware.GetVerificationService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Verification service not found.")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = helpers.StringToInt(limitStr)
		if err != nil || limit < 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
			return
		}
	}

	history, err := svc.ListScanHistory(c.Request.Context(), eventID, limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve scan history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": history})
}

// IssueBookingPayload generates and stores a fresh signed payload for a
// booking and returns the transport string alongside its digest.
func IssueBookingPayload(c *gin.Context) {
	svc := middleware.GetVerificationService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Verification service not found.")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	result, err := svc.IssuePayload(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, verification.ErrBookingNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to issue payload.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// BookingQRImage renders the booking's payload as a QR symbol. Issuance is
// idempotent, so rendering always reflects a freshly stored payload.
func BookingQRImage(c *gin.Context) {
	svc := middleware.GetVerificationService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Verification service not found.")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	result, err := svc.IssuePayload(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, verification.ErrBookingNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to issue payload.")
		return
	}

	qrImage, err := qrcode.Encode(result.Payload, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
