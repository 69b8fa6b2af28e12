package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verimail/verimail/internal/domain"
)

// codePattern is the wire contract for submitted codes.
var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// verificationUsecaser is the subset of VerificationUsecase the handler
// needs. Defined here (point of use) so tests can inject a fake.
type verificationUsecaser interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	Status(ctx context.Context, email string) (domain.VerificationStatus, error)
}

type VerificationHandler struct {
	usecase verificationUsecaser
	logger  *slog.Logger

	// exposeCode controls whether /generate echoes the plaintext code.
	exposeCode bool
}

func NewVerificationHandler(usecase verificationUsecaser, logger *slog.Logger, exposeCode bool) *VerificationHandler {
	return &VerificationHandler{
		usecase:    usecase,
		logger:     logger.With("component", "verification_handler"),
		exposeCode: exposeCode,
	}
}

type generateRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type generateData struct {
	Code  string `json:"code,omitempty"`
	Email string `json:"email"`
}

// POST /api/verification/generate
func (h *VerificationHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		reject(c, domain.ValidationError(errInvalidEmail))
		return
	}

	code, err := h.usecase.Issue(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, "issue code", err)
		return
	}

	data := generateData{Email: req.Email}
	if h.exposeCode {
		data.Code = code
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code"`
}

// POST /api/verification/verify
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, domain.ValidationError(errInvalidEmail))
		return
	}
	if !codePattern.MatchString(req.Code) {
		reject(c, domain.ValidationError(errInvalidCodeFmt))
		return
	}

	ok, err := h.usecase.Verify(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.fail(c, "verify code", err)
		return
	}
	if !ok {
		// A miss is a negative result, not a failure kind.
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errInvalidCode})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"email":   req.Email,
		"message": "Email verified successfully",
	}})
}

type statusRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type statusData struct {
	Email               string     `json:"email"`
	IsVerified          bool       `json:"isVerified"`
	PendingVerification bool       `json:"pendingVerification"`
	ExpiresAt           *time.Time `json:"expiresAt"`
}

// POST /api/verification/status
func (h *VerificationHandler) Status(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, domain.ValidationError(errInvalidEmail))
		return
	}

	st, err := h.usecase.Status(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, "check status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": statusData{
		Email:               req.Email,
		IsVerified:          st.Verified,
		PendingVerification: st.PendingCode,
		ExpiresAt:           st.ExpiresAt,
	}})
}

// fail maps tagged domain errors to their status and message; anything
// else is wrapped as unknown. Full detail goes to the server log only.
func (h *VerificationHandler) fail(c *gin.Context, op string, err error) {
	h.logger.Error(op, "error", err)

	var derr *domain.Error
	if !errors.As(err, &derr) {
		derr = domain.UnknownError(err)
	}
	reject(c, derr)
}

func reject(c *gin.Context, derr *domain.Error) {
	c.JSON(derr.Status, gin.H{"success": false, "error": derr.Message})
}
