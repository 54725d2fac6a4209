package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
	"github.com/heartmarshall/library-backend/pkg/ctxutil"
)

// circulationService defines the minimal interface needed by LoansHandler.
type circulationService interface {
	Borrow(ctx context.Context, memberID, bookID uuid.UUID) (*domain.Loan, error)
	Return(ctx context.Context, memberID, loanID uuid.UUID) (*domain.Loan, error)
	ListMemberLoans(ctx context.Context, memberID uuid.UUID) ([]domain.Loan, error)
}

// LoansHandler serves borrow/return REST endpoints. The eagerNotify flag is
// the only difference between the API mounts: it is echoed back as the
// notification_sent field and has no effect on delivery, which is always
// asynchronous.
type LoansHandler struct {
	svc         circulationService
	log         *slog.Logger
	eagerNotify bool
}

// NewLoansHandler creates a LoansHandler.
func NewLoansHandler(svc circulationService, logger *slog.Logger, eagerNotify bool) *LoansHandler {
	return &LoansHandler{svc: svc, log: logger.With("handler", "loans"), eagerNotify: eagerNotify}
}

type borrowRequest struct {
	BookID string `json:"book_id"`
}

type loanResponse struct {
	ID               string     `json:"id"`
	BookID           string     `json:"book_id"`
	MemberID         string     `json:"member_id"`
	BorrowDate       time.Time  `json:"borrow_date"`
	ReturnDate       *time.Time `json:"return_date"`
	NotificationSent bool       `json:"notification_sent"`
}

// Borrow handles POST /borrow.
func (h *LoansHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	memberID, ok := ctxutil.MemberIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	loan, err := h.svc.Borrow(r.Context(), memberID, bookID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toLoanResponse(loan))
}

// Return handles POST /borrow/{id}/return.
func (h *LoansHandler) Return(w http.ResponseWriter, r *http.Request) {
	memberID, ok := ctxutil.MemberIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	loanID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, err := h.svc.Return(r.Context(), memberID, loanID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toLoanResponse(loan))
}

// ListByMember handles GET /borrow/member/{id}.
func (h *LoansHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := ctxutil.MemberIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pathID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}
	// Members only see their own loans; another member's list looks empty
	// in the same way a missing member would.
	if pathID != memberID {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	loans, err := h.svc.ListMemberLoans(r.Context(), memberID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]loanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, h.toLoanResponse(&loans[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *LoansHandler) toLoanResponse(l *domain.Loan) loanResponse {
	return loanResponse{
		ID:               l.ID.String(),
		BookID:           l.BookID.String(),
		MemberID:         l.MemberID.String(),
		BorrowDate:       l.CreatedAt,
		ReturnDate:       l.ClosedAt,
		NotificationSent: h.eagerNotify,
	}
}
