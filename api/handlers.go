package api

import (
	"fmt"
	"net/http"
	"time"

	"santas-draw/auth"
	"santas-draw/domain"
	"santas-draw/errors"
	"santas-draw/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type participantPayload struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email" validate:"required,email"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Household string   `json:"household"`
	Excludes  []string `json:"excludes" validate:"dive,email"`
}

type createDrawRequest struct {
	RequireAddress bool                 `json:"require_address"`
	RequirePhone   bool                 `json:"require_phone"`
	DrawDate       *time.Time           `json:"draw_date"`
	Participants   []participantPayload `json:"participants" validate:"required,min=3,dive"`
}

type drawResponse struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	Type           string     `json:"type"`
	InviteCode     string     `json:"invite_code"`
	RequireAddress bool       `json:"require_address"`
	RequirePhone   bool       `json:"require_phone"`
	DrawDate       *time.Time `json:"draw_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type participantResponse struct {
	ID        string `json:"id"`
	DrawID    string `json:"draw_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
}

type resultResponse struct {
	GiverID    string `json:"giver_id"`
	ReceiverID string `json:"receiver_id"`
}

func toDrawResponse(draw domain.Draw) drawResponse {
	return drawResponse{
		ID:             string(draw.ID),
		Status:         string(draw.Status),
		Type:           string(draw.Type),
		InviteCode:     draw.InviteCode,
		RequireAddress: draw.RequireAddress,
		RequirePhone:   draw.RequirePhone,
		DrawDate:       draw.DrawDate,
		CreatedAt:      draw.CreatedAt,
	}
}

func toParticipantInput(payload participantPayload) services.ParticipantInput {
	return services.ParticipantInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Address:   payload.Address,
		Phone:     payload.Phone,
		Household: payload.Household,
		Excludes:  payload.Excludes,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.authService.Register(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: string(token)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.authService.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: string(token)})
}

func (s *Server) handleCreateDraw(w http.ResponseWriter, r *http.Request) {
	var req createDrawRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	participants := make([]services.ParticipantInput, 0, len(req.Participants))
	for _, payload := range req.Participants {
		participants = append(participants, toParticipantInput(payload))
	}

	draw, err := s.drawService.CreateDraw(services.CreateDrawRequest{
		CreatorID:      auth.UserID(r.Context()),
		RequireAddress: req.RequireAddress,
		RequirePhone:   req.RequirePhone,
		DrawDate:       req.DrawDate,
		Participants:   participants,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.monitoring.IncrDrawsCreated()
	writeJSON(w, http.StatusCreated, toDrawResponse(draw))
}

func (s *Server) handleGetDraw(w http.ResponseWriter, r *http.Request) {
	draw, err := s.drawService.GetDraw(domain.DrawID(chi.URLParam(r, "draw_id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDrawResponse(draw))
}

// requireOwnership rejects lifecycle operations on a user-created draw
// from anyone but its creator. Anonymous draws are controlled by whoever
// holds the draw ID.
func (s *Server) requireOwnership(r *http.Request, draw domain.Draw) error {
	if draw.Type != domain.TypeUserCreated {
		return nil
	}
	if auth.UserID(r.Context()) != draw.CreatorID {
		return fmt.Errorf("draw belongs to another user")
	}
	return nil
}

func (s *Server) handleExecuteDraw(w http.ResponseWriter, r *http.Request) {
	drawID := domain.DrawID(chi.URLParam(r, "draw_id"))

	draw, err := s.drawService.GetDraw(drawID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.requireOwnership(r, draw); err != nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
		return
	}

	if err := s.drawService.RequestDraw(drawID); err != nil {
		writeError(w, err)
		return
	}

	// Matching runs asynchronously: poll the draw status, results appear
	// once it flips to completed.
	writeJSON(w, http.StatusAccepted, map[string]string{
		"draw_id": string(drawID),
		"status":  string(domain.StatusInProgress),
	})
}

func (s *Server) handleCancelDraw(w http.ResponseWriter, r *http.Request) {
	drawID := domain.DrawID(chi.URLParam(r, "draw_id"))

	draw, err := s.drawService.GetDraw(drawID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.requireOwnership(r, draw); err != nil {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
		return
	}

	if err := s.drawService.Cancel(drawID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"draw_id": string(drawID),
		"status":  string(domain.StatusCancelled),
	})
}

func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	drawID := domain.DrawID(chi.URLParam(r, "draw_id"))

	results, err := s.drawService.GetResults(drawID)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(results) == 0 {
		writeError(w, errors.ErrResultNotFound)
		return
	}

	payload := make([]resultResponse, 0, len(results))
	for _, result := range results {
		payload = append(payload, resultResponse{
			GiverID:    string(result.GiverID),
			ReceiverID: string(result.ReceiverID),
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	drawID := domain.DrawID(chi.URLParam(r, "draw_id"))
	participantID := domain.ParticipantID(chi.URLParam(r, "participant_id"))

	result, err := s.drawService.GetParticipantMatch(drawID, participantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{
		GiverID:    string(result.GiverID),
		ReceiverID: string(result.ReceiverID),
	})
}

// handleGetInvite resolves an invite code into the public view of a draw,
// which is what the join page renders.
func (s *Server) handleGetInvite(w http.ResponseWriter, r *http.Request) {
	draw, err := s.drawService.GetDrawByInviteCode(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDrawResponse(draw))
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var payload participantPayload
	if err := readJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	participant, err := s.drawService.Join(chi.URLParam(r, "code"), toParticipantInput(payload))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, participantResponse{
		ID:        string(participant.ID),
		DrawID:    string(participant.DrawID),
		FirstName: participant.FirstName,
		LastName:  participant.LastName,
		Email:     participant.Email,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.monitoring.GetLatest())
}
