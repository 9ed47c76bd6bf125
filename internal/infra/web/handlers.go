package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"

	"marvel-tutor/internal/domain"
	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/infra/logging"
	"marvel-tutor/internal/usecase"
)

type chatRequest struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	TurnCount int    `json:"turn_count,omitempty"`
	Focus     string `json:"focus,omitempty"`
}

type historyEntry struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	TS      time.Time `json:"ts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// session returns the request's validated session claims, minting an
// anonymous session (no LMS attribution) on first visit.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *SessionClaims {
	if claims, err := s.auth.ParseFromRequest(r); err == nil {
		return claims
	}
	claims := SessionClaims{SessionID: uuid.NewString()}
	if _, err := s.auth.Mint(w, claims); err != nil {
		s.log.Error().Err(err).Msg("mint session")
	}
	return &claims
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	ctx := logging.WithSessID(r.Context(), sess.SessionID)
	if sess.LMSUserID != "" {
		ctx = logging.WithUserID(ctx, sess.LMSUserID)
		ctx = logging.WithCourseID(ctx, sess.CourseID)
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	res, err := s.chatUC.SendMessage(ctx, usecase.TurnRequest{
		SessionID:   sess.SessionID,
		Message:     req.Message,
		Level:       model.ParseLevel(req.Level),
		LMSUserID:   sess.LMSUserID,
		LMSUserName: sess.Name,
		LMSCourseID: sess.CourseID,
		CourseTitle: sess.CourseTitle,
		Role:        model.UserRole(sess.Role),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("chat turn failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:     res.Reply,
		TurnCount: res.TurnCount,
		Focus:     string(res.Focus),
	})
}

func (s *Server) handleMyHistory(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess.LMSUserID == "" {
		// Anonymous sessions have no durable log.
		writeJSON(w, http.StatusOK, []historyEntry{})
		return
	}
	msgs, err := s.historyUC.MyHistory(r.Context(), sess.LMSUserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, toHistoryEntries(msgs))
}

func (s *Server) handleCourseHistory(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	msgs, err := s.historyUC.CourseHistory(r.Context(), sess.CourseID, model.UserRole(sess.Role))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "Instructor only"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, toHistoryEntries(msgs))
}

func (s *Server) handleLTILogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid login request"})
		return
	}
	target, err := s.tool.LoginRedirectURL(r.Context(), r.Form.Get("login_hint"), r.Form.Get("lti_message_hint"))
	if err != nil {
		s.log.Error().Err(err).Msg("lti login")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleLTILaunch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid launch request"})
		return
	}
	launch, err := s.tool.ValidateLaunch(r.Context(), r.PostFormValue("state"), r.PostFormValue("id_token"))
	if err != nil {
		s.log.Warn().Err(err).Msg("lti launch rejected")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "launch validation failed"})
		return
	}

	claims := SessionClaims{
		SessionID:   uuid.NewString(),
		LMSUserID:   launch.LMSUserID,
		Name:        launch.Name,
		CourseID:    launch.LMSCourseID,
		CourseTitle: launch.CourseTitle,
		Role:        string(launch.Role),
	}
	if _, err := s.auth.Mint(w, claims); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	s.renderPage(w, launchPage, map[string]string{"Name": launch.Name})
}

func (s *Server) handleJWKS(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tool.PublicJWKS())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.renderPage(w, indexPage, map[string]string{"Name": sess.Name})
}

func toHistoryEntries(msgs []*model.Message) []historyEntry {
	out := make([]historyEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, historyEntry{Role: string(m.Role), Content: m.Content, TS: m.Timestamp})
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) renderPage(w http.ResponseWriter, page *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := page.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("render page")
	}
}
