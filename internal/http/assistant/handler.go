package assistant

//go:generate mockgen -source=handler.go -destination=assistant_mock.go -package=assistant

import (
	"cmp"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
	txhttp "github.com/MrJamesThe3rd/cedar/internal/http/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/http/respond"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

const maxReceiptSize = 10 << 20

// Assistant is the Gemini-backed client the handler talks to.
type Assistant interface {
	Chat(ctx context.Context, prompt string, txs []*transaction.Transaction, mode assistant.Mode) (*assistant.Reply, error)
	AnalyzeReceipt(ctx context.Context, mimeType string, data []byte) (*assistant.Reply, error)
	Speak(ctx context.Context, text string) ([]byte, error)
	GenerateImage(ctx context.Context, prompt string, aspect assistant.AspectRatio, size assistant.ImageSize) (string, error)
}

type Handler struct {
	ai     Assistant
	videos *assistant.VideoJobs
	txSvc  *transaction.Service
}

func NewHandler(ai Assistant, videos *assistant.VideoJobs, txSvc *transaction.Service) *Handler {
	return &Handler{
		ai:     ai,
		videos: videos,
		txSvc:  txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/chat", h.chat)
	r.Post("/receipt", h.receipt)
	r.Post("/confirm", h.confirm)
	r.Post("/speech", h.speech)
	r.Post("/image", h.image)
	r.Post("/video", h.startVideo)
	r.Get("/video/{id}", h.getVideo)
	r.Get("/video/{id}/content", h.videoContent)
}

type sourceResponse struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type replyResponse struct {
	Text     string              `json:"text"`
	Proposal *assistant.Proposal `json:"proposal,omitempty"`
	Sources  []sourceResponse    `json:"sources"`
}

func toReplyResponse(reply *assistant.Reply) replyResponse {
	resp := replyResponse{
		Text:     reply.Text,
		Proposal: reply.Proposal,
		Sources:  make([]sourceResponse, 0, len(reply.Sources)),
	}

	for _, s := range reply.Sources {
		resp.Sources = append(resp.Sources, sourceResponse{Title: s.Title, URI: s.URI})
	}

	return resp
}

type chatRequest struct {
	Prompt string `json:"prompt"`
	Mode   string `json:"mode"`
}

// chat answers with the whole transaction history as context.
func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	mode, err := assistant.ParseMode(req.Mode)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.txSvc.List(r.Context(), transaction.ListFilter{})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	reply, err := h.ai.Chat(r.Context(), req.Prompt, txs, mode)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toReplyResponse(reply))
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		respond.Message(w, r, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "receipt field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "failed to read receipt: "+err.Error())
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	reply, err := h.ai.AnalyzeReceipt(r.Context(), mimeType, data)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toReplyResponse(reply))
}

type confirmResponse struct {
	Message     string          `json:"message"`
	Transaction txhttp.Response `json:"transaction"`
}

// confirm admits a proposal the user has accepted. It is validated like any
// other candidate.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var p assistant.Proposal
	if !respond.Decode(w, r, &p) {
		return
	}

	tx, err := h.txSvc.Admit(r.Context(), p.Candidate())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().
		Str("id", tx.ID.String()).
		Str("category", string(tx.Category)).
		Msg("proposal confirmed")

	respond.JSON(w, r, http.StatusCreated, confirmResponse{
		Message:     assistant.ConfirmationMessage(tx.Category),
		Transaction: txhttp.ToResponse(tx),
	})
}

type speechRequest struct {
	Text string `json:"text"`
}

func (h *Handler) speech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	pcm, err := h.ai.Speak(r.Context(), req.Text)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(assistant.WAV(pcm)); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write audio")
	}
}

type imageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	Size        string `json:"size"`
}

type imageResponse struct {
	DataURL string `json:"data_url"`
}

func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	aspect := assistant.AspectRatio(cmp.Or(strings.TrimSpace(req.AspectRatio), "1:1"))
	size := assistant.ImageSize(strings.ToUpper(cmp.Or(strings.TrimSpace(req.Size), "1K")))

	url, err := h.ai.GenerateImage(r.Context(), req.Prompt, aspect, size)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, imageResponse{DataURL: url})
}

type videoRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

type videoJobResponse struct {
	ID          uuid.UUID           `json:"id"`
	Prompt      string              `json:"prompt"`
	AspectRatio string              `json:"aspect_ratio"`
	Status      assistant.JobStatus `json:"status"`
	Error       string              `json:"error,omitempty"`
	TimedOut    bool                `json:"timed_out,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

func toJobResponse(j assistant.VideoJob) videoJobResponse {
	return videoJobResponse{
		ID:          j.ID,
		Prompt:      j.Prompt,
		AspectRatio: string(j.Aspect),
		Status:      j.Status,
		Error:       j.Error,
		TimedOut:    j.TimedOut,
		CreatedAt:   j.CreatedAt,
		CompletedAt: j.CompletedAt,
	}
}

// startVideo returns immediately; clients poll the job until it settles.
func (h *Handler) startVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	job, err := h.videos.Start(req.Prompt, assistant.AspectRatio(cmp.Or(strings.TrimSpace(req.AspectRatio), "16:9")))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/assistant/video/"+job.ID.String())
	respond.JSON(w, r, http.StatusAccepted, toJobResponse(job))
}

func (h *Handler) getVideo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	job, err := h.videos.Get(id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toJobResponse(job))
}

func (h *Handler) videoContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	v, err := h.videos.Content(id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", v.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="cedar-`+id.String()+`.mp4"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(v.Data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write video")
	}
}
