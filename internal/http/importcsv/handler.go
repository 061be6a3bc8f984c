package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	txhttp "github.com/MrJamesThe3rd/cedar/internal/http/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/http/respond"
	"github.com/MrJamesThe3rd/cedar/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importSuccessResponse struct {
	Imported     int                `json:"imported"`
	Transactions []txhttp.Response `json:"transactions"`
}

// importCSV admits every row of the uploaded file or none of them. The
// optional charset form field overrides encoding detection.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Message(w, r, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	txs, err := h.importSvc.Import(r.Context(), file, r.FormValue("charset"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, importSuccessResponse{
		Imported:     len(txs),
		Transactions: txhttp.ToResponseList(txs),
	})
}
