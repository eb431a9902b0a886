package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/service"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type UploadHandler struct {
	uploads UploadAPI
}

func NewUploadHandler(uploads UploadAPI) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// UploadDressImage stores the multipart "file" and answers {url, message}.
// Failures answer {error}.
func (h *UploadHandler) UploadDressImage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UploadDressImage")

	header, err := c.FormFile("file")
	if err != nil {
		logger.WarnWithContext(ctx, "Upload without file part").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildUploadErrorResponse("File is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to open uploaded file").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildUploadErrorResponse("Failed to read file"))
		return
	}
	defer file.Close()

	url, err := h.uploads.UploadDressImage(ctx, service.UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(constants.HeaderContentType),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Image upload rejected").
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildUploadErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildUploadResponse(url, constants.MsgImageUploaded))
}
