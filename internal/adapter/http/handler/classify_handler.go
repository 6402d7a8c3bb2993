package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/usecase"
)

// JSON escaping can grow one text byte into a six byte \u escape
const (
	jsonEscapeFactor = 6
	envelopeSlack    = 4 << 10
)

// ClassifyHandler handles classification HTTP requests
type ClassifyHandler struct {
	classifyUC usecase.ClassifyUsecase
	limits     usecase.Limits
}

// NewClassifyHandler creates a new classify handler. limits bound how much of
// a request body is read; zero fields take the usecase defaults.
func NewClassifyHandler(classifyUC usecase.ClassifyUsecase, limits usecase.Limits) *ClassifyHandler {
	if limits.MaxTextBytes <= 0 {
		limits.MaxTextBytes = usecase.DefaultMaxTextBytes
	}
	if limits.MaxBatchSize <= 0 {
		limits.MaxBatchSize = usecase.DefaultMaxBatchSize
	}
	return &ClassifyHandler{classifyUC: classifyUC, limits: limits}
}

func (h *ClassifyHandler) jsonBodyLimit(texts int) int64 {
	return int64(texts)*int64(h.limits.MaxTextBytes)*jsonEscapeFactor + envelopeSlack
}

// bindJSON decodes a JSON body read through http.MaxBytesReader. An oversized
// body is reported as ErrTextTooLong.
func (h *ClassifyHandler) bindJSON(c *gin.Context, limit int64, obj any) error {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	err := c.ShouldBindJSON(obj)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return usecase.ErrTextTooLong
	}
	return err
}

// Classify handles POST /api/v1/classify
//
//	@Summary		Classify a news text
//	@Description	Returns REAL or FAKE with the confidence of the predicted label. Accepts JSON or a text/plain body.
//	@Tags			classify
//	@Accept			json,plain
//	@Produce		json
//	@Param			request	body		usecase.ClassifyInput	true	"Text to analyze"
//	@Success		200		{object}	Response{data=usecase.ClassifyOutput}
//	@Failure		400		{object}	Response
//	@Failure		500		{object}	Response
//	@Router			/classify [post]
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var input usecase.ClassifyInput
	if isPlainText(c) {
		text, err := readPlainText(c, h.limits.MaxTextBytes)
		if err != nil {
			HandleInvalidRequest(c, err.Error())
			return
		}
		input.Text = text
	} else if err := h.bindJSON(c, h.jsonBodyLimit(1), &input); err != nil {
		if errors.Is(err, usecase.ErrTextTooLong) {
			HandleUsecaseError(c, err)
			return
		}
		HandleInvalidRequest(c, "request body must be a JSON object with a text field")
		return
	}

	output, err := h.classifyUC.Classify(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	c.Set(modelVersionKey, output.ModelVersion)
	respondSuccess(c, http.StatusOK, output)
}

// ClassifyBatch handles POST /api/v1/classify/batch
//
//	@Summary	Classify several news texts
//	@Tags		classify
//	@Accept		json
//	@Produce	json
//	@Param		request	body		usecase.ClassifyBatchInput	true	"Texts to analyze"
//	@Success	200		{object}	Response{data=usecase.ClassifyBatchOutput}
//	@Failure	400		{object}	Response
//	@Failure	500		{object}	Response
//	@Router		/classify/batch [post]
func (h *ClassifyHandler) ClassifyBatch(c *gin.Context) {
	var input usecase.ClassifyBatchInput
	if err := h.bindJSON(c, h.jsonBodyLimit(h.limits.MaxBatchSize), &input); err != nil {
		if errors.Is(err, usecase.ErrTextTooLong) {
			HandleUsecaseError(c, err)
			return
		}
		HandleInvalidRequest(c, "request body must be a JSON object with a non-empty texts array")
		return
	}

	output, err := h.classifyUC.ClassifyBatch(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	if len(output.Results) > 0 {
		c.Set(modelVersionKey, output.Results[0].ModelVersion)
	}
	respondSuccess(c, http.StatusOK, output)
}

// ListChecks handles GET /api/v1/checks
//
//	@Summary	Recent checks, newest first
//	@Tags		checks
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum entries"	default(5)
//	@Success	200		{object}	Response{data=[]usecase.CheckOutput}
//	@Router		/checks [get]
func (h *ClassifyHandler) ListChecks(c *gin.Context) {
	checks, err := h.classifyUC.RecentChecks(c.Request.Context(), ParseLimit(c))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, map[string]any{
		"checks": checks,
		"count":  len(checks),
	})
}

// GetCheck handles GET /api/v1/checks/:id
//
//	@Summary	One recent check
//	@Tags		checks
//	@Produce	json
//	@Param		id	path		string	true	"Check ID"
//	@Success	200	{object}	Response{data=usecase.CheckOutput}
//	@Failure	400	{object}	Response
//	@Failure	404	{object}	Response
//	@Router		/checks/{id} [get]
func (h *ClassifyHandler) GetCheck(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "check id")
		return
	}

	output, err := h.classifyUC.GetCheck(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetModel handles GET /api/v1/model
//
//	@Summary	Loaded model description
//	@Tags		model
//	@Produce	json
//	@Success	200	{object}	Response{data=service.ModelInfo}
//	@Router		/model [get]
func (h *ClassifyHandler) GetModel(c *gin.Context) {
	info := h.classifyUC.ModelInfo(c.Request.Context())
	c.Set(modelVersionKey, info.Version)
	respondSuccess(c, http.StatusOK, info)
}
