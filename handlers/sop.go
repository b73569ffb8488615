package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"sopwriter/models"
	"sopwriter/services/archive"
	"sopwriter/services/sop"
	"sopwriter/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// GenerateResponse is returned by a successful generation.
type GenerateResponse struct {
	Success        bool    `json:"success"`
	SOP            string  `json:"sop"`
	GenerationTime float64 `json:"generation_time"`
	ArchiveID      string  `json:"archive_id,omitempty"`
}

// SOPHandler serves statement generation and archive lookups.
type SOPHandler struct {
	Service sop.SOPService
}

func NewSOPHandler(svc sop.SOPService) *SOPHandler {
	useFormFieldNames()
	return &SOPHandler{Service: svc}
}

var formNamesOnce sync.Once

// useFormFieldNames makes validation errors report form keys such as
// "country_of_origin" instead of Go field names.
func useFormFieldNames() {
	formNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
}

// GenerateSOPHandler binds the applicant form and runs all eight sections.
func (h *SOPHandler) GenerateSOPHandler(c *gin.Context) {
	logger := getLogger(c)

	var form models.ApplicantForm
	if err := c.ShouldBind(&form); err != nil {
		status, msg := describeBindError(err)
		utils.JSONError(c, logger, status, msg)
		return
	}

	result, err := h.Service.Generate(c.Request.Context(), form.Profile())
	if err != nil {
		var secErr *sop.SectionError
		if errors.As(err, &secErr) {
			logger.Error("Section generation failed",
				zap.String("section", secErr.Key),
				zap.Int("index", secErr.Index),
				zap.Error(secErr.Err),
			)
		}
		utils.JSONError(c, logger, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Success:        true,
		SOP:            result.Content,
		GenerationTime: result.GenerationSeconds,
		ArchiveID:      result.ArchiveID,
	})
}

// GetArchivedSOPHandler returns a previously generated statement.
func (h *SOPHandler) GetArchivedSOPHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	rec, err := h.Service.Archived(c.Request.Context(), id)
	if errors.Is(err, archive.ErrNotFound) {
		utils.JSONError(c, logger, http.StatusNotFound, "SOP not found")
		return
	}
	if err != nil {
		logger.Error("Archive lookup failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, logger, http.StatusInternalServerError, "failed to load SOP")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "record": rec})
}

func describeBindError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "request body too large"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return http.StatusBadRequest, "Missing required fields: " + strings.Join(missing, ", ")
	}
	return http.StatusBadRequest, "invalid request: " + err.Error()
}
