package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/analysis"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

func (s *Server) analyzeText(kind constants.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := s.readUpload(c)
		if !ok {
			return
		}
		res, err := s.analyzer.AnalyzeText(c.Request.Context(), in, kind)
		s.respond(c, res, err)
	}
}

func (s *Server) analyzeImages(c *gin.Context) {
	in, ok := s.readUpload(c)
	if !ok {
		return
	}
	if in.MIMEType != constants.MIMEPDF && !constants.IsImageMIME(in.MIMEType) {
		s.fail(c, common.Unsupported(in.MIMEType))
		return
	}
	res, err := s.analyzer.AnalyzeImages(c.Request.Context(), in)
	s.respond(c, res, err)
}

// readUpload reads the multipart "file" field. On failure the error
// response has already been written.
func (s *Server) readUpload(c *gin.Context) (analysis.Input, bool) {
	if s.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorBody("FILE_TOO_LARGE",
				fmt.Sprintf("upload exceeds %d bytes", s.maxUploadBytes)))
			return analysis.Input{}, false
		}
		s.fail(c, common.NewAppError(common.CodeInvalidInput, "multipart field \"file\" is required", common.ErrInvalidInput))
		return analysis.Input{}, false
	}

	f, err := fh.Open()
	if err != nil {
		s.fail(c, common.WrapError(err, "open upload"))
		return analysis.Input{}, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		s.fail(c, common.WrapError(err, "read upload"))
		return analysis.Input{}, false
	}

	in := analysis.InputFromFile(fh.Filename, data)
	if in.MIMEType == "" {
		s.fail(c, common.Unsupported(fh.Header.Get("Content-Type")))
		return analysis.Input{}, false
	}
	return in, true
}

// respond writes the analysis result. A collaborator failure still carries
// the result, with its status set to unavailable.
func (s *Server) respond(c *gin.Context, result any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
		return
	}
	code := common.HTTPStatus(err)
	s.logger.Warn("http.analysis_failed",
		"request_id", common.RequestIDFromContext(c.Request.Context()),
		"status", code, "error", err)
	body := errorBody(errorCode(err), errorMessage(err))
	if errors.Is(err, common.ErrCollaborator) {
		body["result"] = result
	}
	c.JSON(code, body)
}

func (s *Server) fail(c *gin.Context, err error) {
	code := common.HTTPStatus(err)
	s.logger.Warn("http.request_rejected",
		"request_id", common.RequestIDFromContext(c.Request.Context()),
		"status", code, "error", err)
	c.AbortWithStatusJSON(code, errorBody(errorCode(err), errorMessage(err)))
}

func errorBody(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	}
}

func errorCode(err error) string {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL"
}

func errorMessage(err error) string {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
