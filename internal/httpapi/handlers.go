package httpapi

import (
	"errors"
	"net/http"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/FaizanAhmed099/tarjama/localize"
	"github.com/gin-gonic/gin"
)

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Transliterated bool   `json:"transliterated,omitempty"`
	Error          bool   `json:"error,omitempty"`
	Message        string `json:"message,omitempty"`
}

type localizeRequest struct {
	Fields []localize.Field `json:"fields"`
}

type localizeResponse struct {
	Fields []localize.Field `json:"fields"`
	Report localize.Report  `json:"report"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// handleTranslate answers 200 even when translation fails; the client shows
// the message and keeps whatever the user typed.
func (s *Server) handleTranslate(c *gin.Context) {
	var req translateRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.translator.Translate(c.Request.Context(), tarjama.TranslationRequest{
		Text:       req.Text,
		SourceLang: req.Source,
		TargetLang: tarjama.LangArabic,
	})
	if err != nil {
		s.logTranslateError(err)
		c.JSON(http.StatusOK, translateResponse{
			Error:   true,
			Message: tarjama.MessageUnavailable,
		})
		return
	}

	c.JSON(http.StatusOK, translateResponse{
		TranslatedText: res.Text,
		Transliterated: res.Transliterated,
	})
}

func (s *Server) handleLocalize(c *gin.Context) {
	var req localizeRequest
	if !s.bind(c, &req) {
		return
	}

	fields, report := s.filler.Fill(c.Request.Context(), req.Fields...)
	c.JSON(http.StatusOK, localizeResponse{Fields: fields, Report: report})
}

// bind decodes a bounded JSON body and answers 400 when it is malformed.
func (s *Server) bind(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) logTranslateError(err error) {
	var exhausted *tarjama.ExhaustedError
	if errors.As(err, &exhausted) {
		s.logger.Error().Str("reason", exhausted.Reason()).Msg("translation request failed")
		return
	}
	s.logger.Error().Err(err).Msg("translation request failed")
}
