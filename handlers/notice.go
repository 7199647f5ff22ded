package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/services"
)

// NoticeHeader carries the user-facing notification of a response.
const NoticeHeader = "X-Notice"

// Notice is the message a client shows after an action.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SetNotice sets the X-Notice header so the client can display a short
// confirmation. A later call replaces an earlier one.
func SetNotice(e *core.RequestEvent, noticeType string, message string) {
	data, err := json.Marshal(Notice{Type: noticeType, Message: message})
	if err != nil {
		log.Printf("notice: failed to marshal notice: %v", err)
		return
	}
	e.Response.Header().Set(NoticeHeader, string(data))
}

// ErrorNotice answers with an error notice as the JSON body and sets the
// same notice in the header.
func ErrorNotice(e *core.RequestEvent, statusCode int, message string) error {
	SetNotice(e, "error", message)
	return e.JSON(statusCode, Notice{Type: "error", Message: message})
}

// errorStatus maps domain errors to response codes and messages shown to the
// user. Anything unrecognized is a 500 with a generic message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrClientNameRequired):
		return http.StatusUnprocessableEntity, "Informe o nome do cliente."
	case errors.Is(err, services.ErrQuoteNotFound):
		return http.StatusNotFound, "Orçamento não encontrado."
	case errors.Is(err, services.ErrPreviewNotFound):
		return http.StatusNotFound, "Pré-visualização não encontrada."
	case errors.Is(err, services.ErrUnknownService):
		return http.StatusBadRequest, "Serviço não encontrado no catálogo."
	case errors.Is(err, services.ErrUnknownMaterial):
		return http.StatusBadRequest, "Material não encontrado no catálogo."
	case errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest, "Status inválido."
	case errors.Is(err, services.ErrInvalidTab):
		return http.StatusBadRequest, "Aba inválida."
	}
	return http.StatusInternalServerError, "Algo deu errado. Tente novamente."
}

// failWith logs err under area and answers with the mapped notice.
func failWith(e *core.RequestEvent, area string, err error) error {
	status, message := errorStatus(err)
	log.Printf("%s: %v", area, err)
	return ErrorNotice(e, status, message)
}

// sanitizeFilename removes characters that would break a download name.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// sendFile writes data with a Content-Disposition header. Non-ASCII names
// are encoded per RFC 2231 by mime.FormatMediaType.
func sendFile(e *core.RequestEvent, contentType, disposition, filename string, data []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition",
		mime.FormatMediaType(disposition, map[string]string{"filename": sanitizeFilename(filename)}))
	e.Response.WriteHeader(http.StatusOK)
	if _, err := e.Response.Write(data); err != nil {
		log.Printf("download: failed to write %s: %v", filename, err)
	}
	return nil
}
