package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"storefront_api/internal/storefront/business/services/cart"
	"storefront_api/internal/storefront/business/services/get"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/logger"
	"storefront_api/pkg/middleware"
)

// ErrorResponse is the body of every non-2xx reply. Message is shown to shoppers as is.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var errBadRequest = errors.New("bad request")

type badRequest struct {
	reason string
}

func (e badRequest) Error() string { return e.reason }
func (e badRequest) Is(target error) bool {
	return target == errBadRequest
}

func invalidParam(name, value string) error {
	return badRequest{reason: "invalid " + name + ": " + strconv.Quote(value)}
}

func writeJSON(w http.ResponseWriter, log logger.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode response: %v", err)
	}
}

// writeError maps domain and upstream errors to an http status.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	resp := classify(err)
	if resp.Status >= http.StatusInternalServerError {
		log.Error("%s %s [%s]: %v", r.Method, r.URL.Path, middleware.RequestIDFrom(r.Context()), err)
	} else {
		log.Warn("%s %s [%s]: %v", r.Method, r.URL.Path, middleware.RequestIDFrom(r.Context()), err)
	}
	writeJSON(w, log, resp.Status, resp)
}

func classify(err error) ErrorResponse {
	var fe *clients.FetchError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, get.ErrInvalidPagination),
		errors.Is(err, cart.ErrInvalidQuantity):
		return ErrorResponse{Error: "bad_request", Message: "Yêu cầu không hợp lệ", Status: http.StatusBadRequest}
	case errors.Is(err, get.ErrProductNotFound),
		errors.Is(err, get.ErrArticleNotFound),
		clients.IsNotFound(err):
		return ErrorResponse{Error: "not_found", Message: "Không tìm thấy nội dung yêu cầu", Status: http.StatusNotFound}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorResponse{Error: "upstream_timeout", Message: "Máy chủ cửa hàng phản hồi quá lâu, vui lòng thử lại", Status: http.StatusGatewayTimeout}
	case errors.As(err, &fe):
		return ErrorResponse{Error: "upstream_error", Message: "Không thể tải dữ liệu từ cửa hàng, vui lòng thử lại", Status: http.StatusBadGateway}
	default:
		return ErrorResponse{Error: "upstream_unavailable", Message: "Không thể kết nối tới cửa hàng, vui lòng thử lại", Status: http.StatusBadGateway}
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParam(name, raw)
	}
	return id, nil
}

// intQuery returns def when the parameter is absent.
func intQuery(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidParam(name, raw)
	}
	return v, nil
}
