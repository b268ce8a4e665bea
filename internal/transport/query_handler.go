package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/service"
)

const (
	maxBodyBytes = 1 << 20
	maxBatchSize = 100
)

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Node   string `json:"node"`
	Result bool   `json:"result"`
}

type batchRequest struct {
	Queries []string `json:"queries"`
}

type batchItem struct {
	Query  string `json:"query"`
	Node   string `json:"node,omitempty"`
	Result *bool  `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	Status string `json:"status"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// QueryHandler serves query evaluation over HTTP.
type QueryHandler struct {
	service QueryService
	logger  *zap.Logger
}

// NewQueryHandler constructs a QueryHandler.
func NewQueryHandler(svc QueryService, logger *zap.Logger) (*QueryHandler, error) {
	if svc == nil {
		return nil, errors.New("query handler service is required")
	}
	if logger == nil {
		return nil, errors.New("query handler logger is required")
	}
	return &QueryHandler{service: svc, logger: logger.Named("query_handler")}, nil
}

// Register mounts the query routes on mux.
func (h *QueryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/query", h.query)
	mux.HandleFunc("POST /v1/query/batch", h.batch)
}

func (h *QueryHandler) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decode(w, r, &req); err != nil {
		h.write(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Status: "bad_request"})
		return
	}

	res, err := h.service.Run(r.Context(), req.Query)
	if err != nil {
		status := service.Status(err)
		h.write(w, httpStatus(status), errorResponse{Error: err.Error(), Status: status})
		return
	}
	h.write(w, http.StatusOK, queryResponse{Node: res.Node, Result: res.Value})
}

func (h *QueryHandler) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decode(w, r, &req); err != nil {
		h.write(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Status: "bad_request"})
		return
	}
	if len(req.Queries) > maxBatchSize {
		err := fmt.Sprintf("batch of %d queries exceeds the limit of %d", len(req.Queries), maxBatchSize)
		h.write(w, http.StatusBadRequest, errorResponse{Error: err, Status: "bad_request"})
		return
	}

	outcomes := h.service.RunBatch(r.Context(), req.Queries)
	resp := batchResponse{Results: make([]batchItem, 0, len(outcomes))}
	for _, o := range outcomes {
		item := batchItem{Query: o.Query, Status: service.Status(o.Err)}
		if o.Err != nil {
			item.Error = o.Err.Error()
		} else {
			value := o.Result.Value
			item.Node = o.Result.Node
			item.Result = &value
		}
		resp.Results = append(resp.Results, item)
	}
	h.write(w, http.StatusOK, resp)
}

func (h *QueryHandler) write(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func httpStatus(status string) int {
	switch status {
	case service.StatusSyntaxError:
		return http.StatusBadRequest
	case service.StatusNotFound:
		return http.StatusNotFound
	case service.StatusInvalid:
		return http.StatusUnprocessableEntity
	case service.StatusUnavailable:
		return http.StatusBadGateway
	case service.StatusTimeout:
		return http.StatusGatewayTimeout
	case service.StatusCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
