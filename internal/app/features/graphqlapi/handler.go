package graphqlapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type ctxKey int

const responseWriterKey ctxKey = iota

// withResponseWriter threads the writer into resolver context so login,
// register, and logout can manage the session cookie.
func withResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, responseWriterKey, w)
}

func (d *Deps) setSessionCookie(ctx context.Context, token string) {
	if w, ok := ctx.Value(responseWriterKey).(http.ResponseWriter); ok {
		d.Tokens.SetSessionCookie(w, token)
	}
}

func (d *Deps) clearSessionCookie(ctx context.Context) {
	if w, ok := ctx.Value(responseWriterKey).(http.ResponseWriter); ok {
		d.Tokens.ClearSessionCookie(w)
	}
}

// Handler serves the GraphQL endpoint.
type Handler struct {
	schema graphql.Schema
	deps   *Deps
	log    *zap.Logger
}

func NewHandler(d *Deps) (*Handler, error) {
	schema, err := NewSchema(d)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema, deps: d, log: d.Log}, nil
}

// Routes mounts the endpoint on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/graphql", h.serveGraphQL)
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

func (h *Handler) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"errors":[{"message":"malformed request body"}]}`, http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, `{"errors":[{"message":"query is required"}]}`, http.StatusBadRequest)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        withResponseWriter(r.Context(), w),
	})

	h.annotateErrors(result.Errors)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Warn("writing graphql response", zap.Error(err))
	}
}

// annotateErrors makes sure every error carries extensions.code, and
// logs server-side failures without leaking them to the caller.
func (h *Handler) annotateErrors(errs []gqlerrors.FormattedError) {
	for i := range errs {
		if errs[i].Extensions != nil && errs[i].Extensions["code"] != nil {
			continue
		}

		orig := unwrapOriginal(errs[i].OriginalError())
		var ae *apperr.Error
		if errors.As(orig, &ae) {
			if errs[i].Extensions == nil {
				errs[i].Extensions = map[string]interface{}{}
			}
			errs[i].Extensions["code"] = string(ae.Code)
			continue
		}

		if errs[i].Extensions == nil {
			errs[i].Extensions = map[string]interface{}{}
		}
		if orig == nil {
			// Parse or validation failure; the message is already
			// client-safe.
			errs[i].Extensions["code"] = string(apperr.CodeInvalid)
			continue
		}

		// Untyped resolver failure: log the cause, return a generic
		// message and code.
		h.log.Error("graphql resolver error", zap.Error(orig))
		errs[i].Message = "internal server error"
		errs[i].Extensions["code"] = string(apperr.CodeInternal)
	}
}

// unwrapOriginal digs through the gqlerrors wrapping layers.
func unwrapOriginal(err error) error {
	for {
		switch e := err.(type) {
		case *gqlerrors.Error:
			err = e.OriginalError
		case gqlerrors.FormattedError:
			err = e.OriginalError()
		default:
			return err
		}
	}
}
