package rest

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/util"
	"github.com/go-chi/chi/v5"
)

const auditWriteTimeout = 5 * time.Second

// Audited wraps a handler with the post-success audit hook: once the
// wrapped handler returns a 2xx envelope, an audit record is written
// fire-and-forget. Audit failure never fails or delays the request.
func (api *API) Audited(action, entity string, h Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) *ServerResponse {
		resp := h(w, r)
		if resp != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			api.recordAudit(r, action, entity, resp)
		}
		return resp
	}
}

func (api *API) recordAudit(r *http.Request, action, entity string, resp *ServerResponse) {
	entry := model.AuditEntry{
		Action:   action,
		Entity:   entity,
		EntityID: resp.EntityID,
		Metadata: map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": resp.StatusCode,
		},
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}

	if userID, err := util.GetUserIDFromContext(r.Context()); err == nil {
		entry.UserID = &userID
	}

	if entry.EntityID == "" {
		for _, param := range []string{"groupID", "postID", "eventID", "commentID", "memberID"} {
			if v := chi.URLParam(r, param); v != "" {
				entry.EntityID = v
				break
			}
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()

		if err := api.InsertAuditLog(ctx, entry); err != nil {
			log.Println("failed to create audit log", err)
		}
	}()
}

func (api *API) InsertAuditLog(ctx context.Context, entry model.AuditEntry) error {
	stmt := `
        INSERT INTO audit_logs (user_id, action, entity, entity_id, metadata, ip_address, user_agent, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	_, err := api.DB.Exec(ctx, stmt,
		entry.UserID, entry.Action, entry.Entity, entry.EntityID,
		entry.Metadata, entry.IPAddress, entry.UserAgent,
	)
	return err
}
