package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gosnmp/gosnmp"

	"netmibd/internal/agent"
	"netmibd/internal/auth"
	"netmibd/internal/middleware"
	"netmibd/internal/models"
	"netmibd/internal/system"
)

// maxDisplayString is the SIZE bound of an SNMP DisplayString.
const maxDisplayString = 255

type MIBHandler struct {
	agent       *agent.Agent
	userService *auth.UserService
	log         *slog.Logger
}

func NewMIBHandler(a *agent.Agent, userService *auth.UserService, log *slog.Logger) *MIBHandler {
	return &MIBHandler{
		agent:       a,
		userService: userService,
		log:         log,
	}
}

type scalarResponse struct {
	agent.Object
	Type  string `json:"type"`
	Value any    `json:"value"`
	// StartedAt is set on sysUpTime only.
	StartedAt *time.Time `json:"started_at,omitempty"`
}

type tableResponse struct {
	agent.Object
	Rows []models.Row `json:"rows"`
}

type varbind struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func newVarbind(pdu gosnmp.SnmpPDU) varbind {
	return varbind{
		Name:  pdu.Name,
		Type:  agent.TypeName(pdu),
		Value: agent.DisplayValue(pdu),
	}
}

func (h *MIBHandler) ListObjects(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.agent.Objects())
}

func (h *MIBHandler) GetObject(w http.ResponseWriter, r *http.Request) {
	v, ok := h.get(w, r)
	if !ok {
		return
	}

	if v.PDU != nil {
		resp := scalarResponse{
			Object: v.Object,
			Type:   agent.TypeName(*v.PDU),
			Value:  agent.DisplayValue(*v.PDU),
		}
		if v.Object.Name == "sysUpTime" {
			started := h.agent.StartedAt()
			resp.StartedAt = &started
		}
		render.JSON(w, r, resp)
		return
	}

	rows := v.Rows
	if rows == nil {
		rows = []models.Row{}
	}
	render.JSON(w, r, tableResponse{Object: v.Object, Rows: rows})
}

// GetVarbinds returns the object as typed varbinds: a flat list for
// scalars, one list per row for tables.
func (h *MIBHandler) GetVarbinds(w http.ResponseWriter, r *http.Request) {
	v, ok := h.get(w, r)
	if !ok {
		return
	}

	if v.PDU != nil {
		render.JSON(w, r, []varbind{newVarbind(*v.PDU)})
		return
	}

	rows := make([][]varbind, 0, len(v.Rows))
	for _, row := range v.Rows {
		pdus := row.Varbinds()
		vbs := make([]varbind, len(pdus))
		for i, pdu := range pdus {
			vbs[i] = newVarbind(pdu)
		}
		rows = append(rows, vbs)
	}
	render.JSON(w, r, rows)
}

func (h *MIBHandler) get(w http.ResponseWriter, r *http.Request) (*agent.Value, bool) {
	name := chi.URLParam(r, "name")

	var opts []agent.Option
	if resolve, _ := strconv.ParseBool(r.URL.Query().Get("resolve")); resolve {
		opts = append(opts, agent.WithHostnames())
	}

	v, err := h.agent.Get(r.Context(), name, opts...)
	if err != nil {
		if errors.Is(err, agent.ErrNoSuchObject) {
			middleware.WriteError(w, r, http.StatusNotFound, "no such object: "+name)
			return nil, false
		}
		h.log.Error("failed to read object", "object", name, "error", err)
		middleware.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return v, true
}

type setRequest struct {
	Value *string `json:"value"`
}

// SetObject writes sysContact, sysName or sysLocation. The value lives in
// memory until the process exits; the change is audited.
func (h *MIBHandler) SetObject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req setRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil || req.Value == nil {
		middleware.WriteError(w, r, http.StatusBadRequest, `body must be {"value": "..."}`)
		return
	}
	value := *req.Value
	if len(value) > maxDisplayString || !utf8.ValidString(value) {
		middleware.WriteError(w, r, http.StatusBadRequest, "value must be valid UTF-8 of at most 255 bytes")
		return
	}

	old, err := h.agent.Set(name, value)
	switch {
	case errors.Is(err, agent.ErrNoSuchObject):
		middleware.WriteError(w, r, http.StatusNotFound, "no such object: "+name)
		return
	case errors.Is(err, system.ErrNotWritable):
		middleware.WriteError(w, r, http.StatusForbidden, name+" is read-only")
		return
	case err != nil:
		middleware.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	entry := models.AuditLog{
		Action:    auth.ActionSetScalar,
		Object:    name,
		OldValue:  old,
		NewValue:  value,
		IPAddress: getClientIP(r),
	}
	if user := middleware.GetUser(r); user != nil {
		entry.UserID = &user.ID
	}
	if err := h.userService.LogAction(r.Context(), entry); err != nil {
		h.log.Warn("failed to write audit log", "object", name, "error", err)
	}

	h.log.Info("scalar updated", "object", name, "value", value)
	h.GetObject(w, r)
}
