package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"calculation-console/internal/auth"
	"calculation-console/internal/client"
	"calculation-console/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Report page messages.
const (
	MsgReportLogin  = "You must be logged in to see the report."
	MsgReportFailed = "Failed to load report."
)

// Login page messages.
const (
	msgBadCredentials = "Invalid email or password."
	msgLoginFailed    = "Login failed."
	msgRegisterFailed = "Registration failed."
	msgRegistered     = "Account created. You can log in now."
	msgLoggedOut      = "Logged out."
)

// Handler serves the console, report and login pages. Every API call goes
// through the client, authenticated with the browser's session token.
type Handler struct {
	api       *client.Client
	ctrl      *Controller
	cookieTTL time.Duration
}

// NewHandler creates a page Handler. cookieTTL bounds the session cookie
// and should match the token lifetime.
func NewHandler(api *client.Client, guard *Guard, cookieTTL time.Duration) *Handler {
	return &Handler{
		api:       api,
		ctrl:      NewController(api, guard),
		cookieTTL: cookieTTL,
	}
}

// RegisterRoutes mounts the page routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/static/index.html", redirect("/"))

	r.Route("/console", func(r chi.Router) {
		r.Post("/submit", h.Submit)
		r.Post("/edit", h.Edit)
		r.Post("/reset", h.Reset)
		r.Post("/refresh", h.Refresh)
		r.Post("/delete", h.Delete)
	})

	r.Get("/report", h.ReportPage)
	r.Post("/report", h.ShowReport)
	r.Get("/static/report.html", redirect("/report"))

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/register", redirect("/login"))
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)
}

// Index renders the console in create mode with a freshly loaded table.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	h.renderConsole(w, r, ctrl.Load(r.Context(), ctrl.Start()))
}

// Submit creates or updates from the posted form.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	v := ctrl.Submit(r.Context(), stateFromForm(r))
	h.renderConsole(w, r, h.ensureRows(r, ctrl, v))
}

// Edit loads the record named by the posted id into the form.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	id := strings.TrimSpace(r.PostFormValue("id"))
	h.renderConsole(w, r, ctrl.EditByID(r.Context(), ctrl.Start(), id))
}

// Reset returns the form to create mode.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	h.renderConsole(w, r, ctrl.Load(r.Context(), ctrl.Reset()))
}

// Refresh reloads the table and keeps the form as posted.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	h.renderConsole(w, r, ctrl.Load(r.Context(), stateFromForm(r).clearMessages()))
}

// Delete removes the row named by delete_id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	id := strings.TrimSpace(r.PostFormValue("delete_id"))
	st := stateFromForm(r)
	if id == "" {
		h.renderConsole(w, r, ctrl.Load(r.Context(), st.withError(MsgDeleteFailed)))
		return
	}
	h.renderConsole(w, r, h.ensureRows(r, ctrl, ctrl.Delete(r.Context(), st, id)))
}

// ReportPage renders the report button.
func (h *Handler) ReportPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "report", func() error { return renderReport(w, reportPage{}) })
}

// ShowReport fetches the usage summary with the session token.
func (h *Handler) ShowReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := reportPage{}

	s, err := h.api.WithToken(auth.TokenFromRequest(r)).Summary(ctx)
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		page.Error = MsgReportLogin
		countAction("report", outcomeInvalid)
	case err != nil:
		observability.LoggerWithTrace(ctx).Error("load report", zap.Error(err))
		page.Error = MsgReportFailed
		countAction("report", outcomeError)
	default:
		page.Total = fmt.Sprintf("Total calculations: %d", s.TotalCalculations)
		for _, op := range s.PerOperation {
			page.PerOperation = append(page.PerOperation, operationLine{Operator: op.Operator, Count: op.Count})
		}
		countAction("report", outcomeOK)
	}

	h.render(w, r, "report", func() error { return renderReport(w, page) })
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", func() error { return renderLogin(w, loginPage{}) })
}

// Login exchanges the posted credentials for a token and stores it in the
// session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := strings.TrimSpace(r.PostFormValue("email"))

	token, err := h.api.Login(ctx, email, r.PostFormValue("password"))
	if err != nil {
		msg := msgBadCredentials
		if !errors.Is(err, client.ErrUnauthenticated) {
			observability.LoggerWithTrace(ctx).Error("login", zap.Error(err))
			msg = apiMessage(err, msgLoginFailed)
		}
		countAction("login", outcomeError)
		h.render(w, r, "login", func() error { return renderLogin(w, loginPage{Email: email, Error: msg}) })
		return
	}

	countAction("login", outcomeOK)
	http.SetCookie(w, h.sessionCookie(r, token, h.cookieTTL))
	http.Redirect(w, r, "/report", http.StatusSeeOther)
}

// Register creates an account from the posted credentials.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := strings.TrimSpace(r.PostFormValue("email"))

	page := loginPage{Email: email}
	if err := h.api.Register(ctx, email, r.PostFormValue("password")); err != nil {
		observability.LoggerWithTrace(ctx).Warn("register", zap.Error(err))
		page.Error = apiMessage(err, msgRegisterFailed)
		countAction("register", outcomeError)
	} else {
		page.Success = msgRegistered
		countAction("register", outcomeOK)
	}

	h.render(w, r, "login", func() error { return renderLogin(w, page) })
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie(r, "", -1))
	h.render(w, r, "login", func() error { return renderLogin(w, loginPage{Success: msgLoggedOut}) })
}

func (h *Handler) controller(r *http.Request) *Controller {
	return h.ctrl.WithBackend(h.api.WithToken(auth.TokenFromRequest(r)))
}

// ensureRows loads the table when the transition didn't. The form state
// and its message are kept.
func (h *Handler) ensureRows(r *http.Request, ctrl *Controller, v View) View {
	if v.Fresh {
		return v
	}
	loaded := ctrl.Load(r.Context(), v.State)
	if v.State.Error != "" {
		loaded.State.Error = v.State.Error
	}
	return loaded
}

func (h *Handler) renderConsole(w http.ResponseWriter, r *http.Request, v View) {
	h.render(w, r, "console", func() error { return RenderConsole(w, v) })
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, fn func() error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := fn(); err != nil {
		observability.LoggerWithTrace(r.Context()).Error("render page",
			zap.String("page", page),
			zap.Error(err),
		)
	}
}

func (h *Handler) sessionCookie(r *http.Request, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
	} else if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
	}
	return c
}

func redirect(to string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, to, http.StatusMovedPermanently)
	}
}

// stateFromForm reads the calc-form fields. The mode follows the hidden ID.
func stateFromForm(r *http.Request) State {
	st := State{
		ID:        strings.TrimSpace(r.PostFormValue("id")),
		Operation: r.PostFormValue("operation"),
		A:         r.PostFormValue("a"),
		B:         r.PostFormValue("b"),
		Token:     r.PostFormValue("token"),
	}
	if st.ID != "" {
		st.Mode = ModeEdit
	}
	return st
}

// apiMessage extracts {"error": ...} from a client.StatusError body.
func apiMessage(err error, fallback string) string {
	var se *client.StatusError
	if !errors.As(err, &se) || se.Body == "" {
		return fallback
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(se.Body), &body) != nil || body.Error == "" {
		return fallback
	}
	return body.Error
}
