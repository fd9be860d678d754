package site

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/levelupinstalling/levelup/internal/content"
	"github.com/levelupinstalling/levelup/internal/interaction"
	"github.com/levelupinstalling/levelup/internal/mail"
	"github.com/levelupinstalling/levelup/internal/session"
)

func (s *Site) page(name string, sess *session.Session) pageData {
	return pageData{
		Page:       name,
		Content:    s.Content(),
		State:      sess.Snapshot(),
		Year:       s.now().Year(),
		Breakpoint: s.opts.NavBreakpoint,
	}
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Ensure(w, r)
	s.render(w, http.StatusOK, "index", s.page("index", sess))
}

func (s *Site) handleContact(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Ensure(w, r)
	data := s.page("contact", sess)
	sess.Do(func(st session.State) { data.Draft = st.Contact.Draft() })
	s.render(w, http.StatusOK, "contact", data)
}

func (s *Site) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess := s.sessions.Ensure(w, r)

	var (
		draft     interaction.Draft
		intent    mail.Intent
		submitErr error
	)
	sess.Do(func(st session.State) {
		for _, f := range interaction.Fields {
			if _, ok := r.PostForm[string(f)]; ok {
				// Fields are known, SetField cannot fail here.
				_ = st.Contact.SetField(f, r.PostForm.Get(string(f)))
			}
		}
		draft = st.Contact.Draft()
		intent, submitErr = st.Contact.Submit(mail.RedirectHandler{W: w, R: r})
	})

	var verr *interaction.ValidationError
	switch {
	case errors.As(submitErr, &verr):
		data := s.page("contact", sess)
		data.Draft = draft
		data.Errors = fieldErrors(verr)
		s.render(w, http.StatusUnprocessableEntity, "contact", data)
		return
	case submitErr != nil:
		s.logger.Error("submitting contact draft", zap.String("session", sess.ID), zap.Error(submitErr))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("contact intent handed off",
		zap.String("session", sess.ID),
		zap.String("subject", intent.Subject))
}

func (s *Site) handleContactReset(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Ensure(w, r)
	sess.Do(func(st session.State) { st.Contact.Reset() })
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (s *Site) handleMenuToggle(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Ensure(w, r)
	sess.Do(func(st session.State) { st.Menu.Toggle() })
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

func (s *Site) handleMenuClose(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Ensure(w, r)
	sess.Do(func(st session.State) { st.Menu.Close() })
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

func (s *Site) handleNav(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	sess := s.sessions.Ensure(w, r)
	sess.Do(func(st session.State) { st.Menu.SelectItem(target) })
	http.Redirect(w, r, s.Content().Resolve(target), http.StatusSeeOther)
}

func (s *Site) handleService(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid service index", http.StatusBadRequest)
		return
	}
	sess := s.sessions.Ensure(w, r)
	sess.Do(func(st session.State) { err = st.Services.Select(index) })
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/#expertise", http.StatusSeeOther)
}

// returnPath is the local page a form post should land back on.
func returnPath(r *http.Request) string {
	if p := r.FormValue("return"); content.IsLocalPath(p) {
		return p
	}
	return "/"
}
