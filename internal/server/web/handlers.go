package web

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/s3share/internal/common"
	"github.com/dmitrijs2005/s3share/internal/identity"
	"github.com/dmitrijs2005/s3share/internal/share"
)

// multipart overhead allowed on top of the file size limit
const formOverhead = 1 << 20

type pageData struct {
	Authenticated bool
	Email         string
	DownloadEmail string
	Secret        string
	UploadMessage string
	DownloadError string
	Notice        string
	Year          int
}

type errorData struct {
	Message string
}

// session returns the session of the request, or identity.Anonymous.
func (s *Server) session(r *http.Request) *identity.Session {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return identity.Anonymous
	}
	sess, ok := s.sessions.Get(c.Value)
	if !ok {
		return identity.Anonymous
	}
	return sess
}

func (s *Server) newPage(sess *identity.Session) *pageData {
	p := &pageData{
		Secret: common.DefaultSecret,
		Year:   s.now().Year(),
	}
	if sess.Authenticated(s.now()) {
		p.Authenticated = true
		p.Email = sess.Email
	}
	return p
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error(r.Context(), "template render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.render(w, r, status, "error.html", errorData{Message: err.Error()})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "page.html", s.newPage(s.session(r)))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	email := r.PostFormValue("email")
	secret := r.PostFormValue("secret")

	dl, err := s.share.Download(r.Context(), email, secret)
	if err != nil {
		page := s.newPage(sess)
		page.DownloadEmail = email
		page.Secret = secret
		page.DownloadError = share.Message(err)
		s.render(w, r, downloadStatus(err), "page.html", page)
		return
	}

	contentType := dl.Object.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dl.Object.Body)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	page := s.newPage(sess)

	if s.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+formOverhead)
	}

	file, secret, err := s.readUpload(r)
	if err == nil {
		var res *share.UploadResult
		res, err = s.share.Upload(r.Context(), sess, secret, file)
		if err == nil {
			page.UploadMessage = res.Message
		}
	}
	page.Secret = secret

	if err != nil {
		page.UploadMessage = share.Message(err)
		if errors.Is(err, common.ErrorUnauthorized) {
			page.Notice = page.UploadMessage
		}
	}
	s.render(w, r, uploadStatus(err), "page.html", page)
}

// readUpload parses the multipart form. A form without a file yields a nil
// file and no error; the share service reports that case.
func (s *Server) readUpload(r *http.Request) (*share.File, string, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", share.ErrFileTooLarge
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, "", err
		}
	}
	secret := r.FormValue("secret")

	f, fh, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, secret, nil
	}
	if err != nil {
		return nil, secret, err
	}
	defer f.Close()

	if fh.Filename == "" {
		return nil, secret, nil
	}

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, secret, err
	}

	return &share.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        body,
	}, secret, nil
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     common.StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.provider.SignInURL(state), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		msg := q.Get("error_description")
		if msg == "" {
			msg = e
		}
		s.logger.Warn(ctx, "identity provider returned an error", "error", e)
		s.renderError(w, r, http.StatusUnauthorized, errors.New(msg))
		return
	}

	stateCookie, err := r.Cookie(common.StateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != q.Get("state") {
		s.logger.Warn(ctx, "sign-in state mismatch")
		s.renderError(w, r, http.StatusBadRequest, common.ErrStateMismatch)
		return
	}
	http.SetCookie(w, s.expiredCookie(common.StateCookieName))

	idToken, err := s.provider.Exchange(ctx, q.Get("code"))
	if err != nil {
		s.logger.Error(ctx, "code exchange failed", "error", err)
		s.renderError(w, r, http.StatusBadGateway, err)
		return
	}

	sess, err := identity.NewSession(idToken, s.now(), s.sessionTTL)
	if err != nil {
		s.logger.Error(ctx, "unusable identity token", "error", err)
		s.renderError(w, r, http.StatusBadGateway, err)
		return
	}
	s.sessions.Put(sess)

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Info(ctx, "user signed in", "email", sess.Email)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(s.cookieName); err == nil {
		s.sessions.Delete(c.Value)
	}
	http.SetCookie(w, s.expiredCookie(s.cookieName))
	http.Redirect(w, r, s.provider.SignOutURL(), http.StatusFound)
}

func (s *Server) expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func downloadStatus(err error) int {
	switch {
	case errors.Is(err, share.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func uploadStatus(err error) int {
	var upErr *share.UploadError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, share.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, share.ErrUploadInProgress):
		return http.StatusConflict
	case errors.As(err, &upErr):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
