package scraper

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/log"
)

const requestTimeout = 30 * time.Second

// Session é uma sessão de navegação autenticada sobre http.Client com
// cookie jar. Guarda o último HTML carregado para snapshots de depuração.
type Session struct {
	client   *http.Client
	label    string
	debugDir string
	lastURL  *url.URL
	lastHTML []byte
}

func NewSession(label, debugDir string) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Session{
		client: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		label:    label,
		debugDir: debugDir,
	}, nil
}

// Navigate carrega a página e devolve o documento parseado.
func (s *Session) Navigate(rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch, "URL inválida").WithSource(s.label)
	}

	return s.do(req)
}

// LoginForm descreve os candidatos de nome dos campos de usuário e senha.
type LoginForm struct {
	UserFields []string
	PassFields []string
}

// Login carrega a página de login, preenche o formulário que contém um
// campo de senha (preservando campos ocultos) e submete.
func (s *Session) Login(loginURL, user, pass string, form LoginForm) (*goquery.Document, error) {
	doc, err := s.Navigate(loginURL)
	if err != nil {
		return nil, err
	}

	return s.SubmitLogin(doc, user, pass, form)
}

// SubmitLogin submete o formulário de login presente no documento.
func (s *Session) SubmitLogin(doc *goquery.Document, user, pass string, form LoginForm) (*goquery.Document, error) {
	loginForm := findLoginForm(doc)
	if loginForm == nil {
		return nil, collecterrors.New(collecterrors.ErrTransientFetch,
			"formulário de login não encontrado na página").WithSource(s.label)
	}

	values := url.Values{}
	loginForm.Find("input").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok || name == "" {
			return
		}

		value, _ := input.Attr("value")
		values.Set(name, value)
	})

	userField := matchField(loginForm, form.UserFields, "text", "email")
	passField := matchField(loginForm, form.PassFields, "password")

	if userField == "" || passField == "" {
		return nil, collecterrors.New(collecterrors.ErrTransientFetch,
			"campos de usuário/senha não encontrados no formulário").WithSource(s.label)
	}

	values.Set(userField, user)
	values.Set(passField, pass)

	action, _ := loginForm.Attr("action")
	actionURL, err := s.resolveURL(action)
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"action do formulário inválida").WithSource(s.label)
	}

	req, err := http.NewRequest(http.MethodPost, actionURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"falha ao montar o POST de login").WithSource(s.label)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return s.do(req)
}

// Download baixa um arquivo binário (ex.: export XLSX) na sessão corrente.
func (s *Session) Download(rawURL string) ([]byte, string, error) {
	resp, err := s.client.Get(rawURL)
	if err != nil {
		return nil, "", collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"falha no download").WithSource(s.label)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", collecterrors.Newf(collecterrors.ErrTransientFetch,
			"download retornou status %d", resp.StatusCode).WithSource(s.label)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"falha ao ler o corpo do download").WithSource(s.label)
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}

	return data, filename, nil
}

func (s *Session) do(req *http.Request) (*goquery.Document, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"falha de rede").WithSource(s.label)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, collecterrors.Newf(collecterrors.ErrTransientFetch,
			"página retornou status %d", resp.StatusCode).WithSource(s.label)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"falha ao ler o corpo da página").WithSource(s.label)
	}

	s.lastHTML = body
	if resp.Request != nil {
		s.lastURL = resp.Request.URL
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrTransientFetch,
			"HTML inválido").WithSource(s.label)
	}

	return doc, nil
}

func (s *Session) resolveURL(ref string) (string, error) {
	if s.lastURL == nil {
		return ref, nil
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", err
	}

	return s.lastURL.ResolveReference(parsed).String(), nil
}

// findLoginForm devolve o primeiro <form> com um campo de senha.
func findLoginForm(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection

	doc.Find("form").EachWithBreak(func(_ int, form *goquery.Selection) bool {
		if form.Find("input[type='password']").Length() > 0 {
			found = form
			return false
		}
		return true
	})

	return found
}

// matchField escolhe o nome do campo: primeiro por candidatos de name,
// depois pelo primeiro input dos tipos indicados.
func matchField(form *goquery.Selection, candidates []string, inputTypes ...string) string {
	for _, candidate := range candidates {
		if form.Find("input[name='"+candidate+"']").Length() > 0 {
			return candidate
		}
	}

	for _, inputType := range inputTypes {
		input := form.Find("input[type='" + inputType + "']").First()
		if name, ok := input.Attr("name"); ok && name != "" {
			return name
		}
	}

	return ""
}

// Snapshot grava o último HTML carregado para depuração. Nunca falha:
// a coleta não pode ser derrubada por um snapshot.
func (s *Session) Snapshot(suffix string) {
	if s.debugDir == "" || len(s.lastHTML) == 0 {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.L.WithField("panic", r).Warn("Snapshot de depuração falhou")
		}
	}()

	if err := writeSnapshot(s.debugDir, s.label+"_"+suffix, s.lastHTML); err != nil {
		log.L.WithError(err).Warn("Não foi possível gravar o snapshot de depuração")
	}
}
