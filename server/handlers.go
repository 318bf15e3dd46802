package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"product_copy_studio/catalog"
	"product_copy_studio/export"
	"product_copy_studio/form"
	"product_copy_studio/generator"
	"product_copy_studio/session"
	"product_copy_studio/studio"
)

type optionsResp struct {
	ContentTypes []catalog.Option `json:"contentTypes"`
	Languages    []catalog.Option `json:"languages"`
	Sections     []sectionOption  `json:"sections"`
}

type sectionOption struct {
	Value generator.Section `json:"value"`
	Label string            `json:"label"`
}

type sessionResp struct {
	SessionID string       `json:"session_id"`
	View      session.View `json:"view"`
}

type displayLanguageReq struct {
	Language string `json:"language"`
}

type selectReq struct {
	Value string `json:"value"`
}

type feedbackOpenReq struct {
	Section  string `json:"section"`
	Language string `json:"language"`
}

type feedbackSubmitReq struct {
	Text string `json:"text"`
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	resp := optionsResp{
		ContentTypes: catalog.ContentTypeOptions(),
		Languages:    catalog.LanguageOptions(),
	}
	for _, sec := range generator.Sections() {
		resp.Sections = append(resp.Sections, sectionOption{Value: sec, Label: sec.Title()})
	}
	writeJSON(w, resp)
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	ws, err := s.store.Create()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, sessionResp{SessionID: ws.ID, View: ws.View()})
}

func (s *Server) handleSessionGet(w http.ResponseWriter, _ *http.Request, ws *session.Workspace) {
	writeJSON(w, sessionResp{SessionID: ws.ID, View: ws.View()})
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFormUpdate(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	var patch session.FieldPatch
	if err := decodeJSON(r, &patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ws.UpdateFields(patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleFilesAdd(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	kind, err := form.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.uploadMax)
	if err := r.ParseMultipartForm(s.uploadMax); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, `no files in field "files"`, http.StatusBadRequest)
		return
	}
	refs := make([]form.FileRef, 0, len(headers))
	for _, fh := range headers {
		refs = append(refs, form.FileRef{Name: fh.Filename, Size: fh.Size, ContentType: fh.Header.Get("Content-Type")})
	}
	if err := ws.AddFiles(kind, refs...); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleFileDelete(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	kind, err := form.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}
	if err := ws.DeleteFile(kind, index); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleDisplayLanguage(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	var req displayLanguageReq
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ws.SelectDisplayLanguage(req.Language); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleWidgetToggle(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	if err := ws.ToggleWidget(r.PathValue("name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleWidgetSelect(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	var req selectReq
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ws.SelectOption(r.PathValue("name"), req.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleWidgetsClose(w http.ResponseWriter, _ *http.Request, ws *session.Workspace) {
	ws.CloseWidgets()
	s.writeView(w, ws)
}

func (s *Server) handleLanguageRemove(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	ws.RemoveLanguage(r.PathValue("code"))
	s.writeView(w, ws)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	s.stream(w, r, ws, func(ctx context.Context, observe studio.Observer) error {
		return ws.Submit(ctx, observe)
	})
}

func (s *Server) handleFeedbackOpen(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	var req feedbackOpenReq
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sec, err := generator.ParseSection(req.Section)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ws.OpenFeedback(sec, req.Language); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleFeedbackCancel(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	if err := ws.CancelFeedback(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, ws)
}

func (s *Server) handleFeedbackSubmit(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	var req feedbackSubmitReq
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.stream(w, r, ws, func(ctx context.Context, observe studio.Observer) error {
		return ws.SubmitFeedback(ctx, req.Text, observe)
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, ws *session.Workspace) {
	sec, err := generator.ParseSection(r.PathValue("section"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	language := r.PathValue("language")
	text, product, err := ws.SectionText(language, sec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc := export.Document{Product: product, Language: language, Section: sec, Text: text}
	out, err := export.Render(doc, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(doc, format)))
	_, _ = w.Write([]byte(out))
}

// stream runs one generation and relays each applied event as a "content"
// SSE event, then "done" with the final view or "error". Failures before the
// first event are answered as plain JSON errors.
func (s *Server) stream(w http.ResponseWriter, r *http.Request, ws *session.Workspace, run func(context.Context, studio.Observer) error) {
	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()

	sse := newSSEWriter(w)
	err := run(ctx, func(u studio.Update) {
		sse.send("content", u)
	})
	if err != nil && !sse.started {
		s.writeError(w, r, err)
		return
	}
	if err != nil {
		s.logger.Warn("generation stream ended with error", "session", ws.ID, "error", err)
		sse.send("error", bodyFor(err))
		return
	}
	sse.send("done", ws.View())
}

func (s *Server) writeView(w http.ResponseWriter, ws *session.Workspace) {
	writeJSON(w, sessionResp{SessionID: ws.ID, View: ws.View()})
}
