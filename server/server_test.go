package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product_copy_studio/generator"
	"product_copy_studio/session"
)

type flushRecorder struct {
	*httptest.ResponseRecorder
}

func (f *flushRecorder) Flush() {}

type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var out []sseEvent
	var cur sseEvent
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if cur.name != "" || cur.data != "" {
				out = append(out, cur)
			}
			cur = sseEvent{}
		case strings.HasPrefix(line, "event: "):
			cur.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.data += strings.TrimPrefix(line, "data: ")
		}
	}
	require.NoError(t, sc.Err())
	return out
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	store := session.NewStore(generator.NewSimulator(generator.Pacing{}), nil)
	s, err := New(store, nil, 1<<20)
	require.NoError(t, err)
	return s.Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(&flushRecorder{ResponseRecorder: rr}, req)
	return rr
}

func upload(t *testing.T, h http.Handler, path string, names ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, n := range names {
		fw, err := mw.CreateFormFile("files", n)
		require.NoError(t, err)
		_, _ = fw.Write([]byte("content of " + n))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp sessionResp
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func readyForm(t *testing.T, h http.Handler, id string, langs string) {
	t.Helper()
	base := "/api/sessions/" + id
	require.Equal(t, http.StatusOK, upload(t, h, base+"/files/productImages", "front.png").Code)
	require.Equal(t, http.StatusOK, upload(t, h, base+"/files/technicalDocs", "spec.pdf").Code)
	rr := do(t, h, http.MethodPatch, base+"/form", `{"productName":"Aurora Hub","selectedLanguages":`+langs+`}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestOptions(t *testing.T) {
	h := testHandler(t)
	rr := do(t, h, http.MethodGet, "/api/options", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp optionsResp
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.ContentTypes, 3)
	assert.Len(t, resp.Languages, 10)
	assert.Equal(t, "English", resp.Languages[0].Value)
	assert.Len(t, resp.Sections, 3)
}

func TestUnknownSession(t *testing.T) {
	h := testHandler(t)
	rr := do(t, h, http.MethodGet, "/api/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/sessions/nope", "").Code)
}

func TestGenerateRejectsInvalidForm(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)

	rr := do(t, h, http.MethodPost, "/api/sessions/"+id+"/generate", "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Product name is required", body.Fields["productName"])
	assert.Equal(t, "At least one language must be selected", body.Fields["selectedLanguages"])
}

func TestGenerateStreamsContent(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)
	readyForm(t, h, id, `["English","French"]`)

	rr := do(t, h, http.MethodPost, "/api/sessions/"+id+"/generate", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/event-stream")

	events := readEvents(t, rr.Body.String())
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.Equal(t, "done", last.name)
	for _, e := range events[:len(events)-1] {
		assert.Equal(t, "content", e.name)
	}

	var first struct {
		Event   generator.StreamEvent `json:"event"`
		Content map[string]any        `json:"content"`
	}
	require.NoError(t, json.Unmarshal([]byte(events[0].data), &first))
	assert.Equal(t, "English", first.Event.Language)
	assert.Equal(t, generator.SectionDescription, first.Event.Section)

	var view session.View
	require.NoError(t, json.Unmarshal([]byte(last.data), &view))
	assert.False(t, view.Busy)
	assert.Len(t, view.Content, 2)
	assert.NotEmpty(t, view.Content["French"].MarketingHighlights)
	assert.True(t, view.SectionActions[generator.SectionTechnicalSpec])
}

func TestChangedFieldsReportedAfterEdit(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)
	readyForm(t, h, id, `["English"]`)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/sessions/"+id+"/generate", "").Code)

	rr := do(t, h, http.MethodPatch, "/api/sessions/"+id+"/form", `{"productName":"Aurora Hub 2"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp sessionResp
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, []session.ChangedField{{Field: "productName", Label: "Product Name"}}, resp.View.Changed)
}

func TestFeedbackRoundTrip(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)
	base := "/api/sessions/" + id
	readyForm(t, h, id, `["English"]`)

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, base+"/feedback", `{"section":"description"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, base+"/generate", "").Code)

	rr := do(t, h, http.MethodPost, base+"/feedback", `{"section":"technicalSpec","language":"English"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPost, base+"/feedback/submit", `{"text":"tiny"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Feedback must be longer than 5 characters", body.Error)

	rr = do(t, h, http.MethodPost, base+"/feedback/submit", `{"text":"mention the ports"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	events := readEvents(t, rr.Body.String())
	require.NotEmpty(t, events)
	for _, e := range events[:len(events)-1] {
		assert.Contains(t, e.data, `"sectionKind":"technicalSpec"`)
	}
	assert.Equal(t, "done", events[len(events)-1].name)

	rr = do(t, h, http.MethodGet, base, "")
	var resp sessionResp
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "idle", string(resp.View.Feedback.State))
	assert.Len(t, resp.View.History, 2)
}

func TestFilesAddAndDelete(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)
	base := "/api/sessions/" + id

	rr := upload(t, h, base+"/files/productImages", "a.png", "b.png")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodDelete, base+"/files/productImages/0", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp sessionResp
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.View.Values.ProductImages, 1)
	assert.Equal(t, "b.png", resp.View.Values.ProductImages[0].Name)
	assert.Equal(t, int64(len("content of b.png")), resp.View.Values.ProductImages[0].Size)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, base+"/files/productImages/9", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, base+"/files/videos/0", "").Code)
	assert.Equal(t, http.StatusBadRequest, upload(t, h, base+"/files/technicalDocs").Code)
}

func TestWidgetsAndDisplayLanguage(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)
	base := "/api/sessions/" + id

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, base+"/widgets/languages/toggle", "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, base+"/widgets/languages/select", `{"value":"Spanish"}`).Code)
	rr := do(t, h, http.MethodPost, base+"/widgets/contentType/select", `{"value":"Technical"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp sessionResp
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.View.Widgets.Languages.Open)
	assert.Equal(t, []string{"Spanish"}, resp.View.Values.SelectedLanguages)
	assert.Equal(t, "Technical", string(resp.View.Values.ContentType))
	assert.Equal(t, "Spanish", resp.View.DisplayLanguage)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, base+"/widgets/colour/toggle", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, base+"/display-language", `{"language":"French"}`).Code)

	rr = do(t, h, http.MethodDelete, base+"/languages/Spanish", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = sessionResp{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Empty(t, resp.View.Values.SelectedLanguages)
	assert.Equal(t, "English", resp.View.DisplayLanguage)
}

func TestExport(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)
	base := "/api/sessions/" + id

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodGet, base+"/export/English/description", "").Code)

	readyForm(t, h, id, `["English"]`)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, base+"/generate", "").Code)

	rr := do(t, h, http.MethodGet, base+"/export/English/technicalSpec?format=html", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "aurora-hub-english-technicalspec.html")
	assert.Contains(t, rr.Body.String(), "<li>16GB RAM</li>")

	rr = do(t, h, http.MethodGet, base+"/export/English/description", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "# Aurora Hub: Product Description (English)"))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, base+"/export/French/description", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, base+"/export/English/summary", "").Code)
}

func TestDeleteSession(t *testing.T) {
	h := testHandler(t)
	id := createSession(t, h)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/sessions/"+id, "").Code)
}

func TestWriteSSE(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, writeSSE(rr, "content", "a\nb"))
	assert.Equal(t, "event: content\ndata: a\ndata: b\n\n", rr.Body.String())
}
