package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

// evidenceForm builds a multipart body with one file part of the given
// content type plus the optional description and location fields.
func evidenceForm(t *testing.T, filename, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func uploadRequest(t *testing.T, body *bytes.Buffer, contentType, labID string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/lab/upload-evidence", body)
	req.Header.Set("Content-Type", contentType)
	if labID != "" {
		req.Header.Set("X-Hawkins-Lab-ID", labID)
	}
	return req
}

func TestUploadEvidence(t *testing.T) {
	srv, wld := testServer(t)
	router := srv.buildRouter()

	body, contentType := evidenceForm(t, "gate.png", "image/png", []byte("fake png bytes"), map[string]string{
		"description": "Gate residue sample",
		"location":    "Lab basement",
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, body, contentType, "LAB-001"))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	evidence, ok := resp["evidence"].(map[string]any)
	if !ok {
		t.Fatalf("evidence is not a map: %T", resp["evidence"])
	}
	if int(evidence["id"].(float64)) != 1 {
		t.Errorf("id = %v, want 1", evidence["id"])
	}
	if evidence["filename"] != "gate.png" {
		t.Errorf("filename = %v, want gate.png", evidence["filename"])
	}
	if evidence["mimetype"] != "image/png" {
		t.Errorf("mimetype = %v, want image/png", evidence["mimetype"])
	}
	if evidence["description"] != "Gate residue sample" {
		t.Errorf("description = %v", evidence["description"])
	}

	// The stored record carries the verified lab ID
	doc, err := wld.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(doc.Evidence) != 1 {
		t.Fatalf("evidence count = %d, want 1", len(doc.Evidence))
	}
	if doc.Evidence[0].LabID != "LAB-001" {
		t.Errorf("labId = %q, want LAB-001", doc.Evidence[0].LabID)
	}
}

func TestUploadEvidence_MissingLabID(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body, contentType := evidenceForm(t, "gate.png", "image/png", []byte("x"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, body, contentType, ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	resp := decodeBody(t, w)
	if resp["message"] != "Missing required header: X-Hawkins-Lab-ID" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestUploadEvidence_WrongLabID(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body, contentType := evidenceForm(t, "gate.png", "image/png", []byte("x"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, body, contentType, "LAB-999"))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	resp := decodeBody(t, w)
	if resp["error"] != "Forbidden" {
		t.Errorf("error = %v, want Forbidden", resp["error"])
	}
}

func TestUploadEvidence_NoFile(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("description", "no file attached"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	mw.Close()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, &buf, mw.FormDataContentType(), "LAB-001"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	resp := decodeBody(t, w)
	if resp["message"] != "No file uploaded" {
		t.Errorf("message = %v, want No file uploaded", resp["message"])
	}
}

func TestUploadEvidence_DisallowedType(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body, contentType := evidenceForm(t, "virus.exe", "application/x-msdownload", []byte("MZ"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, body, contentType, "LAB-001"))

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnsupportedMediaType)
	}

	resp := decodeBody(t, w)
	msg, _ := resp["message"].(string)
	if !strings.Contains(msg, "application/x-msdownload") {
		t.Errorf("message does not name the rejected type: %v", msg)
	}
	if !strings.Contains(msg, "image/png") {
		t.Errorf("message does not list allowed types: %v", msg)
	}
}

func TestUploadEvidence_AllowedTypes(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	for _, mimetype := range []string{"image/jpeg", "text/plain", "text/csv", "application/json", "text/html"} {
		t.Run(mimetype, func(t *testing.T) {
			body, contentType := evidenceForm(t, "evidence.bin", mimetype, []byte("content"), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, uploadRequest(t, body, contentType, "LAB-001"))

			if w.Code != http.StatusCreated {
				t.Errorf("status = %d, want 201; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestUploadEvidence_TooLarge(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	// Just over the 5MB per-file cap
	big := bytes.Repeat([]byte("a"), maxEvidenceFileSize+1)
	body, contentType := evidenceForm(t, "huge.txt", "text/plain", big, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, body, contentType, "LAB-001"))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}

	resp := decodeBody(t, w)
	if resp["error"] != "Payload Too Large" {
		t.Errorf("error = %v, want Payload Too Large", resp["error"])
	}
}

func TestUploadEvidence_SequentialIDs(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	for want := 1; want <= 3; want++ {
		body, contentType := evidenceForm(t, fmt.Sprintf("sample-%d.txt", want), "text/plain", []byte("notes"), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, body, contentType, "LAB-001"))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", w.Code)
		}
		resp := decodeBody(t, w)
		evidence := resp["evidence"].(map[string]any)
		if int(evidence["id"].(float64)) != want {
			t.Errorf("id = %v, want %d", evidence["id"], want)
		}
	}
}

func TestUploadEvidence_RetrievableAfterUpload(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body, contentType := evidenceForm(t, "findings.json", "application/json", []byte(`{"spores": true}`), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, body, contentType, "LAB-001"))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, want 201", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/hawkins/evidence/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	evidence := resp["evidence"].(map[string]any)
	if evidence["filename"] != "findings.json" {
		t.Errorf("filename = %v, want findings.json", evidence["filename"])
	}
}
