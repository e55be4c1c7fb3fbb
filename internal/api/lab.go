package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/strangerlabs/hawkins-core/internal/world"
)

// maxEvidenceFileSize is the upload cap for a single evidence file.
const maxEvidenceFileSize = 5 << 20

// allowedEvidenceMimes is the upload allowlist: images, text, and JSON.
var allowedEvidenceMimes = map[string]struct{}{
	"image/jpeg":       {},
	"image/png":        {},
	"image/gif":        {},
	"image/webp":       {},
	"text/plain":       {},
	"text/csv":         {},
	"application/json": {},
	"text/html":        {},
}

// handleUploadEvidence accepts a multipart evidence file and records
// it. Lab-ID gated; the verified lab ID is stamped onto the record.
func (s *Server) handleUploadEvidence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxEvidenceFileSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, errKindPayloadTooLarge,
				"Uploaded file exceeds the 5MB limit", nil)
			return
		}
		writeBadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errKindBadRequest, "No file uploaded", map[string]any{
			"details": `Please provide a file in the "file" field`,
		})
		return
	}
	defer file.Close()

	if header.Size > maxEvidenceFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, errKindPayloadTooLarge,
			"Uploaded file exceeds the 5MB limit", nil)
		return
	}

	mimetype := partMimetype(header.Header.Get("Content-Type"))
	if _, ok := allowedEvidenceMimes[mimetype]; !ok {
		writeError(w, http.StatusUnsupportedMediaType, errKindUnsupportedMedia,
			fmt.Sprintf("File type %s not allowed. Allowed types: %s", mimetype, allowedMimeList()), nil)
		return
	}

	evidence, err := s.world.AddEvidence(world.Evidence{
		Filename:    header.Filename,
		Mimetype:    mimetype,
		Size:        header.Size,
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		UploadedAt:  time.Now().UTC(),
		LabID:       labIDFrom(r.Context()),
	})
	if err != nil {
		s.logger.Error("evidence store failed", "error", err)
		writeInternalError(w, "failed to store evidence")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Evidence uploaded successfully",
		"evidence": map[string]any{
			"id":          evidence.ID,
			"filename":    evidence.Filename,
			"mimetype":    evidence.Mimetype,
			"size":        evidence.Size,
			"description": evidence.Description,
			"location":    evidence.Location,
			"uploadedAt":  evidence.UploadedAt,
		},
	})
}

// partMimetype strips parameters from a part's Content-Type header.
func partMimetype(contentType string) string {
	mediatype, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mediatype
}

// allowedMimeList renders the allowlist for error messages.
func allowedMimeList() string {
	types := make([]string, 0, len(allowedEvidenceMimes))
	for t := range allowedEvidenceMimes {
		types = append(types, t)
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}
