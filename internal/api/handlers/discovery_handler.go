package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/services"
	"github.com/careerlens/careerlens/internal/utils"
)

type DiscoveryHandler struct {
	svc services.SubmissionService
}

func NewDiscoveryHandler(svc services.SubmissionService) *DiscoveryHandler {
	return &DiscoveryHandler{svc: svc}
}

// Submit accepts the whole strength-discovery form in one multipart request:
// work_style, technical_skills[], soft_skills[], career_interests[], and any
// number of parts named "documents".
func (h *DiscoveryHandler) Submit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	in := services.SubmissionInput{
		WorkStyle:       c.PostForm("work_style"),
		TechnicalSkills: c.PostFormArray("technical_skills"),
		SoftSkills:      c.PostFormArray("soft_skills"),
		CareerInterests: c.PostFormArray("career_interests"),
	}

	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DiscoveryHandler.Submit", "invalid multipart form", err))
		return
	}

	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}()

	if form != nil {
		for _, fh := range form.File["documents"] {
			doc, file, err := openDocumentPart(fh)
			if err != nil {
				writeError(c, err)
				return
			}
			closers = append(closers, file)
			in.Documents = append(in.Documents, doc)
		}
	}

	res, err := h.svc.Submit(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if res.Outcome == services.OutcomeAnalysisPending {
		status = http.StatusAccepted
	}
	c.JSON(status, res)
}

func (h *DiscoveryHandler) Status(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.svc.Status(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// openDocumentPart opens one uploaded part and resolves its content type:
// the declared multipart header when present, otherwise a sniff of the first
// 512 bytes. The sniffed head is stitched back in front of the stream.
func openDocumentPart(fh *multipart.FileHeader) (services.DocumentInput, multipart.File, error) {
	const op = "DiscoveryHandler.Submit"

	file, err := fh.Open()
	if err != nil {
		return services.DocumentInput{}, nil, utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}

	contentType := fh.Header.Get("Content-Type")
	var reader io.Reader = file

	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := file.Read(head)
		head = head[:n]
		contentType = http.DetectContentType(head)
		reader = &readJoin{a: bytes.NewReader(head), b: file}
	}

	return services.DocumentInput{
		FileName:    fh.Filename,
		Size:        fh.Size,
		ContentType: contentType,
		Content:     reader,
	}, file, nil
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
