package handler

import (
	"bytes"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hvacbill/internal/export"
)

// exportFormat reads ?format=, defaulting to xlsx. It writes the error
// response and returns false for an unknown format.
func exportFormat(c *gin.Context) (string, bool) {
	format := strings.ToLower(c.DefaultQuery("format", export.FormatXLSX))
	if !export.ValidFormat(format) {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
		return "", false
	}
	return format, true
}

// sendTable writes t as a downloadable attachment named after base.
func sendTable(c *gin.Context, base, format string, t export.Table) {
	var buf bytes.Buffer
	var err error
	if format == export.FormatCSV {
		err = export.WriteCSV(&buf, t)
	} else {
		err = export.WriteXLSX(&buf, t)
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := export.Filename(base, format, time.Now())
	c.Header("Content-Disposition", contentDisposition("attachment", filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

// contentDisposition builds a Content-Disposition value with filename quoted
// or RFC 2231 encoded as needed, so user-supplied numbers cannot break it.
func contentDisposition(disposition, filename string) string {
	if v := mime.FormatMediaType(disposition, map[string]string{"filename": filename}); v != "" {
		return v
	}
	return disposition
}
