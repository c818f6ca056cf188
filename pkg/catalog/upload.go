package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/catalog-client/pkg/httpclient"
)

const uploadOptionID = "File"

// uploadType is how a file is read and labelled for upload.
type uploadType struct {
	ContentType string
	Binary      bool
}

// uploadTypes is keyed by lower-case file extension.
var uploadTypes = map[string]uploadType{
	".zip": {ContentType: "application/zip", Binary: true},
	".dsx": {ContentType: "text/plain"},
}

var defaultUploadType = uploadType{ContentType: "text/csv"}

func uploadTypeFor(fileName string) uploadType {
	if t, ok := uploadTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return t
	}
	return defaultUploadType
}

// UploadResourceFile attaches a file (custom lineage csv, zip, dsx) to a
// resource for the given scanner. fileName is the name the catalog records;
// filePath is read locally. Only the status code is returned.
func (c *Client) UploadResourceFile(ctx context.Context, name, fileName, filePath, scannerID string) (int, error) {
	const op = "upload resource file"
	if strings.TrimSpace(name) == "" {
		return 0, errors.New(op + ": resource name is empty")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("%s: open %s: %w", op, filePath, err)
	}
	defer file.Close()

	typ := uploadTypeFor(fileName)
	content, err := uploadReader(file, typ)
	if err != nil {
		return 0, fmt.Errorf("%s: read %s: %w", op, filePath, err)
	}

	form := map[string]string{
		"scannerid": scannerID,
		"filename":  fileName,
		"optionid":  uploadOptionID,
	}
	c.log.InfoObj("uploading resource file", "upload", map[string]any{
		"resource":     name,
		"file_name":    fileName,
		"content_type": typ.ContentType,
		"form":         form,
	})

	return c.sendStatus(ctx, op, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.resourceURL(name) + "/files",
		Headers: uploadHeaders,
		Form:    form,
		File: &httpclient.FilePart{
			Param:       "file",
			FileName:    fileName,
			ContentType: typ.ContentType,
			Reader:      content,
		},
	})
}

// uploadReader streams binary files as-is and reads text files with line
// endings normalized to \n.
func uploadReader(r io.Reader, typ uploadType) (io.Reader, error) {
	if typ.Binary {
		return r, nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(normalizeNewlines(raw)), nil
}

func normalizeNewlines(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}
