package api

import (
	"net/url"
	"strconv"
)

// UploadFile is the single part of a multipart upload request.
type UploadFile struct {
	FieldName   string
	Filename    string
	ContentType string
	Data        []byte
}

// NewJPEGUpload builds a small valid JPEG upload.
func NewJPEGUpload() UploadFile {
	return UploadFile{
		FieldName:   "file",
		Filename:    "test.jpg",
		ContentType: "image/jpeg",
		Data:        GenerateJPEG(100, 100),
	}
}

// NewPNGUpload builds a small valid PNG upload.
func NewPNGUpload() UploadFile {
	return UploadFile{
		FieldName:   "file",
		Filename:    "test.png",
		ContentType: "image/png",
		Data:        GeneratePNG(100, 100),
	}
}

// NewTextUpload builds a non-image payload for probing the unsupported media
// type rejection.
func NewTextUpload() UploadFile {
	return UploadFile{
		FieldName:   "file",
		Filename:    "test.txt",
		ContentType: "text/plain",
		Data:        []byte("This is not an image file"),
	}
}

// NewOversizeUpload builds a valid JPEG just past the documented size limit.
func NewOversizeUpload(limitBytes int64) UploadFile {
	return UploadFile{
		FieldName:   "file",
		Filename:    "large_test.jpg",
		ContentType: "image/jpeg",
		Data:        GenerateOversizeJPEG(limitBytes + 1),
	}
}

// ListImagesQuery builds pagination and filter parameters for the admin
// listing endpoint. Raw values are supported so suites can probe rejection
// of malformed parameters.
type ListImagesQuery struct {
	values url.Values
}

func NewListImagesQuery() *ListImagesQuery {
	return &ListImagesQuery{values: url.Values{}}
}

// WithLimit sets the page size.
func (q *ListImagesQuery) WithLimit(limit int) *ListImagesQuery {
	q.values.Set("limit", strconv.Itoa(limit))
	return q
}

// WithOffset sets the page offset.
func (q *ListImagesQuery) WithOffset(offset int) *ListImagesQuery {
	q.values.Set("offset", strconv.Itoa(offset))
	return q
}

// WithStatus filters by processing status.
func (q *ListImagesQuery) WithStatus(status string) *ListImagesQuery {
	q.values.Set("status", status)
	return q
}

// WithRawParam sets an arbitrary, possibly malformed, parameter value.
func (q *ListImagesQuery) WithRawParam(key, value string) *ListImagesQuery {
	q.values.Set(key, value)
	return q
}

// Encode returns the query string without the leading question mark.
func (q *ListImagesQuery) Encode() string {
	return q.values.Encode()
}
