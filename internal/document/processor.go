package document

import (
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	DefaultMaxBytes = 10 << 20
	maxTextRunes    = 20000
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file is too large")
	ErrBadEncoding     = errors.New("file is not valid base64")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Error scopes an ingestion failure to the uploaded file's name.
type Error struct {
	FileName string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not process %q: %v", e.FileName, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is what an upload contributes to later prompts. Content is inserted
// verbatim as bill context.
type Result struct {
	Content           string            `json:"content"`
	ProfessionImpacts map[string]string `json:"professionImpacts"`
	Success           bool              `json:"success"`
	MIMEType          string            `json:"mimeType,omitempty"`
}

// Processor turns uploaded bill documents into prompt context. Plain-text
// uploads are used as-is; PDF and Word files, whose text is not extracted,
// contribute KeyProvisions instead.
type Processor struct {
	maxBytes int
	logger   *zap.Logger
}

func NewProcessor(maxBytes int, logger *zap.Logger) *Processor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{maxBytes: maxBytes, logger: logger}
}

var binaryBillTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/rtf",
}

// Process decodes a base64 upload (a data URL prefix is accepted) and
// returns its context. Every error is an *Error naming fileName.
func (p *Processor) Process(fileName, encoded string) (Result, error) {
	fail := func(err error) (Result, error) {
		p.logger.Warn("document rejected", zap.String("file", fileName), zap.Error(err))
		return Result{}, &Error{FileName: fileName, Err: err}
	}

	if _, payload, ok := strings.Cut(encoded, ";base64,"); ok {
		encoded = payload
	}
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return fail(ErrEmptyFile)
	}
	if base64.StdEncoding.DecodedLen(len(encoded)) > p.maxBytes+3 {
		return fail(ErrTooLarge)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrBadEncoding, err))
	}
	if len(data) == 0 {
		return fail(ErrEmptyFile)
	}
	if len(data) > p.maxBytes {
		return fail(ErrTooLarge)
	}

	mtype := mimetype.Detect(data)
	content, err := contentFor(mtype, data)
	if err != nil {
		return fail(fmt.Errorf("%w: %s", err, mtype.String()))
	}

	p.logger.Info("document processed",
		zap.String("file", fileName),
		zap.String("mime", mtype.String()),
		zap.Int("bytes", len(data)))

	return Result{
		Content:           content,
		ProfessionImpacts: maps.Clone(professionImpacts),
		Success:           true,
		MIMEType:          mtype.String(),
	}, nil
}

func contentFor(mtype *mimetype.MIME, data []byte) (string, error) {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			if !utf8.Valid(data) {
				return "", ErrUnsupportedType
			}
			text := strings.TrimSpace(string(data))
			if text == "" {
				return "", ErrEmptyFile
			}
			return clipRunes(text, maxTextRunes), nil
		}
	}
	for _, t := range binaryBillTypes {
		if mtype.Is(t) {
			return KeyProvisions, nil
		}
	}
	return "", ErrUnsupportedType
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
