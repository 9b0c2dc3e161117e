// Package mbox turns local mbox archives into records the store can
// persist, as an offline alternative to the Gmail source.
package mbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

// Envelope is one parsed message or, when Err is set, one message that
// could not be decoded. Readers emit both so consumers can keep counts
// without the stream stopping on bad input.
type Envelope struct {
	ID      string
	Date    time.Time
	Headers types.Headers
	Content map[string]any
	Err     error
}

// Options configures a Reader. Limit caps the number of messages
// emitted; zero means the whole file.
type Options struct {
	Path  string
	Limit int
}

// Reader streams messages out of one mbox file.
type Reader struct {
	path   string
	limit  int
	logger *slog.Logger
}

// NewReader validates the options and returns a Reader.
func NewReader(opts Options, logger *slog.Logger) (*Reader, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, errors.New("mbox path is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{path: path, limit: opts.Limit, logger: logger}, nil
}

// Stream sends one Envelope per mbox message until EOF, the limit, or
// context cancellation. The channel is not closed; the caller owns it.
func (r *Reader) Stream(ctx context.Context, out chan<- Envelope) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open mbox: %w", err)
	}
	defer f.Close()

	reader := mboxlib.NewReader(f)
	for count := 0; r.limit <= 0 || count < r.limit; count++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read mbox message: %w", err)
		}

		env := parseMessage(msg)
		if env.Err != nil {
			r.logger.Warn("unparseable mbox message", "index", count, "error", env.Err)
		}

		select {
		case out <- env:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// parseMessage decodes a single RFC 5322 message into an Envelope. A
// missing Message-Id gets a generated one so the record is still
// addressable in the archive.
func parseMessage(raw io.Reader) Envelope {
	e, err := message.Read(raw)
	if err != nil && !message.IsUnknownCharset(err) {
		return Envelope{Err: fmt.Errorf("parse message: %w", err)}
	}
	mh := mail.Header{Header: e.Header}

	id, err := mh.MessageID()
	if err != nil || id == "" {
		id = uuid.NewString()
	}

	date, err := mh.Date()
	if err != nil || date.IsZero() {
		date = time.Now()
	}

	body, attachments, err := extractBody(e)
	if err != nil {
		return Envelope{ID: id, Err: fmt.Errorf("extract body of %s: %w", id, err)}
	}

	return Envelope{
		ID:      id,
		Date:    date.UTC(),
		Headers: collectHeaders(e.Header),
		Content: map[string]any{
			"snippet":     snippet(body.Text),
			"body_text":   body.Text,
			"body_html":   body.HTML,
			"attachments": attachments,
		},
	}
}

// archivedHeaders are the header names copied into record metadata, in
// the order they are written.
var archivedHeaders = []string{"Subject", "From", "To", "Cc", "Reply-To"}

func collectHeaders(h message.Header) types.Headers {
	var out types.Headers
	for _, name := range archivedHeaders {
		if !h.Has(name) {
			continue
		}
		v, err := h.Text(name)
		if err != nil {
			v = h.Get(name)
		}
		out.Add(name, v)
	}
	return out
}

// extractBody walks the MIME tree, concatenating text and HTML leaves
// and recording attachment metadata without keeping payloads.
func extractBody(e *message.Entity) (types.Body, []types.Attachment, error) {
	var body types.Body
	attachments := []types.Attachment{}
	err := walkEntity(e, &body, &attachments)
	return body, attachments, err
}

func walkEntity(e *message.Entity, body *types.Body, attachments *[]types.Attachment) error {
	if mr := e.MultipartReader(); mr != nil {
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := walkEntity(part, body, attachments); err != nil {
				return err
			}
		}
	}

	ctype, _, err := e.Header.ContentType()
	if err != nil {
		ctype = "text/plain"
	}

	disp, dispParams, _ := e.Header.ContentDisposition()
	if disp == "attachment" || dispParams["filename"] != "" {
		size, err := io.Copy(io.Discard, e.Body)
		if err != nil {
			return err
		}
		*attachments = append(*attachments, types.Attachment{
			Filename: dispParams["filename"],
			MimeType: ctype,
			Size:     size,
		})
		return nil
	}

	data, err := io.ReadAll(e.Body)
	if err != nil {
		return err
	}
	switch ctype {
	case "text/plain":
		body.Text += string(data)
	case "text/html":
		body.HTML += string(data)
	}
	return nil
}

// snippetLen matches the rough size of remote snippets.
const snippetLen = 120

// snippet collapses whitespace and truncates to snippetLen runes.
func snippet(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= snippetLen {
		return collapsed
	}
	return string(runes[:snippetLen])
}
