package gmail

import (
	"encoding/base64"
	"strings"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

// apiMessage mirrors the wire shape of users.messages resources.
type apiMessage struct {
	ID       string      `json:"id"`
	ThreadID string      `json:"threadId"`
	LabelIDs []string    `json:"labelIds"`
	Snippet  string      `json:"snippet"`
	Payload  *apiPayload `json:"payload"`
}

// apiPayload is one MIME part; multipart messages nest via Parts.
type apiPayload struct {
	MimeType string `json:"mimeType"`
	Filename string `json:"filename"`
	Headers  []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"headers"`
	Body struct {
		Size int64  `json:"size"`
		Data string `json:"data"`
	} `json:"body"`
	Parts []*apiPayload `json:"parts"`
}

// headerMap returns the payload headers keyed by lowercased name.
func (m *apiMessage) headerMap() map[string]string {
	h := map[string]string{}
	if m.Payload == nil {
		return h
	}
	for _, f := range m.Payload.Headers {
		h[strings.ToLower(f.Name)] = f.Value
	}
	return h
}

// decodePayload walks the part tree collecting decoded text and HTML
// bodies plus attachment descriptors. Parts that fail to decode are
// dropped rather than failing the whole message.
func decodePayload(p *apiPayload) (types.Body, []types.Attachment) {
	var body types.Body
	var attachments []types.Attachment
	collectParts(p, &body, &attachments)
	return body, attachments
}

func collectParts(p *apiPayload, body *types.Body, attachments *[]types.Attachment) {
	if p == nil {
		return
	}
	if p.Filename != "" {
		*attachments = append(*attachments, types.Attachment{
			Filename: p.Filename,
			MimeType: p.MimeType,
			Size:     p.Body.Size,
		})
		return
	}
	if len(p.Parts) > 0 {
		for _, part := range p.Parts {
			collectParts(part, body, attachments)
		}
		return
	}
	if p.Body.Data == "" {
		return
	}

	decoded, err := decodeBase64URL(p.Body.Data)
	if err != nil {
		return
	}
	switch p.MimeType {
	case "text/plain":
		body.Text += decoded
	case "text/html":
		body.HTML += decoded
	}
}

// decodeBase64URL accepts the API's url-safe base64 with or without
// padding.
func decodeBase64URL(s string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
