package types

// Summary is the metadata-only result of a remote search. Date carries
// the original RFC 2822 date header verbatim; parsing happens at save
// time so unparseable dates degrade per message, not per batch.
type Summary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	Date     string   `json:"date"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Subject  string   `json:"subject"`
	LabelIDs []string `json:"labelIds"`
}

// Body holds the decoded text and HTML parts of a message.
type Body struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Attachment describes one attachment without its payload.
type Attachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Message is a fully materialized remote message.
type Message struct {
	ID          string       `json:"id"`
	ThreadID    string       `json:"threadId"`
	LabelIDs    []string     `json:"labelIds"`
	Snippet     string       `json:"snippet"`
	Date        string       `json:"date"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Subject     string       `json:"subject"`
	Body        Body         `json:"body"`
	Attachments []Attachment `json:"attachments"`
}
