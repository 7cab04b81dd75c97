//nolint:revive // types is a standard Go package name pattern
package types

// ChatTurn is one answered clarification question.
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ChatHistory is the recorded clarification dialogue artifact.
type ChatHistory struct {
	Timestamp      string     `json:"timestamp"`
	TotalQuestions int        `json:"total_questions"`
	Questions      []string   `json:"questions"`
	Answers        []string   `json:"answers"`
	ChatHistory    []ChatTurn `json:"chat_history"`
	AdditionalInfo string     `json:"additional_info"`
}

// ChunkSummary pairs an RFP text chunk with its summary.
type ChunkSummary struct {
	Index   int    `json:"index"`
	Chunk   string `json:"chunk"`
	Summary string `json:"summary"`
}

// RFPSummary is the chunk-summarization artifact.
type RFPSummary struct {
	Source   string         `json:"source"`
	Chunks   []ChunkSummary `json:"chunks"`
	Combined string         `json:"combined"`
}

// ProposalSection is one written section of the technical proposal.
type ProposalSection struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// Proposal is the assembled technical proposal.
type Proposal struct {
	Title    string            `json:"title"`
	Sections []ProposalSection `json:"sections"`
	Markdown string            `json:"markdown"`
}
