package dto

type UploadedFileResult struct {
	Filename      string `json:"filename"`
	Size          int    `json:"size"`
	ChunksCreated int    `json:"chunks_created"`
	Error         string `json:"error,omitempty"`
}

type UploadDocumentsResponse struct {
	FilesProcessed int                  `json:"files_processed"`
	ChunksCreated  int                  `json:"chunks_created"`
	Files          []UploadedFileResult `json:"files"`
}

type KnowledgeStatsResponse struct {
	Exists        bool     `json:"exists"`
	Count         int64    `json:"count"`
	Name          string   `json:"name,omitempty"`
	UploadedFiles []string `json:"uploaded_files"`
}

// PublishDocumentIngestedMessage is the watermill payload emitted after a
// document lands in the knowledge base.
type PublishDocumentIngestedMessage struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}
