package domain

import (
	"fmt"
	"time"
)

// Chunk is a paragraph-sized fragment of a document. Chunks are created once
// during ingestion and never modified afterwards.
type Chunk struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunk_index"`
	Content    string `json:"content"`
}

// ChunkID derives the stable identifier of the index-th chunk of filename.
func ChunkID(filename string, index int) string {
	return fmt.Sprintf("%s-chunk-%d", filename, index)
}

// Document is an ingested file. Filename is the unique key within the
// document store; Category may be overridden by the user at any time.
type Document struct {
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	Chunks     []Chunk   `json:"chunks"`
	Category   Category  `json:"category"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Clone returns a copy of d that shares no slices with it.
func (d Document) Clone() Document {
	out := d
	out.Chunks = make([]Chunk, len(d.Chunks))
	copy(out.Chunks, d.Chunks)
	return out
}

// DocumentSummary is the chunk-less view used by listings.
type DocumentSummary struct {
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	ChunkCount int       `json:"chunk_count"`
	Category   Category  `json:"category"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Summary returns the listing view of d.
func (d Document) Summary() DocumentSummary {
	return DocumentSummary{
		Filename:   d.Filename,
		Size:       d.Size,
		ChunkCount: len(d.Chunks),
		Category:   d.Category,
		UploadedAt: d.UploadedAt,
	}
}
