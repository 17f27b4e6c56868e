package services

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// IndexJob asks the indexer to embed and store one resume's chunks.
type IndexJob struct {
	UserID     string
	SessionID  string
	ResumeText string
}

// Indexer pushes resume chunks into the vector store off the request path, so
// uploads are not blocked on embedding calls.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job IndexJob)
}

type indexer struct {
	gemini      GeminiService
	qdrant      QdrantService
	chunker     TextChunker
	jobQueue    chan IndexJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewIndexer(gemini GeminiService, qdrant QdrantService, concurrency int) Indexer {
	if concurrency <= 0 {
		concurrency = 1
	}

	return &indexer{
		gemini:      gemini,
		qdrant:      qdrant,
		chunker:     NewTextChunker(),
		jobQueue:    make(chan IndexJob, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting resume indexer with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Resume indexer stopped")
}

// Enqueue implements Indexer.
func (w *indexer) Enqueue(job IndexJob) {
	select {
	case w.jobQueue <- job:
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, cannot enqueue job for session %s\n", job.SessionID)
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case job := <-w.jobQueue:
			if err := w.indexResume(ctx, job); err != nil {
				log.Printf("❌ Indexer #%d failed for session %s: %v\n", workerID, job.SessionID, err)
			}
		}
	}
}

func (w *indexer) indexResume(ctx context.Context, job IndexJob) error {
	chunks := w.chunker.ChunkText(job.ResumeText, 1000, 200)

	var failed int
	for i, chunk := range chunks {
		embedding, err := w.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			failed++
			continue
		}

		err = w.qdrant.UpsertChunk(ctx, ContextChunk{
			DocID:     fmt.Sprintf("%s_chunk_%d", job.SessionID, i),
			DocType:   DocTypeResume,
			UserID:    job.UserID,
			SessionID: job.SessionID,
			Text:      chunk,
		}, embedding)
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to index %d/%d chunks", failed, len(chunks))
	}

	log.Printf("📊 Indexed %d resume chunks for session %s\n", len(chunks), job.SessionID)
	return nil
}
