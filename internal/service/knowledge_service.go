package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/entity"
	"qa-agent-be/internal/repository/contract"
	"qa-agent-be/internal/repository/unitofwork"
	"qa-agent-be/pkg/embedding"
	"qa-agent-be/pkg/events"
	"qa-agent-be/pkg/extract"
	pktNats "qa-agent-be/pkg/nats"
	"qa-agent-be/pkg/utils"

	"github.com/google/uuid"
)

// CollectionName is the single knowledge base collection. The system is
// single tenant; every document lands here.
const CollectionName = "qa_documents"

// ErrEmptyKnowledgeBase signals that generation was requested before any
// document was ingested.
var ErrEmptyKnowledgeBase = errors.New("knowledge base is empty, upload documents first")

type IKnowledgeService interface {
	Ingest(ctx context.Context, doc *extract.Document) (int, error)
	Search(ctx context.Context, query string, topK int) ([]*entity.SearchResult, error)
	All(ctx context.Context, limit int) ([]*entity.DocumentChunk, error)
	Stats(ctx context.Context) (*dto.KnowledgeStatsResponse, error)
	Reset(ctx context.Context) error
}

type knowledgeService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	chunkSize         int
	chunkOverlap      int
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	chunkSize int,
	chunkOverlap int,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
	}
}

// ensureCollection implements get-or-create. A concurrent create losing the
// race on the unique name index is treated as success.
func (s *knowledgeService) ensureCollection(ctx context.Context, uow unitofwork.UnitOfWork) (*entity.Collection, error) {
	col, err := uow.CollectionRepository().FindByName(ctx, CollectionName)
	if err != nil {
		return nil, err
	}
	if col != nil {
		return col, nil
	}

	col = &entity.Collection{
		Id:        uuid.New(),
		Name:      CollectionName,
		CreatedAt: time.Now(),
	}
	err = uow.CollectionRepository().Create(ctx, col)
	if errors.Is(err, contract.ErrAlreadyExists) {
		return uow.CollectionRepository().FindByName(ctx, CollectionName)
	}
	if err != nil {
		return nil, err
	}
	return col, nil
}

func (s *knowledgeService) Ingest(ctx context.Context, doc *extract.Document) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	col, err := s.ensureCollection(ctx, uow)
	if err != nil {
		return 0, err
	}

	chunks, err := utils.SplitText(doc.Content, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	// The running counter starts at the current collection size so chunk
	// keys stay distinct when the same source is ingested again.
	counter, err := uow.DocumentChunkRepository().CountByCollectionId(ctx, col.Id)
	if err != nil {
		return 0, err
	}

	vectors, err := s.embeddingProvider.EmbedBatch(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("failed to embed document %s: %w", doc.Source, err)
	}

	document := &entity.Document{
		Id:           uuid.New(),
		CollectionId: col.Id,
		Source:       doc.Source,
		FileType:     fmt.Sprintf("%v", doc.Metadata["file_type"]),
		FilePath:     fmt.Sprintf("%v", doc.Metadata["file_path"]),
		TotalChunks:  len(chunks),
		CreatedAt:    time.Now(),
	}

	chunkEntities := make([]*entity.DocumentChunk, len(chunks))
	for i, chunk := range chunks {
		metadata := map[string]interface{}{
			"source":       doc.Source,
			"file_type":    doc.Metadata["file_type"],
			"file_path":    doc.Metadata["file_path"],
			"chunk_index":  i,
			"total_chunks": len(chunks),
		}
		chunkEntities[i] = &entity.DocumentChunk{
			Id:             uuid.New(),
			ChunkKey:       fmt.Sprintf("%s_chunk_%d_%d", doc.Source, i, counter+int64(i)),
			CollectionId:   col.Id,
			DocumentId:     document.Id,
			Content:        chunk,
			EmbeddingValue: vectors[i],
			ChunkIndex:     i,
			Metadata:       metadata,
			CreatedAt:      time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return 0, err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	// Notify downstream consumers. The bus is auxiliary; a publish failure
	// must not undo a committed ingestion.
	msgPayload := dto.PublishDocumentIngestedMessage{
		Source: doc.Source,
		Chunks: len(chunks),
	}
	if msgJson, err := json.Marshal(msgPayload); err == nil {
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			log.Printf("[WARN] Failed to publish document ingested message: %v", err)
		}
	}

	return len(chunks), nil
}

func (s *knowledgeService) Search(ctx context.Context, query string, topK int) ([]*entity.SearchResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	col, err := uow.CollectionRepository().FindByName(ctx, CollectionName)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, nil
	}

	queryVector, err := s.embeddingProvider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored, err := uow.DocumentChunkRepository().SearchSimilar(ctx, col.Id, queryVector, topK)
	if err != nil {
		return nil, err
	}

	results := make([]*entity.SearchResult, len(scored))
	for i, sc := range scored {
		results[i] = &entity.SearchResult{
			Content:  sc.Chunk.Content,
			Metadata: sc.Chunk.Metadata,
			Distance: sc.Distance,
		}
	}
	return results, nil
}

func (s *knowledgeService) All(ctx context.Context, limit int) ([]*entity.DocumentChunk, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	col, err := uow.CollectionRepository().FindByName(ctx, CollectionName)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, nil
	}

	return uow.DocumentChunkRepository().FindAllByCollectionId(ctx, col.Id, limit)
}

func (s *knowledgeService) Stats(ctx context.Context) (*dto.KnowledgeStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	col, err := uow.CollectionRepository().FindByName(ctx, CollectionName)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return &dto.KnowledgeStatsResponse{
			Exists:        false,
			Count:         0,
			UploadedFiles: []string{},
		}, nil
	}

	count, err := uow.DocumentChunkRepository().CountByCollectionId(ctx, col.Id)
	if err != nil {
		return nil, err
	}

	sources, err := uow.DocumentRepository().DistinctSources(ctx, col.Id)
	if err != nil {
		return nil, err
	}
	if sources == nil {
		sources = []string{}
	}

	return &dto.KnowledgeStatsResponse{
		Exists:        true,
		Count:         count,
		Name:          col.Name,
		UploadedFiles: sources,
	}, nil
}

func (s *knowledgeService) Reset(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	col, err := uow.CollectionRepository().FindByName(ctx, CollectionName)
	if err != nil {
		return err
	}
	if col == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteAllByCollectionIdUnscoped(ctx, col.Id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().DeleteAllByCollectionIdUnscoped(ctx, col.Id); err != nil {
		return err
	}
	if err := uow.CollectionRepository().DeleteUnscoped(ctx, col.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	evt := events.BaseEvent{
		Type:       "KNOWLEDGE_RESET",
		Data:       map[string]interface{}{"collection": CollectionName},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish KNOWLEDGE_RESET event: %v", err)
	}

	return nil
}
