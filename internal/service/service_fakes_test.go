package service

import (
	"context"
	"sort"
	"sync"

	"qa-agent-be/internal/entity"
	"qa-agent-be/internal/repository/contract"
	"qa-agent-be/internal/repository/unitofwork"
	"qa-agent-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. One fakeUow is shared per test
// so state persists across unit-of-work instances.

type fakeUowFactory struct {
	uow *fakeUow
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{uow: newFakeUow()}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	mu          sync.Mutex
	collections map[string]*entity.Collection
	documents   []*entity.Document
	chunks      []*entity.DocumentChunk
}

func newFakeUow() *fakeUow {
	return &fakeUow{collections: make(map[string]*entity.Collection)}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) CollectionRepository() contract.CollectionRepository {
	return &fakeCollectionRepo{uow: u}
}

func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{uow: u}
}

func (u *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &fakeChunkRepo{uow: u}
}

type fakeCollectionRepo struct {
	uow *fakeUow
}

func (r *fakeCollectionRepo) Create(ctx context.Context, collection *entity.Collection) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	if _, exists := r.uow.collections[collection.Name]; exists {
		return contract.ErrAlreadyExists
	}
	r.uow.collections[collection.Name] = collection
	return nil
}

func (r *fakeCollectionRepo) FindByName(ctx context.Context, name string) (*entity.Collection, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	return r.uow.collections[name], nil
}

func (r *fakeCollectionRepo) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	for name, col := range r.uow.collections {
		if col.Id == id {
			delete(r.uow.collections, name)
		}
	}
	return nil
}

type fakeDocumentRepo struct {
	uow *fakeUow
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	r.uow.documents = append(r.uow.documents, document)
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error {
	return nil
}

func (r *fakeDocumentRepo) FindAllByCollectionId(ctx context.Context, collectionId uuid.UUID) ([]*entity.Document, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.uow.documents {
		if d.CollectionId == collectionId {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) DistinctSources(ctx context.Context, collectionId uuid.UUID) ([]string, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	seen := make(map[string]bool)
	var sources []string
	for _, d := range r.uow.documents {
		if d.CollectionId == collectionId && !seen[d.Source] {
			seen[d.Source] = true
			sources = append(sources, d.Source)
		}
	}
	sort.Strings(sources)
	return sources, nil
}

func (r *fakeDocumentRepo) DeleteAllByCollectionIdUnscoped(ctx context.Context, collectionId uuid.UUID) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	var kept []*entity.Document
	for _, d := range r.uow.documents {
		if d.CollectionId != collectionId {
			kept = append(kept, d)
		}
	}
	r.uow.documents = kept
	return nil
}

type fakeChunkRepo struct {
	uow *fakeUow
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	r.uow.chunks = append(r.uow.chunks, chunks...)
	return nil
}

func (r *fakeChunkRepo) CountByCollectionId(ctx context.Context, collectionId uuid.UUID) (int64, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	var count int64
	for _, c := range r.uow.chunks {
		if c.CollectionId == collectionId {
			count++
		}
	}
	return count, nil
}

func (r *fakeChunkRepo) FindAllByCollectionId(ctx context.Context, collectionId uuid.UUID, limit int) ([]*entity.DocumentChunk, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	var out []*entity.DocumentChunk
	for _, c := range r.uow.chunks {
		if c.CollectionId == collectionId {
			out = append(out, c)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) DeleteAllByCollectionIdUnscoped(ctx context.Context, collectionId uuid.UUID) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	var kept []*entity.DocumentChunk
	for _, c := range r.uow.chunks {
		if c.CollectionId != collectionId {
			kept = append(kept, c)
		}
	}
	r.uow.chunks = kept
	return nil
}

func (r *fakeChunkRepo) SearchSimilar(ctx context.Context, collectionId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	if limit <= 0 {
		limit = 5
	}

	var scored []*contract.ScoredDocumentChunk
	for _, c := range r.uow.chunks {
		if c.CollectionId != collectionId {
			continue
		}
		scored = append(scored, &contract.ScoredDocumentChunk{
			Chunk:    c,
			Distance: 1 - dot(embedding, c.EmbeddingValue),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := 0; i < len(a) && i < len(b); i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// fakeEmbedder returns a fixed unit vector for every text.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

// fakeLLM returns a canned response and counts invocations.
type fakeLLM struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakePublisher counts watermill publishes.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}
