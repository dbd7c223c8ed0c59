package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/eleven-am/aeye/internal/shared"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"gorm.io/gorm"
)

// transcriptCollection holds one point per interaction, keyed by the
// interaction ID, so vector hits hydrate straight from the database.
const transcriptCollection = "interactions"

type Store struct {
	db     *gorm.DB
	qdrant *qdrant.Client
}

func NewStore(db *gorm.DB, qdrantClient *qdrant.Client) *Store {
	return &Store{
		db:     db,
		qdrant: qdrantClient,
	}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Person{}, &Interaction{})
}

func (s *Store) CreatePerson(ctx context.Context, p *Person) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) GetPerson(ctx context.Context, id string) (*Person, error) {
	var p Person
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &p, err
}

func (s *Store) ListPeople(ctx context.Context) ([]*Person, error) {
	var people []*Person
	err := s.db.WithContext(ctx).Order("last_seen_at DESC").Find(&people).Error
	return people, err
}

func (s *Store) UpdatePerson(ctx context.Context, p *Person) error {
	return s.db.WithContext(ctx).Save(p).Error
}

// DeletePerson removes the person row and every interaction row that
// points at it. File cleanup belongs to the service.
func (s *Store) DeletePerson(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Delete(&Interaction{}, "person_id = ?", id).Error
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Delete(&Person{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) MoveInteractions(ctx context.Context, fromPersonID, toPersonID string) error {
	return s.db.WithContext(ctx).Model(&Interaction{}).
		Where("person_id = ?", fromPersonID).
		Update("person_id", toPersonID).Error
}

func (s *Store) CountInteractions(ctx context.Context, personID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Interaction{}).
		Where("person_id = ?", personID).Count(&count).Error
	return count, err
}

// InteractionCounts returns interaction totals keyed by person ID in a
// single query, for the people listing.
func (s *Store) InteractionCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		PersonID string
		Count    int64
	}
	err := s.db.WithContext(ctx).Model(&Interaction{}).
		Select("person_id, COUNT(*) as count").
		Group("person_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.PersonID] = r.Count
	}
	return counts, nil
}

func (s *Store) CreateInteraction(ctx context.Context, i *Interaction) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(i).Error
}

func (s *Store) GetInteraction(ctx context.Context, id string) (*Interaction, error) {
	var i Interaction
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &i, err
}

func (s *Store) ListInteractions(ctx context.Context, personID string) ([]*Interaction, error) {
	var interactions []*Interaction
	err := s.db.WithContext(ctx).Where("person_id = ?", personID).
		Order("started_at DESC").Find(&interactions).Error
	return interactions, err
}

// SearchTranscripts is the lexical fallback when no embedding is
// available. LOWER/LIKE keeps it case-insensitive on both postgres
// and sqlite.
func (s *Store) SearchTranscripts(ctx context.Context, query string, limit int) ([]*Interaction, error) {
	var interactions []*Interaction
	pattern := "%" + strings.ToLower(query) + "%"
	err := s.db.WithContext(ctx).Where("LOWER(transcript) LIKE ?", pattern).
		Order("started_at DESC").Limit(limit).Find(&interactions).Error
	return interactions, err
}

func (s *Store) SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*Interaction, error) {
	if s.qdrant == nil {
		return nil, errors.New("qdrant client not configured")
	}

	results, err := s.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: transcriptCollection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		if r.Id != nil {
			if id := r.Id.GetUuid(); id != "" {
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		return []*Interaction{}, nil
	}

	var interactions []*Interaction
	err = s.db.WithContext(ctx).Where("id IN ?", ids).Find(&interactions).Error
	return interactions, err
}

func (s *Store) UpsertEmbedding(ctx context.Context, interactionID string, embedding []float32) error {
	if s.qdrant == nil {
		return errors.New("qdrant client not configured")
	}

	_, err := s.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: transcriptCollection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(interactionID),
				Vectors: qdrant.NewVectors(embedding...),
			},
		},
	})
	return err
}

func (s *Store) DeleteEmbedding(ctx context.Context, interactionID string) error {
	if s.qdrant == nil {
		return errors.New("qdrant client not configured")
	}

	_, err := s.qdrant.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: transcriptCollection,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(interactionID)),
	})
	return err
}
