package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/networkasro/backoffice/internal/core/domain"
)

const collectionPages = "pages"

// PageRepository stores content pages. Listings are ordered by the
// explicit order field ascending.
type PageRepository struct {
	col *mongo.Collection
}

func NewPageRepository(db *mongo.Database) *PageRepository {
	return &PageRepository{col: db.Collection(collectionPages)}
}

type pageDoc struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Slug      string    `bson:"slug"`
	Icon      string    `bson:"icon,omitempty"`
	Type      string    `bson:"type"`
	Order     int       `bson:"order"`
	Active    bool      `bson:"active"`
	Content   string    `bson:"content,omitempty"`
	URL       string    `bson:"url,omitempty"`
	CreatedBy string    `bson:"created_by,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *pageDoc) toDomain() *domain.Page {
	return &domain.Page{
		ID:        d.ID,
		Title:     d.Title,
		Slug:      d.Slug,
		Icon:      d.Icon,
		Type:      domain.PageType(d.Type),
		Order:     d.Order,
		Active:    d.Active,
		Content:   d.Content,
		URL:       d.URL,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *PageRepository) Create(ctx context.Context, p *domain.Page) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, pageDoc{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Icon:      p.Icon,
		Type:      string(p.Type),
		Order:     p.Order,
		Active:    p.Active,
		Content:   p.Content,
		URL:       p.URL,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

func (r *PageRepository) FindByID(ctx context.Context, id string) (*domain.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d pageDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("find page: %w", err)
	}
	return d.toDomain(), nil
}

func (r *PageRepository) FindBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d pageDoc
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("find page: %w", err)
	}
	return d.toDomain(), nil
}

func (r *PageRepository) List(ctx context.Context, activeOnly bool) ([]domain.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer cur.Close(ctx)

	var pages []domain.Page
	for cur.Next(ctx) {
		var d pageDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		pages = append(pages, *d.toDomain())
	}
	return pages, cur.Err()
}

func (r *PageRepository) Update(ctx context.Context, p *domain.Page) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"title":      p.Title,
		"slug":       p.Slug,
		"icon":       p.Icon,
		"type":       string(p.Type),
		"order":      p.Order,
		"active":     p.Active,
		"content":    p.Content,
		"url":        p.URL,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

func (r *PageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

// EnsureIndexes creates the slug and ordering indexes.
func (r *PageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "order", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
