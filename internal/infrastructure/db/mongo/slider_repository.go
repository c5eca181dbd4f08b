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

const collectionSliders = "sliders"

type SliderRepository struct {
	col *mongo.Collection
}

func NewSliderRepository(db *mongo.Database) *SliderRepository {
	return &SliderRepository{col: db.Collection(collectionSliders)}
}

type sliderDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description,omitempty"`
	Icon        string    `bson:"icon,omitempty"`
	ImageBase64 string    `bson:"image_base64"`
	Order       int       `bson:"order"`
	Active      bool      `bson:"active"`
	TargetType  string    `bson:"target_type"`
	TargetSlug  string    `bson:"target_slug,omitempty"`
	TargetURL   string    `bson:"target_url,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d *sliderDoc) toDomain() *domain.Slider {
	return &domain.Slider{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Icon:        d.Icon,
		ImageBase64: d.ImageBase64,
		Order:       d.Order,
		Active:      d.Active,
		TargetType:  domain.SliderTarget(d.TargetType),
		TargetSlug:  d.TargetSlug,
		TargetURL:   d.TargetURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func fromSlider(s *domain.Slider) sliderDoc {
	return sliderDoc{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Icon:        s.Icon,
		ImageBase64: s.ImageBase64,
		Order:       s.Order,
		Active:      s.Active,
		TargetType:  string(s.TargetType),
		TargetSlug:  s.TargetSlug,
		TargetURL:   s.TargetURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *SliderRepository) Create(ctx context.Context, s *domain.Slider) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, fromSlider(s)); err != nil {
		return fmt.Errorf("insert slider: %w", err)
	}
	return nil
}

func (r *SliderRepository) FindByID(ctx context.Context, id string) (*domain.Slider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d sliderDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSliderNotFound
		}
		return nil, fmt.Errorf("find slider: %w", err)
	}
	return d.toDomain(), nil
}

func (r *SliderRepository) List(ctx context.Context, activeOnly bool) ([]domain.Slider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	defer cur.Close(ctx)

	var sliders []domain.Slider
	for cur.Next(ctx) {
		var d sliderDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode slider: %w", err)
		}
		sliders = append(sliders, *d.toDomain())
	}
	return sliders, cur.Err()
}

func (r *SliderRepository) Update(ctx context.Context, s *domain.Slider) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": s.ID}, bson.M{"$set": bson.M{
		"title":        s.Title,
		"description":  s.Description,
		"icon":         s.Icon,
		"image_base64": s.ImageBase64,
		"order":        s.Order,
		"active":       s.Active,
		"target_type":  string(s.TargetType),
		"target_slug":  s.TargetSlug,
		"target_url":   s.TargetURL,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update slider: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSliderNotFound
	}
	return nil
}

func (r *SliderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete slider: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSliderNotFound
	}
	return nil
}

func (r *SliderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "active", Value: 1}, {Key: "order", Value: 1}},
	})
	return err
}
