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

const (
	collectionSettings = "app_settings"
	settingsDocID      = "app"
)

// SettingsRepository keeps the single application settings document.
type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

type settingsDoc struct {
	ID             string    `bson:"_id"`
	AppName        string    `bson:"app_name"`
	OrgName        string    `bson:"org_name"`
	HeaderText     string    `bson:"header_text"`
	FooterText     string    `bson:"footer_text"`
	PrimaryColor   string    `bson:"primary_color"`
	SecondaryColor string    `bson:"secondary_color"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// Get returns nil without error when no settings document exists yet.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d settingsDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}

	updatedAt := d.UpdatedAt
	return &domain.AppSettings{
		AppName:        d.AppName,
		OrgName:        d.OrgName,
		HeaderText:     d.HeaderText,
		FooterText:     d.FooterText,
		PrimaryColor:   d.PrimaryColor,
		SecondaryColor: d.SecondaryColor,
		UpdatedAt:      &updatedAt,
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *domain.AppSettings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	s.UpdatedAt = &now

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": settingsDocID},
		bson.M{"$set": settingsDoc{
			ID:             settingsDocID,
			AppName:        s.AppName,
			OrgName:        s.OrgName,
			HeaderText:     s.HeaderText,
			FooterText:     s.FooterText,
			PrimaryColor:   s.PrimaryColor,
			SecondaryColor: s.SecondaryColor,
			UpdatedAt:      now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
