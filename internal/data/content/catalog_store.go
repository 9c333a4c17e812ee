// Package content reads catalog documents (hotels, tours, posts, locations)
// from the headless content store.
package content

import (
	"context"
	"errors"
	"fmt"

	"fairway-booking/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const DefaultLocale = "en"

type CatalogStore interface {
	FindItem(ctx context.Context, docType entity.DocType, id string) (*entity.CatalogItem, error)
	FindBySlug(ctx context.Context, docType entity.DocType, slug, locale string) (*entity.CatalogItem, error)
	ListByType(ctx context.Context, docType entity.DocType, locale string, limit int) ([]*entity.CatalogItem, error)
}

type catalogStore struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewCatalogStore(coll *mongo.Collection, log *zap.Logger) CatalogStore {
	return &catalogStore{
		coll: coll,
		log:  log.With(zap.String("repository", "catalog")),
	}
}

// FindItem returns nil, nil when no document matches.
func (s *catalogStore) FindItem(ctx context.Context, docType entity.DocType, id string) (*entity.CatalogItem, error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "type", Value: docType}}
	item, err := s.findOne(ctx, filter)
	if err != nil {
		s.log.Error("Failed to find catalog item",
			zap.Error(err), zap.String("type", string(docType)), zap.String("id", id))
		return nil, fmt.Errorf("find %s %s: %w", docType, id, err)
	}
	return item, nil
}

// FindBySlug falls back to the default locale when no translation exists.
func (s *catalogStore) FindBySlug(ctx context.Context, docType entity.DocType, slug, locale string) (*entity.CatalogItem, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	locales := []string{locale}
	if locale != DefaultLocale {
		locales = append(locales, DefaultLocale)
	}

	for _, loc := range locales {
		filter := bson.D{
			{Key: "type", Value: docType},
			{Key: "slug", Value: slug},
			{Key: "locale", Value: loc},
		}
		item, err := s.findOne(ctx, filter)
		if err != nil {
			s.log.Error("Failed to find catalog item by slug",
				zap.Error(err), zap.String("type", string(docType)), zap.String("slug", slug))
			return nil, fmt.Errorf("find %s by slug %s: %w", docType, slug, err)
		}
		if item != nil {
			return item, nil
		}
	}

	return nil, nil
}

func (s *catalogStore) ListByType(ctx context.Context, docType entity.DocType, locale string, limit int) ([]*entity.CatalogItem, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, bson.D{{Key: "type", Value: docType}, {Key: "locale", Value: locale}}, opts)
	if err != nil {
		s.log.Error("Failed to list catalog items", zap.Error(err), zap.String("type", string(docType)))
		return nil, fmt.Errorf("list %s: %w", docType, err)
	}
	defer cur.Close(ctx)

	items := make([]*entity.CatalogItem, 0, limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", docType, err)
	}
	return items, nil
}

func (s *catalogStore) findOne(ctx context.Context, filter bson.D) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := s.coll.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
