package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iwellness/admin-users/internal/core/domain"
)

// ProfileRepository implements ports.ProfileRepository. Each variant lives in
// its own collection keyed by a unique identity_id.
type ProfileRepository struct {
	tourists  *mongo.Collection
	providers *mongo.Collection
	seq       sequence
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		tourists:  db.Collection(collectionTourists),
		providers: db.Collection(collectionProviders),
		seq:       newSequence(db),
	}
}

type touristDocument struct {
	ID            int64      `bson:"_id"`
	IdentityID    int64      `bson:"identity_id"`
	Phone         string     `bson:"phone,omitempty"`
	City          string     `bson:"city,omitempty"`
	Country       string     `bson:"country,omitempty"`
	Gender        string     `bson:"gender,omitempty"`
	BirthDate     *time.Time `bson:"birth_date,omitempty"`
	MaritalStatus string     `bson:"marital_status,omitempty"`
}

type providerDocument struct {
	ID                  int64  `bson:"_id"`
	IdentityID          int64  `bson:"identity_id"`
	CompanyName         string `bson:"company_name,omitempty"`
	ContactRole         string `bson:"contact_role,omitempty"`
	Phone               string `bson:"phone,omitempty"`
	CompanyPhone        string `bson:"company_phone,omitempty"`
	CoordX              string `bson:"coord_x,omitempty"`
	CoordY              string `bson:"coord_y,omitempty"`
	TaxID               string `bson:"tax_id,omitempty"`
	Licenses            string `bson:"licenses,omitempty"`
	QualityCertificates string `bson:"quality_certificates,omitempty"`
}

func (r *ProfileRepository) SaveTourist(ctx context.Context, p *domain.TouristProfile) (*domain.TouristProfile, error) {
	doc := touristDocument(*p)
	if err := r.upsert(ctx, r.tourists, collectionTourists, doc.ID, &doc, func(id int64) { doc.ID = id }); err != nil {
		return nil, fmt.Errorf("save tourist profile: %w", err)
	}
	out := domain.TouristProfile(doc)
	return &out, nil
}

func (r *ProfileRepository) FindTouristByIdentity(ctx context.Context, identityID int64) (*domain.TouristProfile, error) {
	var doc touristDocument
	if err := r.tourists.FindOne(ctx, bson.M{"identity_id": identityID}).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find tourist profile: %w", err)
	}
	out := domain.TouristProfile(doc)
	return &out, nil
}

func (r *ProfileRepository) SaveProvider(ctx context.Context, p *domain.ProviderProfile) (*domain.ProviderProfile, error) {
	doc := providerDocument(*p)
	if err := r.upsert(ctx, r.providers, collectionProviders, doc.ID, &doc, func(id int64) { doc.ID = id }); err != nil {
		return nil, fmt.Errorf("save provider profile: %w", err)
	}
	out := domain.ProviderProfile(doc)
	return &out, nil
}

func (r *ProfileRepository) FindProviderByIdentity(ctx context.Context, identityID int64) (*domain.ProviderProfile, error) {
	var doc providerDocument
	if err := r.providers.FindOne(ctx, bson.M{"identity_id": identityID}).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find provider profile: %w", err)
	}
	out := domain.ProviderProfile(doc)
	return &out, nil
}

func (r *ProfileRepository) DeleteByIdentity(ctx context.Context, identityID int64) error {
	filter := bson.M{"identity_id": identityID}
	if _, err := r.tourists.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete tourist profile: %w", err)
	}
	if _, err := r.providers.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete provider profile: %w", err)
	}
	return nil
}

// upsert inserts doc under a fresh sequence id when id is zero and replaces the
// stored document otherwise. setID writes the allocated id back into doc.
func (r *ProfileRepository) upsert(ctx context.Context, col *mongo.Collection, name string, id int64, doc any, setID func(int64)) error {
	if id == 0 {
		next, err := r.seq.next(ctx, name)
		if err != nil {
			return err
		}
		setID(next)
		_, err = col.InsertOne(ctx, doc)
		return err
	}

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
