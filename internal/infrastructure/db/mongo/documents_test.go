package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iwellness/admin-users/internal/core/domain"
)

func TestIdentityDocument_RoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CST", -6*3600))
	in := &domain.Identity{
		ID:           7,
		Email:        "a@x.com",
		PasswordHash: "hash",
		Name:         "Ana",
		RoleID:       2,
		Role:         domain.RoleTourist,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	raw, err := bson.Marshal(toIdentityDocument(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["_id"] != int64(7) || fields["email"] != "a@x.com" || fields["password_hash"] != "hash" {
		t.Fatalf("unexpected stored fields: %+v", fields)
	}
	if _, ok := fields["avatar"]; ok {
		t.Fatalf("empty avatar should be omitted: %+v", fields)
	}

	var doc identityDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := doc.toDomain()
	if out.ID != in.ID || out.Email != in.Email || out.Role != in.Role || out.RoleID != in.RoleID {
		t.Fatalf("unexpected identity: %+v", out)
	}
	if !out.CreatedAt.Equal(created) || out.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC created_at equal to input, got %v", out.CreatedAt)
	}
}

func TestTouristDocument_Fields(t *testing.T) {
	bd := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	p := &domain.TouristProfile{ID: 101, IdentityID: 1, City: "Heredia", BirthDate: &bd}

	raw, err := bson.Marshal(touristDocument(*p))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["_id"] != int64(101) || fields["identity_id"] != int64(1) || fields["city"] != "Heredia" {
		t.Fatalf("unexpected stored fields: %+v", fields)
	}
	if _, ok := fields["phone"]; ok {
		t.Fatalf("empty phone should be omitted: %+v", fields)
	}

	var doc touristDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := domain.TouristProfile(doc)
	if out.BirthDate == nil || !out.BirthDate.Equal(bd) || out.City != "Heredia" {
		t.Fatalf("unexpected profile: %+v", out)
	}
}

func TestProviderDocument_Fields(t *testing.T) {
	p := &domain.ProviderProfile{ID: 201, IdentityID: 1, CompanyName: "C", CoordX: "9.93", TaxID: "3-101"}

	raw, err := bson.Marshal(providerDocument(*p))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc providerDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out := domain.ProviderProfile(doc); out != *p {
		t.Fatalf("expected %+v, got %+v", *p, out)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["company_name"] != "C" || fields["coord_x"] != "9.93" || fields["tax_id"] != "3-101" {
		t.Fatalf("unexpected stored fields: %+v", fields)
	}
}

func TestWriteError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	if err := writeError("insert user", dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	other := errors.New("connection reset")
	err := writeError("insert user", other)
	if errors.Is(err, domain.ErrEmailTaken) || !errors.Is(err, other) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(mongo.ErrNoDocuments) {
		t.Fatalf("ErrNoDocuments should be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("unrelated error reported as not found")
	}
}
