package domain

import "time"

// Profile is the role-specific attribute record attached 1:1 to an Identity.
// The set of implementations is closed: TouristProfile, ProviderProfile and
// AdminProfile.
type Profile interface {
	RoleName() string
	isProfile()
}

// TouristProfile holds the extended attributes of a "Turista" identity.
type TouristProfile struct {
	ID            int64      `json:"id"`
	IdentityID    int64      `json:"identity_id"`
	Phone         string     `json:"phone,omitempty"`
	City          string     `json:"city,omitempty"`
	Country       string     `json:"country,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	MaritalStatus string     `json:"marital_status,omitempty"`
}

// ProviderProfile holds the extended attributes of a "Proveedor" identity.
type ProviderProfile struct {
	ID                  int64  `json:"id"`
	IdentityID          int64  `json:"identity_id"`
	CompanyName         string `json:"company_name,omitempty"`
	ContactRole         string `json:"contact_role,omitempty"`
	Phone               string `json:"phone,omitempty"`
	CompanyPhone        string `json:"company_phone,omitempty"`
	CoordX              string `json:"coord_x,omitempty"`
	CoordY              string `json:"coord_y,omitempty"`
	TaxID               string `json:"tax_id,omitempty"`
	Licenses            string `json:"licenses,omitempty"`
	QualityCertificates string `json:"quality_certificates,omitempty"`
}

// AdminProfile marks an identity without an extended profile.
type AdminProfile struct{}

func (*TouristProfile) RoleName() string  { return RoleTourist }
func (*ProviderProfile) RoleName() string { return RoleProvider }
func (AdminProfile) RoleName() string     { return RoleAdmin }

func (*TouristProfile) isProfile()  {}
func (*ProviderProfile) isProfile() {}
func (AdminProfile) isProfile()     {}

// ProfileAttributes is the union of every optional profile field accepted at
// registration. Only the fields relevant to the selected role are kept.
type ProfileAttributes struct {
	Phone               string
	City                string
	Country             string
	Gender              string
	BirthDate           *time.Time
	MaritalStatus       string
	CompanyName         string
	ContactRole         string
	CompanyPhone        string
	CoordX              string
	CoordY              string
	TaxID               string
	Licenses            string
	QualityCertificates string
}

// NewProfile builds the profile variant for role. Roles without a variant
// yield ErrRoleNotFound.
func NewProfile(role string, a ProfileAttributes) (Profile, error) {
	switch role {
	case RoleTourist:
		return &TouristProfile{
			Phone:         a.Phone,
			City:          a.City,
			Country:       a.Country,
			Gender:        a.Gender,
			BirthDate:     a.BirthDate,
			MaritalStatus: a.MaritalStatus,
		}, nil
	case RoleProvider:
		return &ProviderProfile{
			CompanyName:         a.CompanyName,
			ContactRole:         a.ContactRole,
			Phone:               a.Phone,
			CompanyPhone:        a.CompanyPhone,
			CoordX:              a.CoordX,
			CoordY:              a.CoordY,
			TaxID:               a.TaxID,
			Licenses:            a.Licenses,
			QualityCertificates: a.QualityCertificates,
		}, nil
	case RoleAdmin:
		return AdminProfile{}, nil
	default:
		return nil, ErrRoleNotFound
	}
}
