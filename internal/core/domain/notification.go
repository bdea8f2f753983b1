package domain

// Notification kinds, also used as the pub/sub channel names.
const (
	NotificationTourist  = "users.tourist"
	NotificationProvider = "users.provider"
)

// Notification is a best-effort message about a created or updated profile.
// Key groups notifications that must be delivered in order.
type Notification struct {
	Kind    string
	Key     string
	Payload []byte
}

// TouristMessage is the payload published for tourist profiles.
type TouristMessage struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	Gender        string `json:"gender,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
}

// ProviderMessage is the payload published for provider profiles.
type ProviderMessage struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CompanyName  string `json:"company_name,omitempty"`
	ContactRole  string `json:"contact_role,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CompanyPhone string `json:"company_phone,omitempty"`
	CoordX       string `json:"coord_x,omitempty"`
	CoordY       string `json:"coord_y,omitempty"`
}
