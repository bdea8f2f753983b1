package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iwellness/admin-users/internal/api/metrics"
	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
)

const birthDateLayout = "2006-01-02"

type RegistrationHandler struct {
	registration ports.RegistrationService
}

func NewRegistrationHandler(registration ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// registerRequest is the union of every role's registration fields. Fields
// that do not belong to the requested role are ignored.
type registerRequest struct {
	Email    string `json:"email"    validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Avatar   string `json:"avatar"`

	// Tourist
	Phone         string `json:"phone"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Gender        string `json:"gender"`
	BirthDate     string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	MaritalStatus string `json:"marital_status"`

	// Provider
	CompanyName         string `json:"company_name"`
	ContactRole         string `json:"contact_role"`
	CompanyPhone        string `json:"company_phone"`
	CoordX              string `json:"coord_x"`
	CoordY              string `json:"coord_y"`
	TaxID               string `json:"tax_id"`
	Licenses            string `json:"licenses"`
	QualityCertificates string `json:"quality_certificates"`
}

// registroSolicitud carries the Spanish field names older clients send.
type registroSolicitud struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contraseña"`
	Nombre     string `json:"nombre"`
	Foto       string `json:"foto"`

	Telefono        string `json:"telefono"`
	Ciudad          string `json:"ciudad"`
	Pais            string `json:"pais"`
	Genero          string `json:"genero"`
	FechaNacimiento string `json:"fechaNacimiento"`
	EstadoCivil     string `json:"estadoCivil"`

	NombreEmpresa        string `json:"nombre_empresa"`
	NombreComercial      string `json:"nombreComercial"`
	CargoContacto        string `json:"cargoContacto"`
	TelefonoEmpresa      string `json:"telefonoEmpresa"`
	CoordenadaX          string `json:"coordenadaX"`
	CoordenadaY          string `json:"coordenadaY"`
	IdentificacionFiscal string `json:"identificacionFiscal"`
	LicenciasPermisos    string `json:"licenciasPermisos"`
	CertificadosCalidad  string `json:"certificadosCalidad"`
}

// UnmarshalJSON reads the English keys and falls back to the Spanish ones
// for any field left empty.
func (r *registerRequest) UnmarshalJSON(data []byte) error {
	type plain registerRequest
	var en plain
	if err := json.Unmarshal(data, &en); err != nil {
		return err
	}
	var es registroSolicitud
	if err := json.Unmarshal(data, &es); err != nil {
		return err
	}

	*r = registerRequest(en)
	fallback(&r.Email, es.Correo)
	fallback(&r.Password, es.Contrasena)
	fallback(&r.Name, es.Nombre)
	fallback(&r.Avatar, es.Foto)
	fallback(&r.Phone, es.Telefono)
	fallback(&r.City, es.Ciudad)
	fallback(&r.Country, es.Pais)
	fallback(&r.Gender, es.Genero)
	fallback(&r.BirthDate, es.FechaNacimiento)
	fallback(&r.MaritalStatus, es.EstadoCivil)
	fallback(&r.CompanyName, es.NombreEmpresa)
	fallback(&r.CompanyName, es.NombreComercial)
	fallback(&r.ContactRole, es.CargoContacto)
	fallback(&r.CompanyPhone, es.TelefonoEmpresa)
	fallback(&r.CoordX, es.CoordenadaX)
	fallback(&r.CoordY, es.CoordenadaY)
	fallback(&r.TaxID, es.IdentificacionFiscal)
	fallback(&r.Licenses, es.LicenciasPermisos)
	fallback(&r.QualityCertificates, es.CertificadosCalidad)
	return nil
}

func fallback(dst *string, alt string) {
	if *dst == "" {
		*dst = alt
	}
}

type registerResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

func (r registerRequest) toInput() (ports.RegisterInput, error) {
	in := ports.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Avatar:   r.Avatar,
		Attributes: domain.ProfileAttributes{
			Phone:               r.Phone,
			City:                r.City,
			Country:             r.Country,
			Gender:              r.Gender,
			MaritalStatus:       r.MaritalStatus,
			CompanyName:         r.CompanyName,
			ContactRole:         r.ContactRole,
			CompanyPhone:        r.CompanyPhone,
			CoordX:              r.CoordX,
			CoordY:              r.CoordY,
			TaxID:               r.TaxID,
			Licenses:            r.Licenses,
			QualityCertificates: r.QualityCertificates,
		},
	}
	if r.BirthDate != "" {
		d, err := time.Parse(birthDateLayout, r.BirthDate)
		if err != nil {
			return ports.RegisterInput{}, domain.ErrInvalidPayload
		}
		in.Attributes.BirthDate = &d
	}
	return in, nil
}

// Register creates an identity for the role in the path. Admins cannot be
// self-registered.
//
// @Summary      Register a tourist or provider
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string           true  "Role name"  Enums(Turista, Proveedor)
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register/{role} [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	role := c.Param("role")
	if role == domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return h.register(c, role)
}

// RegisterAdmin creates an admin identity. Mounted behind Auth and RBAC(Admin).
//
// @Summary      Register an admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/register [post]
func (h *RegistrationHandler) RegisterAdmin(c echo.Context) error {
	return h.register(c, domain.RoleAdmin)
}

func (h *RegistrationHandler) register(c echo.Context, role string) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	res, err := h.registration.Register(c.Request().Context(), in, role)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(role, metrics.ResultFailure).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(role, metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusCreated, registerResponse{Message: res.Message, Token: res.Token})
}
