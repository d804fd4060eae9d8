package model

// StaffRole is one of the ten fixed role kinds a person can fill on an
// event's staffing roster.  The values are the keys stored in the
// `event_staff.role` and `staff_default_roles.role` columns and are never
// renamed; display labels live in the catalog below.
type StaffRole string

const (
	RoleCeremonialist     StaffRole = "cerimonialista"
	RoleCoordinator       StaffRole = "coordenador"
	RolePlanner           StaffRole = "planejador"
	RoleAssistant         StaffRole = "assistente"
	RoleReceptionist      StaffRole = "recepcionista"
	RoleMonitor           StaffRole = "monitor"
	RoleGreenRoomProducer StaffRole = "produtor_camarim"
	RoleMasterOfCeremonies StaffRole = "mestre_cerimonias"
	RoleSecurity          StaffRole = "seguranca"
	RoleCleaningInspector StaffRole = "fiscal_limpeza"
)

// RoleCatalogEntry pairs a role key with its human-readable label as shown
// in the application UI.
type RoleCatalogEntry struct {
	Role  StaffRole `json:"role"`
	Label string    `json:"label"`
}

// roleCatalog lists every role in display order.  The order matters for the
// catalog endpoint and must stay stable.
var roleCatalog = []RoleCatalogEntry{
	{RoleCeremonialist, "Cerimonialista"},
	{RoleCoordinator, "Coordenador(a)"},
	{RolePlanner, "Planejador(a)"},
	{RoleAssistant, "Assistente"},
	{RoleReceptionist, "Recepcionista"},
	{RoleMonitor, "Monitor(a)"},
	{RoleGreenRoomProducer, "Produtor(a) de Camarim"},
	{RoleMasterOfCeremonies, "Mestre de Cerimônias"},
	{RoleSecurity, "Segurança"},
	{RoleCleaningInspector, "Fiscal de Limpeza"},
}

// RoleCatalog returns a copy of the full role catalog.
func RoleCatalog() []RoleCatalogEntry {
	out := make([]RoleCatalogEntry, len(roleCatalog))
	copy(out, roleCatalog)
	return out
}

// ValidRole reports whether s is one of the ten known role keys.
func ValidRole(s string) bool {
	for _, e := range roleCatalog {
		if string(e.Role) == s {
			return true
		}
	}
	return false
}

// Label returns the display label for the role, or the raw key when the
// role is unknown.
func (r StaffRole) Label() string {
	for _, e := range roleCatalog {
		if e.Role == r {
			return e.Label
		}
	}
	return string(r)
}
