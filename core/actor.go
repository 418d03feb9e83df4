package core

// Role archetypes, mirroring the hosting platform's course roles.
const (
	RoleStudent        = "student"
	RoleTeacher        = "teacher"
	RoleEditingTeacher = "editingteacher"
	RoleManager        = "manager"
)

// Capability names guarding the course-activity operations.
type Capability string

const (
	CapAddInstance  Capability = "activity:addinstance"
	CapView         Capability = "activity:view"
	CapReportBroken Capability = "activity:reportbroken"
	CapViewReports  Capability = "activity:viewreports"
)

// capabilityRoles maps each capability to the role archetypes allowed to use it.
var capabilityRoles = map[Capability][]string{
	CapAddInstance:  {RoleEditingTeacher, RoleManager},
	CapView:         {RoleStudent, RoleTeacher, RoleEditingTeacher, RoleManager},
	CapReportBroken: {RoleStudent, RoleTeacher, RoleEditingTeacher, RoleManager},
	CapViewReports:  {RoleTeacher, RoleEditingTeacher, RoleManager},
}

// Actor is the authenticated user on whose behalf an operation runs.
// It is always passed explicitly into core operations; services never read
// ambient session state.
type Actor struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

func (a Actor) IsZero() bool { return a.ID == 0 }

// HasCapability reports whether any of the actor's roles grants cap.
func (a Actor) HasCapability(cap Capability) bool {
	allowed, ok := capabilityRoles[cap]
	if !ok {
		return false
	}
	for _, role := range a.Roles {
		for _, ar := range allowed {
			if role == ar {
				return true
			}
		}
	}
	return false
}
