package authorization

import (
	"sleepclinic-service/internal/app/contracts"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/pkg/constvars"
	"sort"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rolePolicyModel = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act
`

var defaultRolePermissions = map[models.Role][]string{
	models.RoleMainHead: {
		constvars.PermissionDoctorList,
		constvars.PermissionDoctorCreate,
		constvars.PermissionDoctorToggleStatus,
		constvars.PermissionPatientCreate,
		constvars.PermissionReportRead,
	},
	models.RoleDoctor: {
		constvars.PermissionPatientCreate,
		constvars.PermissionReportRead,
	},
}

type rolePolicy struct {
	enforcer *casbin.Enforcer
}

// NewRolePolicy builds an in-memory enforcer loaded with the default role
// permissions.
func NewRolePolicy() (contracts.RolePolicy, error) {
	m, err := model.NewModelFromString(rolePolicyModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	rules := [][]string{}
	for role, permissions := range defaultRolePermissions {
		for _, permission := range permissions {
			rules = append(rules, []string{role.String(), permission})
		}
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, err
	}

	return &rolePolicy{enforcer: enforcer}, nil
}

func (p *rolePolicy) Allows(role models.Role, permission string) bool {
	if !role.IsValid() {
		return false
	}
	allowed, err := p.enforcer.Enforce(role.String(), permission)
	if err != nil {
		return false
	}
	return allowed
}

func (p *rolePolicy) Permissions(role models.Role) []string {
	permissions := []string{}
	for _, rule := range p.enforcer.GetFilteredPolicy(0, role.String()) {
		permissions = append(permissions, rule[1])
	}
	sort.Strings(permissions)
	return permissions
}
