package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsMasterOnly(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		want  bool
	}{
		{"exactly master", []Role{{ID: 3, Name: RoleMaster}}, true},
		{"master and admin", []Role{{Name: RoleMaster}, {Name: RoleAdmin}}, false},
		{"manager and master", []Role{{Name: RoleManager}, {Name: RoleMaster}}, false},
		{"admin only", []Role{{Name: RoleAdmin}}, false},
		{"no roles", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Roles: tt.roles}
			assert.Equal(t, tt.want, u.IsMasterOnly())
		})
	}
}

func TestUser_HasAnyRole(t *testing.T) {
	u := User{FirstName: "Иван", LastName: "Петров", Roles: []Role{{Name: RoleManager}}}

	assert.True(t, u.HasAnyRole(RoleAdmin, RoleManager))
	assert.False(t, u.HasAnyRole(RoleMaster))
	assert.Equal(t, "Иван Петров", u.FullName())
	assert.Equal(t, []RoleName{RoleManager}, u.RoleNames())
}
