package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forumhub/backend/internal/models"
	"github.com/forumhub/backend/internal/token"
)

var (
	generalAdmin = token.Identity{ID: 1, Name: "Root", Role: models.RoleAdmin}
	otherAdmin   = token.Identity{ID: 2, Name: "Mod", Role: models.RoleAdmin}
	normalUser   = token.Identity{ID: 5, Name: "Ana", Role: models.RoleNormal}
)

func TestCanDeletePost(t *testing.T) {
	tests := []struct {
		name     string
		actor    token.Identity
		authorID int
		allowed  bool
	}{
		{"author deletes own post", normalUser, 5, true},
		{"admin deletes someone else's post", otherAdmin, 5, true},
		{"general admin deletes someone else's post", generalAdmin, 5, true},
		{"normal user deletes someone else's post", normalUser, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanDeletePost(tt.actor, tt.authorID)
			assert.Equal(t, tt.allowed, d.Allowed())
			if !tt.allowed {
				assert.Equal(t, Forbidden, d.Effect)
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestCanDeleteComment(t *testing.T) {
	assert.True(t, CanDeleteComment(normalUser, 5).Allowed())
	assert.True(t, CanDeleteComment(otherAdmin, 5).Allowed())

	d := CanDeleteComment(normalUser, 9)
	assert.Equal(t, Forbidden, d.Effect)
}

func TestCanManageCategories(t *testing.T) {
	assert.True(t, CanManageCategories(otherAdmin).Allowed())
	assert.True(t, CanManageCategories(generalAdmin).Allowed())
	assert.Equal(t, Forbidden, CanManageCategories(normalUser).Effect)
}

func TestCanListUsers(t *testing.T) {
	assert.True(t, CanListUsers(otherAdmin).Allowed())
	assert.Equal(t, Forbidden, CanListUsers(normalUser).Effect)
}

func TestCanDeleteUser(t *testing.T) {
	tests := []struct {
		name     string
		actor    token.Identity
		targetID int
		allowed  bool
	}{
		{"admin deletes normal user", otherAdmin, 5, true},
		{"general admin deletes another admin", generalAdmin, 2, true},
		{"normal user deletes anyone", normalUser, 7, false},
		{"admin deletes general administrator", otherAdmin, 1, false},
		{"general admin deletes itself", generalAdmin, 1, false},
		{"admin deletes itself", otherAdmin, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanDeleteUser(tt.actor, tt.targetID)
			assert.Equal(t, tt.allowed, d.Allowed())
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	tests := []struct {
		name    string
		actor   token.Identity
		target  *models.User
		newRole models.Role
		allowed bool
	}{
		{
			name:    "admin promotes normal user",
			actor:   otherAdmin,
			target:  &models.User{ID: 5, Role: models.RoleNormal},
			newRole: models.RoleAdmin,
			allowed: true,
		},
		{
			name:    "normal user changes any role",
			actor:   normalUser,
			target:  &models.User{ID: 7, Role: models.RoleNormal},
			newRole: models.RoleAdmin,
			allowed: false,
		},
		{
			name:    "general administrator role is immutable",
			actor:   generalAdmin,
			target:  &models.User{ID: 1, Role: models.RoleAdmin},
			newRole: models.RoleNormal,
			allowed: false,
		},
		{
			name:    "admin demotes itself",
			actor:   otherAdmin,
			target:  &models.User{ID: 2, Role: models.RoleAdmin},
			newRole: models.RoleNormal,
			allowed: false,
		},
		{
			name:    "non-general admin demotes another admin",
			actor:   otherAdmin,
			target:  &models.User{ID: 3, Role: models.RoleAdmin},
			newRole: models.RoleNormal,
			allowed: false,
		},
		{
			name:    "general admin demotes another admin",
			actor:   generalAdmin,
			target:  &models.User{ID: 3, Role: models.RoleAdmin},
			newRole: models.RoleNormal,
			allowed: true,
		},
		{
			name:    "admin re-promotes another admin",
			actor:   otherAdmin,
			target:  &models.User{ID: 3, Role: models.RoleAdmin},
			newRole: models.RoleAdmin,
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanChangeRole(tt.actor, tt.target, tt.newRole)
			assert.Equal(t, tt.allowed, d.Allowed(), "reason: %s", d.Reason)
		})
	}
}
