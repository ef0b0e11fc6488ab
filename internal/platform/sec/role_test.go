// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mandresy/fiangonana/internal/platform/sec"
)

/*
TestRole_AtLeast verifies the linear role hierarchy.
*/
func TestRole_AtLeast(t *testing.T) {
	testCases := []struct {
		name     string
		role     sec.UserRole
		target   sec.UserRole
		expected bool
	}{
		{"admin meets admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin exceeds responsable", sec.RoleAdmin, sec.RoleResponsable, true},
		{"responsable below admin", sec.RoleResponsable, sec.RoleAdmin, false},
		{"responsable exceeds utilisateur", sec.RoleResponsable, sec.RoleUtilisateur, true},
		{"utilisateur below responsable", sec.RoleUtilisateur, sec.RoleResponsable, false},
		{"unknown role below everything", sec.UserRole("GUEST"), sec.RoleUtilisateur, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.role.AtLeast(tc.target))
		})
	}
}

/*
TestRole_ScreenPermissions verifies the per-screen allow-lists.
*/
func TestRole_ScreenPermissions(t *testing.T) {

	// 1. Registry mutations: admin and responsable only
	assert.True(t, sec.RoleAdmin.CanManageAdherents())
	assert.True(t, sec.RoleResponsable.CanManageAdherents())
	assert.False(t, sec.RoleUtilisateur.CanManageAdherents())

	// 2. Group administration: admin only
	assert.True(t, sec.RoleAdmin.CanManageGroupes())
	assert.False(t, sec.RoleResponsable.CanManageGroupes())
	assert.False(t, sec.RoleUtilisateur.CanManageGroupes())

	// 3. Statistics screen: admin and responsable
	assert.True(t, sec.RoleAdmin.CanViewStats())
	assert.True(t, sec.RoleResponsable.CanViewStats())
	assert.False(t, sec.RoleUtilisateur.CanViewStats())

	// 4. Account administration: admin only
	assert.True(t, sec.RoleAdmin.CanManageUtilisateurs())
	assert.False(t, sec.RoleResponsable.CanManageUtilisateurs())
}

/*
TestRole_IsValid rejects roles outside the closed set.
*/
func TestRole_IsValid(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsValid())
	assert.True(t, sec.RoleResponsable.IsValid())
	assert.True(t, sec.RoleUtilisateur.IsValid())
	assert.False(t, sec.UserRole("admin").IsValid())
	assert.False(t, sec.UserRole("").IsValid())
}
